package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/acoudray/clubhouse/internal/errs"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusOf maps a service error to an HTTP status and a client-safe message.
// Internal details never reach the response body.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrNoToken):
		return http.StatusUnauthorized, errs.ErrNoToken.Error()
	case errors.Is(err, errs.ErrInvalidToken):
		return http.StatusUnauthorized, errs.ErrInvalidToken.Error()
	// logout without a token has always reported 500, not 401
	case errors.Is(err, errs.ErrLogoutNoToken):
		return http.StatusInternalServerError, errs.ErrLogoutNoToken.Error()
	case errors.Is(err, errs.ErrWrongPassword):
		return http.StatusBadRequest, errs.ErrWrongPassword.Error()
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests, "too many attempts"
	case errors.Is(err, errs.ErrBuyLimitReached):
		return http.StatusBadRequest, errs.ErrBuyLimitReached.Error()
	case errors.Is(err, errs.ErrInsufficientWallet):
		return http.StatusBadRequest, errs.ErrInsufficientWallet.Error()
	case errors.Is(err, errs.ErrOutOfStock):
		return http.StatusBadRequest, errs.ErrOutOfStock.Error()
	case errors.Is(err, errs.ErrBadRequest):
		return http.StatusBadRequest, "bad request"
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict, "already exists"
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code, msg := statusOf(err)
	if code == http.StatusInternalServerError {
		s.log.Error("internal error", zap.Error(err))
	}
	writeJSON(w, code, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst, rejecting unknown garbage with
// errs.ErrBadRequest.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.ErrBadRequest
	}
	return nil
}
