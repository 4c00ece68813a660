package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/acoudray/clubhouse/internal/convert"
	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/model"
)

// idParam parses the {id} route parameter as a positive int64.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.ErrBadRequest
	}
	return id, nil
}

// actorID returns the authenticated user from context. The Auth middleware
// guarantees presence on protected routes.
func actorID(r *http.Request) (int64, error) {
	id, ok := UserIDFromCtx(r.Context())
	if !ok {
		return 0, errs.ErrUnauthorized
	}
	return id, nil
}

type updateUserRequest struct {
	Email     string `json:"email"`
	Privilege int    `json:"privilege"`
	Wallet    int64  `json:"wallet"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.Authorize(r.Context(), actor, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	us, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToUserJSONs(us))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, id, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToUserJSON(*u))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, id, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	cur, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	// Privilege and wallet are administrative fields; owners may only change
	// their email. The purchase engine owns wallet debits.
	if req.Privilege != int(cur.Privilege) || req.Wallet != cur.Wallet {
		if err := s.authz.Authorize(r.Context(), actor, model.PrivilegeAdmin); err != nil {
			s.writeError(w, err)
			return
		}
	}
	u := *cur
	u.Email = req.Email
	u.Privilege = model.Privilege(req.Privilege)
	u.Wallet = req.Wallet
	if err := s.users.Update(r.Context(), &u); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToUserJSON(u))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, id, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
