package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/acoudray/clubhouse/internal/convert"
	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/metrics"
	"github.com/acoudray/clubhouse/internal/model"
)

type createPurchaseRequest struct {
	UserID    int64 `json:"user_id"`
	GoodiesID int64 `json:"goodies_id"`
}

type deliveredRequest struct {
	Delivered bool `json:"delivered"`
}

// uuidParam parses the {id} route parameter as a UUID.
func uuidParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.ErrBadRequest
	}
	return id, nil
}

func purchaseOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.PurchaseOK
	case errors.Is(err, errs.ErrBuyLimitReached):
		return metrics.PurchaseBuyLimit
	case errors.Is(err, errs.ErrInsufficientWallet):
		return metrics.PurchaseWallet
	case errors.Is(err, errs.ErrOutOfStock):
		return metrics.PurchaseOutOfStock
	case errors.Is(err, errs.ErrBadRequest):
		return metrics.PurchaseBadReferents
	default:
		return metrics.PurchaseError
	}
}

func (s *Server) handleCreatePurchase(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req createPurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.UserID == 0 {
		req.UserID = actor
	}
	// Buying on behalf of someone else requires the super-admin tier.
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, req.UserID, model.PrivilegeSuperAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	p, err := s.purchases.Create(r.Context(), req.UserID, req.GoodiesID)
	s.rec.RecordPurchase(purchaseOutcome(err))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, convert.ToPurchaseJSON(*p))
}

func (s *Server) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.Authorize(r.Context(), actor, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	ps, err := s.purchases.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToPurchaseJSONs(ps))
}

func (s *Server) handleListUserPurchases(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	userID, err := idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, userID, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	ps, err := s.purchases.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToPurchaseJSONs(ps))
}

func (s *Server) handleGetPurchase(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := uuidParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	p, err := s.purchases.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, p.UserID, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToPurchaseJSON(*p))
}

func (s *Server) handleSetDelivered(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.Authorize(r.Context(), actor, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	id, err := uuidParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req deliveredRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.purchases.SetDelivered(r.Context(), id, req.Delivered); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"delivered": req.Delivered})
}

func (s *Server) handleRefundPurchase(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := uuidParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	p, err := s.purchases.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, p.UserID, model.PrivilegeSuperAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.purchases.Refund(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
