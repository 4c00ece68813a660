package httpserver

import (
	"net/http"

	"github.com/acoudray/clubhouse/internal/convert"
	"github.com/acoudray/clubhouse/internal/model"
)

type accomplishmentRequest struct {
	UserID      int64 `json:"user_id"`
	ChallengeID int64 `json:"challenge_id"`
	Validated   bool  `json:"validated"`
}

func (s *Server) handleListAccomplishments(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.Authorize(r.Context(), actor, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	as, err := s.accomplishments.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToAccomplishmentJSONs(as))
}

func (s *Server) handleListUserAccomplishments(w http.ResponseWriter, r *http.Request) {
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
	as, err := s.accomplishments.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToAccomplishmentJSONs(as))
}

func (s *Server) handleGetAccomplishment(w http.ResponseWriter, r *http.Request) {
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
	a, err := s.accomplishments.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, a.UserID, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToAccomplishmentJSON(*a))
}

func (s *Server) handleCreateAccomplishment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req accomplishmentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.UserID == 0 {
		req.UserID = actor
	}
	// Claiming for someone else requires the super-admin tier.
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, req.UserID, model.PrivilegeSuperAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	a := model.Accomplishment{UserID: req.UserID, ChallengeID: req.ChallengeID, Validated: req.Validated}
	id, err := s.accomplishments.Create(r.Context(), &a)
	if err != nil {
		s.writeError(w, err)
		return
	}
	a.ID = id
	writeJSON(w, http.StatusCreated, convert.ToAccomplishmentJSON(a))
}

func (s *Server) handleUpdateAccomplishment(w http.ResponseWriter, r *http.Request) {
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
	cur, err := s.accomplishments.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, cur.UserID, model.PrivilegeSuperAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	var req accomplishmentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	a := model.Accomplishment{ID: id, UserID: cur.UserID, ChallengeID: cur.ChallengeID, Validated: req.Validated}
	if req.ChallengeID != 0 {
		a.ChallengeID = req.ChallengeID
	}
	if err := s.accomplishments.Update(r.Context(), &a); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToAccomplishmentJSON(a))
}

func (s *Server) handleDeleteAccomplishment(w http.ResponseWriter, r *http.Request) {
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
	cur, err := s.accomplishments.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.AuthorizeOwnerOr(r.Context(), actor, cur.UserID, model.PrivilegeSuperAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.accomplishments.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
