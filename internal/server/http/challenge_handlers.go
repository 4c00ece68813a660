package httpserver

import (
	"net/http"

	"github.com/acoudray/clubhouse/internal/convert"
	"github.com/acoudray/clubhouse/internal/model"
)

type challengeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Reward      int64  `json:"reward"`
}

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	cs, err := s.challenges.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToChallengeJSONs(cs))
}

func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	c, err := s.challenges.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToChallengeJSON(*c))
}

func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.Authorize(r.Context(), actor, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	var req challengeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	c := model.Challenge{Title: req.Title, Description: req.Description, Reward: req.Reward}
	id, err := s.challenges.Create(r.Context(), &c)
	if err != nil {
		s.writeError(w, err)
		return
	}
	c.ID = id
	writeJSON(w, http.StatusCreated, convert.ToChallengeJSON(c))
}

func (s *Server) handleUpdateChallenge(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.Authorize(r.Context(), actor, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req challengeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	c := model.Challenge{ID: id, Title: req.Title, Description: req.Description, Reward: req.Reward}
	if err := s.challenges.Update(r.Context(), &c); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToChallengeJSON(c))
}

func (s *Server) handleDeleteChallenge(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.Authorize(r.Context(), actor, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.challenges.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
