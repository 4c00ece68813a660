package httpserver

import (
	"net/http"

	"github.com/acoudray/clubhouse/internal/convert"
	"github.com/acoudray/clubhouse/internal/model"
)

type goodiesRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	BuyLimit int64  `json:"buy_limit"`
}

func (s *Server) handleListGoodies(w http.ResponseWriter, r *http.Request) {
	gs, err := s.goodies.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToGoodiesJSONs(gs))
}

func (s *Server) handleGetGoodies(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	g, err := s.goodies.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToGoodiesJSON(*g))
}

func (s *Server) handleCreateGoodies(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.authz.Authorize(r.Context(), actor, model.PrivilegeAdmin); err != nil {
		s.writeError(w, err)
		return
	}
	var req goodiesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	g := model.Goodies{Name: req.Name, Price: req.Price, Stock: req.Stock, BuyLimit: req.BuyLimit}
	id, err := s.goodies.Create(r.Context(), &g)
	if err != nil {
		s.writeError(w, err)
		return
	}
	g.ID = id
	writeJSON(w, http.StatusCreated, convert.ToGoodiesJSON(g))
}

func (s *Server) handleUpdateGoodies(w http.ResponseWriter, r *http.Request) {
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
	var req goodiesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	// Bought is owned by the purchase engine and never written here.
	g := model.Goodies{ID: id, Name: req.Name, Price: req.Price, Stock: req.Stock, BuyLimit: req.BuyLimit}
	if err := s.goodies.Update(r.Context(), &g); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToGoodiesJSON(g))
}

func (s *Server) handleDeleteGoodies(w http.ResponseWriter, r *http.Request) {
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
	if err := s.goodies.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
