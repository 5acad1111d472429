package server

import (
	"net/http"

	"freightquick/internal/fleet"
	"freightquick/internal/store"
)

func (s *Server) handleListLoads(w http.ResponseWriter, r *http.Request) {
	loads, err := s.store.ListLoads(store.LoadFilter{
		CompanyID: companyID(r),
		Status:    r.URL.Query().Get("status"),
	})
	if err != nil {
		s.storeError(w, err, "list loads")
		return
	}
	respondList(w, loads)
}

func (s *Server) handleCreateLoad(w http.ResponseWriter, r *http.Request) {
	var l fleet.Load
	if err := decodeJSON(r, &l); err != nil {
		respondError(w, http.StatusBadRequest, "invalid load payload")
		return
	}
	if l.LoadNumber == "" || l.Origin == "" || l.Destination == "" {
		respondError(w, http.StatusBadRequest, "load_number, origin and destination are required")
		return
	}
	if cid := companyID(r); cid != 0 {
		l.CompanyID = cid
	}

	id, err := s.store.CreateLoad(l)
	if err != nil {
		s.storeError(w, err, "create load")
		return
	}
	respond(w, http.StatusCreated, map[string]any{"id": id, "message": "Load created"})
}

func (s *Server) handleUpdateLoad(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid load id")
		return
	}

	var fields map[string]any
	if err := decodeJSON(r, &fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid update payload")
		return
	}
	delete(fields, "id")
	delete(fields, "company_id")

	if err := s.store.UpdateLoad(id, fields); err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "load not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Load updated"})
}
