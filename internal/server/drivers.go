package server

import (
	"net/http"

	"freightquick/internal/fleet"
	"freightquick/internal/store"
)

func (s *Server) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := s.store.ListDrivers(store.DriverFilter{
		CompanyID: companyID(r),
		Status:    r.URL.Query().Get("status"),
	})
	if err != nil {
		s.storeError(w, err, "list drivers")
		return
	}
	respondList(w, drivers)
}

func (s *Server) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	var d fleet.Driver
	if err := decodeJSON(r, &d); err != nil {
		respondError(w, http.StatusBadRequest, "invalid driver payload")
		return
	}
	if d.Username == "" || d.FullName == "" {
		respondError(w, http.StatusBadRequest, "username and full_name are required")
		return
	}
	if cid := companyID(r); cid != 0 {
		d.CompanyID = cid
	}

	id, err := s.store.CreateDriver(d)
	if err != nil {
		s.storeError(w, err, "create driver")
		return
	}
	respond(w, http.StatusCreated, map[string]any{"id": id, "message": "Driver created"})
}

func (s *Server) handleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid driver id")
		return
	}

	var fields map[string]any
	if err := decodeJSON(r, &fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid update payload")
		return
	}
	delete(fields, "id")
	delete(fields, "company_id")

	if err := s.store.UpdateDriver(id, fields); err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "driver not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Driver updated"})
}
