package server

import (
	"net/http"

	"freightquick/internal/fleet"
	"freightquick/internal/store"
)

func (s *Server) handleListFuel(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	logs, err := s.store.ListFuelLogs(store.FuelFilter{
		CompanyID:    companyID(r),
		DriverID:     queryInt(r, "driver_id"),
		Jurisdiction: q.Get("jurisdiction"),
		FromDate:     q.Get("from"),
		ToDate:       q.Get("to"),
	})
	if err != nil {
		s.storeError(w, err, "list fuel logs")
		return
	}
	respondList(w, logs)
}

func (s *Server) handleCreateFuel(w http.ResponseWriter, r *http.Request) {
	var fl fleet.FuelLog
	if err := decodeJSON(r, &fl); err != nil {
		respondError(w, http.StatusBadRequest, "invalid fuel payload")
		return
	}
	if fl.DriverID == 0 || fl.Date == "" || fl.Jurisdiction == "" {
		respondError(w, http.StatusBadRequest, "driver_id, date and jurisdiction are required")
		return
	}
	if fl.Gallons <= 0 {
		respondError(w, http.StatusBadRequest, "gallons must be positive")
		return
	}
	if cid := companyID(r); cid != 0 {
		fl.CompanyID = cid
	}
	id, err := s.store.CreateFuelLog(fl)
	if err != nil {
		s.storeError(w, err, "create fuel log")
		return
	}
	respond(w, http.StatusCreated, map[string]any{"id": id, "message": "Fuel purchase logged"})
}

func (s *Server) handleFuelSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	totals, err := s.store.GetFuelSummary(companyID(r), q.Get("from"), q.Get("to"))
	if err != nil {
		s.storeError(w, err, "fuel summary")
		return
	}
	respondList(w, totals)
}
