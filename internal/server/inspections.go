package server

import (
	"net/http"

	"freightquick/internal/fleet"
	"freightquick/internal/store"
)

func (s *Server) handleListInspections(w http.ResponseWriter, r *http.Request) {
	inspections, err := s.store.ListInspections(store.InspectionFilter{
		CompanyID:   companyID(r),
		DriverID:    queryInt(r, "driver_id"),
		TruckNumber: r.URL.Query().Get("truck_number"),
	})
	if err != nil {
		s.storeError(w, err, "list inspections")
		return
	}
	respondList(w, inspections)
}

func (s *Server) handleCreateInspection(w http.ResponseWriter, r *http.Request) {
	var ins fleet.Inspection
	if err := decodeJSON(r, &ins); err != nil {
		respondError(w, http.StatusBadRequest, "invalid inspection payload")
		return
	}
	if ins.DriverID == 0 || ins.Date == "" {
		respondError(w, http.StatusBadRequest, "driver_id and date are required")
		return
	}
	if ins.Result != "" && ins.Result != "pass" && ins.Result != "fail" {
		respondError(w, http.StatusBadRequest, "result must be pass or fail")
		return
	}
	if cid := companyID(r); cid != 0 {
		ins.CompanyID = cid
	}
	id, err := s.store.CreateInspection(ins)
	if err != nil {
		s.storeError(w, err, "create inspection")
		return
	}
	respond(w, http.StatusCreated, map[string]any{"id": id, "message": "Inspection recorded"})
}

func (s *Server) handleInspectionSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.store.GetInspectionSummary(companyID(r))
	if err != nil {
		s.storeError(w, err, "inspection summary")
		return
	}
	respond(w, http.StatusOK, sum)
}
