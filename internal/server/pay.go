package server

import (
	"net/http"

	"freightquick/internal/fleet"
)

func (s *Server) handleListPay(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListPayRecords(companyID(r), queryInt(r, "driver_id"))
	if err != nil {
		s.storeError(w, err, "list pay records")
		return
	}
	respondList(w, records)
}

func (s *Server) handleCreatePay(w http.ResponseWriter, r *http.Request) {
	var rec fleet.PayRecord
	if err := decodeJSON(r, &rec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid pay payload")
		return
	}
	if rec.DriverID == 0 || rec.WeekEnding == "" {
		respondError(w, http.StatusBadRequest, "driver_id and week_ending are required")
		return
	}
	if _, err := s.store.CreatePayRecord(rec); err != nil {
		s.storeError(w, err, "create pay record")
		return
	}
	respond(w, http.StatusCreated, map[string]string{"message": "Pay record created"})
}

func (s *Server) handlePaySummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.store.GetPaySummary(companyID(r))
	if err != nil {
		s.storeError(w, err, "pay summary")
		return
	}
	respond(w, http.StatusOK, sum)
}
