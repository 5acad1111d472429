package server

import (
	"net/http"

	"freightquick/internal/fleet"
)

func (s *Server) handleListCompliance(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListCompliance(companyID(r))
	if err != nil {
		s.storeError(w, err, "list compliance")
		return
	}
	now := s.now()
	for i := range records {
		records[i].DeriveStatuses(now)
	}
	respondList(w, records)
}

func (s *Server) handleUpsertCompliance(w http.ResponseWriter, r *http.Request) {
	var rec fleet.ComplianceRecord
	if err := decodeJSON(r, &rec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid compliance payload")
		return
	}
	if rec.DriverID == 0 {
		respondError(w, http.StatusBadRequest, "driver_id is required")
		return
	}
	if err := s.store.UpsertCompliance(rec); err != nil {
		s.storeError(w, err, "upsert compliance")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Compliance record saved"})
}

func (s *Server) handleComplianceSummary(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListCompliance(companyID(r))
	if err != nil {
		s.storeError(w, err, "list compliance")
		return
	}

	now := s.now()
	var expired, expiring int
	for _, rec := range records {
		cdl := fleet.DeriveExpiryStatus(rec.CDLExpiry, now)
		med := fleet.DeriveExpiryStatus(rec.MedicalCardExpiry, now)
		switch {
		case cdl == fleet.StatusExpired || med == fleet.StatusExpired:
			expired++
		case cdl == fleet.StatusExpiringSoon || med == fleet.StatusExpiringSoon:
			expiring++
		}
	}

	respond(w, http.StatusOK, map[string]int{
		"total":         len(records),
		"expired":       expired,
		"expiring_soon": expiring,
		"compliant":     len(records) - expired - expiring,
	})
}
