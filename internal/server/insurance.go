package server

import (
	"net/http"

	"freightquick/internal/fleet"
)

func (s *Server) handleListInsurance(w http.ResponseWriter, r *http.Request) {
	policies, err := s.store.ListInsurance(companyID(r))
	if err != nil {
		s.storeError(w, err, "list insurance")
		return
	}
	now := s.now()
	for i := range policies {
		policies[i].Status = fleet.DeriveExpiryStatus(policies[i].ExpiryDate, now)
	}
	respondList(w, policies)
}

func (s *Server) handleCreateInsurance(w http.ResponseWriter, r *http.Request) {
	var p fleet.InsurancePolicy
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid insurance payload")
		return
	}
	if p.TruckNumber == "" || p.PolicyNumber == "" || p.ExpiryDate == "" {
		respondError(w, http.StatusBadRequest, "truck_number, policy_number and expiry_date are required")
		return
	}
	if cid := companyID(r); cid != 0 {
		p.CompanyID = cid
	}
	if _, err := s.store.CreateInsurance(p); err != nil {
		s.storeError(w, err, "create insurance")
		return
	}
	respond(w, http.StatusCreated, map[string]string{"message": "Insurance policy added"})
}

func (s *Server) handleInsuranceSummary(w http.ResponseWriter, r *http.Request) {
	policies, err := s.store.ListInsurance(companyID(r))
	if err != nil {
		s.storeError(w, err, "list insurance")
		return
	}

	now := s.now()
	var expired, expiring int
	var totalPremium float64
	for _, p := range policies {
		switch fleet.DeriveExpiryStatus(p.ExpiryDate, now) {
		case fleet.StatusExpired:
			expired++
		case fleet.StatusExpiringSoon:
			expiring++
		}
		totalPremium += p.Premium
	}

	respond(w, http.StatusOK, map[string]any{
		"total":         len(policies),
		"expired":       expired,
		"expiring_soon": expiring,
		"compliant":     len(policies) - expired - expiring,
		"total_premium": fleet.Round2(totalPremium),
	})
}
