package server

import (
	"net/http"

	"go.uber.org/zap"

	"freightquick/internal/billing"
	"freightquick/internal/store"
)

type checkoutRequest struct {
	CompanyID   int64 `json:"company_id"`
	DriverCount int   `json:"driver_count"`
}

func (s *Server) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid checkout payload")
		return
	}
	cid := req.CompanyID
	if authed := companyID(r); authed != 0 {
		cid = authed
	}
	if cid == 0 {
		respondError(w, http.StatusBadRequest, "company_id is required")
		return
	}
	if !s.stripe.Configured() {
		respondError(w, http.StatusServiceUnavailable, "Billing is not configured")
		return
	}

	c, err := s.store.GetCompany(cid)
	if err == store.ErrNotFound {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}
	if err != nil {
		s.storeError(w, err, "get company")
		return
	}

	drivers := req.DriverCount
	if drivers <= 0 {
		drivers = 1
	}
	url, err := s.stripe.CreateCheckoutSession(r.Context(), billing.CheckoutRequest{
		CompanyID:       c.ID,
		CompanyName:     c.CompanyName,
		Email:           c.Email,
		DriverCount:     drivers,
		UnitAmountCents: s.cfg.Billing.PricePerDriver * 100,
	})
	if err != nil {
		s.log.Warn("stripe checkout failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "Could not create checkout session")
		return
	}

	respond(w, http.StatusOK, map[string]string{"checkout_url": url})
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	respondList(w, billing.Plans(s.cfg.Billing.PricePerDriver))
}

func (s *Server) handleTrialStatus(w http.ResponseWriter, r *http.Request) {
	cid, ok := pathID(r, "company_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid company id")
		return
	}
	c, err := s.store.GetCompany(cid)
	if err == store.ErrNotFound {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}
	if err != nil {
		s.storeError(w, err, "get company")
		return
	}
	respond(w, http.StatusOK, billing.DeriveTrialStatus(c, s.cfg.Billing.TrialDays, s.now()))
}
