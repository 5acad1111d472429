package server

import (
	"net/http"

	"freightquick/internal/fleet"
	"freightquick/internal/ifta"
	"freightquick/internal/store"
)

// handleIFTAReport reconstructs the quarterly fuel-tax report from trip legs
// and fuel purchases in the quarter.
func (s *Server) handleIFTAReport(w http.ResponseWriter, r *http.Request) {
	quarter, err := ifta.ParseQuarter(r.URL.Query().Get("quarter"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, to := quarter.Dates()
	cid := companyID(r)

	tripLegs, err := s.store.ListTripLegs(cid, from, to)
	if err != nil {
		s.storeError(w, err, "list trip legs")
		return
	}
	fuelLogs, err := s.store.ListFuelLogs(store.FuelFilter{
		CompanyID: cid, FromDate: from, ToDate: to,
	})
	if err != nil {
		s.storeError(w, err, "list fuel logs")
		return
	}

	legs := make([]ifta.Leg, 0, len(tripLegs))
	for _, l := range tripLegs {
		legs = append(legs, ifta.Leg{Jurisdiction: l.Jurisdiction, Miles: l.Miles})
	}
	purchases := make([]ifta.Purchase, 0, len(fuelLogs))
	for _, fl := range fuelLogs {
		purchases = append(purchases, ifta.Purchase{Jurisdiction: fl.Jurisdiction, Gallons: fl.Gallons})
	}

	respond(w, http.StatusOK, ifta.BuildReport(quarter, legs, purchases))
}

type recordTripsRequest struct {
	AssignmentID int64 `json:"assignment_id"`
	Legs         []struct {
		Date         string  `json:"date"`
		Jurisdiction string  `json:"jurisdiction"`
		Miles        float64 `json:"miles"`
	} `json:"legs"`
}

// handleRecordTrips stores the per-jurisdiction mileage breakdown of an
// assignment's trip.
func (s *Server) handleRecordTrips(w http.ResponseWriter, r *http.Request) {
	var req recordTripsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid trips payload")
		return
	}
	if req.AssignmentID == 0 || len(req.Legs) == 0 {
		respondError(w, http.StatusBadRequest, "assignment_id and legs are required")
		return
	}

	cid := companyID(r)
	legs := make([]fleet.TripLeg, 0, len(req.Legs))
	for _, l := range req.Legs {
		if l.Jurisdiction == "" || l.Miles <= 0 || l.Date == "" {
			respondError(w, http.StatusBadRequest, "each leg needs date, jurisdiction and positive miles")
			return
		}
		legs = append(legs, fleet.TripLeg{
			CompanyID:    cid,
			AssignmentID: req.AssignmentID,
			Date:         l.Date,
			Jurisdiction: l.Jurisdiction,
			Miles:        l.Miles,
		})
	}

	if err := s.store.CreateTripLegs(legs); err != nil {
		s.storeError(w, err, "create trip legs")
		return
	}
	respond(w, http.StatusCreated, map[string]any{
		"message": "Trip legs recorded",
		"count":   len(legs),
	})
}
