package server

import (
	"net/http"

	"freightquick/internal/fleet"
	"freightquick/internal/store"
)

func (s *Server) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := s.store.ListRoutes(companyID(r))
	if err != nil {
		s.storeError(w, err, "list routes")
		return
	}
	respondList(w, routes)
}

type optimizeRequest struct {
	AssignmentID int64 `json:"assignment_id"`
}

// handleOptimizeRoute applies the stored-discount optimization model: shave
// 3-8% off the route's mileage and recompute the hour and fuel estimates.
func (s *Server) handleOptimizeRoute(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid optimize payload")
		return
	}

	route, err := s.store.GetRouteByAssignment(req.AssignmentID)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "route not found")
			return
		}
		s.storeError(w, err, "get route")
		return
	}

	s.mu.Lock()
	savingsPct := 0.03 + s.rng.Float64()*0.05
	s.mu.Unlock()

	newMiles := fleet.Round1(route.TotalMiles * (1 - savingsPct))
	newHours := fleet.Round1(newMiles / fleet.AvgSpeedMPH)
	newFuel := fleet.Round2(newMiles * fleet.FuelCostPerMile)

	if err := s.store.UpdateRouteMiles(req.AssignmentID, newMiles, newHours, newFuel); err != nil {
		s.storeError(w, err, "update route")
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"optimized":     true,
		"savings_miles": fleet.Round1(route.TotalMiles - newMiles),
		"new_total":     newMiles,
	})
}
