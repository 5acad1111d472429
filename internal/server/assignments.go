package server

import (
	"net/http"

	"freightquick/internal/fleet"
	"freightquick/internal/store"
)

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := s.store.ListAssignments(companyID(r))
	if err != nil {
		s.storeError(w, err, "list assignments")
		return
	}
	respondList(w, assignments)
}

type createAssignmentRequest struct {
	DriverID  int64  `json:"driver_id"`
	LoadID    int64  `json:"load_id"`
	MatchType string `json:"match_type"`
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid assignment payload")
		return
	}
	if req.DriverID == 0 || req.LoadID == 0 {
		respondError(w, http.StatusBadRequest, "driver_id and load_id are required")
		return
	}

	matchType := req.MatchType
	if matchType == "" {
		matchType = s.matcher.PickMatchType()
	}
	score := s.matcher.AssignmentScore()

	id, err := s.store.CreateAssignment(fleet.Assignment{
		DriverID:   req.DriverID,
		LoadID:     req.LoadID,
		MatchScore: score,
		MatchType:  matchType,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, http.StatusCreated, map[string]any{
		"id":          id,
		"match_score": score,
		"match_type":  matchType,
	})
}

type matchRequest struct {
	LoadID int64 `json:"load_id"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid match payload")
		return
	}

	load, err := s.store.GetLoad(req.LoadID)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "load not found")
			return
		}
		s.storeError(w, err, "get load")
		return
	}

	drivers, err := s.store.AvailableDrivers(companyID(r))
	if err != nil {
		s.storeError(w, err, "list available drivers")
		return
	}

	matches := s.matcher.Rank(drivers)
	if matches == nil {
		matches = []fleet.DriverMatch{}
	}
	respond(w, http.StatusOK, map[string]any{
		"load":    load,
		"matches": matches,
	})
}
