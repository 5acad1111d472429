package server

import (
	"net/http"

	"freightquick/internal/store"
)

// dailyTrendDays is how far back the dashboard trend reaches.
const dailyTrendDays = 14

type trendPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Loads   int     `json:"loads"`
	Miles   int     `json:"miles"`
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	cid := companyID(r)

	summary, err := s.store.GetAnalyticsSummary(cid)
	if err != nil {
		s.storeError(w, err, "analytics summary")
		return
	}
	utilization, err := s.store.GetDriverUtilization(cid)
	if err != nil {
		s.storeError(w, err, "driver utilization")
		return
	}
	if utilization == nil {
		utilization = []store.DriverUtilization{}
	}

	respond(w, http.StatusOK, map[string]any{
		"summary":            summary,
		"daily_trend":        s.dailyTrend(),
		"driver_utilization": utilization,
	})
}

// dailyTrend fabricates the dashboard's demo revenue series; there is no
// per-day rollup table to back it.
func (s *Server) dailyTrend() []trendPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	trend := make([]trendPoint, 0, dailyTrendDays)
	for i := dailyTrendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		trend = append(trend, trendPoint{
			Date:    day.Format("01/02"),
			Revenue: float64(18000 + s.rng.Intn(24001)),
			Loads:   4 + s.rng.Intn(11),
			Miles:   2000 + s.rng.Intn(4001),
		})
	}
	return trend
}
