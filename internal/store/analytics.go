package store

import (
	"fmt"

	"freightquick/internal/fleet"
)

// AnalyticsSummary is the headline fleet metrics block.
type AnalyticsSummary struct {
	TotalDrivers      int     `json:"total_drivers"`
	AvailableDrivers  int     `json:"available_drivers"`
	UtilizationRate   float64 `json:"utilization_rate"`
	ActiveLoads       int     `json:"active_loads"`
	ActiveAssignments int     `json:"active_assignments"`
	TotalRevenue      float64 `json:"total_revenue"`
	AvgOnTimeRate     float64 `json:"avg_on_time_rate"`
	TotalMiles        float64 `json:"total_miles"`
	TotalFuelCost     float64 `json:"total_fuel_cost"`
}

// DriverUtilization groups driver counts by type.
type DriverUtilization struct {
	DriverType string `json:"driver_type"`
	Total      int    `json:"total"`
	Active     int    `json:"active"`
}

// GetAnalyticsSummary aggregates the fleet metrics for a company (0 = all).
func (s *Store) GetAnalyticsSummary(companyID int64) (AnalyticsSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum AnalyticsSummary
	var scope string
	var args []any
	if companyID != 0 {
		scope = " AND company_id = ?"
		args = []any{companyID}
	}

	queries := []struct {
		query string
		dest  any
	}{
		{"SELECT COUNT(*) FROM drivers WHERE 1=1" + scope, &sum.TotalDrivers},
		{"SELECT COUNT(*) FROM drivers WHERE status = 'available'" + scope, &sum.AvailableDrivers},
		{"SELECT COUNT(*) FROM loads WHERE status IN ('available','assigned','in_transit')" + scope, &sum.ActiveLoads},
		{"SELECT COALESCE(SUM(rate),0) FROM loads WHERE status = 'delivered'" + scope, &sum.TotalRevenue},
		{"SELECT COALESCE(AVG(on_time_rate),0) FROM drivers WHERE 1=1" + scope, &sum.AvgOnTimeRate},
	}
	for _, q := range queries {
		if err := s.db.QueryRow(q.query, args...).Scan(q.dest); err != nil {
			return sum, fmt.Errorf("failed to aggregate analytics: %w", err)
		}
	}

	// Assignments and routes scope through the load's tenant.
	assignQuery := `SELECT COUNT(*) FROM assignments a JOIN loads l ON a.load_id = l.id
		WHERE a.status = 'active'`
	routeQuery := `SELECT COALESCE(SUM(r.total_miles),0), COALESCE(SUM(r.fuel_cost),0)
		FROM routes r JOIN assignments a ON r.assignment_id = a.id
		JOIN loads l ON a.load_id = l.id WHERE 1=1`
	var scopedArgs []any
	if companyID != 0 {
		assignQuery += " AND l.company_id = ?"
		routeQuery += " AND l.company_id = ?"
		scopedArgs = []any{companyID}
	}
	if err := s.db.QueryRow(assignQuery, scopedArgs...).Scan(&sum.ActiveAssignments); err != nil {
		return sum, fmt.Errorf("failed to count active assignments: %w", err)
	}
	if err := s.db.QueryRow(routeQuery, scopedArgs...).Scan(&sum.TotalMiles, &sum.TotalFuelCost); err != nil {
		return sum, fmt.Errorf("failed to aggregate routes: %w", err)
	}

	if sum.TotalDrivers > 0 {
		busy := sum.TotalDrivers - sum.AvailableDrivers
		sum.UtilizationRate = fleet.Round1(float64(busy) / float64(sum.TotalDrivers) * 100)
	}
	sum.TotalRevenue = fleet.Round2(sum.TotalRevenue)
	sum.AvgOnTimeRate = fleet.Round1(sum.AvgOnTimeRate * 100)
	sum.TotalMiles = fleet.Round1(sum.TotalMiles)
	sum.TotalFuelCost = fleet.Round2(sum.TotalFuelCost)
	return sum, nil
}

// GetDriverUtilization groups drivers by type with on-load counts.
func (s *Store) GetDriverUtilization(companyID int64) ([]DriverUtilization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT driver_type, COUNT(*),
			SUM(CASE WHEN status = 'on_load' THEN 1 ELSE 0 END)
		FROM drivers`
	var args []any
	if companyID != 0 {
		query += " WHERE company_id = ?"
		args = append(args, companyID)
	}
	query += " GROUP BY driver_type"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group driver utilization: %w", err)
	}
	defer rows.Close()

	var util []DriverUtilization
	for rows.Next() {
		var u DriverUtilization
		if err := rows.Scan(&u.DriverType, &u.Total, &u.Active); err != nil {
			return nil, fmt.Errorf("failed to scan utilization: %w", err)
		}
		util = append(util, u)
	}
	return util, rows.Err()
}
