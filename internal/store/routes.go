package store

import (
	"database/sql"
	"fmt"

	"freightquick/internal/fleet"
)

// ListRoutes returns routes with assignment, driver and load fields joined in.
// companyID scopes through the load; 0 lists all.
func (s *Store) ListRoutes(companyID int64) ([]fleet.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT r.id, r.assignment_id, COALESCE(r.waypoints,''),
			COALESCE(r.total_miles,0), COALESCE(r.estimated_hours,0),
			COALESCE(r.fuel_cost,0), COALESCE(r.toll_cost,0), r.optimized_at,
			COALESCE(a.match_type,''), a.status,
			d.username, d.full_name, l.load_number, l.origin, l.destination
		FROM routes r
		JOIN assignments a ON r.assignment_id = a.id
		JOIN drivers d ON a.driver_id = d.id
		JOIN loads l ON a.load_id = l.id`
	var args []any
	if companyID != 0 {
		query += " WHERE l.company_id = ?"
		args = append(args, companyID)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	var routes []fleet.Route
	for rows.Next() {
		var r fleet.Route
		if err := rows.Scan(&r.ID, &r.AssignmentID, &r.Waypoints, &r.TotalMiles,
			&r.EstimatedHours, &r.FuelCost, &r.TollCost, &r.OptimizedAt,
			&r.MatchType, &r.AssignmentStatus, &r.Username, &r.FullName,
			&r.LoadNumber, &r.Origin, &r.Destination); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// GetRouteByAssignment fetches the route for an assignment.
func (s *Store) GetRouteByAssignment(assignmentID int64) (fleet.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r fleet.Route
	err := s.db.QueryRow(
		`SELECT id, assignment_id, COALESCE(waypoints,''), COALESCE(total_miles,0),
			COALESCE(estimated_hours,0), COALESCE(fuel_cost,0), COALESCE(toll_cost,0),
			optimized_at
		 FROM routes WHERE assignment_id = ?`, assignmentID,
	).Scan(&r.ID, &r.AssignmentID, &r.Waypoints, &r.TotalMiles,
		&r.EstimatedHours, &r.FuelCost, &r.TollCost, &r.OptimizedAt)
	if err == sql.ErrNoRows {
		return r, ErrNotFound
	}
	if err != nil {
		return r, fmt.Errorf("failed to get route for assignment %d: %w", assignmentID, err)
	}
	return r, nil
}

// UpdateRouteMiles rewrites a route's mileage figure and its derived hour and
// fuel estimates after optimization. Tolls are left alone: the discount model
// shortens the path, it does not reroute around toll roads.
func (s *Store) UpdateRouteMiles(assignmentID int64, miles, hours, fuelCost float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`UPDATE routes SET total_miles = ?, estimated_hours = ?, fuel_cost = ?,
			optimized_at = CURRENT_TIMESTAMP
		 WHERE assignment_id = ?`,
		miles, hours, fuelCost, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to update route: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
