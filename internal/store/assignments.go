package store

import (
	"fmt"

	"freightquick/internal/fleet"
)

// ListAssignments returns assignments with driver and load fields joined in,
// newest first. companyID scopes through the load; 0 lists all.
func (s *Store) ListAssignments(companyID int64) ([]fleet.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT a.id, a.driver_id, a.load_id, a.match_score,
			COALESCE(a.match_type,''), a.status, a.assigned_at,
			d.username, d.full_name, d.status,
			l.load_number, l.origin, l.destination, COALESCE(l.rate,0), COALESCE(l.miles,0)
		FROM assignments a
		JOIN drivers d ON a.driver_id = d.id
		JOIN loads l ON a.load_id = l.id`
	var args []any
	if companyID != 0 {
		query += " WHERE l.company_id = ?"
		args = append(args, companyID)
	}
	query += " ORDER BY a.assigned_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []fleet.Assignment
	for rows.Next() {
		var a fleet.Assignment
		if err := rows.Scan(&a.ID, &a.DriverID, &a.LoadID, &a.MatchScore,
			&a.MatchType, &a.Status, &a.AssignedAt, &a.Username, &a.FullName,
			&a.DriverStatus, &a.LoadNumber, &a.Origin, &a.Destination,
			&a.Rate, &a.Miles); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// CreateAssignment pairs a driver with a load in one transaction: insert the
// assignment, flip the driver to on_load, mark the load assigned, and seed
// the initial route from the load's mileage.
func (s *Store) CreateAssignment(a fleet.Assignment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin assignment tx: %w", err)
	}
	defer tx.Rollback()

	var miles float64
	var loadStatus string
	if err := tx.QueryRow("SELECT COALESCE(miles,0), status FROM loads WHERE id = ?", a.LoadID).Scan(&miles, &loadStatus); err != nil {
		return 0, fmt.Errorf("load %d not found: %w", a.LoadID, err)
	}
	if loadStatus != "available" {
		return 0, fmt.Errorf("load %d is not available", a.LoadID)
	}
	var driverExists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM drivers WHERE id = ?", a.DriverID).Scan(&driverExists); err != nil || driverExists == 0 {
		return 0, fmt.Errorf("driver %d not found", a.DriverID)
	}

	res, err := tx.Exec(
		`INSERT INTO assignments (driver_id, load_id, match_score, match_type)
		 VALUES (?, ?, ?, ?)`,
		a.DriverID, a.LoadID, a.MatchScore, a.MatchType)
	if err != nil {
		return 0, fmt.Errorf("failed to create assignment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec("UPDATE drivers SET status = 'on_load' WHERE id = ?", a.DriverID); err != nil {
		return 0, fmt.Errorf("failed to update driver status: %w", err)
	}
	if _, err := tx.Exec(
		"UPDATE loads SET status = 'assigned', assigned_driver_id = ? WHERE id = ?",
		a.DriverID, a.LoadID); err != nil {
		return 0, fmt.Errorf("failed to update load status: %w", err)
	}

	hours, fuel, tolls := fleet.RouteEstimate(miles)
	if _, err := tx.Exec(
		`INSERT INTO routes (assignment_id, total_miles, estimated_hours, fuel_cost, toll_cost)
		 VALUES (?, ?, ?, ?, ?)`,
		id, miles, hours, fuel, tolls); err != nil {
		return 0, fmt.Errorf("failed to create route: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit assignment: %w", err)
	}
	return id, nil
}
