package store

import (
	"fmt"

	"freightquick/internal/fleet"
)

// CreateTripLegs records the per-jurisdiction mileage breakdown of an
// assignment in one transaction.
func (s *Store) CreateTripLegs(legs []fleet.TripLeg) error {
	if len(legs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin trip legs tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO trip_legs (company_id, assignment_id, date, jurisdiction, miles)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare trip leg insert: %w", err)
	}
	defer stmt.Close()

	for _, leg := range legs {
		if leg.CompanyID == 0 {
			leg.CompanyID = 1
		}
		if _, err := stmt.Exec(leg.CompanyID, leg.AssignmentID, leg.Date, leg.Jurisdiction, leg.Miles); err != nil {
			return fmt.Errorf("failed to insert trip leg: %w", err)
		}
	}
	return tx.Commit()
}

// ListTripLegs returns trip legs for a company over an inclusive date range,
// oldest first.
func (s *Store) ListTripLegs(companyID int64, fromDate, toDate string) ([]fleet.TripLeg, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, company_id, assignment_id, date, jurisdiction, miles, created_at
		FROM trip_legs WHERE 1=1`
	var args []any
	if companyID != 0 {
		query += " AND company_id = ?"
		args = append(args, companyID)
	}
	if fromDate != "" {
		query += " AND date >= ?"
		args = append(args, fromDate)
	}
	if toDate != "" {
		query += " AND date <= ?"
		args = append(args, toDate)
	}
	query += " ORDER BY date"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip legs: %w", err)
	}
	defer rows.Close()

	var legs []fleet.TripLeg
	for rows.Next() {
		var leg fleet.TripLeg
		if err := rows.Scan(&leg.ID, &leg.CompanyID, &leg.AssignmentID,
			&leg.Date, &leg.Jurisdiction, &leg.Miles, &leg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip leg: %w", err)
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}
