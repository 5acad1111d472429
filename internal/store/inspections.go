package store

import (
	"fmt"

	"freightquick/internal/fleet"
)

// InspectionFilter narrows ListInspections. Zero values mean no filter.
type InspectionFilter struct {
	CompanyID   int64
	DriverID    int64
	TruckNumber string
}

// ListInspections returns inspection events with driver names joined in,
// newest first.
func (s *Store) ListInspections(f InspectionFilter) ([]fleet.Inspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT i.id, i.company_id, i.driver_id, COALESCE(i.truck_number,''),
			i.inspection_type, i.date, i.result, COALESCE(i.violations,''),
			COALESCE(i.notes,''), i.created_at, d.username, d.full_name
		FROM inspections i JOIN drivers d ON i.driver_id = d.id WHERE 1=1`
	var args []any
	if f.CompanyID != 0 {
		query += " AND i.company_id = ?"
		args = append(args, f.CompanyID)
	}
	if f.DriverID != 0 {
		query += " AND i.driver_id = ?"
		args = append(args, f.DriverID)
	}
	if f.TruckNumber != "" {
		query += " AND i.truck_number = ?"
		args = append(args, f.TruckNumber)
	}
	query += " ORDER BY i.date DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inspections: %w", err)
	}
	defer rows.Close()

	var inspections []fleet.Inspection
	for rows.Next() {
		var i fleet.Inspection
		if err := rows.Scan(&i.ID, &i.CompanyID, &i.DriverID, &i.TruckNumber,
			&i.InspectionType, &i.Date, &i.Result, &i.Violations, &i.Notes,
			&i.CreatedAt, &i.Username, &i.FullName); err != nil {
			return nil, fmt.Errorf("failed to scan inspection: %w", err)
		}
		inspections = append(inspections, i)
	}
	return inspections, rows.Err()
}

// CreateInspection inserts an inspection event and returns its id.
func (s *Store) CreateInspection(i fleet.Inspection) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i.CompanyID == 0 {
		i.CompanyID = 1
	}
	if i.InspectionType == "" {
		i.InspectionType = "annual"
	}
	if i.Result == "" {
		i.Result = "pass"
	}
	res, err := s.db.Exec(
		`INSERT INTO inspections (company_id, driver_id, truck_number,
			inspection_type, date, result, violations, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		i.CompanyID, i.DriverID, i.TruckNumber, i.InspectionType, i.Date,
		i.Result, i.Violations, i.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to create inspection: %w", err)
	}
	return res.LastInsertId()
}

// InspectionSummary aggregates inspection outcomes for a company.
type InspectionSummary struct {
	Total          int     `json:"total"`
	Passed         int     `json:"passed"`
	Failed         int     `json:"failed"`
	PassRate       float64 `json:"pass_rate"`
	WithViolations int     `json:"with_violations"`
}

// GetInspectionSummary computes inspection outcome counts (0 = all).
func (s *Store) GetInspectionSummary(companyID int64) (InspectionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN result = 'pass' THEN 1 ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN result = 'fail' THEN 1 ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN COALESCE(violations,'') != '' THEN 1 ELSE 0 END),0)
		FROM inspections`
	var args []any
	if companyID != 0 {
		query += " WHERE company_id = ?"
		args = append(args, companyID)
	}

	var sum InspectionSummary
	if err := s.db.QueryRow(query, args...).Scan(&sum.Total, &sum.Passed, &sum.Failed, &sum.WithViolations); err != nil {
		return sum, fmt.Errorf("failed to summarize inspections: %w", err)
	}
	if sum.Total > 0 {
		sum.PassRate = fleet.Round1(float64(sum.Passed) / float64(sum.Total) * 100)
	}
	return sum, nil
}
