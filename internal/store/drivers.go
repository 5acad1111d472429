package store

import (
	"database/sql"
	"fmt"
	"strings"

	"freightquick/internal/fleet"
)

// DriverFilter narrows ListDrivers. Zero values mean no filter.
type DriverFilter struct {
	CompanyID int64
	Status    string
}

const driverCols = `id, company_id, username, full_name, status, driver_type,
	COALESCE(home_base,''), COALESCE(current_location,''), loads_completed, on_time_rate, created_at`

func scanDriver(row interface{ Scan(...any) error }) (fleet.Driver, error) {
	var d fleet.Driver
	err := row.Scan(&d.ID, &d.CompanyID, &d.Username, &d.FullName, &d.Status,
		&d.DriverType, &d.HomeBase, &d.CurrentLocation, &d.LoadsCompleted,
		&d.OnTimeRate, &d.CreatedAt)
	return d, err
}

// ListDrivers returns drivers matching the filter, insertion order.
func (s *Store) ListDrivers(f DriverFilter) ([]fleet.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + driverCols + " FROM drivers"
	var conds []string
	var args []any
	if f.CompanyID != 0 {
		conds = append(conds, "company_id = ?")
		args = append(args, f.CompanyID)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []fleet.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// GetDriver fetches one driver by id.
func (s *Store) GetDriver(id int64) (fleet.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := scanDriver(s.db.QueryRow(
		"SELECT "+driverCols+" FROM drivers WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	if err != nil {
		return d, fmt.Errorf("failed to get driver %d: %w", id, err)
	}
	return d, nil
}

// AvailableDrivers returns the company's available drivers, best on-time rate
// first. Feeds the match engine.
func (s *Store) AvailableDrivers(companyID int64) ([]fleet.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + driverCols + " FROM drivers WHERE status = 'available'"
	var args []any
	if companyID != 0 {
		query += " AND company_id = ?"
		args = append(args, companyID)
	}
	query += " ORDER BY on_time_rate DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list available drivers: %w", err)
	}
	defer rows.Close()

	var drivers []fleet.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// CreateDriver inserts a driver and returns its id.
func (s *Store) CreateDriver(d fleet.Driver) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.Status == "" {
		d.Status = "available"
	}
	if d.DriverType == "" {
		d.DriverType = "OTR"
	}
	if d.CompanyID == 0 {
		d.CompanyID = 1
	}
	if d.OnTimeRate == 0 {
		d.OnTimeRate = 0.95
	}

	res, err := s.db.Exec(
		`INSERT INTO drivers (company_id, username, full_name, status, driver_type,
			home_base, current_location, loads_completed, on_time_rate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.CompanyID, d.Username, d.FullName, d.Status, d.DriverType,
		d.HomeBase, d.CurrentLocation, d.LoadsCompleted, d.OnTimeRate)
	if err != nil {
		return 0, fmt.Errorf("failed to create driver: %w", err)
	}
	return res.LastInsertId()
}

// UpdateDriver applies a partial update. Only keys present in fields are
// written; unknown keys are rejected.
func (s *Store) UpdateDriver(id int64, fields map[string]any) error {
	return s.partialUpdate("drivers", driverUpdatable, id, fields)
}

var driverUpdatable = map[string]bool{
	"username": true, "full_name": true, "status": true, "driver_type": true,
	"home_base": true, "current_location": true, "loads_completed": true,
	"on_time_rate": true,
}
