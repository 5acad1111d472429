package store

import (
	"fmt"

	"freightquick/internal/fleet"
)

// FuelFilter narrows ListFuelLogs. Zero values mean no filter; FromDate and
// ToDate are inclusive YYYY-MM-DD bounds.
type FuelFilter struct {
	CompanyID    int64
	DriverID     int64
	Jurisdiction string
	FromDate     string
	ToDate       string
}

// ListFuelLogs returns fuel purchases with driver names joined in, newest
// first.
func (s *Store) ListFuelLogs(f FuelFilter) ([]fleet.FuelLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT fl.id, fl.company_id, fl.driver_id, COALESCE(fl.truck_number,''),
			fl.date, fl.jurisdiction, fl.gallons, fl.price_per_gallon,
			fl.total_cost, fl.odometer, COALESCE(fl.location,''), fl.created_at,
			d.username, d.full_name
		FROM fuel_logs fl JOIN drivers d ON fl.driver_id = d.id WHERE 1=1`
	var args []any
	if f.CompanyID != 0 {
		query += " AND fl.company_id = ?"
		args = append(args, f.CompanyID)
	}
	if f.DriverID != 0 {
		query += " AND fl.driver_id = ?"
		args = append(args, f.DriverID)
	}
	if f.Jurisdiction != "" {
		query += " AND fl.jurisdiction = ?"
		args = append(args, f.Jurisdiction)
	}
	if f.FromDate != "" {
		query += " AND fl.date >= ?"
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		query += " AND fl.date <= ?"
		args = append(args, f.ToDate)
	}
	query += " ORDER BY fl.date DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fuel logs: %w", err)
	}
	defer rows.Close()

	var logs []fleet.FuelLog
	for rows.Next() {
		var fl fleet.FuelLog
		if err := rows.Scan(&fl.ID, &fl.CompanyID, &fl.DriverID, &fl.TruckNumber,
			&fl.Date, &fl.Jurisdiction, &fl.Gallons, &fl.PricePerGallon,
			&fl.TotalCost, &fl.Odometer, &fl.Location, &fl.CreatedAt,
			&fl.Username, &fl.FullName); err != nil {
			return nil, fmt.Errorf("failed to scan fuel log: %w", err)
		}
		logs = append(logs, fl)
	}
	return logs, rows.Err()
}

// CreateFuelLog inserts a fuel purchase and returns its id. TotalCost is
// derived from gallons and price when omitted.
func (s *Store) CreateFuelLog(fl fleet.FuelLog) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fl.CompanyID == 0 {
		fl.CompanyID = 1
	}
	if fl.TotalCost == 0 && fl.PricePerGallon > 0 {
		fl.TotalCost = fleet.Round2(fl.Gallons * fl.PricePerGallon)
	}

	res, err := s.db.Exec(
		`INSERT INTO fuel_logs (company_id, driver_id, truck_number, date,
			jurisdiction, gallons, price_per_gallon, total_cost, odometer, location)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fl.CompanyID, fl.DriverID, fl.TruckNumber, fl.Date, fl.Jurisdiction,
		fl.Gallons, fl.PricePerGallon, fl.TotalCost, fl.Odometer, fl.Location)
	if err != nil {
		return 0, fmt.Errorf("failed to create fuel log: %w", err)
	}
	return res.LastInsertId()
}

// FuelJurisdictionTotal aggregates gallons and spend per jurisdiction.
type FuelJurisdictionTotal struct {
	Jurisdiction string  `json:"jurisdiction"`
	Purchases    int     `json:"purchases"`
	Gallons      float64 `json:"gallons"`
	TotalCost    float64 `json:"total_cost"`
}

// GetFuelSummary totals fuel purchases per jurisdiction over an optional
// inclusive date range.
func (s *Store) GetFuelSummary(companyID int64, fromDate, toDate string) ([]FuelJurisdictionTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT jurisdiction, COUNT(*), COALESCE(SUM(gallons),0), COALESCE(SUM(total_cost),0)
		FROM fuel_logs WHERE 1=1`
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
	query += " GROUP BY jurisdiction ORDER BY jurisdiction"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize fuel: %w", err)
	}
	defer rows.Close()

	var totals []FuelJurisdictionTotal
	for rows.Next() {
		var t FuelJurisdictionTotal
		if err := rows.Scan(&t.Jurisdiction, &t.Purchases, &t.Gallons, &t.TotalCost); err != nil {
			return nil, fmt.Errorf("failed to scan fuel total: %w", err)
		}
		t.Gallons = fleet.Round2(t.Gallons)
		t.TotalCost = fleet.Round2(t.TotalCost)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
