package store

import (
	"fmt"

	"freightquick/internal/fleet"
)

// ListPayRecords returns pay records with driver fields joined in, most
// recent week first. driverID 0 lists all drivers.
func (s *Store) ListPayRecords(companyID, driverID int64) ([]fleet.PayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT p.id, p.driver_id, COALESCE(p.load_id,0), p.week_ending,
			p.gross_pay, p.fuel_deduction, p.insurance_deduction,
			p.advance_deduction, p.other_deduction, COALESCE(p.notes,''), p.created_at,
			d.username, d.full_name, d.driver_type
		FROM pay_records p JOIN drivers d ON p.driver_id = d.id WHERE 1=1`
	var args []any
	if companyID != 0 {
		query += " AND d.company_id = ?"
		args = append(args, companyID)
	}
	if driverID != 0 {
		query += " AND p.driver_id = ?"
		args = append(args, driverID)
	}
	query += " ORDER BY p.week_ending DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay records: %w", err)
	}
	defer rows.Close()

	var records []fleet.PayRecord
	for rows.Next() {
		var p fleet.PayRecord
		if err := rows.Scan(&p.ID, &p.DriverID, &p.LoadID, &p.WeekEnding,
			&p.GrossPay, &p.FuelDeduction, &p.InsuranceDeduction,
			&p.AdvanceDeduction, &p.OtherDeduction, &p.Notes, &p.CreatedAt,
			&p.Username, &p.FullName, &p.DriverType); err != nil {
			return nil, fmt.Errorf("failed to scan pay record: %w", err)
		}
		p.Derive()
		records = append(records, p)
	}
	return records, rows.Err()
}

// CreatePayRecord inserts a weekly settlement and returns its id.
func (s *Store) CreatePayRecord(p fleet.PayRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var loadID any
	if p.LoadID != 0 {
		loadID = p.LoadID
	}
	res, err := s.db.Exec(
		`INSERT INTO pay_records (driver_id, load_id, week_ending, gross_pay,
			fuel_deduction, insurance_deduction, advance_deduction, other_deduction, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.DriverID, loadID, p.WeekEnding, p.GrossPay, p.FuelDeduction,
		p.InsuranceDeduction, p.AdvanceDeduction, p.OtherDeduction, p.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to create pay record: %w", err)
	}
	return res.LastInsertId()
}

// PaySummary aggregates gross, deductions and net across a company's records.
type PaySummary struct {
	TotalGross      float64 `json:"total_gross"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalNet        float64 `json:"total_net"`
	TotalRecords    int     `json:"total_records"`
}

// GetPaySummary computes settlement totals for a company (0 = all).
func (s *Store) GetPaySummary(companyID int64) (PaySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT COALESCE(SUM(p.gross_pay),0),
			COALESCE(SUM(p.fuel_deduction + p.insurance_deduction + p.advance_deduction + p.other_deduction),0),
			COUNT(*)
		FROM pay_records p JOIN drivers d ON p.driver_id = d.id`
	var args []any
	if companyID != 0 {
		query += " WHERE d.company_id = ?"
		args = append(args, companyID)
	}

	var sum PaySummary
	if err := s.db.QueryRow(query, args...).Scan(&sum.TotalGross, &sum.TotalDeductions, &sum.TotalRecords); err != nil {
		return sum, fmt.Errorf("failed to summarize pay: %w", err)
	}
	sum.TotalGross = fleet.Round2(sum.TotalGross)
	sum.TotalDeductions = fleet.Round2(sum.TotalDeductions)
	sum.TotalNet = fleet.Round2(sum.TotalGross - sum.TotalDeductions)
	return sum, nil
}
