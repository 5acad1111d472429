package store

import (
	"fmt"

	"freightquick/internal/fleet"
)

// ListInsurance returns policies ordered soonest expiry first. Statuses are
// derived by the caller.
func (s *Store) ListInsurance(companyID int64) ([]fleet.InsurancePolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, company_id, truck_number, policy_number, provider,
			policy_type, premium, expiry_date, coverage_amount,
			COALESCE(notes,''), created_at
		FROM insurance_policies`
	var args []any
	if companyID != 0 {
		query += " WHERE company_id = ?"
		args = append(args, companyID)
	}
	query += " ORDER BY expiry_date ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance policies: %w", err)
	}
	defer rows.Close()

	var policies []fleet.InsurancePolicy
	for rows.Next() {
		var p fleet.InsurancePolicy
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.TruckNumber, &p.PolicyNumber,
			&p.Provider, &p.PolicyType, &p.Premium, &p.ExpiryDate,
			&p.CoverageAmount, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan insurance policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// CreateInsurance inserts a policy and returns its id.
func (s *Store) CreateInsurance(p fleet.InsurancePolicy) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.CompanyID == 0 {
		p.CompanyID = 1
	}
	res, err := s.db.Exec(
		`INSERT INTO insurance_policies (company_id, truck_number, policy_number,
			provider, policy_type, premium, expiry_date, coverage_amount, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.CompanyID, p.TruckNumber, p.PolicyNumber, p.Provider, p.PolicyType,
		p.Premium, p.ExpiryDate, p.CoverageAmount, p.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to create insurance policy: %w", err)
	}
	return res.LastInsertId()
}
