package store

import (
	"fmt"

	"freightquick/internal/fleet"
)

// ListCompliance returns compliance records with driver fields joined in,
// ordered by driver name. Statuses are derived by the caller.
func (s *Store) ListCompliance(companyID int64) ([]fleet.ComplianceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT co.id, co.driver_id, COALESCE(co.cdl_expiry,''),
			COALESCE(co.medical_card_expiry,''), COALESCE(co.mvr_date,''),
			COALESCE(co.drug_test_date,''), COALESCE(co.annual_inspection_expiry,''),
			COALESCE(co.notes,''), co.updated_at,
			d.username, d.full_name, d.driver_type
		FROM compliance co JOIN drivers d ON co.driver_id = d.id`
	var args []any
	if companyID != 0 {
		query += " WHERE d.company_id = ?"
		args = append(args, companyID)
	}
	query += " ORDER BY d.full_name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance: %w", err)
	}
	defer rows.Close()

	var records []fleet.ComplianceRecord
	for rows.Next() {
		var c fleet.ComplianceRecord
		if err := rows.Scan(&c.ID, &c.DriverID, &c.CDLExpiry, &c.MedicalCardExpiry,
			&c.MVRDate, &c.DrugTestDate, &c.AnnualInspectionExpiry, &c.Notes,
			&c.UpdatedAt, &c.Username, &c.FullName, &c.DriverType); err != nil {
			return nil, fmt.Errorf("failed to scan compliance record: %w", err)
		}
		records = append(records, c)
	}
	return records, rows.Err()
}

// UpsertCompliance writes the driver's compliance record, replacing any
// existing one (one record per driver).
func (s *Store) UpsertCompliance(c fleet.ComplianceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO compliance (driver_id, cdl_expiry, medical_card_expiry,
			mvr_date, drug_test_date, annual_inspection_expiry, notes, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (driver_id) DO UPDATE SET
			cdl_expiry = excluded.cdl_expiry,
			medical_card_expiry = excluded.medical_card_expiry,
			mvr_date = excluded.mvr_date,
			drug_test_date = excluded.drug_test_date,
			annual_inspection_expiry = excluded.annual_inspection_expiry,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP`,
		c.DriverID, c.CDLExpiry, c.MedicalCardExpiry, c.MVRDate,
		c.DrugTestDate, c.AnnualInspectionExpiry, c.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert compliance for driver %d: %w", c.DriverID, err)
	}
	return nil
}
