package store

import (
	"database/sql"
	"fmt"
	"strings"

	"freightquick/internal/fleet"
)

// LoadFilter narrows ListLoads. Zero values mean no filter.
type LoadFilter struct {
	CompanyID int64
	Status    string
}

// ListLoads returns loads with the assigned driver's name joined in, ordered
// by pickup date.
func (s *Store) ListLoads(f LoadFilter) ([]fleet.Load, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT l.id, l.company_id, l.load_number, l.origin, l.destination,
			COALESCE(l.pickup_date,''), COALESCE(l.delivery_date,''),
			COALESCE(l.weight,0), COALESCE(l.miles,0), COALESCE(l.rate,0),
			l.status, l.load_type, COALESCE(l.commodity,''),
			COALESCE(l.assigned_driver_id,0), l.created_at,
			COALESCE(d.username,''), COALESCE(d.full_name,'')
		FROM loads l LEFT JOIN drivers d ON l.assigned_driver_id = d.id`
	var conds []string
	var args []any
	if f.CompanyID != 0 {
		conds = append(conds, "l.company_id = ?")
		args = append(args, f.CompanyID)
	}
	if f.Status != "" {
		conds = append(conds, "l.status = ?")
		args = append(args, f.Status)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY l.pickup_date"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list loads: %w", err)
	}
	defer rows.Close()

	var loads []fleet.Load
	for rows.Next() {
		var l fleet.Load
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.LoadNumber, &l.Origin,
			&l.Destination, &l.PickupDate, &l.DeliveryDate, &l.Weight, &l.Miles,
			&l.Rate, &l.Status, &l.LoadType, &l.Commodity, &l.AssignedDriverID,
			&l.CreatedAt, &l.DriverUsername, &l.DriverName); err != nil {
			return nil, fmt.Errorf("failed to scan load: %w", err)
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

// GetLoad fetches one load by id.
func (s *Store) GetLoad(id int64) (fleet.Load, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var l fleet.Load
	err := s.db.QueryRow(
		`SELECT id, company_id, load_number, origin, destination,
			COALESCE(pickup_date,''), COALESCE(delivery_date,''),
			COALESCE(weight,0), COALESCE(miles,0), COALESCE(rate,0),
			status, load_type, COALESCE(commodity,''),
			COALESCE(assigned_driver_id,0), created_at
		 FROM loads WHERE id = ?`, id,
	).Scan(&l.ID, &l.CompanyID, &l.LoadNumber, &l.Origin, &l.Destination,
		&l.PickupDate, &l.DeliveryDate, &l.Weight, &l.Miles, &l.Rate,
		&l.Status, &l.LoadType, &l.Commodity, &l.AssignedDriverID, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return l, ErrNotFound
	}
	if err != nil {
		return l, fmt.Errorf("failed to get load %d: %w", id, err)
	}
	return l, nil
}

// CreateLoad inserts a load and returns its id.
func (s *Store) CreateLoad(l fleet.Load) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.Status == "" {
		l.Status = "available"
	}
	if l.LoadType == "" {
		l.LoadType = "OTR"
	}
	if l.CompanyID == 0 {
		l.CompanyID = 1
	}

	res, err := s.db.Exec(
		`INSERT INTO loads (company_id, load_number, origin, destination,
			pickup_date, delivery_date, weight, miles, rate, status, load_type, commodity)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.CompanyID, l.LoadNumber, l.Origin, l.Destination, l.PickupDate,
		l.DeliveryDate, l.Weight, l.Miles, l.Rate, l.Status, l.LoadType, l.Commodity)
	if err != nil {
		return 0, fmt.Errorf("failed to create load: %w", err)
	}
	return res.LastInsertId()
}

// UpdateLoad applies a partial update.
func (s *Store) UpdateLoad(id int64, fields map[string]any) error {
	return s.partialUpdate("loads", loadUpdatable, id, fields)
}

var loadUpdatable = map[string]bool{
	"load_number": true, "origin": true, "destination": true,
	"pickup_date": true, "delivery_date": true, "weight": true, "miles": true,
	"rate": true, "status": true, "load_type": true, "commodity": true,
	"assigned_driver_id": true,
}
