package store

import (
	"fmt"

	"freightquick/internal/fleet"
)

// Seed inserts the demo fleet under company 1 if the drivers table is empty.
// Safe to call on every boot.
func (s *Store) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM drivers").Scan(&n); err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if n > 0 {
		return nil
	}

	drivers := []fleet.Driver{
		{Username: "IGRAU", FullName: "Ivan Grau", Status: "available", DriverType: "OTR", HomeBase: "Chicago, IL", CurrentLocation: "Indianapolis, IN", LoadsCompleted: 142, OnTimeRate: 0.97},
		{Username: "LSANCHEZ", FullName: "Luis Sanchez", Status: "on_load", DriverType: "OTR", HomeBase: "Dallas, TX", CurrentLocation: "Memphis, TN", LoadsCompleted: 218, OnTimeRate: 0.95},
		{Username: "JTORO", FullName: "James Toro", Status: "available", DriverType: "Solo", HomeBase: "Atlanta, GA", CurrentLocation: "Atlanta, GA", LoadsCompleted: 89, OnTimeRate: 0.93},
		{Username: "MWILSON", FullName: "Mike Wilson", Status: "available", DriverType: "Regional", HomeBase: "Phoenix, AZ", CurrentLocation: "Tucson, AZ", LoadsCompleted: 301, OnTimeRate: 0.98},
		{Username: "SLEONARDS", FullName: "Sarah Leonards", Status: "on_load", DriverType: "OTR", HomeBase: "Seattle, WA", CurrentLocation: "Portland, OR", LoadsCompleted: 176, OnTimeRate: 0.94},
		{Username: "JRINALDI", FullName: "Joe Rinaldi", Status: "available", DriverType: "OTR", HomeBase: "Denver, CO", CurrentLocation: "Salt Lake City, UT", LoadsCompleted: 203, OnTimeRate: 0.96},
		{Username: "JABIAS", FullName: "Juan Abias", Status: "available", DriverType: "OTR", HomeBase: "Houston, TX", CurrentLocation: "New Orleans, LA", LoadsCompleted: 155, OnTimeRate: 0.91},
		{Username: "CSMITH", FullName: "Carol Smith", Status: "off_duty", DriverType: "Solo", HomeBase: "Miami, FL", CurrentLocation: "Miami, FL", LoadsCompleted: 67, OnTimeRate: 0.99},
		{Username: "DVARGAS", FullName: "David Vargas", Status: "available", DriverType: "Regional", HomeBase: "Los Angeles, CA", CurrentLocation: "San Diego, CA", LoadsCompleted: 412, OnTimeRate: 0.97},
		{Username: "MRUSSO", FullName: "Marco Russo", Status: "on_load", DriverType: "Regional", HomeBase: "Boston, MA", CurrentLocation: "Providence, RI", LoadsCompleted: 198, OnTimeRate: 0.92},
		{Username: "ISANCHEZ", FullName: "Isabella Sanchez", Status: "available", DriverType: "Solo", HomeBase: "Nashville, TN", CurrentLocation: "Louisville, KY", LoadsCompleted: 88, OnTimeRate: 0.95},
	}
	for _, d := range drivers {
		if _, err := s.db.Exec(
			`INSERT INTO drivers (company_id, username, full_name, status, driver_type,
				home_base, current_location, loads_completed, on_time_rate)
			 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.Username, d.FullName, d.Status, d.DriverType, d.HomeBase,
			d.CurrentLocation, d.LoadsCompleted, d.OnTimeRate); err != nil {
			return fmt.Errorf("failed to seed driver %s: %w", d.Username, err)
		}
	}

	loads := []fleet.Load{
		{LoadNumber: "010192-206", Origin: "Chicago, IL", Destination: "Detroit, MI", PickupDate: "2026-02-18", DeliveryDate: "2026-02-19", Weight: 42000, Miles: 283, Rate: 1850, Status: "available", LoadType: "OTR", Commodity: "Auto Parts"},
		{LoadNumber: "010202-476", Origin: "Dallas, TX", Destination: "Nashville, TN", PickupDate: "2026-02-18", DeliveryDate: "2026-02-20", Weight: 38000, Miles: 678, Rate: 2200, Status: "available", LoadType: "OTR", Commodity: "Consumer Goods"},
		{LoadNumber: "010202-477", Origin: "Atlanta, GA", Destination: "Charlotte, NC", PickupDate: "2026-02-19", DeliveryDate: "2026-02-19", Weight: 25000, Miles: 244, Rate: 1100, Status: "available", LoadType: "OTR", Commodity: "Electronics"},
		{LoadNumber: "010202-478", Origin: "Phoenix, AZ", Destination: "Las Vegas, NV", PickupDate: "2026-02-18", DeliveryDate: "2026-02-18", Weight: 18000, Miles: 297, Rate: 950, Status: "available", LoadType: "Solo", Commodity: "Food & Bev"},
		{LoadNumber: "010202-479", Origin: "Denver, CO", Destination: "Kansas City, MO", PickupDate: "2026-02-19", DeliveryDate: "2026-02-20", Weight: 44000, Miles: 601, Rate: 2400, Status: "in_transit", LoadType: "Regional", Commodity: "Industrial"},
		{LoadNumber: "010202-480", Origin: "Houston, TX", Destination: "San Antonio, TX", PickupDate: "2026-02-18", DeliveryDate: "2026-02-18", Weight: 21000, Miles: 197, Rate: 780, Status: "available", LoadType: "Regional", Commodity: "Chemicals"},
		{LoadNumber: "010207-481", Origin: "Seattle, WA", Destination: "Sacramento, CA", PickupDate: "2026-02-20", DeliveryDate: "2026-02-22", Weight: 36000, Miles: 750, Rate: 2800, Status: "available", LoadType: "OTR", Commodity: "Tech Equipment"},
		{LoadNumber: "010202-320", Origin: "Boston, MA", Destination: "New York, NY", PickupDate: "2026-02-18", DeliveryDate: "2026-02-18", Weight: 15000, Miles: 215, Rate: 890, Status: "delivered", LoadType: "Solo", Commodity: "Pharmaceuticals"},
		{LoadNumber: "010202-321", Origin: "Miami, FL", Destination: "Orlando, FL", PickupDate: "2026-02-19", DeliveryDate: "2026-02-19", Weight: 28000, Miles: 235, Rate: 1050, Status: "available", LoadType: "OTR", Commodity: "Retail Goods"},
	}
	for _, l := range loads {
		if _, err := s.db.Exec(
			`INSERT INTO loads (company_id, load_number, origin, destination,
				pickup_date, delivery_date, weight, miles, rate, status, load_type, commodity)
			 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.LoadNumber, l.Origin, l.Destination, l.PickupDate, l.DeliveryDate,
			l.Weight, l.Miles, l.Rate, l.Status, l.LoadType, l.Commodity); err != nil {
			return fmt.Errorf("failed to seed load %s: %w", l.LoadNumber, err)
		}
	}

	return nil
}
