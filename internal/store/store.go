// Package store implements the FreightQuick relational store on SQLite.
// One Store wraps a single database; every fleet table carries a company_id
// so tenants never see each other's rows.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed fleet store.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the SQLite database at the given path and creates the
// schema. Pass ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; serializing through a single conn avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB exposes the raw handle for migrations and tests.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_name TEXT NOT NULL,
			dot_number TEXT,
			email TEXT UNIQUE NOT NULL,
			trial_ends_at TEXT,
			is_subscribed INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_id INTEGER NOT NULL,
			full_name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT DEFAULT 'driver',
			invite_token TEXT,
			is_active INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_users_company ON users(company_id);`,

		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			company_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS drivers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_id INTEGER DEFAULT 1,
			username TEXT UNIQUE NOT NULL,
			full_name TEXT NOT NULL,
			status TEXT DEFAULT 'available',
			driver_type TEXT DEFAULT 'OTR',
			home_base TEXT,
			current_location TEXT,
			loads_completed INTEGER DEFAULT 0,
			on_time_rate REAL DEFAULT 0.95,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_drivers_company ON drivers(company_id);
		CREATE INDEX IF NOT EXISTS idx_drivers_status ON drivers(status);`,

		`CREATE TABLE IF NOT EXISTS loads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_id INTEGER DEFAULT 1,
			load_number TEXT UNIQUE NOT NULL,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			pickup_date TEXT,
			delivery_date TEXT,
			weight REAL,
			miles REAL,
			rate REAL,
			status TEXT DEFAULT 'available',
			assigned_driver_id INTEGER,
			load_type TEXT DEFAULT 'OTR',
			commodity TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_loads_company ON loads(company_id);
		CREATE INDEX IF NOT EXISTS idx_loads_status ON loads(status);`,

		`CREATE TABLE IF NOT EXISTS assignments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			driver_id INTEGER NOT NULL,
			load_id INTEGER NOT NULL,
			match_score REAL DEFAULT 0.0,
			match_type TEXT,
			status TEXT DEFAULT 'active',
			assigned_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_assignments_driver ON assignments(driver_id);
		CREATE INDEX IF NOT EXISTS idx_assignments_load ON assignments(load_id);`,

		`CREATE TABLE IF NOT EXISTS routes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			assignment_id INTEGER NOT NULL,
			waypoints TEXT,
			total_miles REAL,
			estimated_hours REAL,
			fuel_cost REAL,
			toll_cost REAL,
			optimized_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_routes_assignment ON routes(assignment_id);`,

		`CREATE TABLE IF NOT EXISTS compliance (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			driver_id INTEGER UNIQUE NOT NULL,
			cdl_expiry TEXT,
			medical_card_expiry TEXT,
			mvr_date TEXT,
			drug_test_date TEXT,
			annual_inspection_expiry TEXT,
			notes TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS pay_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			driver_id INTEGER NOT NULL,
			load_id INTEGER,
			week_ending TEXT NOT NULL,
			gross_pay REAL DEFAULT 0,
			fuel_deduction REAL DEFAULT 0,
			insurance_deduction REAL DEFAULT 0,
			advance_deduction REAL DEFAULT 0,
			other_deduction REAL DEFAULT 0,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_pay_driver ON pay_records(driver_id);`,

		`CREATE TABLE IF NOT EXISTS insurance_policies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_id INTEGER DEFAULT 1,
			truck_number TEXT NOT NULL,
			policy_number TEXT NOT NULL,
			provider TEXT NOT NULL,
			policy_type TEXT NOT NULL,
			premium REAL DEFAULT 0,
			expiry_date TEXT NOT NULL,
			coverage_amount REAL DEFAULT 0,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_insurance_company ON insurance_policies(company_id);`,

		`CREATE TABLE IF NOT EXISTS inspections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_id INTEGER DEFAULT 1,
			driver_id INTEGER NOT NULL,
			truck_number TEXT,
			inspection_type TEXT DEFAULT 'annual',
			date TEXT NOT NULL,
			result TEXT DEFAULT 'pass',
			violations TEXT,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_inspections_company ON inspections(company_id);
		CREATE INDEX IF NOT EXISTS idx_inspections_driver ON inspections(driver_id);`,

		`CREATE TABLE IF NOT EXISTS fuel_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_id INTEGER DEFAULT 1,
			driver_id INTEGER NOT NULL,
			truck_number TEXT,
			date TEXT NOT NULL,
			jurisdiction TEXT NOT NULL,
			gallons REAL NOT NULL,
			price_per_gallon REAL DEFAULT 0,
			total_cost REAL DEFAULT 0,
			odometer REAL DEFAULT 0,
			location TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_fuel_company ON fuel_logs(company_id);
		CREATE INDEX IF NOT EXISTS idx_fuel_jurisdiction ON fuel_logs(jurisdiction);
		CREATE INDEX IF NOT EXISTS idx_fuel_date ON fuel_logs(date);`,

		`CREATE TABLE IF NOT EXISTS trip_legs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_id INTEGER DEFAULT 1,
			assignment_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			jurisdiction TEXT NOT NULL,
			miles REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_trips_company ON trip_legs(company_id);
		CREATE INDEX IF NOT EXISTS idx_trips_date ON trip_legs(date);`,
	}

	for _, schema := range schemas {
		if _, err := s.db.Exec(schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// GetStats returns row counts per table, keyed by table name.
func (s *Store) GetStats() (map[string]int, error) {
	tables := []string{
		"companies", "users", "sessions", "drivers", "loads", "assignments",
		"routes", "compliance", "pay_records", "insurance_policies",
		"inspections", "fuel_logs", "trip_legs",
	}
	stats := make(map[string]int, len(tables))
	for _, table := range tables {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats[table] = n
	}
	return stats, nil
}
