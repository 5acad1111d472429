// Versioned column-add migrations for existing FreightQuick databases.
// Earlier deployments predate tenancy, trials and the fuel/IFTA tables;
// these bring an old file up to the current schema without a rebuild.
package store

import (
	"database/sql"
	"fmt"
)

// Migration adds one column to an existing table.
type Migration struct {
	Table  string
	Column string
	Def    string
}

// pendingMigrations lists all schema migrations to apply. These handle
// databases created before the column existed; table creation itself is
// covered by initialize.
var pendingMigrations = []Migration{
	// Tenancy columns (added with the multi-tenant variant)
	{"drivers", "company_id", "INTEGER DEFAULT 1"},
	{"loads", "company_id", "INTEGER DEFAULT 1"},
	{"insurance_policies", "company_id", "INTEGER DEFAULT 1"},
	// Trial/billing columns on companies
	{"companies", "trial_ends_at", "TEXT"},
	{"companies", "is_subscribed", "INTEGER DEFAULT 0"},
	// Invite flow columns on users
	{"users", "invite_token", "TEXT"},
	{"users", "is_active", "INTEGER DEFAULT 1"},
	// Odometer tracking added after the first fuel-log release
	{"fuel_logs", "odometer", "REAL DEFAULT 0"},
}

// RunMigrations applies schema migrations for existing databases. Missing
// tables are skipped quietly; initialize owns table creation.
func RunMigrations(db *sql.DB) error {
	for _, m := range pendingMigrations {
		if !tableExists(db, m.Table) {
			continue
		}
		if columnExists(db, m.Table, m.Column) {
			continue
		}
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("migration %s.%s failed: %w", m.Table, m.Column, err)
		}
	}
	return nil
}

func tableExists(db *sql.DB, table string) bool {
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
	).Scan(&name)
	return err == nil
}

func columnExists(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}
