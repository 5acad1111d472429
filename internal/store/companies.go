package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"freightquick/internal/fleet"
)

// ErrEmailTaken reports a signup or invite against an email that already has
// an account.
var ErrEmailTaken = fmt.Errorf("email already registered")

// CreateCompany creates a tenant plus its first manager user in one
// transaction. trialEnds is stored as RFC 3339. Returns company and user ids.
func (s *Store) CreateCompany(c fleet.Company, managerName, managerEmail, passwordHash string, trialEnds time.Time) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin signup tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO companies (company_name, dot_number, email, trial_ends_at, is_subscribed)
		 VALUES (?, ?, ?, ?, 0)`,
		c.CompanyName, c.DOTNumber, c.Email, trialEnds.UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, 0, ErrEmailTaken
		}
		return 0, 0, fmt.Errorf("failed to create company: %w", err)
	}
	companyID, err := res.LastInsertId()
	if err != nil {
		return 0, 0, err
	}

	res, err = tx.Exec(
		`INSERT INTO users (company_id, full_name, email, password_hash, role)
		 VALUES (?, ?, ?, ?, 'manager')`,
		companyID, managerName, managerEmail, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, 0, ErrEmailTaken
		}
		return 0, 0, fmt.Errorf("failed to create manager user: %w", err)
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit signup: %w", err)
	}
	return companyID, userID, nil
}

// GetUserByEmail fetches a user with the company name joined in.
func (s *Store) GetUserByEmail(email string) (fleet.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u fleet.User
	var isActive int
	err := s.db.QueryRow(
		`SELECT u.id, u.company_id, u.full_name, u.email, u.password_hash,
			u.role, COALESCE(u.invite_token,''), u.is_active, u.created_at, co.company_name
		 FROM users u JOIN companies co ON u.company_id = co.id
		 WHERE u.email = ?`, email,
	).Scan(&u.ID, &u.CompanyID, &u.FullName, &u.Email, &u.PasswordHash,
		&u.Role, &u.InviteToken, &isActive, &u.CreatedAt, &u.CompanyName)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("failed to get user by email: %w", err)
	}
	u.IsActive = isActive != 0
	return u, nil
}

// GetUserByID fetches a user with the company name joined in.
func (s *Store) GetUserByID(id int64) (fleet.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u fleet.User
	var isActive int
	err := s.db.QueryRow(
		`SELECT u.id, u.company_id, u.full_name, u.email, u.password_hash,
			u.role, COALESCE(u.invite_token,''), u.is_active, u.created_at, co.company_name
		 FROM users u JOIN companies co ON u.company_id = co.id
		 WHERE u.id = ?`, id,
	).Scan(&u.ID, &u.CompanyID, &u.FullName, &u.Email, &u.PasswordHash,
		&u.Role, &u.InviteToken, &isActive, &u.CreatedAt, &u.CompanyName)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	u.IsActive = isActive != 0
	return u, nil
}

// InviteUser creates an inactive driver user carrying an invite token.
func (s *Store) InviteUser(companyID int64, fullName, email, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO users (company_id, full_name, email, password_hash, role, invite_token, is_active)
		 VALUES (?, ?, ?, '', 'driver', ?, 0)`,
		companyID, fullName, email, token)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("failed to invite user: %w", err)
	}
	return res.LastInsertId()
}

// PromoteSuperadmin grants the superadmin role to the user with this email.
func (s *Store) PromoteSuperadmin(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE users SET role = 'superadmin' WHERE email = ?", email)
	if err != nil {
		return fmt.Errorf("failed to promote superadmin: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateSession stores a bearer token for a logged-in user.
func (s *Store) CreateSession(token string, userID, companyID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO sessions (token, user_id, company_id) VALUES (?, ?, ?)",
		token, userID, companyID)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession resolves a bearer token to (userID, companyID).
func (s *Store) GetSession(token string) (int64, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var userID, companyID int64
	err := s.db.QueryRow(
		"SELECT user_id, company_id FROM sessions WHERE token = ?", token,
	).Scan(&userID, &companyID)
	if err == sql.ErrNoRows {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get session: %w", err)
	}
	return userID, companyID, nil
}

// GetCompany fetches one tenant.
func (s *Store) GetCompany(id int64) (fleet.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c fleet.Company
	var subscribed int
	var trialEnds sql.NullString
	err := s.db.QueryRow(
		`SELECT id, company_name, COALESCE(dot_number,''), email, trial_ends_at,
			is_subscribed, created_at
		 FROM companies WHERE id = ?`, id,
	).Scan(&c.ID, &c.CompanyName, &c.DOTNumber, &c.Email, &trialEnds,
		&subscribed, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	if err != nil {
		return c, fmt.Errorf("failed to get company %d: %w", id, err)
	}
	c.IsSubscribed = subscribed != 0
	if trialEnds.Valid {
		c.TrialEndsAt = trialEnds.String
	}
	return c, nil
}

// SetSubscribed flips a company's subscription flag.
func (s *Store) SetSubscribed(companyID int64, subscribed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := 0
	if subscribed {
		v = 1
	}
	_, err := s.db.Exec("UPDATE companies SET is_subscribed = ? WHERE id = ?", v, companyID)
	if err != nil {
		return fmt.Errorf("failed to set subscription: %w", err)
	}
	return nil
}

// ListCompanies returns every tenant with user counts, newest first. Serves
// the superadmin console.
func (s *Store) ListCompanies() ([]fleet.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT co.id, co.company_name, COALESCE(co.dot_number,''), co.email,
			COALESCE(co.trial_ends_at,''), co.is_subscribed, co.created_at,
			COUNT(u.id),
			COALESCE(SUM(CASE WHEN u.role = 'manager' THEN 1 ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN u.role = 'driver' THEN 1 ELSE 0 END),0)
		 FROM companies co LEFT JOIN users u ON co.id = u.company_id
		 GROUP BY co.id ORDER BY co.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []fleet.Company
	for rows.Next() {
		var c fleet.Company
		var subscribed int
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.DOTNumber, &c.Email,
			&c.TrialEndsAt, &subscribed, &c.CreatedAt, &c.TotalUsers,
			&c.Managers, &c.Drivers); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		c.IsSubscribed = subscribed != 0
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
