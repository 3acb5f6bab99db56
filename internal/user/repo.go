package user

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// Repository persists portal accounts in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const userColumns = `user_id, name, email, role, reg_num, department, year, password_hash, created_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.RegNum, &u.Department, &u.Year, &u.PasswordHash, &u.CreatedAt, &u.LastLoginAt)
	return u, err
}

// GetByEmail returns the account registered under email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE lower(email) = lower($1)
	`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// GetByID returns the account with the given id.
func (r *Repository) GetByID(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE user_id = $1
	`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// StudentByNameAndRegNum resolves a student from the exact pair a complaint
// form submits.
func (r *Repository) StudentByNameAndRegNum(ctx context.Context, name, regNum string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = 'student' AND upper(reg_num) = upper($1) AND name = $2
	`, regNum, name)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// ListRoster returns the student roster ordered by name.
func (r *Repository) ListRoster(ctx context.Context) ([]RosterEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, reg_num FROM users
		WHERE role = 'student' AND reg_num IS NOT NULL
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []RosterEntry
	for rows.Next() {
		var e RosterEntry
		if err := rows.Scan(&e.Name, &e.RegNum); err != nil {
			return nil, err
		}
		roster = append(roster, e)
	}
	return roster, rows.Err()
}

// TouchLastLogin records a successful login.
func (r *Repository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = $2 WHERE user_id = $1`, id, at)
	return err
}
