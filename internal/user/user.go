package user

import "time"

// Roles recognised by the portal.
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// User is a portal account. RegNum, Department and Year are only populated
// for students.
type User struct {
	ID           string     `json:"user_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	RegNum       *string    `json:"reg_num,omitempty"`
	Department   *string    `json:"department,omitempty"`
	Year         *int       `json:"year,omitempty"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// RosterEntry is the authoritative {name, reg_num} pair scanned ID cards are
// reconciled against.
type RosterEntry struct {
	Name   string `json:"name"`
	RegNum string `json:"reg_num"`
}
