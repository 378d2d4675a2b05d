package models

import "time"

// Role is the enumerated role stored on an account and carried in tokens.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return true
	}
	return false
}

// Status is the lifecycle state of an account.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusBlocked    Status = "blocked"
)

// Account is the stored user record the authenticator reads. Password holds
// the bcrypt hash, never the plaintext.
type Account struct {
	ID                  string     `db:"id"`
	Password            string     `db:"password"`
	Role                Role       `db:"role"`
	Status              Status     `db:"status"`
	IsDeleted           bool       `db:"is_deleted"`
	NeedsPasswordChange bool       `db:"needs_password_change"`
	PasswordChangedAt   *time.Time `db:"password_changed_at"`
}

// AccountUpdate is the narrow set of fields the authenticator may write.
type AccountUpdate struct {
	Password            string
	NeedsPasswordChange bool
	PasswordChangedAt   time.Time
}
