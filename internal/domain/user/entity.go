package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents an operator account of the inventory office
type User struct {
	ID             uuid.UUID
	Username       string
	FullName       string
	PasswordHashed string
	Role           Role
	IsActive       bool
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// CanWrite reports whether the role may change inventory or loans.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleOperator
}
