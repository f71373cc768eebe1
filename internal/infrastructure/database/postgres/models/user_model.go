package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel represents the database model for User
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username       string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	FullName       string    `gorm:"type:varchar(255);not null"`
	PasswordHashed string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(50);not null"`
	IsActive       bool      `gorm:"not null"`
	LastLoginAt    *time.Time
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// AuditLogModel represents one row of the audit trail.
type AuditLogModel struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Entity    string            `gorm:"type:varchar(50);not null;index:idx_audit_entity"`
	EntityID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_audit_entity"`
	Action    string            `gorm:"type:varchar(50);not null"`
	Actor     string            `gorm:"type:varchar(100);not null"`
	Details   datatypes.JSONMap `gorm:"not null"`
	CreatedAt time.Time         `gorm:"not null;index"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
