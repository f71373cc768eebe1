package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is an entry of the personnel registry
type Employee struct {
	ID         uuid.UUID
	FullName   string
	NationalID string
	Position   *string
	Department *string
	Email      *string
	Phone      *string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
