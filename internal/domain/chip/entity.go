package chip

import (
	"time"

	"github.com/google/uuid"
)

// Chip represents a satellite SIM in the inventory
type Chip struct {
	ID          uuid.UUID
	ICCID       string
	PhoneNumber *string
	Carrier     *string
	Plan        *string
	Status      Status
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusLoaned      Status = "Loaned"
	StatusMaintenance Status = "Maintenance"
	StatusRetired     Status = "Retired"
)

// DisplayName returns the label shown to inventory staff.
func (s Status) DisplayName() string {
	if s == StatusRetired {
		return "Baja"
	}
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusLoaned, StatusMaintenance, StatusRetired:
		return true
	}
	return false
}

func (c *Chip) IsAvailable() bool {
	return c.Status == StatusAvailable
}
