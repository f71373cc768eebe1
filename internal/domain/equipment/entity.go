package equipment

import (
	"time"

	"github.com/google/uuid"
)

// Equipment represents a physical asset in the inventory
type Equipment struct {
	ID            uuid.UUID
	SerialNumber  string
	InventoryCode *string
	Category      string
	SubCategory   *string
	Brand         *string
	Model         *string
	Status        Status
	Condition     Condition
	Location      *string
	Notes         *string
	Screen        *Screen
	Keyboard      *Keyboard
	Battery       *Battery
	Peripherals   []Peripheral
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Status represents the availability of a piece of equipment
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusLoaned      Status = "Loaned"
	StatusMaintenance Status = "Maintenance"
	StatusRetired     Status = "Retired"
	StatusDamaged     Status = "Damaged"
)

// Condition is the physical state recorded at inventory, exit and return time.
type Condition string

const (
	ConditionExcellent Condition = "Excelente"
	ConditionGood      Condition = "Bueno"
	ConditionFair      Condition = "Regular"
	ConditionBad       Condition = "Malo"
	ConditionDamaged   Condition = "Dañado"
)

type Screen struct {
	SizeInches *float64
	Resolution *string
	Condition  *Condition
	Notes      *string
}

type Keyboard struct {
	Layout    *string
	Condition *Condition
	Notes     *string
}

type Battery struct {
	HealthPercent *int
	CycleCount    *int
	Condition     *Condition
	Notes         *string
}

type Peripheral struct {
	Name         string
	SerialNumber *string
	Condition    *Condition
}

// IsAvailable reports whether the equipment can be placed on a new loan.
func (e *Equipment) IsAvailable() bool {
	return e.Status == StatusAvailable
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusLoaned, StatusMaintenance, StatusRetired, StatusDamaged:
		return true
	}
	return false
}

func (c Condition) IsValid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionBad, ConditionDamaged:
		return true
	}
	return false
}
