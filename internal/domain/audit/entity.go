package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry records one state change made through the API.
type Entry struct {
	ID        uuid.UUID
	Entity    string
	EntityID  uuid.UUID
	Action    string
	Actor     string
	Details   map[string]interface{}
	CreatedAt time.Time
}

const (
	EntityLoan      = "loan"
	EntityEquipment = "equipment"
	EntityChip      = "chip"
	EntityEmployee  = "employee"
	EntityUser      = "user"
)

const (
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionReturn        = "return"
	ActionPartialReturn = "partial_return"
	ActionCancel        = "cancel"
	ActionRetire        = "retire"
	ActionDeactivate    = "deactivate"
)

type Repository interface {
	Record(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter *Filter) ([]*Entry, int64, error)
}

type Filter struct {
	Entity   string
	EntityID *uuid.UUID
	Page     int
	PageSize int
}
