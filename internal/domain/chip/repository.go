package chip

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, chip *Chip) error
	GetByID(ctx context.Context, chipID uuid.UUID) (*Chip, error)
	GetByICCID(ctx context.Context, iccid string) (*Chip, error)
	Update(ctx context.Context, chip *Chip) error
	Retire(ctx context.Context, chipID uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Chip, int64, error)
}

type Filter struct {
	Status   *Status
	Carrier  string
	Search   string
	Page     int
	PageSize int
}
