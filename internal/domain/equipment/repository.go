package equipment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for equipment repository operations
type Repository interface {
	Create(ctx context.Context, equipment *Equipment) error
	GetByID(ctx context.Context, equipmentID uuid.UUID) (*Equipment, error)
	GetBySerialNumber(ctx context.Context, serialNumber string) (*Equipment, error)
	Update(ctx context.Context, equipment *Equipment) error
	UpdateStatus(ctx context.Context, equipmentID uuid.UUID, status Status) error
	Retire(ctx context.Context, equipmentID uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Equipment, int64, error)
}

// Filter represents filtering options for listing equipment
type Filter struct {
	Status    *Status
	Category  string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
