package employee

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, employee *Employee) error
	GetByID(ctx context.Context, employeeID uuid.UUID) (*Employee, error)
	Update(ctx context.Context, employee *Employee) error
	Deactivate(ctx context.Context, employeeID uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Employee, int64, error)
}

type Filter struct {
	Search     string
	Department string
	IsActive   *bool
	Page       int
	PageSize   int
}
