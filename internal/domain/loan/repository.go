package loan

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists loans. Every mutating call runs in one transaction and
// keeps equipment and chip statuses consistent with the loan's items.
type Repository interface {
	Create(ctx context.Context, loan *Loan, actor string) error
	Update(ctx context.Context, loan *Loan, actor string) error
	Return(ctx context.Context, loanID uuid.UUID, req *ReturnRequest, actor string) (*Loan, ReturnOutcome, error)
	Cancel(ctx context.Context, loanID uuid.UUID, actor string) (*Loan, error)
	GetByID(ctx context.Context, loanID uuid.UUID) (*Loan, error)
	List(ctx context.Context, filter *Filter) ([]*Loan, int64, error)
	ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]*Loan, error)
}

// Filter narrows List. Zero Page and PageSize return every matching loan.
type Filter struct {
	Status   *Status
	Search   string
	Page     int
	PageSize int
}

func (f *Filter) Paginated() bool {
	return f.Page > 0 || f.PageSize > 0
}
