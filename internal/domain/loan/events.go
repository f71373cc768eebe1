package loan

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated           EventType = "loan.created"
	EventUpdated           EventType = "loan.updated"
	EventReturned          EventType = "loan.returned"
	EventPartiallyReturned EventType = "loan.partially_returned"
	EventCancelled         EventType = "loan.cancelled"
)

// Event is published after a lifecycle change has been committed.
type Event struct {
	Type       EventType `json:"type"`
	LoanID     uuid.UUID `json:"loanId"`
	OrderID    string    `json:"orderId"`
	Status     Status    `json:"status"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(eventType EventType, l *Loan, actor string) Event {
	return Event{
		Type:       eventType,
		LoanID:     l.ID,
		OrderID:    l.OrderID,
		Status:     l.Status,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
