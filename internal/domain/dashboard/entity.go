package dashboard

import (
	"context"
	"time"
)

// Stats summarizes the inventory and the loan ledger.
type Stats struct {
	Equipment   EquipmentStats  `json:"equipment"`
	Chips       ChipStats       `json:"chips"`
	Loans       LoanStats       `json:"loans"`
	ByCategory  []CategoryStats `json:"byCategory"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

type EquipmentStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Loaned      int `json:"loaned"`
	Maintenance int `json:"maintenance"`
	Retired     int `json:"retired"`
	Damaged     int `json:"damaged"`
}

type ChipStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Loaned      int `json:"loaned"`
	Maintenance int `json:"maintenance"`
	Retired     int `json:"retired"`
}

type LoanStats struct {
	Total             int `json:"total"`
	Active            int `json:"active"`
	Returned          int `json:"returned"`
	Cancelled         int `json:"cancelled"`
	PartiallyReturned int `json:"partiallyReturned"`
	Overdue           int `json:"overdue"`
}

type CategoryStats struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Loaned   int    `json:"loaned"`
}

type Repository interface {
	GetStats(ctx context.Context, now time.Time) (*Stats, error)
}

// Cache stores the last computed Stats. A miss is reported as (nil, false, nil).
type Cache interface {
	Get(ctx context.Context) (*Stats, bool, error)
	Set(ctx context.Context, stats *Stats) error
	Invalidate(ctx context.Context) error
}
