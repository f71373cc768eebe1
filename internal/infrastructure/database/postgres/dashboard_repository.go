package postgres

import (
	"context"
	"fmt"
	"time"

	"electrotrack/internal/domain/chip"
	"electrotrack/internal/domain/dashboard"
	"electrotrack/internal/domain/equipment"
	"electrotrack/internal/domain/loan"
)

type DashboardRepository struct {
	db *DB
}

func NewDashboardRepository(db *DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) GetStats(ctx context.Context, now time.Time) (*dashboard.Stats, error) {
	stats := &dashboard.Stats{GeneratedAt: now.UTC()}
	db := r.db.DB.WithContext(ctx)

	err := db.Raw(`
        SELECT
            COUNT(*) AS total,
            COUNT(*) FILTER (WHERE status = ?) AS available,
            COUNT(*) FILTER (WHERE status = ?) AS loaned,
            COUNT(*) FILTER (WHERE status = ?) AS maintenance,
            COUNT(*) FILTER (WHERE status = ?) AS retired,
            COUNT(*) FILTER (WHERE status = ?) AS damaged
        FROM equipment
    `,
		equipment.StatusAvailable, equipment.StatusLoaned, equipment.StatusMaintenance,
		equipment.StatusRetired, equipment.StatusDamaged,
	).Scan(&stats.Equipment).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment statistics: %w", err)
	}

	err = db.Raw(`
        SELECT
            COUNT(*) AS total,
            COUNT(*) FILTER (WHERE status = ?) AS available,
            COUNT(*) FILTER (WHERE status = ?) AS loaned,
            COUNT(*) FILTER (WHERE status = ?) AS maintenance,
            COUNT(*) FILTER (WHERE status = ?) AS retired
        FROM satellite_chips
    `,
		chip.StatusAvailable, chip.StatusLoaned, chip.StatusMaintenance, chip.StatusRetired,
	).Scan(&stats.Chips).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get chip statistics: %w", err)
	}

	err = db.Raw(`
        SELECT
            COUNT(*) AS total,
            COUNT(*) FILTER (WHERE l.status = ?) AS active,
            COUNT(*) FILTER (WHERE l.status = ?) AS returned,
            COUNT(*) FILTER (WHERE l.status = ?) AS cancelled,
            COUNT(*) FILTER (WHERE l.status = ? AND EXISTS (
                SELECT 1 FROM loan_items li
                WHERE li.loan_id = l.id AND (li.is_device_returned = ? OR li.is_chip_returned = ?)
            )) AS partially_returned,
            COUNT(*) FILTER (WHERE l.status = ? AND l.planned_return_date < ?) AS overdue
        FROM loans l
    `,
		loan.StatusActive, loan.StatusReturned, loan.StatusCancelled,
		loan.StatusActive, true, true,
		loan.StatusActive, now.UTC(),
	).Scan(&stats.Loans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get loan statistics: %w", err)
	}

	categories := []dashboard.CategoryStats{}
	err = db.Raw(`
        SELECT
            category,
            COUNT(*) AS total,
            COUNT(*) FILTER (WHERE status = ?) AS loaned
        FROM equipment
        GROUP BY category
        ORDER BY category ASC
    `, equipment.StatusLoaned).Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category statistics: %w", err)
	}
	stats.ByCategory = categories

	return stats, nil
}
