package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"electrotrack/internal/domain/audit"
	"electrotrack/internal/infrastructure/database/postgres/models"
)

type AuditRepository struct {
	db *DB
}

func NewAuditRepository(db *DB) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, entry *audit.Entry) error {
	return recordAudit(r.db.DB.WithContext(ctx), entry)
}

// recordAudit writes through tx so lifecycle changes and their audit rows commit together.
func recordAudit(tx *gorm.DB, entry *audit.Entry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()
	if entry.Actor == "" {
		entry.Actor = "system"
	}

	details := datatypes.JSONMap{}
	for k, v := range entry.Details {
		details[k] = v
	}

	err := tx.Create(&models.AuditLogModel{
		ID:        entry.ID,
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		Action:    entry.Action,
		Actor:     entry.Actor,
		Details:   details,
		CreatedAt: entry.CreatedAt,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filter *audit.Filter) ([]*audit.Entry, int64, error) {
	var dbModels []models.AuditLogModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.AuditLogModel{})
	if filter.Entity != "" {
		db = db.Where("entity = ?", filter.Entity)
	}
	if filter.EntityID != nil {
		db = db.Where("entity_id = ?", *filter.EntityID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	limit, offset := paginate(filter.Page, filter.PageSize)
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&dbModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*audit.Entry, len(dbModels))
	for i, m := range dbModels {
		entries[i] = &audit.Entry{
			ID:        m.ID,
			Entity:    m.Entity,
			EntityID:  m.EntityID,
			Action:    m.Action,
			Actor:     m.Actor,
			Details:   map[string]interface{}(m.Details),
			CreatedAt: m.CreatedAt,
		}
	}
	return entries, total, nil
}
