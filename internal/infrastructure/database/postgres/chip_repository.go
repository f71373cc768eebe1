package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainChip "electrotrack/internal/domain/chip"
	"electrotrack/internal/infrastructure/database/postgres/models"
)

// ChipRepository implements domainChip.Repository
type ChipRepository struct {
	db *DB
}

func NewChipRepository(db *DB) domainChip.Repository {
	return &ChipRepository{db: db}
}

func (r *ChipRepository) Create(ctx context.Context, c *domainChip.Chip) error {
	now := time.Now().UTC()
	c.ID = uuid.New()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = domainChip.StatusAvailable
	}

	if err := r.db.DB.WithContext(ctx).Create(toChipModel(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainChip.ErrChipAlreadyExists
		}
		return fmt.Errorf("failed to create chip: %w", err)
	}

	return nil
}

func (r *ChipRepository) GetByID(ctx context.Context, chipID uuid.UUID) (*domainChip.Chip, error) {
	return r.getBy(ctx, "id = ?", chipID)
}

func (r *ChipRepository) GetByICCID(ctx context.Context, iccid string) (*domainChip.Chip, error) {
	return r.getBy(ctx, "iccid = ?", iccid)
}

func (r *ChipRepository) getBy(ctx context.Context, query string, arg interface{}) (*domainChip.Chip, error) {
	var dbModel models.ChipModel
	err := r.db.DB.WithContext(ctx).Where(query, arg).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainChip.ErrChipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chip: %w", err)
	}

	return toChipEntity(&dbModel), nil
}

func (r *ChipRepository) Update(ctx context.Context, c *domainChip.Chip) error {
	c.UpdatedAt = time.Now().UTC()

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.ChipModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "status").
			First(&current, "id = ?", c.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainChip.ErrChipNotFound
			}
			return fmt.Errorf("failed to lock chip: %w", err)
		}
		if current.Status != string(c.Status) &&
			(current.Status == string(domainChip.StatusLoaned) || c.Status == domainChip.StatusLoaned) {
			return domainChip.ErrChipLoaned
		}

		err := tx.Model(&models.ChipModel{}).
			Where("id = ?", c.ID).
			Updates(map[string]interface{}{
				"iccid":        c.ICCID,
				"phone_number": c.PhoneNumber,
				"carrier":      c.Carrier,
				"plan":         c.Plan,
				"status":       string(c.Status),
				"notes":        c.Notes,
				"updated_at":   c.UpdatedAt,
			}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainChip.ErrChipAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("failed to update chip: %w", err)
		}
		return nil
	})
}

// Retire marks the chip as "Baja". Loaned chips cannot be retired.
func (r *ChipRepository) Retire(ctx context.Context, chipID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ChipModel{}).
		Where("id = ? AND status <> ?", chipID, string(domainChip.StatusLoaned)).
		Updates(map[string]interface{}{
			"status":     string(domainChip.StatusRetired),
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to retire chip: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, chipID); err != nil {
			return err
		}
		return domainChip.ErrChipLoaned
	}

	return nil
}

func (r *ChipRepository) List(ctx context.Context, filter *domainChip.Filter) ([]*domainChip.Chip, int64, error) {
	var dbModels []models.ChipModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.ChipModel{})

	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.Carrier != "" {
		db = db.Where("carrier = ?", filter.Carrier)
	}
	if filter.Search != "" {
		search := likePattern(filter.Search)
		db = db.Where("LOWER(iccid) LIKE ? OR LOWER(phone_number) LIKE ?", search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count chips: %w", err)
	}

	limit, offset := paginate(filter.Page, filter.PageSize)
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&dbModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list chips: %w", err)
	}

	chips := make([]*domainChip.Chip, len(dbModels))
	for i := range dbModels {
		chips[i] = toChipEntity(&dbModels[i])
	}

	return chips, total, nil
}

func toChipModel(c *domainChip.Chip) *models.ChipModel {
	return &models.ChipModel{
		ID:          c.ID,
		ICCID:       c.ICCID,
		PhoneNumber: c.PhoneNumber,
		Carrier:     c.Carrier,
		Plan:        c.Plan,
		Status:      string(c.Status),
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toChipEntity(m *models.ChipModel) *domainChip.Chip {
	return &domainChip.Chip{
		ID:          m.ID,
		ICCID:       m.ICCID,
		PhoneNumber: m.PhoneNumber,
		Carrier:     m.Carrier,
		Plan:        m.Plan,
		Status:      domainChip.Status(m.Status),
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
