package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainEquipment "electrotrack/internal/domain/equipment"
	"electrotrack/internal/infrastructure/database/postgres/models"
)

// EquipmentRepository implements domainEquipment.Repository
type EquipmentRepository struct {
	db *DB
}

func NewEquipmentRepository(db *DB) domainEquipment.Repository {
	return &EquipmentRepository{db: db}
}

var equipmentSortColumns = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"serial_number": true,
	"category":      true,
	"status":        true,
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domainEquipment.Equipment) error {
	now := time.Now().UTC()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Status == "" {
		e.Status = domainEquipment.StatusAvailable
	}

	dbModel := toEquipmentModel(e)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainEquipment.ErrEquipmentAlreadyExists
		}
		return fmt.Errorf("failed to create equipment: %w", err)
	}

	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, equipmentID uuid.UUID) (*domainEquipment.Equipment, error) {
	return r.getBy(ctx, "id = ?", equipmentID)
}

func (r *EquipmentRepository) GetBySerialNumber(ctx context.Context, serialNumber string) (*domainEquipment.Equipment, error) {
	return r.getBy(ctx, "serial_number = ?", serialNumber)
}

func (r *EquipmentRepository) getBy(ctx context.Context, query string, arg interface{}) (*domainEquipment.Equipment, error) {
	var dbModel models.EquipmentModel
	err := r.db.DB.WithContext(ctx).
		Preload("Screen").
		Preload("Keyboard").
		Preload("Battery").
		Preload("Peripherals", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where(query, arg).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainEquipment.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	return toEquipmentEntity(&dbModel), nil
}

// Update rewrites the header and replaces every hardware block in one transaction.
func (r *EquipmentRepository) Update(ctx context.Context, e *domainEquipment.Equipment) error {
	e.UpdatedAt = time.Now().UTC()
	dbModel := toEquipmentModel(e)

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.EquipmentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "status").
			First(&current, "id = ?", e.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainEquipment.ErrEquipmentNotFound
			}
			return fmt.Errorf("failed to lock equipment: %w", err)
		}
		if current.Status != string(e.Status) &&
			(current.Status == string(domainEquipment.StatusLoaned) || e.Status == domainEquipment.StatusLoaned) {
			return domainEquipment.ErrEquipmentLoaned
		}

		err := tx.Model(&models.EquipmentModel{}).
			Where("id = ?", e.ID).
			Updates(map[string]interface{}{
				"serial_number":  dbModel.SerialNumber,
				"inventory_code": dbModel.InventoryCode,
				"category":       dbModel.Category,
				"sub_category":   dbModel.SubCategory,
				"brand":          dbModel.Brand,
				"model":          dbModel.Model,
				"status":         dbModel.Status,
				"condition":      dbModel.Condition,
				"location":       dbModel.Location,
				"notes":          dbModel.Notes,
				"updated_at":     dbModel.UpdatedAt,
			}).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainEquipment.ErrEquipmentAlreadyExists
			}
			return fmt.Errorf("failed to update equipment: %w", err)
		}

		return replaceHardware(tx, dbModel)
	})
}

func replaceHardware(tx *gorm.DB, m *models.EquipmentModel) error {
	for _, child := range []interface{}{
		&models.EquipmentScreenModel{},
		&models.EquipmentKeyboardModel{},
		&models.EquipmentBatteryModel{},
		&models.EquipmentPeripheralModel{},
	} {
		if err := tx.Where("equipment_id = ?", m.ID).Delete(child).Error; err != nil {
			return fmt.Errorf("failed to clear hardware details: %w", err)
		}
	}

	if m.Screen != nil {
		if err := tx.Create(m.Screen).Error; err != nil {
			return fmt.Errorf("failed to save screen: %w", err)
		}
	}
	if m.Keyboard != nil {
		if err := tx.Create(m.Keyboard).Error; err != nil {
			return fmt.Errorf("failed to save keyboard: %w", err)
		}
	}
	if m.Battery != nil {
		if err := tx.Create(m.Battery).Error; err != nil {
			return fmt.Errorf("failed to save battery: %w", err)
		}
	}
	if len(m.Peripherals) > 0 {
		if err := tx.Create(&m.Peripherals).Error; err != nil {
			return fmt.Errorf("failed to save peripherals: %w", err)
		}
	}

	return nil
}

func (r *EquipmentRepository) UpdateStatus(ctx context.Context, equipmentID uuid.UUID, status domainEquipment.Status) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.EquipmentModel{}).
		Where("id = ? AND status <> ?", equipmentID, string(domainEquipment.StatusLoaned)).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, equipmentID); err != nil {
			return err
		}
		return domainEquipment.ErrEquipmentLoaned
	}

	return nil
}

// Retire soft deletes the equipment. Loaned equipment cannot be retired.
func (r *EquipmentRepository) Retire(ctx context.Context, equipmentID uuid.UUID) error {
	return r.UpdateStatus(ctx, equipmentID, domainEquipment.StatusRetired)
}

func (r *EquipmentRepository) List(ctx context.Context, filter *domainEquipment.Filter) ([]*domainEquipment.Equipment, int64, error) {
	var dbModels []models.EquipmentModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.EquipmentModel{})

	if filter.Status != nil {
		db = db.Where("equipment.status = ?", string(*filter.Status))
	}
	if filter.Category != "" {
		db = db.Where("equipment.category = ?", filter.Category)
	}
	if filter.Search != "" {
		search := likePattern(filter.Search)
		db = db.Where(
			"LOWER(equipment.serial_number) LIKE ? OR LOWER(equipment.inventory_code) LIKE ? OR LOWER(equipment.brand) LIKE ? OR LOWER(equipment.model) LIKE ?",
			search, search, search, search,
		)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count equipment: %w", err)
	}

	limit, offset := paginate(filter.Page, filter.PageSize)
	err := db.
		Preload("Screen").
		Preload("Keyboard").
		Preload("Battery").
		Preload("Peripherals", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order(orderClause("equipment", filter.SortBy, filter.SortOrder, equipmentSortColumns, "created_at")).
		Limit(limit).
		Offset(offset).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list equipment: %w", err)
	}

	items := make([]*domainEquipment.Equipment, len(dbModels))
	for i := range dbModels {
		items[i] = toEquipmentEntity(&dbModels[i])
	}

	return items, total, nil
}

func toEquipmentModel(e *domainEquipment.Equipment) *models.EquipmentModel {
	m := &models.EquipmentModel{
		ID:            e.ID,
		SerialNumber:  e.SerialNumber,
		InventoryCode: e.InventoryCode,
		Category:      e.Category,
		SubCategory:   e.SubCategory,
		Brand:         e.Brand,
		Model:         e.Model,
		Status:        string(e.Status),
		Condition:     string(e.Condition),
		Location:      e.Location,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}

	if e.Screen != nil {
		m.Screen = &models.EquipmentScreenModel{
			ID:          uuid.New(),
			EquipmentID: e.ID,
			SizeInches:  e.Screen.SizeInches,
			Resolution:  e.Screen.Resolution,
			Condition:   conditionString(e.Screen.Condition),
			Notes:       e.Screen.Notes,
		}
	}
	if e.Keyboard != nil {
		m.Keyboard = &models.EquipmentKeyboardModel{
			ID:          uuid.New(),
			EquipmentID: e.ID,
			Layout:      e.Keyboard.Layout,
			Condition:   conditionString(e.Keyboard.Condition),
			Notes:       e.Keyboard.Notes,
		}
	}
	if e.Battery != nil {
		m.Battery = &models.EquipmentBatteryModel{
			ID:            uuid.New(),
			EquipmentID:   e.ID,
			HealthPercent: e.Battery.HealthPercent,
			CycleCount:    e.Battery.CycleCount,
			Condition:     conditionString(e.Battery.Condition),
			Notes:         e.Battery.Notes,
		}
	}
	for i, p := range e.Peripherals {
		m.Peripherals = append(m.Peripherals, models.EquipmentPeripheralModel{
			ID:           uuid.New(),
			EquipmentID:  e.ID,
			Position:     i,
			Name:         p.Name,
			SerialNumber: p.SerialNumber,
			Condition:    conditionString(p.Condition),
		})
	}

	return m
}

func toEquipmentEntity(m *models.EquipmentModel) *domainEquipment.Equipment {
	e := &domainEquipment.Equipment{
		ID:            m.ID,
		SerialNumber:  m.SerialNumber,
		InventoryCode: m.InventoryCode,
		Category:      m.Category,
		SubCategory:   m.SubCategory,
		Brand:         m.Brand,
		Model:         m.Model,
		Status:        domainEquipment.Status(m.Status),
		Condition:     domainEquipment.Condition(m.Condition),
		Location:      m.Location,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.Screen != nil {
		e.Screen = &domainEquipment.Screen{
			SizeInches: m.Screen.SizeInches,
			Resolution: m.Screen.Resolution,
			Condition:  conditionPtr(m.Screen.Condition),
			Notes:      m.Screen.Notes,
		}
	}
	if m.Keyboard != nil {
		e.Keyboard = &domainEquipment.Keyboard{
			Layout:    m.Keyboard.Layout,
			Condition: conditionPtr(m.Keyboard.Condition),
			Notes:     m.Keyboard.Notes,
		}
	}
	if m.Battery != nil {
		e.Battery = &domainEquipment.Battery{
			HealthPercent: m.Battery.HealthPercent,
			CycleCount:    m.Battery.CycleCount,
			Condition:     conditionPtr(m.Battery.Condition),
			Notes:         m.Battery.Notes,
		}
	}
	for _, p := range m.Peripherals {
		e.Peripherals = append(e.Peripherals, domainEquipment.Peripheral{
			Name:         p.Name,
			SerialNumber: p.SerialNumber,
			Condition:    conditionPtr(p.Condition),
		})
	}

	return e
}

func conditionString(c *domainEquipment.Condition) *string {
	if c == nil {
		return nil
	}
	return strPtr(string(*c))
}

func conditionPtr(s *string) *domainEquipment.Condition {
	if s == nil {
		return nil
	}
	c := domainEquipment.Condition(*s)
	return &c
}
