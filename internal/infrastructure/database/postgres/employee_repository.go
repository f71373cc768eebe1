package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainEmployee "electrotrack/internal/domain/employee"
	"electrotrack/internal/infrastructure/database/postgres/models"
)

type EmployeeRepository struct {
	db *DB
}

func NewEmployeeRepository(db *DB) domainEmployee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domainEmployee.Employee) error {
	now := time.Now().UTC()
	e.ID = uuid.New()
	e.IsActive = true
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := r.db.DB.WithContext(ctx).Create(toEmployeeModel(e)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainEmployee.ErrEmployeeAlreadyExists
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, employeeID uuid.UUID) (*domainEmployee.Employee, error) {
	var dbModel models.EmployeeModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", employeeID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainEmployee.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return toEmployeeEntity(&dbModel), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domainEmployee.Employee) error {
	e.UpdatedAt = time.Now().UTC()

	result := r.db.DB.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"full_name":   e.FullName,
			"national_id": e.NationalID,
			"position":    e.Position,
			"department":  e.Department,
			"email":       e.Email,
			"phone":       e.Phone,
			"is_active":   e.IsActive,
			"updated_at":  e.UpdatedAt,
		})

	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return domainEmployee.ErrEmployeeAlreadyExists
	}
	if result.Error != nil {
		return fmt.Errorf("failed to update employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainEmployee.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Deactivate(ctx context.Context, employeeID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("id = ?", employeeID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainEmployee.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter *domainEmployee.Filter) ([]*domainEmployee.Employee, int64, error) {
	var dbModels []models.EmployeeModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.EmployeeModel{})

	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.Search != "" {
		search := likePattern(filter.Search)
		db = db.Where("LOWER(full_name) LIKE ? OR LOWER(national_id) LIKE ?", search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	limit, offset := paginate(filter.Page, filter.PageSize)
	if err := db.Order("full_name ASC").Limit(limit).Offset(offset).Find(&dbModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := make([]*domainEmployee.Employee, len(dbModels))
	for i := range dbModels {
		employees[i] = toEmployeeEntity(&dbModels[i])
	}
	return employees, total, nil
}

func toEmployeeModel(e *domainEmployee.Employee) *models.EmployeeModel {
	return &models.EmployeeModel{
		ID:         e.ID,
		FullName:   e.FullName,
		NationalID: e.NationalID,
		Position:   e.Position,
		Department: e.Department,
		Email:      e.Email,
		Phone:      e.Phone,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toEmployeeEntity(m *models.EmployeeModel) *domainEmployee.Employee {
	return &domainEmployee.Employee{
		ID:         m.ID,
		FullName:   m.FullName,
		NationalID: m.NationalID,
		Position:   m.Position,
		Department: m.Department,
		Email:      m.Email,
		Phone:      m.Phone,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
