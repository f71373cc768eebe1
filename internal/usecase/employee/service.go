package employee

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainAudit "electrotrack/internal/domain/audit"
	domainEmployee "electrotrack/internal/domain/employee"
	"electrotrack/internal/logger"
	"electrotrack/internal/usecase/audit"
	appErrors "electrotrack/pkg/errors"
	"electrotrack/pkg/utils"
)

type Service struct {
	employeeRepo domainEmployee.Repository
	recorder     *audit.Recorder
}

func NewService(employeeRepo domainEmployee.Repository, recorder *audit.Recorder) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		recorder:     recorder,
	}
}

func (s *Service) CreateEmployee(ctx context.Context, req *CreateEmployeeRequest, actor string) (*EmployeeResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	e := &domainEmployee.Employee{
		FullName:   utils.SanitizeString(req.FullName),
		NationalID: utils.SanitizeString(req.NationalID),
		Position:   utils.SanitizeOptional(req.Position),
		Department: utils.SanitizeOptional(req.Department),
		IsActive:   true,
	}
	if req.Email != nil {
		email := utils.SanitizeEmail(*req.Email)
		e.Email = &email
	}
	if req.Phone != nil {
		phone := utils.SanitizePhone(*req.Phone)
		e.Phone = &phone
	}

	if err := s.employeeRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	logger.Info("Employee registered",
		zap.String("employee_id", e.ID.String()),
		zap.String("actor", actor),
		zap.String("event", "employee_created"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityEmployee, e.ID, domainAudit.ActionCreate, actor, map[string]interface{}{
		"fullName": e.FullName,
	})

	return ToEmployeeResponse(e), nil
}

func (s *Service) GetEmployee(ctx context.Context, employeeID uuid.UUID) (*EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(e), nil
}

func (s *Service) ListEmployees(ctx context.Context, filter *FilterRequest) (*ListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.Validation(err)
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	employees, total, err := s.employeeRepo.List(ctx, &domainEmployee.Filter{
		Search:     filter.Search,
		Department: filter.Department,
		IsActive:   filter.Active,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		responses[i] = *ToEmployeeResponse(e)
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &ListResponse{
		Employees:  responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, employeeID uuid.UUID, req *UpdateEmployeeRequest, actor string) (*EmployeeResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		e.FullName = utils.SanitizeString(*req.FullName)
	}
	if req.Position != nil {
		e.Position = utils.SanitizeOptional(req.Position)
	}
	if req.Department != nil {
		e.Department = utils.SanitizeOptional(req.Department)
	}
	if req.Email != nil {
		email := utils.SanitizeEmail(*req.Email)
		e.Email = &email
	}
	if req.Phone != nil {
		phone := utils.SanitizePhone(*req.Phone)
		e.Phone = &phone
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	logger.Info("Employee updated",
		zap.String("employee_id", e.ID.String()),
		zap.String("actor", actor),
		zap.String("event", "employee_updated"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityEmployee, e.ID, domainAudit.ActionUpdate, actor, nil)

	return ToEmployeeResponse(e), nil
}

// DeactivateEmployee keeps the record; past loans still point at it.
func (s *Service) DeactivateEmployee(ctx context.Context, employeeID uuid.UUID, actor string) error {
	if err := s.employeeRepo.Deactivate(ctx, employeeID); err != nil {
		return err
	}

	logger.Info("Employee deactivated",
		zap.String("employee_id", employeeID.String()),
		zap.String("actor", actor),
		zap.String("event", "employee_deactivated"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityEmployee, employeeID, domainAudit.ActionDeactivate, actor, nil)

	return nil
}
