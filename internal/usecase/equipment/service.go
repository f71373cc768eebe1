package equipment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainAudit "electrotrack/internal/domain/audit"
	domainEquipment "electrotrack/internal/domain/equipment"
	"electrotrack/internal/logger"
	"electrotrack/internal/usecase/audit"
	appErrors "electrotrack/pkg/errors"
	"electrotrack/pkg/utils"
)

// Service implements the equipment registry. Loaned is never set or cleared
// here; that belongs to the loan lifecycle.
type Service struct {
	equipmentRepo domainEquipment.Repository
	recorder      *audit.Recorder
}

func NewService(equipmentRepo domainEquipment.Repository, recorder *audit.Recorder) *Service {
	return &Service{
		equipmentRepo: equipmentRepo,
		recorder:      recorder,
	}
}

func (s *Service) CreateEquipment(ctx context.Context, req *CreateEquipmentRequest, actor string) (*EquipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	status := domainEquipment.StatusAvailable
	if req.Status != nil {
		status = domainEquipment.Status(*req.Status)
	}
	if status == domainEquipment.StatusLoaned {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Equipment can only become Loaned through a loan", domainEquipment.ErrInvalidStatus)
	}

	e := &domainEquipment.Equipment{
		SerialNumber:  utils.SanitizeString(req.SerialNumber),
		InventoryCode: utils.SanitizeOptional(req.InventoryCode),
		Category:      utils.SanitizeString(req.Category),
		SubCategory:   utils.SanitizeOptional(req.SubCategory),
		Brand:         utils.SanitizeOptional(req.Brand),
		Model:         utils.SanitizeOptional(req.Model),
		Status:        status,
		Condition:     domainEquipment.Condition(req.Condition),
		Location:      utils.SanitizeOptional(req.Location),
		Notes:         utils.SanitizeOptional(req.Notes),
		Screen:        toScreen(req.Screen),
		Keyboard:      toKeyboard(req.Keyboard),
		Battery:       toBattery(req.Battery),
		Peripherals:   toPeripherals(req.Peripherals),
	}

	if err := s.equipmentRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	created, err := s.equipmentRepo.GetByID(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Equipment created",
		zap.String("equipment_id", created.ID.String()),
		zap.String("serial_number", created.SerialNumber),
		zap.String("actor", actor),
		zap.String("event", "equipment_created"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityEquipment, created.ID, domainAudit.ActionCreate, actor, map[string]interface{}{
		"serialNumber": created.SerialNumber,
		"category":     created.Category,
	})

	return ToEquipmentResponse(created), nil
}

func (s *Service) GetEquipment(ctx context.Context, equipmentID uuid.UUID) (*EquipmentResponse, error) {
	e, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return ToEquipmentResponse(e), nil
}

func (s *Service) ListEquipment(ctx context.Context, filter *FilterRequest) (*ListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.Validation(err)
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := s.equipmentRepo.List(ctx, ToDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]EquipmentResponse, len(items))
	for i, e := range items {
		responses[i] = *ToEquipmentResponse(e)
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &ListResponse{
		Equipment:  responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListAvailable returns equipment that can be put on a new loan.
func (s *Service) ListAvailable(ctx context.Context, category string) ([]EquipmentResponse, error) {
	status := domainEquipment.StatusAvailable
	items, _, err := s.equipmentRepo.List(ctx, &domainEquipment.Filter{
		Status:    &status,
		Category:  category,
		PageSize:  100,
		SortBy:    "serial_number",
		SortOrder: "asc",
	})
	if err != nil {
		return nil, err
	}

	responses := make([]EquipmentResponse, len(items))
	for i, e := range items {
		responses[i] = *ToEquipmentResponse(e)
	}
	return responses, nil
}

func (s *Service) UpdateEquipment(ctx context.Context, equipmentID uuid.UUID, req *UpdateEquipmentRequest, actor string) (*EquipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	e, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	previousStatus := e.Status

	if req.Status != nil {
		next := domainEquipment.Status(*req.Status)
		if err := domainEquipment.ValidateManualTransition(e.Status, next); err != nil {
			return nil, err
		}
		e.Status = next
	}
	if req.SerialNumber != nil {
		e.SerialNumber = utils.SanitizeString(*req.SerialNumber)
	}
	if req.InventoryCode != nil {
		e.InventoryCode = utils.SanitizeOptional(req.InventoryCode)
	}
	if req.Category != nil {
		e.Category = utils.SanitizeString(*req.Category)
	}
	if req.SubCategory != nil {
		e.SubCategory = utils.SanitizeOptional(req.SubCategory)
	}
	if req.Brand != nil {
		e.Brand = utils.SanitizeOptional(req.Brand)
	}
	if req.Model != nil {
		e.Model = utils.SanitizeOptional(req.Model)
	}
	if req.Condition != nil {
		e.Condition = domainEquipment.Condition(*req.Condition)
	}
	if req.Location != nil {
		e.Location = utils.SanitizeOptional(req.Location)
	}
	if req.Notes != nil {
		e.Notes = utils.SanitizeOptional(req.Notes)
	}
	if req.Screen != nil {
		e.Screen = toScreen(req.Screen)
	}
	if req.Keyboard != nil {
		e.Keyboard = toKeyboard(req.Keyboard)
	}
	if req.Battery != nil {
		e.Battery = toBattery(req.Battery)
	}
	if req.Peripherals != nil {
		e.Peripherals = toPeripherals(*req.Peripherals)
	}

	if err := s.equipmentRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	updated, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	logger.Info("Equipment updated",
		zap.String("equipment_id", updated.ID.String()),
		zap.String("serial_number", updated.SerialNumber),
		zap.String("previous_status", string(previousStatus)),
		zap.String("status", string(updated.Status)),
		zap.String("actor", actor),
		zap.String("event", "equipment_updated"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityEquipment, updated.ID, domainAudit.ActionUpdate, actor, map[string]interface{}{
		"previousStatus": string(previousStatus),
		"status":         string(updated.Status),
	})

	return ToEquipmentResponse(updated), nil
}

// RetireEquipment is the soft delete behind DELETE /api/equipment/:id.
func (s *Service) RetireEquipment(ctx context.Context, equipmentID uuid.UUID, actor string) error {
	if err := s.equipmentRepo.Retire(ctx, equipmentID); err != nil {
		return err
	}

	logger.Info("Equipment retired",
		zap.String("equipment_id", equipmentID.String()),
		zap.String("actor", actor),
		zap.String("event", "equipment_retired"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityEquipment, equipmentID, domainAudit.ActionRetire, actor, nil)

	return nil
}
