package chip

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainAudit "electrotrack/internal/domain/audit"
	domainChip "electrotrack/internal/domain/chip"
	"electrotrack/internal/logger"
	"electrotrack/internal/usecase/audit"
	appErrors "electrotrack/pkg/errors"
	"electrotrack/pkg/utils"
)

type Service struct {
	chipRepo domainChip.Repository
	recorder *audit.Recorder
}

func NewService(chipRepo domainChip.Repository, recorder *audit.Recorder) *Service {
	return &Service{
		chipRepo: chipRepo,
		recorder: recorder,
	}
}

func (s *Service) CreateChip(ctx context.Context, req *CreateChipRequest, actor string) (*ChipResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	status := domainChip.StatusAvailable
	if req.Status != nil {
		status = domainChip.Status(*req.Status)
	}
	if status == domainChip.StatusLoaned {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Chips can only become Loaned through a loan", domainChip.ErrInvalidStatus)
	}

	c := &domainChip.Chip{
		ICCID:   utils.SanitizeString(req.ICCID),
		Carrier: utils.SanitizeOptional(req.Carrier),
		Plan:    utils.SanitizeOptional(req.Plan),
		Status:  status,
		Notes:   utils.SanitizeOptional(req.Notes),
	}
	if req.PhoneNumber != nil {
		phone := utils.SanitizePhone(*req.PhoneNumber)
		c.PhoneNumber = &phone
	}

	if err := s.chipRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	created, err := s.chipRepo.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Satellite chip created",
		zap.String("chip_id", created.ID.String()),
		zap.String("iccid", created.ICCID),
		zap.String("actor", actor),
		zap.String("event", "chip_created"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityChip, created.ID, domainAudit.ActionCreate, actor, map[string]interface{}{
		"iccid": created.ICCID,
	})

	return ToChipResponse(created), nil
}

func (s *Service) GetChip(ctx context.Context, chipID uuid.UUID) (*ChipResponse, error) {
	c, err := s.chipRepo.GetByID(ctx, chipID)
	if err != nil {
		return nil, err
	}
	return ToChipResponse(c), nil
}

func (s *Service) ListChips(ctx context.Context, filter *FilterRequest) (*ListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.Validation(err)
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	chips, total, err := s.chipRepo.List(ctx, ToDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]ChipResponse, len(chips))
	for i, c := range chips {
		responses[i] = *ToChipResponse(c)
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &ListResponse{
		Chips:      responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) ListAvailable(ctx context.Context) ([]ChipResponse, error) {
	status := domainChip.StatusAvailable
	chips, _, err := s.chipRepo.List(ctx, &domainChip.Filter{Status: &status, PageSize: 100})
	if err != nil {
		return nil, err
	}

	responses := make([]ChipResponse, len(chips))
	for i, c := range chips {
		responses[i] = *ToChipResponse(c)
	}
	return responses, nil
}

func (s *Service) UpdateChip(ctx context.Context, chipID uuid.UUID, req *UpdateChipRequest, actor string) (*ChipResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	c, err := s.chipRepo.GetByID(ctx, chipID)
	if err != nil {
		return nil, err
	}
	previousStatus := c.Status

	if req.Status != nil {
		next := domainChip.Status(*req.Status)
		if err := domainChip.ValidateManualTransition(c.Status, next); err != nil {
			return nil, err
		}
		c.Status = next
	}
	if req.PhoneNumber != nil {
		phone := utils.SanitizePhone(*req.PhoneNumber)
		c.PhoneNumber = &phone
	}
	if req.Carrier != nil {
		c.Carrier = utils.SanitizeOptional(req.Carrier)
	}
	if req.Plan != nil {
		c.Plan = utils.SanitizeOptional(req.Plan)
	}
	if req.Notes != nil {
		c.Notes = utils.SanitizeOptional(req.Notes)
	}

	if err := s.chipRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	updated, err := s.chipRepo.GetByID(ctx, chipID)
	if err != nil {
		return nil, err
	}

	logger.Info("Satellite chip updated",
		zap.String("chip_id", updated.ID.String()),
		zap.String("previous_status", string(previousStatus)),
		zap.String("status", string(updated.Status)),
		zap.String("actor", actor),
		zap.String("event", "chip_updated"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityChip, updated.ID, domainAudit.ActionUpdate, actor, map[string]interface{}{
		"previousStatus": string(previousStatus),
		"status":         string(updated.Status),
	})

	return ToChipResponse(updated), nil
}

func (s *Service) RetireChip(ctx context.Context, chipID uuid.UUID, actor string) error {
	if err := s.chipRepo.Retire(ctx, chipID); err != nil {
		return err
	}

	logger.Info("Satellite chip retired",
		zap.String("chip_id", chipID.String()),
		zap.String("actor", actor),
		zap.String("event", "chip_retired"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityChip, chipID, domainAudit.ActionRetire, actor, nil)

	return nil
}
