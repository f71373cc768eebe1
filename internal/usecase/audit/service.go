package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainAudit "electrotrack/internal/domain/audit"
	"electrotrack/internal/domain/dashboard"
	"electrotrack/internal/logger"
	appErrors "electrotrack/pkg/errors"
	"electrotrack/pkg/utils"
)

type Service struct {
	auditRepo domainAudit.Repository
}

func NewService(auditRepo domainAudit.Repository) *Service {
	return &Service{auditRepo: auditRepo}
}

func (s *Service) List(ctx context.Context, filter *FilterRequest) (*ListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.Validation(err)
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := &domainAudit.Filter{
		Entity:   filter.Entity,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.EntityID != "" {
		id := uuid.MustParse(filter.EntityID)
		domainFilter.EntityID = &id
	}

	entries, total, err := s.auditRepo.List(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(e)
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &ListResponse{
		Entries:    responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Recorder is used by the registry services after a successful write: it
// appends an audit entry and drops the cached dashboard stats. Failures are
// logged only, the write itself already succeeded.
type Recorder struct {
	auditRepo domainAudit.Repository
	cache     dashboard.Cache
}

func NewRecorder(auditRepo domainAudit.Repository, cache dashboard.Cache) *Recorder {
	return &Recorder{auditRepo: auditRepo, cache: cache}
}

func (r *Recorder) Changed(ctx context.Context, entity string, entityID uuid.UUID, action, actor string, details map[string]interface{}) {
	err := r.auditRepo.Record(ctx, &domainAudit.Entry{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Actor:    actor,
		Details:  details,
	})
	if err != nil {
		logger.Error("Failed to record audit entry",
			zap.String("entity", entity),
			zap.String("entity_id", entityID.String()),
			zap.String("action", action),
			zap.Error(err),
			zap.String("event", "audit_record_failed"),
		)
	}

	if err := r.cache.Invalidate(ctx); err != nil {
		logger.Warn("Failed to invalidate dashboard cache",
			zap.String("entity", entity),
			zap.Error(err),
			zap.String("event", "stats_cache_invalidate_failed"),
		)
	}
}
