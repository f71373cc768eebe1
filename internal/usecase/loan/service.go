package loan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"electrotrack/internal/domain/dashboard"
	domainLoan "electrotrack/internal/domain/loan"
	"electrotrack/internal/logger"
	"electrotrack/internal/metrics"
	appErrors "electrotrack/pkg/errors"
	"electrotrack/pkg/utils"
)

// MetricsRecorder counts lifecycle operations.
type MetricsRecorder interface {
	LoanOperation(operation, outcome string)
}

// Service implements the loan lifecycle use cases. Persistence and asset
// status changes happen in one repository transaction; metrics, cache
// invalidation and events run only after it committed.
type Service struct {
	loanRepo  domainLoan.Repository
	cache     dashboard.Cache
	publisher domainLoan.EventPublisher
	metrics   MetricsRecorder
	now       func() time.Time
}

func NewService(
	loanRepo domainLoan.Repository,
	cache dashboard.Cache,
	publisher domainLoan.EventPublisher,
	recorder MetricsRecorder,
) *Service {
	return &Service{
		loanRepo:  loanRepo,
		cache:     cache,
		publisher: publisher,
		metrics:   recorder,
		now:       time.Now,
	}
}

func (s *Service) CreateLoan(ctx context.Context, req *LoanRequest, actor string) (*LoanResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	l := ToDomainLoan(req)
	if l.LoanDate.IsZero() {
		l.LoanDate = s.now().UTC()
	}
	if err := l.Validate(); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, err.Error(), err)
	}

	if err := s.loanRepo.Create(ctx, l, actor); err != nil {
		s.metrics.LoanOperation("create", metrics.OutcomeError)
		logger.Warn("Loan creation failed",
			zap.String("actor", actor),
			zap.Int("items", len(l.Items)),
			zap.Error(err),
			zap.String("event", "loan_create_failed"),
		)
		return nil, err
	}

	created, err := s.loanRepo.GetByID(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Loan created",
		zap.String("loan_id", created.ID.String()),
		zap.String("order_id", created.OrderID),
		zap.Int("items", len(created.Items)),
		zap.String("actor", actor),
		zap.String("event", "loan_created"),
	)
	s.afterCommit(ctx, "create", metrics.OutcomeSuccess, domainLoan.EventCreated, created, actor)

	return ToLoanResponse(created, s.now()), nil
}

func (s *Service) UpdateLoan(ctx context.Context, loanID uuid.UUID, req *LoanRequest, actor string) (*LoanResponse, error) {
	if req.ID == nil || *req.ID != loanID {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, domainLoan.ErrIDMismatch.Error(), domainLoan.ErrIDMismatch)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	l := ToDomainLoan(req)
	l.ID = loanID
	if err := l.Validate(); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, err.Error(), err)
	}

	if err := s.loanRepo.Update(ctx, l, actor); err != nil {
		s.metrics.LoanOperation("update", metrics.OutcomeError)
		logger.Warn("Loan update failed",
			zap.String("loan_id", loanID.String()),
			zap.String("actor", actor),
			zap.Error(err),
			zap.String("event", "loan_update_failed"),
		)
		return nil, err
	}

	updated, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	logger.Info("Loan updated",
		zap.String("loan_id", updated.ID.String()),
		zap.String("order_id", updated.OrderID),
		zap.Int("items", len(updated.Items)),
		zap.String("actor", actor),
		zap.String("event", "loan_updated"),
	)
	s.afterCommit(ctx, "update", metrics.OutcomeSuccess, domainLoan.EventUpdated, updated, actor)

	return ToLoanResponse(updated, s.now()), nil
}

func (s *Service) ReturnLoan(ctx context.Context, loanID uuid.UUID, req *ReturnLoanRequest, actor string) (*ReturnResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	ret := ToDomainReturn(req)
	if err := ret.Validate(); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, err.Error(), err)
	}

	l, outcome, err := s.loanRepo.Return(ctx, loanID, ret, actor)
	if err != nil {
		s.metrics.LoanOperation("return", metrics.OutcomeError)
		logger.Warn("Loan return failed",
			zap.String("loan_id", loanID.String()),
			zap.String("actor", actor),
			zap.Error(err),
			zap.String("event", "loan_return_failed"),
		)
		return nil, err
	}

	logger.Info("Loan return processed",
		zap.String("loan_id", l.ID.String()),
		zap.String("order_id", l.OrderID),
		zap.String("outcome", string(outcome)),
		zap.String("status", string(l.Status)),
		zap.String("actor", actor),
		zap.String("event", "loan_returned"),
	)

	switch outcome {
	case domainLoan.ReturnOutcomeComplete:
		s.afterCommit(ctx, "return", string(outcome), domainLoan.EventReturned, l, actor)
	case domainLoan.ReturnOutcomePartial:
		s.afterCommit(ctx, "return", string(outcome), domainLoan.EventPartiallyReturned, l, actor)
	default:
		s.metrics.LoanOperation("return", string(outcome))
	}

	return &ReturnResponse{Loan: ToLoanResponse(l, s.now()), Outcome: outcome}, nil
}

func (s *Service) CancelLoan(ctx context.Context, loanID uuid.UUID, actor string) (*LoanResponse, error) {
	l, err := s.loanRepo.Cancel(ctx, loanID, actor)
	if err != nil {
		s.metrics.LoanOperation("cancel", metrics.OutcomeError)
		logger.Warn("Loan cancellation failed",
			zap.String("loan_id", loanID.String()),
			zap.String("actor", actor),
			zap.Error(err),
			zap.String("event", "loan_cancel_failed"),
		)
		return nil, err
	}

	logger.Info("Loan cancelled",
		zap.String("loan_id", l.ID.String()),
		zap.String("order_id", l.OrderID),
		zap.String("actor", actor),
		zap.String("event", "loan_cancelled"),
	)
	s.afterCommit(ctx, "cancel", metrics.OutcomeSuccess, domainLoan.EventCancelled, l, actor)

	return ToLoanResponse(l, s.now()), nil
}

func (s *Service) GetLoan(ctx context.Context, loanID uuid.UUID) (*LoanResponse, error) {
	l, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return ToLoanResponse(l, s.now()), nil
}

func (s *Service) ListLoans(ctx context.Context, filter *LoanFilterRequest) (*LoanListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.Validation(err)
	}
	paginated := filter.Page > 0 || filter.PageSize > 0
	if paginated {
		if filter.Page <= 0 {
			filter.Page = 1
		}
		if filter.PageSize <= 0 {
			filter.PageSize = 20
		}
	}

	loans, total, err := s.loanRepo.List(ctx, ToDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]LoanResponse, len(loans))
	for i, l := range loans {
		responses[i] = *ToLoanResponse(l, now)
	}

	// Without page or page_size the whole list is one page.
	if !paginated {
		filter.Page = 1
		filter.PageSize = len(responses)
	}
	totalPages := 0
	if filter.PageSize > 0 {
		totalPages = int(total) / filter.PageSize
		if int(total)%filter.PageSize > 0 {
			totalPages++
		}
	}

	return &LoanListResponse{
		Loans:      responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListEquipmentHistory returns every loan that included the equipment, newest first.
func (s *Service) ListEquipmentHistory(ctx context.Context, equipmentID uuid.UUID) ([]LoanResponse, error) {
	loans, err := s.loanRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]LoanResponse, len(loans))
	for i, l := range loans {
		responses[i] = *ToLoanResponse(l, now)
	}
	return responses, nil
}

// afterCommit never fails the request: the transaction is already durable.
func (s *Service) afterCommit(ctx context.Context, operation, outcome string, eventType domainLoan.EventType, l *domainLoan.Loan, actor string) {
	s.metrics.LoanOperation(operation, outcome)

	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn("Failed to invalidate dashboard cache",
			zap.String("loan_id", l.ID.String()),
			zap.Error(err),
			zap.String("event", "stats_cache_invalidate_failed"),
		)
	}

	if err := s.publisher.Publish(ctx, domainLoan.NewEvent(eventType, l, actor)); err != nil {
		logger.Error("Failed to publish loan event",
			zap.String("loan_id", l.ID.String()),
			zap.String("type", string(eventType)),
			zap.Error(err),
			zap.String("event", "loan_event_publish_failed"),
		)
	}
}
