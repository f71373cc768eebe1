package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	domainDashboard "electrotrack/internal/domain/dashboard"
	"electrotrack/internal/logger"
)

// Service serves the dashboard statistics cache-aside. Cache failures only
// cost a recomputation.
type Service struct {
	statsRepo domainDashboard.Repository
	cache     domainDashboard.Cache
	now       func() time.Time
}

func NewService(statsRepo domainDashboard.Repository, cache domainDashboard.Cache) *Service {
	return &Service{
		statsRepo: statsRepo,
		cache:     cache,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) GetStats(ctx context.Context) (*domainDashboard.Stats, error) {
	stats, ok, err := s.cache.Get(ctx)
	if err != nil {
		logger.Warn("Failed to read cached dashboard stats",
			zap.Error(err),
			zap.String("event", "stats_cache_read_failed"),
		)
	}
	if ok {
		return stats, nil
	}

	return s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) (*domainDashboard.Stats, error) {
	stats, err := s.statsRepo.GetStats(ctx, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, stats); err != nil {
		logger.Warn("Failed to cache dashboard stats",
			zap.Error(err),
			zap.String("event", "stats_cache_write_failed"),
		)
	}

	return stats, nil
}

// StartRefreshJob recomputes the cached stats every interval so that the
// overdue count follows the clock even when nothing is written.
func (s *Service) StartRefreshJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Dashboard stats refresh job started",
		zap.Duration("interval", interval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Dashboard stats refresh job stopped")
			return
		case <-ticker.C:
			if _, err := s.refresh(ctx); err != nil {
				logger.Error("Failed to refresh dashboard stats", zap.Error(err))
				continue
			}
			logger.Debug("Dashboard stats refreshed")
		}
	}
}
