package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"electrotrack/internal/domain/dashboard"
)

const StatsKey = "electrotrack:dashboard:stats"

// StatsCache keeps the last dashboard.Stats under a single key.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// NewClient opens a client and pings it.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

func (s *StatsCache) Get(ctx context.Context) (*dashboard.Stats, bool, error) {
	b, err := s.rdb.Get(ctx, StatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached stats: %w", err)
	}

	stats, err := decodeStats(b)
	if err != nil {
		return nil, false, err
	}
	return stats, true, nil
}

func (s *StatsCache) Set(ctx context.Context, stats *dashboard.Stats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	return s.rdb.Set(ctx, StatsKey, b, s.ttl).Err()
}

func (s *StatsCache) Invalidate(ctx context.Context) error {
	return s.rdb.Del(ctx, StatsKey).Err()
}

func decodeStats(b []byte) (*dashboard.Stats, error) {
	var stats dashboard.Stats
	if err := json.Unmarshal(b, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode cached stats: %w", err)
	}
	return &stats, nil
}

// Noop never stores anything; used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context) (*dashboard.Stats, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, *dashboard.Stats) error         { return nil }
func (Noop) Invalidate(context.Context) error                    { return nil }

var (
	_ dashboard.Cache = (*StatsCache)(nil)
	_ dashboard.Cache = Noop{}
)
