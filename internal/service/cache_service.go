package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cancha-club/cancha-api/internal/repository"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
)

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService wraps the Redis-backed cache with hit/miss accounting. A nil
// receiver or nil store degrades to a pass-through that always misses, so
// callers never branch on cache availability.
type CacheService struct {
	store   cacheStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCacheService constructs a CacheService.
func NewCacheService(store cacheStore, metrics *MetricsService, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{store: store, metrics: metrics, logger: logger}
}

// Get loads the cached value into dest, reporting whether it was a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if s == nil || s.store == nil {
		return false, nil
	}

	start := time.Now()
	err := s.store.Get(ctx, key, dest)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			s.metrics.RecordCacheOperation(false, duration)
			return false, nil
		}
		return false, err
	}

	s.metrics.RecordCacheOperation(true, duration)
	return true, nil
}

// Set stores a value with the given TTL. Failures are logged, not propagated:
// the cache is an optimization, never a correctness dependency.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s == nil || s.store == nil {
		return
	}

	start := time.Now()
	if err := s.store.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.metrics.ObserveCacheWrite(time.Since(start))
}

// InvalidateAvailability drops every cached availability payload for a
// complex. Called after any write that changes occupancy.
func (s *CacheService) InvalidateAvailability(ctx context.Context, complexID string) {
	if s == nil || s.store == nil {
		return
	}
	pattern := repository.AvailabilityPattern(complexID)
	if err := s.store.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
