package cache

import (
	"fmt"

	catalogapp "github.com/catalog/backend/internal/application/catalog"
	"github.com/catalog/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SnapshotCacheFactory creates job snapshot caches based on configuration
type SnapshotCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SnapshotCacheFactoryOption is a functional option for configuring the factory
type SnapshotCacheFactoryOption func(*SnapshotCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SnapshotCacheFactoryOption {
	return func(f *SnapshotCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) SnapshotCacheFactoryOption {
	return func(f *SnapshotCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSnapshotCacheFactory creates a new factory
func NewSnapshotCacheFactory(cfg config.RedisConfig, opts ...SnapshotCacheFactoryOption) *SnapshotCacheFactory {
	f := &SnapshotCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed snapshot cache
func (f *SnapshotCacheFactory) CreateRedisCache() (catalogapp.JobSnapshotCache, error) {
	cache, err := NewRedisSnapshotCache(f.redisConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis snapshot cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates an in-memory snapshot cache.
// This is suitable for single-instance deployments and testing.
func (f *SnapshotCacheFactory) CreateInMemoryCache() catalogapp.JobSnapshotCache {
	return NewInMemorySnapshotCache()
}

// CreateCache creates a snapshot cache based on whether Redis is enabled and
// reachable. It falls back to the in-memory cache when Redis is disabled, or
// unavailable and AllowInMemoryFallback is true.
func (f *SnapshotCacheFactory) CreateCache() (catalogapp.JobSnapshotCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory snapshot cache")
		return f.CreateInMemoryCache(), nil
	}

	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis snapshot cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for snapshot cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory snapshot cache. "+
		"Status polls will miss the cache on instances that did not process the job.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
