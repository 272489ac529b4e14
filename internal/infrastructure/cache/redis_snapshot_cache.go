package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	catalogapp "github.com/catalog/backend/internal/application/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	infraconfig "github.com/catalog/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisSnapshotCache implements JobSnapshotCache using Redis.
// This is suitable for deployments where multiple instances serve
// status polls for jobs processed elsewhere.
type RedisSnapshotCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSnapshotCache creates a new Redis-backed snapshot cache
func NewRedisSnapshotCache(cfg infraconfig.RedisConfig) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSnapshotCache{
		client:    client,
		keyPrefix: "catalog:job:snapshot:",
	}, nil
}

// NewRedisSnapshotCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisSnapshotCacheWithClient(client *redis.Client, keyPrefix string) *RedisSnapshotCache {
	if keyPrefix == "" {
		keyPrefix = "catalog:job:snapshot:"
	}
	return &RedisSnapshotCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// SetSnapshot stores a job status snapshot with a TTL
func (c *RedisSnapshotCache) SetSnapshot(ctx context.Context, snapshot *catalogapp.JobStatusResponse, ttl time.Duration) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := c.keyPrefix + snapshot.JobID
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns the cached snapshot or shared.ErrNotFound on a miss
func (c *RedisSnapshotCache) GetSnapshot(ctx context.Context, jobID string) (*catalogapp.JobStatusResponse, error) {
	key := c.keyPrefix + jobID

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot catalogapp.JobStatusResponse
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}

// Close closes the Redis client
func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisSnapshotCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisSnapshotCache implements JobSnapshotCache
var _ catalogapp.JobSnapshotCache = (*RedisSnapshotCache)(nil)
