package cache

import (
	"context"
	"sync"
	"time"

	catalogapp "github.com/catalog/backend/internal/application/catalog"
	"github.com/catalog/backend/internal/domain/shared"
)

// entry represents a cached snapshot with expiration
type entry struct {
	snapshot  catalogapp.JobStatusResponse
	expiresAt time.Time
}

// InMemorySnapshotCache implements JobSnapshotCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemorySnapshotCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySnapshotCache creates a new in-memory snapshot cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemorySnapshotCache() *InMemorySnapshotCache {
	cache := &InMemorySnapshotCache{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// SetSnapshot stores a job status snapshot with a TTL
func (c *InMemorySnapshotCache) SetSnapshot(_ context.Context, snapshot *catalogapp.JobStatusResponse, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[snapshot.JobID] = entry{
		snapshot:  *snapshot,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// GetSnapshot returns the cached snapshot or shared.ErrNotFound on a miss
func (c *InMemorySnapshotCache) GetSnapshot(_ context.Context, jobID string) (*catalogapp.JobStatusResponse, error) {
	c.mu.RLock()
	e, exists := c.entries[jobID]
	c.mu.RUnlock()

	if !exists || time.Now().After(e.expiresAt) {
		return nil, shared.ErrNotFound
	}

	snapshot := e.snapshot
	return &snapshot, nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *InMemorySnapshotCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemorySnapshotCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemorySnapshotCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for jobID, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, jobID)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemorySnapshotCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemorySnapshotCache implements JobSnapshotCache
var _ catalogapp.JobSnapshotCache = (*InMemorySnapshotCache)(nil)
