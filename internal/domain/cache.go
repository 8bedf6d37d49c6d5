package domain

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultStatusTTL bounds how often the analyzer (and therefore the
// inference service) can be invoked.
const DefaultStatusTTL = 10 * time.Minute

// StatusCache memoizes the last computed snapshot for a fixed TTL. The
// entry is replaced wholesale on refresh, and concurrent callers hitting an
// expired entry share a single recomputation.
type StatusCache struct {
	analyzer *StatusService
	ttl      time.Duration
	now      func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	snapshot  *StatusSnapshot
	expiresAt time.Time
}

// NewStatusCache creates a cache around analyzer with the given TTL.
func NewStatusCache(analyzer *StatusService, ttl time.Duration) *StatusCache {
	return &StatusCache{
		analyzer: analyzer,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Snapshot returns the cached snapshot, recomputing it synchronously if the
// TTL has passed. A failed recomputation leaves the previous entry in place.
func (c *StatusCache) Snapshot(ctx context.Context) (*StatusSnapshot, error) {
	c.mu.Lock()
	if c.snapshot != nil && c.now().Before(c.expiresAt) {
		snap := c.snapshot
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("status", func() (any, error) {
		snap, err := c.analyzer.AnalyzeCheckpoints(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.snapshot = snap
		c.expiresAt = c.now().Add(c.ttl)
		c.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*StatusSnapshot), nil
}
