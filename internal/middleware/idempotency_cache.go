package middleware

import (
	"time"

	"github.com/guttosm/cargo-service/internal/service/cache"
)

const (
	idempotencyCacheCapacity = 4096
	idempotencyCacheShards   = 16
)

// idempotencyCache stores cached HTTP responses for idempotency. Entries
// expire after the TTL and are purged every minute.
type idempotencyCache struct {
	entries *cache.Sharded[*cachedResponse]
	ttl     time.Duration
}

// newIdempotencyCache creates a new idempotency cache.
func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	return &idempotencyCache{
		entries: cache.NewSharded[*cachedResponse]("idempotency", idempotencyCacheCapacity, ttl, idempotencyCacheShards, time.Minute),
		ttl:     ttl,
	}
}

// Get retrieves a cached response.
func (c *idempotencyCache) Get(key string) (*cachedResponse, bool) {
	return c.entries.Get(key)
}

// Set stores a cached response.
func (c *idempotencyCache) Set(key string, resp *cachedResponse) {
	resp.Timestamp = time.Now()
	c.entries.Set(key, resp)
}

// Stop ends the background purge.
func (c *idempotencyCache) Stop() {
	c.entries.Stop()
}
