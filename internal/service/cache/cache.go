// Package cache provides an LRU cache with per-entry expiry, sharded to
// reduce lock contention.
package cache

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/guttosm/cargo-service/internal/metrics"
)

// Cache is the contract shared by the single-shard and sharded caches.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Invalidate(key string)
	Clear()
	Metrics() Metrics
}

// Metrics reports cache effectiveness.
type Metrics struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
}

func (m *Metrics) add(o Metrics) {
	m.Hits += o.Hits
	m.Misses += o.Misses
	m.Evictions += o.Evictions
	m.Size += o.Size
	m.Capacity += o.Capacity
}

type entry[V any] struct {
	key        string
	value      V
	expiresAt  time.Time
	prev, next *entry[V]
}

// LRU is a single-lock LRU cache whose entries expire after a TTL.
type LRU[V any] struct {
	name     string
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry[V]
	head     *entry[V]
	tail     *entry[V]
	stats    Metrics
	now      func() time.Time
}

// NewLRU creates a cache holding at most capacity entries.
func NewLRU[V any](name string, capacity int, ttl time.Duration) *LRU[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
		now:      time.Now,
	}
}

// Get returns a live entry and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	var zero V
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		metrics.RecordCacheOperation(c.name, "get", "miss")
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.removeEntry(e)
		c.stats.Misses++
		metrics.RecordCacheOperation(c.name, "get", "expired")
		return zero, false
	}
	c.moveToFront(e)
	c.stats.Hits++
	metrics.RecordCacheOperation(c.name, "get", "hit")
	return e.value, true
}

// Set stores value, evicting the least recently used entry when full.
func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if e, ok := c.items[key]; ok {
		e.value, e.expiresAt = value, expires
		c.moveToFront(e)
		return
	}
	e := &entry[V]{key: key, value: value, expiresAt: expires}
	c.items[key] = e
	c.pushFront(e)
	if len(c.items) > c.capacity {
		c.removeEntry(c.tail)
		c.stats.Evictions++
		metrics.RecordCacheOperation(c.name, "evict", "capacity")
	}
}

// Invalidate drops key.
func (c *LRU[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		c.removeEntry(e)
		metrics.RecordCacheOperation(c.name, "invalidate", "success")
	}
}

// Clear drops every entry and resets the counters.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry[V], c.capacity)
	c.head, c.tail = nil, nil
	c.stats = Metrics{}
}

// Purge drops expired entries and returns how many were removed.
func (c *LRU[V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now, n := c.now(), 0
	for e := c.tail; e != nil; {
		prev := e.prev
		if now.After(e.expiresAt) {
			c.removeEntry(e)
			n++
		}
		e = prev
	}
	return n
}

// Metrics returns a snapshot of the counters.
func (c *LRU[V]) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.stats
	m.Size, m.Capacity = len(c.items), c.capacity
	return m
}

func (c *LRU[V]) removeEntry(e *entry[V]) {
	delete(c.items, e.key)
	c.unlink(e)
}

func (c *LRU[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *LRU[V]) pushFront(e *entry[V]) {
	e.prev, e.next = nil, c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *LRU[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

// Sharded spreads keys over independent LRU shards.
type Sharded[V any] struct {
	shards []*LRU[V]
	mask   uint64
	stop   chan struct{}
	once   sync.Once
}

// NewSharded creates a sharded cache. numShards is rounded up to a power of
// two; capacity is split evenly between shards. A janitor goroutine purges
// expired entries every cleanup interval until Stop is called; a zero
// interval disables it.
func NewSharded[V any](name string, capacity int, ttl time.Duration, numShards int, cleanup time.Duration) *Sharded[V] {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n <<= 1
	}
	per := capacity / n
	if per < 1 {
		per = 1
	}
	s := &Sharded[V]{
		shards: make([]*LRU[V], n),
		mask:   uint64(n - 1),
		stop:   make(chan struct{}),
	}
	for i := range s.shards {
		s.shards[i] = NewLRU[V](name, per, ttl)
	}
	if cleanup > 0 {
		go s.janitor(cleanup)
	}
	return s
}

func (s *Sharded[V]) shard(key string) *LRU[V] {
	return s.shards[xxhash.Sum64String(key)&s.mask]
}

func (s *Sharded[V]) Get(key string) (V, bool) { return s.shard(key).Get(key) }
func (s *Sharded[V]) Set(key string, value V)  { s.shard(key).Set(key, value) }
func (s *Sharded[V]) Invalidate(key string)    { s.shard(key).Invalidate(key) }

// Clear empties every shard.
func (s *Sharded[V]) Clear() {
	for _, sh := range s.shards {
		sh.Clear()
	}
}

// Metrics aggregates the shard counters.
func (s *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, sh := range s.shards {
		total.add(sh.Metrics())
	}
	return total
}

// Shards returns the shard count.
func (s *Sharded[V]) Shards() int { return len(s.shards) }

// Stop ends the janitor. It is safe to call more than once.
func (s *Sharded[V]) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Sharded[V]) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			for _, sh := range s.shards {
				sh.Purge()
			}
		case <-s.stop:
			return
		}
	}
}
