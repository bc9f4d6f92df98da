// Package cache is a small in-memory TTL cache for provider responses.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
	expires  time.Time
}

// Cache is a thread-safe key/value store whose entries expire after a
// fixed TTL. When full, the oldest entry is evicted.
type Cache[V any] struct {
	mu      sync.RWMutex
	items   map[string]entry[V]
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// New returns a cache. A maxSize of zero or less means unbounded.
func New[V any](ttl time.Duration, maxSize int) *Cache[V] {
	return &Cache[V]{
		items:   make(map[string]entry[V]),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.now = now
	return c
}

// Get returns the value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if c.ttl > 0 && c.now().After(e.expires) {
		c.Delete(key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key.
func (c *Cache[V]) Set(key string, value V) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && c.maxSize > 0 && len(c.items) >= c.maxSize {
		c.evictOldestLocked()
	}
	c.items[key] = entry[V]{value: value, storedAt: now, expires: now.Add(c.ttl)}
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len counts stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// DeleteExpired drops every expired entry and returns how many went.
func (c *Cache[V]) DeleteExpired() int {
	if c.ttl <= 0 {
		return 0
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k, e := range c.items {
		if now.After(e.expires) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

func (c *Cache[V]) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.items {
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldestKey, oldest = k, e.storedAt
		}
	}
	delete(c.items, oldestKey)
}

// RouteKey builds a short key for an origin/destination query. Points are
// rounded to four decimals (about 11 m) so tiny coordinate jitter still
// hits the cache.
func RouteKey(kind string, fromLat, fromLng, toLat, toLng float64, extra ...string) string {
	raw := fmt.Sprintf("%s|%.4f,%.4f->%.4f,%.4f", kind, fromLat, fromLng, toLat, toLng)
	for _, e := range extra {
		raw += "|" + e
	}
	sum := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", sum[:16])
}
