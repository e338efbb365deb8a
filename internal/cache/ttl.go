// Package cache provides the in-process TTL caches that shield the
// aggregation queries from repeated recomputation. Both caches are
// single-flight: the lock is held for the duration of the factory call,
// so concurrent misses block instead of each hitting the data source.
package cache

import (
	"sync"
	"time"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/clock"
)

// TTL is a single-slot cache with expiry.
type TTL[V any] struct {
	clock clock.Clock
	ttl   time.Duration

	mu        sync.Mutex
	value     V
	set       bool
	expiresAt time.Time
}

func NewTTL[V any](c clock.Clock, ttl time.Duration) *TTL[V] {
	return &TTL[V]{clock: c, ttl: ttl}
}

// GetOrCompute returns the cached value while it is fresh; otherwise it
// invokes factory exactly once under the lock and stores the result.
// Factory errors are returned to the caller and never cached.
func (c *TTL[V]) GetOrCompute(factory func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.set && now.Before(c.expiresAt) {
		return c.value, nil
	}

	value, err := factory()
	if err != nil {
		var zero V
		return zero, err
	}

	c.value = value
	c.set = true
	c.expiresAt = now.Add(c.ttl)
	return value, nil
}

// Invalidate forces the next GetOrCompute to recompute.
func (c *TTL[V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	c.value = zero
	c.set = false
	c.expiresAt = time.Time{}
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// KeyedTTL is a bounded multi-entry cache keyed by request parameters.
// Before a new entry is inserted, expired entries are purged; if the map
// is still at capacity, the oldest-expiring entries are evicted until one
// slot below capacity remains.
type KeyedTTL[K comparable, V any] struct {
	clock    clock.Clock
	ttl      time.Duration
	capacity int

	mu      sync.Mutex
	entries map[K]entry[V]
}

func NewKeyedTTL[K comparable, V any](c clock.Clock, ttl time.Duration, capacity int) *KeyedTTL[K, V] {
	return &KeyedTTL[K, V]{
		clock:    c,
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[K]entry[V]),
	}
}

func (c *KeyedTTL[K, V]) GetOrCompute(key K, factory func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if e, ok := c.entries[key]; ok && now.Before(e.expiresAt) {
		return e.value, nil
	}

	value, err := factory()
	if err != nil {
		var zero V
		return zero, err
	}

	c.purgeExpired(now)
	c.evictOldest()
	c.entries[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
	return value, nil
}

// Invalidate clears one entry.
func (c *KeyedTTL[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll clears the whole cache.
func (c *KeyedTTL[K, V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]entry[V])
}

// Len returns the current number of entries.
func (c *KeyedTTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *KeyedTTL[K, V]) purgeExpired(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// evictOldest frees slots until the map is one below capacity, dropping
// the entries that expire soonest.
func (c *KeyedTTL[K, V]) evictOldest() {
	for len(c.entries) >= c.capacity {
		var oldest K
		var oldestAt time.Time
		first := true
		for k, e := range c.entries {
			if first || e.expiresAt.Before(oldestAt) {
				oldest = k
				oldestAt = e.expiresAt
				first = false
			}
		}
		delete(c.entries, oldest)
	}
}
