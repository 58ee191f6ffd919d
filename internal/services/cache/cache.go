// Package cache memoizes fetch+parse results per resolved vendor URL and
// collapses concurrent requests for the same URL into one in-flight
// operation.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTTL is the memo window for vendor statistics.
	DefaultTTL = 5 * time.Minute

	// sweepThreshold is the entry count past which a write triggers an
	// expired-entry sweep. Live entries are never evicted: a burst of more
	// than sweepThreshold distinct live keys degrades to an unbounded map
	// until their TTLs lapse, which is acceptable at watchlist scale.
	sweepThreshold = 100
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is a TTL memo map with request deduplication. All state is owned by
// the instance, so tests can construct and reset it freely.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
	logger  arbor.ILogger

	// now is replaceable in tests
	now func() time.Time
}

// New creates an empty cache.
func New(logger arbor.ILogger) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		logger:  logger,
		now:     time.Now,
	}
}

// GetOrFetch returns the live cached value for key, or joins an in-flight
// producer for the same key, or invokes producer. Only successes are cached;
// concurrent callers of a failing producer all receive the same error.
func (c *Cache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, producer func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A caller that lost the race to an already-completed flight may
		// arrive here after the value landed in the map.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		value, err := producer(ctx)
		if err != nil {
			return nil, err
		}

		c.store(key, value, ttl)
		return value, nil
	})
	return v, err
}

// Get returns the live cached value for key without fetching.
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.lookup(key)
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops all entries.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *Cache) lookup(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}

	if len(c.entries) > sweepThreshold {
		c.sweepLocked()
	}
}

// sweepLocked evicts expired entries only. Callers hold c.mu.
func (c *Cache) sweepLocked() {
	now := c.now()
	evicted := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	if evicted > 0 {
		c.logger.Debug().
			Int("evicted", evicted).
			Int("remaining", len(c.entries)).
			Msg("Swept expired cache entries")
	}
}
