// Package cache provides the in-memory memoization of derived set tables.
// Caching lives here, outside the pure computation core, so repeated
// dashboard and MCP queries over the same window skip the rebuild.
package cache

import (
	"sync"
	"time"

	"github.com/claude/gymtrack/internal/workout"
)

// DefaultTTL is how long a derived table stays valid without invalidation.
const DefaultTTL = time.Hour

type entry struct {
	table   workout.Table
	expires time.Time
}

// Cache is a TTL cache for derived set tables, keyed by query shape
// (sources + window). The clock is injectable so expiry is testable.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// New creates a cache with the given TTL using the wall clock.
// A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock creates a cache with an explicit clock.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry),
	}
}

// Get returns the cached table for key if present and not expired.
func (c *Cache) Get(key string) (workout.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.table, true
}

// Put stores a table under key, stamped with the TTL.
func (c *Cache) Put(key string, table workout.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{table: table, expires: c.now().Add(c.ttl)}
}

// Clear drops every entry. Called after an ingest so fresh rows become
// visible immediately instead of after TTL expiry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the number of live entries, expired ones included until read.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
