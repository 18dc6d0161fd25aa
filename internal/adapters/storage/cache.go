package storage

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is the cache lifetime of one table snapshot.
const DefaultTTL = 5 * time.Minute

type cacheEntry struct {
	rows      []Row
	fetchedAt time.Time
}

// Cache is a process-wide TTL snapshot cache in front of a Gateway, keyed by
// table name. It holds at most one snapshot per table. Readers never block
// each other; a miss or an expired entry blocks on one gateway round trip.
// A per-table generation counter guards the fetch: rows read before an
// invalidation are never stored after it, so a write is visible immediately
// even when a read was in flight across it.
//
// Callers must treat returned rows as read-only.
type Cache struct {
	gw  Gateway
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	gens    map[string]uint64
}

// NewCache wraps gw with a TTL cache. A non-positive ttl falls back to
// DefaultTTL.
func NewCache(gw Gateway, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		gw:      gw,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
		gens:    make(map[string]uint64),
	}
}

// Read returns the cached snapshot of table if it is younger than the TTL,
// otherwise fetches a fresh one from the gateway.
func (c *Cache) Read(ctx context.Context, table string) ([]Row, error) {
	c.mu.RLock()
	entry, ok := c.entries[table]
	gen := c.gens[table]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		return entry.rows, nil
	}

	rows, err := c.gw.ReadTable(ctx, table)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	// An invalidation landed while the fetch was in flight; the rows may
	// predate it, so serve them but do not cache them.
	if c.gens[table] == gen {
		c.entries[table] = cacheEntry{rows: rows, fetchedAt: c.now()}
	}
	c.mu.Unlock()
	return rows, nil
}

// Invalidate drops the cached entry for table. The next Read hits the
// gateway.
func (c *Cache) Invalidate(table string) {
	c.mu.Lock()
	delete(c.entries, table)
	c.gens[table]++
	c.mu.Unlock()
}

// InvalidateAll drops every cached entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	for _, table := range TableNames {
		c.gens[table]++
	}
	c.mu.Unlock()
}
