package storage

import (
	"context"
	"log/slog"
)

// TableClient is the single handle stores use to touch table state. Reads go
// through the cache; a successful write invalidates the written table's
// cache entry before returning, which is what makes writes visible to the
// next read despite the TTL. A failed write leaves the cache untouched:
// stale-but-consistent beats wrongly-fresh.
type TableClient struct {
	gw    Gateway
	cache *Cache
}

// NewTableClient builds a client over gw and cache. The cache must wrap the
// same gateway.
func NewTableClient(gw Gateway, cache *Cache) *TableClient {
	return &TableClient{gw: gw, cache: cache}
}

// Read returns the rows of table, served from cache within the TTL.
func (t *TableClient) Read(ctx context.Context, table string) ([]Row, error) {
	return t.cache.Read(ctx, table)
}

// Write replaces the contents of table and, on success only, invalidates its
// cache entry.
func (t *TableClient) Write(ctx context.Context, table string, rows []Row) error {
	if err := t.gw.WriteTable(ctx, table, rows); err != nil {
		return err
	}
	t.cache.Invalidate(table)
	slog.Debug("table_write", "table", table, "rows", len(rows))
	return nil
}
