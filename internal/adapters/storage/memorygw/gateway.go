// Package memorygw is an in-memory tabular gateway, used by tests and as a
// throwaway backend for local experiments.
package memorygw

import (
	"context"
	"sync"

	"ubase/internal/adapters/storage"
)

// Gateway holds every table in memory. The zero value is not usable; call
// New.
type Gateway struct {
	mu     sync.Mutex
	tables map[string][]storage.Row

	// WriteErr, when set, is returned by the next WriteTable calls. Tests
	// use it to simulate transport failures.
	WriteErr error
}

// New creates an empty in-memory gateway.
func New() *Gateway {
	return &Gateway{tables: make(map[string][]storage.Row)}
}

// ReadTable returns the stored rows of table, normalized to its schema.
// A missing table yields zero rows.
func (g *Gateway) ReadTable(_ context.Context, table string) ([]storage.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return storage.NormalizeAll(table, g.tables[table]), nil
}

// WriteTable replaces the contents of table.
func (g *Gateway) WriteTable(_ context.Context, table string, rows []storage.Row) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.WriteErr != nil {
		return g.WriteErr
	}
	g.tables[table] = storage.NormalizeAll(table, rows)
	return nil
}

// EnsureTables provisions every declared table.
func (g *Gateway) EnsureTables(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, name := range storage.TableNames {
		if _, ok := g.tables[name]; !ok {
			g.tables[name] = nil
		}
	}
	return nil
}
