package storage

import "context"

// Gateway is the transport adapter for the backing tabular document.
// Implementations: sheetsgw (Google Sheets), sqlitegw (local document),
// memorygw (tests).
type Gateway interface {
	// ReadTable returns every data row of table, normalized to the declared
	// schema. A table missing from the backing store yields zero rows, not
	// an error.
	ReadTable(ctx context.Context, table string) ([]Row, error)

	// WriteTable replaces the entire contents of table with rows (header
	// plus data). There is no partial write: the previous contents are gone
	// once this returns nil.
	WriteTable(ctx context.Context, table string, rows []Row) error

	// EnsureTables provisions any table missing from the backing store with
	// its header row.
	EnsureTables(ctx context.Context) error
}
