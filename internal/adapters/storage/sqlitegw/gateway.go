// Package sqlitegw stores the tabular document in a local SQLite file. It is
// the default backend for development and self-hosted single-instance
// deployments; the wire shape (whole-table replace, text cells) matches the
// spreadsheet backend exactly.
package sqlitegw

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"ubase/internal/adapters/storage"
)

// Gateway persists each table as numbered JSON rows in a single generic
// sheet_rows table, mirroring the document model of the spreadsheet backend.
type Gateway struct {
	db *sql.DB
}

// Open opens (and creates if needed) the SQLite document at path.
// PRE: path is a writable file path, or ":memory:"
// POST: Returns a gateway with the sheet_rows table provisioned
func Open(path string) (*Gateway, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite document: %w", err)
	}
	g := &Gateway{db: db}
	if err := g.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return g, nil
}

// Close releases the underlying database handle.
func (g *Gateway) Close() error {
	return g.db.Close()
}

func (g *Gateway) migrate() error {
	_, err := g.db.Exec(`
	CREATE TABLE IF NOT EXISTS sheet_rows (
		sheet    TEXT NOT NULL,
		rownum   INTEGER NOT NULL,
		row_json TEXT NOT NULL,
		PRIMARY KEY (sheet, rownum)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create sheet_rows table: %w", err)
	}
	return nil
}

// ReadTable returns the rows of table in stored order, normalized to the
// declared schema. A row whose stored JSON no longer parses is kept as an
// all-empty row rather than failing the read.
func (g *Gateway) ReadTable(ctx context.Context, table string) ([]storage.Row, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT row_json FROM sheet_rows WHERE sheet = ? ORDER BY rownum`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	defer rows.Close()

	var out []storage.Row
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}
		var cells map[string]string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			cells = nil
		}
		out = append(out, storage.Normalize(table, cells))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	return out, nil
}

// WriteTable replaces the contents of table inside one transaction.
func (g *Gateway) WriteTable(ctx context.Context, table string, rows []storage.Row) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin write of %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sheet_rows WHERE sheet = ?`, table); err != nil {
		return fmt.Errorf("failed to clear table %s: %w", table, err)
	}
	for i, row := range rows {
		raw, err := json.Marshal(storage.Normalize(table, row))
		if err != nil {
			return fmt.Errorf("failed to encode row of %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_rows (sheet, rownum, row_json) VALUES (?, ?, ?)`,
			table, i, string(raw)); err != nil {
			return fmt.Errorf("failed to write row of %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit write of %s: %w", table, err)
	}
	return nil
}

// EnsureTables is a no-op for SQLite: a sheet with no rows reads back as an
// empty table already.
func (g *Gateway) EnsureTables(context.Context) error {
	return nil
}
