// Package sheetsgw is the Google Sheets tabular gateway: one worksheet per
// table, first row is the header. This is the production backend; the school
// staff keep editing the same spreadsheet the previous system used.
package sheetsgw

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"ubase/internal/adapters/storage"
)

// Gateway talks to one spreadsheet identified by its document ID.
type Gateway struct {
	svc           *sheets.Service
	spreadsheetID string
}

// New builds a gateway authenticated with a service-account credentials
// file.
// PRE: credentialsFile points at a readable service-account JSON key
// POST: Returns a gateway bound to spreadsheetID
func New(ctx context.Context, spreadsheetID, credentialsFile string) (*Gateway, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to build sheets client: %w", err)
	}
	return &Gateway{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// ReadTable fetches all values of the worksheet named table and shapes them
// to the declared schema via the header row. A worksheet that does not exist
// yet is provisioned empty and yields zero rows.
func (g *Gateway) ReadTable(ctx context.Context, table string) ([]storage.Row, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		exists, exErr := g.worksheetExists(ctx, table)
		if exErr == nil && !exists {
			if err := g.provision(ctx, table); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read worksheet %s: %w", table, err)
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = fmt.Sprint(cell)
	}

	rows := make([]storage.Row, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make(storage.Row, len(header))
		for i, cell := range raw {
			if i < len(header) {
				row[header[i]] = fmt.Sprint(cell)
			}
		}
		rows = append(rows, storage.Normalize(table, row))
	}
	return rows, nil
}

// WriteTable clears the worksheet and writes header plus data in one update.
func (g *Gateway) WriteTable(ctx context.Context, table string, rows []storage.Row) error {
	cols := storage.Schemas[table]

	if _, err := g.svc.Spreadsheets.Values.Clear(
		g.spreadsheetID, table, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear worksheet %s: %w", table, err)
	}

	values := make([][]interface{}, 0, len(rows)+1)
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	values = append(values, header)
	for _, row := range rows {
		norm := storage.Normalize(table, row)
		cells := make([]interface{}, len(cols))
		for i, c := range cols {
			cells[i] = norm[c]
		}
		values = append(values, cells)
	}

	_, err := g.svc.Spreadsheets.Values.Update(
		g.spreadsheetID, table+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write worksheet %s: %w", table, err)
	}
	return nil
}

// EnsureTables creates any declared worksheet that is missing, with its
// header row.
func (g *Gateway) EnsureTables(ctx context.Context) error {
	doc, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to list worksheets: %w", err)
	}
	existing := make(map[string]bool, len(doc.Sheets))
	for _, ws := range doc.Sheets {
		if ws.Properties != nil {
			existing[ws.Properties.Title] = true
		}
	}
	for _, name := range storage.TableNames {
		if existing[name] {
			continue
		}
		if err := g.provision(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (g *Gateway) worksheetExists(ctx context.Context, table string) (bool, error) {
	doc, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("failed to list worksheets: %w", err)
	}
	for _, ws := range doc.Sheets {
		if ws.Properties != nil && ws.Properties.Title == table {
			return true, nil
		}
	}
	return false, nil
}

// provision adds the worksheet and writes its header row.
func (g *Gateway) provision(ctx context.Context, table string) error {
	_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: table},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create worksheet %s: %w", table, err)
	}

	cols := storage.Schemas[table]
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	_, err = g.svc.Spreadsheets.Values.Update(
		g.spreadsheetID, table+"!A1", &sheets.ValueRange{Values: [][]interface{}{header}}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write header of %s: %w", table, err)
	}
	return nil
}
