// Package idalloc assigns entity identifiers. IDs are monotonically
// increasing and are never reused, even after the highest-valued row is
// deleted: student ids are backed by a persisted high-water counter in
// addition to the table scan, so a fully cascaded delete still leaves its
// id burned.
package idalloc

import (
	"context"
	"strconv"
	"strings"

	"ubase/internal/adapters/storage"
)

// StudentIDSeed is the first student id handed out against an empty store.
const StudentIDSeed = 250001

// studentIDCounter names the high-water row in the counters table.
const studentIDCounter = "student_id"

// Reader reads table snapshots; satisfied by *storage.TableClient.
type Reader interface {
	Read(ctx context.Context, table string) ([]storage.Row, error)
}

// Client reads and writes table snapshots; satisfied by *storage.TableClient.
// Student allocation writes the counter row, so it needs the full client.
type Client interface {
	Reader
	Write(ctx context.Context, table string, rows []storage.Row) error
}

// studentIDTables are every table carrying a student_id column. Student
// deletion cascades into the dependent tables, but the scan still covers
// them: if a cascade was interrupted and left orphaned dependent rows, their
// ids must stay burned.
var studentIDTables = []string{
	storage.TableStudents,
	storage.TableExamResults,
	storage.TableCoachingReports,
	storage.TableEikenRecords,
}

// NextStudentID returns one more than the highest student id ever issued,
// or StudentIDSeed against a store that never issued one. The high-water
// mark is the max of the table scan and the persisted counter row, and the
// issued id is written back to the counter before it is returned, so an id
// stays burned even when every row carrying it has been deleted. Blank and
// unparseable cells are skipped, never fatal.
func NextStudentID(ctx context.Context, c Client) (int, error) {
	max := 0
	for _, table := range studentIDTables {
		rows, err := c.Read(ctx, table)
		if err != nil {
			return 0, err
		}
		for _, row := range rows {
			if id, ok := parseID(row["student_id"]); ok && id > max {
				max = id
			}
		}
	}

	counters, err := c.Read(ctx, storage.TableCounters)
	if err != nil {
		return 0, err
	}
	for _, row := range counters {
		if row["name"] != studentIDCounter {
			continue
		}
		if v, ok := parseID(row["value"]); ok && v > max {
			max = v
		}
	}

	next := StudentIDSeed
	if max != 0 {
		next = max + 1
	}
	if err := writeCounter(ctx, c, counters, studentIDCounter, next); err != nil {
		return 0, err
	}
	return next, nil
}

// writeCounter persists value under name, updating the existing row or
// appending one.
func writeCounter(ctx context.Context, c Client, rows []storage.Row, name string, value int) error {
	out := make([]storage.Row, 0, len(rows)+1)
	found := false
	for _, row := range rows {
		if row["name"] == name {
			row = storage.Row{"name": name, "value": strconv.Itoa(value)}
			found = true
		}
		out = append(out, row)
	}
	if !found {
		out = append(out, storage.Row{"name": name, "value": strconv.Itoa(value)})
	}
	return c.Write(ctx, storage.TableCounters, out)
}

// NextRecordID returns max(id)+1 over table's own id column, or 1 for an
// empty or entirely blank table. Record ids number independently per table.
func NextRecordID(ctx context.Context, r Reader, table string) (int, error) {
	rows, err := r.Read(ctx, table)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, row := range rows {
		if id, ok := parseID(row["id"]); ok && id > max {
			max = id
		}
	}
	return max + 1, nil
}

func parseID(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return id, true
}
