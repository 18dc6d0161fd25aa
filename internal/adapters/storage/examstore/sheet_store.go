package examstore

import (
	"context"
	"encoding/json"

	"ubase/internal/adapters/storage"
	domain "ubase/internal/domain/exam"
)

// SheetStore implements Store over the tabular table client.
type SheetStore struct {
	tables *storage.TableClient
}

// NewSheetStore creates a new SheetStore.
func NewSheetStore(tables *storage.TableClient) *SheetStore {
	return &SheetStore{tables: tables}
}

// List returns every exam result in stored order.
func (s *SheetStore) List(ctx context.Context) ([]domain.Result, error) {
	rows, err := s.tables.Read(ctx, storage.TableExamResults)
	if err != nil {
		return nil, err
	}
	results := make([]domain.Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, decode(row))
	}
	return results, nil
}

// ListByStudent returns the exam results recorded for one student.
func (s *SheetStore) ListByStudent(ctx context.Context, studentID string) ([]domain.Result, error) {
	rows, err := s.tables.Read(ctx, storage.TableExamResults)
	if err != nil {
		return nil, err
	}
	var results []domain.Result
	for _, row := range rows {
		if row["student_id"] == studentID {
			results = append(results, decode(row))
		}
	}
	return results, nil
}

// GetByID returns the exam result with the given id.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) GetByID(ctx context.Context, id string) (domain.Result, error) {
	rows, err := s.tables.Read(ctx, storage.TableExamResults)
	if err != nil {
		return domain.Result{}, err
	}
	for _, row := range rows {
		if row["id"] == id {
			return decode(row), nil
		}
	}
	return domain.Result{}, ErrNotFound
}

// Append adds one exam row.
// PRE: r has been validated and carries a freshly allocated id
func (s *SheetStore) Append(ctx context.Context, r domain.Result) error {
	rows, err := s.tables.Read(ctx, storage.TableExamResults)
	if err != nil {
		return err
	}
	return s.tables.Write(ctx, storage.TableExamResults, append(rows, encode(r)))
}

// Update replaces the row matching r.ID. The id, student_id and created_at
// cells are kept from the stored row.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) Update(ctx context.Context, r domain.Result) error {
	rows, err := s.tables.Read(ctx, storage.TableExamResults)
	if err != nil {
		return err
	}
	found := false
	out := make([]storage.Row, len(rows))
	for i, row := range rows {
		if row["id"] != r.ID {
			out[i] = row
			continue
		}
		found = true
		updated := encode(r)
		updated["id"] = row["id"]
		updated["student_id"] = row["student_id"]
		updated["created_at"] = row["created_at"]
		out[i] = updated
	}
	if !found {
		return ErrNotFound
	}
	return s.tables.Write(ctx, storage.TableExamResults, out)
}

// DeleteByID removes the row matching id.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) DeleteByID(ctx context.Context, id string) error {
	rows, err := s.tables.Read(ctx, storage.TableExamResults)
	if err != nil {
		return err
	}
	kept := make([]storage.Row, 0, len(rows))
	for _, row := range rows {
		if row["id"] != id {
			kept = append(kept, row)
		}
	}
	if len(kept) == len(rows) {
		return ErrNotFound
	}
	return s.tables.Write(ctx, storage.TableExamResults, kept)
}

// DeleteByStudents removes every row whose student_id is in studentIDs, as
// part of a student cascade. Returns the number of rows removed.
func (s *SheetStore) DeleteByStudents(ctx context.Context, studentIDs []string) (int, error) {
	rows, err := s.tables.Read(ctx, storage.TableExamResults)
	if err != nil {
		return 0, err
	}
	drop := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		drop[id] = true
	}
	kept := make([]storage.Row, 0, len(rows))
	for _, row := range rows {
		if !drop[row["student_id"]] {
			kept = append(kept, row)
		}
	}
	removed := len(rows) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.tables.Write(ctx, storage.TableExamResults, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func encode(r domain.Result) storage.Row {
	return storage.Row{
		"id":               r.ID,
		"student_id":       r.StudentID,
		"exam_category":    r.Category,
		"exam_name":        r.Name,
		"date":             r.Date,
		"results_json":     encodeResults(r.Results),
		"created_at":       storage.FormatTime(r.CreatedAt),
		"teacher_username": r.TeacherUsername,
		"teacher_name":     r.TeacherName,
	}
}

func decode(row storage.Row) domain.Result {
	return domain.Result{
		ID:              row["id"],
		StudentID:       row["student_id"],
		Category:        row["exam_category"],
		Name:            row["exam_name"],
		Date:            row["date"],
		Results:         decodeResults(row["results_json"]),
		CreatedAt:       storage.ParseTime(row["created_at"]),
		TeacherUsername: row["teacher_username"],
		TeacherName:     row["teacher_name"],
	}
}

func encodeResults(r domain.Results) string {
	if r == nil {
		r = domain.Results{}
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// decodeResults tolerates blank and malformed cells: they decode to an
// empty map, never an error.
func decodeResults(v string) domain.Results {
	if v == "" {
		return domain.Results{}
	}
	var r domain.Results
	if err := json.Unmarshal([]byte(v), &r); err != nil || r == nil {
		return domain.Results{}
	}
	return r
}
