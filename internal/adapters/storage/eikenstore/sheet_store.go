package eikenstore

import (
	"context"
	"encoding/json"

	"ubase/internal/adapters/storage"
	domain "ubase/internal/domain/eiken"
)

// SheetStore implements Store over the tabular table client.
type SheetStore struct {
	tables *storage.TableClient
}

// NewSheetStore creates a new SheetStore.
func NewSheetStore(tables *storage.TableClient) *SheetStore {
	return &SheetStore{tables: tables}
}

// List returns every practice record in stored order.
func (s *SheetStore) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.tables.Read(ctx, storage.TableEikenRecords)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, decode(row))
	}
	return records, nil
}

// ListByStudent returns the practice records of one student.
func (s *SheetStore) ListByStudent(ctx context.Context, studentID string) ([]domain.Record, error) {
	rows, err := s.tables.Read(ctx, storage.TableEikenRecords)
	if err != nil {
		return nil, err
	}
	var records []domain.Record
	for _, row := range rows {
		if row["student_id"] == studentID {
			records = append(records, decode(row))
		}
	}
	return records, nil
}

// GetByID returns the record with the given id.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	rows, err := s.tables.Read(ctx, storage.TableEikenRecords)
	if err != nil {
		return domain.Record{}, err
	}
	for _, row := range rows {
		if row["id"] == id {
			return decode(row), nil
		}
	}
	return domain.Record{}, ErrNotFound
}

// Append adds one practice row.
// PRE: r has been validated and carries a freshly allocated id
func (s *SheetStore) Append(ctx context.Context, r domain.Record) error {
	rows, err := s.tables.Read(ctx, storage.TableEikenRecords)
	if err != nil {
		return err
	}
	return s.tables.Write(ctx, storage.TableEikenRecords, append(rows, encode(r)))
}

// Update replaces the row matching r.ID. The id, student_id and created_at
// cells are kept from the stored row.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) Update(ctx context.Context, r domain.Record) error {
	rows, err := s.tables.Read(ctx, storage.TableEikenRecords)
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
	return s.tables.Write(ctx, storage.TableEikenRecords, out)
}

// DeleteByID removes the row matching id.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) DeleteByID(ctx context.Context, id string) error {
	rows, err := s.tables.Read(ctx, storage.TableEikenRecords)
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
	return s.tables.Write(ctx, storage.TableEikenRecords, kept)
}

// DeleteByStudents removes every row whose student_id is in studentIDs, as
// part of a student cascade. Returns the number of rows removed.
func (s *SheetStore) DeleteByStudents(ctx context.Context, studentIDs []string) (int, error) {
	rows, err := s.tables.Read(ctx, storage.TableEikenRecords)
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
	if err := s.tables.Write(ctx, storage.TableEikenRecords, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func encode(r domain.Record) storage.Row {
	return storage.Row{
		"id":               r.ID,
		"student_id":       r.StudentID,
		"target_grade":     r.TargetGrade,
		"exam_date":        r.ExamDate,
		"practice_date":    r.PracticeDate,
		"category":         r.Category,
		"scores_json":      encodeScores(r.Scores),
		"created_at":       storage.FormatTime(r.CreatedAt),
		"updated_at":       storage.FormatTime(r.UpdatedAt),
		"teacher_username": r.TeacherUsername,
		"teacher_name":     r.TeacherName,
	}
}

func decode(row storage.Row) domain.Record {
	r := domain.Record{
		ID:              row["id"],
		StudentID:       row["student_id"],
		TargetGrade:     row["target_grade"],
		ExamDate:        row["exam_date"],
		PracticeDate:    row["practice_date"],
		Category:        row["category"],
		CreatedAt:       storage.ParseTime(row["created_at"]),
		UpdatedAt:       storage.ParseTime(row["updated_at"]),
		TeacherUsername: row["teacher_username"],
		TeacherName:     row["teacher_name"],
	}
	// Malformed scores decode to the zero sub-document, never an error.
	_ = json.Unmarshal([]byte(row["scores_json"]), &r.Scores)
	return r
}

func encodeScores(s domain.Scores) string {
	raw, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
