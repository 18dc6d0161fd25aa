package coachingstore

import (
	"context"
	"encoding/json"

	"ubase/internal/adapters/storage"
	domain "ubase/internal/domain/coaching"
)

// SheetStore implements Store over the tabular table client.
type SheetStore struct {
	tables *storage.TableClient
}

// NewSheetStore creates a new SheetStore.
func NewSheetStore(tables *storage.TableClient) *SheetStore {
	return &SheetStore{tables: tables}
}

// List returns every coaching report in stored order.
func (s *SheetStore) List(ctx context.Context) ([]domain.Report, error) {
	rows, err := s.tables.Read(ctx, storage.TableCoachingReports)
	if err != nil {
		return nil, err
	}
	reports := make([]domain.Report, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, decode(row))
	}
	return reports, nil
}

// ListByStudent returns the reports recorded for one student.
func (s *SheetStore) ListByStudent(ctx context.Context, studentID string) ([]domain.Report, error) {
	rows, err := s.tables.Read(ctx, storage.TableCoachingReports)
	if err != nil {
		return nil, err
	}
	var reports []domain.Report
	for _, row := range rows {
		if row["student_id"] == studentID {
			reports = append(reports, decode(row))
		}
	}
	return reports, nil
}

// GetByID returns the report with the given id.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) GetByID(ctx context.Context, id string) (domain.Report, error) {
	rows, err := s.tables.Read(ctx, storage.TableCoachingReports)
	if err != nil {
		return domain.Report{}, err
	}
	for _, row := range rows {
		if row["id"] == id {
			return decode(row), nil
		}
	}
	return domain.Report{}, ErrNotFound
}

// FindByStudentDate looks up the report for the (studentID, date) natural
// key. The boolean reports whether one exists.
func (s *SheetStore) FindByStudentDate(ctx context.Context, studentID, date string) (domain.Report, bool, error) {
	rows, err := s.tables.Read(ctx, storage.TableCoachingReports)
	if err != nil {
		return domain.Report{}, false, err
	}
	for _, row := range rows {
		if row["student_id"] == studentID && row["date"] == date {
			return decode(row), true, nil
		}
	}
	return domain.Report{}, false, nil
}

// Append adds one report row.
// PRE: r has been validated, carries a freshly allocated id, and no row
// exists yet for its (student_id, date) key
func (s *SheetStore) Append(ctx context.Context, r domain.Report) error {
	rows, err := s.tables.Read(ctx, storage.TableCoachingReports)
	if err != nil {
		return err
	}
	return s.tables.Write(ctx, storage.TableCoachingReports, append(rows, encode(r)))
}

// Update replaces the row matching r.ID. The id, student_id and created_at
// cells are kept from the stored row.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) Update(ctx context.Context, r domain.Report) error {
	rows, err := s.tables.Read(ctx, storage.TableCoachingReports)
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
	return s.tables.Write(ctx, storage.TableCoachingReports, out)
}

// DeleteByID removes the row matching id.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) DeleteByID(ctx context.Context, id string) error {
	rows, err := s.tables.Read(ctx, storage.TableCoachingReports)
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
	return s.tables.Write(ctx, storage.TableCoachingReports, kept)
}

// DeleteByStudents removes every row whose student_id is in studentIDs, as
// part of a student cascade. Returns the number of rows removed.
func (s *SheetStore) DeleteByStudents(ctx context.Context, studentIDs []string) (int, error) {
	rows, err := s.tables.Read(ctx, storage.TableCoachingReports)
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
	if err := s.tables.Write(ctx, storage.TableCoachingReports, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func encode(r domain.Report) storage.Row {
	return storage.Row{
		"id":                  r.ID,
		"student_id":          r.StudentID,
		"date":                r.Date,
		"student_eval_json":   marshalOr(r.StudentEval, "{}"),
		"teacher_eval_json":   marshalOr(r.TeacherEval, "{}"),
		"study_schedule_json": encodeSchedule(r.Schedule),
		"study_targets_json":  marshalOr(r.Targets, `["","",""]`),
		"created_at":          storage.FormatTime(r.CreatedAt),
		"updated_at":          storage.FormatTime(r.UpdatedAt),
		"teacher_username":    r.TeacherUsername,
		"teacher_name":        r.TeacherName,
	}
}

func decode(row storage.Row) domain.Report {
	r := domain.Report{
		ID:              row["id"],
		StudentID:       row["student_id"],
		Date:            row["date"],
		Schedule:        decodeSchedule(row["study_schedule_json"]),
		CreatedAt:       storage.ParseTime(row["created_at"]),
		UpdatedAt:       storage.ParseTime(row["updated_at"]),
		TeacherUsername: row["teacher_username"],
		TeacherName:     row["teacher_name"],
	}
	// Malformed sub-documents decode to their zero value, never an error.
	_ = json.Unmarshal([]byte(row["student_eval_json"]), &r.StudentEval)
	_ = json.Unmarshal([]byte(row["teacher_eval_json"]), &r.TeacherEval)
	_ = json.Unmarshal([]byte(row["study_targets_json"]), &r.Targets)
	return r
}

func marshalOr(v any, fallback string) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(raw)
}

func encodeSchedule(s domain.Schedule) string {
	if s == nil {
		s = domain.Schedule{}
	}
	return marshalOr(s, "{}")
}

func decodeSchedule(v string) domain.Schedule {
	if v == "" {
		return domain.Schedule{}
	}
	var s domain.Schedule
	if err := json.Unmarshal([]byte(v), &s); err != nil || s == nil {
		return domain.Schedule{}
	}
	return s
}
