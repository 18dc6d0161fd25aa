package studentstore

import (
	"context"
	"encoding/json"

	"ubase/internal/adapters/storage"
	domain "ubase/internal/domain/student"
)

// SheetStore implements Store over the tabular table client. Every write is
// a read-modify-write of the whole students table; concurrent writers race
// and the later write wins.
type SheetStore struct {
	tables *storage.TableClient
}

// NewSheetStore creates a new SheetStore.
func NewSheetStore(tables *storage.TableClient) *SheetStore {
	return &SheetStore{tables: tables}
}

// List returns every student in stored order.
func (s *SheetStore) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := s.tables.Read(ctx, storage.TableStudents)
	if err != nil {
		return nil, err
	}
	students := make([]domain.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, decode(row))
	}
	return students, nil
}

// GetByID returns the student with the given id.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) GetByID(ctx context.Context, id string) (domain.Student, error) {
	rows, err := s.tables.Read(ctx, storage.TableStudents)
	if err != nil {
		return domain.Student{}, err
	}
	for _, row := range rows {
		if row["student_id"] == id {
			return decode(row), nil
		}
	}
	return domain.Student{}, ErrNotFound
}

// Append adds one student row.
// PRE: st has been validated and carries a freshly allocated id
func (s *SheetStore) Append(ctx context.Context, st domain.Student) error {
	rows, err := s.tables.Read(ctx, storage.TableStudents)
	if err != nil {
		return err
	}
	return s.tables.Write(ctx, storage.TableStudents, append(rows, encode(st)))
}

// Update overwrites the mutable fields of the row matching st.ID. The
// student_id and created_at cells are kept from the stored row.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) Update(ctx context.Context, st domain.Student) error {
	rows, err := s.tables.Read(ctx, storage.TableStudents)
	if err != nil {
		return err
	}
	found := false
	out := make([]storage.Row, len(rows))
	for i, row := range rows {
		if row["student_id"] != st.ID {
			out[i] = row
			continue
		}
		found = true
		updated := encode(st)
		updated["student_id"] = row["student_id"]
		updated["created_at"] = row["created_at"]
		out[i] = updated
	}
	if !found {
		return ErrNotFound
	}
	return s.tables.Write(ctx, storage.TableStudents, out)
}

// SaveAll replaces the whole table with students, in order. Used by bulk
// grade promotion, which touches many rows in one write.
func (s *SheetStore) SaveAll(ctx context.Context, students []domain.Student) error {
	rows := make([]storage.Row, len(students))
	for i, st := range students {
		rows[i] = encode(st)
	}
	return s.tables.Write(ctx, storage.TableStudents, rows)
}

// Delete removes every student whose id is in ids and reports how many rows
// were removed. Dependent tables are the caller's responsibility.
func (s *SheetStore) Delete(ctx context.Context, ids []string) (int, error) {
	rows, err := s.tables.Read(ctx, storage.TableStudents)
	if err != nil {
		return 0, err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
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
	if err := s.tables.Write(ctx, storage.TableStudents, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func encode(st domain.Student) storage.Row {
	return storage.Row{
		"student_id":       st.ID,
		"name":             st.Name,
		"grade":            st.Grade,
		"school_name":      st.SchoolName,
		"target_school":    st.TargetSchool,
		"admission_goal":   st.AdmissionGoal,
		"student_login_id": st.LoginID,
		"subjects":         encodeList(st.Subjects),
		"mock_subjects":    encodeList(st.MockSubjects),
		"created_at":       storage.FormatTime(st.CreatedAt),
	}
}

func decode(row storage.Row) domain.Student {
	return domain.Student{
		ID:            row["student_id"],
		Name:          row["name"],
		Grade:         row["grade"],
		SchoolName:    row["school_name"],
		TargetSchool:  row["target_school"],
		AdmissionGoal: row["admission_goal"],
		LoginID:       row["student_login_id"],
		Subjects:      decodeList(row["subjects"]),
		MockSubjects:  decodeList(row["mock_subjects"]),
		CreatedAt:     storage.ParseTime(row["created_at"]),
	}
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// decodeList tolerates blank and malformed cells: they decode to nil.
func decodeList(v string) []string {
	if v == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(v), &items); err != nil {
		return nil
	}
	return items
}
