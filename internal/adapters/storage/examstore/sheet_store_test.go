package examstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ubase/internal/adapters/storage"
	"ubase/internal/adapters/storage/examstore"
	"ubase/internal/adapters/storage/memorygw"
	domain "ubase/internal/domain/exam"
)

func newStore(t *testing.T) (*examstore.SheetStore, *storage.TableClient) {
	t.Helper()
	gw := memorygw.New()
	tables := storage.NewTableClient(gw, storage.NewCache(gw, time.Minute))
	return examstore.NewSheetStore(tables), tables
}

func sampleResult(id, studentID string) domain.Result {
	return domain.Result{
		ID:        id,
		StudentID: studentID,
		Category:  domain.CategoryRegular,
		Name:      "1学期中間",
		Date:      "2025-05-20",
		Results: domain.Results{
			"国語": {Target: 80, Score: 75},
			"数学": {Target: 90, Score: 88},
		},
		CreatedAt:       time.Date(2025, 5, 21, 10, 0, 0, 0, time.UTC),
		TeacherUsername: "tanaka",
		TeacherName:     "田中",
	}
}

// TestExamRoundTrip tests append then read back through the table codec.
func TestExamRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	want := sampleResult("1", "250001")
	if err := store.Append(ctx, want); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := store.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != want.Name || got.Category != want.Category {
		t.Errorf("got %q/%q, want %q/%q", got.Category, got.Name, want.Category, want.Name)
	}
	if got.Results["数学"].Score != 88 {
		t.Errorf("数学 score = %v, want 88", got.Results["数学"].Score)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestExamListByStudent(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	for _, r := range []domain.Result{
		sampleResult("1", "250001"),
		sampleResult("2", "250002"),
		sampleResult("3", "250001"),
	} {
		if err := store.Append(ctx, r); err != nil {
			t.Fatalf("Append(%s) error = %v", r.ID, err)
		}
	}

	got, err := store.ListByStudent(ctx, "250001")
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

// TestExamMalformedResultsCell tests that a corrupted scores cell decodes
// to an empty map instead of failing the whole read.
func TestExamMalformedResultsCell(t *testing.T) {
	store, tables := newStore(t)
	ctx := context.Background()

	row := storage.Row{
		"id":            "1",
		"student_id":    "250001",
		"exam_category": domain.CategoryMock,
		"exam_name":     "全県模試",
		"date":          "2025-06-01",
		"results_json":  "{not json",
	}
	if err := tables.Write(ctx, storage.TableExamResults, []storage.Row{row}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := store.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.Results) != 0 {
		t.Errorf("Results = %v, want empty map", got.Results)
	}
}

func TestExamUpdateKeepsIdentityCells(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	orig := sampleResult("1", "250001")
	if err := store.Append(ctx, orig); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	edit := sampleResult("1", "999999")
	edit.Name = "1学期期末"
	edit.CreatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := store.Update(ctx, edit); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "1学期期末" {
		t.Errorf("Name = %q, want updated name", got.Name)
	}
	if got.StudentID != "250001" {
		t.Errorf("StudentID = %q, want original 250001", got.StudentID)
	}
	if !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("CreatedAt = %v, want original %v", got.CreatedAt, orig.CreatedAt)
	}
}

func TestExamDeleteByStudents(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	for _, r := range []domain.Result{
		sampleResult("1", "250001"),
		sampleResult("2", "250002"),
		sampleResult("3", "250001"),
	} {
		if err := store.Append(ctx, r); err != nil {
			t.Fatalf("Append(%s) error = %v", r.ID, err)
		}
	}

	removed, err := store.DeleteByStudents(ctx, []string{"250001", "250099"})
	if err != nil {
		t.Fatalf("DeleteByStudents() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	if _, err := store.GetByID(ctx, "1"); !errors.Is(err, examstore.ErrNotFound) {
		t.Errorf("GetByID(1) error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetByID(ctx, "2"); err != nil {
		t.Errorf("GetByID(2) error = %v, survivor should remain", err)
	}
}
