package studentstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ubase/internal/adapters/storage"
	"ubase/internal/adapters/storage/memorygw"
	"ubase/internal/adapters/storage/studentstore"
	domain "ubase/internal/domain/student"
)

func newStore(t *testing.T) *studentstore.SheetStore {
	t.Helper()
	gw := memorygw.New()
	return studentstore.NewSheetStore(storage.NewTableClient(gw, storage.NewCache(gw, time.Minute)))
}

func sampleStudent(id string) domain.Student {
	return domain.Student{
		ID:           id,
		Name:         "山田太郎",
		Grade:        "中2",
		SchoolName:   "市立第一中学校",
		TargetSchool: "県立高校",
		Subjects:     domain.JuniorSubjects,
		CreatedAt:    time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}

// TestStudentRoundTrip tests append then read back through the table codec.
func TestStudentRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	want := sampleStudent("250001")
	if err := store.Append(ctx, want); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := store.GetByID(ctx, "250001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != want.Name || got.Grade != want.Grade {
		t.Errorf("got %+v, want name/grade of %+v", got, want)
	}
	if len(got.Subjects) != 5 {
		t.Errorf("subjects = %v, want the five junior subjects", got.Subjects)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

// TestStudentGetByIDNotFound tests the miss path.
func TestStudentGetByIDNotFound(t *testing.T) {
	store := newStore(t)
	_, err := store.GetByID(context.Background(), "999999")
	if !errors.Is(err, studentstore.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

// TestStudentUpdatePreservesIdentity tests that id and created_at survive an
// update even when the caller passes different values.
func TestStudentUpdatePreservesIdentity(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	orig := sampleStudent("250001")
	if err := store.Append(ctx, orig); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	changed := orig
	changed.Grade = "中3"
	changed.CreatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := store.Update(ctx, changed); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.GetByID(ctx, "250001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Grade != "中3" {
		t.Errorf("grade = %q, want 中3", got.Grade)
	}
	if !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("created_at = %v, want the original %v", got.CreatedAt, orig.CreatedAt)
	}
}

// TestStudentDelete tests multi-id deletion and its count.
func TestStudentDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"250001", "250002", "250003"} {
		s := sampleStudent(id)
		if err := store.Append(ctx, s); err != nil {
			t.Fatalf("Append(%s) error = %v", id, err)
		}
	}

	removed, err := store.Delete(ctx, []string{"250001", "250003", "999999"})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	left, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(left) != 1 || left[0].ID != "250002" {
		t.Errorf("remaining = %v, want only 250002", left)
	}
}

// TestStudentDeleteNoMatches tests that deleting absent ids writes nothing.
func TestStudentDeleteNoMatches(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	if err := store.Append(ctx, sampleStudent("250001")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	removed, err := store.Delete(ctx, []string{"888888"})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

// TestStudentDecodeMalformedSubjects tests that a corrupt subjects cell
// yields an empty list, not a failure.
func TestStudentDecodeMalformedSubjects(t *testing.T) {
	gw := memorygw.New()
	ctx := context.Background()
	err := gw.WriteTable(ctx, storage.TableStudents, []storage.Row{{
		"student_id": "250001",
		"name":       "山田太郎",
		"grade":      "中2",
		"subjects":   "{not json",
	}})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := studentstore.NewSheetStore(storage.NewTableClient(gw, storage.NewCache(gw, time.Minute)))

	got, err := store.GetByID(ctx, "250001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.Subjects) != 0 {
		t.Errorf("subjects = %v, want empty for malformed cell", got.Subjects)
	}
}
