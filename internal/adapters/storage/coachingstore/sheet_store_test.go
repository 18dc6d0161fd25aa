package coachingstore_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"ubase/internal/adapters/storage"
	"ubase/internal/adapters/storage/coachingstore"
	"ubase/internal/adapters/storage/memorygw"
	domain "ubase/internal/domain/coaching"
)

func newStore(t *testing.T) (*coachingstore.SheetStore, *memorygw.Gateway) {
	t.Helper()
	gw := memorygw.New()
	store := coachingstore.NewSheetStore(storage.NewTableClient(gw, storage.NewCache(gw, time.Minute)))
	return store, gw
}

func sampleReport(id, studentID, date string) domain.Report {
	return domain.Report{
		ID:          id,
		StudentID:   studentID,
		Date:        date,
		StudentEval: domain.StudentEval{Comprehension: 4, GoalAchievement: 3, Motivation: 5},
		TeacherEval: domain.TeacherEval{Attitude: 4, HomeworkCompletion: 5, PriorComprehension: 3, Comment: "集中できていた"},
		Schedule:    domain.Schedule{"月": 1.5, "土": 2},
		Targets:     [domain.TargetCount]string{"英単語50個", "計算ドリル", ""},
		CreatedAt:   time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
	}
}

// TestCoachingRoundTrip tests the JSON sub-document codec both ways.
func TestCoachingRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	want := sampleReport("1", "250001", "2025-06-01")
	if err := store.Append(ctx, want); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := store.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.StudentEval != want.StudentEval {
		t.Errorf("student eval = %+v, want %+v", got.StudentEval, want.StudentEval)
	}
	if got.TeacherEval != want.TeacherEval {
		t.Errorf("teacher eval = %+v, want %+v", got.TeacherEval, want.TeacherEval)
	}
	if got.Schedule["月"] != 1.5 || got.Schedule["土"] != 2 {
		t.Errorf("schedule = %v, want %v", got.Schedule, want.Schedule)
	}
	if got.Targets != want.Targets {
		t.Errorf("targets = %v, want %v", got.Targets, want.Targets)
	}
}

// TestCoachingExternalKeys tests that the persisted sub-documents keep the
// labels every deployment already stores.
func TestCoachingExternalKeys(t *testing.T) {
	store, gw := newStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, sampleReport("1", "250001", "2025-06-01")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	rows, err := gw.ReadTable(ctx, storage.TableCoachingReports)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	raw := rows[0]["student_eval_json"]
	for _, key := range []string{"理解度", "目標達成度", "モチベーション"} {
		if !containsKey(raw, key) {
			t.Errorf("student_eval_json %q is missing key %q", raw, key)
		}
	}
	raw = rows[0]["teacher_eval_json"]
	for _, key := range []string{"授業態度", "宿題完成度", "前回理解度", "コメント"} {
		if !containsKey(raw, key) {
			t.Errorf("teacher_eval_json %q is missing key %q", raw, key)
		}
	}
}

func containsKey(raw, key string) bool {
	return strings.Contains(raw, `"`+key+`"`)
}

// TestFindByStudentDate tests the natural-key lookup behind the upsert.
func TestFindByStudentDate(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, sampleReport("1", "250001", "2025-06-01")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, found, err := store.FindByStudentDate(ctx, "250001", "2025-06-01")
	if err != nil {
		t.Fatalf("FindByStudentDate() error = %v", err)
	}
	if !found || got.ID != "1" {
		t.Errorf("found = %v id = %q, want the stored report", found, got.ID)
	}

	_, found, err = store.FindByStudentDate(ctx, "250001", "2025-06-02")
	if err != nil {
		t.Fatalf("FindByStudentDate() error = %v", err)
	}
	if found {
		t.Error("found = true for a date with no report")
	}
}

// TestCoachingMalformedSubDocuments tests that corrupt JSON cells decode to
// zero values, never an error.
func TestCoachingMalformedSubDocuments(t *testing.T) {
	gw := memorygw.New()
	ctx := context.Background()
	err := gw.WriteTable(ctx, storage.TableCoachingReports, []storage.Row{{
		"id":                  "1",
		"student_id":          "250001",
		"date":                "2025-06-01",
		"student_eval_json":   "{broken",
		"teacher_eval_json":   "",
		"study_schedule_json": "[1,2]",
		"study_targets_json":  "oops",
	}})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := coachingstore.NewSheetStore(storage.NewTableClient(gw, storage.NewCache(gw, time.Minute)))

	got, err := store.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.StudentEval != (domain.StudentEval{}) {
		t.Errorf("student eval = %+v, want zero value", got.StudentEval)
	}
	if got.TeacherEval != (domain.TeacherEval{}) {
		t.Errorf("teacher eval = %+v, want zero value", got.TeacherEval)
	}
	if got.Targets != ([domain.TargetCount]string{}) {
		t.Errorf("targets = %v, want empty", got.Targets)
	}
}

// TestCoachingDeleteByStudents tests the cascade helper and its count.
func TestCoachingDeleteByStudents(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	reports := []domain.Report{
		sampleReport("1", "250001", "2025-06-01"),
		sampleReport("2", "250001", "2025-06-08"),
		sampleReport("3", "250002", "2025-06-01"),
	}
	for _, r := range reports {
		if err := store.Append(ctx, r); err != nil {
			t.Fatalf("Append(%s) error = %v", r.ID, err)
		}
	}

	removed, err := store.DeleteByStudents(ctx, []string{"250001"})
	if err != nil {
		t.Fatalf("DeleteByStudents() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	left, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(left) != 1 || left[0].StudentID != "250002" {
		t.Errorf("remaining = %v, want only the 250002 report", left)
	}
}
