package orchestrators_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ubase/internal/application/orchestrators"
	"ubase/internal/domain/coaching"
)

// fakeCoachingStore keys reports by (student_id, date).
type fakeCoachingStore struct {
	reports map[string]coaching.Report
	updates int
	appends int
}

func newFakeCoachingStore() *fakeCoachingStore {
	return &fakeCoachingStore{reports: make(map[string]coaching.Report)}
}

func (f *fakeCoachingStore) key(studentID, date string) string {
	return studentID + "|" + date
}

func (f *fakeCoachingStore) FindByStudentDate(_ context.Context, studentID, date string) (coaching.Report, bool, error) {
	r, ok := f.reports[f.key(studentID, date)]
	return r, ok, nil
}

func (f *fakeCoachingStore) Append(_ context.Context, r coaching.Report) error {
	f.appends++
	f.reports[f.key(r.StudentID, r.Date)] = r
	return nil
}

func (f *fakeCoachingStore) Update(_ context.Context, r coaching.Report) error {
	f.updates++
	f.reports[f.key(r.StudentID, r.Date)] = r
	return nil
}

func validInput(date string) orchestrators.SaveCoachingReportInput {
	return orchestrators.SaveCoachingReportInput{
		StudentID:   "250001",
		Date:        date,
		StudentEval: coaching.StudentEval{Comprehension: 4, GoalAchievement: 3, Motivation: 5},
		TeacherEval: coaching.TeacherEval{Attitude: 4, HomeworkCompletion: 5, PriorComprehension: 3},
		Schedule:    coaching.Schedule{"月": 1.5},
	}
}

// TestSaveCoachingReportInsert tests the first save for a (student, date).
func TestSaveCoachingReportInsert(t *testing.T) {
	store := newFakeCoachingStore()
	now := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	res, err := orchestrators.ExecuteSaveCoachingReport(context.Background(), validInput("2025-06-01"),
		orchestrators.SaveCoachingReportDeps{
			CoachingStore: store,
			NextID:        staticID(1),
			Now:           func() time.Time { return now },
		})
	if err != nil {
		t.Fatalf("ExecuteSaveCoachingReport() error = %v", err)
	}
	if res.Updated {
		t.Error("Updated = true on first save")
	}
	if res.Report.ID != "1" {
		t.Errorf("id = %q, want 1", res.Report.ID)
	}
	if !res.Report.CreatedAt.Equal(now) || !res.Report.UpdatedAt.Equal(now) {
		t.Errorf("stamps = %v/%v, want both %v", res.Report.CreatedAt, res.Report.UpdatedAt, now)
	}
	if store.appends != 1 || store.updates != 0 {
		t.Errorf("appends/updates = %d/%d, want 1/0", store.appends, store.updates)
	}
}

// TestSaveCoachingReportOverwrite tests that a second save for the same
// (student, date) replaces the report, keeping id and created_at.
func TestSaveCoachingReportOverwrite(t *testing.T) {
	store := newFakeCoachingStore()
	first := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)
	now := first

	deps := orchestrators.SaveCoachingReportDeps{
		CoachingStore: store,
		NextID:        staticID(1),
		Now:           func() time.Time { return now },
	}

	if _, err := orchestrators.ExecuteSaveCoachingReport(context.Background(), validInput("2025-06-01"), deps); err != nil {
		t.Fatalf("first save error = %v", err)
	}

	now = second
	input := validInput("2025-06-01")
	input.TeacherEval.Comment = "修正版"
	res, err := orchestrators.ExecuteSaveCoachingReport(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("second save error = %v", err)
	}
	if !res.Updated {
		t.Error("Updated = false on overwrite")
	}
	if res.Report.ID != "1" {
		t.Errorf("id = %q, want the original 1", res.Report.ID)
	}
	if !res.Report.CreatedAt.Equal(first) {
		t.Errorf("created_at = %v, want the original %v", res.Report.CreatedAt, first)
	}
	if !res.Report.UpdatedAt.Equal(second) {
		t.Errorf("updated_at = %v, want refreshed to %v", res.Report.UpdatedAt, second)
	}
	if store.appends != 1 || store.updates != 1 {
		t.Errorf("appends/updates = %d/%d, want 1/1", store.appends, store.updates)
	}
	if len(store.reports) != 1 {
		t.Errorf("stored reports = %d, want exactly one per (student, date)", len(store.reports))
	}
}

// TestSaveCoachingReportDifferentDatesInsert tests that a new date is an
// insert, not an overwrite.
func TestSaveCoachingReportDifferentDatesInsert(t *testing.T) {
	store := newFakeCoachingStore()
	deps := orchestrators.SaveCoachingReportDeps{CoachingStore: store, NextID: staticID(1)}

	if _, err := orchestrators.ExecuteSaveCoachingReport(context.Background(), validInput("2025-06-01"), deps); err != nil {
		t.Fatalf("first save error = %v", err)
	}
	deps.NextID = staticID(2)
	res, err := orchestrators.ExecuteSaveCoachingReport(context.Background(), validInput("2025-06-08"), deps)
	if err != nil {
		t.Fatalf("second save error = %v", err)
	}
	if res.Updated {
		t.Error("Updated = true for a fresh date")
	}
	if len(store.reports) != 2 {
		t.Errorf("stored reports = %d, want 2", len(store.reports))
	}
}

// TestSaveCoachingReportValidation tests that bad ratings never reach the
// store.
func TestSaveCoachingReportValidation(t *testing.T) {
	store := newFakeCoachingStore()
	input := validInput("2025-06-01")
	input.StudentEval.Motivation = 9

	_, err := orchestrators.ExecuteSaveCoachingReport(context.Background(), input,
		orchestrators.SaveCoachingReportDeps{CoachingStore: store, NextID: staticID(1)})
	if !errors.Is(err, coaching.ErrRatingOutOfRange) {
		t.Fatalf("error = %v, want ErrRatingOutOfRange", err)
	}
	if store.appends+store.updates != 0 {
		t.Error("store written despite validation failure")
	}
}
