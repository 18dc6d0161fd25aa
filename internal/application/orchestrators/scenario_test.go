package orchestrators_test

import (
	"context"
	"testing"
	"time"

	"ubase/internal/adapters/storage"
	"ubase/internal/adapters/storage/accountstore"
	"ubase/internal/adapters/storage/coachingstore"
	"ubase/internal/adapters/storage/eikenstore"
	"ubase/internal/adapters/storage/examstore"
	"ubase/internal/adapters/storage/idalloc"
	"ubase/internal/adapters/storage/memorygw"
	"ubase/internal/adapters/storage/studentstore"
	"ubase/internal/application/orchestrators"
	"ubase/internal/domain/account"
	"ubase/internal/domain/coaching"
	"ubase/internal/domain/exam"
)

// env bundles real stores over the in-memory gateway, the way main wires
// them in production.
type env struct {
	tables   *storage.TableClient
	accounts *accountstore.SheetStore
	students *studentstore.SheetStore
	exams    *examstore.SheetStore
	coaching *coachingstore.SheetStore
	eiken    *eikenstore.SheetStore
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gw := memorygw.New()
	if err := gw.EnsureTables(context.Background()); err != nil {
		t.Fatalf("EnsureTables() error = %v", err)
	}
	tables := storage.NewTableClient(gw, storage.NewCache(gw, time.Minute))
	return &env{
		tables:   tables,
		accounts: accountstore.NewSheetStore(tables),
		students: studentstore.NewSheetStore(tables),
		exams:    examstore.NewSheetStore(tables),
		coaching: coachingstore.NewSheetStore(tables),
		eiken:    eikenstore.NewSheetStore(tables),
	}
}

func (e *env) nextStudentID(ctx context.Context) (int, error) {
	return idalloc.NextStudentID(ctx, e.tables)
}

func (e *env) nextRecordID(table string) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		return idalloc.NextRecordID(ctx, e.tables, table)
	}
}

// TestStudentLifecycle walks one student from registration through exam and
// coaching records to cascading deletion, checking id hygiene at each step.
func TestStudentLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// Bootstrap the master so the cascade can be reauthenticated.
	if _, err := orchestrators.ExecuteEnsureMaster(ctx,
		orchestrators.EnsureMasterInput{Name: "管理者", Password: "Ubase2025"},
		orchestrators.EnsureMasterDeps{AccountStore: e.accounts}); err != nil {
		t.Fatalf("ExecuteEnsureMaster() error = %v", err)
	}

	// Register: empty store, so the seed id is handed out.
	st, err := orchestrators.ExecuteRegisterStudent(ctx,
		orchestrators.RegisterStudentInput{Name: "太郎", Grade: "中1"},
		orchestrators.RegisterStudentDeps{StudentStore: e.students, NextID: e.nextStudentID})
	if err != nil {
		t.Fatalf("ExecuteRegisterStudent() error = %v", err)
	}
	if st.ID != "250001" {
		t.Fatalf("first student id = %q, want 250001", st.ID)
	}
	if len(st.Subjects) != 5 {
		t.Errorf("subjects = %v, want the five junior subjects", st.Subjects)
	}

	// Record an exam; the exam_results table numbers from 1.
	ex, err := orchestrators.ExecuteRecordExam(ctx,
		orchestrators.RecordExamInput{
			StudentID: st.ID,
			Category:  exam.CategoryRegular,
			Name:      "1学期中間",
			Date:      "2024-05-20",
			Results:   exam.Results{"国語": {Target: 80, Score: 75}},
		},
		orchestrators.RecordExamDeps{
			ExamStore:    e.exams,
			StudentStore: e.students,
			NextID:       e.nextRecordID(storage.TableExamResults),
		})
	if err != nil {
		t.Fatalf("ExecuteRecordExam() error = %v", err)
	}
	if ex.ID != "1" {
		t.Errorf("exam id = %q, want 1", ex.ID)
	}

	// Save a coaching report, then re-save the same (student, date).
	coachDeps := orchestrators.SaveCoachingReportDeps{
		CoachingStore: e.coaching,
		NextID:        e.nextRecordID(storage.TableCoachingReports),
	}
	input := orchestrators.SaveCoachingReportInput{
		StudentID:   st.ID,
		Date:        "2024-05-01",
		StudentEval: coaching.StudentEval{Comprehension: 3, GoalAchievement: 3, Motivation: 3},
		TeacherEval: coaching.TeacherEval{Attitude: 3, HomeworkCompletion: 3, PriorComprehension: 3},
		Targets:     [coaching.TargetCount]string{"eigo", "", ""},
	}
	first, err := orchestrators.ExecuteSaveCoachingReport(ctx, input, coachDeps)
	if err != nil {
		t.Fatalf("first coaching save error = %v", err)
	}

	input.TeacherEval.Comment = "追記"
	second, err := orchestrators.ExecuteSaveCoachingReport(ctx, input, coachDeps)
	if err != nil {
		t.Fatalf("second coaching save error = %v", err)
	}
	if !second.Updated {
		t.Error("second save did not overwrite")
	}
	if second.Report.ID != first.Report.ID {
		t.Errorf("report id changed across overwrite: %q -> %q", first.Report.ID, second.Report.ID)
	}
	reports, err := e.coaching.ListByStudent(ctx, st.ID)
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("coaching rows = %d, want exactly 1 per (student, date)", len(reports))
	}
	if reports[0].UpdatedAt.Before(reports[0].CreatedAt) {
		t.Errorf("updated_at %v before created_at %v", reports[0].UpdatedAt, reports[0].CreatedAt)
	}
	if reports[0].TeacherEval.Comment != "追記" {
		t.Errorf("comment = %q, want the overwritten value", reports[0].TeacherEval.Comment)
	}

	// Cascade delete as master.
	res, err := orchestrators.ExecuteDeleteStudents(ctx,
		orchestrators.DeleteStudentsInput{
			Role:          account.RoleMaster,
			AdminPassword: "Ubase2025",
			StudentIDs:    []string{st.ID},
		},
		orchestrators.DeleteStudentsDeps{
			AccountStore:  e.accounts,
			StudentStore:  e.students,
			ExamStore:     e.exams,
			CoachingStore: e.coaching,
			EikenStore:    e.eiken,
		})
	if err != nil {
		t.Fatalf("ExecuteDeleteStudents() error = %v", err)
	}
	if res.Students != 1 || res.ExamResults != 1 || res.CoachingReports != 1 {
		t.Errorf("cascade counts = %+v, want 1/1/1/0", res)
	}
	if left, _ := e.exams.ListByStudent(ctx, st.ID); len(left) != 0 {
		t.Errorf("exam rows survived the cascade: %v", left)
	}
	if left, _ := e.coaching.ListByStudent(ctx, st.ID); len(left) != 0 {
		t.Errorf("coaching rows survived the cascade: %v", left)
	}

	// A fresh registration must not reuse the deleted id.
	next, err := orchestrators.ExecuteRegisterStudent(ctx,
		orchestrators.RegisterStudentInput{Name: "次郎", Grade: "中1"},
		orchestrators.RegisterStudentDeps{StudentStore: e.students, NextID: e.nextStudentID})
	if err != nil {
		t.Fatalf("second ExecuteRegisterStudent() error = %v", err)
	}
	if next.ID == st.ID {
		t.Fatalf("id %q was reused after deletion", next.ID)
	}
}

// TestStudentIDNotReusedWithOrphans tests that dependent rows keep an id
// burned even when the student row itself is gone.
func TestStudentIDNotReusedWithOrphans(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	st, err := orchestrators.ExecuteRegisterStudent(ctx,
		orchestrators.RegisterStudentInput{Name: "太郎", Grade: "中1"},
		orchestrators.RegisterStudentDeps{StudentStore: e.students, NextID: e.nextStudentID})
	if err != nil {
		t.Fatalf("ExecuteRegisterStudent() error = %v", err)
	}
	if _, err := orchestrators.ExecuteRecordExam(ctx,
		orchestrators.RecordExamInput{
			StudentID: st.ID,
			Category:  exam.CategoryMock,
			Name:      "模試",
		},
		orchestrators.RecordExamDeps{
			ExamStore:    e.exams,
			StudentStore: e.students,
			NextID:       e.nextRecordID(storage.TableExamResults),
		}); err != nil {
		t.Fatalf("ExecuteRecordExam() error = %v", err)
	}

	// Simulate an interrupted cascade: the student row goes, the exam row
	// stays.
	if _, err := e.students.Delete(ctx, []string{st.ID}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	id, err := e.nextStudentID(ctx)
	if err != nil {
		t.Fatalf("nextStudentID() error = %v", err)
	}
	if id == 250001 {
		t.Fatalf("id 250001 reissued while an orphaned exam row still references it")
	}
	if id != 250002 {
		t.Errorf("next id = %d, want 250002", id)
	}
}
