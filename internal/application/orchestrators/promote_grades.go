package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"ubase/internal/domain/student"
)

// StudentStoreForPromote defines the store interface needed by
// PromoteGrades.
type StudentStoreForPromote interface {
	List(ctx context.Context) ([]student.Student, error)
	SaveAll(ctx context.Context, students []student.Student) error
}

// ErrNoGradesSelected is returned when the promotion grade set is empty.
var ErrNoGradesSelected = errors.New("select at least one grade to promote")

// PromoteGradesInput carries input for the year-end bulk promotion.
type PromoteGradesInput struct {
	Role   string // caller's role; must be master
	Grades []string
}

// PromoteGradesDeps holds dependencies for PromoteGrades.
type PromoteGradesDeps struct {
	StudentStore StudentStoreForPromote
}

// ExecutePromoteGrades advances every student whose grade is in the selected
// set one step along the promotion ladder, in a single table write.
// PRE: Caller holds the master role
// POST: Returns the number of students whose grade changed; terminal grades
// are left unchanged (a no-op, not an error)
func ExecutePromoteGrades(ctx context.Context, input PromoteGradesInput, deps PromoteGradesDeps) (int, error) {
	if err := requireMaster(input.Role); err != nil {
		return 0, err
	}
	if len(input.Grades) == 0 {
		return 0, ErrNoGradesSelected
	}

	students, err := deps.StudentStore.List(ctx)
	if err != nil {
		return 0, err
	}

	selected := make(map[string]bool, len(input.Grades))
	for _, g := range input.Grades {
		selected[g] = true
	}

	changed := 0
	for i := range students {
		if !selected[students[i].Grade] {
			continue
		}
		next := student.PromoteGrade(students[i].Grade)
		if next == students[i].Grade {
			continue
		}
		students[i].Grade = next
		changed++
	}
	if changed == 0 {
		return 0, nil
	}

	if err := deps.StudentStore.SaveAll(ctx, students); err != nil {
		return 0, err
	}
	slog.Info("student_event", "event", "grades_promoted", "changed", changed)
	return changed, nil
}
