package orchestrators

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"ubase/internal/domain/student"
)

// StudentStoreForRegister defines the store interface needed by
// RegisterStudent.
type StudentStoreForRegister interface {
	Append(ctx context.Context, s student.Student) error
}

// RegisterStudentInput carries input for the register-student orchestrator.
// Subjects and MockSubjects are only honored for high-school and 既卒
// students; younger students always get the fixed five subjects.
type RegisterStudentInput struct {
	Name          string
	Grade         string
	SchoolName    string
	TargetSchool  string
	AdmissionGoal string
	LoginID       string
	Subjects      []string
	MockSubjects  []string
}

// RegisterStudentDeps holds dependencies for RegisterStudent.
type RegisterStudentDeps struct {
	StudentStore StudentStoreForRegister
	NextID       func(ctx context.Context) (int, error)
	Now          func() time.Time // optional: if nil, time.Now is used
}

// ExecuteRegisterStudent validates the input, allocates the next student id
// and appends the new student row.
// PRE: Name is non-empty, Grade is on the grade ladder
// POST: Student is persisted with a never-before-used id; nothing is
// written when validation fails
func ExecuteRegisterStudent(ctx context.Context, input RegisterStudentInput, deps RegisterStudentDeps) (student.Student, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	subjects, mockSubjects := student.ResolveSubjects(input.Grade, input.Subjects, input.MockSubjects)
	st := student.Student{
		Name:          strings.TrimSpace(input.Name),
		Grade:         input.Grade,
		SchoolName:    input.SchoolName,
		TargetSchool:  input.TargetSchool,
		AdmissionGoal: input.AdmissionGoal,
		LoginID:       input.LoginID,
		Subjects:      subjects,
		MockSubjects:  mockSubjects,
		CreatedAt:     now(),
	}
	if err := st.Validate(); err != nil {
		return student.Student{}, err
	}

	id, err := deps.NextID(ctx)
	if err != nil {
		return student.Student{}, err
	}
	st.ID = strconv.Itoa(id)

	if err := deps.StudentStore.Append(ctx, st); err != nil {
		return student.Student{}, err
	}

	slog.Info("student_event", "event", "registered", "student_id", st.ID, "grade", st.Grade)
	return st, nil
}
