package orchestrators

import (
	"context"
	"strings"

	"ubase/internal/domain/student"
)

// StudentStoreForUpdate defines the store interface needed by UpdateStudent.
type StudentStoreForUpdate interface {
	GetByID(ctx context.Context, id string) (student.Student, error)
	Update(ctx context.Context, s student.Student) error
}

// UpdateStudentInput carries the mutable fields of a student. ID selects the
// row; the id itself and created_at never change.
type UpdateStudentInput struct {
	ID            string
	Name          string
	Grade         string
	SchoolName    string
	TargetSchool  string
	AdmissionGoal string
	LoginID       string
	Subjects      []string
	MockSubjects  []string
}

// UpdateStudentDeps holds dependencies for UpdateStudent.
type UpdateStudentDeps struct {
	StudentStore StudentStoreForUpdate
}

// ExecuteUpdateStudent overwrites the mutable fields of an existing student.
// PRE: input.ID names an existing student
// POST: All mutable fields are replaced; id and created_at are untouched
func ExecuteUpdateStudent(ctx context.Context, input UpdateStudentInput, deps UpdateStudentDeps) (student.Student, error) {
	st, err := deps.StudentStore.GetByID(ctx, input.ID)
	if err != nil {
		return student.Student{}, err
	}

	st.Name = strings.TrimSpace(input.Name)
	st.Grade = input.Grade
	st.SchoolName = input.SchoolName
	st.TargetSchool = input.TargetSchool
	st.AdmissionGoal = input.AdmissionGoal
	st.LoginID = input.LoginID
	st.Subjects = input.Subjects
	st.MockSubjects = input.MockSubjects

	if err := st.Validate(); err != nil {
		return student.Student{}, err
	}
	if err := deps.StudentStore.Update(ctx, st); err != nil {
		return student.Student{}, err
	}
	return st, nil
}
