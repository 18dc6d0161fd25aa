package orchestrators

import (
	"context"
	"strconv"
	"time"

	"ubase/internal/domain/exam"
	"ubase/internal/domain/student"
)

// Store interfaces needed by RecordExam.
type (
	ExamStoreForRecord interface {
		Append(ctx context.Context, r exam.Result) error
	}
	StudentStoreForRecord interface {
		GetByID(ctx context.Context, id string) (student.Student, error)
	}
)

// RecordExamInput carries input for recording one exam. Results keys are the
// subject names the student had configured when the scores were entered;
// they are stored as given.
type RecordExamInput struct {
	StudentID       string
	Category        string
	Name            string
	Date            string
	Results         exam.Results
	TeacherUsername string
	TeacherName     string
}

// RecordExamDeps holds dependencies for RecordExam.
type RecordExamDeps struct {
	ExamStore    ExamStoreForRecord
	StudentStore StudentStoreForRecord
	NextID       func(ctx context.Context) (int, error)
	Now          func() time.Time // optional: if nil, time.Now is used
}

// ExecuteRecordExam validates and appends one exam result, stamping the
// recording teacher.
// PRE: input.StudentID names an existing student
// POST: Result is persisted with the next free id of the exam_results table
func ExecuteRecordExam(ctx context.Context, input RecordExamInput, deps RecordExamDeps) (exam.Result, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	if _, err := deps.StudentStore.GetByID(ctx, input.StudentID); err != nil {
		return exam.Result{}, err
	}

	r := exam.Result{
		StudentID:       input.StudentID,
		Category:        input.Category,
		Name:            input.Name,
		Date:            input.Date,
		Results:         input.Results,
		CreatedAt:       now(),
		TeacherUsername: input.TeacherUsername,
		TeacherName:     input.TeacherName,
	}
	if err := r.Validate(); err != nil {
		return exam.Result{}, err
	}

	id, err := deps.NextID(ctx)
	if err != nil {
		return exam.Result{}, err
	}
	r.ID = strconv.Itoa(id)

	if err := deps.ExamStore.Append(ctx, r); err != nil {
		return exam.Result{}, err
	}
	return r, nil
}
