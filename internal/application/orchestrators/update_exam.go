package orchestrators

import (
	"context"

	"ubase/internal/domain/exam"
)

// ExamStoreForUpdate defines the store interface needed by UpdateExam.
type ExamStoreForUpdate interface {
	GetByID(ctx context.Context, id string) (exam.Result, error)
	Update(ctx context.Context, r exam.Result) error
}

// UpdateExamInput carries the replacement values for one exam row. The id,
// student id and creation stamp of the stored row are kept as they are; the
// teacher cells are overwritten so the row names its latest editor.
type UpdateExamInput struct {
	ID              string
	Category        string
	Name            string
	Date            string
	Results         exam.Results
	TeacherUsername string
	TeacherName     string
}

// UpdateExamDeps holds dependencies for UpdateExam.
type UpdateExamDeps struct {
	ExamStore ExamStoreForUpdate
}

// ExecuteUpdateExam overwrites the mutable fields of one exam result.
// PRE: input.ID names an existing exam row
// POST: The stored row reflects the input; nothing changes on validation
// failure
func ExecuteUpdateExam(ctx context.Context, input UpdateExamInput, deps UpdateExamDeps) (exam.Result, error) {
	stored, err := deps.ExamStore.GetByID(ctx, input.ID)
	if err != nil {
		return exam.Result{}, err
	}

	stored.Category = input.Category
	stored.Name = input.Name
	stored.Date = input.Date
	stored.Results = input.Results
	stored.TeacherUsername = input.TeacherUsername
	stored.TeacherName = input.TeacherName

	if err := stored.Validate(); err != nil {
		return exam.Result{}, err
	}
	if err := deps.ExamStore.Update(ctx, stored); err != nil {
		return exam.Result{}, err
	}
	return stored, nil
}
