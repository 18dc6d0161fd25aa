package orchestrators

import (
	"context"
	"log/slog"
)

// ExamStoreForDelete defines the store interface needed by DeleteExam.
type ExamStoreForDelete interface {
	DeleteByID(ctx context.Context, id string) error
}

// DeleteExamDeps holds dependencies for DeleteExam.
type DeleteExamDeps struct {
	ExamStore ExamStoreForDelete
}

// ExecuteDeleteExam removes one exam result by id.
// PRE: id names an existing exam row
// POST: The row is gone; deleting a missing id reports the store's not-found
// error
func ExecuteDeleteExam(ctx context.Context, id string, deps DeleteExamDeps) error {
	if err := deps.ExamStore.DeleteByID(ctx, id); err != nil {
		return err
	}
	slog.Info("exam_event", "event", "deleted", "exam_id", id)
	return nil
}
