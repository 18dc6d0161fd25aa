package examstore

import (
	"context"
	"errors"

	domain "ubase/internal/domain/exam"
)

// ErrNotFound is returned when no exam row matches the given id.
var ErrNotFound = errors.New("exam result not found")

// Store persists ExamResult state.
type Store interface {
	List(ctx context.Context) ([]domain.Result, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Result, error)
	GetByID(ctx context.Context, id string) (domain.Result, error)
	Append(ctx context.Context, r domain.Result) error
	Update(ctx context.Context, r domain.Result) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByStudents(ctx context.Context, studentIDs []string) (int, error)
}
