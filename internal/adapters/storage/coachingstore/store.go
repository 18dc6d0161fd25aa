package coachingstore

import (
	"context"
	"errors"

	domain "ubase/internal/domain/coaching"
)

// ErrNotFound is returned when no report row matches the given id.
var ErrNotFound = errors.New("coaching report not found")

// Store persists CoachingReport state. A student has at most one report per
// date; FindByStudentDate is how callers decide between insert and
// overwrite.
type Store interface {
	List(ctx context.Context) ([]domain.Report, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Report, error)
	GetByID(ctx context.Context, id string) (domain.Report, error)
	FindByStudentDate(ctx context.Context, studentID, date string) (domain.Report, bool, error)
	Append(ctx context.Context, r domain.Report) error
	Update(ctx context.Context, r domain.Report) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByStudents(ctx context.Context, studentIDs []string) (int, error)
}
