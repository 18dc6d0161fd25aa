package studentstore

import (
	"context"
	"errors"

	domain "ubase/internal/domain/student"
)

// ErrNotFound is returned when no student row matches the given id.
var ErrNotFound = errors.New("student not found")

// Store persists Student state.
type Store interface {
	List(ctx context.Context) ([]domain.Student, error)
	GetByID(ctx context.Context, id string) (domain.Student, error)
	Append(ctx context.Context, s domain.Student) error
	Update(ctx context.Context, s domain.Student) error
	SaveAll(ctx context.Context, students []domain.Student) error
	Delete(ctx context.Context, ids []string) (int, error)
}
