package eikenstore

import (
	"context"
	"errors"

	domain "ubase/internal/domain/eiken"
)

// ErrNotFound is returned when no record row matches the given id.
var ErrNotFound = errors.New("eiken record not found")

// Store persists EikenRecord state.
type Store interface {
	List(ctx context.Context) ([]domain.Record, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Record, error)
	GetByID(ctx context.Context, id string) (domain.Record, error)
	Append(ctx context.Context, r domain.Record) error
	Update(ctx context.Context, r domain.Record) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByStudents(ctx context.Context, studentIDs []string) (int, error)
}
