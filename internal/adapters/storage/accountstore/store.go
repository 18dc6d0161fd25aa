package accountstore

import (
	"context"
	"errors"

	domain "ubase/internal/domain/account"
)

// ErrNotFound is returned when no account row matches the given username.
var ErrNotFound = errors.New("account not found")

// Store persists Account state. Username is the natural key.
type Store interface {
	List(ctx context.Context) ([]domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	Append(ctx context.Context, a domain.Account) error
	Update(ctx context.Context, a domain.Account) error
	Delete(ctx context.Context, username string) error
}
