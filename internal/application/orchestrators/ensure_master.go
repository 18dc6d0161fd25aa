package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"ubase/internal/adapters/storage/accountstore"
	"ubase/internal/domain/account"
)

// AccountStoreForEnsure defines the store interface needed by EnsureMaster.
type AccountStoreForEnsure interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Append(ctx context.Context, a account.Account) error
}

// EnsureMasterInput carries the bootstrap credentials. They only take effect
// when the master row is missing; an existing master is never rewritten.
type EnsureMasterInput struct {
	Name     string
	Password string
}

// EnsureMasterDeps holds dependencies for EnsureMaster.
type EnsureMasterDeps struct {
	AccountStore AccountStoreForEnsure
}

// ExecuteEnsureMaster creates the master account if the users table has
// none. It runs on every startup and is idempotent.
// POST: A master row exists; created reports whether this call made it
func ExecuteEnsureMaster(ctx context.Context, input EnsureMasterInput, deps EnsureMasterDeps) (created bool, err error) {
	_, err = deps.AccountStore.GetByUsername(ctx, account.MasterUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, accountstore.ErrNotFound) {
		return false, err
	}

	master := account.Account{
		Username: account.MasterUsername,
		Name:     input.Name,
		Role:     account.RoleMaster,
	}
	if err := master.SetPassword(input.Password); err != nil {
		return false, err
	}
	if err := deps.AccountStore.Append(ctx, master); err != nil {
		return false, err
	}
	slog.Info("auth_event", "event", "master_bootstrapped", "username", master.Username)
	return true, nil
}
