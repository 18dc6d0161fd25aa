package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"ubase/internal/domain/account"
)

// ErrMasterUndeletable guards the bootstrap invariant: the master row must
// always exist.
var ErrMasterUndeletable = errors.New("the master account cannot be deleted")

// AccountStoreForRemove defines the store interface needed by DeleteAccount.
type AccountStoreForRemove interface {
	Delete(ctx context.Context, username string) error
}

// DeleteAccountInput carries input for removing a teacher account.
type DeleteAccountInput struct {
	Role     string // caller's role; must be master
	Username string
}

// DeleteAccountDeps holds dependencies for DeleteAccount.
type DeleteAccountDeps struct {
	AccountStore AccountStoreForRemove
}

// ExecuteDeleteAccount removes one teacher account by username.
// PRE: Caller holds the master role, Username is not the master username
// POST: The account row is gone; students recorded by the account keep
// their teacher name columns as historical text
func ExecuteDeleteAccount(ctx context.Context, input DeleteAccountInput, deps DeleteAccountDeps) error {
	if err := requireMaster(input.Role); err != nil {
		return err
	}
	if input.Username == account.MasterUsername {
		return ErrMasterUndeletable
	}

	if err := deps.AccountStore.Delete(ctx, input.Username); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "account_deleted", "username", input.Username)
	return nil
}
