package orchestrators

import (
	"context"
	"log/slog"

	"ubase/internal/domain/account"
)

// AccountStoreForReset defines the store interface needed by ResetPassword.
type AccountStoreForReset interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Update(ctx context.Context, a account.Account) error
}

// ResetPasswordInput carries input for a master-driven password reset.
type ResetPasswordInput struct {
	Role        string // caller's role; must be master
	Username    string
	NewPassword string
}

// ResetPasswordDeps holds dependencies for ResetPassword.
type ResetPasswordDeps struct {
	AccountStore AccountStoreForReset
}

// ExecuteResetPassword replaces the stored password hash for one account.
// The master resets any account's password, its own included; the old
// password is not required.
// PRE: Caller holds the master role, Username names an existing account
// POST: Only NewPassword authenticates the account
func ExecuteResetPassword(ctx context.Context, input ResetPasswordInput, deps ResetPasswordDeps) error {
	if err := requireMaster(input.Role); err != nil {
		return err
	}

	acct, err := deps.AccountStore.GetByUsername(ctx, input.Username)
	if err != nil {
		return err
	}
	if err := acct.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := deps.AccountStore.Update(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "password_reset", "username", acct.Username)
	return nil
}
