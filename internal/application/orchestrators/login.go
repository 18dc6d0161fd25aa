package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"ubase/internal/adapters/storage/accountstore"
	"ubase/internal/domain/account"
)

// ErrInvalidCredentials hides whether the username or the password was
// wrong. The log carries the distinction; the caller never does.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
}

// LoginInput carries the submitted credentials.
type LoginInput struct {
	Username string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
}

// LoginResult identifies the authenticated account.
type LoginResult struct {
	Username string
	Name     string
	Role     string
}

// ExecuteLogin verifies the credentials against the users table.
// POST: Returns ErrInvalidCredentials on an unknown username or a wrong
// password; the two cases are indistinguishable to the caller
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	acct, err := deps.AccountStore.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			slog.Info("auth_event", "event", "login_failed", "reason", "unknown_username")
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if err := acct.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "reason", "wrong_password", "username", acct.Username)
		return LoginResult{}, ErrInvalidCredentials
	}

	role := account.NormalizeRole(acct.Role)
	slog.Info("auth_event", "event", "login_ok", "username", acct.Username, "role", role)
	return LoginResult{
		Username: acct.Username,
		Name:     acct.Name,
		Role:     role,
	}, nil
}
