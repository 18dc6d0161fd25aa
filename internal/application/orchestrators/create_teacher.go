package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"ubase/internal/adapters/storage/accountstore"
	"ubase/internal/domain/account"
)

// ErrUsernameTaken is returned when the requested username already exists.
var ErrUsernameTaken = errors.New("username is already taken")

// AccountStoreForCreate defines the store interface needed by CreateTeacher.
type AccountStoreForCreate interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Append(ctx context.Context, a account.Account) error
}

// CreateTeacherInput carries input for creating a teacher account.
type CreateTeacherInput struct {
	Role     string // caller's role; must be master
	Username string
	Name     string
	Password string
}

// CreateTeacherDeps holds dependencies for CreateTeacher.
type CreateTeacherDeps struct {
	AccountStore AccountStoreForCreate
}

// ExecuteCreateTeacher adds a teacher account. Only the master may create
// accounts, and every created account is a teacher; there is no path to a
// second master.
// PRE: Caller holds the master role
// POST: A teacher row with the given username exists exactly once
func ExecuteCreateTeacher(ctx context.Context, input CreateTeacherInput, deps CreateTeacherDeps) (account.Account, error) {
	if err := requireMaster(input.Role); err != nil {
		return account.Account{}, err
	}

	username := strings.TrimSpace(input.Username)
	acct := account.Account{
		Username: username,
		Name:     input.Name,
		Role:     account.RoleTeacher,
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}

	_, err := deps.AccountStore.GetByUsername(ctx, username)
	if err == nil {
		return account.Account{}, ErrUsernameTaken
	}
	if !errors.Is(err, accountstore.ErrNotFound) {
		return account.Account{}, err
	}

	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}
	if err := deps.AccountStore.Append(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "teacher_created", "username", acct.Username)
	return acct, nil
}
