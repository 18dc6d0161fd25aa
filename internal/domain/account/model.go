package account

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Role constants. Role is a closed enumeration: anything that is not master
// is treated as teacher at the read boundary.
const (
	RoleMaster  = "master"
	RoleTeacher = "teacher"
)

// MasterUsername is the reserved administrator username. Exactly one row
// with this username must always exist in the users table.
const MasterUsername = "master"

// Domain errors
var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrWrongPassword = errors.New("incorrect password")
)

// Account holds state for one login account (the master or a teacher).
type Account struct {
	Username     string
	Name         string
	PasswordHash string
	Role         string
}

// Validate checks if the Account has valid data.
// PRE: Account struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return ErrEmptyUsername
	}
	return nil
}

// SetPassword hashes pwd with bcrypt and stores the hash.
// PRE: pwd is non-empty
// POST: PasswordHash holds a bcrypt hash of pwd
func (a *Account) SetPassword(pwd string) error {
	if pwd == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies pwd against the stored hash.
// POST: Returns ErrWrongPassword if the password does not match
func (a *Account) CheckPassword(pwd string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(pwd)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsMaster returns true if the account holds the master role.
// INVARIANT: Role field is not mutated
func (a *Account) IsMaster() bool {
	return NormalizeRole(a.Role) == RoleMaster
}

// NormalizeRole maps a stored role string onto the closed role set.
// Unknown or missing values default to teacher; this default is policy,
// not an accident.
func NormalizeRole(role string) string {
	if role == RoleMaster {
		return RoleMaster
	}
	return RoleTeacher
}
