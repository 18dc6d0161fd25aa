package orchestrators

import (
	"errors"

	"ubase/internal/domain/account"
)

// ErrMasterOnly is returned when a non-master caller attempts a master-only
// operation. It is an authorization error, distinct from validation errors.
var ErrMasterOnly = errors.New("this operation requires the master role")

// requireMaster gates master-only operations on the caller's role.
func requireMaster(role string) error {
	if account.NormalizeRole(role) != account.RoleMaster {
		return ErrMasterOnly
	}
	return nil
}
