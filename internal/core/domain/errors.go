package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrUnauthenticated  = errors.New("access token required")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInsufficientRole = errors.New("insufficient privileges")

	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPendingApproval      = errors.New("account is pending approval")
	ErrDuplicateEmail       = errors.New("admin already exists")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrSelfDeletion         = errors.New("cannot delete your own account")
	ErrProtectedRole        = errors.New("main admin account is protected")
	ErrNotPending           = errors.New("admin is not pending approval")
	ErrSeedPasswordRequired = errors.New("seed admin password is required")

	ErrProductNotFound = errors.New("product not found")

	ErrInvalidStatus = errors.New(`invalid status, must be "online" or "offline"`)
)

// Validationf wraps ErrValidation with a formatted detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
