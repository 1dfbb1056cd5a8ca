package types

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

var (
	ErrProfileNotFound     = fmt.Errorf("profile %w", ErrNotFound)
	ErrApplicationNotFound = fmt.Errorf("application %w", ErrNotFound)
	ErrCustomerNotFound    = fmt.Errorf("customer %w", ErrNotFound)
	ErrContactNotFound     = fmt.Errorf("contact %w", ErrNotFound)
)

var (
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrLockedOut         = errors.New("too many failed attempts")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
