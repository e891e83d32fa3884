package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateName      = errors.New("duplicate name")
)

// DuplicateNameError reports a name collision inside one collection.
// Entity is the singular label used in the message, e.g. "category".
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("A %s with this name already exists", e.Entity)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// StoreError wraps a backend failure so callers can match ErrStoreUnavailable.
func StoreError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// InvalidInput builds an ErrInvalidInput carrying a client-facing reason.
func InvalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
