package domain

import (
	"errors"
	"fmt"
)

// Request errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)

// Backend errors. Details are logged server-side and never exposed to the
// caller beyond a generic message.
var (
	ErrStorage = errors.New("storage failure")
)

// ValidationError wraps ErrValidation with the offending field so handlers
// can report which input was rejected.
func ValidationError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}
