package models

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID  = errors.New("duplicate id")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Invalid wraps ErrInvalidInput with the offending field.
func Invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}
