// Package errors provides the error kinds shared by every catalog layer. Domain
// packages wrap these kinds so callers can branch either on a specific error
// (item not found) or on its family (not found).
package errors

import (
	"errors"
	"fmt"
)

// Standard error kinds used across the catalog.
var (
	// ErrNotFound indicates the referenced item or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an add or update would duplicate an existing entity.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates a field has the wrong type, a bad value, or is missing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState indicates the operation is not allowed in the entity's current state
	// (for example borrowing an item that is already lent out).
	ErrInvalidState = errors.New("invalid state")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
