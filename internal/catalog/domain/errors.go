package domain

import (
	"fmt"
	"strconv"

	"github.com/allisson/librarian/internal/errors"
)

// Validation errors.
var (
	// ErrWrongType indicates a field holds a value of the wrong data type.
	ErrWrongType = errors.Wrap(errors.ErrInvalidInput, "wrong type")

	// ErrInvalidValue indicates a field has the right type but violates a constraint.
	ErrInvalidValue = errors.Wrap(errors.ErrInvalidInput, "invalid value")

	// ErrMissingField indicates a required key is absent from a record.
	ErrMissingField = errors.Wrap(errors.ErrInvalidInput, "missing field")

	// ErrBadIDFormat indicates an ID string does not match its grammar.
	ErrBadIDFormat = errors.Wrap(errors.ErrInvalidInput, "bad id format")
)

// Conflict errors.
var (
	// ErrDuplicateItem indicates an item with the same ID or (title, author, year) exists.
	ErrDuplicateItem = errors.Wrap(errors.ErrConflict, "item already exists")

	// ErrDuplicateUser indicates a user with the same ID or (first name, last name) exists.
	ErrDuplicateUser = errors.Wrap(errors.ErrConflict, "user already exists")
)

// Not found errors.
var (
	// ErrItemNotFound indicates the item is not in the catalog.
	ErrItemNotFound = errors.Wrap(errors.ErrNotFound, "item not found")

	// ErrUserNotFound indicates the user is not in the catalog.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")
)

// State errors.
var (
	// ErrItemNotAvailable indicates the item is currently lent out.
	ErrItemNotAvailable = errors.Wrap(errors.ErrInvalidState, "item not available")

	// ErrItemNotBorrowed indicates the user does not hold the item.
	ErrItemNotBorrowed = errors.Wrap(errors.ErrInvalidState, "item not borrowed by user")

	// ErrUserHasBorrowedItems indicates the user still holds items.
	ErrUserHasBorrowedItems = errors.Wrap(errors.ErrInvalidState, "user has borrowed items")

	// ErrAlreadyReserved indicates the item already carries a reservation.
	ErrAlreadyReserved = errors.Wrap(errors.ErrInvalidState, "item already reserved")

	// ErrNotReservable indicates the item variant does not support reservations.
	ErrNotReservable = errors.Wrap(errors.ErrInvalidState, "item type does not support reservation")

	// ErrSequenceExhausted indicates a sequence counter has no numbers left.
	ErrSequenceExhausted = errors.Wrap(errors.ErrInvalidState, "sequence exhausted")
)

// FieldError reports a validation failure on a single named field.
// It unwraps to the validation kind (ErrWrongType, ErrInvalidValue, ErrMissingField).
type FieldError struct {
	Field  string
	Detail string
	Kind   error
}

func newFieldError(field string, kind error, detail string) *FieldError {
	return &FieldError{Field: field, Detail: detail, Kind: kind}
}

// Error returns "<field>: <detail>".
func (e *FieldError) Error() string {
	return e.Field + ": " + e.Detail
}

// Unwrap returns the validation kind.
func (e *FieldError) Unwrap() error {
	return e.Kind
}

// NewWrongTypeError builds the error for a field decoded with an unexpected type,
// e.g. "year: expected type: integer, got: string".
func NewWrongTypeError(field, expected, got string) *FieldError {
	return newFieldError(field, ErrWrongType, fmt.Sprintf("expected type: %s, got: %s", expected, got))
}

// NewMissingFieldError builds the error for a required field absent from a record.
func NewMissingFieldError(field string) *FieldError {
	return newFieldError(field, ErrMissingField, "required field is missing")
}

// IDFormatError reports an ID that does not match its grammar. An empty Field
// means the ID has the wrong shape; otherwise Field names the offending part.
type IDFormatError struct {
	ID     string
	Field  string
	Reason string
}

// Error describes the offending ID and part.
func (e *IDFormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bad id format %s: %s", quote(e.ID), e.Reason)
	}
	return fmt.Sprintf("bad id format %s: %s %s", quote(e.ID), e.Field, e.Reason)
}

// Unwrap returns ErrBadIDFormat.
func (e *IDFormatError) Unwrap() error {
	return ErrBadIDFormat
}

// Shape reports whether the ID failed on its overall shape rather than a field value.
func (e *IDFormatError) Shape() bool {
	return e.Field == ""
}

func quote(s string) string {
	return strconv.Quote(s)
}
