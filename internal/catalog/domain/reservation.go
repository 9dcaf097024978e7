package domain

import (
	appValidation "github.com/allisson/librarian/internal/validation"
)

// Reservable is the optional capability of items that accept a reservation:
// a single claim by a user who gets first call when the item becomes available.
// Books and DVDs implement it, magazines do not. Query it with a type assertion.
type Reservable interface {
	// ReservedBy returns the ID of the reserving user, or "" when none.
	ReservedBy() string

	// Reserve records a reservation for userID, failing with ErrAlreadyReserved
	// when one already exists.
	Reserve(userID string) error

	// CancelReservation clears any reservation.
	CancelReservation()
}

// reservation implements Reservable for embedding variants.
// It never touches availability.
type reservation struct {
	reservedBy string
}

func (r *reservation) ReservedBy() string {
	return r.reservedBy
}

func (r *reservation) Reserve(userID string) error {
	if r.reservedBy != "" {
		return ErrAlreadyReserved
	}
	if err := validateReservedBy(userID); err != nil {
		return err
	}
	r.reservedBy = userID
	return nil
}

func validateReservedBy(userID string) error {
	return validateField("reserved_by", userID, appValidation.NotBlank)
}

func (r *reservation) CancelReservation() {
	r.reservedBy = ""
}
