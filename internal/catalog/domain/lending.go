package domain

import (
	apperrors "github.com/allisson/librarian/internal/errors"
)

// Borrow lends the item to the user. Preconditions are checked in order (user
// exists, item exists, item available) and nothing changes when one fails.
// A reservation held by the borrower is fulfilled and cleared; a reservation held
// by someone else is left in place.
func (c *Catalog) Borrow(userID, itemID string) error {
	user, ok := c.User(userID)
	if !ok {
		return apperrors.Wrapf(ErrUserNotFound, "user %q", userID)
	}
	item, ok := c.Item(itemID)
	if !ok {
		return apperrors.Wrapf(ErrItemNotFound, "item %q", itemID)
	}
	if !item.IsAvailable() {
		return apperrors.Wrapf(ErrItemNotAvailable, "item %q", itemID)
	}

	item.setAvailable(false)
	user.AddBorrowedItem(itemID)
	if r, ok := item.(Reservable); ok && r.ReservedBy() == userID {
		r.CancelReservation()
	}
	return nil
}

// Return takes the item back from the user. Preconditions are checked in order
// (user exists, item exists, user holds item) and nothing changes when one fails.
func (c *Catalog) Return(userID, itemID string) error {
	user, ok := c.User(userID)
	if !ok {
		return apperrors.Wrapf(ErrUserNotFound, "user %q", userID)
	}
	item, ok := c.Item(itemID)
	if !ok {
		return apperrors.Wrapf(ErrItemNotFound, "item %q", itemID)
	}
	if !user.HasBorrowed(itemID) {
		return apperrors.Wrapf(ErrItemNotBorrowed, "user %q, item %q", userID, itemID)
	}

	user.RemoveBorrowedItem(itemID)
	item.setAvailable(true)
	return nil
}

// Reserve records the user's claim on a book or DVD. Reserving never changes availability.
func (c *Catalog) Reserve(userID, itemID string) error {
	if _, ok := c.User(userID); !ok {
		return apperrors.Wrapf(ErrUserNotFound, "user %q", userID)
	}
	item, ok := c.Item(itemID)
	if !ok {
		return apperrors.Wrapf(ErrItemNotFound, "item %q", itemID)
	}
	r, ok := item.(Reservable)
	if !ok {
		return apperrors.Wrapf(ErrNotReservable, "item %q is a %s", itemID, item.Type())
	}
	if holder := r.ReservedBy(); holder != "" {
		return apperrors.Wrapf(ErrAlreadyReserved, "item %q reserved by %q", itemID, holder)
	}
	return r.Reserve(userID)
}

// CancelReservation clears the reservation on the item. Cancelling an item with
// no reservation is a no-op.
func (c *Catalog) CancelReservation(itemID string) error {
	item, ok := c.Item(itemID)
	if !ok {
		return apperrors.Wrapf(ErrItemNotFound, "item %q", itemID)
	}
	r, ok := item.(Reservable)
	if !ok {
		return apperrors.Wrapf(ErrNotReservable, "item %q is a %s", itemID, item.Type())
	}
	r.CancelReservation()
	return nil
}

// Holder returns the ID of the user holding the item.
func (c *Catalog) Holder(itemID string) (string, bool) {
	if u := c.holderOf(itemID); u != nil {
		return u.ID(), true
	}
	return "", false
}
