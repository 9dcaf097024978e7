package domain

import (
	apperrors "github.com/allisson/librarian/internal/errors"
)

// AvailabilityCorrection records an item whose stored availability disagreed
// with the loans and was rewritten by ReconcileAvailability.
type AvailabilityCorrection struct {
	ItemID    string
	Available bool
}

// LinkLoan attaches a persisted loan to an already restored user without
// touching item availability; call ReconcileAvailability once every loan is linked.
// It fails with ErrItemNotAvailable when another user already holds the item.
func (c *Catalog) LinkLoan(userID, itemID string) error {
	user, ok := c.User(userID)
	if !ok {
		return apperrors.Wrapf(ErrUserNotFound, "user %q", userID)
	}
	if _, ok := c.Item(itemID); !ok {
		return apperrors.Wrapf(ErrItemNotFound, "item %q", itemID)
	}
	if holder := c.holderOf(itemID); holder != nil && holder != user {
		return apperrors.Wrapf(ErrItemNotAvailable, "item %q already held by %q", itemID, holder.ID())
	}
	user.AddBorrowedItem(itemID)
	return nil
}

// ReconcileAvailability marks held items unavailable and unheld items available,
// returning one correction per item it changed.
func (c *Catalog) ReconcileAvailability() []AvailabilityCorrection {
	var corrections []AvailabilityCorrection
	for _, item := range c.items {
		held := c.holderOf(item.ID()) != nil
		if item.IsAvailable() == !held {
			continue
		}
		item.setAvailable(!held)
		corrections = append(corrections, AvailabilityCorrection{ItemID: item.ID(), Available: !held})
	}
	return corrections
}
