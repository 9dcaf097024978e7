package usecase

import (
	"context"
	"log/slog"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
)

// lendingUseCase implements the LendingUseCase interface.
type lendingUseCase struct {
	session *Session
}

// NewLendingUseCase creates a LendingUseCase over the shared session.
func NewLendingUseCase(session *Session) LendingUseCase {
	return &lendingUseCase{session: session}
}

// Borrow lends the item to the user.
func (l *lendingUseCase) Borrow(ctx context.Context, userID, itemID string) error {
	err := l.session.run(func(catalog *catalogDomain.Catalog) error {
		return catalog.Borrow(userID, itemID)
	})
	if err != nil {
		return err
	}
	l.session.logger.Info("item borrowed", slog.String("user_id", userID), slog.String("item_id", itemID))
	return nil
}

// Return takes the item back from the user.
func (l *lendingUseCase) Return(ctx context.Context, userID, itemID string) error {
	err := l.session.run(func(catalog *catalogDomain.Catalog) error {
		return catalog.Return(userID, itemID)
	})
	if err != nil {
		return err
	}
	l.session.logger.Info("item returned", slog.String("user_id", userID), slog.String("item_id", itemID))
	return nil
}

// Reserve records the user's claim on a book or DVD.
func (l *lendingUseCase) Reserve(ctx context.Context, userID, itemID string) error {
	err := l.session.run(func(catalog *catalogDomain.Catalog) error {
		return catalog.Reserve(userID, itemID)
	})
	if err != nil {
		return err
	}
	l.session.logger.Info("item reserved", slog.String("user_id", userID), slog.String("item_id", itemID))
	return nil
}

// CancelReservation clears the reservation on the item.
func (l *lendingUseCase) CancelReservation(ctx context.Context, itemID string) error {
	err := l.session.run(func(catalog *catalogDomain.Catalog) error {
		return catalog.CancelReservation(itemID)
	})
	if err != nil {
		return err
	}
	l.session.logger.Info("reservation cancelled", slog.String("item_id", itemID))
	return nil
}
