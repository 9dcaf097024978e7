package commands

import (
	"context"
	"fmt"
	"log/slog"

	catalogUseCase "github.com/allisson/librarian/internal/catalog/usecase"
)

// RunBorrow lends an item to a user and saves the catalog.
func RunBorrow(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	lendingUC catalogUseCase.LendingUseCase,
	logger *slog.Logger,
	userID, itemID string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	err := mutate(ctx, catalogUC, logger, func() error {
		if err := lendingUC.Borrow(ctx, userID, itemID); err != nil {
			return fmt.Errorf("failed to borrow item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeResult(io.Writer, format,
		fmt.Sprintf("Item %s borrowed by %s.", itemID, userID),
		map[string]string{"user_id": userID, "item_id": itemID, "status": "borrowed"},
	)
}

// RunReturn takes an item back from a user and saves the catalog.
func RunReturn(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	lendingUC catalogUseCase.LendingUseCase,
	logger *slog.Logger,
	userID, itemID string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	err := mutate(ctx, catalogUC, logger, func() error {
		if err := lendingUC.Return(ctx, userID, itemID); err != nil {
			return fmt.Errorf("failed to return item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeResult(io.Writer, format,
		fmt.Sprintf("Item %s returned by %s.", itemID, userID),
		map[string]string{"user_id": userID, "item_id": itemID, "status": "returned"},
	)
}

// RunReserve records a user's reservation on a book or DVD and saves the catalog.
func RunReserve(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	lendingUC catalogUseCase.LendingUseCase,
	logger *slog.Logger,
	userID, itemID string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	err := mutate(ctx, catalogUC, logger, func() error {
		if err := lendingUC.Reserve(ctx, userID, itemID); err != nil {
			return fmt.Errorf("failed to reserve item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeResult(io.Writer, format,
		fmt.Sprintf("Item %s reserved by %s.", itemID, userID),
		map[string]string{"user_id": userID, "item_id": itemID, "status": "reserved"},
	)
}

// RunCancelReservation clears the reservation on an item and saves the catalog.
func RunCancelReservation(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	lendingUC catalogUseCase.LendingUseCase,
	logger *slog.Logger,
	itemID string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	err := mutate(ctx, catalogUC, logger, func() error {
		if err := lendingUC.CancelReservation(ctx, itemID); err != nil {
			return fmt.Errorf("failed to cancel reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeResult(io.Writer, format,
		fmt.Sprintf("Reservation on item %s cancelled.", itemID),
		map[string]string{"item_id": itemID, "status": "cancelled"},
	)
}
