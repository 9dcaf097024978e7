package commands

import (
	"context"
	"fmt"
	"log/slog"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
	catalogUseCase "github.com/allisson/librarian/internal/catalog/usecase"
)

// RunAddItem adds an item and saves the catalog. The new item is printed.
func RunAddItem(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	logger *slog.Logger,
	input catalogUseCase.CreateItemInput,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var item catalogDomain.Item
	err := mutate(ctx, catalogUC, logger, func() error {
		var err error
		item, err = catalogUC.CreateItem(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeItem(io.Writer, format, item)
}

// RunUpdateItem replaces the given fields of an item and saves the catalog.
func RunUpdateItem(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	logger *slog.Logger,
	input catalogUseCase.UpdateItemInput,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var item catalogDomain.Item
	err := mutate(ctx, catalogUC, logger, func() error {
		var err error
		item, err = catalogUC.UpdateItem(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeItem(io.Writer, format, item)
}

// RunRemoveItem deletes an item that is not lent out and saves the catalog.
func RunRemoveItem(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	logger *slog.Logger,
	id string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	err := mutate(ctx, catalogUC, logger, func() error {
		if err := catalogUC.RemoveItem(ctx, id); err != nil {
			return fmt.Errorf("failed to remove item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeResult(io.Writer, format,
		fmt.Sprintf("Item %s removed.", id),
		map[string]string{"item_id": id, "status": "removed"},
	)
}

// RunGetItem prints one item.
func RunGetItem(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	logger *slog.Logger,
	id string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if err := loadCatalog(ctx, catalogUC, logger); err != nil {
		return err
	}

	item, err := catalogUC.GetItem(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}

	return writeItem(io.Writer, format, item)
}

// RunListItems prints the items matching filter in catalog order.
func RunListItems(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	logger *slog.Logger,
	filter catalogUseCase.ItemFilter,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if err := loadCatalog(ctx, catalogUC, logger); err != nil {
		return err
	}

	items, err := catalogUC.ListItems(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	return writeItems(io.Writer, format, items)
}
