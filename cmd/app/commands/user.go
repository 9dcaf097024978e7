package commands

import (
	"context"
	"fmt"
	"log/slog"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
	catalogUseCase "github.com/allisson/librarian/internal/catalog/usecase"
)

// RunAddUser registers a user and saves the catalog.
func RunAddUser(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	logger *slog.Logger,
	input catalogUseCase.CreateUserInput,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var user *catalogDomain.User
	err := mutate(ctx, catalogUC, logger, func() error {
		var err error
		user, err = catalogUC.CreateUser(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to add user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeUser(io.Writer, format, user)
}

// RunUpdateUser replaces the given fields of a user and saves the catalog.
func RunUpdateUser(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	logger *slog.Logger,
	input catalogUseCase.UpdateUserInput,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var user *catalogDomain.User
	err := mutate(ctx, catalogUC, logger, func() error {
		var err error
		user, err = catalogUC.UpdateUser(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeUser(io.Writer, format, user)
}

// RunRemoveUser deletes a user with no borrowed items and saves the catalog.
func RunRemoveUser(
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
		if err := catalogUC.RemoveUser(ctx, id); err != nil {
			return fmt.Errorf("failed to remove user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeResult(io.Writer, format,
		fmt.Sprintf("User %s removed.", id),
		map[string]string{"user_id": id, "status": "removed"},
	)
}

// RunGetUser prints one user.
func RunGetUser(
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

	user, err := catalogUC.GetUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	return writeUser(io.Writer, format, user)
}

// RunListUsers prints the users matching filter in catalog order.
func RunListUsers(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	logger *slog.Logger,
	filter catalogUseCase.UserFilter,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if err := loadCatalog(ctx, catalogUC, logger); err != nil {
		return err
	}

	users, err := catalogUC.ListUsers(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	return writeUsers(io.Writer, format, users)
}
