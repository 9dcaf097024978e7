// Package usecase defines the interfaces and implementations for catalog use cases.
// Use cases serialize access to the shared in-memory catalog, validate caller
// input and hand out copies of entities so callers never mutate catalog state directly.
package usecase

import (
	"context"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
)

// CatalogRepository defines the interface for catalog persistence operations.
type CatalogRepository interface {
	Load(ctx context.Context) (*catalogDomain.Catalog, *catalogDomain.LoadReport, error)
	Save(ctx context.Context, catalog *catalogDomain.Catalog) error
}

// CatalogUseCase defines the interface for item and user management.
type CatalogUseCase interface {
	// Load replaces the in-memory catalog with the stored one. Recovered problems
	// are logged and returned in the report.
	Load(ctx context.Context) (*catalogDomain.LoadReport, error)
	Save(ctx context.Context) error

	CreateItem(ctx context.Context, input CreateItemInput) (catalogDomain.Item, error)
	UpdateItem(ctx context.Context, input UpdateItemInput) (catalogDomain.Item, error)
	RemoveItem(ctx context.Context, id string) error
	GetItem(ctx context.Context, id string) (catalogDomain.Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]catalogDomain.Item, error)

	CreateUser(ctx context.Context, input CreateUserInput) (*catalogDomain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*catalogDomain.User, error)
	RemoveUser(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (*catalogDomain.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*catalogDomain.User, error)

	Summary(ctx context.Context) (catalogDomain.Summary, error)
}

// LendingUseCase defines the interface for borrow, return and reservation operations.
type LendingUseCase interface {
	Borrow(ctx context.Context, userID, itemID string) error
	Return(ctx context.Context, userID, itemID string) error
	Reserve(ctx context.Context, userID, itemID string) error
	CancelReservation(ctx context.Context, itemID string) error
}
