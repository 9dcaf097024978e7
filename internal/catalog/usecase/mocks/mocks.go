// Package mocks provides mock implementations of the catalog use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
	"github.com/allisson/librarian/internal/catalog/usecase"
)

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

// Load mocks the Load method of CatalogRepository.
func (m *MockCatalogRepository) Load(
	ctx context.Context,
) (*catalogDomain.Catalog, *catalogDomain.LoadReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*catalogDomain.Catalog), args.Get(1).(*catalogDomain.LoadReport), args.Error(2)
}

// Save mocks the Save method of CatalogRepository.
func (m *MockCatalogRepository) Save(ctx context.Context, catalog *catalogDomain.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

// MockCatalogUseCase is a mock implementation of CatalogUseCase.
type MockCatalogUseCase struct {
	mock.Mock
}

// Load mocks the Load method of CatalogUseCase.
func (m *MockCatalogUseCase) Load(ctx context.Context) (*catalogDomain.LoadReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.LoadReport), args.Error(1)
}

// Save mocks the Save method of CatalogUseCase.
func (m *MockCatalogUseCase) Save(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CreateItem mocks the CreateItem method of CatalogUseCase.
func (m *MockCatalogUseCase) CreateItem(
	ctx context.Context,
	input usecase.CreateItemInput,
) (catalogDomain.Item, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(catalogDomain.Item), args.Error(1)
}

// UpdateItem mocks the UpdateItem method of CatalogUseCase.
func (m *MockCatalogUseCase) UpdateItem(
	ctx context.Context,
	input usecase.UpdateItemInput,
) (catalogDomain.Item, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(catalogDomain.Item), args.Error(1)
}

// RemoveItem mocks the RemoveItem method of CatalogUseCase.
func (m *MockCatalogUseCase) RemoveItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GetItem mocks the GetItem method of CatalogUseCase.
func (m *MockCatalogUseCase) GetItem(ctx context.Context, id string) (catalogDomain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(catalogDomain.Item), args.Error(1)
}

// ListItems mocks the ListItems method of CatalogUseCase.
func (m *MockCatalogUseCase) ListItems(
	ctx context.Context,
	filter usecase.ItemFilter,
) ([]catalogDomain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogDomain.Item), args.Error(1)
}

// CreateUser mocks the CreateUser method of CatalogUseCase.
func (m *MockCatalogUseCase) CreateUser(
	ctx context.Context,
	input usecase.CreateUserInput,
) (*catalogDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.User), args.Error(1)
}

// UpdateUser mocks the UpdateUser method of CatalogUseCase.
func (m *MockCatalogUseCase) UpdateUser(
	ctx context.Context,
	input usecase.UpdateUserInput,
) (*catalogDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.User), args.Error(1)
}

// RemoveUser mocks the RemoveUser method of CatalogUseCase.
func (m *MockCatalogUseCase) RemoveUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GetUser mocks the GetUser method of CatalogUseCase.
func (m *MockCatalogUseCase) GetUser(ctx context.Context, id string) (*catalogDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.User), args.Error(1)
}

// ListUsers mocks the ListUsers method of CatalogUseCase.
func (m *MockCatalogUseCase) ListUsers(
	ctx context.Context,
	filter usecase.UserFilter,
) ([]*catalogDomain.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalogDomain.User), args.Error(1)
}

// Summary mocks the Summary method of CatalogUseCase.
func (m *MockCatalogUseCase) Summary(ctx context.Context) (catalogDomain.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(catalogDomain.Summary), args.Error(1)
}

// MockLendingUseCase is a mock implementation of LendingUseCase.
type MockLendingUseCase struct {
	mock.Mock
}

// Borrow mocks the Borrow method of LendingUseCase.
func (m *MockLendingUseCase) Borrow(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

// Return mocks the Return method of LendingUseCase.
func (m *MockLendingUseCase) Return(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

// Reserve mocks the Reserve method of LendingUseCase.
func (m *MockLendingUseCase) Reserve(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

// CancelReservation mocks the CancelReservation method of LendingUseCase.
func (m *MockLendingUseCase) CancelReservation(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

var (
	_ usecase.CatalogRepository = (*MockCatalogRepository)(nil)
	_ usecase.CatalogUseCase    = (*MockCatalogUseCase)(nil)
	_ usecase.LendingUseCase    = (*MockLendingUseCase)(nil)
)
