package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
	catalogUseCase "github.com/allisson/librarian/internal/catalog/usecase"
	catalogMocks "github.com/allisson/librarian/internal/catalog/usecase/mocks"
)

func newTestUser(t *testing.T, borrowed ...string) *catalogDomain.User {
	t.Helper()
	user, err := catalogDomain.NewUser("U-Jo-Sm-1", "John", "Smith")
	require.NoError(t, err)
	for _, id := range borrowed {
		user.AddBorrowedItem(id)
	}
	return user
}

func TestRunAddUser(t *testing.T) {
	ctx := context.Background()
	input := catalogUseCase.CreateUserInput{FirstName: "John", LastName: "Smith"}

	t.Run("text", func(t *testing.T) {
		mockUseCase := &catalogMocks.MockCatalogUseCase{}
		mockUseCase.On("Load", ctx).Return(&catalogDomain.LoadReport{}, nil).Once()
		mockUseCase.On("CreateUser", ctx, input).Return(newTestUser(t), nil).Once()
		mockUseCase.On("Save", ctx).Return(nil).Once()

		var out bytes.Buffer
		err := RunAddUser(ctx, mockUseCase, newTestLogger(), input, "text", IOTuple{Writer: &out})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "User ID: U-Jo-Sm-1")
		assert.Contains(t, out.String(), "Borrowed Items: none")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		mockUseCase := &catalogMocks.MockCatalogUseCase{}
		mockUseCase.On("Load", ctx).Return(&catalogDomain.LoadReport{}, nil).Once()
		mockUseCase.On("CreateUser", ctx, input).Return(nil, catalogDomain.ErrDuplicateUser).Once()

		err := RunAddUser(ctx, mockUseCase, newTestLogger(), input, "text", IOTuple{Writer: &bytes.Buffer{}})

		assert.ErrorIs(t, err, catalogDomain.ErrDuplicateUser)
		assert.ErrorContains(t, err, "failed to add user")
		mockUseCase.AssertNotCalled(t, "Save", ctx)
	})
}

func TestRunUpdateUser(t *testing.T) {
	ctx := context.Background()
	lastName := "Smith"
	input := catalogUseCase.UpdateUserInput{ID: "U-Jo-Sm-1", LastName: &lastName}

	mockUseCase := &catalogMocks.MockCatalogUseCase{}
	mockUseCase.On("Load", ctx).Return(&catalogDomain.LoadReport{}, nil).Once()
	mockUseCase.On("UpdateUser", ctx, input).Return(newTestUser(t, "B-FH-1965-1"), nil).Once()
	mockUseCase.On("Save", ctx).Return(nil).Once()

	var out bytes.Buffer
	err := RunUpdateUser(ctx, mockUseCase, newTestLogger(), input, "json", IOTuple{Writer: &out})
	require.NoError(t, err)

	var got userOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, userOutput{
		ID:            "U-Jo-Sm-1",
		FirstName:     "John",
		LastName:      "Smith",
		BorrowedItems: []string{"B-FH-1965-1"},
	}, got)
	mockUseCase.AssertExpectations(t)
}

func TestRunRemoveUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &catalogMocks.MockCatalogUseCase{}
		mockUseCase.On("Load", ctx).Return(&catalogDomain.LoadReport{}, nil).Once()
		mockUseCase.On("RemoveUser", ctx, "U-Jo-Sm-1").Return(nil).Once()
		mockUseCase.On("Save", ctx).Return(nil).Once()

		var out bytes.Buffer
		err := RunRemoveUser(ctx, mockUseCase, newTestLogger(), "U-Jo-Sm-1", "text", IOTuple{Writer: &out})

		require.NoError(t, err)
		assert.Equal(t, "User U-Jo-Sm-1 removed.\n", out.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("has-borrowed-items", func(t *testing.T) {
		mockUseCase := &catalogMocks.MockCatalogUseCase{}
		mockUseCase.On("Load", ctx).Return(&catalogDomain.LoadReport{}, nil).Once()
		mockUseCase.On("RemoveUser", ctx, "U-Jo-Sm-1").Return(catalogDomain.ErrUserHasBorrowedItems).Once()

		err := RunRemoveUser(ctx, mockUseCase, newTestLogger(), "U-Jo-Sm-1", "text", IOTuple{Writer: &bytes.Buffer{}})

		assert.ErrorIs(t, err, catalogDomain.ErrUserHasBorrowedItems)
		mockUseCase.AssertNotCalled(t, "Save", ctx)
	})
}

func TestRunGetUser(t *testing.T) {
	ctx := context.Background()
	mockUseCase := &catalogMocks.MockCatalogUseCase{}
	mockUseCase.On("Load", ctx).Return(&catalogDomain.LoadReport{}, nil).Once()
	mockUseCase.On("GetUser", ctx, "U-Jo-Sm-1").Return(newTestUser(t, "B-FH-1965-1", "D-RS-1979-1"), nil).Once()

	var out bytes.Buffer
	err := RunGetUser(ctx, mockUseCase, newTestLogger(), "U-Jo-Sm-1", "text", IOTuple{Writer: &out})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Borrowed Items: B-FH-1965-1, D-RS-1979-1")
}

func TestRunListUsers(t *testing.T) {
	ctx := context.Background()
	filter := catalogUseCase.UserFilter{LastName: "Smith"}

	t.Run("json-empty-borrowed-is-array", func(t *testing.T) {
		mockUseCase := &catalogMocks.MockCatalogUseCase{}
		mockUseCase.On("Load", ctx).Return(&catalogDomain.LoadReport{}, nil).Once()
		mockUseCase.On("ListUsers", ctx, filter).Return([]*catalogDomain.User{newTestUser(t)}, nil).Once()

		var out bytes.Buffer
		err := RunListUsers(ctx, mockUseCase, newTestLogger(), filter, "json", IOTuple{Writer: &out})

		require.NoError(t, err)
		assert.Contains(t, out.String(), `"borrowed_items": []`)
	})

	t.Run("empty-text", func(t *testing.T) {
		mockUseCase := &catalogMocks.MockCatalogUseCase{}
		mockUseCase.On("Load", ctx).Return(&catalogDomain.LoadReport{}, nil).Once()
		mockUseCase.On("ListUsers", ctx, filter).Return([]*catalogDomain.User{}, nil).Once()

		var out bytes.Buffer
		err := RunListUsers(ctx, mockUseCase, newTestLogger(), filter, "text", IOTuple{Writer: &out})

		require.NoError(t, err)
		assert.Equal(t, "No users found.\n", out.String())
	})
}
