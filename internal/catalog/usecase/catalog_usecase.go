package usecase

import (
	"context"
	"log/slog"
	"strings"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
	apperrors "github.com/allisson/librarian/internal/errors"
)

// catalogUseCase implements the CatalogUseCase interface.
type catalogUseCase struct {
	session *Session
}

// NewCatalogUseCase creates a CatalogUseCase over the shared session.
func NewCatalogUseCase(session *Session) CatalogUseCase {
	return &catalogUseCase{session: session}
}

// Load replaces the session catalog with the stored one.
func (c *catalogUseCase) Load(ctx context.Context) (*catalogDomain.LoadReport, error) {
	return c.session.load(ctx)
}

// Save writes the session catalog to the repository.
func (c *catalogUseCase) Save(ctx context.Context) error {
	return c.session.save(ctx)
}

// CreateItem validates the input, builds the item and adds it. New items are always available.
func (c *catalogUseCase) CreateItem(ctx context.Context, input CreateItemInput) (catalogDomain.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	itemType, err := catalogDomain.ParseItemType(input.Type)
	if err != nil {
		return nil, err
	}
	attrs := catalogDomain.ItemAttrs{
		Title:     input.Title,
		Author:    input.Author,
		Year:      input.Year,
		Available: true,
		Genre:     input.Genre,
		Duration:  input.Duration,
	}

	var created catalogDomain.Item
	err = c.session.run(func(catalog *catalogDomain.Catalog) error {
		var item catalogDomain.Item
		var err error
		if input.ID != "" {
			item, err = catalogDomain.NewItem(itemType, input.ID, attrs)
		} else {
			item, err = catalog.NewItem(itemType, attrs)
		}
		if err != nil {
			return err
		}
		if err := catalog.AddItem(item); err != nil {
			return err
		}
		created = catalogDomain.CloneItem(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.session.logger.Info("item created",
		slog.String("item_id", created.ID()),
		slog.String("type", created.Type().String()),
	)
	return created, nil
}

// UpdateItem rebuilds the item from its current fields plus the input and
// replaces it. The variant cannot change.
func (c *catalogUseCase) UpdateItem(ctx context.Context, input UpdateItemInput) (catalogDomain.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated catalogDomain.Item
	err := c.session.run(func(catalog *catalogDomain.Catalog) error {
		current, ok := catalog.Item(input.ID)
		if !ok {
			return apperrors.Wrapf(catalogDomain.ErrItemNotFound, "item %q", input.ID)
		}
		newID := current.ID()
		if input.NewID != nil {
			newID = *input.NewID
		}
		item, err := catalogDomain.NewItem(current.Type(), newID, input.apply(current.Attrs()))
		if err != nil {
			return err
		}
		if err := catalog.UpdateItem(input.ID, item); err != nil {
			return err
		}
		updated = catalogDomain.CloneItem(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.session.logger.Info("item updated",
		slog.String("item_id", input.ID),
		slog.String("new_item_id", updated.ID()),
	)
	return updated, nil
}

// RemoveItem deletes an item that is not lent out.
func (c *catalogUseCase) RemoveItem(ctx context.Context, id string) error {
	err := c.session.run(func(catalog *catalogDomain.Catalog) error {
		return catalog.RemoveItem(id)
	})
	if err != nil {
		return err
	}
	c.session.logger.Info("item removed", slog.String("item_id", id))
	return nil
}

// GetItem returns a copy of the item.
func (c *catalogUseCase) GetItem(ctx context.Context, id string) (catalogDomain.Item, error) {
	var found catalogDomain.Item
	err := c.session.run(func(catalog *catalogDomain.Catalog) error {
		item, ok := catalog.Item(id)
		if !ok {
			return apperrors.Wrapf(catalogDomain.ErrItemNotFound, "item %q", id)
		}
		found = catalogDomain.CloneItem(item)
		return nil
	})
	return found, err
}

// ListItems returns copies of the items matching filter, in insertion order.
func (c *catalogUseCase) ListItems(ctx context.Context, filter ItemFilter) ([]catalogDomain.Item, error) {
	var itemType catalogDomain.ItemType
	if filter.Type != "" {
		t, err := catalogDomain.ParseItemType(filter.Type)
		if err != nil {
			return nil, err
		}
		itemType = t
	}

	items := []catalogDomain.Item{}
	err := c.session.run(func(catalog *catalogDomain.Catalog) error {
		candidates := catalog.Items()
		if itemType != "" {
			candidates = catalog.ItemsByType(itemType)
		}
		for _, item := range candidates {
			if !matches(item.Title(), filter.Title) || !matches(item.Author(), filter.Author) {
				continue
			}
			items = append(items, catalogDomain.CloneItem(item))
		}
		return nil
	})
	return items, err
}

// CreateUser validates the input, builds the user and adds it.
func (c *catalogUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*catalogDomain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *catalogDomain.User
	err := c.session.run(func(catalog *catalogDomain.Catalog) error {
		var user *catalogDomain.User
		var err error
		if input.ID != "" {
			user, err = catalogDomain.NewUser(input.ID, input.FirstName, input.LastName)
		} else {
			user, err = catalog.NewUser(input.FirstName, input.LastName)
		}
		if err != nil {
			return err
		}
		if err := catalog.AddUser(user); err != nil {
			return err
		}
		created = user.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.session.logger.Info("user created", slog.String("user_id", created.ID()))
	return created, nil
}

// UpdateUser rebuilds the user from its current fields plus the input and replaces it.
func (c *catalogUseCase) UpdateUser(ctx context.Context, input UpdateUserInput) (*catalogDomain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *catalogDomain.User
	err := c.session.run(func(catalog *catalogDomain.Catalog) error {
		current, ok := catalog.User(input.ID)
		if !ok {
			return apperrors.Wrapf(catalogDomain.ErrUserNotFound, "user %q", input.ID)
		}
		newID, firstName, lastName := current.ID(), current.FirstName(), current.LastName()
		if input.NewID != nil {
			newID = *input.NewID
		}
		if input.FirstName != nil {
			firstName = *input.FirstName
		}
		if input.LastName != nil {
			lastName = *input.LastName
		}

		user, err := catalogDomain.NewUser(newID, firstName, lastName)
		if err != nil {
			return err
		}
		if err := catalog.UpdateUser(input.ID, user); err != nil {
			return err
		}
		updated = user.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.session.logger.Info("user updated",
		slog.String("user_id", input.ID),
		slog.String("new_user_id", updated.ID()),
	)
	return updated, nil
}

// RemoveUser deletes a user with no outstanding loans.
func (c *catalogUseCase) RemoveUser(ctx context.Context, id string) error {
	err := c.session.run(func(catalog *catalogDomain.Catalog) error {
		return catalog.RemoveUser(id)
	})
	if err != nil {
		return err
	}
	c.session.logger.Info("user removed", slog.String("user_id", id))
	return nil
}

// GetUser returns a copy of the user.
func (c *catalogUseCase) GetUser(ctx context.Context, id string) (*catalogDomain.User, error) {
	var found *catalogDomain.User
	err := c.session.run(func(catalog *catalogDomain.Catalog) error {
		user, ok := catalog.User(id)
		if !ok {
			return apperrors.Wrapf(catalogDomain.ErrUserNotFound, "user %q", id)
		}
		found = user.Clone()
		return nil
	})
	return found, err
}

// ListUsers returns copies of the users matching filter, in insertion order.
func (c *catalogUseCase) ListUsers(ctx context.Context, filter UserFilter) ([]*catalogDomain.User, error) {
	users := []*catalogDomain.User{}
	err := c.session.run(func(catalog *catalogDomain.Catalog) error {
		for _, user := range catalog.Users() {
			if !matches(user.FirstName(), filter.FirstName) || !matches(user.LastName(), filter.LastName) {
				continue
			}
			users = append(users, user.Clone())
		}
		return nil
	})
	return users, err
}

// Summary returns the catalog counts.
func (c *catalogUseCase) Summary(ctx context.Context) (catalogDomain.Summary, error) {
	var summary catalogDomain.Summary
	err := c.session.run(func(catalog *catalogDomain.Catalog) error {
		summary = catalog.Summary()
		return nil
	})
	return summary, err
}

// matches reports whether value equals want case-insensitively; an empty want matches anything.
func matches(value, want string) bool {
	return want == "" || strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(want))
}
