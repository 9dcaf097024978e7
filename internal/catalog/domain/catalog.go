package domain

import (
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/allisson/librarian/internal/errors"
)

// Catalog is the aggregate root owning every item and user. It enforces ID and
// natural-key uniqueness in both collections and keeps item availability in step
// with user loans: an item is unavailable iff exactly one user holds it.
//
// Catalog is not safe for concurrent use. Callers that share one across
// goroutines must serialize every call, including the reads.
type Catalog struct {
	items []Item
	users []*User
	seq   *Sequencer
}

// NewCatalog creates an empty catalog with fresh sequence counters.
func NewCatalog() *Catalog {
	return &Catalog{seq: NewSequencer()}
}

// Sequencer returns the counters used for generated IDs.
func (c *Catalog) Sequencer() *Sequencer {
	return c.seq
}

// NewItem validates attrs, allocates the next sequence number for t and builds
// the item with a generated T-Aa-YYYY-N ID. The item is not added to the catalog.
// No sequence number is consumed when validation fails.
func (c *Catalog) NewItem(t ItemType, attrs ItemAttrs) (Item, error) {
	if err := ValidateItemAttrs(t, attrs); err != nil {
		return nil, err
	}
	seq, err := c.seq.NextItem(t)
	if err != nil {
		return nil, err
	}
	return NewItem(t, GenerateItemID(t, attrs.Author, attrs.Year, seq), attrs)
}

// NewUser validates the names, allocates the next user sequence number and
// builds the user with a generated U-Ff-Ll-N ID. The user is not added to the catalog.
func (c *Catalog) NewUser(firstName, lastName string) (*User, error) {
	if err := ValidateUserNames(firstName, lastName); err != nil {
		return nil, err
	}
	seq, err := c.seq.NextUser()
	if err != nil {
		return nil, err
	}
	return NewUser(GenerateUserID(firstName, lastName, seq), firstName, lastName)
}

// AddItem appends item. It fails with ErrWrongType for anything but a *Book,
// *DVD or *Magazine, and with ErrDuplicateItem when the ID or the
// (title, author, year) triple is already taken.
func (c *Catalog) AddItem(item Item) error {
	if err := checkVariant(item); err != nil {
		return err
	}
	if err := c.checkItemConflict(item, -1); err != nil {
		return err
	}
	c.seq.Observe(item.ID())
	c.items = append(c.items, item)
	return nil
}

// UpdateItem replaces the item stored under oldID with newItem at the same
// position; the ID may change. Availability and any reservation carry over from
// the replaced item, and a holder's loan follows an ID change.
func (c *Catalog) UpdateItem(oldID string, newItem Item) error {
	if err := checkVariant(newItem); err != nil {
		return err
	}
	idx := c.itemIndex(oldID)
	if err := c.checkItemConflict(newItem, idx); err != nil {
		return err
	}
	if idx < 0 {
		return apperrors.Wrapf(ErrItemNotFound, "item %q", oldID)
	}

	old := c.items[idx]
	newItem.setAvailable(old.IsAvailable())
	if old.ID() != newItem.ID() {
		if holder := c.holderOf(old.ID()); holder != nil {
			holder.renameBorrowedItem(old.ID(), newItem.ID())
		}
	}
	if oldR, ok := old.(Reservable); ok && oldR.ReservedBy() != "" {
		if newR, ok := newItem.(Reservable); ok && newR.ReservedBy() == "" {
			if err := newR.Reserve(oldR.ReservedBy()); err != nil {
				return err
			}
		}
	}

	c.seq.Observe(newItem.ID())
	c.items[idx] = newItem
	return nil
}

// RemoveItem deletes the item. It fails with ErrItemNotAvailable while the item is lent.
func (c *Catalog) RemoveItem(id string) error {
	idx := c.itemIndex(id)
	if idx < 0 {
		return apperrors.Wrapf(ErrItemNotFound, "item %q", id)
	}
	if !c.items[idx].IsAvailable() {
		return apperrors.Wrapf(ErrItemNotAvailable, "item %q is lent out", id)
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	return nil
}

// AddUser appends user. It fails with ErrDuplicateUser when the ID or the
// (first name, last name) pair is already taken.
func (c *Catalog) AddUser(user *User) error {
	if user == nil {
		return fmt.Errorf("%w: user is nil", ErrWrongType)
	}
	if err := c.checkUserConflict(user, -1); err != nil {
		return err
	}
	c.seq.Observe(user.ID())
	c.users = append(c.users, user)
	return nil
}

// UpdateUser replaces the user stored under oldID with newUser at the same
// position. Loans carry over from the replaced user and reservations follow an ID change.
func (c *Catalog) UpdateUser(oldID string, newUser *User) error {
	if newUser == nil {
		return fmt.Errorf("%w: user is nil", ErrWrongType)
	}
	idx := c.userIndex(oldID)
	if err := c.checkUserConflict(newUser, idx); err != nil {
		return err
	}
	if idx < 0 {
		return apperrors.Wrapf(ErrUserNotFound, "user %q", oldID)
	}

	old := c.users[idx]
	if old.ID() != newUser.ID() {
		if err := validateReservedBy(newUser.ID()); err != nil {
			return err
		}
		if err := c.moveReservations(old.ID(), newUser.ID()); err != nil {
			return err
		}
	}
	newUser.borrowedItems = slices.Clone(old.borrowedItems)

	c.seq.Observe(newUser.ID())
	c.users[idx] = newUser
	return nil
}

// RemoveUser deletes the user and cancels the reservations they hold.
// It fails with ErrUserHasBorrowedItems while the user holds any item.
func (c *Catalog) RemoveUser(id string) error {
	idx := c.userIndex(id)
	if idx < 0 {
		return apperrors.Wrapf(ErrUserNotFound, "user %q", id)
	}
	if n := len(c.users[idx].borrowedItems); n > 0 {
		return apperrors.Wrapf(ErrUserHasBorrowedItems, "user %q holds %d item(s)", id, n)
	}
	for _, item := range c.items {
		if r, ok := item.(Reservable); ok && r.ReservedBy() == id {
			r.CancelReservation()
		}
	}
	c.users = slices.Delete(c.users, idx, idx+1)
	return nil
}

// Item returns the item with exactly this ID.
func (c *Catalog) Item(id string) (Item, bool) {
	if idx := c.itemIndex(id); idx >= 0 {
		return c.items[idx], true
	}
	return nil, false
}

// User returns the user with exactly this ID.
func (c *Catalog) User(id string) (*User, bool) {
	if idx := c.userIndex(id); idx >= 0 {
		return c.users[idx], true
	}
	return nil, false
}

// Items returns the items in insertion order. The slice is a copy; the items are not.
func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

// Users returns the users in insertion order. The slice is a copy; the users are not.
func (c *Catalog) Users() []*User {
	return slices.Clone(c.users)
}

// ItemsByTitle returns items whose title matches case-insensitively.
func (c *Catalog) ItemsByTitle(title string) []Item {
	return c.filterItems(func(item Item) bool { return strings.EqualFold(item.Title(), title) })
}

// ItemsByAuthor returns items whose author matches case-insensitively.
func (c *Catalog) ItemsByAuthor(author string) []Item {
	return c.filterItems(func(item Item) bool { return strings.EqualFold(item.Author(), author) })
}

// ItemsByType returns items of the given variant.
func (c *Catalog) ItemsByType(t ItemType) []Item {
	return c.filterItems(func(item Item) bool { return item.Type() == t })
}

// UsersByFirstName returns users whose first name matches case-insensitively.
func (c *Catalog) UsersByFirstName(name string) []*User {
	return c.filterUsers(func(u *User) bool { return strings.EqualFold(u.firstName, name) })
}

// UsersByLastName returns users whose last name matches case-insensitively.
func (c *Catalog) UsersByLastName(name string) []*User {
	return c.filterUsers(func(u *User) bool { return strings.EqualFold(u.lastName, name) })
}

// Summary counts the catalog contents.
type Summary struct {
	Books     int `json:"books"`
	DVDs      int `json:"dvds"`
	Magazines int `json:"magazines"`
	Items     int `json:"items"`
	Users     int `json:"users"`
	Lent      int `json:"lent"`
}

// Summary returns per-type item counts, user count and lent item count.
func (c *Catalog) Summary() Summary {
	s := Summary{Items: len(c.items), Users: len(c.users)}
	for _, item := range c.items {
		switch item.Type() {
		case ItemTypeBook:
			s.Books++
		case ItemTypeDVD:
			s.DVDs++
		case ItemTypeMagazine:
			s.Magazines++
		}
		if !item.IsAvailable() {
			s.Lent++
		}
	}
	return s
}

// Verify checks every catalog invariant and returns the violations joined.
func (c *Catalog) Verify() error {
	var errs []error
	for i, item := range c.items {
		if err := c.checkItemConflict(item, i); err != nil {
			errs = append(errs, err)
		}
		holders := 0
		for _, u := range c.users {
			if u.HasBorrowed(item.ID()) {
				holders++
			}
		}
		switch {
		case holders > 1:
			errs = append(errs, fmt.Errorf("item %q held by %d users", item.ID(), holders))
		case holders == 1 && item.IsAvailable():
			errs = append(errs, fmt.Errorf("item %q is held but marked available", item.ID()))
		case holders == 0 && !item.IsAvailable():
			errs = append(errs, fmt.Errorf("item %q is unavailable but nobody holds it", item.ID()))
		}
	}
	for i, u := range c.users {
		if err := c.checkUserConflict(u, i); err != nil {
			errs = append(errs, err)
		}
		for _, itemID := range u.borrowedItems {
			if c.itemIndex(itemID) < 0 {
				errs = append(errs, fmt.Errorf("user %q holds unknown item %q", u.ID(), itemID))
			}
		}
	}
	return apperrors.Join(errs...)
}

func checkVariant(item Item) error {
	switch v := item.(type) {
	case *Book:
		if v != nil {
			return nil
		}
	case *DVD:
		if v != nil {
			return nil
		}
	case *Magazine:
		if v != nil {
			return nil
		}
	}
	return fmt.Errorf("%w: expected Book, DVD or Magazine, got %T", ErrWrongType, item)
}

// checkItemConflict compares item with every stored item except the one at skip.
func (c *Catalog) checkItemConflict(item Item, skip int) error {
	for i, other := range c.items {
		if i == skip {
			continue
		}
		if other.ID() == item.ID() {
			return apperrors.Wrapf(ErrDuplicateItem, "id %q", item.ID())
		}
		if sameNaturalKey(other, item) {
			return apperrors.Wrapf(
				ErrDuplicateItem,
				"%q by %s (%d) matches item %q",
				item.Title(), item.Author(), item.Year(), other.ID(),
			)
		}
	}
	return nil
}

// checkUserConflict compares user with every stored user except the one at skip.
func (c *Catalog) checkUserConflict(user *User, skip int) error {
	for i, other := range c.users {
		if i == skip {
			continue
		}
		if other.ID() == user.ID() {
			return apperrors.Wrapf(ErrDuplicateUser, "id %q", user.ID())
		}
		if sameUserKey(other, user) {
			return apperrors.Wrapf(
				ErrDuplicateUser,
				"%s %s matches user %q",
				user.FirstName(), user.LastName(), other.ID(),
			)
		}
	}
	return nil
}

func (c *Catalog) itemIndex(id string) int {
	return slices.IndexFunc(c.items, func(item Item) bool { return item.ID() == id })
}

func (c *Catalog) userIndex(id string) int {
	return slices.IndexFunc(c.users, func(u *User) bool { return u.ID() == id })
}

// moveReservations hands every reservation held by fromID over to toID.
func (c *Catalog) moveReservations(fromID, toID string) error {
	for _, item := range c.items {
		r, ok := item.(Reservable)
		if !ok || r.ReservedBy() != fromID {
			continue
		}
		r.CancelReservation()
		if err := r.Reserve(toID); err != nil {
			return apperrors.Wrapf(err, "moving reservation on item %q", item.ID())
		}
	}
	return nil
}

// holderOf returns the user holding itemID, or nil.
func (c *Catalog) holderOf(itemID string) *User {
	for _, u := range c.users {
		if u.HasBorrowed(itemID) {
			return u
		}
	}
	return nil
}

func (c *Catalog) filterItems(match func(Item) bool) []Item {
	out := []Item{}
	for _, item := range c.items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Catalog) filterUsers(match func(*User) bool) []*User {
	out := []*User{}
	for _, u := range c.users {
		if match(u) {
			out = append(out, u)
		}
	}
	return out
}
