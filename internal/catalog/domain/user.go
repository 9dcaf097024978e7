package domain

import (
	"fmt"
	"slices"
	"strings"

	appValidation "github.com/allisson/librarian/internal/validation"
)

// User is a library member and the ordered set of item IDs they currently hold.
type User struct {
	id            string
	firstName     string
	lastName      string
	borrowedItems []string
}

// NewUser validates the names and builds a User with the given ID and no loans.
func NewUser(id, firstName, lastName string) (*User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := ValidateUserNames(firstName, lastName); err != nil {
		return nil, err
	}
	return &User{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
	}, nil
}

// ValidateUserNames runs the constructor checks on both names.
func ValidateUserNames(firstName, lastName string) error {
	if err := validateFirstName(firstName); err != nil {
		return err
	}
	return validateLastName(lastName)
}

func validateFirstName(name string) error {
	return validateField("first_name", name, appValidation.MinTrimmedLength(minNameLength))
}

func validateLastName(name string) error {
	return validateField("last_name", name, appValidation.MinTrimmedLength(minNameLength))
}

func (u *User) ID() string        { return u.id }
func (u *User) FirstName() string { return u.firstName }
func (u *User) LastName() string  { return u.lastName }

// SetFirstName replaces the first name after validating it.
func (u *User) SetFirstName(name string) error {
	if err := validateFirstName(name); err != nil {
		return err
	}
	u.firstName = name
	return nil
}

// SetLastName replaces the last name after validating it.
func (u *User) SetLastName(name string) error {
	if err := validateLastName(name); err != nil {
		return err
	}
	u.lastName = name
	return nil
}

// BorrowedItems returns a copy of the held item IDs in borrow order, never nil.
func (u *User) BorrowedItems() []string {
	return append([]string{}, u.borrowedItems...)
}

// HasBorrowed reports whether the user holds itemID.
func (u *User) HasBorrowed(itemID string) bool {
	return slices.Contains(u.borrowedItems, itemID)
}

// AddBorrowedItem appends itemID unless it is already held.
func (u *User) AddBorrowedItem(itemID string) {
	if u.HasBorrowed(itemID) {
		return
	}
	u.borrowedItems = append(u.borrowedItems, itemID)
}

// RemoveBorrowedItem drops itemID; it is a no-op when the ID is not held.
func (u *User) RemoveBorrowedItem(itemID string) {
	u.borrowedItems = slices.DeleteFunc(u.borrowedItems, func(id string) bool {
		return id == itemID
	})
}

// renameBorrowedItem rewrites a held ID in place, keeping its position.
func (u *User) renameBorrowedItem(oldID, newID string) {
	if i := slices.Index(u.borrowedItems, oldID); i >= 0 {
		u.borrowedItems[i] = newID
	}
}

// Display renders the user record.
func (u *User) Display() string {
	borrowed := "none"
	if len(u.borrowedItems) > 0 {
		borrowed = strings.Join(u.borrowedItems, ", ")
	}
	return fmt.Sprintf(
		"User ID: %s\nFirst Name: %s\nLast Name: %s\nBorrowed Items: %s",
		u.id, u.firstName, u.lastName, borrowed,
	)
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	c := *u
	c.borrowedItems = slices.Clone(u.borrowedItems)
	return &c
}

func sameUserKey(a, b *User) bool {
	return foldEqual(a.firstName, b.firstName) && foldEqual(a.lastName, b.lastName)
}
