package usecase

import (
	"strings"

	validation "github.com/jellydator/validation"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
	appValidation "github.com/allisson/librarian/internal/validation"
)

// CreateItemInput contains the fields for a new item. ID is optional; when empty
// a T-Aa-YYYY-N identifier is generated. Genre applies to books and magazines,
// Duration (minutes) to DVDs.
type CreateItemInput struct {
	ID       string
	Type     string
	Title    string
	Author   string
	Year     int
	Genre    string
	Duration int
}

// Validate checks the input before it reaches the catalog.
func (i CreateItemInput) Validate() error {
	isDVD := strings.EqualFold(strings.TrimSpace(i.Type), string(catalogDomain.ItemTypeDVD))
	err := validation.ValidateStruct(&i,
		validation.Field(&i.Type, validation.Required.Error("type is required"), validation.By(validateItemType)),
		validation.Field(&i.Title, validation.Required.Error("title is required"), appValidation.NotBlank),
		validation.Field(&i.Author, validation.Required.Error("author is required"), appValidation.NotBlank),
		validation.Field(&i.Year, validation.Required.Error("year is required"), appValidation.Positive),
		validation.Field(&i.Genre, validation.When(!isDVD, validation.Required.Error("genre is required"))),
		validation.Field(&i.Duration, validation.When(isDVD, validation.Required.Error("duration is required"))),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateItemInput replaces fields of an existing item. Nil fields keep their value.
// NewID renames the item; loans and reservations follow the rename.
type UpdateItemInput struct {
	ID       string
	NewID    *string
	Title    *string
	Author   *string
	Year     *int
	Genre    *string
	Duration *int
}

// Validate checks the input before it reaches the catalog.
func (i UpdateItemInput) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Required.Error("id is required")),
		validation.Field(&i.NewID, validation.NilOrNotEmpty.Error("new id must not be empty")),
		validation.Field(&i.Title, validation.NilOrNotEmpty.Error("title must not be empty")),
		validation.Field(&i.Author, validation.NilOrNotEmpty.Error("author must not be empty")),
		validation.Field(&i.Year, validation.NilOrNotEmpty.Error("year must not be zero")),
		validation.Field(&i.Genre, validation.NilOrNotEmpty.Error("genre must not be empty")),
		validation.Field(&i.Duration, validation.NilOrNotEmpty.Error("duration must not be zero")),
	)
	return appValidation.WrapValidationError(err)
}

// apply returns attrs with every non-nil field of the input written over it.
func (i UpdateItemInput) apply(attrs catalogDomain.ItemAttrs) catalogDomain.ItemAttrs {
	if i.Title != nil {
		attrs.Title = *i.Title
	}
	if i.Author != nil {
		attrs.Author = *i.Author
	}
	if i.Year != nil {
		attrs.Year = *i.Year
	}
	if i.Genre != nil {
		attrs.Genre = *i.Genre
	}
	if i.Duration != nil {
		attrs.Duration = *i.Duration
	}
	return attrs
}

// CreateUserInput contains the fields for a new user. ID is optional; when empty
// a U-Ff-Ll-N identifier is generated.
type CreateUserInput struct {
	ID        string
	FirstName string
	LastName  string
}

// Validate checks the input before it reaches the catalog.
func (i CreateUserInput) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.FirstName, validation.Required.Error("first name is required"), appValidation.NotBlank),
		validation.Field(&i.LastName, validation.Required.Error("last name is required"), appValidation.NotBlank),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateUserInput replaces fields of an existing user. Nil fields keep their value.
type UpdateUserInput struct {
	ID        string
	NewID     *string
	FirstName *string
	LastName  *string
}

// Validate checks the input before it reaches the catalog.
func (i UpdateUserInput) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Required.Error("id is required")),
		validation.Field(&i.NewID, validation.NilOrNotEmpty.Error("new id must not be empty")),
		validation.Field(&i.FirstName, validation.NilOrNotEmpty.Error("first name must not be empty")),
		validation.Field(&i.LastName, validation.NilOrNotEmpty.Error("last name must not be empty")),
	)
	return appValidation.WrapValidationError(err)
}

// ItemFilter narrows ListItems. Empty fields match everything; set fields are
// combined with AND and compared case-insensitively.
type ItemFilter struct {
	Type   string
	Title  string
	Author string
}

// UserFilter narrows ListUsers the same way ItemFilter narrows ListItems.
type UserFilter struct {
	FirstName string
	LastName  string
}

func validateItemType(value interface{}) error {
	s, _ := value.(string)
	if _, err := catalogDomain.ParseItemType(s); err != nil {
		return validation.NewError("validation_item_type", "must be one of Book, DVD, Magazine")
	}
	return nil
}
