package domain

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/librarian/internal/validation"
)

// Item is the contract shared by every catalog item variant (*Book, *DVD, *Magazine).
// The interface is sealed: only variants defined in this package implement it.
type Item interface {
	ID() string
	Type() ItemType
	Title() string
	Author() string
	Year() int
	IsAvailable() bool

	// Attrs returns a snapshot of every field, including the variant payload.
	Attrs() ItemAttrs

	// Display renders the item as a deterministic multi-line record.
	Display() string

	SetTitle(title string) error
	SetAuthor(author string) error
	SetYear(year int) error

	setAvailable(available bool)
	clone() Item
}

// ItemAttrs carries the field values used to construct an item. Genre applies to
// books and magazines, Duration (minutes) to DVDs; the other is ignored.
type ItemAttrs struct {
	Title     string
	Author    string
	Year      int
	Available bool
	Genre     string
	Duration  int
}

// NewItem builds the variant named by t with an explicit ID.
func NewItem(t ItemType, id string, attrs ItemAttrs) (Item, error) {
	switch t {
	case ItemTypeBook:
		return NewBook(id, attrs)
	case ItemTypeDVD:
		return NewDVD(id, attrs)
	case ItemTypeMagazine:
		return NewMagazine(id, attrs)
	default:
		return nil, t.Validate()
	}
}

// CloneItem returns a deep copy of item that shares no state with the original.
func CloneItem(item Item) Item {
	if item == nil {
		return nil
	}
	return item.clone()
}

// ValidateItemAttrs runs the constructor checks for the variant without building it.
// Fields are checked in a fixed order: title, author, year, variant field.
func ValidateItemAttrs(t ItemType, attrs ItemAttrs) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := validateTitle(attrs.Title); err != nil {
		return err
	}
	if err := validateAuthor(attrs.Author); err != nil {
		return err
	}
	if err := validateYear(attrs.Year); err != nil {
		return err
	}
	switch t {
	case ItemTypeDVD:
		return validateDuration(attrs.Duration)
	default:
		return validateGenre(attrs.Genre)
	}
}

func validateItem(t ItemType, id string, attrs ItemAttrs) error {
	if err := validateID(id); err != nil {
		return err
	}
	return ValidateItemAttrs(t, attrs)
}

func validateField(field string, value interface{}, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return newFieldError(field, ErrInvalidValue, err.Error())
	}
	return nil
}

func validateID(id string) error {
	return validateField("id", id, appValidation.NotBlank)
}

func validateTitle(title string) error {
	return validateField("title", title, appValidation.NotBlank)
}

func validateAuthor(author string) error {
	return validateField("author", author, appValidation.MinTrimmedLength(minNameLength))
}

func validateYear(year int) error {
	return validateField("year", year, appValidation.Positive)
}

func validateGenre(genre string) error {
	return validateField("genre", genre, appValidation.NotBlank)
}

func validateDuration(duration int) error {
	return validateField("duration", duration, appValidation.Positive)
}

// itemBase holds the fields common to every variant.
type itemBase struct {
	id        string
	itemType  ItemType
	title     string
	author    string
	year      int
	available bool
}

func newItemBase(t ItemType, id string, attrs ItemAttrs) itemBase {
	return itemBase{
		id:        id,
		itemType:  t,
		title:     attrs.Title,
		author:    attrs.Author,
		year:      attrs.Year,
		available: attrs.Available,
	}
}

func (b *itemBase) ID() string        { return b.id }
func (b *itemBase) Type() ItemType    { return b.itemType }
func (b *itemBase) Title() string     { return b.title }
func (b *itemBase) Author() string    { return b.author }
func (b *itemBase) Year() int         { return b.year }
func (b *itemBase) IsAvailable() bool { return b.available }

// SetTitle replaces the title after validating it.
func (b *itemBase) SetTitle(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	b.title = title
	return nil
}

// SetAuthor replaces the author after validating it. The ID is not regenerated.
func (b *itemBase) SetAuthor(author string) error {
	if err := validateAuthor(author); err != nil {
		return err
	}
	b.author = author
	return nil
}

// SetYear replaces the year after validating it.
func (b *itemBase) SetYear(year int) error {
	if err := validateYear(year); err != nil {
		return err
	}
	b.year = year
	return nil
}

func (b *itemBase) setAvailable(available bool) {
	b.available = available
}

func (b *itemBase) attrs() ItemAttrs {
	return ItemAttrs{
		Title:     b.title,
		Author:    b.author,
		Year:      b.year,
		Available: b.available,
	}
}

// display writes the common lines, the variant line and, when set, the reservation.
func (b *itemBase) display(variantLine, reservedBy string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Item ID: %s\n", b.id)
	fmt.Fprintf(&sb, "Item type: %s\n", b.itemType)
	fmt.Fprintf(&sb, "Title: %s\n", b.title)
	fmt.Fprintf(&sb, "Author: %s\n", b.author)
	fmt.Fprintf(&sb, "Year: %d\n", b.year)
	fmt.Fprintf(&sb, "Available: %t\n", b.available)
	sb.WriteString(variantLine)
	if reservedBy != "" {
		fmt.Fprintf(&sb, "\nReserved by: %s", reservedBy)
	}
	return sb.String()
}

// sameNaturalKey reports whether two items share (title, author, year),
// comparing text case-insensitively after trimming.
func sameNaturalKey(a, b Item) bool {
	return a.Year() == b.Year() &&
		foldEqual(a.Title(), b.Title()) &&
		foldEqual(a.Author(), b.Author())
}

func foldEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
