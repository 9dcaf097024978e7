// Package domain defines the catalog entities (items and users), the identifier
// codec that names them, and the Catalog aggregate that enforces uniqueness and
// lending invariants across both collections.
package domain

import (
	"strings"
)

// ItemType identifies an item variant. The string value is the exact spelling
// written to item records.
type ItemType string

const (
	ItemTypeBook     ItemType = "Book"
	ItemTypeDVD      ItemType = "DVD"
	ItemTypeMagazine ItemType = "Magazine"
)

// ItemTypes lists every variant in display order.
var ItemTypes = []ItemType{ItemTypeBook, ItemTypeDVD, ItemTypeMagazine}

// Validate checks if the item type is one of the known variants.
func (t ItemType) Validate() error {
	switch t {
	case ItemTypeBook, ItemTypeDVD, ItemTypeMagazine:
		return nil
	default:
		return newFieldError("type", ErrInvalidValue, "must be one of Book, DVD, Magazine")
	}
}

// String returns the record spelling of the item type.
func (t ItemType) String() string {
	return string(t)
}

// Tag returns the single-letter prefix used in generated item IDs.
func (t ItemType) Tag() string {
	switch t {
	case ItemTypeBook:
		return "B"
	case ItemTypeDVD:
		return "D"
	case ItemTypeMagazine:
		return "M"
	default:
		return ""
	}
}

// ParseItemType resolves an item type name case-insensitively.
func ParseItemType(s string) (ItemType, error) {
	for _, t := range ItemTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", newFieldError("type", ErrInvalidValue, "unknown item type "+quote(s))
}

func itemTypeFromTag(tag string) (ItemType, bool) {
	for _, t := range ItemTypes {
		if t.Tag() == tag {
			return t, true
		}
	}
	return "", false
}

// Minimum trimmed length of author and user names.
const minNameLength = 2

// userSequence is the Sequencer key for user IDs.
const userSequence = "User"
