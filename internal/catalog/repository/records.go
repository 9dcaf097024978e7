package repository

import (
	"bytes"
	"encoding/json"
	"math"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
)

// itemRecord is the on-disk shape of an item. Genre is written for books and
// magazines, Duration for DVDs.
type itemRecord struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Year       int     `json:"year"`
	Available  bool    `json:"available"`
	Genre      *string `json:"genre,omitempty"`
	Duration   *int    `json:"duration,omitempty"`
	ReservedBy string  `json:"reserved_by,omitempty"`
}

// userRecord is the on-disk shape of a user.
type userRecord struct {
	ID            string   `json:"id"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	BorrowedItems []string `json:"borrowed_items"`
}

func newItemRecord(item catalogDomain.Item) itemRecord {
	attrs := item.Attrs()
	rec := itemRecord{
		ID:        item.ID(),
		Type:      item.Type().String(),
		Title:     attrs.Title,
		Author:    attrs.Author,
		Year:      attrs.Year,
		Available: attrs.Available,
	}
	if item.Type() == catalogDomain.ItemTypeDVD {
		rec.Duration = &attrs.Duration
	} else {
		rec.Genre = &attrs.Genre
	}
	if r, ok := item.(catalogDomain.Reservable); ok {
		rec.ReservedBy = r.ReservedBy()
	}
	return rec
}

func newUserRecord(user *catalogDomain.User) userRecord {
	return userRecord{
		ID:            user.ID(),
		FirstName:     user.FirstName(),
		LastName:      user.LastName(),
		BorrowedItems: user.BorrowedItems(),
	}
}

// rawRecord holds one undecoded JSON object so every field can be checked for
// presence and JSON type before an entity is built from it.
type rawRecord map[string]json.RawMessage

// decodedItem is an item record that passed field checks, plus the pending
// reservation to restore once users are loaded.
type decodedItem struct {
	item       catalogDomain.Item
	reservedBy string
}

func decodeItem(rec rawRecord) (decodedItem, error) {
	id, err := rec.requiredString("id")
	if err != nil {
		return decodedItem{}, err
	}
	typeName, err := rec.requiredString("type")
	if err != nil {
		return decodedItem{}, err
	}
	itemType, err := catalogDomain.ParseItemType(typeName)
	if err != nil {
		return decodedItem{}, err
	}

	var attrs catalogDomain.ItemAttrs
	if attrs.Title, err = rec.requiredString("title"); err != nil {
		return decodedItem{}, err
	}
	if attrs.Author, err = rec.requiredString("author"); err != nil {
		return decodedItem{}, err
	}
	if attrs.Year, err = rec.requiredInt("year"); err != nil {
		return decodedItem{}, err
	}
	if attrs.Available, err = rec.requiredBool("available"); err != nil {
		return decodedItem{}, err
	}
	if itemType == catalogDomain.ItemTypeDVD {
		attrs.Duration, err = rec.requiredInt("duration")
	} else {
		attrs.Genre, err = rec.requiredString("genre")
	}
	if err != nil {
		return decodedItem{}, err
	}
	reservedBy, err := rec.optionalString("reserved_by")
	if err != nil {
		return decodedItem{}, err
	}

	item, err := catalogDomain.NewItem(itemType, id, attrs)
	if err != nil {
		return decodedItem{}, err
	}
	return decodedItem{item: item, reservedBy: reservedBy}, nil
}

// decodeUser builds a user with no loans and returns the persisted loan list separately.
func decodeUser(rec rawRecord) (*catalogDomain.User, []string, error) {
	id, err := rec.requiredString("id")
	if err != nil {
		return nil, nil, err
	}
	firstName, err := rec.requiredString("first_name")
	if err != nil {
		return nil, nil, err
	}
	lastName, err := rec.requiredString("last_name")
	if err != nil {
		return nil, nil, err
	}
	borrowed, err := rec.optionalStrings("borrowed_items")
	if err != nil {
		return nil, nil, err
	}

	user, err := catalogDomain.NewUser(id, firstName, lastName)
	if err != nil {
		return nil, nil, err
	}
	return user, borrowed, nil
}

// id returns the record's id when it is a string, for issue reporting.
func (r rawRecord) id() string {
	var id string
	if raw, ok := r["id"]; ok {
		_ = json.Unmarshal(raw, &id)
	}
	return id
}

func (r rawRecord) lookup(field string) (json.RawMessage, error) {
	raw, ok := r[field]
	if !ok {
		return nil, catalogDomain.NewMissingFieldError(field)
	}
	return raw, nil
}

func (r rawRecord) requiredString(field string) (string, error) {
	raw, err := r.lookup(field)
	if err != nil {
		return "", err
	}
	var s string
	if kindOf(raw) != "string" || json.Unmarshal(raw, &s) != nil {
		return "", catalogDomain.NewWrongTypeError(field, "string", kindOf(raw))
	}
	return s, nil
}

func (r rawRecord) requiredInt(field string) (int, error) {
	raw, err := r.lookup(field)
	if err != nil {
		return 0, err
	}
	var f float64
	if kindOf(raw) != "number" || json.Unmarshal(raw, &f) != nil {
		return 0, catalogDomain.NewWrongTypeError(field, "integer", kindOf(raw))
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, catalogDomain.NewWrongTypeError(field, "integer", "number")
	}
	return int(f), nil
}

func (r rawRecord) requiredBool(field string) (bool, error) {
	raw, err := r.lookup(field)
	if err != nil {
		return false, err
	}
	var b bool
	if kindOf(raw) != "boolean" || json.Unmarshal(raw, &b) != nil {
		return false, catalogDomain.NewWrongTypeError(field, "boolean", kindOf(raw))
	}
	return b, nil
}

// optionalString returns "" when the field is absent or null.
func (r rawRecord) optionalString(field string) (string, error) {
	raw, ok := r[field]
	if !ok || kindOf(raw) == "null" {
		return "", nil
	}
	return r.requiredString(field)
}

// optionalStrings returns nil when the field is absent or null.
func (r rawRecord) optionalStrings(field string) ([]string, error) {
	raw, ok := r[field]
	if !ok || kindOf(raw) == "null" {
		return nil, nil
	}
	var values []string
	if kindOf(raw) != "array" || json.Unmarshal(raw, &values) != nil {
		return nil, catalogDomain.NewWrongTypeError(field, "array of strings", kindOf(raw))
	}
	return values, nil
}

// kindOf names the JSON type of a raw value.
func kindOf(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "empty"
	}
	switch trimmed[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
