package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/librarian/internal/validation"
)

// ItemID is a decoded T-Aa-YYYY-N item identifier.
type ItemID struct {
	Type     ItemType
	Initials string
	Year     int
	Sequence int
}

// String renders the identifier back to its T-Aa-YYYY-N form.
func (id ItemID) String() string {
	return fmt.Sprintf("%s-%s-%d-%d", id.Type.Tag(), id.Initials, id.Year, id.Sequence)
}

// UserID is a decoded U-Ff-Ll-N user identifier.
type UserID struct {
	FirstInitials string
	LastInitials  string
	Sequence      int
}

// String renders the identifier back to its U-Ff-Ll-N form.
func (id UserID) String() string {
	return fmt.Sprintf("U-%s-%s-%d", id.FirstInitials, id.LastInitials, id.Sequence)
}

// GenerateItemID builds T-Aa-YYYY-N from the item type, the author's initials,
// the literal year and the per-type sequence number.
func GenerateItemID(t ItemType, author string, year, seq int) string {
	return fmt.Sprintf("%s-%s-%d-%d", t.Tag(), AuthorInitials(author), year, seq)
}

// GenerateUserID builds U-Ff-Ll-N from the first two letters of each name.
func GenerateUserID(firstName, lastName string, seq int) string {
	return fmt.Sprintf("U-%s-%s-%d", nameInitials(firstName), nameInitials(lastName), seq)
}

// AuthorInitials returns the first letters of the first and last words of a
// multi-word name, upper-cased, or nameInitials of a single-word name. Only
// letters count: words without any are skipped, so the result always parses.
func AuthorInitials(author string) string {
	var words [][]rune
	for _, w := range strings.Fields(author) {
		if letters := letterRunes(w); len(letters) > 0 {
			words = append(words, letters)
		}
	}
	if len(words) >= 2 {
		first := words[0][0]
		last := words[len(words)-1][0]
		return string(unicode.ToUpper(first)) + string(unicode.ToUpper(last))
	}
	return nameInitials(author)
}

// nameInitials returns the first letter of name upper-cased and the second
// lower-cased. Missing letters are filled with x, so "O" gives "Ox".
func nameInitials(name string) string {
	letters := append(letterRunes(name), 'x', 'x')
	return string(unicode.ToUpper(letters[0])) + string(unicode.ToLower(letters[1]))
}

func letterRunes(s string) []rune {
	var out []rune
	for _, r := range s {
		if unicode.IsLetter(r) {
			out = append(out, r)
		}
	}
	return out
}

// ParseItemID validates s against the T-Aa-YYYY-N grammar.
func ParseItemID(s string) (ItemID, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 4 {
		return ItemID{}, &IDFormatError{ID: s, Reason: "expected 4 hyphen-separated fields T-Aa-YYYY-N"}
	}

	t, ok := itemTypeFromTag(parts[0])
	if !ok {
		return ItemID{}, &IDFormatError{ID: s, Field: "type", Reason: "must be one of B, D, M"}
	}

	if err := validateInitials(parts[1]); err != nil {
		return ItemID{}, &IDFormatError{ID: s, Field: "initials", Reason: err.Error()}
	}

	if err := validation.Validate(parts[2], validation.Required, appValidation.Digits); err != nil {
		return ItemID{}, &IDFormatError{ID: s, Field: "year", Reason: err.Error()}
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return ItemID{}, &IDFormatError{ID: s, Field: "year", Reason: "is out of range"}
	}

	seq, err := parseSequence(parts[3])
	if err != nil {
		return ItemID{}, &IDFormatError{ID: s, Field: "sequence", Reason: err.Error()}
	}

	return ItemID{Type: t, Initials: parts[1], Year: year, Sequence: seq}, nil
}

// ParseUserID validates s against the U-Ff-Ll-N grammar.
func ParseUserID(s string) (UserID, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 4 {
		return UserID{}, &IDFormatError{ID: s, Reason: "expected 4 hyphen-separated fields U-Ff-Ll-N"}
	}

	if parts[0] != "U" {
		return UserID{}, &IDFormatError{ID: s, Field: "prefix", Reason: "must be U"}
	}

	if err := validateInitials(parts[1]); err != nil {
		return UserID{}, &IDFormatError{ID: s, Field: "first_initials", Reason: err.Error()}
	}

	if err := validateInitials(parts[2]); err != nil {
		return UserID{}, &IDFormatError{ID: s, Field: "last_initials", Reason: err.Error()}
	}

	seq, err := parseSequence(parts[3])
	if err != nil {
		return UserID{}, &IDFormatError{ID: s, Field: "sequence", Reason: err.Error()}
	}

	return UserID{FirstInitials: parts[1], LastInitials: parts[2], Sequence: seq}, nil
}

func validateInitials(s string) error {
	return validation.Validate(s,
		validation.Required,
		validation.RuneLength(2, 2).Error("must be exactly 2 letters"),
		appValidation.Letters,
	)
}

func parseSequence(s string) (int, error) {
	if err := validation.Validate(s, validation.Required, appValidation.Digits); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, validation.NewError("validation_sequence_range", "is out of range")
	}
	if err := appValidation.Positive.Validate(n); err != nil {
		return 0, err
	}
	return n, nil
}
