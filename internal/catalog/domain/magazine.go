package domain

import "fmt"

// Magazine is a non-reservable item with a genre.
type Magazine struct {
	itemBase
	genre string
}

// NewMagazine validates attrs and builds a Magazine with the given ID.
func NewMagazine(id string, attrs ItemAttrs) (*Magazine, error) {
	if err := validateItem(ItemTypeMagazine, id, attrs); err != nil {
		return nil, err
	}
	return &Magazine{
		itemBase: newItemBase(ItemTypeMagazine, id, attrs),
		genre:    attrs.Genre,
	}, nil
}

// Genre returns the magazine's genre.
func (m *Magazine) Genre() string {
	return m.genre
}

// SetGenre replaces the genre after validating it.
func (m *Magazine) SetGenre(genre string) error {
	if err := validateGenre(genre); err != nil {
		return err
	}
	m.genre = genre
	return nil
}

// Attrs returns every field of the magazine.
func (m *Magazine) Attrs() ItemAttrs {
	attrs := m.attrs()
	attrs.Genre = m.genre
	return attrs
}

// Display renders the magazine record.
func (m *Magazine) Display() string {
	return m.display(fmt.Sprintf("Genre: %s", m.genre), "")
}

func (m *Magazine) clone() Item {
	c := *m
	return &c
}
