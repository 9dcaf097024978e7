package domain

import "fmt"

// Book is a reservable item with a genre.
type Book struct {
	itemBase
	reservation
	genre string
}

// NewBook validates attrs and builds a Book with the given ID.
func NewBook(id string, attrs ItemAttrs) (*Book, error) {
	if err := validateItem(ItemTypeBook, id, attrs); err != nil {
		return nil, err
	}
	return &Book{
		itemBase: newItemBase(ItemTypeBook, id, attrs),
		genre:    attrs.Genre,
	}, nil
}

// Genre returns the book's genre.
func (b *Book) Genre() string {
	return b.genre
}

// SetGenre replaces the genre after validating it.
func (b *Book) SetGenre(genre string) error {
	if err := validateGenre(genre); err != nil {
		return err
	}
	b.genre = genre
	return nil
}

// Attrs returns every field of the book.
func (b *Book) Attrs() ItemAttrs {
	attrs := b.attrs()
	attrs.Genre = b.genre
	return attrs
}

// Display renders the book record.
func (b *Book) Display() string {
	return b.display(fmt.Sprintf("Genre: %s", b.genre), b.reservedBy)
}

func (b *Book) clone() Item {
	c := *b
	return &c
}
