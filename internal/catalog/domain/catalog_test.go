package domain

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/librarian/internal/errors"
)

// fixture builds a catalog with one item of each variant and two users.
type fixture struct {
	catalog  *Catalog
	book     Item
	dvd      Item
	magazine Item
	john     *User
	jane     *User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c := NewCatalog()

	book, err := c.NewItem(ItemTypeBook, duneAttrs())
	require.NoError(t, err)
	require.NoError(t, c.AddItem(book))

	dvd, err := c.NewItem(ItemTypeDVD, ItemAttrs{
		Title: "Alien", Author: "Ridley Scott", Year: 1979, Available: true, Duration: 117,
	})
	require.NoError(t, err)
	require.NoError(t, c.AddItem(dvd))

	magazine, err := c.NewItem(ItemTypeMagazine, ItemAttrs{
		Title: "Time", Author: "Time Inc", Year: 2020, Available: true, Genre: "News",
	})
	require.NoError(t, err)
	require.NoError(t, c.AddItem(magazine))

	john, err := c.NewUser("John", "Smith")
	require.NoError(t, err)
	require.NoError(t, c.AddUser(john))

	jane, err := c.NewUser("Jane", "Doe")
	require.NoError(t, err)
	require.NoError(t, c.AddUser(jane))

	return &fixture{catalog: c, book: book, dvd: dvd, magazine: magazine, john: john, jane: jane}
}

func TestCatalog_NewItem(t *testing.T) {
	c := NewCatalog()

	first, err := c.NewItem(ItemTypeBook, duneAttrs())
	require.NoError(t, err)
	assert.Equal(t, "B-FH-1965-1", first.ID())

	_, err = c.NewItem(ItemTypeBook, ItemAttrs{Title: "", Author: "Frank Herbert", Year: 1965, Genre: "x"})
	require.Error(t, err)

	second, err := c.NewItem(ItemTypeBook, ItemAttrs{
		Title: "Children of Dune", Author: "Frank Herbert", Year: 1976, Genre: "Sci-Fi",
	})
	require.NoError(t, err)
	assert.Equal(t, "B-FH-1976-2", second.ID(), "failed validation consumes no sequence number")

	dvd, err := c.NewItem(ItemTypeDVD, ItemAttrs{Title: "Alien", Author: "Ridley Scott", Year: 1979, Duration: 117})
	require.NoError(t, err)
	assert.Equal(t, "D-RS-1979-1", dvd.ID())

	assert.Empty(t, c.Items(), "NewItem does not add to the catalog")
}

func TestCatalog_NewUser(t *testing.T) {
	c := NewCatalog()
	u, err := c.NewUser("John", "Smith")
	require.NoError(t, err)
	assert.Equal(t, "U-Jo-Sm-1", u.ID())

	_, err = c.NewUser("J", "Smith")
	require.Error(t, err)

	u, err = c.NewUser("Jane", "Doe")
	require.NoError(t, err)
	assert.Equal(t, "U-Ja-Do-2", u.ID())
}

func TestCatalog_AddItem(t *testing.T) {
	t.Run("DuplicateID", func(t *testing.T) {
		f := newFixture(t)
		dup, err := NewBook(f.book.ID(), ItemAttrs{Title: "Other", Author: "Someone Else", Year: 2000, Genre: "x"})
		require.NoError(t, err)

		err = f.catalog.AddItem(dup)
		assert.ErrorIs(t, err, ErrDuplicateItem)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
		assert.Len(t, f.catalog.Items(), 3)
	})

	t.Run("DuplicateNaturalKeyCaseInsensitive", func(t *testing.T) {
		f := newFixture(t)
		dup, err := NewMagazine("M-custom", ItemAttrs{Title: " dune ", Author: "FRANK HERBERT", Year: 1965, Genre: "x"})
		require.NoError(t, err)
		assert.ErrorIs(t, f.catalog.AddItem(dup), ErrDuplicateItem)
	})

	t.Run("SameTitleDifferentYear", func(t *testing.T) {
		f := newFixture(t)
		other, err := NewBook("custom-1", ItemAttrs{Title: "Dune", Author: "Frank Herbert", Year: 1966, Genre: "x"})
		require.NoError(t, err)
		assert.NoError(t, f.catalog.AddItem(other))
	})

	t.Run("WrongType", func(t *testing.T) {
		c := NewCatalog()
		assert.ErrorIs(t, c.AddItem(nil), ErrWrongType)

		var nilBook *Book
		assert.ErrorIs(t, c.AddItem(nilBook), ErrWrongType)
	})

	t.Run("ObservesExplicitID", func(t *testing.T) {
		c := NewCatalog()
		book, err := NewBook("B-FH-1965-9", duneAttrs())
		require.NoError(t, err)
		require.NoError(t, c.AddItem(book))

		next, err := c.NewItem(ItemTypeBook, ItemAttrs{Title: "Other", Author: "Frank Herbert", Year: 1965, Genre: "x"})
		require.NoError(t, err)
		assert.Equal(t, "B-FH-1965-10", next.ID())
	})
}

func TestCatalog_UpdateItem(t *testing.T) {
	t.Run("ReplacesInPlace", func(t *testing.T) {
		f := newFixture(t)
		attrs := f.book.Attrs()
		attrs.Title = "Dune (Revised)"
		updated, err := NewBook(f.book.ID(), attrs)
		require.NoError(t, err)

		require.NoError(t, f.catalog.UpdateItem(f.book.ID(), updated))
		got, ok := f.catalog.Item(f.book.ID())
		require.True(t, ok)
		assert.Equal(t, "Dune (Revised)", got.Title())
		assert.Equal(t, f.book.ID(), f.catalog.Items()[0].ID())
	})

	t.Run("CarriesLoanAcrossIDChange", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.catalog.Borrow(f.john.ID(), f.book.ID()))
		require.NoError(t, f.book.(Reservable).Reserve(f.jane.ID()))

		updated, err := NewBook("B-FH-1965-50", ItemAttrs{
			Title: "Dune", Author: "Frank Herbert", Year: 1965, Available: true, Genre: "Sci-Fi",
		})
		require.NoError(t, err)
		require.NoError(t, f.catalog.UpdateItem(f.book.ID(), updated))

		assert.False(t, updated.IsAvailable())
		assert.Equal(t, f.jane.ID(), updated.ReservedBy())
		assert.Equal(t, []string{"B-FH-1965-50"}, f.john.BorrowedItems())
		assert.NoError(t, f.catalog.Verify())
	})

	t.Run("ConflictWithOtherItem", func(t *testing.T) {
		f := newFixture(t)
		clash, err := NewDVD(f.dvd.ID(), ItemAttrs{Title: "Aliens", Author: "James Cameron", Year: 1986, Duration: 137})
		require.NoError(t, err)
		assert.ErrorIs(t, f.catalog.UpdateItem(f.magazine.ID(), clash), ErrDuplicateItem)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t)
		other, err := NewBook("B-XX-2000-1", ItemAttrs{Title: "New", Author: "New Author", Year: 2000, Genre: "x"})
		require.NoError(t, err)
		err = f.catalog.UpdateItem("missing", other)
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestCatalog_RemoveItem(t *testing.T) {
	f := newFixture(t)

	err := f.catalog.RemoveItem("missing")
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, f.catalog.Borrow(f.john.ID(), f.dvd.ID()))
	err = f.catalog.RemoveItem(f.dvd.ID())
	assert.ErrorIs(t, err, ErrItemNotAvailable)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState))

	require.NoError(t, f.catalog.RemoveItem(f.book.ID()))
	_, ok := f.catalog.Item(f.book.ID())
	assert.False(t, ok)
	assert.Len(t, f.catalog.Items(), 2)
}

func TestCatalog_AddUser(t *testing.T) {
	f := newFixture(t)

	dup, err := NewUser(f.john.ID(), "Other", "Person")
	require.NoError(t, err)
	assert.ErrorIs(t, f.catalog.AddUser(dup), ErrDuplicateUser)

	sameName, err := NewUser("U-custom", "JOHN", " smith ")
	require.NoError(t, err)
	assert.ErrorIs(t, f.catalog.AddUser(sameName), ErrDuplicateUser)

	assert.ErrorIs(t, f.catalog.AddUser(nil), ErrWrongType)
	assert.Len(t, f.catalog.Users(), 2)
}

func TestCatalog_UpdateUser(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.Borrow(f.john.ID(), f.book.ID()))
	require.NoError(t, f.catalog.Reserve(f.john.ID(), f.dvd.ID()))

	renamed, err := NewUser("U-Jo-Sm-99", "Johnny", "Smith")
	require.NoError(t, err)
	require.NoError(t, f.catalog.UpdateUser(f.john.ID(), renamed))

	got, ok := f.catalog.User("U-Jo-Sm-99")
	require.True(t, ok)
	assert.Equal(t, "Johnny", got.FirstName())
	assert.Equal(t, []string{f.book.ID()}, got.BorrowedItems())
	assert.Equal(t, "U-Jo-Sm-99", f.dvd.(Reservable).ReservedBy())

	_, ok = f.catalog.User(f.john.ID())
	assert.False(t, ok)

	clash, err := NewUser("U-new", "Jane", "Doe")
	require.NoError(t, err)
	assert.ErrorIs(t, f.catalog.UpdateUser("U-Jo-Sm-99", clash), ErrDuplicateUser)

	assert.ErrorIs(t, f.catalog.UpdateUser("missing", clash), ErrDuplicateUser)

	fresh, err := NewUser("U-new", "Fresh", "Person")
	require.NoError(t, err)
	assert.ErrorIs(t, f.catalog.UpdateUser("missing", fresh), ErrUserNotFound)
	assert.NoError(t, f.catalog.Verify())
}

func TestCatalog_UpdateUser_BlankRenameKeepsReservations(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.Reserve(f.john.ID(), f.dvd.ID()))

	blank := &User{id: "  ", firstName: "Johnny", lastName: "Smith"}
	err := f.catalog.UpdateUser(f.john.ID(), blank)

	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, f.john.ID(), f.dvd.(Reservable).ReservedBy())
	got, ok := f.catalog.User(f.john.ID())
	require.True(t, ok)
	assert.Same(t, f.john, got)
}

func TestCatalog_GeneratedIDsSurviveReload(t *testing.T) {
	authors := []string{"O'Brien", "A-Bee", "3M Group", "Jean-Luc Godard"}

	for _, author := range authors {
		t.Run(author, func(t *testing.T) {
			first := NewCatalog()
			saved, err := first.NewItem(ItemTypeBook, ItemAttrs{
				Title: "First", Author: author, Year: 1976, Available: true, Genre: "Fiction",
			})
			require.NoError(t, err)
			_, err = ParseItemID(saved.ID())
			require.NoError(t, err)

			reloaded := NewCatalog()
			restored, err := NewItem(ItemTypeBook, saved.ID(), saved.Attrs())
			require.NoError(t, err)
			require.NoError(t, reloaded.AddItem(restored))

			fresh, err := reloaded.NewItem(ItemTypeBook, ItemAttrs{
				Title: "Second", Author: author, Year: 1976, Available: true, Genre: "Fiction",
			})
			require.NoError(t, err)
			assert.NotEqual(t, saved.ID(), fresh.ID())
			assert.NoError(t, reloaded.AddItem(fresh))
		})
	}

	t.Run("UserWithApostrophe", func(t *testing.T) {
		first := NewCatalog()
		saved, err := first.NewUser("Sean", "O'Neil")
		require.NoError(t, err)
		assert.Equal(t, "U-Se-On-1", saved.ID())

		reloaded := NewCatalog()
		require.NoError(t, reloaded.AddUser(saved.Clone()))
		fresh, err := reloaded.NewUser("Siobhan", "O'Neill")
		require.NoError(t, err)
		assert.Equal(t, "U-Si-On-2", fresh.ID())
	})
}

func TestCatalog_NewItem_SequenceExhausted(t *testing.T) {
	c := NewCatalog()
	c.Sequencer().Observe(fmt.Sprintf("B-Ab-2000-%d", math.MaxInt))

	_, err := c.NewItem(ItemTypeBook, duneAttrs())
	assert.ErrorIs(t, err, ErrSequenceExhausted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	dvd, err := c.NewItem(ItemTypeDVD, ItemAttrs{Title: "Alien", Author: "Ridley Scott", Year: 1979, Duration: 117})
	require.NoError(t, err)
	assert.Equal(t, "D-RS-1979-1", dvd.ID())
}

func TestCatalog_RemoveUser(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.Borrow(f.john.ID(), f.book.ID()))
	require.NoError(t, f.catalog.Reserve(f.jane.ID(), f.dvd.ID()))

	assert.ErrorIs(t, f.catalog.RemoveUser("missing"), ErrUserNotFound)

	err := f.catalog.RemoveUser(f.john.ID())
	assert.ErrorIs(t, err, ErrUserHasBorrowedItems)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState))

	require.NoError(t, f.catalog.RemoveUser(f.jane.ID()))
	assert.Empty(t, f.dvd.(Reservable).ReservedBy(), "reservations of a removed user are cancelled")
	assert.Len(t, f.catalog.Users(), 1)
}

func TestCatalog_Lookups(t *testing.T) {
	f := newFixture(t)

	item, ok := f.catalog.Item(f.dvd.ID())
	require.True(t, ok)
	assert.Same(t, f.dvd, item)

	_, ok = f.catalog.Item("d-rs-1979-1")
	assert.False(t, ok, "id lookup is exact")

	assert.Len(t, f.catalog.ItemsByTitle("DUNE"), 1)
	assert.Len(t, f.catalog.ItemsByAuthor("ridley scott"), 1)
	assert.Len(t, f.catalog.ItemsByType(ItemTypeMagazine), 1)
	assert.Empty(t, f.catalog.ItemsByTitle("nothing"))
	assert.NotNil(t, f.catalog.ItemsByTitle("nothing"))

	assert.Len(t, f.catalog.UsersByFirstName("jane"), 1)
	assert.Len(t, f.catalog.UsersByLastName("SMITH"), 1)
	assert.Empty(t, f.catalog.UsersByLastName("Nobody"))

	items := f.catalog.Items()
	items[0] = nil
	assert.NotNil(t, f.catalog.Items()[0], "Items returns a copy of the slice")
}

func TestCatalog_Summary(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.Borrow(f.jane.ID(), f.magazine.ID()))

	assert.Equal(t, Summary{Books: 1, DVDs: 1, Magazines: 1, Items: 3, Users: 2, Lent: 1}, f.catalog.Summary())
	assert.Equal(t, Summary{}, NewCatalog().Summary())
}

func TestCatalog_Verify(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.Verify())

	f.book.setAvailable(false)
	f.jane.AddBorrowedItem(f.dvd.ID())
	f.jane.AddBorrowedItem("ghost")

	err := f.catalog.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nobody holds it")
	assert.Contains(t, err.Error(), "held but marked available")
	assert.Contains(t, err.Error(), `unknown item "ghost"`)
}
