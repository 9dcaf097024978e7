package repository

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newMemBucket(t *testing.T) *blob.Bucket {
	t.Helper()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() {
		assert.NoError(t, bucket.Close())
	})
	return bucket
}

func newKeeper(t *testing.T) Keeper {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	keeper, err := OpenKeeper(context.Background(), "base64key://"+base64.URLEncoding.EncodeToString(key))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, keeper.Close())
	})
	return keeper
}

func writeDoc(t *testing.T, bucket *blob.Bucket, key, content string) {
	t.Helper()
	require.NoError(t, bucket.WriteAll(context.Background(), key, []byte(content), nil))
}

// sampleCatalog holds a book lent to John, a reserved DVD and a magazine.
func sampleCatalog(t *testing.T) *catalogDomain.Catalog {
	t.Helper()
	c := catalogDomain.NewCatalog()

	add := func(itemType catalogDomain.ItemType, attrs catalogDomain.ItemAttrs) catalogDomain.Item {
		item, err := c.NewItem(itemType, attrs)
		require.NoError(t, err)
		require.NoError(t, c.AddItem(item))
		return item
	}
	book := add(catalogDomain.ItemTypeBook, catalogDomain.ItemAttrs{
		Title: "Dune", Author: "Frank Herbert", Year: 1965, Available: true, Genre: "Sci-Fi",
	})
	dvd := add(catalogDomain.ItemTypeDVD, catalogDomain.ItemAttrs{
		Title: "Alien", Author: "Ridley Scott", Year: 1979, Available: true, Duration: 117,
	})
	add(catalogDomain.ItemTypeMagazine, catalogDomain.ItemAttrs{
		Title: "Time", Author: "Time Inc", Year: 2020, Available: true, Genre: "News",
	})

	john, err := c.NewUser("John", "Smith")
	require.NoError(t, err)
	require.NoError(t, c.AddUser(john))
	jane, err := c.NewUser("Jane", "Doe")
	require.NoError(t, err)
	require.NoError(t, c.AddUser(jane))

	require.NoError(t, c.Borrow(john.ID(), book.ID()))
	require.NoError(t, c.Reserve(jane.ID(), dvd.ID()))
	return c
}

func TestNewJSONCatalogRepository(t *testing.T) {
	bucket := newMemBucket(t)

	repo := NewJSONCatalogRepository(bucket)
	assert.Equal(t, DefaultItemsKey, repo.itemsKey)
	assert.Equal(t, DefaultUsersKey, repo.usersKey)
	assert.Nil(t, repo.keeper)

	repo = NewJSONCatalogRepository(bucket, WithKeys("i.json", ""))
	assert.Equal(t, "i.json", repo.itemsKey)
	assert.Equal(t, DefaultUsersKey, repo.usersKey)
}

func TestJSONCatalogRepository_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingDocumentsAreEmpty", func(t *testing.T) {
		repo := NewJSONCatalogRepository(newMemBucket(t))

		catalog, report, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, catalog.Items())
		assert.Empty(t, catalog.Users())
		assert.False(t, report.HasIssues())
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		bucket := newMemBucket(t)
		writeDoc(t, bucket, DefaultItemsKey, "[]")
		writeDoc(t, bucket, DefaultUsersKey, "  \n")

		catalog, report, err := NewJSONCatalogRepository(bucket).Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, catalog.Items())
		assert.Equal(t, 0, report.Users)
	})

	t.Run("MalformedDocument", func(t *testing.T) {
		for _, content := range []string{`{"id": "B-FH-1965-1"}`, `not json`, `[{"id": }]`} {
			bucket := newMemBucket(t)
			writeDoc(t, bucket, DefaultUsersKey, content)

			catalog, report, err := NewJSONCatalogRepository(bucket).Load(ctx)
			assert.ErrorIs(t, err, ErrMalformedDocument, content)
			assert.Nil(t, catalog)
			assert.Nil(t, report)
		}
	})

	t.Run("RecoversFromBadRecords", func(t *testing.T) {
		bucket := newMemBucket(t)
		writeDoc(t, bucket, DefaultItemsKey, `[
			{"id": "B-FH-1965-1", "type": "book", "title": "Dune", "author": "Frank Herbert", "year": 1965, "available": true, "genre": "Sci-Fi"},
			{"id": "B-So-1999-1", "type": "Book", "title": 123, "author": "Someone", "year": 1999, "available": true, "genre": "x"},
			{"id": "D-RS-1979-1", "type": "DVD", "title": "Alien", "author": "Ridley Scott", "year": 1979, "available": true},
			{"id": "V-1", "type": "Vinyl", "title": "Abbey Road", "author": "The Beatles", "year": 1969, "available": true},
			{"id": "B-FH-1965-2", "type": "Book", "title": "DUNE", "author": "frank herbert", "year": 1965, "available": true, "genre": "x"},
			"not an object",
			{"id": "M-TI-2020-1", "type": "Magazine", "title": "Time", "author": "Time Inc", "year": 2020, "available": false, "genre": "News", "reserved_by": "U-Jo-Sm-1"}
		]`)
		writeDoc(t, bucket, DefaultUsersKey, `[
			{"id": "U-Jo-Sm-1", "first_name": "John", "last_name": "Smith", "borrowed_items": ["B-FH-1965-1", "ghost"]},
			{"id": "U-Ja-Do-2", "first_name": "Jane", "last_name": "Doe", "borrowed_items": ["B-FH-1965-1"]},
			{"id": "U-Bo-Bo-3", "first_name": "Bob", "last_name": "Bobson"},
			{"id": "U-x", "first_name": "J", "last_name": "Smith"}
		]`)

		catalog, report, err := NewJSONCatalogRepository(bucket).Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, report.Items)
		assert.Equal(t, 3, report.Users)
		assert.Equal(t, 5, report.Count(catalogDomain.IssueInvalidRecord))
		assert.Equal(t, 1, report.Count(catalogDomain.IssueDuplicateRecord))
		assert.Equal(t, 1, report.Count(catalogDomain.IssueDanglingLoan))
		assert.Equal(t, 1, report.Count(catalogDomain.IssueConflictingLoan))
		assert.Equal(t, 1, report.Count(catalogDomain.IssueDroppedReservation))
		assert.Equal(t, 2, report.Count(catalogDomain.IssueAvailabilityCorrected))
		assert.Equal(t, 0, report.Count(catalogDomain.IssueGenerationMismatch))

		wrongType := report.Issues[0]
		assert.Equal(t, catalogDomain.IssueInvalidRecord, wrongType.Kind)
		assert.Equal(t, 1, wrongType.Index)
		assert.Equal(t, "B-So-1999-1", wrongType.RecordID)
		assert.ErrorIs(t, wrongType.Err, catalogDomain.ErrWrongType)
		assert.Equal(t, "title: expected type: string, got: number", wrongType.Err.Error())

		missing := report.Issues[1]
		assert.ErrorIs(t, missing.Err, catalogDomain.ErrMissingField)
		assert.Contains(t, missing.String(), "items.json[2] (D-RS-1979-1)")

		book, ok := catalog.Item("B-FH-1965-1")
		require.True(t, ok)
		assert.Equal(t, catalogDomain.ItemTypeBook, book.Type())
		assert.False(t, book.IsAvailable())

		magazine, ok := catalog.Item("M-TI-2020-1")
		require.True(t, ok)
		assert.True(t, magazine.IsAvailable())

		john, ok := catalog.User("U-Jo-Sm-1")
		require.True(t, ok)
		assert.Equal(t, []string{"B-FH-1965-1"}, john.BorrowedItems())

		bob, ok := catalog.User("U-Bo-Bo-3")
		require.True(t, ok)
		assert.Empty(t, bob.BorrowedItems())

		assert.NoError(t, catalog.Verify())
	})

	t.Run("DropsReservationOfUnknownUser", func(t *testing.T) {
		bucket := newMemBucket(t)
		writeDoc(t, bucket, DefaultItemsKey, `[
			{"id": "D-RS-1979-1", "type": "DVD", "title": "Alien", "author": "Ridley Scott", "year": 1979, "available": true, "duration": 117, "reserved_by": "U-No-On-9"}
		]`)

		catalog, report, err := NewJSONCatalogRepository(bucket).Load(ctx)
		require.NoError(t, err)
		require.Len(t, report.Issues, 1)
		assert.Equal(t, catalogDomain.IssueDroppedReservation, report.Issues[0].Kind)
		assert.ErrorIs(t, report.Issues[0].Err, catalogDomain.ErrUserNotFound)

		dvd, ok := catalog.Item("D-RS-1979-1")
		require.True(t, ok)
		assert.Empty(t, dvd.(catalogDomain.Reservable).ReservedBy())
	})

	t.Run("RejectsNonIntegerYear", func(t *testing.T) {
		bucket := newMemBucket(t)
		writeDoc(t, bucket, DefaultItemsKey, `[
			{"id": "B-FH-1965-1", "type": "Book", "title": "Dune", "author": "Frank Herbert", "year": "1965", "available": true, "genre": "x"},
			{"id": "B-FH-1965-2", "type": "Book", "title": "Dune", "author": "Frank Herbert", "year": 1965.5, "available": true, "genre": "x"},
			{"id": "B-FH-1965-3", "type": "Book", "title": "Dune", "author": "Frank Herbert", "year": 1965, "available": "yes", "genre": "x"}
		]`)

		_, report, err := NewJSONCatalogRepository(bucket).Load(ctx)
		require.NoError(t, err)
		require.Len(t, report.Issues, 3)
		assert.Equal(t, "year: expected type: integer, got: string", report.Issues[0].Err.Error())
		assert.Equal(t, "year: expected type: integer, got: number", report.Issues[1].Err.Error())
		assert.Equal(t, "available: expected type: boolean, got: string", report.Issues[2].Err.Error())
	})

	t.Run("ReportsGenerationMismatch", func(t *testing.T) {
		bucket := newMemBucket(t)
		repo := NewJSONCatalogRepository(bucket)
		require.NoError(t, repo.Save(ctx, sampleCatalog(t)))

		data, err := bucket.ReadAll(ctx, DefaultUsersKey)
		require.NoError(t, err)
		require.NoError(t, bucket.WriteAll(ctx, DefaultUsersKey, data, &blob.WriterOptions{
			Metadata: map[string]string{"generation": "older-save"},
		}))

		_, report, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Count(catalogDomain.IssueGenerationMismatch))
	})
}

func TestJSONCatalogRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	bucket := newMemBucket(t)
	repo := NewJSONCatalogRepository(bucket)

	original := sampleCatalog(t)
	require.NoError(t, repo.Save(ctx, original))

	loaded, report, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, report.HasIssues(), "%v", report.Issues)
	assert.Equal(t, 3, report.Items)
	assert.Equal(t, 2, report.Users)

	require.Len(t, loaded.Items(), len(original.Items()))
	for i, item := range original.Items() {
		got := loaded.Items()[i]
		assert.Equal(t, item.ID(), got.ID())
		assert.Equal(t, item.Type(), got.Type())
		assert.Equal(t, item.Attrs(), got.Attrs())
		assert.Equal(t, item.Display(), got.Display())
	}
	require.Len(t, loaded.Users(), len(original.Users()))
	for i, user := range original.Users() {
		got := loaded.Users()[i]
		assert.Equal(t, user.Display(), got.Display())
		assert.Equal(t, user.BorrowedItems(), got.BorrowedItems())
	}

	dune, ok := loaded.Item("B-FH-1965-1")
	require.True(t, ok)
	assert.Equal(t, catalogDomain.ItemAttrs{
		Title: "Dune", Author: "Frank Herbert", Year: 1965, Available: false, Genre: "Sci-Fi",
	}, dune.Attrs())

	next, err := loaded.NewItem(catalogDomain.ItemTypeBook, catalogDomain.ItemAttrs{
		Title: "Dune Messiah", Author: "Frank Herbert", Year: 1969, Genre: "Sci-Fi",
	})
	require.NoError(t, err)
	assert.Equal(t, "B-FH-1969-2", next.ID(), "counters are seeded from loaded ids")
	assert.NoError(t, loaded.Verify())
}

func TestJSONCatalogRepository_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("WritesIndentedRecords", func(t *testing.T) {
		bucket := newMemBucket(t)
		require.NoError(t, NewJSONCatalogRepository(bucket).Save(ctx, sampleCatalog(t)))

		items, err := bucket.ReadAll(ctx, DefaultItemsKey)
		require.NoError(t, err)
		assert.Contains(t, string(items), "[\n  {\n    \"id\": \"B-FH-1965-1\",\n    \"type\": \"Book\",")
		assert.Contains(t, string(items), `"duration": 117`)
		assert.Contains(t, string(items), `"reserved_by": "U-Ja-Do-2"`)
		assert.NotContains(t, string(items), `"reserved_by": ""`)

		users, err := bucket.ReadAll(ctx, DefaultUsersKey)
		require.NoError(t, err)
		assert.Contains(t, string(users), `"first_name": "John"`)
		assert.Contains(t, string(users), `"borrowed_items": []`)

		itemsAttrs, err := bucket.Attributes(ctx, DefaultItemsKey)
		require.NoError(t, err)
		usersAttrs, err := bucket.Attributes(ctx, DefaultUsersKey)
		require.NoError(t, err)
		assert.NotEmpty(t, itemsAttrs.Metadata["generation"])
		assert.Equal(t, itemsAttrs.Metadata["generation"], usersAttrs.Metadata["generation"])
		assert.Equal(t, "application/json", itemsAttrs.ContentType)
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		bucket := newMemBucket(t)
		require.NoError(t, NewJSONCatalogRepository(bucket).Save(ctx, catalogDomain.NewCatalog()))

		items, err := bucket.ReadAll(ctx, DefaultItemsKey)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(items))
	})

	t.Run("CustomKeys", func(t *testing.T) {
		bucket := newMemBucket(t)
		repo := NewJSONCatalogRepository(bucket, WithKeys("catalog/items.json", "catalog/users.json"))
		require.NoError(t, repo.Save(ctx, sampleCatalog(t)))

		exists, err := bucket.Exists(ctx, "catalog/items.json")
		require.NoError(t, err)
		assert.True(t, exists)
		exists, err = bucket.Exists(ctx, DefaultItemsKey)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestJSONCatalogRepository_Encryption(t *testing.T) {
	ctx := context.Background()
	bucket := newMemBucket(t)
	keeper := newKeeper(t)

	repo := NewJSONCatalogRepository(bucket, WithKeeper(keeper))
	require.NoError(t, repo.Save(ctx, sampleCatalog(t)))

	raw, err := bucket.ReadAll(ctx, DefaultItemsKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Dune")

	loaded, report, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, report.HasIssues())
	assert.Len(t, loaded.Items(), 3)

	_, _, err = NewJSONCatalogRepository(bucket).Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encryption key is configured")

	t.Run("ReadsPlaintextWithKeeper", func(t *testing.T) {
		plain := newMemBucket(t)
		require.NoError(t, NewJSONCatalogRepository(plain).Save(ctx, sampleCatalog(t)))

		loaded, _, err := NewJSONCatalogRepository(plain, WithKeeper(keeper)).Load(ctx)
		require.NoError(t, err)
		assert.Len(t, loaded.Users(), 2)
	})
}

func TestOpenBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("DataDirIsCreated", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		bucket, err := OpenBucket(ctx, "", dir)
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, bucket.Close())
		}()

		require.NoError(t, NewJSONCatalogRepository(bucket).Save(ctx, sampleCatalog(t)))

		content, err := os.ReadFile(filepath.Join(dir, DefaultItemsKey))
		require.NoError(t, err)
		assert.Contains(t, string(content), `"title": "Dune"`)
		_, err = os.Stat(filepath.Join(dir, DefaultUsersKey))
		require.NoError(t, err)

		loaded, report, err := NewJSONCatalogRepository(bucket).Load(ctx)
		require.NoError(t, err)
		assert.False(t, report.HasIssues())
		assert.Len(t, loaded.Items(), 3)
	})

	t.Run("StorageURL", func(t *testing.T) {
		bucket, err := OpenBucket(ctx, "mem://", "ignored")
		require.NoError(t, err)
		assert.NoError(t, bucket.Close())
	})

	t.Run("InvalidStorageURL", func(t *testing.T) {
		_, err := OpenBucket(ctx, "nosuchscheme://bucket", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open bucket")
	})
}

func TestOpenKeeper(t *testing.T) {
	_, err := OpenKeeper(context.Background(), "invalid://uri")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open KMS keeper")
}
