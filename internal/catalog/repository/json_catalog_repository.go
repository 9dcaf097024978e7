// Package repository persists the catalog as two JSON documents (items and
// users) in a gocloud blob bucket. Load is tolerant: bad records are skipped and
// reported, inconsistent links are repaired and reported. Save renders both
// documents before writing either.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
	"golang.org/x/sync/errgroup"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
	apperrors "github.com/allisson/librarian/internal/errors"
)

// ErrMalformedDocument indicates a stored document is not a JSON array.
var ErrMalformedDocument = errors.New("malformed document")

const (
	// DefaultItemsKey is the blob key of the items document.
	DefaultItemsKey = "items.json"
	// DefaultUsersKey is the blob key of the users document.
	DefaultUsersKey = "users.json"

	generationMetadata = "generation"
	encryptedMetadata  = "encrypted"
)

// Keeper encrypts and decrypts documents at rest. *secrets.Keeper implements it.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// JSONCatalogRepository loads and saves a catalog through a blob bucket.
// The bucket is owned by the caller.
type JSONCatalogRepository struct {
	bucket   *blob.Bucket
	itemsKey string
	usersKey string
	keeper   Keeper
}

// Option configures a JSONCatalogRepository.
type Option func(*JSONCatalogRepository)

// WithKeys overrides the document keys. Empty values keep the defaults.
func WithKeys(itemsKey, usersKey string) Option {
	return func(r *JSONCatalogRepository) {
		if itemsKey != "" {
			r.itemsKey = itemsKey
		}
		if usersKey != "" {
			r.usersKey = usersKey
		}
	}
}

// WithKeeper encrypts documents on save. Encrypted documents are decrypted on
// load; plaintext documents are still read as is.
func WithKeeper(keeper Keeper) Option {
	return func(r *JSONCatalogRepository) {
		r.keeper = keeper
	}
}

// NewJSONCatalogRepository creates a repository over bucket.
func NewJSONCatalogRepository(bucket *blob.Bucket, opts ...Option) *JSONCatalogRepository {
	r := &JSONCatalogRepository{
		bucket:   bucket,
		itemsKey: DefaultItemsKey,
		usersKey: DefaultUsersKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// document is one stored JSON array split into undecoded elements.
type document struct {
	key        string
	records    []json.RawMessage
	generation string
}

// Load reads both documents and rebuilds a catalog. A missing document is an
// empty collection. A document that is not a JSON array fails the load with
// ErrMalformedDocument; everything below document level is recovered from and
// recorded in the report.
func (r *JSONCatalogRepository) Load(
	ctx context.Context,
) (*catalogDomain.Catalog, *catalogDomain.LoadReport, error) {
	itemsDoc, err := r.read(ctx, r.itemsKey)
	if err != nil {
		return nil, nil, err
	}
	usersDoc, err := r.read(ctx, r.usersKey)
	if err != nil {
		return nil, nil, err
	}

	catalog := catalogDomain.NewCatalog()
	report := &catalogDomain.LoadReport{}

	reservations := r.loadItems(catalog, itemsDoc, report)
	r.loadUsers(catalog, usersDoc, report)

	for _, res := range reservations {
		if err := catalog.Reserve(res.userID, res.itemID); err != nil {
			report.Add(catalogDomain.LoadIssue{
				Kind:     catalogDomain.IssueDroppedReservation,
				Document: itemsDoc.key,
				Index:    res.index,
				RecordID: res.itemID,
				Err:      err,
			})
		}
	}

	for _, c := range catalog.ReconcileAvailability() {
		report.Add(catalogDomain.LoadIssue{
			Kind:     catalogDomain.IssueAvailabilityCorrected,
			Document: itemsDoc.key,
			Index:    -1,
			RecordID: c.ItemID,
			Err:      fmt.Errorf("available set to %t to match loans", c.Available),
		})
	}

	if itemsDoc.generation != "" && usersDoc.generation != "" && itemsDoc.generation != usersDoc.generation {
		report.Add(catalogDomain.LoadIssue{
			Kind:     catalogDomain.IssueGenerationMismatch,
			Document: usersDoc.key,
			Index:    -1,
			Err: fmt.Errorf(
				"%s written by save %s, %s by save %s",
				itemsDoc.key, itemsDoc.generation, usersDoc.key, usersDoc.generation,
			),
		})
	}

	report.Items = len(catalog.Items())
	report.Users = len(catalog.Users())
	return catalog, report, nil
}

type pendingReservation struct {
	index  int
	itemID string
	userID string
}

func (r *JSONCatalogRepository) loadItems(
	catalog *catalogDomain.Catalog,
	doc document,
	report *catalogDomain.LoadReport,
) []pendingReservation {
	var reservations []pendingReservation
	for i, raw := range doc.records {
		rec, err := decodeObject(raw)
		if err != nil {
			report.Add(catalogDomain.LoadIssue{
				Kind:     catalogDomain.IssueInvalidRecord,
				Document: doc.key,
				Index:    i,
				Err:      err,
			})
			continue
		}
		decoded, err := decodeItem(rec)
		if err != nil {
			report.Add(catalogDomain.LoadIssue{
				Kind:     catalogDomain.IssueInvalidRecord,
				Document: doc.key,
				Index:    i,
				RecordID: rec.id(),
				Err:      err,
			})
			continue
		}
		if err := catalog.AddItem(decoded.item); err != nil {
			report.Add(catalogDomain.LoadIssue{
				Kind:     issueKindForAdd(err),
				Document: doc.key,
				Index:    i,
				RecordID: decoded.item.ID(),
				Err:      err,
			})
			continue
		}
		if decoded.reservedBy != "" {
			reservations = append(reservations, pendingReservation{
				index:  i,
				itemID: decoded.item.ID(),
				userID: decoded.reservedBy,
			})
		}
	}
	return reservations
}

func (r *JSONCatalogRepository) loadUsers(
	catalog *catalogDomain.Catalog,
	doc document,
	report *catalogDomain.LoadReport,
) {
	for i, raw := range doc.records {
		rec, err := decodeObject(raw)
		if err != nil {
			report.Add(catalogDomain.LoadIssue{
				Kind:     catalogDomain.IssueInvalidRecord,
				Document: doc.key,
				Index:    i,
				Err:      err,
			})
			continue
		}
		user, borrowed, err := decodeUser(rec)
		if err != nil {
			report.Add(catalogDomain.LoadIssue{
				Kind:     catalogDomain.IssueInvalidRecord,
				Document: doc.key,
				Index:    i,
				RecordID: rec.id(),
				Err:      err,
			})
			continue
		}
		if err := catalog.AddUser(user); err != nil {
			report.Add(catalogDomain.LoadIssue{
				Kind:     issueKindForAdd(err),
				Document: doc.key,
				Index:    i,
				RecordID: user.ID(),
				Err:      err,
			})
			continue
		}
		for _, itemID := range borrowed {
			if err := catalog.LinkLoan(user.ID(), itemID); err != nil {
				kind := catalogDomain.IssueDanglingLoan
				if apperrors.Is(err, catalogDomain.ErrItemNotAvailable) {
					kind = catalogDomain.IssueConflictingLoan
				}
				report.Add(catalogDomain.LoadIssue{
					Kind:     kind,
					Document: doc.key,
					Index:    i,
					RecordID: user.ID(),
					Err:      err,
				})
			}
		}
	}
}

func issueKindForAdd(err error) catalogDomain.IssueKind {
	if apperrors.Is(err, apperrors.ErrConflict) {
		return catalogDomain.IssueDuplicateRecord
	}
	return catalogDomain.IssueInvalidRecord
}

func decodeObject(raw json.RawMessage) (rawRecord, error) {
	if kind := kindOf(raw); kind != "object" {
		return nil, fmt.Errorf("%w: expected type: object, got: %s", catalogDomain.ErrWrongType, kind)
	}
	var rec rawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", catalogDomain.ErrWrongType, err)
	}
	return rec, nil
}

// read fetches and splits one document. A missing key yields an empty document.
func (r *JSONCatalogRepository) read(ctx context.Context, key string) (document, error) {
	doc := document{key: key}

	attrs, err := r.bucket.Attributes(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return doc, nil
		}
		return doc, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	data, err := r.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return doc, nil
		}
		return doc, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if attrs.Metadata[encryptedMetadata] == "true" {
		if r.keeper == nil {
			return doc, fmt.Errorf("%s is encrypted and no encryption key is configured", key)
		}
		if data, err = r.keeper.Decrypt(ctx, data); err != nil {
			return doc, fmt.Errorf("failed to decrypt %s: %w", key, err)
		}
	}

	doc.generation = attrs.Metadata[generationMetadata]
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc.records); err != nil {
		return doc, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, key, err)
	}
	return doc, nil
}

// Save renders both documents and, only when both rendered, writes them
// concurrently under one generation stamp.
func (r *JSONCatalogRepository) Save(ctx context.Context, catalog *catalogDomain.Catalog) error {
	items := make([]itemRecord, 0, len(catalog.Items()))
	for _, item := range catalog.Items() {
		items = append(items, newItemRecord(item))
	}
	users := make([]userRecord, 0, len(catalog.Users()))
	for _, user := range catalog.Users() {
		users = append(users, newUserRecord(user))
	}

	itemsData, err := r.render(ctx, r.itemsKey, items)
	if err != nil {
		return err
	}
	usersData, err := r.render(ctx, r.usersKey, users)
	if err != nil {
		return err
	}

	generation, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate save generation: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.write(gctx, r.itemsKey, itemsData, generation.String())
	})
	g.Go(func() error {
		return r.write(gctx, r.usersKey, usersData, generation.String())
	})
	return g.Wait()
}

func (r *JSONCatalogRepository) render(ctx context.Context, key string, records any) ([]byte, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", key, err)
	}
	data = append(data, '\n')
	if r.keeper != nil {
		if data, err = r.keeper.Encrypt(ctx, data); err != nil {
			return nil, fmt.Errorf("failed to encrypt %s: %w", key, err)
		}
	}
	return data, nil
}

func (r *JSONCatalogRepository) write(ctx context.Context, key string, data []byte, generation string) error {
	opts := &blob.WriterOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{generationMetadata: generation},
	}
	if r.keeper != nil {
		opts.ContentType = "application/octet-stream"
		opts.Metadata[encryptedMetadata] = "true"
	}
	if err := r.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
