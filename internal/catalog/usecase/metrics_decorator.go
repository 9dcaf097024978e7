package usecase

import (
	"context"
	"time"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
	"github.com/allisson/librarian/internal/metrics"
)

// catalogUseCaseWithMetrics decorates CatalogUseCase with metrics instrumentation.
type catalogUseCaseWithMetrics struct {
	next    CatalogUseCase
	metrics metrics.CatalogMetrics
}

// NewCatalogUseCaseWithMetrics wraps a CatalogUseCase with metrics recording.
// Besides per-operation counts, a successful Load reports every load issue and
// a successful Load or Save refreshes the catalog size gauges.
func NewCatalogUseCaseWithMetrics(useCase CatalogUseCase, m metrics.CatalogMetrics) CatalogUseCase {
	return &catalogUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// observeSize reads the summary from the wrapped use case and sets the size gauges.
func (c *catalogUseCaseWithMetrics) observeSize(ctx context.Context) {
	summary, err := c.next.Summary(ctx)
	if err != nil {
		return
	}
	c.metrics.RecordCatalogSize(ctx, metrics.CatalogSize{
		Books:     summary.Books,
		DVDs:      summary.DVDs,
		Magazines: summary.Magazines,
		Users:     summary.Users,
		Lent:      summary.Lent,
	})
}

// Load records metrics for catalog load operations.
func (c *catalogUseCaseWithMetrics) Load(ctx context.Context) (*catalogDomain.LoadReport, error) {
	start := time.Now()
	report, err := c.next.Load(ctx)
	c.metrics.RecordOperation(ctx, "catalog", "catalog_load", time.Since(start), err)
	if err != nil {
		return report, err
	}

	if report != nil {
		for _, issue := range report.Issues {
			c.metrics.RecordLoadIssue(ctx, issue.Document, string(issue.Kind))
		}
	}
	c.observeSize(ctx)
	return report, nil
}

// Save records metrics for catalog save operations.
func (c *catalogUseCaseWithMetrics) Save(ctx context.Context) error {
	start := time.Now()
	err := c.next.Save(ctx)
	c.metrics.RecordOperation(ctx, "catalog", "catalog_save", time.Since(start), err)
	if err == nil {
		c.observeSize(ctx)
	}
	return err
}

// CreateItem records metrics for item creation.
func (c *catalogUseCaseWithMetrics) CreateItem(
	ctx context.Context,
	input CreateItemInput,
) (catalogDomain.Item, error) {
	start := time.Now()
	item, err := c.next.CreateItem(ctx, input)
	c.metrics.RecordOperation(ctx, "catalog", "item_create", time.Since(start), err)
	return item, err
}

// UpdateItem records metrics for item updates.
func (c *catalogUseCaseWithMetrics) UpdateItem(
	ctx context.Context,
	input UpdateItemInput,
) (catalogDomain.Item, error) {
	start := time.Now()
	item, err := c.next.UpdateItem(ctx, input)
	c.metrics.RecordOperation(ctx, "catalog", "item_update", time.Since(start), err)
	return item, err
}

// RemoveItem records metrics for item removal.
func (c *catalogUseCaseWithMetrics) RemoveItem(ctx context.Context, id string) error {
	start := time.Now()
	err := c.next.RemoveItem(ctx, id)
	c.metrics.RecordOperation(ctx, "catalog", "item_remove", time.Since(start), err)
	return err
}

// GetItem records metrics for item lookups.
func (c *catalogUseCaseWithMetrics) GetItem(ctx context.Context, id string) (catalogDomain.Item, error) {
	start := time.Now()
	item, err := c.next.GetItem(ctx, id)
	c.metrics.RecordOperation(ctx, "catalog", "item_get", time.Since(start), err)
	return item, err
}

// ListItems records metrics for item listing.
func (c *catalogUseCaseWithMetrics) ListItems(
	ctx context.Context,
	filter ItemFilter,
) ([]catalogDomain.Item, error) {
	start := time.Now()
	items, err := c.next.ListItems(ctx, filter)
	c.metrics.RecordOperation(ctx, "catalog", "item_list", time.Since(start), err)
	return items, err
}

// CreateUser records metrics for user creation.
func (c *catalogUseCaseWithMetrics) CreateUser(
	ctx context.Context,
	input CreateUserInput,
) (*catalogDomain.User, error) {
	start := time.Now()
	user, err := c.next.CreateUser(ctx, input)
	c.metrics.RecordOperation(ctx, "catalog", "user_create", time.Since(start), err)
	return user, err
}

// UpdateUser records metrics for user updates.
func (c *catalogUseCaseWithMetrics) UpdateUser(
	ctx context.Context,
	input UpdateUserInput,
) (*catalogDomain.User, error) {
	start := time.Now()
	user, err := c.next.UpdateUser(ctx, input)
	c.metrics.RecordOperation(ctx, "catalog", "user_update", time.Since(start), err)
	return user, err
}

// RemoveUser records metrics for user removal.
func (c *catalogUseCaseWithMetrics) RemoveUser(ctx context.Context, id string) error {
	start := time.Now()
	err := c.next.RemoveUser(ctx, id)
	c.metrics.RecordOperation(ctx, "catalog", "user_remove", time.Since(start), err)
	return err
}

// GetUser records metrics for user lookups.
func (c *catalogUseCaseWithMetrics) GetUser(ctx context.Context, id string) (*catalogDomain.User, error) {
	start := time.Now()
	user, err := c.next.GetUser(ctx, id)
	c.metrics.RecordOperation(ctx, "catalog", "user_get", time.Since(start), err)
	return user, err
}

// ListUsers records metrics for user listing.
func (c *catalogUseCaseWithMetrics) ListUsers(
	ctx context.Context,
	filter UserFilter,
) ([]*catalogDomain.User, error) {
	start := time.Now()
	users, err := c.next.ListUsers(ctx, filter)
	c.metrics.RecordOperation(ctx, "catalog", "user_list", time.Since(start), err)
	return users, err
}

// Summary records metrics for summary requests.
func (c *catalogUseCaseWithMetrics) Summary(ctx context.Context) (catalogDomain.Summary, error) {
	start := time.Now()
	summary, err := c.next.Summary(ctx)
	c.metrics.RecordOperation(ctx, "catalog", "catalog_summary", time.Since(start), err)
	return summary, err
}

// lendingUseCaseWithMetrics decorates LendingUseCase with metrics instrumentation.
type lendingUseCaseWithMetrics struct {
	next    LendingUseCase
	metrics metrics.CatalogMetrics
}

// NewLendingUseCaseWithMetrics wraps a LendingUseCase with metrics recording.
func NewLendingUseCaseWithMetrics(useCase LendingUseCase, m metrics.CatalogMetrics) LendingUseCase {
	return &lendingUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Borrow records metrics for borrow operations.
func (l *lendingUseCaseWithMetrics) Borrow(ctx context.Context, userID, itemID string) error {
	start := time.Now()
	err := l.next.Borrow(ctx, userID, itemID)
	l.metrics.RecordOperation(ctx, "lending", "item_borrow", time.Since(start), err)
	return err
}

// Return records metrics for return operations.
func (l *lendingUseCaseWithMetrics) Return(ctx context.Context, userID, itemID string) error {
	start := time.Now()
	err := l.next.Return(ctx, userID, itemID)
	l.metrics.RecordOperation(ctx, "lending", "item_return", time.Since(start), err)
	return err
}

// Reserve records metrics for reservations.
func (l *lendingUseCaseWithMetrics) Reserve(ctx context.Context, userID, itemID string) error {
	start := time.Now()
	err := l.next.Reserve(ctx, userID, itemID)
	l.metrics.RecordOperation(ctx, "lending", "item_reserve", time.Since(start), err)
	return err
}

// CancelReservation records metrics for reservation cancellations.
func (l *lendingUseCaseWithMetrics) CancelReservation(ctx context.Context, itemID string) error {
	start := time.Now()
	err := l.next.CancelReservation(ctx, itemID)
	l.metrics.RecordOperation(ctx, "lending", "reservation_cancel", time.Since(start), err)
	return err
}
