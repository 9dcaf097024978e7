package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// CatalogMetrics records what the catalog does and what it holds.
type CatalogMetrics interface {
	// RecordOperation counts one finished operation and observes its latency.
	// The status label is StatusError when err is non-nil.
	RecordOperation(ctx context.Context, domain, operation string, duration time.Duration, err error)

	// RecordLoadIssue counts one record skipped or repaired while loading a document.
	RecordLoadIssue(ctx context.Context, document, kind string)

	// RecordCatalogSize sets the catalog gauges.
	RecordCatalogSize(ctx context.Context, size CatalogSize)
}

// CatalogSize is a point-in-time count of the catalog contents.
type CatalogSize struct {
	Books     int
	DVDs      int
	Magazines int
	Users     int
	Lent      int
}

type catalogMetrics struct {
	operations metric.Int64Counter
	latency    metric.Float64Histogram
	loadIssues metric.Int64Counter
	items      metric.Int64Gauge
	users      metric.Int64Gauge
	lent       metric.Int64Gauge
}

// NewCatalogMetrics creates the catalog instruments on meterProvider. Every
// instrument name is prefixed with namespace (e.g. "librarian_operations_total").
func NewCatalogMetrics(meterProvider metric.MeterProvider, namespace string) (CatalogMetrics, error) {
	meter := meterProvider.Meter(namespace)
	name := func(suffix string) string { return namespace + "_" + suffix }

	m := &catalogMetrics{}
	var err error

	m.operations, err = meter.Int64Counter(
		name("operations_total"),
		metric.WithDescription("Catalog and lending operations by outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operations counter: %w", err)
	}

	m.latency, err = meter.Float64Histogram(
		name("operation_duration_seconds"),
		metric.WithDescription("Latency of catalog and lending operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation duration histogram: %w", err)
	}

	m.loadIssues, err = meter.Int64Counter(
		name("load_issues_total"),
		metric.WithDescription("Records skipped or repaired while loading the catalog"),
		metric.WithUnit("{issue}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create load issues counter: %w", err)
	}

	m.items, err = meter.Int64Gauge(
		name("catalog_items"),
		metric.WithDescription("Items in the catalog by type"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create items gauge: %w", err)
	}

	m.users, err = meter.Int64Gauge(
		name("catalog_users"),
		metric.WithDescription("Registered library members"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create users gauge: %w", err)
	}

	m.lent, err = meter.Int64Gauge(
		name("catalog_items_lent"),
		metric.WithDescription("Items currently lent out"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lent items gauge: %w", err)
	}

	return m, nil
}

func (m *catalogMetrics) RecordOperation(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	err error,
) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	attrs := metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	m.operations.Add(ctx, 1, attrs)
	m.latency.Record(ctx, duration.Seconds(), attrs)
}

func (m *catalogMetrics) RecordLoadIssue(ctx context.Context, document, kind string) {
	m.loadIssues.Add(ctx, 1, metric.WithAttributes(
		attribute.String("document", document),
		attribute.String("kind", kind),
	))
}

func (m *catalogMetrics) RecordCatalogSize(ctx context.Context, size CatalogSize) {
	for itemType, n := range map[string]int{
		"book":     size.Books,
		"dvd":      size.DVDs,
		"magazine": size.Magazines,
	} {
		m.items.Record(ctx, int64(n), metric.WithAttributes(attribute.String("type", itemType)))
	}
	m.users.Record(ctx, int64(size.Users))
	m.lent.Record(ctx, int64(size.Lent))
}

// NoOpCatalogMetrics discards every measurement. It is used when metrics are disabled.
type NoOpCatalogMetrics struct{}

// NewNoOpCatalogMetrics creates a CatalogMetrics that records nothing.
func NewNoOpCatalogMetrics() CatalogMetrics {
	return &NoOpCatalogMetrics{}
}

func (n *NoOpCatalogMetrics) RecordOperation(context.Context, string, string, time.Duration, error) {}

func (n *NoOpCatalogMetrics) RecordLoadIssue(context.Context, string, string) {}

func (n *NoOpCatalogMetrics) RecordCatalogSize(context.Context, CatalogSize) {}
