// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"gocloud.dev/blob"
	"gocloud.dev/secrets"

	catalogRepository "github.com/allisson/librarian/internal/catalog/repository"
	catalogUseCase "github.com/allisson/librarian/internal/catalog/usecase"
	"github.com/allisson/librarian/internal/config"
	apperrors "github.com/allisson/librarian/internal/errors"
	"github.com/allisson/librarian/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logWriter io.Writer
	logger    *slog.Logger
	bucket    *blob.Bucket
	keeper    *secrets.Keeper

	// Metrics
	metricsProvider *metrics.Provider
	catalogMetrics  metrics.CatalogMetrics

	// Repositories
	catalogRepo catalogUseCase.CatalogRepository

	// Use Cases
	session        *catalogUseCase.Session
	catalogUseCase catalogUseCase.CatalogUseCase
	lendingUseCase catalogUseCase.LendingUseCase

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	bucketInit          sync.Once
	keeperInit          sync.Once
	metricsProviderInit sync.Once
	catalogMetricsInit  sync.Once
	catalogRepoInit     sync.Once
	sessionInit         sync.Once
	catalogUseCaseInit  sync.Once
	lendingUseCaseInit  sync.Once
	initErrors          map[string]error
}

// Option configures a Container.
type Option func(*Container)

// WithLogWriter sends log records to w instead of stderr.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config, opts ...Option) *Container {
	c := &Container{
		config:     cfg,
		logWriter:  os.Stderr,
		initErrors: make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// Bucket returns the blob bucket holding the catalog documents.
func (c *Container) Bucket() (*blob.Bucket, error) {
	c.bucketInit.Do(func() {
		c.bucket, c.initErrors["bucket"] = c.initBucket()
	})
	if err := c.initErrors["bucket"]; err != nil {
		return nil, err
	}
	return c.bucket, nil
}

// Keeper returns the at-rest encryption keeper, or nil when encryption is disabled.
func (c *Container) Keeper() (*secrets.Keeper, error) {
	c.keeperInit.Do(func() {
		c.keeper, c.initErrors["keeper"] = c.initKeeper()
	})
	if err := c.initErrors["keeper"]; err != nil {
		return nil, err
	}
	return c.keeper, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, c.initErrors["metricsProvider"] = c.initMetricsProvider()
	})
	if err := c.initErrors["metricsProvider"]; err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// CatalogMetrics returns the catalog metrics recorder.
// A no-op recorder is returned when metrics are disabled.
func (c *Container) CatalogMetrics() (metrics.CatalogMetrics, error) {
	c.catalogMetricsInit.Do(func() {
		c.catalogMetrics, c.initErrors["catalogMetrics"] = c.initCatalogMetrics()
	})
	if err := c.initErrors["catalogMetrics"]; err != nil {
		return nil, err
	}
	return c.catalogMetrics, nil
}

// CatalogRepository returns the JSON document repository.
func (c *Container) CatalogRepository() (catalogUseCase.CatalogRepository, error) {
	c.catalogRepoInit.Do(func() {
		c.catalogRepo, c.initErrors["catalogRepo"] = c.initCatalogRepository()
	})
	if err := c.initErrors["catalogRepo"]; err != nil {
		return nil, err
	}
	return c.catalogRepo, nil
}

// Session returns the in-memory catalog session shared by the use cases.
func (c *Container) Session() (*catalogUseCase.Session, error) {
	c.sessionInit.Do(func() {
		c.session, c.initErrors["session"] = c.initSession()
	})
	if err := c.initErrors["session"]; err != nil {
		return nil, err
	}
	return c.session, nil
}

// CatalogUseCase returns the catalog use case instance.
func (c *Container) CatalogUseCase() (catalogUseCase.CatalogUseCase, error) {
	c.catalogUseCaseInit.Do(func() {
		c.catalogUseCase, c.initErrors["catalogUseCase"] = c.initCatalogUseCase()
	})
	if err := c.initErrors["catalogUseCase"]; err != nil {
		return nil, err
	}
	return c.catalogUseCase, nil
}

// LendingUseCase returns the lending use case instance.
func (c *Container) LendingUseCase() (catalogUseCase.LendingUseCase, error) {
	c.lendingUseCaseInit.Do(func() {
		c.lendingUseCase, c.initErrors["lendingUseCase"] = c.initLendingUseCase()
	})
	if err := c.initErrors["lendingUseCase"]; err != nil {
		return nil, err
	}
	return c.lendingUseCase, nil
}

// Shutdown performs cleanup of all initialized resources.
// When a metrics file is configured the registry is dumped before the provider stops.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if c.config.MetricsFile != "" {
			if err := c.metricsProvider.WriteTextfile(c.config.MetricsFile); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics dump: %w", err))
			}
		}
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.keeper != nil {
		if err := c.keeper.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("keeper close: %w", err))
		}
	}

	if c.bucket != nil {
		if err := c.bucket.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("bucket close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", apperrors.Join(shutdownErrors...))
	}

	return nil
}

// initLogger creates a JSON logger at the configured level.
func (c *Container) initLogger() *slog.Logger {
	handler := slog.NewJSONHandler(c.logWriter, &slog.HandlerOptions{
		Level: c.config.SlogLevel(),
	})
	return slog.New(handler)
}

func (c *Container) initBucket() (*blob.Bucket, error) {
	return catalogRepository.OpenBucket(context.Background(), c.config.StorageURL, c.config.DataDir)
}

func (c *Container) initKeeper() (*secrets.Keeper, error) {
	if c.config.EncryptionKeyURI == "" {
		return nil, nil
	}
	return catalogRepository.OpenKeeper(context.Background(), c.config.EncryptionKeyURI)
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	return metrics.NewProvider(c.config.MetricsNamespace)
}

func (c *Container) initCatalogMetrics() (metrics.CatalogMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for catalog metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpCatalogMetrics(), nil
	}
	return metrics.NewCatalogMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

func (c *Container) initCatalogRepository() (catalogUseCase.CatalogRepository, error) {
	bucket, err := c.Bucket()
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket for catalog repository: %w", err)
	}
	keeper, err := c.Keeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get keeper for catalog repository: %w", err)
	}

	opts := []catalogRepository.Option{
		catalogRepository.WithKeys(c.config.ItemsKey, c.config.UsersKey),
	}
	if keeper != nil {
		opts = append(opts, catalogRepository.WithKeeper(keeper))
	}
	return catalogRepository.NewJSONCatalogRepository(bucket, opts...), nil
}

func (c *Container) initSession() (*catalogUseCase.Session, error) {
	repo, err := c.CatalogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog repository for session: %w", err)
	}
	return catalogUseCase.NewSession(repo, c.Logger()), nil
}

func (c *Container) initCatalogUseCase() (catalogUseCase.CatalogUseCase, error) {
	session, err := c.Session()
	if err != nil {
		return nil, fmt.Errorf("failed to get session for catalog use case: %w", err)
	}

	baseUseCase := catalogUseCase.NewCatalogUseCase(session)

	if c.config.MetricsEnabled {
		catalogMetrics, err := c.CatalogMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get catalog metrics for catalog use case: %w", err)
		}
		return catalogUseCase.NewCatalogUseCaseWithMetrics(baseUseCase, catalogMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initLendingUseCase() (catalogUseCase.LendingUseCase, error) {
	session, err := c.Session()
	if err != nil {
		return nil, fmt.Errorf("failed to get session for lending use case: %w", err)
	}

	baseUseCase := catalogUseCase.NewLendingUseCase(session)

	if c.config.MetricsEnabled {
		catalogMetrics, err := c.CatalogMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get catalog metrics for lending use case: %w", err)
		}
		return catalogUseCase.NewLendingUseCaseWithMetrics(baseUseCase, catalogMetrics), nil
	}

	return baseUseCase, nil
}
