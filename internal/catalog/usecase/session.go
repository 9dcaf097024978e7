package usecase

import (
	"context"
	"log/slog"
	"sync"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
)

// Session owns the in-memory catalog shared by the catalog and lending use cases.
// Every read and write goes through one mutex, so a borrow's availability check
// and its mutation form a single critical section.
type Session struct {
	mu      sync.Mutex
	catalog *catalogDomain.Catalog
	repo    CatalogRepository
	logger  *slog.Logger
}

// NewSession creates a session over an empty catalog. Call CatalogUseCase.Load
// to populate it from the repository.
func NewSession(repo CatalogRepository, logger *slog.Logger) *Session {
	return &Session{
		catalog: catalogDomain.NewCatalog(),
		repo:    repo,
		logger:  logger,
	}
}

// run executes fn with exclusive access to the catalog.
func (s *Session) run(fn func(c *catalogDomain.Catalog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.catalog)
}

func (s *Session) load(ctx context.Context) (*catalogDomain.LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, report, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.catalog = catalog

	for _, issue := range report.Issues {
		s.logger.Warn("catalog load issue",
			slog.String("kind", string(issue.Kind)),
			slog.String("document", issue.Document),
			slog.Int("index", issue.Index),
			slog.String("record_id", issue.RecordID),
			slog.String("error", issue.Err.Error()),
		)
	}
	s.logger.Info("catalog loaded",
		slog.Int("items", report.Items),
		slog.Int("users", report.Users),
		slog.Int("issues", len(report.Issues)),
	)
	return report, nil
}

func (s *Session) save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, s.catalog); err != nil {
		return err
	}
	s.logger.Info("catalog saved",
		slog.Int("items", len(s.catalog.Items())),
		slog.Int("users", len(s.catalog.Users())),
	)
	return nil
}
