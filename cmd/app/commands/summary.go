package commands

import (
	"context"
	"fmt"
	"log/slog"

	catalogUseCase "github.com/allisson/librarian/internal/catalog/usecase"
)

// RunSummary prints item counts per type, the user count and how many items are lent.
func RunSummary(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	logger *slog.Logger,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if err := loadCatalog(ctx, catalogUC, logger); err != nil {
		return err
	}

	summary, err := catalogUC.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to get summary: %w", err)
	}

	if format == "json" {
		return writeJSON(io.Writer, summary)
	}

	_, _ = fmt.Fprintf(io.Writer, "Books: %d\n", summary.Books)
	_, _ = fmt.Fprintf(io.Writer, "DVDs: %d\n", summary.DVDs)
	_, _ = fmt.Fprintf(io.Writer, "Magazines: %d\n", summary.Magazines)
	_, _ = fmt.Fprintf(io.Writer, "Total items: %d\n", summary.Items)
	_, _ = fmt.Fprintf(io.Writer, "Users: %d\n", summary.Users)
	_, err = fmt.Fprintf(io.Writer, "Lent items: %d\n", summary.Lent)
	return err
}
