// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	catalogDomain "github.com/allisson/librarian/internal/catalog/domain"
	catalogUseCase "github.com/allisson/librarian/internal/catalog/usecase"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// validateFormat rejects output formats other than text and json.
func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}

// loadCatalog populates the session from storage. Load issues are already
// logged by the use case; a summary warning is added when any were found.
func loadCatalog(ctx context.Context, catalogUC catalogUseCase.CatalogUseCase, logger *slog.Logger) error {
	report, err := catalogUC.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if report != nil && report.HasIssues() {
		logger.Warn("catalog loaded with issues", slog.Int("issues", len(report.Issues)))
	}
	return nil
}

// saveCatalog writes the session back to storage.
func saveCatalog(ctx context.Context, catalogUC catalogUseCase.CatalogUseCase) error {
	if err := catalogUC.Save(ctx); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// mutate loads the catalog, runs fn and saves only when fn succeeded.
func mutate(
	ctx context.Context,
	catalogUC catalogUseCase.CatalogUseCase,
	logger *slog.Logger,
	fn func() error,
) error {
	if err := loadCatalog(ctx, catalogUC, logger); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return saveCatalog(ctx, catalogUC)
}

// itemOutput is the JSON shape of an item.
type itemOutput struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	Available  bool   `json:"available"`
	Genre      string `json:"genre,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	ReservedBy string `json:"reserved_by,omitempty"`
}

func newItemOutput(item catalogDomain.Item) itemOutput {
	attrs := item.Attrs()
	out := itemOutput{
		ID:        item.ID(),
		Type:      item.Type().String(),
		Title:     attrs.Title,
		Author:    attrs.Author,
		Year:      attrs.Year,
		Available: attrs.Available,
	}
	if item.Type() == catalogDomain.ItemTypeDVD {
		out.Duration = attrs.Duration
	} else {
		out.Genre = attrs.Genre
	}
	if reservable, ok := item.(catalogDomain.Reservable); ok {
		out.ReservedBy = reservable.ReservedBy()
	}
	return out
}

// userOutput is the JSON shape of a user.
type userOutput struct {
	ID            string   `json:"id"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	BorrowedItems []string `json:"borrowed_items"`
}

func newUserOutput(user *catalogDomain.User) userOutput {
	return userOutput{
		ID:            user.ID(),
		FirstName:     user.FirstName(),
		LastName:      user.LastName(),
		BorrowedItems: user.BorrowedItems(),
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(writer io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(writer, string(jsonBytes))
	return err
}

// writeItem renders one item as its display record or as a JSON object.
func writeItem(writer io.Writer, format string, item catalogDomain.Item) error {
	if format == "json" {
		return writeJSON(writer, newItemOutput(item))
	}
	_, err := fmt.Fprintln(writer, item.Display())
	return err
}

// writeUser renders one user as its display record or as a JSON object.
func writeUser(writer io.Writer, format string, user *catalogDomain.User) error {
	if format == "json" {
		return writeJSON(writer, newUserOutput(user))
	}
	_, err := fmt.Fprintln(writer, user.Display())
	return err
}

// writeItems renders items one record per block in text mode, or as a JSON array.
func writeItems(writer io.Writer, format string, items []catalogDomain.Item) error {
	if format == "json" {
		out := make([]itemOutput, 0, len(items))
		for _, item := range items {
			out = append(out, newItemOutput(item))
		}
		return writeJSON(writer, out)
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(writer, "No items found.")
		return err
	}
	for i, item := range items {
		if i > 0 {
			_, _ = fmt.Fprintln(writer)
		}
		if _, err := fmt.Fprintln(writer, item.Display()); err != nil {
			return err
		}
	}
	return nil
}

// writeUsers renders users one record per block in text mode, or as a JSON array.
func writeUsers(writer io.Writer, format string, users []*catalogDomain.User) error {
	if format == "json" {
		out := make([]userOutput, 0, len(users))
		for _, user := range users {
			out = append(out, newUserOutput(user))
		}
		return writeJSON(writer, out)
	}

	if len(users) == 0 {
		_, err := fmt.Fprintln(writer, "No users found.")
		return err
	}
	for i, user := range users {
		if i > 0 {
			_, _ = fmt.Fprintln(writer)
		}
		if _, err := fmt.Fprintln(writer, user.Display()); err != nil {
			return err
		}
	}
	return nil
}

// writeResult prints a one-line confirmation in text mode, or a small JSON object.
func writeResult(writer io.Writer, format, message string, fields map[string]string) error {
	if format == "json" {
		return writeJSON(writer, fields)
	}
	_, err := fmt.Fprintln(writer, message)
	return err
}
