package commands

import (
	"context"
	"fmt"
	"strings"

	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// ListCatalogResult contains catalog entries in file order
type ListCatalogResult struct {
	Entries []domain.CatalogEntry
	Path    string
	Message string
}

// ListCatalogCommand reads the project catalog, optionally filtered
type ListCatalogCommand struct {
	observer
	catalog ports.CatalogLog
	Query   string // matches serial, name, description or creator
}

// NewListCatalogCommand creates a new ListCatalogCommand
func NewListCatalogCommand(catalog ports.CatalogLog, query string) *ListCatalogCommand {
	return &ListCatalogCommand{catalog: catalog, Query: query}
}

// Execute runs the list command
func (c *ListCatalogCommand) Execute(ctx context.Context) (*ListCatalogResult, error) {
	entries, err := c.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(c.Query))
	if query != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if matchesEntry(e, query) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	return &ListCatalogResult{
		Entries: entries,
		Path:    c.catalog.Path(),
		Message: fmt.Sprintf("%d catalog entries", len(entries)),
	}, nil
}

func matchesEntry(e domain.CatalogEntry, query string) bool {
	for _, field := range []string{e.Serial, e.Name, e.Description, e.Creator} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
