package commands

import (
	"context"
	"fmt"

	"pyxidust/internal/application"
	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// SearchFilesResult contains files remembered from earlier crawls
type SearchFilesResult struct {
	Files   []domain.StoredFile
	Message string
}

// SearchFilesCommand searches crawled files by name
type SearchFilesCommand struct {
	observer
	store ports.MetadataStore
	Query string
}

// NewSearchFilesCommand creates a new SearchFilesCommand
func NewSearchFilesCommand(store ports.MetadataStore, query string) *SearchFilesCommand {
	return &SearchFilesCommand{
		store: store,
		Query: query,
	}
}

// Validate checks that a query was given
func (c *SearchFilesCommand) Validate() error {
	return application.ValidateRequired("query", c.Query)
}

// Execute runs the search command
func (c *SearchFilesCommand) Execute(ctx context.Context) (*SearchFilesResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	files, err := c.store.Search(ctx, c.Query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return &SearchFilesResult{
		Files:   files,
		Message: fmt.Sprintf("Found %d files matching %q", len(files), c.Query),
	}, nil
}
