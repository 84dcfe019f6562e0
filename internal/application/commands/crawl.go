package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"pyxidust/internal/application"
	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// CatalogFileName is the metadata table written by a crawl
const CatalogFileName = "Catalog.csv"

// CrawlResult contains the metadata table of a crawl
type CrawlResult struct {
	Records []domain.MetadataRecord
	Output  string
	Sync    *domain.SyncStats // nil unless the crawl was persisted
	Message string
}

// CrawlCommand walks a folder for files with an extension and writes their
// metadata to Catalog.csv. IDs are 1-based in path order.
type CrawlCommand struct {
	observer
	repo      ports.ProjectRepository
	reports   ports.ReportStore
	store     ports.MetadataStore
	Directory string
	Extension string
	Output    string // Directory/Catalog.csv when empty
	Persist   bool   // also sync the metadata store
}

// NewCrawlCommand creates a new CrawlCommand. store may be nil when crawls
// are never persisted.
func NewCrawlCommand(repo ports.ProjectRepository, reports ports.ReportStore, store ports.MetadataStore, directory, extension string) *CrawlCommand {
	return &CrawlCommand{
		repo:      repo,
		reports:   reports,
		store:     store,
		Directory: directory,
		Extension: NormalizeExtension(extension),
	}
}

// Validate checks the arguments
func (c *CrawlCommand) Validate() error {
	if err := application.ValidateRequired("directory", c.Directory); err != nil {
		return err
	}
	if err := application.ValidateRequired("extension", c.Extension); err != nil {
		return err
	}
	if c.Persist && c.store == nil {
		return &application.ValidationError{
			Field:   "persist",
			Message: "no metadata store configured",
		}
	}
	return nil
}

// Execute runs the crawl command
func (c *CrawlCommand) Execute(ctx context.Context) (*CrawlResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := c.logger().With().Str("directory", c.Directory).Str("extension", c.Extension).Logger()

	files, err := c.repo.Crawl(c.Directory, c.Extension)
	if err != nil {
		return nil, err
	}
	records := domain.BuildCatalog(files)

	output := c.Output
	if output == "" {
		output = filepath.Join(c.Directory, CatalogFileName)
	}
	if err := c.reports.WriteCatalog(output, records); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", output, err)
	}
	c.recorder().RecordCrawl(len(records))
	log.Info().Int("files", len(records)).Str("output", output).Msg("crawled")

	result := &CrawlResult{
		Records: records,
		Output:  output,
		Message: fmt.Sprintf("Found %d %s files, wrote %s", len(records), c.Extension, output),
	}

	if c.Persist {
		stats, err := c.store.Sync(ctx, c.Directory, files)
		if err != nil {
			return result, fmt.Errorf("failed to persist crawl: %w", err)
		}
		result.Sync = stats
		log.Info().
			Int("added", stats.FilesAdded).
			Int("updated", stats.FilesUpdated).
			Int("deleted", stats.FilesDeleted).
			Dur("duration", stats.Duration).
			Msg("synced metadata store")
	}

	return result, nil
}

// NormalizeExtension lowercases ext and gives it a leading dot.
// An empty extension stays empty.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
