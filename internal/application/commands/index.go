package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"pyxidust/internal/application"
	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// DefaultWorkers bounds concurrent artifact inspections
const DefaultWorkers = 4

// CreateIndexResult lists the files written by an index run
type CreateIndexResult struct {
	Catalog    string
	Attributes map[domain.AttributeKind]string
	Joined     map[domain.AttributeKind]string
	Artifacts  int
	Message    string
}

// CreateIndexCommand crawls a folder for artifacts, extracts their map, layer
// and layout names, and writes the attribute and joined tables next to
// Catalog.csv
type CreateIndexCommand struct {
	observer
	repo      ports.ProjectRepository
	reports   ports.ReportStore
	inspector ports.ProjectInspector
	store     ports.MetadataStore
	Directory string
	Extension string
	Workers   int
	Persist   bool
}

// NewCreateIndexCommand creates a new CreateIndexCommand. store may be nil.
func NewCreateIndexCommand(repo ports.ProjectRepository, reports ports.ReportStore, inspector ports.ProjectInspector, store ports.MetadataStore, directory string) *CreateIndexCommand {
	return &CreateIndexCommand{
		repo:      repo,
		reports:   reports,
		inspector: inspector,
		store:     store,
		Directory: directory,
		Extension: domain.DefaultExtension,
		Workers:   DefaultWorkers,
	}
}

// Validate checks the arguments
func (c *CreateIndexCommand) Validate() error {
	if err := application.ValidateRequired("directory", c.Directory); err != nil {
		return err
	}
	if c.Workers < 1 {
		return &application.ValidationError{Field: "workers", Message: "workers must be at least 1"}
	}
	return nil
}

// Execute runs the index command
func (c *CreateIndexCommand) Execute(ctx context.Context) (*CreateIndexResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := c.logger()

	crawl := NewCrawlCommand(c.repo, c.reports, c.store, c.Directory, c.Extension)
	crawl.Persist = c.Persist
	crawl.log, crawl.rec = c.log, c.rec
	crawled, err := crawl.Execute(ctx)
	if err != nil {
		return nil, err
	}

	contents, err := c.inspectAll(ctx, crawled.Records)
	if err != nil {
		return nil, err
	}

	result := &CreateIndexResult{
		Catalog:    crawled.Output,
		Attributes: make(map[domain.AttributeKind]string, len(domain.AttributeKinds)),
		Artifacts:  len(crawled.Records),
	}
	for _, kind := range domain.AttributeKinds {
		var rows []domain.AttributeRow
		for i, record := range crawled.Records {
			rows = append(rows, contents[i].AttributeRows(record.ID, kind)...)
		}

		path := filepath.Join(c.Directory, kind.FileName())
		if err := c.reports.WriteAttributes(path, kind, rows); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", kind.FileName(), err)
		}
		result.Attributes[kind] = path
		log.Debug().Str("kind", string(kind)).Int("rows", len(rows)).Msg("wrote attributes")
	}

	join := NewJoinReportsCommand(c.reports, c.Directory)
	join.Catalog = crawled.Output
	join.log, join.rec = c.log, c.rec
	joined, err := join.Execute(ctx)
	if err != nil {
		return result, err
	}
	result.Joined = joined.Joined

	result.Message = fmt.Sprintf("Indexed %d artifacts in %s", result.Artifacts, c.Directory)
	return result, nil
}

// inspectAll inspects artifacts with at most Workers in flight. Results keep
// the order of records.
func (c *CreateIndexCommand) inspectAll(ctx context.Context, records []domain.MetadataRecord) ([]*domain.ProjectContents, error) {
	contents := make([]*domain.ProjectContents, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for i, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pc, err := c.inspector.Inspect(record.FilePath)
			if err != nil {
				return &application.InspectError{Path: record.FilePath, Err: err}
			}
			contents[i] = pc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger().Error().Err(err).Msg("inspection failed")
		return nil, err
	}
	return contents, nil
}

// JoinReportsResult lists the joined tables written
type JoinReportsResult struct {
	Joined  map[domain.AttributeKind]string
	Dropped map[domain.AttributeKind]int
	Message string
}

// JoinReportsCommand joins each attribute table of a folder to its
// Catalog.csv and writes the *Joined.csv tables. Catalog rows that no
// attribute references are left out of a joined table and counted as
// dropped.
type JoinReportsCommand struct {
	observer
	reports   ports.ReportStore
	Directory string
	Catalog   string // Directory/Catalog.csv when empty
}

// NewJoinReportsCommand creates a new JoinReportsCommand
func NewJoinReportsCommand(reports ports.ReportStore, directory string) *JoinReportsCommand {
	return &JoinReportsCommand{reports: reports, Directory: directory}
}

// Validate checks the directory
func (c *JoinReportsCommand) Validate() error {
	return application.ValidateRequired("directory", c.Directory)
}

// Execute runs the join command
func (c *JoinReportsCommand) Execute(ctx context.Context) (*JoinReportsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := c.logger()

	catalogPath := c.Catalog
	if catalogPath == "" {
		catalogPath = filepath.Join(c.Directory, CatalogFileName)
	}
	metadata, err := c.reports.ReadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}

	result := &JoinReportsResult{
		Joined:  make(map[domain.AttributeKind]string, len(domain.AttributeKinds)),
		Dropped: make(map[domain.AttributeKind]int, len(domain.AttributeKinds)),
	}
	for _, kind := range domain.AttributeKinds {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		attrs, err := c.reports.ReadAttributes(filepath.Join(c.Directory, kind.FileName()))
		if err != nil {
			return result, err
		}

		rows := domain.LeftJoin(attrs, metadata)
		dropped := domain.UnmatchedMetadata(attrs, metadata)

		path := filepath.Join(c.Directory, kind.JoinedFileName())
		if err := c.reports.WriteJoined(path, kind, rows); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", kind.JoinedFileName(), err)
		}
		result.Joined[kind] = path
		result.Dropped[kind] = len(dropped)
		c.recorder().RecordJoin(string(kind), len(rows), len(dropped))

		for _, m := range dropped {
			log.Warn().
				Str("kind", string(kind)).
				Int("id", m.ID).
				Str("file", m.FilePath).
				Msg("catalog row has no attributes and is not in the joined table")
		}
	}

	result.Message = fmt.Sprintf("Wrote %d joined tables in %s", len(result.Joined), c.Directory)
	return result, nil
}
