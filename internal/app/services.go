// Package app wires configuration, adapters and commands together for the
// CLI, the TUI and the MCP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"pyxidust/internal/adapters/aprx"
	"pyxidust/internal/adapters/cataloglog"
	"pyxidust/internal/adapters/counterfile"
	"pyxidust/internal/adapters/csvreport"
	"pyxidust/internal/adapters/editor"
	"pyxidust/internal/adapters/filesystem"
	"pyxidust/internal/adapters/sqlite"
	"pyxidust/internal/application/commands"
	"pyxidust/internal/config"
	"pyxidust/internal/domain"
	"pyxidust/internal/logger"
	"pyxidust/internal/metrics"
	"pyxidust/internal/ports"
)

// Services holds the adapters built from a Config
type Services struct {
	Config        *config.Config
	Log           zerolog.Logger
	Metrics       *metrics.Metrics
	Repo          *filesystem.Repository
	Counter       *counterfile.Counter
	RenameCounter *counterfile.Counter
	Catalog       *cataloglog.Log
	Editor        *aprx.Editor
	Inspector     *aprx.Inspector
	Reports       *csvreport.Store
	Opener        ports.Opener
	Now           func() time.Time

	store *sqlite.Store
}

// New builds the adapters for cfg. The metadata store is opened on first use.
func New(cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Config:  cfg,
		Log:     log,
		Metrics: metrics.New(),
		Repo: filesystem.NewRepository(filesystem.Layout{
			Projects:  cfg.Paths.Projects,
			Archive:   cfg.Paths.Archive,
			Templates: cfg.Paths.Templates,
			Layouts:   cfg.Paths.Layouts,
			Extension: cfg.Extension,
		}),
		Counter:       counterfile.NewCounter(cfg.Paths.Counter),
		RenameCounter: counterfile.NewCounter(cfg.Paths.RenameCounter),
		Catalog:       cataloglog.NewLog(cfg.Paths.Catalog),
		Editor:        aprx.NewEditor(),
		Inspector:     aprx.NewInspector(),
		Reports:       csvreport.NewStore(),
		Opener:        editor.NewOpener(cfg.Editor),
		Now:           time.Now,
	}
}

// Load reads the configuration at path and builds the services with a
// logger configured from it
func Load(path string) (*Services, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	return New(cfg, log), nil
}

// Store opens the metadata store on first use
func (s *Services) Store(ctx context.Context) (*sqlite.Store, error) {
	if s.store != nil {
		return s.store, nil
	}

	path := s.Config.Paths.IndexDB
	if path == "" {
		path = sqlite.DatabasePath(s.Config.Root)
	}
	store := sqlite.NewStore(path)
	if err := store.Open(ctx); err != nil {
		return nil, err
	}
	s.Log.Debug().Str("path", path).Msg("opened metadata store")
	s.store = store
	return store, nil
}

// Close releases the metadata store and writes the metrics textfile when
// one is configured
func (s *Services) Close() error {
	var errs []error
	if s.store != nil {
		errs = append(errs, s.store.Close())
		s.store = nil
	}
	errs = append(errs, s.Metrics.WriteTextfile(s.Config.MetricsTextfile))
	return errors.Join(errs...)
}

// Fail counts a failed command
func (s *Services) Fail(command string, err error) {
	if err == nil {
		return
	}
	s.Metrics.RecordError(command)
	s.Log.Error().Err(err).Str("command", command).Msg("command failed")
}

// Year is the current year used to decide which projects are stale
func (s *Services) Year() int {
	return s.Now().Year()
}

func observe[T commands.Observable](s *Services, name string, cmd T) T {
	return commands.Observe(cmd, logger.Command(s.Log, name), s.Metrics)
}

// MintSerial builds a mint command
func (s *Services) MintSerial(existing string, quantity int) *commands.MintSerialCommand {
	return observe(s, "mint", commands.NewMintSerialCommand(s.Counter, existing, quantity))
}

// NextBase builds a command that takes a base serial from the counter
func (s *Services) NextBase() *commands.NextBaseCommand {
	return observe(s, "base", commands.NewNextBaseCommand(s.Counter))
}

// ValidateSerial builds a serial validation command
func (s *Services) ValidateSerial(serial string) *commands.ValidateSerialCommand {
	return observe(s, "validate", commands.NewValidateSerialCommand(serial))
}

// ProjectDeps returns the collaborators of project creation
func (s *Services) ProjectDeps() commands.NewProjectDeps {
	return commands.NewProjectDeps{
		Counter: s.Counter,
		Catalog: s.Catalog,
		Repo:    s.Repo,
		Editor:  s.Editor,
	}
}

func (s *Services) configureProject(cmd *commands.NewProjectCommand) {
	cmd.Creator = cataloglog.CurrentUser()
	cmd.Extension = s.Config.Extension
	cmd.Sizes = s.Config.TemplateSizes
	cmd.Now = s.Now
	observe(s, "new-project", cmd)
}

// NewProject builds a project creation command
func (s *Services) NewProject(description, name, template string) *commands.NewProjectCommand {
	cmd := commands.NewNewProjectCommand(s.ProjectDeps(), description, name, template)
	s.configureProject(cmd)
	return cmd
}

// WithProject wraps pipeline so that it runs on a freshly created project,
// archiving the projects of previous years first
func (s *Services) WithProject(pipeline commands.Pipeline) commands.ProjectFunc {
	return commands.WrapPipeline(s.ProjectDeps(), s.configureProject)(pipeline)
}

// AddMap builds an add-map command
func (s *Services) AddMap(dir, filename string, mode domain.AddMode, quantity int, template string) *commands.AddMapCommand {
	cmd := commands.NewAddMapCommand(s.Repo, s.Editor, s.Counter, dir, filename, mode, quantity, template)
	cmd.Extension = s.Config.Extension
	cmd.Sizes = s.Config.TemplateSizes
	return observe(s, "add-map", cmd)
}

// ArchiveProjects builds a command archiving projects of previous years
func (s *Services) ArchiveProjects() *commands.ArchiveProjectsCommand {
	return observe(s, "archive", commands.NewArchiveProjectsCommand(s.Repo, s.Year()))
}

// ListProjects builds a project listing command
func (s *Services) ListProjects() *commands.ListProjectsCommand {
	return observe(s, "projects", commands.NewListProjectsCommand(s.Repo, s.Year()))
}

// CleanProject builds a project clean command with the configured rules
func (s *Services) CleanProject(dir string) *commands.CleanProjectCommand {
	cmd := commands.NewCleanProjectCommand(s.Repo, dir)
	cmd.Files = s.Config.Clean.Files
	cmd.Folders = s.Config.Clean.Folders
	return observe(s, "clean", cmd)
}

// RenameFiles builds a sequential rename command
func (s *Services) RenameFiles(dir, ext string) *commands.RenameFilesCommand {
	return observe(s, "rename", commands.NewRenameFilesCommand(s.Repo, s.RenameCounter, dir, ext))
}

// Crawl builds a crawl command. The metadata store is opened only when the
// crawl is persisted.
func (s *Services) Crawl(ctx context.Context, dir, ext string, persist bool) (*commands.CrawlCommand, error) {
	cmd := commands.NewCrawlCommand(s.Repo, s.Reports, nil, dir, ext)
	if persist {
		store, err := s.Store(ctx)
		if err != nil {
			return nil, err
		}
		cmd = commands.NewCrawlCommand(s.Repo, s.Reports, store, dir, ext)
		cmd.Persist = true
	}
	return observe(s, "crawl", cmd), nil
}

// CreateIndex builds an index command
func (s *Services) CreateIndex(ctx context.Context, dir string, persist bool) (*commands.CreateIndexCommand, error) {
	cmd := commands.NewCreateIndexCommand(s.Repo, s.Reports, s.Inspector, nil, dir)
	if persist {
		store, err := s.Store(ctx)
		if err != nil {
			return nil, err
		}
		cmd = commands.NewCreateIndexCommand(s.Repo, s.Reports, s.Inspector, store, dir)
		cmd.Persist = true
	}
	cmd.Extension = s.Config.Extension
	cmd.Workers = s.Config.Index.Workers
	return observe(s, "index", cmd), nil
}

// JoinReports builds a command that rejoins existing attribute tables
func (s *Services) JoinReports(dir string) *commands.JoinReportsCommand {
	return observe(s, "join", commands.NewJoinReportsCommand(s.Reports, dir))
}

// ListCatalog builds a catalog listing command
func (s *Services) ListCatalog(query string) *commands.ListCatalogCommand {
	return observe(s, "catalog", commands.NewListCatalogCommand(s.Catalog, query))
}

// SearchFiles builds a search over persisted crawls
func (s *Services) SearchFiles(ctx context.Context, query string) (*commands.SearchFilesCommand, error) {
	store, err := s.Store(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata store: %w", err)
	}
	return observe(s, "search", commands.NewSearchFilesCommand(store, query)), nil
}

// TemplateSizes lists the template sizes accepted for new projects
func (s *Services) TemplateSizes() []string {
	return s.Config.TemplateSizes
}

// CatalogPath is the catalog file opened for editing
func (s *Services) CatalogPath() string {
	return s.Catalog.Path()
}
