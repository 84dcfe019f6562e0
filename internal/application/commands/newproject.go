package commands

import (
	"context"
	"fmt"
	"time"

	"pyxidust/internal/application"
	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// Pipeline runs after a project has been created, e.g. a geoprocessing
// workflow that fills the new project
type Pipeline func(ctx context.Context, project *domain.Project) error

// NewProjectDeps are the collaborators of NewProjectCommand
type NewProjectDeps struct {
	Counter ports.SerialCounter
	Catalog ports.CatalogLog
	Repo    ports.ProjectRepository
	Editor  ports.DocumentEditor
}

// NewProjectResult contains the created project
type NewProjectResult struct {
	Project       *domain.Project
	Archived      []string
	Substitutions int
	Message       string
}

// NewProjectCommand creates a project folder from a template, records it in
// the catalog and names its elements after the new serial
type NewProjectCommand struct {
	observer
	deps            NewProjectDeps
	Description     string
	Name            string
	Template        string
	Creator         string
	ArchivePrevious bool
	Pipeline        Pipeline
	Extension       string
	Sizes           []string
	Now             func() time.Time
}

// NewNewProjectCommand creates a new NewProjectCommand
func NewNewProjectCommand(deps NewProjectDeps, description, name, template string) *NewProjectCommand {
	return &NewProjectCommand{
		deps:        deps,
		Description: description,
		Name:        name,
		Template:    template,
		Extension:   domain.DefaultExtension,
		Sizes:       domain.DefaultTemplateSizes,
		Now:         time.Now,
	}
}

// Validate checks description, name and template in that order
func (c *NewProjectCommand) Validate() error {
	return application.ValidateProject(c.Description, c.Name, c.Template, c.Sizes)
}

// Execute runs the new project command. Nothing is minted or written when
// validation fails or the template is missing.
func (c *NewProjectCommand) Execute(ctx context.Context) (*NewProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := c.logger()
	result := &NewProjectResult{}

	if c.ArchivePrevious {
		archive := NewArchiveProjectsCommand(c.deps.Repo, c.Now().Year())
		archive.log, archive.rec = c.log, c.rec
		archived, err := archive.Execute(ctx)
		if err != nil {
			return nil, err
		}
		result.Archived = archived.Archived
	}

	templatePath, err := c.deps.Repo.TemplatePath(c.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to find template: %w", err)
	}

	base, err := c.deps.Counter.NextBase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to mint serial: %w", err)
	}
	if err := domain.CheckBase(base); err != nil {
		return nil, err
	}
	c.recorder().RecordMinted(1)
	layout := domain.NewProjectLayout(base, c.Name, c.Extension)

	entry := domain.NewCatalogEntry(base, c.Name, c.Description, c.Creator, c.Now())
	if err := c.deps.Catalog.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record %s in catalog: %w", base, err)
	}

	folder, artifact, err := c.deps.Repo.CreateProject(layout, templatePath)
	if err != nil {
		log.Warn().Str("serial", base).Msg("serial recorded in catalog without a project folder")
		return nil, fmt.Errorf("failed to create project %s: %w", layout.FolderName, err)
	}

	n, err := c.deps.Editor.Rewrite(artifact, domain.NewProjectSubstitutions(layout.FullSerial, c.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to name elements in %s: %w", layout.ArtifactName, err)
	}
	result.Substitutions = n

	project := &domain.Project{
		Serial:       base,
		FullSerial:   layout.FullSerial,
		Name:         c.Name,
		Description:  c.Description,
		Template:     c.Template,
		Folder:       folder,
		ArtifactPath: artifact,
	}
	result.Project = project
	c.recorder().RecordProject()
	log.Info().
		Str("serial", base).
		Str("folder", folder).
		Int("substitutions", n).
		Msg("created project")

	if c.Pipeline != nil {
		if err := c.Pipeline(ctx, project); err != nil {
			return result, fmt.Errorf("pipeline failed for %s: %w", layout.FolderName, err)
		}
		log.Info().Str("serial", base).Msg("pipeline finished")
	}

	result.Message = fmt.Sprintf("Created project %s (%s)", layout.FolderName, layout.FullSerial)
	return result, nil
}

// ProjectFunc creates a project and runs a pipeline on it
type ProjectFunc func(ctx context.Context, description, name, template string) (*NewProjectResult, error)

// WrapPipeline returns a decorator that creates a project before running the
// wrapped pipeline. configure, when non-nil, adjusts each command before it
// runs.
func WrapPipeline(deps NewProjectDeps, configure func(*NewProjectCommand)) func(Pipeline) ProjectFunc {
	return func(pipeline Pipeline) ProjectFunc {
		return func(ctx context.Context, description, name, template string) (*NewProjectResult, error) {
			cmd := NewNewProjectCommand(deps, description, name, template)
			cmd.ArchivePrevious = true
			cmd.Pipeline = pipeline
			if configure != nil {
				configure(cmd)
			}
			return cmd.Execute(ctx)
		}
	}
}
