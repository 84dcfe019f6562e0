package commands

import (
	"context"
	"fmt"

	"pyxidust/internal/application"
	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// ArchiveProjectsResult contains the folders moved to the archive
type ArchiveProjectsResult struct {
	Archived []string
	Message  string
}

// ArchiveProjectsCommand moves project folders that do not belong to Year
// into the archive
type ArchiveProjectsCommand struct {
	observer
	repo ports.ProjectRepository
	Year int
}

// NewArchiveProjectsCommand creates a new ArchiveProjectsCommand
func NewArchiveProjectsCommand(repo ports.ProjectRepository, year int) *ArchiveProjectsCommand {
	return &ArchiveProjectsCommand{
		repo: repo,
		Year: year,
	}
}

// Validate checks the year
func (c *ArchiveProjectsCommand) Validate() error {
	if c.Year < 1000 || c.Year > 9999 {
		return &application.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("expected a four digit year, got: %d", c.Year),
		}
	}
	return nil
}

// Execute runs the archive command. It stops at the first folder that
// cannot be moved; folders moved before that stay archived.
func (c *ArchiveProjectsCommand) Execute(ctx context.Context) (*ArchiveProjectsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	folders, err := c.repo.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	result := &ArchiveProjectsResult{}
	for _, f := range folders {
		if !f.IsStale(c.Year) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		dst, err := c.repo.ArchiveProject(f)
		if err != nil {
			return result, &application.ArchiveError{Folder: f.Name, Reason: err.Error()}
		}
		result.Archived = append(result.Archived, dst)
		c.logger().Info().Str("folder", f.Name).Str("archive", dst).Msg("archived project")
	}

	if len(result.Archived) == 0 {
		result.Message = fmt.Sprintf("No projects outside %d", c.Year)
	} else {
		result.Message = fmt.Sprintf("Archived %d projects", len(result.Archived))
	}
	return result, nil
}

// ProjectSummary is a project folder with its status for the current year
type ProjectSummary struct {
	domain.ProjectFolder
	Stale bool
}

// ListProjectsResult contains the project folders
type ListProjectsResult struct {
	Projects []ProjectSummary
	Message  string
}

// ListProjectsCommand lists the project folders
type ListProjectsCommand struct {
	observer
	repo ports.ProjectRepository
	Year int
}

// NewListProjectsCommand creates a new ListProjectsCommand
func NewListProjectsCommand(repo ports.ProjectRepository, year int) *ListProjectsCommand {
	return &ListProjectsCommand{repo: repo, Year: year}
}

// Execute runs the list command
func (c *ListProjectsCommand) Execute(ctx context.Context) (*ListProjectsResult, error) {
	folders, err := c.repo.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	result := &ListProjectsResult{}
	for _, f := range folders {
		result.Projects = append(result.Projects, ProjectSummary{
			ProjectFolder: f,
			Stale:         f.IsStale(c.Year),
		})
	}
	result.Message = fmt.Sprintf("%d projects", len(result.Projects))
	return result, nil
}

// CleanProjectResult contains what a clean removed
type CleanProjectResult struct {
	Stats   *domain.CleanStats
	Message string
}

// CleanProjectCommand removes project documents and scratch folders from a
// project folder, for workflows that only keep the data
type CleanProjectCommand struct {
	observer
	repo      ports.ProjectRepository
	Directory string
	Files     []string
	Folders   []string
}

// NewCleanProjectCommand creates a new CleanProjectCommand with the default
// clean rules
func NewCleanProjectCommand(repo ports.ProjectRepository, directory string) *CleanProjectCommand {
	return &CleanProjectCommand{
		repo:      repo,
		Directory: directory,
		Files:     domain.DefaultCleanFiles,
		Folders:   domain.DefaultCleanFolders,
	}
}

// Validate checks the directory
func (c *CleanProjectCommand) Validate() error {
	return application.ValidateRequired("directory", c.Directory)
}

// Execute runs the clean command
func (c *CleanProjectCommand) Execute(ctx context.Context) (*CleanProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	stats, err := c.repo.CleanProject(c.Directory, c.Files, c.Folders)
	if err != nil {
		return nil, fmt.Errorf("failed to clean project: %w", err)
	}

	c.logger().Info().
		Str("directory", c.Directory).
		Int("files", stats.FilesRemoved).
		Int("folders", stats.FoldersRemoved).
		Msg("cleaned project")

	return &CleanProjectResult{
		Stats:   stats,
		Message: fmt.Sprintf("Removed %d files and %d folders", stats.FilesRemoved, stats.FoldersRemoved),
	}, nil
}
