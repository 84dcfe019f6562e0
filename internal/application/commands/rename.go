package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"pyxidust/internal/application"
	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// Rename is one file renamed by RenameFilesCommand
type Rename struct {
	From string
	To   string
}

// RenameFilesResult contains the renames in order
type RenameFilesResult struct {
	Renames []Rename
	Message string
}

// RenameFilesCommand renames the files of a folder to consecutive numbers
// taken from a counter file, keeping each extension
type RenameFilesCommand struct {
	observer
	repo      ports.ProjectRepository
	sequence  ports.Sequence
	Directory string
	Extension string // only files with this extension; any extension when empty
}

// NewRenameFilesCommand creates a new RenameFilesCommand
func NewRenameFilesCommand(repo ports.ProjectRepository, sequence ports.Sequence, directory, extension string) *RenameFilesCommand {
	return &RenameFilesCommand{
		repo:      repo,
		sequence:  sequence,
		Directory: directory,
		Extension: NormalizeExtension(extension),
	}
}

// Validate checks the directory
func (c *RenameFilesCommand) Validate() error {
	return application.ValidateRequired("directory", c.Directory)
}

// Execute runs the rename command
func (c *RenameFilesCommand) Execute(ctx context.Context) (*RenameFilesResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	names, err := c.repo.ListFiles(c.Directory, c.Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	result := &RenameFilesResult{}
	for _, name := range names {
		n, err := c.sequence.Next(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to read counter: %w", err)
		}

		to := domain.SequentialName(n, filepath.Ext(name))
		if err := c.repo.RenameFile(c.Directory, name, to); err != nil {
			return result, err
		}
		result.Renames = append(result.Renames, Rename{From: name, To: to})
		c.logger().Debug().Str("from", name).Str("to", to).Msg("renamed file")
	}

	result.Message = fmt.Sprintf("Renamed %d files", len(result.Renames))
	return result, nil
}
