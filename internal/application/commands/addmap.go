package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"pyxidust/internal/application"
	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// AddMapResult contains the artifacts added to a project folder
type AddMapResult struct {
	Source  string
	Serials []string
	Paths   []string
	Message string
}

// AddMapCommand adds artifacts to a project folder, either by cloning an
// existing artifact or by copying a layout template. New serials continue
// from the highest serial already in the folder.
type AddMapCommand struct {
	observer
	repo      ports.ProjectRepository
	editor    ports.DocumentEditor
	counter   ports.SerialCounter
	Directory string
	Filename  string // source artifact; the latest artifact when empty
	Mode      domain.AddMode
	Quantity  int
	Template  string // layout template size, scratch mode only
	Extension string
	Sizes     []string
}

// NewAddMapCommand creates a new AddMapCommand
func NewAddMapCommand(repo ports.ProjectRepository, editor ports.DocumentEditor, counter ports.SerialCounter, directory, filename string, mode domain.AddMode, quantity int, template string) *AddMapCommand {
	return &AddMapCommand{
		repo:      repo,
		editor:    editor,
		counter:   counter,
		Directory: directory,
		Filename:  filename,
		Mode:      mode,
		Quantity:  quantity,
		Template:  template,
		Extension: domain.DefaultExtension,
		Sizes:     domain.DefaultTemplateSizes,
	}
}

// Validate checks the arguments before anything is read or minted
func (c *AddMapCommand) Validate() error {
	if err := application.ValidateRequired("directory", c.Directory); err != nil {
		return err
	}
	if c.Quantity < 1 || c.Quantity > domain.MaxCounter {
		return &application.ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be between 1 and %d", domain.MaxCounter),
		}
	}

	switch c.Mode {
	case domain.AddModeClone:
		if c.Template != "" {
			return &application.ValidationError{
				Field:   "template",
				Message: "template is only used when adding from scratch",
			}
		}
	case domain.AddModeScratch:
		if err := application.ValidateRequired("template", c.Template); err != nil {
			return err
		}
		if err := application.ValidateTemplate(c.Template, c.Sizes); err != nil {
			return err
		}
	default:
		return &application.ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("unknown mode %q (expected clone or scratch)", c.Mode),
		}
	}

	if c.Filename != "" {
		if _, err := domain.ParseArtifactName(c.Filename, c.Extension); err != nil {
			return &application.ValidationError{Field: "filename", Message: err.Error()}
		}
	}
	return nil
}

// Execute runs the add map command
func (c *AddMapCommand) Execute(ctx context.Context) (*AddMapResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := c.logger().With().Str("directory", c.Directory).Str("mode", string(c.Mode)).Logger()

	names, err := c.repo.ListArtifacts(c.Directory, c.Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	latest, err := domain.LatestArtifact(names, c.Extension)
	if err != nil {
		return nil, fmt.Errorf("cannot add to %s: %w", c.Directory, err)
	}

	source := latest
	sourceName := latest.String()
	if c.Filename != "" {
		if !slices.Contains(names, c.Filename) {
			return nil, fmt.Errorf("%w: %s in %s", application.ErrNotFound, c.Filename, c.Directory)
		}
		source, _ = domain.ParseArtifactName(c.Filename, c.Extension)
		sourceName = c.Filename
	}

	// The copy source must exist before any serial is minted
	sourcePath := filepath.Join(c.Directory, sourceName)
	if c.Mode == domain.AddModeScratch {
		sourcePath, err = c.repo.LayoutPath(c.Template)
		if err != nil {
			return nil, err
		}
	}

	serials, err := domain.NextSerials(latest.Serial.String(), c.Quantity, func() (string, error) {
		return c.counter.NextBase(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mint serials: %w", err)
	}

	result := &AddMapResult{Source: sourcePath}
	for _, serial := range serials {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		path, err := c.addOne(sourcePath, source, serial)
		if err != nil {
			c.recorder().RecordArtifacts(string(c.Mode), len(result.Paths))
			return result, err
		}
		result.Serials = append(result.Serials, serial)
		result.Paths = append(result.Paths, path)
		log.Info().Str("serial", serial).Str("path", path).Msg("added artifact")
	}

	c.recorder().RecordMinted(len(serials))
	c.recorder().RecordArtifacts(string(c.Mode), len(result.Paths))
	result.Message = fmt.Sprintf("Added %d artifacts to %s (%s .. %s)",
		len(result.Paths), filepath.Base(c.Directory), serials[0], serials[len(serials)-1])
	return result, nil
}

func (c *AddMapCommand) addOne(sourcePath string, source domain.ArtifactName, serial string) (string, error) {
	dst := filepath.Join(c.Directory, domain.FormatArtifactName(serial, source.Title, c.Extension))
	if err := c.repo.CopyArtifact(sourcePath, dst); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Base(dst), err)
	}

	var subs []domain.Substitution
	if c.Mode == domain.AddModeClone {
		subs = domain.CloneSubstitutions(source.Serial.String(), serial, source.Title)
	} else {
		subs = domain.ScratchSubstitutions(serial, source.Title)
	}

	if _, err := c.editor.Rewrite(dst, subs); err != nil {
		rmErr := c.repo.RemoveArtifact(dst)
		return "", errors.Join(fmt.Errorf("failed to rename elements in %s: %w", filepath.Base(dst), err), rmErr)
	}
	return dst, nil
}
