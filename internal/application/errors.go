package application

import (
	"errors"
	"fmt"

	"pyxidust/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrCounterCorrupt   = domain.ErrCounterCorrupt
	ErrInvalidSerial    = domain.ErrInvalidSerial
	ErrNoArtifacts      = domain.ErrNoArtifacts
	ErrTemplateNotFound = domain.ErrTemplateNotFound
	ErrCannotArchive    = errors.New("cannot archive")
)

// SerialError is returned when a serial fails shape validation
type SerialError = domain.SerialError

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ArchiveError represents a project folder that could not be archived
type ArchiveError struct {
	Folder string
	Reason string
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("cannot archive %s: %s", e.Folder, e.Reason)
}

func (e *ArchiveError) Is(target error) bool {
	return target == ErrCannotArchive
}

// InspectError wraps a failure to read the contents of an artifact
type InspectError struct {
	Path string
	Err  error
}

func (e *InspectError) Error() string {
	return fmt.Sprintf("cannot inspect %s: %v", e.Path, e.Err)
}

func (e *InspectError) Unwrap() error {
	return e.Err
}
