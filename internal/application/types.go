package application

import "pyxidust/internal/domain"

// Re-export domain types for use by adapters
type (
	Serial          = domain.Serial
	CatalogEntry    = domain.CatalogEntry
	MetadataRecord  = domain.MetadataRecord
	Project         = domain.Project
	ProjectFolder   = domain.ProjectFolder
	StoredFile      = domain.StoredFile
	AttributeKind   = domain.AttributeKind
	AddMode         = domain.AddMode
	ProjectContents = domain.ProjectContents
)

const (
	AddModeClone   = domain.AddModeClone
	AddModeScratch = domain.AddModeScratch
)

// ParseSerial splits a serial into base and counter
func ParseSerial(serial string) (Serial, error) {
	return domain.ParseSerial(serial)
}

// ParseAddMode resolves an add-map mode name
func ParseAddMode(mode string) (AddMode, error) {
	return domain.ParseAddMode(mode)
}

// TemplateSizes returns the default template sizes
func TemplateSizes() []string {
	return append([]string(nil), domain.DefaultTemplateSizes...)
}
