package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultExtension is the artifact extension for project documents
const DefaultExtension = ".aprx"

// ErrTemplateNotFound is returned when a template file does not exist
var ErrTemplateNotFound = errors.New("template not found")

// Placeholders found in project templates
const (
	PlaceholderSerial = "SERIAL_NUMBER"
	PlaceholderTitle  = "TITLE"
	PlaceholderMap    = "Map"
	PlaceholderLayout = "Layout"
)

// Document fields rewritten in artifacts
const (
	FieldName = "name"
	FieldText = "text"
)

// DefaultTemplateSizes are the layout templates a project can start from
var DefaultTemplateSizes = []string{
	"P_08x11", "P_11x17", "P_18x24", "P_24x36", "P_36x48",
	"L_08x11", "L_11x17", "L_18x24", "L_24x36", "L_36x48",
}

// Default leftovers removed when a project folder is cleaned.
// A name matches when it starts or ends with one of the entries.
var (
	DefaultCleanFiles   = []string{".aprx", ".temp", ".tmp"}
	DefaultCleanFolders = []string{".", "Index", "GPMessages", "Raster"}
)

// MatchesCleanRule reports whether name starts or ends with any rule
func MatchesCleanRule(name string, rules []string) bool {
	for _, rule := range rules {
		if rule == "" {
			continue
		}
		if strings.HasPrefix(name, rule) || strings.HasSuffix(name, rule) {
			return true
		}
	}
	return false
}

// Project is a project folder created from a template
type Project struct {
	Serial       string
	FullSerial   string
	Name         string
	Description  string
	Template     string
	Folder       string // absolute folder path
	ArtifactPath string // absolute path of the first artifact
}

// ProjectFolder is an existing folder under the projects root
type ProjectFolder struct {
	Name string
	Path string
}

// Year returns the leading four digits of the folder name, or 0
func (f ProjectFolder) Year() int {
	if len(f.Name) < 4 {
		return 0
	}
	year, err := strconv.Atoi(f.Name[:4])
	if err != nil {
		return 0
	}
	return year
}

// IsStale reports whether the folder does not belong to the given year
func (f ProjectFolder) IsStale(year int) bool {
	return !strings.HasPrefix(f.Name, strconv.Itoa(year))
}

// CleanStats counts what a project clean removed
type CleanStats struct {
	FilesRemoved   int
	FoldersRemoved int
}

// Substitution replaces a document string value of Field equal to Old with New
type Substitution struct {
	Field string
	Old   string
	New   string
}

func (s Substitution) String() string {
	return fmt.Sprintf("%s: %q -> %q", s.Field, s.Old, s.New)
}

// NewProjectSubstitutions names the elements of a freshly copied template
func NewProjectSubstitutions(fullSerial, name string) []Substitution {
	return []Substitution{
		{Field: FieldText, Old: PlaceholderSerial, New: fullSerial},
		{Field: FieldText, Old: PlaceholderTitle, New: name},
		{Field: FieldName, Old: PlaceholderMap, New: fullSerial},
		{Field: FieldName, Old: PlaceholderLayout, New: fullSerial},
	}
}

// ScratchSubstitutions names the elements of a layout template added to a project
func ScratchSubstitutions(newSerial, title string) []Substitution {
	project := FormatFolderName(newSerial, title)
	return []Substitution{
		{Field: FieldName, Old: PlaceholderMap, New: project},
		{Field: FieldName, Old: PlaceholderLayout, New: project},
		{Field: FieldText, Old: PlaceholderSerial, New: newSerial},
	}
}

// CloneSubstitutions renames the elements of a copied artifact
func CloneSubstitutions(oldSerial, newSerial, title string) []Substitution {
	return []Substitution{
		{Field: FieldName, Old: FormatFolderName(oldSerial, title), New: FormatFolderName(newSerial, title)},
		{Field: FieldName, Old: oldSerial, New: newSerial},
		{Field: FieldText, Old: oldSerial, New: newSerial},
	}
}

// AddMode selects how add-map produces new artifacts
type AddMode string

const (
	// AddModeClone copies an existing artifact of the project
	AddModeClone AddMode = "clone"
	// AddModeScratch copies a layout template
	AddModeScratch AddMode = "scratch"
)

// ParseAddMode resolves an add-map mode
func ParseAddMode(s string) (AddMode, error) {
	switch AddMode(strings.ToLower(strings.TrimSpace(s))) {
	case AddModeClone:
		return AddModeClone, nil
	case AddModeScratch:
		return AddModeScratch, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected clone or scratch)", s)
	}
}

// MapContents is a map and its layers inside an artifact
type MapContents struct {
	Name   string
	Layers []string
}

// ProjectContents lists what an artifact contains
type ProjectContents struct {
	Maps    []MapContents
	Layouts []string
}

// AttributeRows flattens the contents into rows of one kind keyed by id
func (c *ProjectContents) AttributeRows(id int, kind AttributeKind) []AttributeRow {
	var rows []AttributeRow
	switch kind {
	case AttributeMaps:
		for _, m := range c.Maps {
			rows = append(rows, AttributeRow{ID: id, Name: m.Name})
		}
	case AttributeLayers:
		for _, m := range c.Maps {
			for _, l := range m.Layers {
				rows = append(rows, AttributeRow{ID: id, Name: l})
			}
		}
	case AttributeLayouts:
		for _, l := range c.Layouts {
			rows = append(rows, AttributeRow{ID: id, Name: l})
		}
	}
	return rows
}
