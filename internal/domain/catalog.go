package domain

import "time"

const (
	// CatalogDateLayout renders the date cell of a catalog entry (MM/DD/YY)
	CatalogDateLayout = "01/02/06"
	// CatalogTimeLayout renders the time cell of a catalog entry (HH:MM:SS)
	CatalogTimeLayout = "15:04:05"
)

// CatalogEntry is one provenance row of the project catalog.
// The timestamp spans two cells so a line reads
// serial,name,description,creator,MM/DD/YY,HH:MM:SS
type CatalogEntry struct {
	Serial      string `csv:"serial"`
	Name        string `csv:"name"`
	Description string `csv:"description"`
	Creator     string `csv:"creator"`
	Date        string `csv:"date"`
	Time        string `csv:"time"`
}

// CatalogHeader names the catalog columns in file order
var CatalogHeader = []string{"serial", "name", "description", "creator", "date", "time"}

// NewCatalogEntry stamps an entry with the local time of at
func NewCatalogEntry(serial, name, description, creator string, at time.Time) CatalogEntry {
	return CatalogEntry{
		Serial:      serial,
		Name:        name,
		Description: description,
		Creator:     creator,
		Date:        at.Format(CatalogDateLayout),
		Time:        at.Format(CatalogTimeLayout),
	}
}

// Timestamp parses the date and time cells back into a local time
func (e CatalogEntry) Timestamp() (time.Time, error) {
	return time.ParseInLocation(CatalogDateLayout+" "+CatalogTimeLayout, e.Date+" "+e.Time, time.Local)
}

// ProjectLayout holds the names derived from a project's base serial
type ProjectLayout struct {
	Serial       string // base serial, e.g. 20250042
	FullSerial   string // first artifact serial, e.g. 20250042-0001
	FolderName   string // 20250042_Survey
	ArtifactName string // 20250042-0001_Survey.aprx
}

// NewProjectLayout derives folder and artifact names for a new project
func NewProjectLayout(serial, name, ext string) ProjectLayout {
	full := FirstSerial(serial)
	return ProjectLayout{
		Serial:       serial,
		FullSerial:   full,
		FolderName:   FormatFolderName(serial, name),
		ArtifactName: FormatArtifactName(full, name, ext),
	}
}
