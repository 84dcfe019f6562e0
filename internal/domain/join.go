package domain

import "fmt"

// AttributeKind is a category of names extracted from project artifacts
type AttributeKind string

const (
	AttributeMaps    AttributeKind = "maps"
	AttributeLayers  AttributeKind = "layers"
	AttributeLayouts AttributeKind = "layouts"
)

// AttributeKinds lists the kinds in report order
var AttributeKinds = []AttributeKind{AttributeMaps, AttributeLayers, AttributeLayouts}

// Column returns the name column header for the kind
func (k AttributeKind) Column() string {
	switch k {
	case AttributeMaps:
		return "MAP_NAME"
	case AttributeLayers:
		return "LAYER_NAME"
	case AttributeLayouts:
		return "LAYOUT_NAME"
	default:
		return "NAME"
	}
}

// FileName returns the intermediate file name, e.g. Maps.csv
func (k AttributeKind) FileName() string {
	return k.title() + ".csv"
}

// JoinedFileName returns the report file name, e.g. MapsJoined.csv
func (k AttributeKind) JoinedFileName() string {
	return k.title() + "Joined.csv"
}

func (k AttributeKind) title() string {
	switch k {
	case AttributeMaps:
		return "Maps"
	case AttributeLayers:
		return "Layers"
	case AttributeLayouts:
		return "Layouts"
	default:
		return string(k)
	}
}

// ParseAttributeKind resolves a kind by name
func ParseAttributeKind(s string) (AttributeKind, error) {
	for _, k := range AttributeKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown attribute kind: %s", s)
}

// AttributeRow is one extracted name keyed by the crawl ID of its artifact
type AttributeRow struct {
	ID   int    `csv:"ID"`
	Name string `csv:"NAME"`
}

// JoinedRow is an attribute row followed by the metadata of its artifact.
// Metadata columns are empty when the ID has no metadata row.
type JoinedRow struct {
	ID           int       `csv:"ID"`
	Name         string    `csv:"NAME"`
	FileName     string    `csv:"FILE_NAME"`
	FilePath     string    `csv:"FILE_PATH"`
	LastModified Timestamp `csv:"LAST_MODIFIED"`
	Matched      bool      `csv:"-"`
}

// LeftJoin joins attribute rows to metadata on ID with the attributes as the
// left side. Every attribute row appears once per matching metadata row, or
// once with empty metadata when nothing matches. Metadata rows without any
// attribute are not part of the result; see UnmatchedMetadata.
func LeftJoin(attrs []AttributeRow, metadata []MetadataRecord) []JoinedRow {
	byID := make(map[int][]MetadataRecord, len(metadata))
	for _, m := range metadata {
		byID[m.ID] = append(byID[m.ID], m)
	}

	joined := make([]JoinedRow, 0, len(attrs))
	for _, a := range attrs {
		matches := byID[a.ID]
		if len(matches) == 0 {
			joined = append(joined, JoinedRow{ID: a.ID, Name: a.Name})
			continue
		}
		for _, m := range matches {
			joined = append(joined, JoinedRow{
				ID:           a.ID,
				Name:         a.Name,
				FileName:     m.FileName,
				FilePath:     m.FilePath,
				LastModified: m.LastModified,
				Matched:      true,
			})
		}
	}
	return joined
}

// UnmatchedMetadata returns metadata rows that no attribute row references
func UnmatchedMetadata(attrs []AttributeRow, metadata []MetadataRecord) []MetadataRecord {
	seen := make(map[int]bool, len(attrs))
	for _, a := range attrs {
		seen[a.ID] = true
	}

	var dropped []MetadataRecord
	for _, m := range metadata {
		if !seen[m.ID] {
			dropped = append(dropped, m)
		}
	}
	return dropped
}
