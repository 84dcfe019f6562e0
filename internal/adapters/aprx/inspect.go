package aprx

import (
	"bytes"
	"encoding/json"
	"fmt"

	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// Inspector implements ports.ProjectInspector over CIM documents
type Inspector struct{}

var _ ports.ProjectInspector = (*Inspector)(nil)

// NewInspector creates a project inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

type cimDocument struct {
	Type             string         `json:"type"`
	MapDefinition    *cimMap        `json:"mapDefinition"`
	LayoutDefinition *cimDefinition `json:"layoutDefinition"`
}

type cimMap struct {
	Name             string          `json:"name"`
	LayerDefinitions []cimDefinition `json:"layerDefinitions"`
}

type cimDefinition struct {
	Name string `json:"name"`
}

// Inspect lists the maps, their layers and the layouts of an artifact in
// document order
func (i *Inspector) Inspect(path string) (*domain.ProjectContents, error) {
	a, err := readArtifact(path)
	if err != nil {
		return nil, err
	}

	contents := &domain.ProjectContents{}
	for _, e := range a.entries {
		if !e.isJSON() {
			continue
		}
		docs, err := decodeDocuments(e.data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", e.name, err)
		}
		for _, doc := range docs {
			collect(contents, doc)
		}
	}
	return contents, nil
}

func collect(contents *domain.ProjectContents, doc cimDocument) {
	if doc.MapDefinition != nil {
		m := domain.MapContents{Name: doc.MapDefinition.Name}
		for _, l := range doc.MapDefinition.LayerDefinitions {
			m.Layers = append(m.Layers, l.Name)
		}
		contents.Maps = append(contents.Maps, m)
	}
	if doc.LayoutDefinition != nil {
		contents.Layouts = append(contents.Layouts, doc.LayoutDefinition.Name)
	}
}

// decodeDocuments accepts a single document or an array of documents
func decodeDocuments(data []byte) ([]cimDocument, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var docs []cimDocument
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}

	var doc cimDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return []cimDocument{doc}, nil
}
