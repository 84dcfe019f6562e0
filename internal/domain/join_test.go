package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sampleMetadata() []MetadataRecord {
	t1 := NewTimestamp(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	t2 := NewTimestamp(time.Date(2025, 3, 2, 11, 30, 0, 0, time.UTC))
	return []MetadataRecord{
		{ID: 1, FileName: "f1.aprx", FilePath: "/p/f1.aprx", LastModified: t1},
		{ID: 2, FileName: "f2.aprx", FilePath: "/p/f2.aprx", LastModified: t2},
	}
}

func TestLeftJoin(t *testing.T) {
	meta := sampleMetadata()

	tests := []struct {
		name  string
		attrs []AttributeRow
		want  []JoinedRow
	}{
		{
			name:  "one match per attribute",
			attrs: []AttributeRow{{ID: 1, Name: "Map_A"}, {ID: 2, Name: "Map_B"}},
			want: []JoinedRow{
				{ID: 1, Name: "Map_A", FileName: "f1.aprx", FilePath: "/p/f1.aprx", LastModified: meta[0].LastModified, Matched: true},
				{ID: 2, Name: "Map_B", FileName: "f2.aprx", FilePath: "/p/f2.aprx", LastModified: meta[1].LastModified, Matched: true},
			},
		},
		{
			name:  "missing key keeps attribute with empty metadata",
			attrs: []AttributeRow{{ID: 99, Name: "Orphan"}},
			want:  []JoinedRow{{ID: 99, Name: "Orphan"}},
		},
		{
			name:  "many attributes to one artifact",
			attrs: []AttributeRow{{ID: 2, Name: "Roads"}, {ID: 2, Name: "Parcels"}},
			want: []JoinedRow{
				{ID: 2, Name: "Roads", FileName: "f2.aprx", FilePath: "/p/f2.aprx", LastModified: meta[1].LastModified, Matched: true},
				{ID: 2, Name: "Parcels", FileName: "f2.aprx", FilePath: "/p/f2.aprx", LastModified: meta[1].LastModified, Matched: true},
			},
		},
		{
			name:  "no attributes",
			attrs: nil,
			want:  []JoinedRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LeftJoin(tt.attrs, meta)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LeftJoin mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLeftJoin_DuplicateMetadataKeys(t *testing.T) {
	meta := []MetadataRecord{
		{ID: 1, FileName: "a.aprx"},
		{ID: 1, FileName: "b.aprx"},
	}
	got := LeftJoin([]AttributeRow{{ID: 1, Name: "Map"}}, meta)
	if len(got) != 2 {
		t.Fatalf("expected a row per metadata match, got %d", len(got))
	}
	if got[0].FileName != "a.aprx" || got[1].FileName != "b.aprx" {
		t.Errorf("expected metadata order preserved, got %s, %s", got[0].FileName, got[1].FileName)
	}
}

func TestUnmatchedMetadata(t *testing.T) {
	meta := sampleMetadata()

	dropped := UnmatchedMetadata([]AttributeRow{{ID: 1, Name: "Map_A"}}, meta)
	want := []MetadataRecord{meta[1]}
	if diff := cmp.Diff(want, dropped); diff != "" {
		t.Errorf("UnmatchedMetadata mismatch (-want +got):\n%s", diff)
	}

	if got := UnmatchedMetadata([]AttributeRow{{ID: 1}, {ID: 2}}, meta); len(got) != 0 {
		t.Errorf("expected nothing dropped, got %v", got)
	}
}

func TestAttributeKind(t *testing.T) {
	tests := []struct {
		kind   AttributeKind
		column string
		file   string
		joined string
	}{
		{AttributeMaps, "MAP_NAME", "Maps.csv", "MapsJoined.csv"},
		{AttributeLayers, "LAYER_NAME", "Layers.csv", "LayersJoined.csv"},
		{AttributeLayouts, "LAYOUT_NAME", "Layouts.csv", "LayoutsJoined.csv"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if tt.kind.Column() != tt.column {
				t.Errorf("expected column %s, got %s", tt.column, tt.kind.Column())
			}
			if tt.kind.FileName() != tt.file {
				t.Errorf("expected file %s, got %s", tt.file, tt.kind.FileName())
			}
			if tt.kind.JoinedFileName() != tt.joined {
				t.Errorf("expected joined file %s, got %s", tt.joined, tt.kind.JoinedFileName())
			}
			parsed, err := ParseAttributeKind(string(tt.kind))
			if err != nil || parsed != tt.kind {
				t.Errorf("ParseAttributeKind(%s) = %s, %v", tt.kind, parsed, err)
			}
		})
	}

	if _, err := ParseAttributeKind("rasters"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
