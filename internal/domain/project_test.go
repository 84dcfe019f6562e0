package domain

import (
	"testing"
	"time"
)

func TestNewProjectLayout(t *testing.T) {
	layout := NewProjectLayout("20250042", "Survey", ".aprx")

	if layout.FullSerial != "20250042-0001" {
		t.Errorf("unexpected full serial: %s", layout.FullSerial)
	}
	if layout.FolderName != "20250042_Survey" {
		t.Errorf("unexpected folder: %s", layout.FolderName)
	}
	if layout.ArtifactName != "20250042-0001_Survey.aprx" {
		t.Errorf("unexpected artifact: %s", layout.ArtifactName)
	}
}

func TestNewCatalogEntry(t *testing.T) {
	at := time.Date(2025, 1, 7, 9, 5, 3, 0, time.Local)
	entry := NewCatalogEntry("20250042", "Survey", "County parcels", "gpeck", at)

	if entry.Date != "01/07/25" {
		t.Errorf("expected date 01/07/25, got %s", entry.Date)
	}
	if entry.Time != "09:05:03" {
		t.Errorf("expected time 09:05:03, got %s", entry.Time)
	}

	back, err := entry.Timestamp()
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if !back.Equal(at) {
		t.Errorf("expected %v, got %v", at, back)
	}
}

func TestProjectFolder_IsStale(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		stale bool
	}{
		{"20250042_Survey", 2025, false},
		{"20240042_Survey", 2025, true},
		{"Templates", 2025, true},
		{"2025", 2025, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ProjectFolder{Name: tt.name}
			if got := f.IsStale(tt.year); got != tt.stale {
				t.Errorf("expected stale=%v, got %v", tt.stale, got)
			}
		})
	}

	if (ProjectFolder{Name: "20240042_Survey"}).Year() != 2024 {
		t.Error("expected year 2024")
	}
	if (ProjectFolder{Name: "misc"}).Year() != 0 {
		t.Error("expected year 0 for non-project folder")
	}
}

func TestMatchesCleanRule(t *testing.T) {
	tests := []struct {
		name  string
		rules []string
		want  bool
	}{
		{"20250042-0001_Survey.aprx", DefaultCleanFiles, true},
		{"scratch.tmp", DefaultCleanFiles, true},
		{".temp_lock", DefaultCleanFiles, true},
		{"notes.txt", DefaultCleanFiles, false},
		{".backups", DefaultCleanFolders, true},
		{"Index", DefaultCleanFolders, true},
		{"ProjectIndex", DefaultCleanFolders, true},
		{"GPMessages", DefaultCleanFolders, true},
		{"Exports", DefaultCleanFolders, false},
		{"anything", []string{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesCleanRule(tt.name, tt.rules); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSubstitutions(t *testing.T) {
	subs := NewProjectSubstitutions("20250042-0001", "Survey")
	want := map[string]string{
		"text:SERIAL_NUMBER": "20250042-0001",
		"text:TITLE":         "Survey",
		"name:Map":           "20250042-0001",
		"name:Layout":        "20250042-0001",
	}
	if len(subs) != len(want) {
		t.Fatalf("expected %d substitutions, got %d", len(want), len(subs))
	}
	for _, s := range subs {
		if want[s.Field+":"+s.Old] != s.New {
			t.Errorf("unexpected substitution %s", s)
		}
	}

	clone := CloneSubstitutions("20250042-0001", "20250042-0002", "Survey")
	if clone[0].Old != "20250042-0001_Survey" || clone[0].New != "20250042-0002_Survey" {
		t.Errorf("unexpected clone rename: %s", clone[0])
	}

	scratch := ScratchSubstitutions("20250042-0003", "Survey")
	if scratch[0].Old != PlaceholderMap || scratch[0].New != "20250042-0003_Survey" {
		t.Errorf("unexpected scratch rename: %s", scratch[0])
	}
}

func TestParseAddMode(t *testing.T) {
	if m, err := ParseAddMode(" Clone "); err != nil || m != AddModeClone {
		t.Errorf("expected clone, got %s, %v", m, err)
	}
	if m, err := ParseAddMode("scratch"); err != nil || m != AddModeScratch {
		t.Errorf("expected scratch, got %s, %v", m, err)
	}
	if _, err := ParseAddMode("copy"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestProjectContents_AttributeRows(t *testing.T) {
	c := &ProjectContents{
		Maps: []MapContents{
			{Name: "Overview", Layers: []string{"Roads", "Parcels"}},
			{Name: "Inset", Layers: []string{"Hillshade"}},
		},
		Layouts: []string{"20250042-0001"},
	}

	if got := c.AttributeRows(3, AttributeMaps); len(got) != 2 || got[1].Name != "Inset" || got[1].ID != 3 {
		t.Errorf("unexpected map rows: %+v", got)
	}
	if got := c.AttributeRows(3, AttributeLayers); len(got) != 3 || got[2].Name != "Hillshade" {
		t.Errorf("unexpected layer rows: %+v", got)
	}
	if got := c.AttributeRows(3, AttributeLayouts); len(got) != 1 {
		t.Errorf("unexpected layout rows: %+v", got)
	}
}
