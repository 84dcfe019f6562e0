package views

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pyxidust/internal/adapters/cataloglog"
	"pyxidust/internal/adapters/filesystem"
	"pyxidust/internal/application/commands"
	"pyxidust/internal/domain"
)

type testBackend struct {
	repo    *filesystem.Repository
	catalog *cataloglog.Log
	year    int
}

func (b *testBackend) ListProjects() *commands.ListProjectsCommand {
	return commands.NewListProjectsCommand(b.repo, b.year)
}

func (b *testBackend) NewProject(description, name, template string) *commands.NewProjectCommand {
	return commands.NewNewProjectCommand(commands.NewProjectDeps{Repo: b.repo, Catalog: b.catalog}, description, name, template)
}

func (b *testBackend) ArchiveProjects() *commands.ArchiveProjectsCommand {
	return commands.NewArchiveProjectsCommand(b.repo, b.year)
}

func (b *testBackend) ListCatalog(query string) *commands.ListCatalogCommand {
	return commands.NewListCatalogCommand(b.catalog, query)
}

func (b *testBackend) TemplateSizes() []string { return domain.DefaultTemplateSizes }
func (b *testBackend) CatalogPath() string     { return b.catalog.Path() }

func setupBackend(t *testing.T, folders ...string) *testBackend {
	t.Helper()
	root := t.TempDir()
	projects := filepath.Join(root, "projects")
	for _, f := range folders {
		if err := os.MkdirAll(filepath.Join(projects, f), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(projects, 0755); err != nil {
		t.Fatal(err)
	}

	return &testBackend{
		repo: filesystem.NewRepository(filesystem.Layout{
			Projects: projects,
			Archive:  filepath.Join(root, "archive"),
		}),
		catalog: cataloglog.NewLog(filepath.Join(root, "catalog.csv")),
		year:    2025,
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func stubClipboard(t *testing.T, fn func(string) error) {
	t.Helper()
	orig := copyToClipboard
	copyToClipboard = fn
	t.Cleanup(func() { copyToClipboard = orig })
}

func loadProjects(t *testing.T, m *ProjectsModel) {
	t.Helper()
	msg := m.Init()()
	if e, ok := msg.(ErrMsg); ok {
		t.Fatalf("load failed: %v", e.Err)
	}
	m.Update(msg)
}

func TestFolderSerial(t *testing.T) {
	tests := []struct {
		folder  string
		want    string
		wantErr bool
	}{
		{"20251001_Survey", "20251001", false},
		{"20251001-0002_Survey", "20251001-0002", false},
		{"Survey", "", true},
		{"2025_Survey", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			got, err := FolderSerial(tt.folder)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FolderSerial(%q) error = %v, wantErr %v", tt.folder, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FolderSerial(%q) = %q, want %q", tt.folder, got, tt.want)
			}
		})
	}
}

func TestProjectsModel_ListsAndMarksStale(t *testing.T) {
	m := NewProjectsModel(setupBackend(t, "20241001_Old", "20251001_New"))
	loadProjects(t, m)

	view := m.View()
	for _, part := range []string{"20241001", "Old", "20251001", "New"} {
		if !strings.Contains(view, part) {
			t.Errorf("expected %s in view", part)
		}
	}

	_, cmd := m.Update(keyMsg("a"))
	if cmd == nil {
		t.Fatal("expected a command for the archive key")
	}
	msg, ok := cmd().(SwitchToArchiveMsg)
	if !ok {
		t.Fatalf("expected SwitchToArchiveMsg, got %T", cmd())
	}
	if len(msg.Stale) != 1 || msg.Stale[0] != "20241001_Old" {
		t.Errorf("Stale = %v, want [20241001_Old]", msg.Stale)
	}
}

func TestProjectsModel_CopySerial(t *testing.T) {
	var copied string
	stubClipboard(t, func(s string) error {
		copied = s
		return nil
	})

	m := NewProjectsModel(setupBackend(t, "20251001_New", "20251002_Other"))
	loadProjects(t, m)

	m.Update(keyMsg("j"))
	m.Update(keyMsg("y"))

	if copied != "20251002" {
		t.Errorf("copied %q, want 20251002", copied)
	}
	if m.MessageErr || !strings.Contains(m.Message, "20251002") {
		t.Errorf("unexpected message %q", m.Message)
	}
}

func TestProjectsModel_CopyFailure(t *testing.T) {
	stubClipboard(t, func(string) error { return errors.New("no clipboard") })

	m := NewProjectsModel(setupBackend(t, "20251001_New"))
	loadProjects(t, m)
	m.Update(keyMsg("y"))

	if !m.MessageErr || !strings.Contains(m.Message, "no clipboard") {
		t.Errorf("expected clipboard error, got %q", m.Message)
	}
}

func TestNewProjectModel_ValidationErrorStaysOnForm(t *testing.T) {
	m := NewNewProjectModel(setupBackend(t))

	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a create command")
	}
	msg := cmd()
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("expected ErrMsg for an empty form, got %T", msg)
	}

	m.Update(msg)
	if !m.MessageErr || !strings.Contains(m.View(), "name is required") {
		t.Errorf("expected the name error in the view, got %q", m.Message)
	}
}

func TestNewProjectModel_FieldErrorWhileTyping(t *testing.T) {
	m := NewNewProjectModel(setupBackend(t))

	for _, r := range "Route 9" {
		m.Update(keyMsg(string(r)))
	}
	if !strings.Contains(m.View(), "description does not accept numbers") {
		t.Errorf("expected the description error under the field, got %q", m.View())
	}

	_, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("expected no create command while a field is invalid")
	}
	if !m.MessageErr {
		t.Error("expected an error message on submit")
	}

	m.Reset()
	if m.form.Fields[fieldDescription].Err != nil {
		t.Error("expected Reset to clear field errors")
	}
}

func TestNewProjectModel_TemplateCheckedAgainstSizes(t *testing.T) {
	m := NewNewProjectModel(setupBackend(t))
	m.Update(keyMsg("tab"))
	m.Update(keyMsg("tab"))
	for _, r := range "X_1" {
		m.Update(keyMsg(string(r)))
	}
	if err := m.form.Fields[fieldTemplate].Err; err == nil || !strings.Contains(err.Error(), "invalid template size") {
		t.Errorf("expected a template size error, got %v", err)
	}
}

func TestRenderProjectRow(t *testing.T) {
	tests := []struct {
		name     string
		project  commands.ProjectSummary
		selected bool
		want     []string
		notWant  string
	}{
		{
			name:    "serial and title",
			project: commands.ProjectSummary{ProjectFolder: domain.ProjectFolder{Name: "20251001_Survey"}},
			want:    []string{"20251001", "Survey"},
			notWant: "20251001_Survey",
		},
		{
			name:     "selected stale row",
			project:  commands.ProjectSummary{ProjectFolder: domain.ProjectFolder{Name: "20241001-0002_Old"}, Stale: true},
			selected: true,
			want:     []string{"> ", "20241001-0002", "Old", "(archive)"},
		},
		{
			name:    "folder without serial",
			project: commands.ProjectSummary{ProjectFolder: domain.ProjectFolder{Name: "scratch"}},
			want:    []string{"scratch"},
			notWant: "(archive)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := RenderProjectRow(tt.project, tt.selected)
			for _, w := range tt.want {
				if !strings.Contains(row, w) {
					t.Errorf("row %q missing %q", row, w)
				}
			}
			if tt.notWant != "" && strings.Contains(row, tt.notWant) {
				t.Errorf("row %q should not contain %q", row, tt.notWant)
			}
		})
	}
}

func TestNewProjectModel_ShowsTemplateSizes(t *testing.T) {
	m := NewNewProjectModel(setupBackend(t))
	placeholder := m.form.Fields[fieldTemplate].Input.Placeholder
	if !strings.Contains(placeholder, domain.DefaultTemplateSizes[0]) {
		t.Errorf("placeholder %q does not list the template sizes", placeholder)
	}
}

func TestCatalogModel_Filter(t *testing.T) {
	b := setupBackend(t)
	at := time.Date(2025, 3, 4, 10, 0, 0, 0, time.Local)
	for _, e := range []domain.CatalogEntry{
		domain.NewCatalogEntry("20251001", "Survey", "County parcels", "ana", at),
		domain.NewCatalogEntry("20251002", "Flood", "River gauges", "ana", at),
	} {
		if err := b.catalog.Append(context.Background(), e); err != nil {
			t.Fatal(err)
		}
	}

	m := NewCatalogModel(b)
	m.Update(m.Init()())
	if len(m.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m.entries))
	}

	m.Update(keyMsg("/"))
	for _, r := range "flood" {
		m.Update(keyMsg(string(r)))
	}
	_, cmd := m.Update(keyMsg("enter"))
	m.Update(cmd())

	if len(m.entries) != 1 || m.entries[0].Serial != "20251002" {
		t.Fatalf("filter kept %v", m.entries)
	}

	_, cmd = m.Update(keyMsg("e"))
	open, ok := cmd().(OpenEditorMsg)
	if !ok || open.Path != b.catalog.Path() {
		t.Errorf("expected OpenEditorMsg for the catalog, got %v", cmd())
	}
}

func TestPaginator_SetPageSizeKeepsCursor(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(20)
	p.SetCursor(12)

	if p.CurrentPage() != 3 {
		t.Fatalf("CurrentPage() = %d, want 3", p.CurrentPage())
	}

	p.SetPageSize(10)
	if p.Cursor() != 12 || p.CurrentPage() != 2 {
		t.Errorf("cursor %d page %d, want 12 and 2", p.Cursor(), p.CurrentPage())
	}
	start, end := p.VisibleRange()
	if start != 10 || end != 20 {
		t.Errorf("VisibleRange() = %d, %d, want 10, 20", start, end)
	}
}
