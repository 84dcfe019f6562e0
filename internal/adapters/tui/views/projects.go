package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pyxidust/internal/application"
	"pyxidust/internal/application/commands"
)

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

// ProjectsKeyMap defines the actions of the projects view
type ProjectsKeyMap struct {
	New     key.Binding
	Archive key.Binding
	Catalog key.Binding
	Reload  key.Binding
}

var ProjectsKeys = ProjectsKeyMap{
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new project"),
	),
	Archive: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "archive"),
	),
	Catalog: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "catalog"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
}

// ProjectsModel lists the project folders
type ProjectsModel struct {
	ViewState
	backend  Backend
	projects []commands.ProjectSummary
	pager    *Paginator
}

// NewProjectsModel creates a new projects view model
func NewProjectsModel(backend Backend) *ProjectsModel {
	return &ProjectsModel{
		backend: backend,
		pager:   NewPaginator(10),
	}
}

type projectsLoadedMsg struct {
	projects []commands.ProjectSummary
}

// Init loads the project folders
func (m *ProjectsModel) Init() tea.Cmd {
	return m.load
}

// Reload reloads the project folders
func (m *ProjectsModel) Reload() tea.Cmd {
	return m.load
}

func (m *ProjectsModel) load() tea.Msg {
	result, err := m.backend.ListProjects().Execute(context.Background())
	if err != nil {
		return ErrMsg{Err: err}
	}
	return projectsLoadedMsg{projects: result.Projects}
}

// SetSize updates the view dimensions and the page size
func (m *ProjectsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(m.pageSize())
}

// Update handles messages for the projects view
func (m *ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		m.projects = msg.projects
		m.pager.SetTotal(len(m.projects))
		return m, nil

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		if navigate(m.pager, msg) {
			return m, nil
		}

		switch {
		case key.Matches(msg, ListKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, ListKeys.Help):
			return m, switchTo(SwitchToHelpMsg{})
		case key.Matches(msg, ListKeys.Copy):
			m.copySerial()
			return m, nil
		case key.Matches(msg, ProjectsKeys.New):
			return m, switchTo(SwitchToNewProjectMsg{})
		case key.Matches(msg, ProjectsKeys.Archive):
			return m, switchTo(SwitchToArchiveMsg{Stale: m.stale()})
		case key.Matches(msg, ProjectsKeys.Catalog):
			return m, switchTo(SwitchToCatalogMsg{})
		case key.Matches(msg, ProjectsKeys.Reload):
			return m, m.load
		}
	}

	return m, nil
}

func (m *ProjectsModel) selected() *commands.ProjectSummary {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.projects) {
		return nil
	}
	return &m.projects[i]
}

func (m *ProjectsModel) stale() []string {
	var names []string
	for _, p := range m.projects {
		if p.Stale {
			names = append(names, p.Name)
		}
	}
	return names
}

func (m *ProjectsModel) copySerial() {
	p := m.selected()
	if p == nil {
		return
	}
	serial, err := FolderSerial(p.Name)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	if err := copyToClipboard(serial); err != nil {
		m.SetMessage(fmt.Sprintf("clipboard: %v", err), true)
		return
	}
	m.SetMessage("Copied "+serial, false)
}

// FolderSerial returns the base serial a project folder is named after
func FolderSerial(folder string) (string, error) {
	prefix, _, _ := strings.Cut(folder, "_")
	serial, err := application.ParseSerial(prefix)
	if err != nil {
		return "", err
	}
	return serial.String(), nil
}

// View renders the projects view
func (m *ProjectsModel) View() string {
	v := NewViewBuilder().Title("Projects")

	if len(m.projects) == 0 {
		v.Muted("No project folders yet. Press n to create one.").BlankLine()
	}

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		v.Line(RenderProjectRow(m.projects[i], i == m.pager.Cursor()))
	}

	if m.pager.TotalPages() > 1 {
		v.BlankLine().Muted(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
	}
	v.BlankLine()

	return v.Message(m.Message, m.MessageErr).
		Help(ListKeys.Up, ListKeys.Down, ProjectsKeys.New, ProjectsKeys.Archive,
			ProjectsKeys.Catalog, ListKeys.Copy, ListKeys.Help, ListKeys.Quit).
		String()
}
