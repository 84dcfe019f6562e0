package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pyxidust/internal/adapters/tui/views"
	"pyxidust/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewProjects ViewState = iota
	ViewNewProject
	ViewArchive
	ViewCatalog
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.Opener

	state      ViewState
	previous   ViewState
	projects   *views.ProjectsModel
	newProject *views.NewProjectModel
	archive    *views.ArchiveModel
	catalog    *views.CatalogModel
	help       *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ed may be nil, which disables
// opening the catalog.
func NewApp(backend views.Backend, ed ports.Opener) *App {
	return &App{
		editor:     ed,
		state:      ViewProjects,
		projects:   views.NewProjectsModel(backend),
		newProject: views.NewNewProjectModel(backend),
		archive:    views.NewArchiveModel(backend),
		catalog:    views.NewCatalogModel(backend),
		help:       views.NewHelpModel(),
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.projects.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.projects.SetSize(msg.Width, msg.Height)
		a.newProject.SetSize(msg.Width, msg.Height)
		a.archive.SetSize(msg.Width, msg.Height)
		a.catalog.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToProjectsMsg:
		a.state = ViewProjects
		return a, a.projects.Reload()

	case views.SwitchToNewProjectMsg:
		a.state = ViewNewProject
		a.newProject.Reset()
		return a, a.newProject.Init()

	case views.SwitchToArchiveMsg:
		a.state = ViewArchive
		a.archive.ClearMessage()
		a.archive.SetTargets(msg.Stale)
		return a, nil

	case views.SwitchToCatalogMsg:
		a.state = ViewCatalog
		return a, a.catalog.Init()

	case views.SwitchToHelpMsg:
		if a.state != ViewHelp {
			a.previous = a.state
		}
		a.state = ViewHelp
		return a, nil

	case views.CloseHelpMsg:
		a.state = a.previous
		return a, nil

	case views.ProjectCreatedMsg:
		a.state = ViewProjects
		a.projects.SetMessage(msg.Result.Message, false)
		return a, a.projects.Reload()

	case views.ArchiveDoneMsg:
		a.state = ViewProjects
		a.projects.SetMessage(msg.Message, false)
		return a, a.projects.Reload()

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.catalog.SetMessage(msg.err.Error(), true)
			return a, nil
		}
		return a, a.catalog.Init()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewProjects:
		_, cmd = a.projects.Update(msg)
	case ViewNewProject:
		_, cmd = a.newProject.Update(msg)
	case ViewArchive:
		_, cmd = a.archive.Update(msg)
	case ViewCatalog:
		_, cmd = a.catalog.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewNewProject:
		return a.newProject.View()
	case ViewArchive:
		return a.archive.View()
	case ViewCatalog:
		return a.catalog.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.projects.View()
	}
}
