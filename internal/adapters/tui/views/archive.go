package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ArchiveModel confirms moving the projects of previous years into the
// archive
type ArchiveModel struct {
	ConfirmationModel
	backend Backend
}

// NewArchiveModel creates a new archive view model
func NewArchiveModel(backend Backend) *ArchiveModel {
	return &ArchiveModel{
		ConfirmationModel: NewConfirmationModel(),
		backend:           backend,
	}
}

// Init initializes the archive view
func (m *ArchiveModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the archive view
func (m *ArchiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doArchive,
			func() tea.Msg { return SwitchToProjectsMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *ArchiveModel) doArchive() tea.Msg {
	if len(m.Targets) == 0 {
		return ArchiveDoneMsg{Message: "Nothing to archive"}
	}

	result, err := m.backend.ArchiveProjects().Execute(context.Background())
	if err != nil {
		return ErrMsg{Err: err}
	}
	return ArchiveDoneMsg{Message: result.Message}
}

// ArchiveDoneMsg reports a finished archive
type ArchiveDoneMsg struct {
	Message string
}

// View renders the archive confirmation view
func (m *ArchiveModel) View() string {
	v := NewViewBuilder().
		Title("Archive Projects").
		Subtitle("Projects of previous years move to the archive folder.")

	if len(m.Targets) == 0 {
		v.Muted("No projects of previous years.").BlankLine()
	}
	for _, t := range m.Targets {
		v.Line("  " + t)
	}
	if len(m.Targets) > 0 {
		v.BlankLine()
	}

	return v.Message(m.Message, m.MessageErr).
		Raw(RenderConfirmPrompt(fmt.Sprintf("Archive %d projects?", len(m.Targets)))).
		String()
}
