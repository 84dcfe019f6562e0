package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pyxidust/internal/application"
	"pyxidust/internal/application/commands"
)

const (
	fieldDescription = iota
	fieldName
	fieldTemplate
)

// NewProjectModel is the form creating a project from a template
type NewProjectModel struct {
	ViewState
	backend Backend
	form    *InputForm
	Archive bool // archive projects of previous years first
}

// NewNewProjectModel creates a new project form
func NewNewProjectModel(backend Backend) *NewProjectModel {
	sizes := backend.TemplateSizes()
	template := NewInputField("Template:", "P_11x17", 7, func(v string) error {
		return application.ValidateTemplate(v, sizes)
	})
	if len(sizes) > 0 {
		template.Input.Placeholder = strings.Join(sizes, " ")
	}

	return &NewProjectModel{
		backend: backend,
		form: NewInputForm(
			NewInputField("Description:", "County parcels", 50, application.ValidateDescription),
			NewInputField("Name:", "Survey", 15, application.ValidateName),
			template,
		),
	}
}

// ProjectCreatedMsg reports a created project
type ProjectCreatedMsg struct {
	Result *commands.NewProjectResult
}

// Reset clears the form
func (m *NewProjectModel) Reset() {
	m.form.Reset()
	m.ClearMessage()
}

// Init initializes the form
func (m *NewProjectModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the form
func (m *NewProjectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrMsg:
		// Validation errors stay on the form so the input can be fixed
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, switchTo(SwitchToProjectsMsg{})
		case key.Matches(msg, m.form.Keys.Submit):
			if err := m.form.Invalid(); err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			return m, m.create()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *NewProjectModel) create() tea.Cmd {
	description := m.form.Value(fieldDescription)
	name := m.form.Value(fieldName)
	template := m.form.Value(fieldTemplate)
	archive := m.Archive

	return func() tea.Msg {
		cmd := m.backend.NewProject(description, name, template)
		cmd.ArchivePrevious = archive
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ProjectCreatedMsg{Result: result}
	}
}

// View renders the form
func (m *NewProjectModel) View() string {
	v := NewViewBuilder().
		Title("New Project").
		Subtitle("The template is copied into a folder named after a new serial.")

	for i := range m.form.Fields {
		v.Line(m.form.RenderField(i)).BlankLine()
	}

	return v.Message(m.Message, m.MessageErr).
		Help(m.form.Bindings("create")...).
		String()
}
