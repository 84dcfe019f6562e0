package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pyxidust/internal/application/commands"
)

// Backend builds the commands the views run
type Backend interface {
	ListProjects() *commands.ListProjectsCommand
	NewProject(description, name, template string) *commands.NewProjectCommand
	ArchiveProjects() *commands.ArchiveProjectsCommand
	ListCatalog(query string) *commands.ListCatalogCommand
	TemplateSizes() []string
	CatalogPath() string
}

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// pageSize leaves room for the title, the status line and the help line
func (s *ViewState) pageSize() int {
	if s.Height <= 10 {
		return 10
	}
	return s.Height - 8
}

// View switching messages
type (
	SwitchToProjectsMsg   struct{}
	SwitchToNewProjectMsg struct{}
	SwitchToArchiveMsg    struct{ Stale []string }
	SwitchToCatalogMsg    struct{}
	SwitchToHelpMsg       struct{}
	CloseHelpMsg          struct{}
)

// OpenEditorMsg requests opening a file in the editor
type OpenEditorMsg struct {
	Path string
}

// ErrMsg reports a failed command to the active view
type ErrMsg struct {
	Err error
}

// switchTo returns a command emitting msg
func switchTo(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// ListKeyMap defines the navigation keys shared by list views
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var ListKeys = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy serial"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// navigate applies list navigation keys to p. It reports whether msg was
// a navigation key.
func navigate(p *Paginator, msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, ListKeys.Up):
		p.CursorUp()
	case key.Matches(msg, ListKeys.Down):
		p.CursorDown()
	case key.Matches(msg, ListKeys.NextPage):
		p.NextPage()
	case key.Matches(msg, ListKeys.PrevPage):
		p.PrevPage()
	default:
		return false
	}
	return true
}
