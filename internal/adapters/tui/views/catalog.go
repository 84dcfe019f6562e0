package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pyxidust/internal/adapters/tui/styles"
	"pyxidust/internal/domain"
)

// CatalogKeyMap defines the actions of the catalog view
type CatalogKeyMap struct {
	Filter key.Binding
	Edit   key.Binding
	Back   key.Binding
	Apply  key.Binding
}

var CatalogKeys = CatalogKeyMap{
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit catalog"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
}

// CatalogModel lists the catalog entries, newest last
type CatalogModel struct {
	ViewState
	backend   Backend
	entries   []domain.CatalogEntry
	pager     *Paginator
	filter    textinput.Model
	filtering bool
}

// NewCatalogModel creates a new catalog view model
func NewCatalogModel(backend Backend) *CatalogModel {
	filter := textinput.New()
	filter.Placeholder = "serial, name, description or creator"
	filter.CharLimit = 50

	return &CatalogModel{
		backend: backend,
		pager:   NewPaginator(10),
		filter:  filter,
	}
}

type catalogLoadedMsg struct {
	entries []domain.CatalogEntry
}

// Init loads the catalog with the current filter
func (m *CatalogModel) Init() tea.Cmd {
	return m.load(m.filter.Value())
}

func (m *CatalogModel) load(query string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.backend.ListCatalog(query).Execute(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return catalogLoadedMsg{entries: result.Entries}
	}
}

// SetSize updates the view dimensions and the page size
func (m *CatalogModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(m.pageSize())
}

// Update handles messages for the catalog view
func (m *CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		m.entries = msg.entries
		m.pager.SetTotal(len(m.entries))
		return m, nil

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		m.ClearMessage()
		if navigate(m.pager, msg) {
			return m, nil
		}

		switch {
		case key.Matches(msg, ListKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, CatalogKeys.Back):
			return m, switchTo(SwitchToProjectsMsg{})
		case key.Matches(msg, ListKeys.Help):
			return m, switchTo(SwitchToHelpMsg{})
		case key.Matches(msg, ListKeys.Copy):
			m.copySerial()
			return m, nil
		case key.Matches(msg, CatalogKeys.Edit):
			return m, switchTo(OpenEditorMsg{Path: m.backend.CatalogPath()})
		case key.Matches(msg, CatalogKeys.Filter):
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink
		}
	}

	return m, nil
}

func (m *CatalogModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, CatalogKeys.Apply):
		m.filtering = false
		m.filter.Blur()
		m.pager.SetCursor(0)
		return m, m.load(m.filter.Value())
	case key.Matches(msg, CatalogKeys.Back):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.pager.SetCursor(0)
		return m, m.load("")
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *CatalogModel) copySerial() {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.entries) {
		return
	}
	serial := m.entries[i].Serial
	if err := copyToClipboard(serial); err != nil {
		m.SetMessage(fmt.Sprintf("clipboard: %v", err), true)
		return
	}
	m.SetMessage("Copied "+serial, false)
}

// View renders the catalog view
func (m *CatalogModel) View() string {
	v := NewViewBuilder().Title("Catalog")

	if m.filtering || m.filter.Value() != "" {
		v.Line(styles.InputLabel.Render("Filter: ") + m.filter.View()).BlankLine()
	}

	if len(m.entries) == 0 {
		v.Muted("No catalog entries.").BlankLine()
	}

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		e := m.entries[i]
		line := fmt.Sprintf("%s  %-15s %-40s %s %s",
			styles.Serial.Render(e.Serial), e.Name, e.Description, e.Date, e.Time)
		if i == m.pager.Cursor() {
			v.Line(styles.RowSelected.Render("> " + line))
		} else {
			v.Line(styles.Row.Render("  " + line))
		}
	}

	if m.pager.TotalPages() > 1 {
		v.BlankLine().Muted(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
	}
	v.BlankLine()

	return v.Message(m.Message, m.MessageErr).
		Help(ListKeys.Up, ListKeys.Down, CatalogKeys.Filter, ListKeys.Copy,
			CatalogKeys.Edit, CatalogKeys.Back).
		String()
}
