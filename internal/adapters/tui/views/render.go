package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"pyxidust/internal/adapters/tui/styles"
	"pyxidust/internal/application/commands"
)

// RenderHelpLine joins key bindings into one help line
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderProjectRow renders a project folder as its serial followed by the
// title. Folders not named after a serial are shown by name. Stale rows are
// marked for the archive.
func RenderProjectRow(p commands.ProjectSummary, selected bool) string {
	label := p.Name
	if serial, err := FolderSerial(p.Name); err == nil {
		_, title, _ := strings.Cut(p.Name, "_")
		label = fmt.Sprintf("%-13s  %s", serial, title)
		if !selected {
			label = styles.Serial.Render(fmt.Sprintf("%-13s", serial)) + "  " + title
		}
	}
	if p.Stale {
		label += "  (archive)"
	}

	switch {
	case selected:
		return styles.RowSelected.Render("> " + label)
	case p.Stale:
		return styles.RowStale.Render("  " + label)
	default:
		return styles.Row.Render("  " + label)
	}
}

// ViewBuilder assembles a view top to bottom inside the app frame
type ViewBuilder struct {
	b strings.Builder
}

func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Message writes a status line. Errors and successes differ in color only.
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	style := styles.Success
	if isError {
		style = styles.ErrorMsg
	}
	v.b.WriteString(style.Render(message))
	v.b.WriteString("\n\n")
	return v
}

func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw writes text as is, without styling or a trailing newline
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
