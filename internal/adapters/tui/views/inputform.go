package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pyxidust/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Tab    key.Binding
}

var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
}

// InputField is one labelled text input. Validate, when set, runs on the
// trimmed value after every keystroke and its error is shown under the field.
type InputField struct {
	Label    string
	Input    textinput.Model
	Validate func(string) error
	Err      error
}

func NewInputField(label, placeholder string, charLimit int, validate func(string) error) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{
		Label:    label,
		Input:    input,
		Validate: validate,
	}
}

// InputForm cycles focus over its fields with tab
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
}

func NewInputForm(fields ...InputField) *InputForm {
	form := &InputForm{
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
	if len(fields) > 0 {
		form.Fields[0].Input.Focus()
	}
	return form
}

func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update feeds msg to the focused field and revalidates it. It reports
// whether the form consumed the key itself.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, f.Keys.Tab) {
		f.NextField()
		return true, nil
	}

	if f.FocusedField < 0 || f.FocusedField >= len(f.Fields) {
		return false, nil
	}
	field := &f.Fields[f.FocusedField]
	var cmd tea.Cmd
	field.Input, cmd = field.Input.Update(msg)
	f.check(f.FocusedField)
	return false, cmd
}

func (f *InputForm) check(index int) {
	field := &f.Fields[index]
	field.Err = nil
	value := f.Value(index)
	// Empty fields are reported on submit, not while typing
	if field.Validate != nil && value != "" {
		field.Err = field.Validate(value)
	}
}

// Invalid returns the first field error, if any
func (f *InputForm) Invalid() error {
	for i := range f.Fields {
		f.check(i)
		if f.Fields[i].Err != nil {
			return f.Fields[i].Err
		}
	}
	return nil
}

func (f *InputForm) NextField() {
	if len(f.Fields) <= 1 {
		return
	}
	f.Fields[f.FocusedField].Input.Blur()
	f.FocusedField = (f.FocusedField + 1) % len(f.Fields)
	f.Fields[f.FocusedField].Input.Focus()
}

// Value returns the trimmed value of a field
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// Reset clears every field and its error and focuses the first one
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.SetValue("")
		f.Fields[i].Input.Blur()
		f.Fields[i].Err = nil
	}
	f.FocusedField = 0
	if len(f.Fields) > 0 {
		f.Fields[0].Input.Focus()
	}
}

// RenderField renders the label, the input box and any validation error
func (f *InputForm) RenderField(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	field := f.Fields[index]

	box := styles.InputField
	if index == f.FocusedField {
		box = styles.InputFocused
	}
	out := styles.InputLabel.Render(field.Label) + "\n" + box.Render(field.Input.View())
	if field.Err != nil {
		out += "\n" + styles.ErrorMsg.Render(field.Err.Error())
	}
	return out
}

// Bindings lists the keys shown under the form
func (f *InputForm) Bindings(submit string) []key.Binding {
	var bindings []key.Binding
	if len(f.Fields) > 1 {
		bindings = append(bindings, f.Keys.Tab)
	}
	s := f.Keys.Submit
	s.SetHelp(s.Help().Key, submit)
	return append(bindings, s, f.Keys.Cancel)
}
