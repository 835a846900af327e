package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/tui/styles"
)

// TextInput is a single-line field with an optional unit suffix and an
// inline error line.
type TextInput struct {
	model    textinput.Model
	label    string
	suffix   string
	err      string
	focused  bool
	disabled bool
	width    int
	id       string
}

// NewTextInput creates a new TextInput component.
func NewTextInput(id, label string) *TextInput {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 30

	return &TextInput{
		model: ti,
		label: label,
		id:    id,
	}
}

// ID returns the component's unique identifier.
func (t *TextInput) ID() string {
	return t.id
}

// Label returns the field label.
func (t *TextInput) Label() string {
	return t.label
}

// Focus focuses the text input.
func (t *TextInput) Focus() tea.Cmd {
	t.focused = true
	return t.model.Focus()
}

// Blur removes focus from the text input.
func (t *TextInput) Blur() {
	t.focused = false
	t.model.Blur()
}

// Focused returns whether the text input is focused.
func (t *TextInput) Focused() bool {
	return t.focused
}

// SetValue sets the text input value.
func (t *TextInput) SetValue(value string) {
	t.model.SetValue(value)
}

// Value returns the current text input value.
func (t *TextInput) Value() string {
	return t.model.Value()
}

// SetPlaceholder sets the placeholder text.
func (t *TextInput) SetPlaceholder(placeholder string) {
	t.model.Placeholder = placeholder
}

// SetSuffix sets the unit shown after the input, such as km or €.
func (t *TextInput) SetSuffix(suffix string) {
	t.suffix = suffix
}

// Suffix returns the unit suffix.
func (t *TextInput) Suffix() string {
	return t.suffix
}

// SetPassword masks the typed characters.
func (t *TextInput) SetPassword(password bool) {
	if password {
		t.model.EchoMode = textinput.EchoPassword
		t.model.EchoCharacter = '•'
		return
	}
	t.model.EchoMode = textinput.EchoNormal
}

// SetError sets the message shown under the input. Empty clears it.
func (t *TextInput) SetError(msg string) {
	t.err = msg
}

// Error returns the inline error message.
func (t *TextInput) Error() string {
	return t.err
}

// SetDisabled locks the input.
func (t *TextInput) SetDisabled(disabled bool) {
	t.disabled = disabled
}

// Disabled reports whether the input is locked.
func (t *TextInput) Disabled() bool {
	return t.disabled
}

// SetWidth sets the width of the text input.
func (t *TextInput) SetWidth(width int) {
	t.width = width
	t.model.Width = width - len(t.label) - len(t.suffix) - 6
	if t.model.Width < 10 {
		t.model.Width = 10
	}
}

// SetCharLimit sets the character limit.
func (t *TextInput) SetCharLimit(limit int) {
	t.model.CharLimit = limit
}

// Update handles messages for the text input. A FieldChangedMsg is emitted
// when the value changes.
func (t *TextInput) Update(msg tea.Msg) (*TextInput, tea.Cmd) {
	if !t.focused || t.disabled {
		return t, nil
	}

	before := t.model.Value()
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	if after := t.model.Value(); after != before {
		id := t.id
		return t, tea.Batch(cmd, func() tea.Msg {
			return FieldChangedMsg{ID: id, Value: after}
		})
	}
	return t, cmd
}

// View renders the text input.
func (t *TextInput) View() string {
	label := fieldLabel(t.label, t.focused, t.disabled)

	inputStyle := styles.FormInputStyle
	switch {
	case t.disabled:
		inputStyle = styles.FormDisabledStyle
	case t.focused:
		inputStyle = lipgloss.NewStyle().
			Foreground(styles.Foreground).
			Background(styles.Background).
			Padding(0, 1)
	}

	view := label + inputStyle.Render(t.model.View())
	if t.suffix != "" {
		view += " " + styles.FormSuffixStyle.Render(t.suffix)
	}
	return view + errorLine(t.err)
}

// Reset clears the value and the error.
func (t *TextInput) Reset() {
	t.model.Reset()
	t.err = ""
}

func fieldLabel(label string, focused, disabled bool) string {
	style := styles.HeaderLabelStyle
	switch {
	case disabled:
		style = styles.FormDisabledStyle
	case focused:
		style = lipgloss.NewStyle().
			Foreground(styles.Secondary).
			Bold(true)
	}
	return style.Render(label + ": ")
}

func errorLine(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n" + styles.FormErrorStyle.Render(msg)
}
