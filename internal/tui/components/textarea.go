package components

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/autolist/autolist/internal/tui/styles"
)

// TextArea is a multi-line field used for the listing description.
type TextArea struct {
	textarea textarea.Model
	id       string
	label    string
	err      string
	focused  bool
	disabled bool
}

// NewTextArea creates a new TextArea component.
func NewTextArea(id, label string) *TextArea {
	ta := textarea.New()
	ta.CharLimit = 4000
	ta.SetWidth(60)
	ta.SetHeight(4)
	ta.ShowLineNumbers = false

	return &TextArea{
		textarea: ta,
		id:       id,
		label:    label,
	}
}

// ID returns the component's unique identifier.
func (t *TextArea) ID() string {
	return t.id
}

// Focus focuses the textarea.
func (t *TextArea) Focus() tea.Cmd {
	t.focused = true
	return t.textarea.Focus()
}

// Blur removes focus from the textarea.
func (t *TextArea) Blur() {
	t.focused = false
	t.textarea.Blur()
}

// Focused returns whether the textarea is focused.
func (t *TextArea) Focused() bool {
	return t.focused
}

// SetWidth sets the component width.
func (t *TextArea) SetWidth(width int) {
	w := width - 4
	if w < 20 {
		w = 20
	}
	t.textarea.SetWidth(w)
}

// SetPlaceholder sets the placeholder text.
func (t *TextArea) SetPlaceholder(placeholder string) {
	t.textarea.Placeholder = placeholder
}

// Value returns the current textarea content.
func (t *TextArea) Value() string {
	return t.textarea.Value()
}

// SetValue sets the textarea content.
func (t *TextArea) SetValue(value string) {
	t.textarea.SetValue(value)
}

// SetError sets the message shown under the textarea.
func (t *TextArea) SetError(msg string) {
	t.err = msg
}

// Error returns the inline error message.
func (t *TextArea) Error() string {
	return t.err
}

// SetDisabled locks the textarea.
func (t *TextArea) SetDisabled(disabled bool) {
	t.disabled = disabled
}

// Disabled reports whether the textarea is locked.
func (t *TextArea) Disabled() bool {
	return t.disabled
}

// Update handles messages for the component.
func (t *TextArea) Update(msg tea.Msg) (*TextArea, tea.Cmd) {
	if !t.focused || t.disabled {
		return t, nil
	}

	before := t.textarea.Value()
	var cmd tea.Cmd
	t.textarea, cmd = t.textarea.Update(msg)
	if after := t.textarea.Value(); after != before {
		id := t.id
		return t, tea.Batch(cmd, func() tea.Msg {
			return FieldChangedMsg{ID: id, Value: after}
		})
	}
	return t, cmd
}

// View renders the label above the textarea.
func (t *TextArea) View() string {
	body := t.textarea.View()
	if t.disabled {
		body = styles.FormDisabledStyle.Render(body)
	}
	return fieldLabel(t.label, t.focused, t.disabled) + "\n" + body + errorLine(t.err)
}
