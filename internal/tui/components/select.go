package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/tui/styles"
)

// Select is a dropdown rendered inline: left and right cycle through the
// options.
type Select struct {
	id          string
	label       string
	placeholder string
	options     []catalog.Option
	current     string
	focused     bool
	disabled    bool
	err         string
}

// NewSelect creates a new Select component.
func NewSelect(id, label, placeholder string) *Select {
	return &Select{
		id:          id,
		label:       label,
		placeholder: placeholder,
	}
}

// ID returns the component's unique identifier.
func (s *Select) ID() string { return s.id }

// Focus focuses the select.
func (s *Select) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur removes focus from the select.
func (s *Select) Blur() { s.focused = false }

// Focused returns whether the select is focused.
func (s *Select) Focused() bool { return s.focused }

// SetOptions replaces the options.
func (s *Select) SetOptions(options []catalog.Option) { s.options = options }

// Options returns the options.
func (s *Select) Options() []catalog.Option { return s.options }

// SetValue sets the current value without emitting a change.
func (s *Select) SetValue(value string) { s.current = value }

// Value returns the current value.
func (s *Select) Value() string { return s.current }

// SetError sets the message shown under the field.
func (s *Select) SetError(msg string) { s.err = msg }

// Error returns the inline error message.
func (s *Select) Error() string { return s.err }

// SetDisabled locks the select.
func (s *Select) SetDisabled(disabled bool) { s.disabled = disabled }

// Disabled reports whether the select is locked. A select without options
// is always disabled.
func (s *Select) Disabled() bool { return s.disabled || len(s.options) == 0 }

func (s *Select) index() int {
	for i, o := range s.options {
		if o.Value == s.current {
			return i
		}
	}
	return -1
}

// Cycle moves the selection by delta, wrapping at both ends. From an empty
// selection, forward lands on the first option and backward on the last.
func (s *Select) Cycle(delta int) {
	n := len(s.options)
	if n == 0 {
		return
	}
	i := s.index()
	switch {
	case i < 0 && delta > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = ((i+delta)%n + n) % n
	}
	s.current = s.options[i].Value
}

// Update handles left/right cycling and emits a FieldChangedMsg.
func (s *Select) Update(msg tea.Msg) (*Select, tea.Cmd) {
	if !s.focused || s.Disabled() {
		return s, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	before := s.current
	switch keyMsg.String() {
	case "right", "l", "enter", " ":
		s.Cycle(1)
	case "left", "h":
		s.Cycle(-1)
	}
	if s.current != before {
		return s, changed(s.id, s.current)
	}
	return s, nil
}

// View renders the select.
func (s *Select) View() string {
	disabled := s.Disabled()
	label := fieldLabel(s.label, s.focused, disabled)

	text := s.placeholder
	style := styles.MutedTextStyle
	if i := s.index(); i >= 0 {
		text = s.options[i].Label
		style = styles.FormInputStyle
	}
	if disabled {
		style = styles.FormDisabledStyle
	}

	arrows := lipgloss.NewStyle().Foreground(styles.Muted)
	if s.focused && !disabled {
		arrows = arrows.Foreground(styles.Secondary)
	}
	return label + arrows.Render("‹ ") + style.Render(text) + arrows.Render(" ›") + errorLine(s.err)
}
