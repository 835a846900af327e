package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/tui/styles"
)

// RadioGroup lays its options out in rows. Arrow keys move the selection
// directly; with swatches enabled each option shows its color.
type RadioGroup struct {
	id       string
	label    string
	options  []catalog.Option
	current  string
	columns  int
	swatches bool
	focused  bool
	disabled bool
	err      string
}

// NewRadioGroup creates a single-row radio group.
func NewRadioGroup(id, label string) *RadioGroup {
	return &RadioGroup{
		id:    id,
		label: label,
	}
}

// NewSwatchGrid creates a radio group that renders color swatches in a
// grid of the given width.
func NewSwatchGrid(id, label string, columns int) *RadioGroup {
	return &RadioGroup{
		id:       id,
		label:    label,
		columns:  columns,
		swatches: true,
	}
}

// ID returns the component's unique identifier.
func (r *RadioGroup) ID() string { return r.id }

// Focus focuses the group.
func (r *RadioGroup) Focus() tea.Cmd {
	r.focused = true
	return nil
}

// Blur removes focus from the group.
func (r *RadioGroup) Blur() { r.focused = false }

// Focused returns whether the group is focused.
func (r *RadioGroup) Focused() bool { return r.focused }

// SetOptions replaces the options.
func (r *RadioGroup) SetOptions(options []catalog.Option) { r.options = options }

// Options returns the options.
func (r *RadioGroup) Options() []catalog.Option { return r.options }

// SetValue sets the current value without emitting a change.
func (r *RadioGroup) SetValue(value string) { r.current = value }

// Value returns the current value.
func (r *RadioGroup) Value() string { return r.current }

// SetError sets the message shown under the field.
func (r *RadioGroup) SetError(msg string) { r.err = msg }

// Error returns the inline error message.
func (r *RadioGroup) Error() string { return r.err }

// SetDisabled locks the group.
func (r *RadioGroup) SetDisabled(disabled bool) { r.disabled = disabled }

// Disabled reports whether the group is locked.
func (r *RadioGroup) Disabled() bool { return r.disabled || len(r.options) == 0 }

func (r *RadioGroup) cols() int {
	if r.columns <= 0 || r.columns > len(r.options) {
		return len(r.options)
	}
	return r.columns
}

func (r *RadioGroup) index() int {
	for i, o := range r.options {
		if o.Value == r.current {
			return i
		}
	}
	return -1
}

// move shifts the selection by delta, clamped to the options.
func (r *RadioGroup) move(delta int) {
	n := len(r.options)
	if n == 0 {
		return
	}
	i := r.index()
	if i < 0 {
		r.current = r.options[0].Value
		return
	}
	i += delta
	if i < 0 || i >= n {
		return
	}
	r.current = r.options[i].Value
}

// Update handles arrow keys and emits a FieldChangedMsg on change.
func (r *RadioGroup) Update(msg tea.Msg) (*RadioGroup, tea.Cmd) {
	if !r.focused || r.Disabled() {
		return r, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	before := r.current
	switch keyMsg.String() {
	case "right", "l":
		r.move(1)
	case "left", "h":
		r.move(-1)
	case "down", "j":
		if r.cols() < len(r.options) {
			r.move(r.cols())
		}
	case "up", "k":
		if r.cols() < len(r.options) {
			r.move(-r.cols())
		}
	case " ", "enter":
		if r.index() < 0 {
			r.move(0)
		}
	}
	if r.current != before {
		return r, changed(r.id, r.current)
	}
	return r, nil
}

// View renders the group.
func (r *RadioGroup) View() string {
	disabled := r.Disabled()
	var b strings.Builder
	b.WriteString(fieldLabel(r.label, r.focused, disabled))

	if len(r.options) == 0 {
		b.WriteString(styles.FormDisabledStyle.Render("No options"))
		b.WriteString(errorLine(r.err))
		return b.String()
	}

	cols := r.cols()
	nameStyle := lipgloss.NewStyle().Foreground(styles.Foreground)
	if disabled {
		nameStyle = styles.FormDisabledStyle
	}

	for i, o := range r.options {
		if i > 0 && i%cols == 0 {
			b.WriteString("\n" + strings.Repeat(" ", lipgloss.Width(r.label)+2))
		} else if i > 0 {
			b.WriteString("  ")
		}
		mark := styles.RadioOff
		if o.Value == r.current {
			mark = styles.RadioOn
		}
		b.WriteString(mark + " ")
		if r.swatches {
			b.WriteString(styles.Swatch(o.Swatch) + " ")
		}
		b.WriteString(nameStyle.Render(o.Label))
	}
	b.WriteString(errorLine(r.err))
	return b.String()
}
