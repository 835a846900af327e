package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/tui/styles"
)

// ButtonStyle represents the visual style of a button.
type ButtonStyle int

const (
	// ButtonStylePrimary is the default button style.
	ButtonStylePrimary ButtonStyle = iota
	// ButtonStyleSecondary is a less prominent button style.
	ButtonStyleSecondary
	// ButtonStyleLink renders the button as an inline link.
	ButtonStyleLink
)

// Button is an activatable button. While busy it shows its busy label and
// ignores activation.
type Button struct {
	label     string
	busyLabel string
	busy      bool
	disabled  bool
	focused   bool
	id        string
	style     ButtonStyle
}

// NewButton creates a new Button component.
func NewButton(id, label string) *Button {
	return &Button{
		label: label,
		id:    id,
		style: ButtonStylePrimary,
	}
}

// ID returns the component's unique identifier.
func (b *Button) ID() string {
	return b.id
}

// Focus focuses the button.
func (b *Button) Focus() tea.Cmd {
	b.focused = true
	return nil
}

// Blur removes focus from the button.
func (b *Button) Blur() {
	b.focused = false
}

// Focused returns whether the button is focused.
func (b *Button) Focused() bool {
	return b.focused
}

// SetStyle sets the button style.
func (b *Button) SetStyle(style ButtonStyle) {
	b.style = style
}

// SetLabel sets the button label.
func (b *Button) SetLabel(label string) {
	b.label = label
}

// SetBusyLabel sets the label shown while busy.
func (b *Button) SetBusyLabel(label string) {
	b.busyLabel = label
}

// SetBusy switches the button in and out of its busy state.
func (b *Button) SetBusy(busy bool) {
	b.busy = busy
}

// Busy reports whether the button is busy.
func (b *Button) Busy() bool {
	return b.busy
}

// SetDisabled locks the button.
func (b *Button) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Disabled reports whether the button is locked.
func (b *Button) Disabled() bool {
	return b.disabled
}

// Label returns the label currently displayed.
func (b *Button) Label() string {
	if b.busy && b.busyLabel != "" {
		return b.busyLabel
	}
	return b.label
}

// Update handles messages for the button.
// Returns true if the button was activated.
func (b *Button) Update(msg tea.Msg) (*Button, tea.Cmd, bool) {
	if !b.focused || b.busy || b.disabled {
		return b, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", " ":
			return b, nil, true
		}
	}
	return b, nil, false
}

// View renders the button.
func (b *Button) View() string {
	var style lipgloss.Style
	switch b.style {
	case ButtonStyleLink:
		style = styles.LinkStyle
		if b.focused {
			style = style.Bold(true).Foreground(styles.Secondary)
		}
		return style.Render(b.Label())
	case ButtonStyleSecondary:
		style = styles.ButtonSecondaryUnfocusedStyle
		if b.focused {
			style = styles.ButtonSecondaryStyle
		}
	default:
		style = styles.ButtonPrimaryUnfocusedStyle
		if b.focused {
			style = styles.ButtonPrimaryStyle
		}
	}
	if b.busy || b.disabled {
		style = style.Foreground(styles.Muted)
	}
	return style.Render(b.Label())
}
