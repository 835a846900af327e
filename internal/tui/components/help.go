package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/tui/styles"
)

// KeyMap holds the key bindings of the listing screen.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
	Cycle  key.Binding
	Submit key.Binding
	Login  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/choose"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "change option"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "create listing"),
		),
		Login: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "sign in"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Login, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Select, k.Cycle},
		{k.Submit, k.Login, k.Help, k.Quit},
	}
}

// HelpBar renders the key bindings at the bottom of the screen.
type HelpBar struct {
	help help.Model
	keys KeyMap
}

// NewHelpBar creates a HelpBar showing the short help.
func NewHelpBar(keys KeyMap) *HelpBar {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.Secondary)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(styles.Secondary)
	return &HelpBar{help: h, keys: keys}
}

// Keys returns the bindings.
func (h *HelpBar) Keys() KeyMap {
	return h.keys
}

// SetWidth sets the width used to truncate the help.
func (h *HelpBar) SetWidth(width int) {
	h.help.Width = width
}

// Toggle switches between short and full help.
func (h *HelpBar) Toggle() {
	h.help.ShowAll = !h.help.ShowAll
}

// ShowingAll reports whether the full help is shown.
func (h *HelpBar) ShowingAll() bool {
	return h.help.ShowAll
}

// View renders the help.
func (h *HelpBar) View() string {
	return h.help.View(h.keys)
}
