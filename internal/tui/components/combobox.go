package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/tui/styles"
)

// ComboBox is a searchable picker. While open it filters its options by
// the typed query and owns every key until it is closed.
type ComboBox struct {
	id          string
	label       string
	placeholder string
	emptyText   string
	options     []catalog.Option
	matches     []int
	query       string
	current     string
	cursor      int
	scrollStart int
	height      int
	open        bool
	focused     bool
	disabled    bool
	err         string
}

// NewComboBox creates a closed combo box without options.
func NewComboBox(id, label string) *ComboBox {
	return &ComboBox{
		id:          id,
		label:       label,
		placeholder: "Select " + strings.ToLower(label),
		emptyText:   "No results found.",
		height:      6,
	}
}

// ID returns the component's unique identifier.
func (c *ComboBox) ID() string {
	return c.id
}

// Focus focuses the combo box.
func (c *ComboBox) Focus() tea.Cmd {
	c.focused = true
	return nil
}

// Blur removes focus and closes the list.
func (c *ComboBox) Blur() {
	c.focused = false
	c.Close()
}

// Focused returns whether the combo box is focused.
func (c *ComboBox) Focused() bool {
	return c.focused
}

// SetPlaceholder sets the text shown when nothing is selected.
func (c *ComboBox) SetPlaceholder(placeholder string) {
	c.placeholder = placeholder
}

// SetEmptyText sets the text shown when no option matches the query.
func (c *ComboBox) SetEmptyText(text string) {
	c.emptyText = text
}

// SetHeight sets how many options are visible at once.
func (c *ComboBox) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	c.height = height
}

// SetOptions replaces the options. The query is kept and reapplied.
func (c *ComboBox) SetOptions(options []catalog.Option) {
	c.options = options
	c.filter()
	if len(options) == 0 {
		c.Close()
	}
}

// Options returns all options.
func (c *ComboBox) Options() []catalog.Option {
	return c.options
}

// SetValue sets the current value without emitting a change.
func (c *ComboBox) SetValue(value string) {
	c.current = value
}

// Value returns the current value.
func (c *ComboBox) Value() string {
	return c.current
}

// CurrentLabel returns the label of the current value, or "" when the
// value matches no option.
func (c *ComboBox) CurrentLabel() string {
	for _, o := range c.options {
		if o.Value == c.current {
			return o.Label
		}
	}
	return ""
}

// SetError sets the message shown under the field.
func (c *ComboBox) SetError(msg string) {
	c.err = msg
}

// Error returns the inline error message.
func (c *ComboBox) Error() string {
	return c.err
}

// SetDisabled locks the combo box.
func (c *ComboBox) SetDisabled(disabled bool) {
	c.disabled = disabled
	if disabled {
		c.Close()
	}
}

// Disabled reports whether the combo box is locked. A combo box without
// options is always disabled.
func (c *ComboBox) Disabled() bool {
	return c.disabled || len(c.options) == 0
}

// IsOpen reports whether the option list is shown.
func (c *ComboBox) IsOpen() bool {
	return c.open
}

// Capturing reports whether the combo box owns every key.
func (c *ComboBox) Capturing() bool {
	return c.open
}

// Open shows the option list with the cursor on the current value.
func (c *ComboBox) Open() {
	if c.Disabled() {
		return
	}
	c.open = true
	c.query = ""
	c.filter()
	for i, idx := range c.matches {
		if c.options[idx].Value == c.current {
			c.cursor = i
			break
		}
	}
	c.ensureVisible()
}

// Close hides the option list and drops the query.
func (c *ComboBox) Close() {
	c.open = false
	c.query = ""
	c.filter()
}

// Query returns the search text.
func (c *ComboBox) Query() string {
	return c.query
}

// Matches returns the options that match the query, in order.
func (c *ComboBox) Matches() []catalog.Option {
	out := make([]catalog.Option, len(c.matches))
	for i, idx := range c.matches {
		out[i] = c.options[idx]
	}
	return out
}

// Highlighted returns the option under the cursor.
func (c *ComboBox) Highlighted() (catalog.Option, bool) {
	if c.cursor < 0 || c.cursor >= len(c.matches) {
		return catalog.Option{}, false
	}
	return c.options[c.matches[c.cursor]], true
}

func (c *ComboBox) filter() {
	q := strings.ToLower(strings.TrimSpace(c.query))
	c.matches = c.matches[:0]
	for i, o := range c.options {
		if q == "" || strings.Contains(strings.ToLower(o.Label), q) {
			c.matches = append(c.matches, i)
		}
	}
	c.cursor = 0
	c.scrollStart = 0
}

// MoveUp moves the cursor up.
func (c *ComboBox) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
		c.ensureVisible()
	}
}

// MoveDown moves the cursor down.
func (c *ComboBox) MoveDown() {
	if c.cursor < len(c.matches)-1 {
		c.cursor++
		c.ensureVisible()
	}
}

func (c *ComboBox) ensureVisible() {
	if c.cursor < c.scrollStart {
		c.scrollStart = c.cursor
	} else if c.cursor >= c.scrollStart+c.height {
		c.scrollStart = c.cursor - c.height + 1
	}
}

// Update handles input. Choosing an option emits a FieldChangedMsg.
func (c *ComboBox) Update(msg tea.Msg) (*ComboBox, tea.Cmd) {
	if !c.focused || c.Disabled() {
		return c, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	if !c.open {
		switch keyMsg.String() {
		case "enter", " ", "down":
			c.Open()
		case "backspace", "delete":
			if c.current != "" {
				c.current = ""
				return c, changed(c.id, "")
			}
		}
		return c, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		c.MoveUp()
	case tea.KeyDown:
		c.MoveDown()
	case tea.KeyEsc:
		c.Close()
	case tea.KeyEnter:
		option, ok := c.Highlighted()
		if !ok {
			return c, nil
		}
		c.Close()
		c.current = option.Value
		return c, changed(c.id, option.Value)
	case tea.KeyBackspace:
		if r := []rune(c.query); len(r) > 0 {
			c.query = string(r[:len(r)-1])
			c.filter()
		}
	case tea.KeyRunes, tea.KeySpace:
		c.query += string(keyMsg.Runes)
		c.filter()
	}
	return c, nil
}

// View renders the field and, when open, the filtered list below it.
func (c *ComboBox) View() string {
	disabled := c.Disabled()
	label := fieldLabel(c.label, c.focused, disabled)

	value := c.CurrentLabel()
	valueStyle := styles.FormInputStyle
	if value == "" {
		value = c.placeholder
		valueStyle = styles.MutedTextStyle
	}
	if disabled {
		valueStyle = styles.FormDisabledStyle
	}

	var b strings.Builder
	b.WriteString(label + valueStyle.Render(value) + " " + styles.FormSuffixStyle.Render("▾"))

	if c.open {
		b.WriteString("\n")
		b.WriteString(c.listView())
	}
	b.WriteString(errorLine(c.err))
	return b.String()
}

func (c *ComboBox) listView() string {
	var b strings.Builder

	search := lipgloss.NewStyle().Foreground(styles.Secondary).Render("⌕ ")
	if c.query == "" {
		search += styles.MutedTextStyle.Render("Search...")
	} else {
		search += c.query
	}
	b.WriteString(search)
	b.WriteString("\n")

	if len(c.matches) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.Muted).
			Italic(true)
		b.WriteString(emptyStyle.Render(c.emptyText))
		return styles.FocusedBoxStyle.Render(b.String())
	}

	end := c.scrollStart + c.height
	if end > len(c.matches) {
		end = len(c.matches)
	}
	if c.scrollStart > 0 {
		b.WriteString(styles.MutedTextStyle.Render("  ↑ more above"))
		b.WriteString("\n")
	}
	for i := c.scrollStart; i < end; i++ {
		b.WriteString(c.renderOption(c.options[c.matches[i]], i == c.cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(c.matches) {
		b.WriteString("\n")
		b.WriteString(styles.MutedTextStyle.Render("  ↓ more below"))
	}
	return styles.FocusedBoxStyle.Render(b.String())
}

func (c *ComboBox) renderOption(o catalog.Option, highlighted bool) string {
	indicator := "  "
	if highlighted {
		indicator = styles.Cursor + " "
	}
	nameStyle := lipgloss.NewStyle().Foreground(styles.Foreground)
	if highlighted {
		nameStyle = nameStyle.Bold(true)
	}
	line := indicator + nameStyle.Render(o.Label)
	if o.Value == c.current {
		line += " " + styles.CheckMark
	}
	return line
}

func changed(id, value string) tea.Cmd {
	return func() tea.Msg {
		return FieldChangedMsg{ID: id, Value: value}
	}
}
