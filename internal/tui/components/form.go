// Package components provides the field renderers and overlays of the autolist TUI.
package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/tui/styles"
)

// FormField is the interface that all form fields must implement.
type FormField interface {
	ID() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	View() string
}

// Disableable is implemented by fields that can be locked while the form is busy.
type Disableable interface {
	SetDisabled(disabled bool)
	Disabled() bool
}

// ErrorField is implemented by fields that render an inline validation error.
type ErrorField interface {
	SetError(msg string)
	Error() string
}

// capturer is implemented by fields that temporarily own every key,
// such as an open combo box list.
type capturer interface {
	Capturing() bool
}

// FieldChangedMsg is sent when the user changes a field's value.
type FieldChangedMsg struct {
	ID    string
	Value string
}

// FieldBlurredMsg is sent when focus leaves a field.
type FieldBlurredMsg struct {
	ID string
}

// FormSubmittedMsg is sent when a form is submitted.
type FormSubmittedMsg struct {
	FormID string
}

// FormCanceledMsg is sent when a form is canceled.
type FormCanceledMsg struct {
	FormID string
}

// Form is a container for form fields with navigation support.
type Form struct {
	id         string
	title      string
	fields     []FormField
	focusIndex int
	width      int
	height     int
	disabled   bool
	submitted  bool
	canceled   bool
}

// NewForm creates a new Form container.
func NewForm(id, title string) *Form {
	return &Form{
		id:     id,
		title:  title,
		fields: []FormField{},
	}
}

// ID returns the form's unique identifier.
func (f *Form) ID() string {
	return f.id
}

// AddField adds a field to the form.
func (f *Form) AddField(field FormField) {
	f.fields = append(f.fields, field)
}

// AddFields adds multiple fields to the form.
func (f *Form) AddFields(fields ...FormField) {
	f.fields = append(f.fields, fields...)
}

// SetWidth sets the form width.
func (f *Form) SetWidth(width int) {
	f.width = width
}

// SetHeight limits the number of rendered lines. Zero renders every field.
func (f *Form) SetHeight(height int) {
	f.height = height
}

// SetDisabled locks or unlocks every field that supports it.
func (f *Form) SetDisabled(disabled bool) {
	f.disabled = disabled
	for _, field := range f.fields {
		if d, ok := field.(Disableable); ok {
			d.SetDisabled(disabled)
		}
	}
}

// Disabled reports whether the form is locked.
func (f *Form) Disabled() bool {
	return f.disabled
}

// SetErrors shows errors under the matching fields and clears the others.
func (f *Form) SetErrors(errs map[string]string) {
	for _, field := range f.fields {
		if e, ok := field.(ErrorField); ok {
			e.SetError(errs[field.ID()])
		}
	}
}

// FocusIndex returns the current focus index.
func (f *Form) FocusIndex() int {
	return f.focusIndex
}

// FocusedField returns the currently focused field, or nil if none.
func (f *Form) FocusedField() FormField {
	if f.focusIndex >= 0 && f.focusIndex < len(f.fields) {
		return f.fields[f.focusIndex]
	}
	return nil
}

// GetField returns a field by ID.
func (f *Form) GetField(id string) FormField {
	for _, field := range f.fields {
		if field.ID() == id {
			return field
		}
	}
	return nil
}

// Fields returns all form fields.
func (f *Form) Fields() []FormField {
	return f.fields
}

// Focus focuses the form (focuses first field).
func (f *Form) Focus() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focusIndex = 0
	return f.fields[0].Focus()
}

// Blur blurs all fields in the form.
func (f *Form) Blur() {
	for _, field := range f.fields {
		field.Blur()
	}
}

// NextField moves focus to the next field.
func (f *Form) NextField() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	return f.FocusField((f.focusIndex + 1) % len(f.fields))
}

// PrevField moves focus to the previous field.
func (f *Form) PrevField() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	prev := f.focusIndex - 1
	if prev < 0 {
		prev = len(f.fields) - 1
	}
	return f.FocusField(prev)
}

// FocusField focuses a specific field by index. The field losing focus
// is reported with a FieldBlurredMsg.
func (f *Form) FocusField(index int) tea.Cmd {
	if index < 0 || index >= len(f.fields) {
		return nil
	}

	var cmds []tea.Cmd
	if f.focusIndex >= 0 && f.focusIndex < len(f.fields) {
		current := f.fields[f.focusIndex]
		if current.Focused() {
			current.Blur()
			id := current.ID()
			cmds = append(cmds, func() tea.Msg { return FieldBlurredMsg{ID: id} })
		}
	}

	f.focusIndex = index
	cmds = append(cmds, f.fields[f.focusIndex].Focus())
	return tea.Batch(cmds...)
}

// FocusFieldByID focuses the field with the given ID.
func (f *Form) FocusFieldByID(id string) tea.Cmd {
	for i, field := range f.fields {
		if field.ID() == id {
			return f.FocusField(i)
		}
	}
	return nil
}

// Submitted returns whether the form was submitted.
func (f *Form) Submitted() bool {
	return f.submitted
}

// Canceled returns whether the form was canceled.
func (f *Form) Canceled() bool {
	return f.canceled
}

// Reset resets the form state.
func (f *Form) Reset() {
	f.submitted = false
	f.canceled = false
	f.focusIndex = 0
}

// Update handles Tab/Shift+Tab navigation and delegates other messages to
// the focused field. A field that is capturing input receives every key.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	field := f.FocusedField()

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		capturing := false
		if c, ok := field.(capturer); ok {
			capturing = c.Capturing()
		}
		if !capturing {
			switch keyMsg.String() {
			case "tab":
				return f, f.NextField()
			case "shift+tab":
				return f, f.PrevField()
			case "esc":
				f.canceled = true
				return f, func() tea.Msg {
					return FormCanceledMsg{FormID: f.id}
				}
			}
		}
		if f.disabled {
			return f, nil
		}
	}

	if field == nil {
		return f, nil
	}

	var cmd tea.Cmd
	switch typedField := field.(type) {
	case *TextInput:
		_, cmd = typedField.Update(msg)
	case *TextArea:
		_, cmd = typedField.Update(msg)
	case *ComboBox:
		_, cmd = typedField.Update(msg)
	case *Select:
		_, cmd = typedField.Update(msg)
	case *RadioGroup:
		_, cmd = typedField.Update(msg)
	case *Button:
		var activated bool
		_, cmd, activated = typedField.Update(msg)
		if activated {
			f.submitted = true
			return f, tea.Batch(cmd, func() tea.Msg {
				return FormSubmittedMsg{FormID: f.id}
			})
		}
	}

	return f, cmd
}

// View renders the form. With a height set, only the fields around the
// focused one are shown.
func (f *Form) View() string {
	var b strings.Builder

	if f.title != "" {
		titleStyle := lipgloss.NewStyle().
			Foreground(styles.Foreground).
			Bold(true).
			Padding(0, 1)
		b.WriteString(titleStyle.Render(f.title))
		b.WriteString("\n\n")
	}

	views := make([]string, len(f.fields))
	for i, field := range f.fields {
		views[i] = indent(field.View())
	}

	start, end := f.window(views)
	if start > 0 {
		b.WriteString(styles.MutedTextStyle.Render("  ↑ more above"))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(views[start:end], "\n"))
	if end < len(views) {
		b.WriteString("\n")
		b.WriteString(styles.MutedTextStyle.Render("  ↓ more below"))
	}

	return b.String()
}

// window picks the widest run of fields containing the focused one that
// fits in the configured height.
func (f *Form) window(views []string) (int, int) {
	if f.height <= 0 || len(views) == 0 {
		return 0, len(views)
	}
	budget := f.height - 2
	if f.title != "" {
		budget -= 2
	}

	focus := f.focusIndex
	if focus < 0 || focus >= len(views) {
		focus = 0
	}
	start, end := focus, focus+1
	used := lipgloss.Height(views[focus])
	for {
		grew := false
		if end < len(views) {
			if h := lipgloss.Height(views[end]); used+h <= budget {
				used += h
				end++
				grew = true
			}
		}
		if start > 0 {
			if h := lipgloss.Height(views[start-1]); used+h <= budget {
				used += h
				start--
				grew = true
			}
		}
		if !grew {
			return start, end
		}
	}
}

func indent(view string) string {
	lines := strings.Split(view, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
