package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/tui/styles"
)

// SocialButton describes a social sign-in option.
type SocialButton struct {
	Name  string
	Label string
}

// LoginSubmitMsg is sent when the user submits the email/password form.
type LoginSubmitMsg struct {
	Email    string
	Password string
}

// SocialLoginMsg is sent when a social sign-in button is activated.
type SocialLoginMsg struct {
	Provider string
}

// SignupMsg is sent when the sign up link is activated.
type SignupMsg struct{}

// LoginClosedMsg is sent when the modal is dismissed.
type LoginClosedMsg struct{}

// LoginModal is the sign-in overlay. Focus cycles through the inputs,
// the sign in button, the social buttons and the sign up link.
type LoginModal struct {
	visible  bool
	width    int
	email    *TextInput
	password *TextInput
	submit   *Button
	social   []*Button
	names    []string
	signup   *Button
	focus    int
	err      string
	busy     bool
}

// NewLoginModal creates a hidden login modal with the given social options.
func NewLoginModal(social []SocialButton) *LoginModal {
	email := NewTextInput("email", "Email")
	email.SetPlaceholder("you@example.com")
	password := NewTextInput("password", "Password")
	password.SetPassword(true)

	submit := NewButton("login", "Sign in")
	submit.SetBusyLabel("Signing in...")

	m := &LoginModal{
		width:    50,
		email:    email,
		password: password,
		submit:   submit,
	}
	for _, s := range social {
		b := NewButton("social-"+s.Name, s.Label)
		b.SetStyle(ButtonStyleSecondary)
		m.social = append(m.social, b)
		m.names = append(m.names, s.Name)
	}
	m.signup = NewButton("signup", "Don't have an account? Sign up")
	m.signup.SetStyle(ButtonStyleLink)
	return m
}

func (m *LoginModal) fields() []FormField {
	out := []FormField{m.email, m.password, m.submit}
	for _, b := range m.social {
		out = append(out, b)
	}
	return append(out, m.signup)
}

// Show makes the modal visible with the email input focused.
func (m *LoginModal) Show() tea.Cmd {
	m.visible = true
	return m.focusAt(0)
}

// Hide hides the modal and clears the password.
func (m *LoginModal) Hide() {
	m.visible = false
	m.password.SetValue("")
	m.err = ""
	m.email.SetError("")
	m.password.SetError("")
	m.SetBusy(false)
}

// IsVisible returns whether the modal is visible.
func (m *LoginModal) IsVisible() bool {
	return m.visible
}

// SetSize sets the modal width.
func (m *LoginModal) SetSize(width int) {
	m.width = width
	m.email.SetWidth(width - 8)
	m.password.SetWidth(width - 8)
}

// Email returns the typed email.
func (m *LoginModal) Email() string {
	return m.email.Value()
}

// SetFieldErrors shows errors under the email and password inputs.
func (m *LoginModal) SetFieldErrors(errs map[string]string) {
	m.email.SetError(errs["email"])
	m.password.SetError(errs["password"])
}

// SetError shows a general error above the buttons.
func (m *LoginModal) SetError(msg string) {
	m.err = msg
}

// Error returns the general error.
func (m *LoginModal) Error() string {
	return m.err
}

// SetBusy locks the modal while a sign-in request runs.
func (m *LoginModal) SetBusy(busy bool) {
	m.busy = busy
	m.submit.SetBusy(busy)
	m.email.SetDisabled(busy)
	m.password.SetDisabled(busy)
}

// Busy reports whether a sign-in request is running.
func (m *LoginModal) Busy() bool {
	return m.busy
}

// FocusIndex returns the index of the focused control.
func (m *LoginModal) FocusIndex() int {
	return m.focus
}

func (m *LoginModal) focusAt(index int) tea.Cmd {
	fields := m.fields()
	for _, f := range fields {
		f.Blur()
	}
	m.focus = (index%len(fields) + len(fields)) % len(fields)
	return fields[m.focus].Focus()
}

// Update handles input messages.
func (m *LoginModal) Update(msg tea.Msg) tea.Cmd {
	if !m.visible {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "esc":
		m.Hide()
		return func() tea.Msg { return LoginClosedMsg{} }
	case "tab", "down":
		return m.focusAt(m.focus + 1)
	case "shift+tab", "up":
		return m.focusAt(m.focus - 1)
	}

	if m.busy {
		return nil
	}

	focused := m.fields()[m.focus]
	switch f := focused.(type) {
	case *TextInput:
		if keyMsg.Type == tea.KeyEnter {
			if f == m.password {
				return m.submitCmd()
			}
			return m.focusAt(m.focus + 1)
		}
		_, cmd := f.Update(msg)
		return cmd
	case *Button:
		_, _, activated := f.Update(msg)
		if !activated {
			return nil
		}
		switch {
		case f == m.submit:
			return m.submitCmd()
		case f == m.signup:
			return func() tea.Msg { return SignupMsg{} }
		}
		for i, b := range m.social {
			if b == f {
				name := m.names[i]
				return func() tea.Msg { return SocialLoginMsg{Provider: name} }
			}
		}
	}
	return nil
}

func (m *LoginModal) submitCmd() tea.Cmd {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	return func() tea.Msg {
		return LoginSubmitMsg{Email: email, Password: password}
	}
}

// View renders the modal.
func (m *LoginModal) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Background(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Width(m.width - 4)
	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n\n")

	b.WriteString(m.email.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.err != "" {
		b.WriteString(styles.ErrorTextStyle.Render(m.err))
		b.WriteString("\n\n")
	}

	b.WriteString(m.submit.View())
	if len(m.social) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.MutedTextStyle.Render("or"))
		for _, s := range m.social {
			b.WriteString("\n")
			b.WriteString(s.View())
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.signup.View())

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(styles.Primary).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}
