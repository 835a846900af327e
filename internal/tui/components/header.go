package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/tui/styles"
)

// HeaderData contains the data to display in the header.
type HeaderData struct {
	Title  string
	Source string
	User   string
}

// Header displays the screen title, the reference data source and the
// signed-in user.
type Header struct {
	data  HeaderData
	width int
}

// NewHeader creates a new Header component.
func NewHeader() *Header {
	return &Header{
		data: HeaderData{
			Title:  "Create a listing",
			Source: "-",
		},
	}
}

// SetData updates the header data.
func (h *Header) SetData(data HeaderData) {
	h.data = data
}

// SetSource sets the reference data source name.
func (h *Header) SetSource(source string) {
	h.data.Source = source
}

// SetUser sets the signed-in user's display name. Empty means signed out.
func (h *Header) SetUser(user string) {
	h.data.User = user
}

// Data returns the header data.
func (h *Header) Data() HeaderData {
	return h.data
}

// SetWidth sets the width for the header.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header.
func (h *Header) View() string {
	sep := lipgloss.NewStyle().
		Foreground(styles.MutedLight).
		Render(" │ ")

	user := h.data.User
	if user == "" {
		user = "not signed in"
	}

	content := styles.TitleStyle.Render("AUTOLIST") + sep +
		styles.HeaderValueStyle.Render(h.data.Title) + sep +
		styles.HeaderLabelStyle.Render("Source: ") + styles.HeaderValueStyle.Render(h.data.Source) + sep +
		styles.HeaderLabelStyle.Render("User: ") + styles.HeaderValueStyle.Render(user)

	headerStyle := lipgloss.NewStyle().
		Background(styles.Primary).
		Foreground(styles.Foreground).
		Padding(0, 1)
	if h.width > 0 {
		headerStyle = headerStyle.Width(h.width)
	}
	return headerStyle.Render(content)
}
