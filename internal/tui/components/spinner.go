package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/tui/styles"
)

// Spinner shows activity while reference data loads or a listing is sent.
type Spinner struct {
	spinner   spinner.Model
	text      string
	startTime time.Time
	active    bool
}

// NewSpinner creates a new Spinner component with default styling.
func NewSpinner() *Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Secondary)
	return &Spinner{spinner: s}
}

// Start shows the spinner with text and resets the elapsed time.
func (s *Spinner) Start(text string) tea.Cmd {
	s.text = text
	s.active = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop hides the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// Active reports whether the spinner is shown.
func (s *Spinner) Active() bool {
	return s.active
}

// Text returns the status text.
func (s *Spinner) Text() string {
	return s.text
}

// Elapsed returns the elapsed time since Start was called.
func (s *Spinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// Update advances the animation. Ticks stop once the spinner is stopped.
func (s *Spinner) Update(msg tea.Msg) (*Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner, its text and the elapsed seconds.
func (s *Spinner) View() string {
	if !s.active {
		return ""
	}
	line := fmt.Sprintf("%s %s", s.spinner.View(), lipgloss.NewStyle().Foreground(styles.Foreground).Render(s.text))
	if secs := int(s.Elapsed().Seconds()); secs > 0 {
		line += " " + styles.MutedTextStyle.Render(fmt.Sprintf("(%ds)", secs))
	}
	return line
}
