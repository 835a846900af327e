package components

import (
	"github.com/autolist/autolist/internal/tui/styles"
)

// BannerKind selects the banner's color and icon.
type BannerKind int

const (
	BannerSuccess BannerKind = iota
	BannerError
	BannerWarning
)

// Banner shows a one-line status message. An empty message renders nothing.
type Banner struct {
	kind    BannerKind
	message string
	width   int
}

// NewBanner creates an empty banner.
func NewBanner() *Banner {
	return &Banner{}
}

// SetSuccess shows a success message.
func (b *Banner) SetSuccess(msg string) { b.set(BannerSuccess, msg) }

// SetError shows an error message.
func (b *Banner) SetError(msg string) { b.set(BannerError, msg) }

// SetWarning shows a warning message.
func (b *Banner) SetWarning(msg string) { b.set(BannerWarning, msg) }

// Clear hides the banner.
func (b *Banner) Clear() { b.message = "" }

func (b *Banner) set(kind BannerKind, msg string) {
	b.kind = kind
	b.message = msg
}

// SetWidth sets the banner width.
func (b *Banner) SetWidth(width int) {
	b.width = width
}

// Kind returns the banner kind.
func (b *Banner) Kind() BannerKind {
	return b.kind
}

// Message returns the banner text.
func (b *Banner) Message() string {
	return b.message
}

// Visible reports whether the banner has anything to show.
func (b *Banner) Visible() bool {
	return b.message != ""
}

// View renders the banner.
func (b *Banner) View() string {
	if b.message == "" {
		return ""
	}

	style := styles.BannerSuccessStyle
	icon := "✓"
	switch b.kind {
	case BannerError:
		style = styles.BannerErrorStyle
		icon = "✗"
	case BannerWarning:
		style = styles.BannerWarningStyle
		icon = "!"
	}
	if b.width > 0 {
		style = style.Width(b.width)
	}
	return style.Render(icon + " " + b.message)
}
