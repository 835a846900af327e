// Package tui provides the terminal user interface for autolist.
package tui

import (
	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/listing"
	"github.com/autolist/autolist/internal/session"
)

// Message types for TUI state updates.
// Each asynchronous command reports back with one of these.

// CatalogLoadedMsg is sent when the reference-data batch has finished.
// Lists that failed to load are empty and named in Report.
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Report  *catalog.LoadReport
}

// SubmitResultMsg is sent when a submission attempt has finished.
type SubmitResultMsg struct {
	Draft listing.Draft
	Err   error
}

// LoginResultMsg is sent when a sign-in request has finished.
type LoginResultMsg struct {
	Session *session.Session
	Err     error
}

// ModalChangedMsg reports a login modal transition made through the
// shared modal state.
type ModalChangedMsg struct {
	Open bool
}

// QuitMsg signals the TUI should quit.
type QuitMsg struct {
	Reason string
}
