package components

import (
	"strings"
	"testing"
)

func TestSpinnerStartStop(t *testing.T) {
	s := NewSpinner()

	if s.Active() || s.View() != "" {
		t.Error("New spinner should be hidden")
	}

	if cmd := s.Start("Loading reference data"); cmd == nil {
		t.Error("Start should return a tick command")
	}
	if !s.Active() {
		t.Error("Start should show the spinner")
	}
	if !strings.Contains(s.View(), "Loading reference data") {
		t.Error("View should contain the text")
	}

	s.Stop()
	if s.Active() || s.View() != "" {
		t.Error("Stop should hide the spinner")
	}
	if _, cmd := s.Update(nil); cmd != nil {
		t.Error("Stopped spinner should not keep ticking")
	}
}
