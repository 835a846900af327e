package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autolist/autolist/internal/catalog"
)

func colorOptions() []catalog.Option {
	return []catalog.Option{
		{Value: "1", Label: "Black", Swatch: "#000000"},
		{Value: "2", Label: "White", Swatch: "#FFFFFF"},
		{Value: "3", Label: "Silver", Swatch: "#C0C0C0"},
		{Value: "4", Label: "Red", Swatch: "#D32F2F"},
		{Value: "5", Label: "Blue", Swatch: "#1976D2"},
	}
}

func TestRadioGroupArrowsSelect(t *testing.T) {
	r := NewRadioGroup("condition", "Condition")
	r.SetOptions([]catalog.Option{{Value: "1", Label: "New"}, {Value: "2", Label: "Used"}})
	r.Focus()

	_, cmd := r.Update(keyOf(tea.KeyRight))
	if r.Value() != "1" {
		t.Fatalf("First arrow should select the first option, got %q", r.Value())
	}
	if change, ok := findChange(cmd); !ok || change.Value != "1" {
		t.Errorf("Expected a change to 1, got %+v", change)
	}

	r.Update(keyOf(tea.KeyRight))
	if r.Value() != "2" {
		t.Errorf("Expected 2, got %q", r.Value())
	}

	_, cmd = r.Update(keyOf(tea.KeyRight))
	if r.Value() != "2" || cmd != nil {
		t.Error("Moving past the last option should do nothing")
	}

	r.Update(keyOf(tea.KeyLeft))
	if r.Value() != "1" {
		t.Errorf("Expected 1, got %q", r.Value())
	}
}

func TestRadioGroupView(t *testing.T) {
	r := NewRadioGroup("condition", "Condition")
	r.SetOptions([]catalog.Option{{Value: "1", Label: "New"}, {Value: "2", Label: "Used"}})
	r.SetValue("2")

	view := r.View()
	if !strings.Contains(view, "◉ Used") || !strings.Contains(view, "○ New") {
		t.Errorf("unexpected view %q", view)
	}
	if strings.Count(view, "\n") != 0 {
		t.Error("Radio group without columns should use one row")
	}
}

func TestSwatchGridRows(t *testing.T) {
	r := NewSwatchGrid("color", "Color", 3)
	r.SetOptions(colorOptions())
	r.Focus()

	if strings.Count(r.View(), "\n") != 1 {
		t.Errorf("Five swatches in three columns should take two rows: %q", r.View())
	}

	r.Update(keyOf(tea.KeySpace))
	if r.Value() != "1" {
		t.Fatalf("Space should select the first swatch, got %q", r.Value())
	}
	r.Update(keyOf(tea.KeyDown))
	if r.Value() != "4" {
		t.Errorf("Down should move one row, got %q", r.Value())
	}
	r.Update(keyOf(tea.KeyDown))
	if r.Value() != "4" {
		t.Errorf("Down past the last row should do nothing, got %q", r.Value())
	}
	r.Update(keyOf(tea.KeyUp))
	if r.Value() != "1" {
		t.Errorf("Up should move back one row, got %q", r.Value())
	}
}

func TestRadioGroupEmpty(t *testing.T) {
	r := NewRadioGroup("condition", "Condition")
	r.Focus()

	if !r.Disabled() {
		t.Error("Group without options should be disabled")
	}
	if !strings.Contains(r.View(), "No options") {
		t.Error("Empty group should say there are no options")
	}
}
