package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/autolist/autolist/internal/catalog"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findChange(cmd tea.Cmd) (FieldChangedMsg, bool) {
	for _, msg := range runCmd(cmd) {
		if m, ok := msg.(FieldChangedMsg); ok {
			return m, true
		}
	}
	return FieldChangedMsg{}, false
}

func brandOptions() []catalog.Option {
	return []catalog.Option{
		{Value: "toyota", Label: "Toyota"},
		{Value: "honda", Label: "Honda"},
		{Value: "volkswagen", Label: "Volkswagen"},
	}
}

func carTypeOptions() []catalog.Option {
	return []catalog.Option{
		{Value: "1", Label: "Sedan"},
		{Value: "2", Label: "Hatchback"},
		{Value: "3", Label: "SUV"},
	}
}
