package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Runner owns the Bubble Tea program of a Model.
type Runner struct {
	model   *Model
	program *tea.Program
}

// NewRunner creates the program for model. Extra options are passed to
// tea.NewProgram after the defaults.
func NewRunner(ctx context.Context, model *Model, opts ...tea.ProgramOption) *Runner {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	return &Runner{
		model:   model,
		program: tea.NewProgram(model, opts...),
	}
}

// Program returns the tea.Program for external access.
func (r *Runner) Program() *tea.Program {
	return r.program
}

// Model returns the TUI model.
func (r *Runner) Model() *Model {
	return r.model
}

// Run blocks until the user quits. Changes made to the shared modal state
// from other goroutines are forwarded to the program while it runs.
// Cancelling the context is a normal exit.
func (r *Runner) Run(ctx context.Context) error {
	modal := r.model.Modal()
	modal.Subscribe(func(open bool) {
		// Send blocks until the program reads it; the subscriber may be
		// called from inside Update.
		go r.program.Send(ModalChangedMsg{Open: open})
	})
	defer modal.Subscribe(nil)

	_, err := r.program.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
