// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/runnables-cli/runnables/internal/selection"
	"github.com/runnables-cli/runnables/pkg/runnable"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// RedrawInterval bounds how long the picker waits for input before redrawing.
const RedrawInterval = 250 * time.Millisecond

// ErrNotATerminal is returned by Run when the picker input is not a terminal.
var ErrNotATerminal = errors.New("interactive picker requires a terminal")

type (
	// Options configures the picker program.
	Options struct {
		// Root is the discovery root shown in the title bar; paths in the detail
		// pane are displayed relative to it.
		Root string
		// Color is the highlight colour.
		Color ColorSpec
		// Input defaults to os.Stdin.
		Input io.Reader
		// Output defaults to os.Stdout.
		Output io.Writer
	}

	// redrawMsg is delivered every RedrawInterval.
	redrawMsg time.Time

	pickerModel struct {
		state  *selection.State
		theme  Theme
		root   string
		width  int
		height int
		done   bool
	}
)

func newPickerModel(state *selection.State, opts Options) *pickerModel {
	return &pickerModel{
		state: state,
		theme: NewTheme(opts.Color),
		root:  opts.Root,
	}
}

// Init implements tea.Model.
func (m *pickerModel) Init() tea.Cmd {
	return redraw()
}

// Update implements tea.Model.
func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state.Handle(msg) {
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case redrawMsg:
		return m, redraw()
	}
	return m, nil
}

// View implements tea.Model.
func (m *pickerModel) View() string {
	if m.done {
		return ""
	}
	return m.render()
}

func redraw() tea.Cmd {
	return tea.Tick(RedrawInterval, func(t time.Time) tea.Msg {
		return redrawMsg(t)
	})
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Run shows the picker until the user commits a choice or aborts. The
// returned boolean is false on abort. Run takes ownership of state until it
// returns.
func Run(ctx context.Context, state *selection.State, opts Options) (runnable.Runnable, bool, error) {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if f, ok := opts.Input.(*os.File); ok && !IsTerminal(f) {
		return runnable.Runnable{}, false, ErrNotATerminal
	}

	p := tea.NewProgram(newPickerModel(state, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(opts.Input),
		tea.WithOutput(opts.Output),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return runnable.Runnable{}, false, ctx.Err()
		}
		return runnable.Runnable{}, false, err
	}

	chosen, ok := state.Committed()
	return chosen, ok, nil
}
