// SPDX-License-Identifier: MPL-2.0

package selection

import (
	"github.com/runnables-cli/runnables/pkg/runnable"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// ModeList navigates the list and dispatches action keys.
	ModeList Mode = iota
	// ModeSearch edits the search text.
	ModeSearch
)

// runKey is the action key Enter is translated to.
const runKey = "r"

type (
	// Mode is the input mode of the picker.
	Mode int

	// State is the picker state machine. The runnable slice passed to New is
	// shared and never modified.
	State struct {
		keys      KeyMap
		mode      Mode
		all       []runnable.Runnable
		active    []runnable.Runnable
		cursor    int
		input     textinput.Model
		committed runnable.Runnable
	}

	// Option configures a State.
	Option func(*State)
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "list"
}

// WithSearch starts the picker in Search mode with text pre-filled.
func WithSearch(text string) Option {
	return func(s *State) {
		s.input.SetValue(text)
		s.enterSearch()
	}
}

// New creates a State over all, starting in List mode.
func New(all []runnable.Runnable, opts ...Option) *State {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "press TAB to search"

	s := &State{
		keys:  DefaultKeyMap(),
		all:   all,
		input: input,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recompute()
	return s
}

// Handle applies one key event. It returns true when the picker should stop;
// Committed then tells whether a choice was made or the user aborted.
func (s *State) Handle(msg tea.KeyMsg) bool {
	if key.Matches(msg, s.keys.Interrupt) {
		return true
	}
	if s.mode == ModeSearch {
		return s.handleSearch(msg)
	}
	return s.handleList(msg)
}

func (s *State) handleList(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, s.keys.Search):
		s.enterSearch()
	case key.Matches(msg, s.keys.Next):
		s.Next()
	case key.Matches(msg, s.keys.Prev):
		s.Prev()
	case key.Matches(msg, s.keys.Quit):
		return true
	case key.Matches(msg, s.keys.Run):
		return s.dispatch(runKey)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt:
		return s.dispatch(string(msg.Runes))
	}
	return false
}

func (s *State) handleSearch(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, s.keys.Run):
		return s.dispatch(runKey)
	case key.Matches(msg, s.keys.BackToList):
		s.enterList()
	case key.Matches(msg, s.keys.Clear):
		s.input.Reset()
		s.cursor = 0
		s.recompute()
		s.enterList()
	case key.Matches(msg, s.keys.SearchNext):
		s.Next()
	case key.Matches(msg, s.keys.SearchPrev):
		s.Prev()
	default:
		before := s.input.Value()
		s.input, _ = s.input.Update(msg)
		if s.input.Value() != before {
			s.cursor = 0
			s.recompute()
		}
	}
	return false
}

// dispatch binds actionKey through the selected runnable's keymap. Unbound keys
// and an empty list are no-ops.
func (s *State) dispatch(actionKey string) bool {
	selected, ok := s.Selected()
	if !ok {
		return false
	}
	chosen, ok := runnable.Choose(selected, actionKey)
	if !ok {
		return false
	}
	s.committed = chosen
	return true
}

// Next moves the cursor forward, wrapping at the end.
func (s *State) Next() {
	if n := len(s.active); n > 0 {
		s.cursor = (s.cursor + 1) % n
	}
}

// Prev moves the cursor backward, wrapping at the start.
func (s *State) Prev() {
	if n := len(s.active); n > 0 {
		s.cursor = (s.cursor - 1 + n) % n
	}
}

func (s *State) enterSearch() {
	s.mode = ModeSearch
	s.input.Focus()
}

func (s *State) enterList() {
	s.mode = ModeList
	s.input.Blur()
}

func (s *State) recompute() {
	s.active = Filter(s.all, s.input.Value())
	if s.cursor >= len(s.active) {
		s.cursor = 0
	}
}

// Mode returns the current input mode.
func (s *State) Mode() Mode { return s.mode }

// All returns every discovered runnable.
func (s *State) All() []runnable.Runnable { return s.all }

// Active returns the runnables passing the current filter.
func (s *State) Active() []runnable.Runnable { return s.active }

// Cursor returns the position of the selection within Active.
func (s *State) Cursor() int { return s.cursor }

// SearchText returns the search buffer.
func (s *State) SearchText() string { return s.input.Value() }

// Input exposes the search field for rendering.
func (s *State) Input() textinput.Model { return s.input }

// KeyMap returns the mode-level bindings.
func (s *State) KeyMap() KeyMap { return s.keys }

// Selected returns the runnable under the cursor.
func (s *State) Selected() (runnable.Runnable, bool) {
	if s.cursor < 0 || s.cursor >= len(s.active) {
		return runnable.Runnable{}, false
	}
	return s.active[s.cursor], true
}

// Committed returns the chosen runnable. The boolean is false when the user
// stopped without choosing.
func (s *State) Committed() (runnable.Runnable, bool) {
	return s.committed, !s.committed.IsNone()
}
