// SPDX-License-Identifier: MPL-2.0

package selection

import (
	"github.com/runnables-cli/runnables/pkg/runnable"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the mode-level bindings. Per-runnable action keys come from
// runnable.Actions and are only consulted in List mode.
type KeyMap struct {
	// List mode.
	Search key.Binding
	Next   key.Binding
	Prev   key.Binding
	Quit   key.Binding

	// Search mode.
	BackToList key.Binding
	Clear      key.Binding
	SearchNext key.Binding
	SearchPrev key.Binding

	// Both modes.
	Run       key.Binding
	Interrupt key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:     key.NewBinding(key.WithKeys("s", "tab"), key.WithHelp("s/tab", "search")),
		Next:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
		Prev:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "quit")),
		BackToList: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "back to list")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		SearchNext: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		SearchPrev: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Run:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Interrupt:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ActionBindings converts a runnable's actions into help-ready key bindings.
func ActionBindings(r runnable.Runnable) []key.Binding {
	actions := runnable.Actions(r)
	out := make([]key.Binding, 0, len(actions))
	for _, a := range actions {
		out = append(out, key.NewBinding(key.WithKeys(a.Key), key.WithHelp(a.Key, a.Help)))
	}
	return out
}
