// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runnables-cli/runnables/internal/selection"
	"github.com/runnables-cli/runnables/pkg/runnable"

	tea "github.com/charmbracelet/bubbletea"
)

func fixture() []runnable.Runnable {
	root := filepath.FromSlash("/work")
	return []runnable.Runnable{
		{Name: "build", Path: root, Description: "compile everything", Params: runnable.RunFileParams{Command: "make all"}},
		{Name: "lint", Path: root, Params: runnable.RunFileParams{Command: "make lint"}, After: []string{"build"}},
		{Name: "release.sh", Path: filepath.Join(root, "scripts"), Params: runnable.ShellParams{Script: filepath.Join(root, "scripts", "release.sh")}},
		{Name: "core", Path: filepath.Join(root, "core"), Params: runnable.RustLibParams{Command: runnable.RustPublish}},
	}
}

func newTestModel(opts ...selection.Option) *pickerModel {
	return newPickerModel(selection.New(fixture(), opts...), Options{Root: filepath.FromSlash("/work")})
}

func press(m *pickerModel, s string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPicker_View(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	view := m.View()

	for _, want := range []string{
		appTitle,
		"q/esc quit",
		"s/tab search",
		searchHint,
		"---------- runfile ----------",
		"---------- shell ----------",
		"---------- rust (lib) ----------",
		"name: build",
		"path: .",
		"type: runfile",
		"compile everything",
		"make all",
		"r: run",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}
}

func TestPicker_ViewSelectedDetails(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	press(m, "j")
	press(m, "j")
	press(m, "j")
	view := m.View()

	for _, want := range []string{
		"name: core",
		"type: rust (lib)",
		noDescription,
		"t: test",
		"C: clippy",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}
	if strings.Contains(view, "make all") {
		t.Error("View() shows a runfile command for a rust library")
	}
}

func TestPicker_ViewNoSelection(t *testing.T) {
	t.Parallel()

	m := newTestModel(selection.WithSearch("zzz"))
	if view := m.View(); !strings.Contains(view, noSelection) {
		t.Errorf("View() missing %q\n%s", noSelection, view)
	}
}

func TestPicker_HelpFollowsMode(t *testing.T) {
	t.Parallel()

	m := newTestModel(selection.WithSearch("bu"))
	view := m.View()
	for _, want := range []string{"tab back to list", "esc clear search", "enter run"} {
		if !strings.Contains(view, want) {
			t.Errorf("search-mode View() missing %q\n%s", want, view)
		}
	}
	if strings.Contains(view, "q/esc quit") {
		t.Error("search-mode View() shows the list-mode quit key")
	}
}

func TestPicker_CommitQuits(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	press(m, "j")
	if cmd := press(m, "r"); !isQuit(cmd) {
		t.Fatal("r did not quit the program")
	}
	if m.View() != "" {
		t.Error("View() after commit should be empty")
	}
	got, ok := m.state.Committed()
	if !ok || got.Name != "lint" {
		t.Errorf("Committed() = %q, %v; want lint", got.Name, ok)
	}
}

func TestPicker_AbortQuits(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	if cmd := press(m, "q"); !isQuit(cmd) {
		t.Fatal("q did not quit the program")
	}
	if _, ok := m.state.Committed(); ok {
		t.Error("abort committed a choice")
	}
}

func TestPicker_NonQuittingKeys(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	for _, k := range []string{"j", "k", "x", "s"} {
		if cmd := press(m, k); cmd != nil {
			t.Errorf("key %q returned a command", k)
		}
	}
	if m.state.Mode() != selection.ModeSearch {
		t.Errorf("mode = %v, want search", m.state.Mode())
	}
}

func TestPicker_RedrawReschedules(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	if m.Init() == nil {
		t.Fatal("Init() should schedule a redraw")
	}
	if _, cmd := m.Update(redrawMsg{}); cmd == nil {
		t.Error("redraw did not reschedule itself")
	}
}

func TestPicker_WindowSize(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 14})
	if w, h := m.size(); w != 60 || h != 14 {
		t.Errorf("size() = %d,%d", w, h)
	}
	// The selected entry stays visible in a short list pane.
	press(m, "k")
	if view := m.View(); !strings.Contains(view, "core") {
		t.Errorf("selected entry scrolled out of view\n%s", view)
	}
}

func TestRun_NotATerminal(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, ok, err := Run(context.Background(), selection.New(fixture()), Options{Input: f})
	if !errors.Is(err, ErrNotATerminal) {
		t.Fatalf("Run() error = %v, want ErrNotATerminal", err)
	}
	if ok {
		t.Error("Run() reported a choice")
	}
}
