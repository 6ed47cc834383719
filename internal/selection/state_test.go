// SPDX-License-Identifier: MPL-2.0

package selection

import (
	"slices"
	"testing"

	"github.com/runnables-cli/runnables/pkg/runnable"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

func typeText(t *testing.T, s *State, text string) {
	t.Helper()
	for _, r := range text {
		if s.Handle(runes(string(r))) {
			t.Fatalf("typing %q stopped the picker", r)
		}
	}
}

func sample() []runnable.Runnable {
	all := []runnable.Runnable{
		{Name: "build", Aliases: []string{"b"}, Path: "/w", Params: runnable.RunFileParams{Command: "make"}},
		{Name: "build-docs", Path: "/w/docs", Params: runnable.RunFileParams{Command: "mkdocs build"}},
		{Name: "deploy.sh", Path: "/w", Params: runnable.ShellParams{Script: "/w/deploy.sh"}},
		{Name: "tool", Aliases: []string{"cli-tool"}, Path: "/w/tool", Params: runnable.RustBinParams{Command: runnable.RustRun}},
		{Name: "core", Path: "/w/core", Params: runnable.RustLibParams{Command: runnable.RustPublish}},
	}
	for i := range all {
		all[i].Index = i
	}
	return all
}

func names(rs []runnable.Runnable) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	all := sample()
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty matches all in order", text: "", want: names(all)},
		{name: "whitespace only", text: "   ", want: names(all)},
		{name: "single term", text: "build", want: []string{"build", "build-docs"}},
		{name: "all terms on name", text: "docs bui", want: []string{"build-docs"}},
		{name: "alias match", text: "cli", want: []string{"tool"}},
		{name: "all terms on one alias", text: "tool cli", want: []string{"tool"}},
		{name: "split across name and alias", text: "core cli", want: []string{}},
		{name: "case sensitive", text: "BUILD", want: []string{}},
		{name: "no match", text: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := names(Filter(all, tt.text))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	all := sample()
	for _, text := range []string{"build", "o", "cli", "sh"} {
		once := Filter(all, text)
		twice := Filter(once, text)
		if !slices.Equal(names(once), names(twice)) {
			t.Errorf("Filter(%q) not idempotent: %v then %v", text, names(once), names(twice))
		}
	}
}

func TestCursorWraparound(t *testing.T) {
	t.Parallel()

	s := New(sample())
	n := len(s.Active())
	for range n {
		s.Handle(runes("j"))
	}
	if s.Cursor() != 0 {
		t.Errorf("after %d nexts cursor = %d, want 0", n, s.Cursor())
	}

	s.Handle(keyOf(tea.KeyUp))
	if s.Cursor() != n-1 {
		t.Errorf("prev from 0 = %d, want %d", s.Cursor(), n-1)
	}
	s.Handle(keyOf(tea.KeyDown))
	if s.Cursor() != 0 {
		t.Errorf("down from last = %d, want 0", s.Cursor())
	}
}

func TestCursor_EmptyActiveIsNoop(t *testing.T) {
	t.Parallel()

	s := New(sample(), WithSearch("nothing-matches"))
	s.Handle(keyOf(tea.KeyDown))
	s.Handle(keyOf(tea.KeyUp))
	if s.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", s.Cursor())
	}
	if s.Handle(keyOf(tea.KeyEnter)) {
		t.Error("Enter with empty active list stopped the picker")
	}
	if _, ok := s.Committed(); ok {
		t.Error("Committed() = true with empty active list")
	}
}

func TestList_LibraryKeymap(t *testing.T) {
	t.Parallel()

	s := New(sample())
	for s.Cursor() != 4 {
		s.Handle(runes("j"))
	}

	if s.Handle(runes("r")) {
		t.Fatal("r on a library stopped the picker")
	}
	if _, ok := s.Committed(); ok {
		t.Fatal("r on a library committed a choice")
	}

	if !s.Handle(runes("t")) {
		t.Fatal("t on a library did not stop the picker")
	}
	got, ok := s.Committed()
	if !ok {
		t.Fatal("Committed() = false after t")
	}
	if p, isLib := got.Params.(runnable.RustLibParams); !isLib || p.Command != runnable.RustTest {
		t.Errorf("committed params = %#v, want RustLibParams{Test}", got.Params)
	}
	if s.All()[4].Params.(runnable.RustLibParams).Command != runnable.RustPublish {
		t.Error("committing mutated the discovered runnable")
	}
}

func TestList_BinaryKeymap(t *testing.T) {
	t.Parallel()

	s := New(sample())
	s.Handle(runes("k"))
	s.Handle(runes("k"))
	if sel, _ := s.Selected(); sel.Name != "tool" {
		t.Fatalf("selected = %q, want tool", sel.Name)
	}
	if !s.Handle(runes("R")) {
		t.Fatal("R did not stop the picker")
	}
	got, _ := s.Committed()
	if got.Params.(runnable.RustBinParams).Command != runnable.RustRunRelease {
		t.Errorf("committed = %#v, want RunRelease", got.Params)
	}
}

func TestList_EnterActsAsRun(t *testing.T) {
	t.Parallel()

	s := New(sample())
	if !s.Handle(keyOf(tea.KeyEnter)) {
		t.Fatal("Enter did not stop the picker")
	}
	got, ok := s.Committed()
	if !ok || got.Name != "build" {
		t.Errorf("Committed() = %q, %v; want build", got.Name, ok)
	}
}

func TestList_QuitWithoutCommit(t *testing.T) {
	t.Parallel()

	for _, msg := range []tea.KeyMsg{runes("q"), keyOf(tea.KeyEscape), keyOf(tea.KeyCtrlC)} {
		s := New(sample())
		if !s.Handle(msg) {
			t.Errorf("%v did not stop the picker", msg)
		}
		if _, ok := s.Committed(); ok {
			t.Errorf("%v committed a choice", msg)
		}
	}
}

func TestList_UnmappedKeyIsNoop(t *testing.T) {
	t.Parallel()

	s := New(sample())
	if s.Handle(runes("x")) {
		t.Error("x stopped the picker")
	}
	if s.Mode() != ModeList || s.Cursor() != 0 {
		t.Errorf("state changed: mode %v cursor %d", s.Mode(), s.Cursor())
	}
}

func TestSearch_TypingFiltersAndResetsCursor(t *testing.T) {
	t.Parallel()

	s := New(sample())
	s.Handle(runes("j"))
	s.Handle(runes("j"))
	s.Handle(runes("s"))
	if s.Mode() != ModeSearch {
		t.Fatalf("mode = %v, want search", s.Mode())
	}

	typeText(t, s, "bu")
	if s.Cursor() != 0 {
		t.Errorf("cursor = %d after typing, want 0", s.Cursor())
	}
	if got := names(s.Active()); !slices.Equal(got, []string{"build", "build-docs"}) {
		t.Errorf("active = %v", got)
	}

	// j and k are text in Search mode.
	typeText(t, s, "j")
	if s.SearchText() != "buj" || len(s.Active()) != 0 {
		t.Errorf("search text %q, active %v", s.SearchText(), names(s.Active()))
	}
	s.Handle(keyOf(tea.KeyBackspace))
	if s.SearchText() != "bu" || len(s.Active()) != 2 {
		t.Errorf("after backspace: search text %q, active %v", s.SearchText(), names(s.Active()))
	}

	s.Handle(keyOf(tea.KeyDown))
	if s.Cursor() != 1 || s.Mode() != ModeSearch {
		t.Errorf("Down in search: cursor %d mode %v", s.Cursor(), s.Mode())
	}
}

func TestSearch_TabKeepsBuffer(t *testing.T) {
	t.Parallel()

	s := New(sample())
	s.Handle(keyOf(tea.KeyTab))
	typeText(t, s, "docs")
	s.Handle(keyOf(tea.KeyTab))

	if s.Mode() != ModeList {
		t.Fatalf("mode = %v, want list", s.Mode())
	}
	if s.SearchText() != "docs" || len(s.Active()) != 1 {
		t.Errorf("search text %q, active %v", s.SearchText(), names(s.Active()))
	}
}

func TestSearch_EscClears(t *testing.T) {
	t.Parallel()

	s := New(sample(), WithSearch("tool"))
	if s.Mode() != ModeSearch || len(s.Active()) != 1 {
		t.Fatalf("WithSearch: mode %v, active %v", s.Mode(), names(s.Active()))
	}
	if s.Handle(keyOf(tea.KeyEscape)) {
		t.Fatal("Esc in search mode stopped the picker")
	}
	if s.Mode() != ModeList || s.SearchText() != "" || len(s.Active()) != len(s.All()) {
		t.Errorf("after Esc: mode %v text %q active %d", s.Mode(), s.SearchText(), len(s.Active()))
	}
}

func TestSearch_EnterRunsSelection(t *testing.T) {
	t.Parallel()

	s := New(sample(), WithSearch("deploy"))
	if !s.Handle(keyOf(tea.KeyEnter)) {
		t.Fatal("Enter did not stop the picker")
	}
	got, ok := s.Committed()
	if !ok || got.Kind() != runnable.KindShell {
		t.Errorf("Committed() = %+v, %v", got, ok)
	}
}

func TestSearch_EnterOnLibraryIsNoop(t *testing.T) {
	t.Parallel()

	s := New(sample(), WithSearch("core"))
	if s.Handle(keyOf(tea.KeyEnter)) {
		t.Error("Enter on a library stopped the picker")
	}
}

func TestSearch_CtrlCStops(t *testing.T) {
	t.Parallel()

	s := New(sample(), WithSearch(""))
	if !s.Handle(keyOf(tea.KeyCtrlC)) {
		t.Error("ctrl+c did not stop the picker")
	}
	if _, ok := s.Committed(); ok {
		t.Error("ctrl+c committed a choice")
	}
}

func TestActionBindings(t *testing.T) {
	t.Parallel()

	bindings := ActionBindings(sample()[4])
	if len(bindings) != 7 {
		t.Fatalf("library has %d bindings, want 7", len(bindings))
	}
	if h := bindings[3].Help(); h.Key != "t" || h.Desc != "test" {
		t.Errorf("bindings[3] help = %+v", h)
	}
}
