// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/runnables-cli/runnables/internal/selection"
	"github.com/runnables-cli/runnables/pkg/fspath"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const (
	appTitle      = "runnables-cli"
	searchHint    = "press TAB to search"
	noDescription = "-- NO DESCRIPTION --"
	noSelection   = "-- NO RUNNABLE SELECTED --"

	defaultWidth  = 100
	defaultHeight = 30

	// searchRows is the label line plus the bordered one-line input.
	searchRows = 4
)

func (m *pickerModel) size() (width, height int) {
	width, height = m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (m *pickerModel) render() string {
	width, height := m.size()
	// One cell of margin on every side.
	inner := max(width-2, 20)
	bodyHeight := max(height-2-2-searchRows, 5)
	listWidth := inner / 2

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(listWidth, bodyHeight),
		m.renderInfo(inner-listWidth, bodyHeight),
	)

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(inner),
		m.renderSearch(inner),
		body,
		lipgloss.PlaceHorizontal(inner, lipgloss.Right, m.renderHelp(inner)),
	)
	return lipgloss.NewStyle().Margin(1).Render(view)
}

func (m *pickerModel) renderTitle(width int) string {
	left := m.theme.Title.Render(appTitle)
	right := m.theme.Root.Render(m.root)
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m *pickerModel) renderSearch(width int) string {
	box := m.theme.InactiveBox
	var value string
	switch {
	case m.state.Mode() == selection.ModeSearch:
		box = m.theme.ActiveBox
		value = m.theme.SearchText.Render(m.state.Input().View())
	case m.state.SearchText() == "":
		value = m.theme.Muted.Render(searchHint)
	default:
		value = m.state.SearchText()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"search",
		box.Width(width-2).Render(value),
	)
}

// listLines renders the active runnables grouped under kind headers and
// returns the line index of the selected entry.
func (m *pickerModel) listLines() ([]string, int) {
	var (
		lines    []string
		selected int
		group    = runnable.KindNone
	)
	for i, r := range m.state.Active() {
		if kind := r.Kind(); kind != group {
			if group != runnable.KindNone {
				lines = append(lines, "")
			}
			group = kind
			lines = append(lines, m.theme.Header.Render(fmt.Sprintf("---------- %s ----------", kind.DisplayName())))
		}
		style := m.theme.Item
		if i == m.state.Cursor() {
			style = m.theme.Selected
			selected = len(lines)
		}
		lines = append(lines, style.Render(r.Title()))
	}
	return lines, selected
}

func (m *pickerModel) renderList(width, height int) string {
	box := m.theme.ActiveBox
	if m.state.Mode() == selection.ModeSearch {
		box = m.theme.InactiveBox
	}

	lines, selected := m.listLines()
	visible := height - 2
	if len(lines) > visible {
		start := max(selected-visible+1, 0)
		lines = lines[start : start+visible]
	}
	return box.Width(width - 2).Height(visible).Render(strings.Join(lines, "\n"))
}

// infoLines describes the selected runnable.
func (m *pickerModel) infoLines() []string {
	r, ok := m.state.Selected()
	if !ok {
		return []string{noSelection}
	}

	field := func(label, value string) string {
		return m.theme.Label.Render(label+": ") + m.theme.Value.Render(value)
	}
	description := r.Description
	if description == "" {
		description = noDescription
	}

	lines := []string{
		field("name", r.Name),
		field("path", fspath.Display(types.FilesystemPath(m.root), types.FilesystemPath(r.Path))),
		field("type", r.Kind().DisplayName()),
		"",
		description,
	}
	if p, isRunFile := r.Params.(runnable.RunFileParams); isRunFile {
		lines = append(lines, "", m.theme.Value.Render(p.Command))
	}
	if len(r.After) > 0 {
		lines = append(lines, "", m.theme.Muted.Render("after: "+strings.Join(r.After, ", ")))
	}

	lines = append(lines, "")
	for _, b := range selection.ActionBindings(r) {
		h := b.Help()
		lines = append(lines, m.theme.Key.Render(h.Key)+": "+h.Desc)
	}
	return lines
}

// helpBindings returns the mode-level keys that apply right now.
func (m *pickerModel) helpBindings() []key.Binding {
	km := m.state.KeyMap()
	if m.state.Mode() == selection.ModeSearch {
		return []key.Binding{km.BackToList, km.Clear, km.SearchNext, km.SearchPrev, km.Run}
	}
	return []key.Binding{km.Search, km.Next, km.Prev, km.Run, km.Quit}
}

func (m *pickerModel) renderHelp(width int) string {
	h := help.New()
	h.Width = width
	h.Styles.ShortKey = m.theme.Hint
	return h.ShortHelpView(m.helpBindings())
}

func (m *pickerModel) renderInfo(width, height int) string {
	return m.theme.InactiveBox.
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height).
		Render(strings.Join(m.infoLines(), "\n"))
}
