// SPDX-License-Identifier: MPL-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by the picker view.
type Theme struct {
	Title       lipgloss.Style
	Root        lipgloss.Style
	Hint        lipgloss.Style
	Header      lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Key         lipgloss.Style
	Muted       lipgloss.Style
	ActiveBox   lipgloss.Style
	InactiveBox lipgloss.Style
	SearchText  lipgloss.Style
}

// NewTheme builds the picker styles around one highlight colour.
func NewTheme(accent ColorSpec) Theme {
	color := accent.Color()
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(color),
		Root:        lipgloss.NewStyle().Bold(true),
		Hint:        lipgloss.NewStyle().Bold(true),
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Item:        lipgloss.NewStyle().Foreground(color),
		Selected:    lipgloss.NewStyle().Foreground(color).Bold(true).Underline(true),
		Label:       lipgloss.NewStyle(),
		Value:       lipgloss.NewStyle().Bold(true).Foreground(color),
		Key:         lipgloss.NewStyle().Bold(true).Foreground(color),
		Muted:       lipgloss.NewStyle().Faint(true),
		ActiveBox:   box.BorderForeground(color),
		InactiveBox: box.BorderForeground(lipgloss.Color("7")),
		SearchText:  lipgloss.NewStyle().Foreground(color),
	}
}
