// SPDX-License-Identifier: MPL-2.0

// Package selection implements the interactive picker's state machine. It is
// independent of rendering: feed it tea.KeyMsg values with Handle and read the
// filtered list, cursor, mode and committed choice back out.
package selection
