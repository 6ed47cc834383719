// SPDX-License-Identifier: MPL-2.0

// Package tui renders the interactive runnable picker.
//
// The picker is a Bubble Tea program driving a selection.State. It owns the
// state for the lifetime of the program and hands the committed runnable back
// by value once the program exits, so execution never overlaps rendering.
package tui
