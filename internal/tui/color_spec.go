// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultColor is the highlight colour used when none is configured (ANSI bright blue).
const DefaultColor ColorSpec = "12"

// ErrInvalidColorSpec is the sentinel error wrapped by InvalidColorSpecError.
var ErrInvalidColorSpec = errors.New("invalid color spec")

type (
	// ColorSpec is a highlight colour: a CSS hex code, an ANSI colour number,
	// or one of the basic colour names. The zero value selects DefaultColor.
	ColorSpec string

	// InvalidColorSpecError is returned when a ColorSpec value is whitespace-only
	// or an unknown colour name.
	InvalidColorSpecError struct {
		Value ColorSpec
	}
)

// namedColors maps the basic terminal colour names to their ANSI numbers.
var namedColors = map[string]string{
	"black":         "0",
	"red":           "1",
	"green":         "2",
	"yellow":        "3",
	"blue":          "4",
	"magenta":       "5",
	"cyan":          "6",
	"white":         "7",
	"gray":          "8",
	"grey":          "8",
	"lightred":      "9",
	"lightgreen":    "10",
	"lightyellow":   "11",
	"lightblue":     "12",
	"lightmagenta":  "13",
	"lightcyan":     "14",
	"brightwhite":   "15",
	"light-red":     "9",
	"light-green":   "10",
	"light-yellow":  "11",
	"light-blue":    "12",
	"light-magenta": "13",
	"light-cyan":    "14",
}

// String returns the string representation of the ColorSpec.
func (c ColorSpec) String() string { return string(c) }

// Validate returns nil if the ColorSpec can be rendered.
func (c ColorSpec) Validate() error {
	if c == "" {
		return nil
	}
	s := strings.TrimSpace(string(c))
	switch {
	case s == "":
		return &InvalidColorSpecError{Value: c}
	case strings.HasPrefix(s, "#"):
		return nil
	case isNumber(s):
		return nil
	}
	if _, ok := namedColors[strings.ToLower(s)]; ok {
		return nil
	}
	return &InvalidColorSpecError{Value: c}
}

// Color resolves the spec to a lipgloss colour, falling back to DefaultColor.
func (c ColorSpec) Color() lipgloss.Color {
	if c == "" || c.Validate() != nil {
		return lipgloss.Color(DefaultColor)
	}
	s := strings.TrimSpace(string(c))
	if n, ok := namedColors[strings.ToLower(s)]; ok {
		return lipgloss.Color(n)
	}
	return lipgloss.Color(s)
}

// Error implements the error interface for InvalidColorSpecError.
func (e *InvalidColorSpecError) Error() string {
	return fmt.Sprintf("invalid color spec %q: expected a colour name, ANSI number or #hex", e.Value)
}

// Unwrap returns ErrInvalidColorSpec for errors.Is() compatibility.
func (e *InvalidColorSpecError) Unwrap() error { return ErrInvalidColorSpec }

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
