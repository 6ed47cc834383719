// SPDX-License-Identifier: MPL-2.0

// Package stringlist implements the list grammar shared by marker files and
// manifest fields: entries are separated by newlines or commas, blank lines
// are ignored, and '#' starts a comment either at the beginning of a line or
// after a space.
package stringlist

import (
	"fmt"
	"strings"
)

// List is an ordered list of entries parsed with Parse. It decodes from a
// TOML string (parsed with the grammar) or a TOML array of strings.
type List []string

// Parse splits text into entries.
func Parse(text string) []string {
	var out []string
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, " #"); i >= 0 {
			line = line[:i]
		}
		for entry := range strings.SplitSeq(line, ",") {
			entry = strings.TrimSpace(entry)
			if entry != "" {
				out = append(out, entry)
			}
		}
	}
	return out
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *List) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*l = Parse(v)
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("list entry %d: expected string, got %T", i, item)
			}
			out = append(out, Parse(s)...)
		}
		*l = out
	default:
		return fmt.Errorf("expected string or array of strings, got %T", data)
	}
	return nil
}
