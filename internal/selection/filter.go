// SPDX-License-Identifier: MPL-2.0

package selection

import (
	"strings"

	"github.com/runnables-cli/runnables/pkg/runnable"
)

// Filter returns the runnables matching text, in their original order.
// text is split on whitespace into terms; a runnable matches when every term
// is a substring of its name, or every term is a substring of one of its
// aliases. Matching is case-sensitive. Empty text matches everything.
func Filter(all []runnable.Runnable, text string) []runnable.Runnable {
	terms := strings.Fields(text)
	if len(terms) == 0 {
		return all
	}

	out := make([]runnable.Runnable, 0, len(all))
	for _, r := range all {
		if Matches(r, terms) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether r satisfies every term by name or by a single alias.
func Matches(r runnable.Runnable, terms []string) bool {
	if containsAll(r.Name, terms) {
		return true
	}
	for _, alias := range r.Aliases {
		if containsAll(alias, terms) {
			return true
		}
	}
	return false
}

func containsAll(s string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(s, term) {
			return false
		}
	}
	return true
}
