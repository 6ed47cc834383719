// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/runnables-cli/runnables/internal/issue"
	"github.com/runnables-cli/runnables/pkg/runnable"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions caps the "did you mean" list of a failed lookup.
const maxSuggestions = 3

// selectDirect resolves a --runnable reference and binds the action key.
// "Kind:name" restricts the lookup to one kind; a bare name matches the first
// runnable, in discovery order, with that name or alias.
func selectDirect(all []runnable.Runnable, ref, key string) (runnable.Runnable, error) {
	chosen, err := lookupRef(all, ref)
	if err != nil {
		return runnable.Runnable{}, err
	}

	bound, err := runnable.Bind(chosen, key)
	if err != nil {
		var unknown *runnable.UnknownActionError
		if errors.As(err, &unknown) {
			return runnable.Runnable{}, newServiceError(err, issue.ActionNotAvailableId,
				fmt.Sprintf("%s key %s does nothing for %s (%s); use one of: %s\n",
					ErrorStyle.Render("Error:"), CmdStyle.Render(key), CmdStyle.Render(chosen.Name),
					chosen.Kind().DisplayName(), strings.Join(unknown.Available, ", ")))
		}
		return runnable.Runnable{}, err
	}
	return bound, nil
}

func lookupRef(all []runnable.Runnable, ref string) (runnable.Runnable, error) {
	kindText, name, qualified := strings.Cut(ref, ":")
	if !qualified {
		if r, ok := runnable.LookupAny(all, ref); ok {
			return r, nil
		}
		return runnable.Runnable{}, notFoundError(all, ref, ref)
	}

	kind, err := runnable.ParseKind(kindText)
	if err != nil {
		return runnable.Runnable{}, issue.NewErrorContext().
			WithOperation("select runnable").
			WithResource(ref).
			WithSuggestions(
				"Valid kinds: "+kindList(),
				"Omit the kind to match by name or alias alone",
			).
			Wrap(err).
			BuildError()
	}
	for _, r := range all {
		if r.Kind() == kind && r.HasName(name) {
			return r, nil
		}
	}
	return runnable.Runnable{}, notFoundError(all, ref, name)
}

func notFoundError(all []runnable.Runnable, ref, name string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s runnable %s not found\n", ErrorStyle.Render("Error:"), CmdStyle.Render(fmt.Sprintf("%q", ref)))
	if suggestions := suggest(all, name); len(suggestions) > 0 {
		fmt.Fprintf(&b, "%s %s\n", SubtitleStyle.Render("Did you mean:"), strings.Join(suggestions, ", "))
	}
	return newServiceError(fmt.Errorf("runnable %q not found", ref), issue.RunnableNotFoundId, b.String())
}

// suggest returns the names and aliases closest to name, best first.
func suggest(all []runnable.Runnable, name string) []string {
	var candidates []string
	for _, r := range all {
		for _, n := range append([]string{r.Name}, r.Aliases...) {
			if !slices.Contains(candidates, n) {
				candidates = append(candidates, n)
			}
		}
	}

	matches := fuzzy.Find(name, candidates)
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

func kindList() string {
	kinds := runnable.Kinds()
	ids := make([]string, len(kinds))
	for i, k := range kinds {
		ids[i] = k.String()
	}
	return strings.Join(ids, ", ")
}
