// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"fmt"
	"slices"

	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"

	"mvdan.cc/sh/v3/syntax"
)

var (
	// ErrNotApplicable reports that a directory is not of a source's kind.
	ErrNotApplicable = errors.New("not applicable")

	// ErrNoParams is returned by Command for a Runnable with no command choice.
	ErrNoParams = errors.New("runnable has no command selected")
)

type (
	// Source recognizes one task convention.
	Source interface {
		// Kind returns the kind of every Runnable the source emits.
		Kind() runnable.Kind
		// Scan inspects exactly one directory, which must be canonical.
		Scan(dir types.FilesystemPath) ([]runnable.Runnable, error)
	}

	// MalformedError is a not-applicable result caused by a marker that exists
	// but could not be parsed. It matches ErrNotApplicable.
	MalformedError struct {
		Kind runnable.Kind
		Path types.FilesystemPath
		Err  error
	}
)

// All returns every source in discovery priority order.
func All() []Source {
	return []Source{RunFile{}, Shell{}, RustBin{}, RustLib{}, Javascript{}}
}

// Enabled returns the sources in priority order, minus the disabled kinds.
func Enabled(disabled ...runnable.Kind) []Source {
	var out []Source
	for _, s := range All() {
		if !slices.Contains(disabled, s.Kind()) {
			out = append(out, s)
		}
	}
	return out
}

// Command composes the shell command line that executes r.
func Command(r runnable.Runnable) (string, error) {
	switch p := r.Params.(type) {
	case runnable.RunFileParams:
		return RunFile{}.BuildCommand(r, p)
	case runnable.ShellParams:
		return Shell{}.BuildCommand(r, p)
	case runnable.RustBinParams:
		return RustBin{}.BuildCommand(r, p)
	case runnable.RustLibParams:
		return RustLib{}.BuildCommand(r, p)
	case runnable.JavascriptParams:
		return Javascript{}.BuildCommand(r, p)
	case nil:
		return "", ErrNoParams
	default:
		return "", fmt.Errorf("unsupported params type %T", p)
	}
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: malformed %s manifest: %v", e.Path, e.Kind, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Is reports ErrNotApplicable as a match.
func (e *MalformedError) Is(target error) bool { return target == ErrNotApplicable }

func malformed(kind runnable.Kind, path types.FilesystemPath, err error) error {
	return &MalformedError{Kind: kind, Path: path, Err: err}
}

func quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("quote %q: %w", s, err)
	}
	return q, nil
}

// inDir prefixes command with a cd into dir.
func inDir(dir, command string) (string, error) {
	q, err := quote(dir)
	if err != nil {
		return "", err
	}
	return "cd " + q + " && " + command, nil
}
