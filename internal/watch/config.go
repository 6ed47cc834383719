// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/runnables-cli/runnables/pkg/types"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid watch config")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Patterns select which files trigger the callback ("**/*.go").
		// An empty slice matches every non-ignored file.
		Patterns []string

		// Ignore patterns are added to the built-in ignores.
		Ignore []string

		// IgnoreDirs are directory names skipped at any depth, like the
		// discovery ignore list.
		IgnoreDirs []string

		Debounce time.Duration

		// ClearScreen writes an ANSI clear sequence to Stdout before each callback.
		ClearScreen bool

		// RunOnStart fires OnChange once with no changed paths before the first event.
		RunOnStart bool

		// BaseDir is the watched root. Empty means the working directory.
		BaseDir types.FilesystemPath

		// OnChange receives the changed paths relative to BaseDir. A returned
		// error is logged and watching continues.
		OnChange func(ctx context.Context, changed []string) error

		// Stdout defaults to os.Stdout.
		Stdout io.Writer
	}

	// InvalidConfigError collects every problem found by Config.Validate.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Validate checks that BaseDir is not blank and that every pattern is a
// non-empty, well-formed doublestar glob.
func (c Config) Validate() error {
	var errs []error
	if c.BaseDir != "" {
		if valid, fieldErrs := c.BaseDir.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	errs = append(errs, validatePatterns(c.Patterns, "watch")...)
	errs = append(errs, validatePatterns(c.Ignore, "ignore")...)
	for i, name := range c.IgnoreDirs {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) {
			errs = append(errs, fmt.Errorf("ignore dir [%d] %q must be a single directory name", i, name))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("%d watch config errors: %s", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func validatePatterns(patterns []string, label string) []error {
	var errs []error
	for i, pat := range patterns {
		if strings.TrimSpace(pat) == "" {
			errs = append(errs, fmt.Errorf("invalid %s pattern [%d]: empty", label, i))
			continue
		}
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("invalid %s pattern %q", label, pat))
		}
	}
	return errs
}
