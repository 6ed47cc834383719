// SPDX-License-Identifier: MPL-2.0

package runnable

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidRunnable is the sentinel error wrapped by InvalidRunnableError.
var ErrInvalidRunnable = errors.New("invalid runnable")

type (
	// Runnable is one discovered, executable task. Values are treated as
	// immutable once discovery finishes; use WithParams to derive a copy with a
	// different command choice.
	Runnable struct {
		// Name identifies the runnable within its source and directory.
		Name string
		// Aliases are alternate names accepted by direct selection and search.
		Aliases []string
		// DisplayName overrides Name in the UI when set.
		DisplayName string
		// Description is free text shown in the detail pane.
		Description string
		// After lists references ("Kind:name" or "name") to run first, in order.
		After []string
		// Path is the absolute working directory.
		Path string
		// Index is the position in the discovery output.
		Index int
		// Watch lists glob patterns used by watch mode, relative to Path.
		Watch []string
		// Params holds the source-specific command choice.
		Params Params
	}

	// InvalidRunnableError describes a Runnable that violates the model invariants.
	InvalidRunnableError struct {
		Name   string
		Reason string
	}
)

// Kind returns the kind encoded by the runnable's params, or KindNone.
func (r Runnable) Kind() Kind {
	if r.Params == nil {
		return KindNone
	}
	return r.Params.Kind()
}

// IsNone reports whether r carries no command choice.
func (r Runnable) IsNone() bool { return r.Params == nil }

// Title returns DisplayName when set, otherwise Name.
func (r Runnable) Title() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Name
}

// HasName reports whether name equals the runnable's name or one of its aliases.
func (r Runnable) HasName(name string) bool {
	return r.Name == name || slices.Contains(r.Aliases, name)
}

// Clone returns a deep copy of r.
func (r Runnable) Clone() Runnable {
	c := r
	c.Aliases = slices.Clone(r.Aliases)
	c.After = slices.Clone(r.After)
	c.Watch = slices.Clone(r.Watch)
	return c
}

// WithParams returns a copy of r with its params replaced.
func (r Runnable) WithParams(p Params) Runnable {
	c := r.Clone()
	c.Params = p
	return c
}

// IsValid checks the invariants every discovered Runnable satisfies.
func (r Runnable) IsValid() (bool, []error) {
	var errs []error
	if r.Name == "" {
		errs = append(errs, &InvalidRunnableError{Name: r.Name, Reason: "name is empty"})
	}
	if r.Params == nil {
		errs = append(errs, &InvalidRunnableError{Name: r.Name, Reason: "params are not set"})
	}
	if r.Path == "" {
		errs = append(errs, &InvalidRunnableError{Name: r.Name, Reason: "path is empty"})
	}
	return len(errs) == 0, errs
}

// Error implements the error interface for InvalidRunnableError.
func (e *InvalidRunnableError) Error() string {
	return fmt.Sprintf("invalid runnable %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidRunnable for errors.Is() compatibility.
func (e *InvalidRunnableError) Unwrap() error { return ErrInvalidRunnable }
