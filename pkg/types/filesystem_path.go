// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a non-empty filesystem path. Paths produced by
	// fspath.Canonical are absolute with symlinks resolved.
	FilesystemPath string

	// InvalidFilesystemPathError is returned for empty or whitespace-only paths.
	InvalidFilesystemPathError struct {
		Value FilesystemPath
	}
)

func (p FilesystemPath) String() string { return string(p) }

// IsValid returns whether the path is non-empty and not whitespace-only.
func (p FilesystemPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidFilesystemPathError{Value: p}}
	}
	return true, nil
}

func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
