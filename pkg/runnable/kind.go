// SPDX-License-Identifier: MPL-2.0

package runnable

import (
	"errors"
	"fmt"
	"strings"
)

// Source kinds in discovery priority order.
const (
	// KindNone is the kind of the zero Runnable. Discovery never produces it.
	KindNone Kind = iota
	// KindRunFile is a task declared in a runfile.toml manifest.
	KindRunFile
	// KindShell is a standalone *.sh script.
	KindShell
	// KindRustBin is a Cargo package with a binary entry point.
	KindRustBin
	// KindRustLib is a Cargo package with a library entry point.
	KindRustLib
	// KindJavascript is a script declared in package.json.
	KindJavascript
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid runnable kind")

type (
	// Kind identifies which source produced a Runnable.
	Kind int

	// InvalidKindError is returned when a kind name or value is not recognized.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value string
	}
)

var kindIDs = map[Kind]string{
	KindNone:       "none",
	KindRunFile:    "runfile",
	KindShell:      "shell",
	KindRustBin:    "rust-bin",
	KindRustLib:    "rust-lib",
	KindJavascript: "javascript",
}

var kindDisplayNames = map[Kind]string{
	KindNone:       "none",
	KindRunFile:    "runfile",
	KindShell:      "shell",
	KindRustBin:    "rust (bin)",
	KindRustLib:    "rust (lib)",
	KindJavascript: "javascript",
}

// Kinds returns every discoverable kind in priority order.
func Kinds() []Kind {
	return []Kind{KindRunFile, KindShell, KindRustBin, KindRustLib, KindJavascript}
}

// ParseKind resolves a kind identifier. Matching ignores case, '-' and '_',
// so "RunFile", "run-file" and "runfile" are equivalent.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(s)))
	switch norm {
	case "runfile":
		return KindRunFile, nil
	case "shell", "sh":
		return KindShell, nil
	case "rustbin":
		return KindRustBin, nil
	case "rustlib":
		return KindRustLib, nil
	case "javascript", "js":
		return KindJavascript, nil
	default:
		return KindNone, &InvalidKindError{Value: s}
	}
}

// String returns the kind identifier used in references and flags.
func (k Kind) String() string {
	if id, ok := kindIDs[k]; ok {
		return id
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DisplayName returns the heading used when listing runnables of this kind.
func (k Kind) DisplayName() string {
	if name, ok := kindDisplayNames[k]; ok {
		return name
	}
	return k.String()
}

// IsValid returns whether the Kind is one of the discoverable kinds.
func (k Kind) IsValid() (bool, []error) {
	if k <= KindNone || k > KindJavascript {
		return false, []error{&InvalidKindError{Value: k.String()}}
	}
	return true, nil
}

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid runnable kind %q (expected one of: runfile, shell, rust-bin, rust-lib, javascript)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }
