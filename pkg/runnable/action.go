// SPDX-License-Identifier: MPL-2.0

package runnable

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is the sentinel error wrapped by UnknownActionError.
var ErrUnknownAction = errors.New("unknown action")

type (
	// Action binds a single key to a command choice for one runnable.
	Action struct {
		Key    string
		Help   string
		Params Params
	}

	// UnknownActionError is returned when a key has no action for a runnable's kind.
	UnknownActionError struct {
		Key       string
		Kind      Kind
		Available []string
	}
)

var (
	rustBinKeys = []struct {
		key string
		cmd RustCommand
	}{
		{"r", RustRun},
		{"R", RustRunRelease},
		{"p", RustPublish},
		{"i", RustInstall},
		{"b", RustBuild},
		{"B", RustBuildRelease},
		{"t", RustTest},
		{"c", RustCheck},
		{"C", RustClippy},
		{"f", RustFmt},
	}

	rustLibKeys = []struct {
		key string
		cmd RustCommand
	}{
		{"p", RustPublish},
		{"b", RustBuild},
		{"B", RustBuildRelease},
		{"t", RustTest},
		{"c", RustCheck},
		{"C", RustClippy},
		{"f", RustFmt},
	}
)

// Actions returns the keymap for r's kind, in display order.
func Actions(r Runnable) []Action {
	switch p := r.Params.(type) {
	case RunFileParams:
		return []Action{{Key: "r", Help: "run", Params: p}}
	case ShellParams:
		return []Action{{Key: "r", Help: "run", Params: p}}
	case RustBinParams:
		out := make([]Action, 0, len(rustBinKeys))
		for _, k := range rustBinKeys {
			out = append(out, Action{Key: k.key, Help: k.cmd.String(), Params: RustBinParams{Command: k.cmd}})
		}
		return out
	case RustLibParams:
		out := make([]Action, 0, len(rustLibKeys))
		for _, k := range rustLibKeys {
			out = append(out, Action{Key: k.key, Help: k.cmd.String(), Params: RustLibParams{Command: k.cmd}})
		}
		return out
	case JavascriptParams:
		return []Action{
			{Key: "r", Help: "run (yarn)", Params: JavascriptParams{Manager: Yarn}},
			{Key: "y", Help: "yarn", Params: JavascriptParams{Manager: Yarn}},
			{Key: "n", Help: "npm", Params: JavascriptParams{Manager: Npm}},
		}
	default:
		return nil
	}
}

// Choose returns a copy of r with the params bound to key. The boolean is
// false when key has no action for r's kind.
func Choose(r Runnable, key string) (Runnable, bool) {
	for _, a := range Actions(r) {
		if a.Key == key {
			return r.WithParams(a.Params), true
		}
	}
	return Runnable{}, false
}

// Bind is like Choose but returns an UnknownActionError listing the
// valid keys when key is not bound.
func Bind(r Runnable, key string) (Runnable, error) {
	if chosen, ok := Choose(r, key); ok {
		return chosen, nil
	}
	var keys []string
	for _, a := range Actions(r) {
		keys = append(keys, a.Key)
	}
	return Runnable{}, &UnknownActionError{Key: key, Kind: r.Kind(), Available: keys}
}

// Error implements the error interface for UnknownActionError.
func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("no action bound to key %q for %s runnables (available: %s)",
		e.Key, e.Kind, strings.Join(e.Available, ", "))
}

// Unwrap returns ErrUnknownAction for errors.Is() compatibility.
func (e *UnknownActionError) Unwrap() error { return ErrUnknownAction }
