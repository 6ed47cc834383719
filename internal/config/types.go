// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/runnables-cli/runnables/pkg/runnable"
)

const (
	// RuntimeNative runs composed commands through the host shell.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs composed commands in the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"

	// DefaultColor is the highlight colour used when none is configured.
	DefaultColor = "12"
	// DefaultShell is the shell binary used by the native runtime.
	DefaultShell = "sh"
	// DefaultDebounce is the quiet period before watch mode re-runs.
	DefaultDebounce = 500 * time.Millisecond
)

var (
	// ErrInvalidConfigRuntimeMode is returned when a RuntimeMode value is not recognized.
	ErrInvalidConfigRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidShell is returned when the configured shell is whitespace-only.
	ErrInvalidShell = errors.New("invalid shell")
	// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
	ErrInvalidWatchConfig = errors.New("invalid watch config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RuntimeMode selects how composed commands are executed.
	RuntimeMode string

	// InvalidConfigRuntimeModeError is returned when a RuntimeMode value is not recognized.
	InvalidConfigRuntimeModeError struct {
		Value RuntimeMode
	}

	// InvalidShellError is returned when Shell is set but blank.
	InvalidShellError struct {
		Value string
	}

	// InvalidWatchConfigError collects field-level errors of a WatchConfig.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects field-level errors of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Color is the highlight colour of the picker.
		Color string `json:"color" mapstructure:"color"`
		// DisabledSources lists source kind ids excluded from discovery.
		DisabledSources []string `json:"disabled_sources" mapstructure:"disabled_sources"`
		// IgnoreDirs adds directory names to the built-in discovery ignore list.
		IgnoreDirs []string `json:"ignore_dirs" mapstructure:"ignore_dirs"`
		// Runtime is either "native" or "virtual".
		Runtime RuntimeMode `json:"runtime" mapstructure:"runtime"`
		// Shell is the binary the native runtime invokes with -c.
		Shell string `json:"shell" mapstructure:"shell"`
		// Verbose enables debug logging.
		Verbose bool        `json:"verbose" mapstructure:"verbose"`
		Watch   WatchConfig `json:"watch" mapstructure:"watch"`
	}

	// WatchConfig configures --watch re-execution.
	WatchConfig struct {
		Patterns    []string      `json:"patterns" mapstructure:"patterns"`
		Ignore      []string      `json:"ignore" mapstructure:"ignore"`
		Debounce    time.Duration `json:"debounce" mapstructure:"debounce"`
		ClearScreen bool          `json:"clear_screen" mapstructure:"clear_screen"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Color:           DefaultColor,
		DisabledSources: []string{},
		IgnoreDirs:      []string{},
		Runtime:         RuntimeNative,
		Shell:           DefaultShell,
		Verbose:         false,
		Watch: WatchConfig{
			Patterns:    []string{},
			Ignore:      []string{},
			Debounce:    DefaultDebounce,
			ClearScreen: false,
		},
	}
}

// DisabledKinds parses DisabledSources. Unknown ids are reported together.
func (c Config) DisabledKinds() ([]runnable.Kind, error) {
	kinds := make([]runnable.Kind, 0, len(c.DisabledSources))
	var errs []error
	for _, s := range c.DisabledSources {
		k, err := runnable.ParseKind(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		kinds = append(kinds, k)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return kinds, nil
}

// IsValid returns whether every field of the Config holds an accepted value.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Runtime.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.Shell != "" && strings.TrimSpace(c.Shell) == "" {
		errs = append(errs, &InvalidShellError{Value: c.Shell})
	}
	if _, err := c.DisabledKinds(); err != nil {
		errs = append(errs, err)
	}
	if valid, fieldErrs := c.Watch.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func (c WatchConfig) IsValid() (bool, []error) {
	var errs []error
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must not be negative, got %s", c.Debounce))
	}
	for i, p := range c.Patterns {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("patterns[%d] is empty", i))
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidWatchConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("invalid watch config: %s", errors.Join(e.FieldErrors...))
}

func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// Error lists every field error on its own line.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func (e *InvalidShellError) Error() string {
	return fmt.Sprintf("invalid shell %q", e.Value)
}

func (e *InvalidShellError) Unwrap() error { return ErrInvalidShell }

func (m RuntimeMode) String() string { return string(m) }

// IsValid returns whether the RuntimeMode is native or virtual.
func (m RuntimeMode) IsValid() (bool, []error) {
	switch m {
	case RuntimeNative, RuntimeVirtual:
		return true, nil
	default:
		return false, []error{&InvalidConfigRuntimeModeError{Value: m}}
	}
}

func (e *InvalidConfigRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (valid: native, virtual)", e.Value)
}

// Unwrap returns ErrInvalidConfigRuntimeMode for errors.Is() compatibility.
func (e *InvalidConfigRuntimeModeError) Unwrap() error {
	return ErrInvalidConfigRuntimeMode
}
