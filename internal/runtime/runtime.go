// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/runnables-cli/runnables/pkg/types"
)

// Runtime type constants for the supported execution environments.
const (
	RuntimeTypeNative  RuntimeType = "native"
	RuntimeTypeVirtual RuntimeType = "virtual"
)

var (
	// ErrEmptyCommand is returned by Validate when there is nothing to run.
	ErrEmptyCommand = errors.New("command is empty")
	// ErrInvalidRuntimeType is the sentinel error wrapped by InvalidRuntimeTypeError.
	ErrInvalidRuntimeType = errors.New("invalid runtime type")
)

type (
	// ExecutionContext contains everything needed to execute one command.
	ExecutionContext struct {
		// Context cancels the command.
		Context context.Context
		// Command is the composed shell command line.
		Command string
		// WorkDir is the initial working directory.
		WorkDir string
		// ExtraEnv is layered over the host environment.
		ExtraEnv map[string]string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Result contains the outcome of a command execution.
	Result struct {
		// ExitCode is the exit status of the command.
		ExitCode types.ExitCode
		// Error is set when the command could not be started or interpreted.
		Error error
		// Output contains captured stdout (if captured).
		Output string
		// ErrOutput contains captured stderr (if captured).
		ErrOutput string
	}

	// Runtime defines the interface for command execution.
	Runtime interface {
		// Name returns the runtime name.
		Name() string
		// Available returns whether this runtime can run on the current system.
		Available() bool
		// Validate checks if the command can be executed with this runtime.
		Validate(ctx *ExecutionContext) error
		// Execute runs the command in this runtime.
		Execute(ctx *ExecutionContext) *Result
	}

	// CapturingRuntime is implemented by runtimes that support capturing output.
	CapturingRuntime interface {
		// ExecuteCapture runs the command and captures stdout/stderr.
		ExecuteCapture(ctx *ExecutionContext) *Result
	}

	// RuntimeType identifies the type of runtime.
	//
	//nolint:revive // RuntimeType is more descriptive than Type for external callers
	RuntimeType string

	// InvalidRuntimeTypeError is returned when a RuntimeType is not recognized.
	InvalidRuntimeTypeError struct {
		Value RuntimeType
	}

	// Registry holds all available runtimes.
	Registry struct {
		runtimes map[RuntimeType]Runtime
	}
)

// NewExecutionContext creates an execution context attached to the process stdio.
func NewExecutionContext(ctx context.Context, command, workDir string) *ExecutionContext {
	return &ExecutionContext{
		Context:  ctx,
		Command:  command,
		WorkDir:  workDir,
		ExtraEnv: make(map[string]string),
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

func (c *ExecutionContext) context() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

// environ returns the host environment with ExtraEnv layered on top, sorted
// for deterministic output.
func (c *ExecutionContext) environ() []string {
	env := os.Environ()
	for _, k := range sortedKeys(c.ExtraEnv) {
		env = append(env, k+"="+c.ExtraEnv[k])
	}
	return env
}

func validateCommand(ctx *ExecutionContext) error {
	if strings.TrimSpace(ctx.Command) == "" {
		return ErrEmptyCommand
	}
	return nil
}

// Success returns true if the command executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// String returns the string representation of the RuntimeType.
func (t RuntimeType) String() string { return string(t) }

// Validate returns nil if the RuntimeType is a supported runtime.
func (t RuntimeType) Validate() error {
	switch t {
	case RuntimeTypeNative, RuntimeTypeVirtual:
		return nil
	default:
		return &InvalidRuntimeTypeError{Value: t}
	}
}

// Error implements the error interface.
func (e *InvalidRuntimeTypeError) Error() string {
	return fmt.Sprintf("invalid runtime %q (valid: %s, %s)", e.Value, RuntimeTypeNative, RuntimeTypeVirtual)
}

// Unwrap returns ErrInvalidRuntimeType for errors.Is() compatibility.
func (e *InvalidRuntimeTypeError) Unwrap() error { return ErrInvalidRuntimeType }

// NewRegistry creates an empty runtime registry.
func NewRegistry() *Registry {
	return &Registry{
		runtimes: make(map[RuntimeType]Runtime),
	}
}

// BuildRegistry creates a registry with the native runtime (using shell, or
// the default shell when empty) and the virtual runtime.
func BuildRegistry(shell string) *Registry {
	r := NewRegistry()
	r.Register(RuntimeTypeNative, NewNativeRuntime(shell))
	r.Register(RuntimeTypeVirtual, NewVirtualRuntime())
	return r
}

// Register adds a runtime to the registry.
func (r *Registry) Register(typ RuntimeType, rt Runtime) {
	r.runtimes[typ] = rt
}

// Get returns a runtime by type.
func (r *Registry) Get(typ RuntimeType) (Runtime, error) {
	rt, ok := r.runtimes[typ]
	if !ok {
		return nil, fmt.Errorf("runtime '%s' not registered", typ)
	}
	return rt, nil
}

// Available returns the registered runtimes usable on this system, sorted.
func (r *Registry) Available() []RuntimeType {
	var out []RuntimeType
	for typ, rt := range r.runtimes {
		if rt.Available() {
			out = append(out, typ)
		}
	}
	slices.Sort(out)
	return out
}

// Execute validates and runs ctx with the runtime registered as typ.
func (r *Registry) Execute(typ RuntimeType, ctx *ExecutionContext) *Result {
	rt, err := r.Get(typ)
	if err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}
	if !rt.Available() {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("runtime '%s' is not available on this system", rt.Name()))
	}
	if err := rt.Validate(ctx); err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}
	return rt.Execute(ctx)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
