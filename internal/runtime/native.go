// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/runnables-cli/runnables/pkg/types"
)

// DefaultShell is the shell used by the native runtime when none is configured.
const DefaultShell = "sh"

// ErrShellNotFound is the sentinel error wrapped by ShellNotFoundError.
var ErrShellNotFound = errors.New("shell not found")

type (
	// NativeRuntime executes commands using a host shell.
	NativeRuntime struct {
		// Shell is the shell binary name or path.
		Shell string
	}

	// ShellNotFoundError is returned when the configured shell cannot be resolved.
	ShellNotFoundError struct {
		Shell string
		Err   error
	}
)

// NewNativeRuntime creates a native runtime using shell, or DefaultShell when empty.
func NewNativeRuntime(shell string) *NativeRuntime {
	if shell == "" {
		shell = DefaultShell
	}
	return &NativeRuntime{Shell: shell}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return string(RuntimeTypeNative)
}

// Available returns whether the configured shell can be found.
func (r *NativeRuntime) Available() bool {
	_, err := r.shellPath()
	return err == nil
}

// Validate checks if a command can be executed.
func (r *NativeRuntime) Validate(ctx *ExecutionContext) error {
	if err := validateCommand(ctx); err != nil {
		return err
	}
	_, err := r.shellPath()
	return err
}

// Execute runs the command through the shell with the context's stdio attached.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	return r.run(ctx, ctx.Stdout, ctx.Stderr, nil)
}

// ExecuteCapture runs the command and captures its output.
func (r *NativeRuntime) ExecuteCapture(ctx *ExecutionContext) *Result {
	var stdout, stderr bytes.Buffer
	return r.run(ctx, &stdout, &stderr, func(res *Result) {
		res.Output = stdout.String()
		res.ErrOutput = stderr.String()
	})
}

func (r *NativeRuntime) run(ctx *ExecutionContext, stdout, stderr io.Writer, collect func(*Result)) *Result {
	shell, err := r.shellPath()
	if err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	cmd := exec.CommandContext(ctx.context(), shell, r.shellArgs(ctx.Command)...)
	cmd.Dir = ctx.WorkDir
	cmd.Env = ctx.environ()
	cmd.Stdin = ctx.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	result := extractExitCode(cmd.Run())
	if collect != nil {
		collect(result)
	}
	return result
}

// shellPath resolves the configured shell on PATH.
func (r *NativeRuntime) shellPath() (string, error) {
	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}
	path, err := exec.LookPath(shell)
	if err != nil {
		return "", &ShellNotFoundError{Shell: shell, Err: err}
	}
	return path, nil
}

// shellArgs returns the arguments that make the shell run command.
func (r *NativeRuntime) shellArgs(command string) []string {
	base := strings.TrimSuffix(filepath.Base(r.Shell), ".exe")
	switch base {
	case "cmd":
		return []string{"/C", command}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command", command}
	default:
		return []string{"-c", command}
	}
}

// signalExitBase is added to the signal number of a child killed by a
// signal, as POSIX shells report it.
const signalExitBase = 128

// extractExitCode maps a process error to a Result. A non-zero exit is not
// an error, and neither is a child killed by a signal; failing to start the
// process is.
func extractExitCode(err error) *Result {
	if err == nil {
		return &Result{}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return NewExitCodeResult(types.ExitCode(signalExitBase + int(status.Signal())))
		}
		code := types.ExitCode(exitErr.ExitCode())
		if ok, errs := code.IsValid(); !ok {
			return NewErrorResult(types.ExitFailure, errors.Join(errs...))
		}
		return NewExitCodeResult(code)
	}

	return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to execute command: %w", err))
}

// Error implements the error interface.
func (e *ShellNotFoundError) Error() string {
	return fmt.Sprintf("shell %q not found: %v", e.Shell, e.Err)
}

// Unwrap returns ErrShellNotFound for errors.Is() compatibility.
func (e *ShellNotFoundError) Unwrap() error { return ErrShellNotFound }
