// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/runnables-cli/runnables/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes commands with the embedded mvdan/sh interpreter, so
// no host shell is required. External programs are still resolved on PATH.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a new virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return string(RuntimeTypeVirtual)
}

// Available always returns true; the interpreter is built in.
func (r *VirtualRuntime) Available() bool {
	return true
}

// Validate checks the command parses as POSIX shell.
func (r *VirtualRuntime) Validate(ctx *ExecutionContext) error {
	if err := validateCommand(ctx); err != nil {
		return err
	}
	_, err := parse(ctx.Command)
	return err
}

// Execute runs the command with the context's stdio attached.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	return r.run(ctx, ctx.Stdin, ctx.Stdout, ctx.Stderr)
}

// ExecuteCapture runs the command and captures its output.
func (r *VirtualRuntime) ExecuteCapture(ctx *ExecutionContext) *Result {
	var stdout, stderr bytes.Buffer
	result := r.run(ctx, nil, &stdout, &stderr)
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (r *VirtualRuntime) run(ctx *ExecutionContext, stdin io.Reader, stdout, stderr io.Writer) *Result {
	prog, err := parse(ctx.Command)
	if err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(ctx.environ()...)),
		interp.StdIO(stdin, stdout, stderr),
	}
	if ctx.WorkDir != "" {
		opts = append(opts, interp.Dir(ctx.WorkDir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to create interpreter: %w", err))
	}

	if err := runner.Run(ctx.context(), prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(types.ExitCode(exitStatus))
		}
		return NewErrorResult(types.ExitFailure, fmt.Errorf("command execution failed: %w", err))
	}
	return &Result{}
}

func parse(command string) (*syntax.File, error) {
	prog, err := syntax.NewParser(syntax.Variant(syntax.LangPOSIX)).Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	return prog, nil
}
