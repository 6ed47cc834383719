// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"fmt"
	"io"

	"github.com/runnables-cli/runnables/internal/runtime"
	"github.com/runnables-cli/runnables/pkg/types"
)

// Environment variables exported to every executed command.
const (
	EnvRunnableName = "RUNNABLES_NAME"
	EnvRunnableKind = "RUNNABLES_KIND"
)

type (
	// RuntimeRunner executes steps through a runtime registry.
	RuntimeRunner struct {
		Registry *runtime.Registry
		Type     runtime.RuntimeType
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// DryRunner prints each command prefixed by "$ " instead of executing it.
	DryRunner struct {
		Out io.Writer
	}
)

// Run implements Runner.
func (r *RuntimeRunner) Run(ctx context.Context, step Step) (types.ExitCode, error) {
	ectx := runtime.NewExecutionContext(ctx, step.Command, step.Runnable.Path)
	ectx.ExtraEnv[EnvRunnableName] = step.Runnable.Name
	ectx.ExtraEnv[EnvRunnableKind] = step.Runnable.Kind().String()
	if r.Stdin != nil {
		ectx.Stdin = r.Stdin
	}
	if r.Stdout != nil {
		ectx.Stdout = r.Stdout
	}
	if r.Stderr != nil {
		ectx.Stderr = r.Stderr
	}

	result := r.Registry.Execute(r.Type, ectx)
	return result.ExitCode, result.Error
}

// Run implements Runner.
func (r *DryRunner) Run(_ context.Context, step Step) (types.ExitCode, error) {
	_, err := fmt.Fprintf(r.Out, "$ %s\n", step.Command)
	return types.ExitSuccess, err
}
