// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/runnables-cli/runnables/internal/config"
	"github.com/runnables-cli/runnables/internal/selection"
	"github.com/runnables-cli/runnables/internal/tui"
	"github.com/runnables-cli/runnables/pkg/runnable"
)

type (
	// ConfigProvider loads configuration from explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// PickFunc runs the interactive picker and returns the committed runnable.
	// The boolean is false when the user aborted.
	PickFunc func(ctx context.Context, state *selection.State, opts tui.Options) (runnable.Runnable, bool, error)

	// App wires the CLI to its services.
	App struct {
		Config ConfigProvider
		Pick   PickFunc

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies overrides App collaborators. Zero fields select the
	// production implementations.
	Dependencies struct {
		Config ConfigProvider
		Pick   PickFunc
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App, filling unset dependencies with defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		Pick:   deps.Pick,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Pick == nil {
		app.Pick = tui.Run
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}
