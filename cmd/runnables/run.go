// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/runnables-cli/runnables/internal/config"
	"github.com/runnables-cli/runnables/internal/discovery"
	"github.com/runnables-cli/runnables/internal/execute"
	"github.com/runnables-cli/runnables/internal/issue"
	"github.com/runnables-cli/runnables/internal/runtime"
	"github.com/runnables-cli/runnables/internal/selection"
	"github.com/runnables-cli/runnables/internal/source"
	"github.com/runnables-cli/runnables/internal/tui"
	"github.com/runnables-cli/runnables/pkg/fspath"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"

	"github.com/spf13/cobra"
)

// session is the resolved state of one invocation: merged configuration plus
// the discovery result it produced.
type session struct {
	cfg   *config.Config
	color tui.ColorSpec
	found discovery.Result
}

func runRoot(cmd *cobra.Command, app *App, flags *rootFlagValues, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return err
	}
	if err := mergeFlags(cmd, cfg, flags); err != nil {
		return err
	}
	flags.verbose = cfg.Verbose
	configureLogging(app.stderr, cfg.Verbose)

	color := tui.ColorSpec(cfg.Color)
	if err := color.Validate(); err != nil {
		return issue.NewErrorContext().
			WithOperation("parse --color").
			WithResource(cfg.Color).
			WithSuggestion("Use a colour name such as 'red', an ANSI number (0-255) or a hex code like '#7C3AED'").
			Wrap(err).
			BuildError()
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	found, err := discover(ctx, cfg, types.FilesystemPath(root))
	if err != nil {
		return err
	}
	s := &session{cfg: cfg, color: color, found: found}

	if flags.list {
		if len(found.Runnables) == 0 {
			app.reportNoRunnables(found.Root)
			return nil
		}
		return printList(app.stdout, found)
	}

	var chosen runnable.Runnable
	if flags.runnable != "" {
		chosen, err = selectDirect(found.Runnables, flags.runnable, flags.key)
		if err != nil {
			return err
		}
	} else {
		if len(found.Runnables) == 0 {
			app.reportNoRunnables(found.Root)
			return nil
		}
		var ok bool
		chosen, ok, err = app.pick(ctx, cmd, s, flags)
		if err != nil || !ok {
			return err
		}
	}

	if flags.watch {
		return app.runWatchMode(ctx, s, chosen)
	}
	return app.runOnce(ctx, s, chosen, flags.dryRun)
}

// mergeFlags layers explicitly set flags over the loaded configuration.
func mergeFlags(cmd *cobra.Command, cfg *config.Config, flags *rootFlagValues) error {
	if cmd.Flags().Changed("color") {
		cfg.Color = flags.color
	}
	if flags.verbose {
		cfg.Verbose = true
	}
	for _, d := range flags.disable {
		if _, err := runnable.ParseKind(d); err != nil {
			return issue.NewErrorContext().
				WithOperation("parse --disable").
				WithResource(d).
				WithSuggestion("Valid kinds: " + kindList()).
				Wrap(err).
				BuildError()
		}
		cfg.DisabledSources = append(cfg.DisabledSources, d)
	}
	return nil
}

func discover(ctx context.Context, cfg *config.Config, root types.FilesystemPath) (discovery.Result, error) {
	disabled, err := cfg.DisabledKinds()
	if err != nil {
		return discovery.Result{}, issue.WrapWithOperation(err, "apply disabled_sources")
	}

	engine := discovery.New(
		discovery.WithSources(source.Enabled(disabled...)...),
		discovery.WithIgnoreNames(cfg.IgnoreDirs...),
	)
	found, err := engine.Discover(ctx, root)
	if err != nil {
		if ctx.Err() != nil {
			return discovery.Result{}, err
		}
		svcErr := newServiceError(err, issue.RootPathInvalidId,
			fmt.Sprintf("%s cannot use %s as the root directory: %v\n",
				ErrorStyle.Render("Error:"), CmdStyle.Render(string(root)), err))
		return discovery.Result{}, svcErr
	}

	for _, d := range found.Diagnostics {
		level := slog.LevelWarn
		if d.Severity == discovery.SeverityError {
			level = slog.LevelError
		}
		slog.Log(ctx, level, d.Message, "code", d.Code, "path", d.Path, "error", d.Cause)
	}
	slog.Debug("discovery finished", "root", found.Root, "runnables", len(found.Runnables))
	return found, nil
}

func (a *App) reportNoRunnables(root types.FilesystemPath) {
	fmt.Fprintf(a.stderr, "%s nothing to run under %s\n",
		WarningStyle.Render("No runnables found:"), CmdStyle.Render(string(root)))
	renderIssue(a.stderr, issue.NoRunnablesFoundId)
}

// pick opens the interactive picker.
func (a *App) pick(ctx context.Context, cmd *cobra.Command, s *session, flags *rootFlagValues) (runnable.Runnable, bool, error) {
	var opts []selection.Option
	if cmd.Flags().Changed("search") {
		opts = append(opts, selection.WithSearch(flags.search))
	}
	state := selection.New(s.found.Runnables, opts...)

	chosen, ok, err := a.Pick(ctx, state, tui.Options{
		Root:   string(s.found.Root),
		Color:  s.color,
		Input:  a.stdin,
		Output: a.stdout,
	})
	switch {
	case err == nil:
	case errors.Is(err, tui.ErrNotATerminal):
		return runnable.Runnable{}, false, newServiceError(err, issue.NotATerminalId,
			fmt.Sprintf("%s the picker needs an interactive terminal\n", ErrorStyle.Render("Error:")))
	case errors.Is(err, context.Canceled):
		return runnable.Runnable{}, false, nil
	default:
		return runnable.Runnable{}, false, err
	}
	if !ok {
		slog.Debug("picker closed without a selection")
	}
	return chosen, ok, nil
}

// runOnce executes chosen after its dependency chain. A failing child is
// reported but does not change the exit code.
func (a *App) runOnce(ctx context.Context, s *session, chosen runnable.Runnable, dryRun bool) error {
	runner, err := a.newRunner(s.cfg, dryRun)
	if err != nil {
		return err
	}

	coord := execute.New(runner,
		execute.WithStepStart(a.announceStep(s.found.Root)),
		execute.WithObserver(a.reportStep))
	_, err = coord.Run(ctx, chosen, s.found.Runnables)
	return a.executionError(err)
}

func (a *App) newRunner(cfg *config.Config, dryRun bool) (execute.Runner, error) {
	if dryRun {
		return &execute.DryRunner{Out: a.stdout}, nil
	}

	registry := runtime.BuildRegistry(cfg.Shell)
	typ := runtime.RuntimeType(cfg.Runtime)
	rt, err := registry.Get(typ)
	if err != nil {
		return nil, err
	}
	if !rt.Available() {
		err := &runtime.ShellNotFoundError{Shell: cfg.Shell, Err: os.ErrNotExist}
		msg := fmt.Sprintf("%s shell %s is not available for the %s runtime\n",
			ErrorStyle.Render("Error:"), CmdStyle.Render(cfg.Shell), typ)
		if usable := registry.Available(); len(usable) > 0 {
			names := make([]string, len(usable))
			for i, u := range usable {
				names[i] = string(u)
			}
			msg += fmt.Sprintf("Runtimes usable here: %s\n", strings.Join(names, ", "))
		}
		return nil, newServiceError(err, issue.ShellNotFoundId, msg)
	}

	return &execute.RuntimeRunner{
		Registry: registry,
		Type:     typ,
		Stdin:    a.stdin,
		Stdout:   a.stdout,
		Stderr:   a.stderr,
	}, nil
}

// executionError maps coordinator errors onto CLI errors.
func (a *App) executionError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}

	var cycleErr *execute.DependencyCycleError
	if errors.As(err, &cycleErr) {
		return newServiceError(err, issue.DependencyCycleId,
			fmt.Sprintf("%s %v\n", ErrorStyle.Render("Error:"), err))
	}
	if errors.Is(err, source.ErrNoParams) {
		return &ServiceError{Err: err, Code: types.ExitFailure}
	}
	return err
}

// announceStep returns a step-start hook that prints a header before each
// step of a dependency chain. A lone runnable gets no header.
func (a *App) announceStep(root types.FilesystemPath) func(execute.Step, int) {
	return func(step execute.Step, total int) {
		if total < 2 {
			return
		}
		r := step.Runnable
		fmt.Fprintf(a.stderr, "%s %s (%s)\n",
			SubtitleStyle.Render("running"),
			CmdStyle.Render(r.Kind().String()+":"+r.Name),
			fspath.Display(root, types.FilesystemPath(r.Path)))
	}
}

// reportStep surfaces a failing step to the user.
func (a *App) reportStep(res execute.StepResult) {
	name := res.Step.Runnable.Title()
	switch {
	case res.Err != nil:
		fmt.Fprintf(a.stderr, "%s could not start %s: %v\n",
			ErrorStyle.Render("Error:"), CmdStyle.Render(name), res.Err)
	case !res.ExitCode.IsSuccess():
		fmt.Fprintf(a.stderr, "%s %s exited with status %d\n",
			WarningStyle.Render("Warning:"), name, res.ExitCode)
	default:
		slog.Debug("step finished", "runnable", name, "depth", res.Step.Depth)
	}
}
