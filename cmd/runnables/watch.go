// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/runnables-cli/runnables/internal/execute"
	"github.com/runnables-cli/runnables/internal/watch"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"
)

// defaultWatchPattern matches every file below the watched directory.
const defaultWatchPattern = "**/*"

// runWatchMode runs chosen once and then again after every debounced batch
// of file changes below its working directory, until ctx is cancelled.
func (a *App) runWatchMode(ctx context.Context, s *session, chosen runnable.Runnable) error {
	// Planning errors abort before anything runs.
	if _, err := execute.NewPlan(chosen, s.found.Runnables); err != nil {
		return a.executionError(err)
	}

	runner, err := a.newRunner(s.cfg, false)
	if err != nil {
		return err
	}
	coord := execute.New(runner,
		execute.WithStepStart(a.announceStep(s.found.Root)),
		execute.WithObserver(a.reportStep))

	w, err := watch.New(a.watchConfig(s, chosen, func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			fmt.Fprintf(a.stderr, "%s %s\n", SubtitleStyle.Render("changed:"), strings.Join(changed, ", "))
		}
		_, runErr := coord.Run(ctx, chosen, s.found.Runnables)
		return a.executionError(runErr)
	}))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stderr, "%s %s (Ctrl+C to stop)\n",
		SuccessStyle.Render("Watching"), CmdStyle.Render(w.BaseDir()))
	slog.Debug("watch mode started", "runnable", chosen.Name, "dir", w.BaseDir())
	return w.Run(ctx)
}

// watchConfig picks the patterns in order of precedence: the runnable's own
// watch list, the configured patterns, then everything.
func (a *App) watchConfig(s *session, chosen runnable.Runnable, onChange func(context.Context, []string) error) watch.Config {
	patterns := chosen.Watch
	if len(patterns) == 0 {
		patterns = s.cfg.Watch.Patterns
	}
	if len(patterns) == 0 {
		patterns = []string{defaultWatchPattern}
	}

	return watch.Config{
		Patterns:    patterns,
		Ignore:      s.cfg.Watch.Ignore,
		IgnoreDirs:  s.cfg.IgnoreDirs,
		Debounce:    s.cfg.Watch.Debounce,
		ClearScreen: s.cfg.Watch.ClearScreen,
		RunOnStart:  true,
		BaseDir:     types.FilesystemPath(chosen.Path),
		OnChange:    onChange,
		Stdout:      a.stdout,
	}
}
