// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the runnables command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/runnables-cli/runnables/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

const defaultActionKey = "r"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the parsed root command flags.
type rootFlagValues struct {
	runnable   string
	key        string
	search     string
	color      string
	disable    []string
	list       bool
	dryRun     bool
	watch      bool
	configPath string
	verbose    bool
}

// NewRootCommand builds the root command bound to app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	cmd := &cobra.Command{
		Use:   "runnables [path]",
		Short: "Find and run the tasks in a project tree",
		Long: TitleStyle.Render("runnables") + SubtitleStyle.Render(" - find and run the tasks in a project tree") + `

runnables walks a directory tree and collects everything it knows how to run:
tasks from runfile.toml, shell scripts, Cargo packages and package.json scripts.
Pick one in the interactive list, or run it directly by name.

` + SubtitleStyle.Render("Examples:") + `
  runnables                     Open the picker for the current directory
  runnables ./services          Open the picker for another directory
  runnables -s deploy           Open the picker with "deploy" already searched
  runnables -r build            Run the runfile task (or other runnable) named build
  runnables -r rust-bin:server -k R
                                Run the server binary in release mode
  runnables -l                  List everything that was found`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRoot(cmd, app, flags, args)
			if err == nil {
				return nil
			}
			return app.fail(err, flags.verbose)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.runnable, "runnable", "r", "", `run "kind:name" or a bare name/alias directly, without the picker`)
	f.StringVarP(&flags.key, "key", "k", defaultActionKey, "action key used with --runnable")
	f.StringVarP(&flags.search, "search", "s", "", "open the picker in search mode with this text")
	f.StringVarP(&flags.color, "color", "c", "", "highlight colour (name, ANSI number or #hex)")
	f.StringArrayVarP(&flags.disable, "disable", "d", nil, "disable a source kind (repeatable)")
	f.BoolVarP(&flags.list, "list", "l", false, "print discovered runnables and exit")
	f.BoolVar(&flags.dryRun, "dry-run", false, "print the commands that would run, in order, without executing them")
	f.BoolVarP(&flags.watch, "watch", "w", false, "re-run when files change")
	f.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/"+config.AppName+"/config.cue)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.MarkFlagsMutuallyExclusive("list", "runnable")
	cmd.MarkFlagsMutuallyExclusive("list", "search")
	cmd.MarkFlagsMutuallyExclusive("runnable", "search")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "watch")

	return cmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return 1
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	os.Exit(Main())
}

// handleError prints errors that reach fang. Errors already rendered by the
// command come back as a bare ExitError and are not printed twice.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
