// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// configureLogging installs a charm log handler as the slog default. Only
// warnings and errors are shown unless verbose is set.
func configureLogging(w io.Writer, verbose bool) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "runnables",
		Level:           level,
		ReportTimestamp: verbose,
	})
	slog.SetDefault(slog.New(logger))
}
