// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runnables-cli/runnables/internal/issue"
	"github.com/runnables-cli/runnables/internal/tui"
	"github.com/runnables-cli/runnables/pkg/types"
)

// Glamour styles for catalog entries on terminals and elsewhere.
const (
	issueStyleTerminal = "dark"
	issueStylePlain    = "notty"
)

// ServiceError pairs an error with rendering information for the CLI layer.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
	// Code is the exit code; zero means 1.
	Code types.ExitCode
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError prints the styled message, then the issue help section.
func renderServiceError(stderr io.Writer, svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	renderIssue(stderr, svcErr.IssueID)
}

func renderIssue(stderr io.Writer, id issue.Id) {
	if id == 0 {
		return
	}
	catalogEntry := issue.Get(id)
	if catalogEntry == nil {
		return
	}
	rendered, renderErr := catalogEntry.Render(issueStyleFor(stderr))
	if renderErr != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
		return
	}
	fmt.Fprint(stderr, rendered)
}

func issueStyleFor(w io.Writer) string {
	if f, ok := w.(*os.File); ok && tui.IsTerminal(f) {
		return issueStyleTerminal
	}
	return issueStylePlain
}

// formatErrorForDisplay formats err for the user. ActionableErrors include
// their suggestions, and the full chain in verbose mode.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// fail reports err on stderr and returns the silent ExitError that ends the
// command.
func (a *App) fail(err error, verbose bool) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return exitErr
	}

	code := types.ExitFailure
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		if svcErr.Code != 0 {
			code = svcErr.Code
		}
		if svcErr.StyledMessage != "" {
			renderServiceError(a.stderr, svcErr)
			return &ExitError{Code: code}
		}
	}

	fmt.Fprintf(a.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	if svcErr != nil {
		renderIssue(a.stderr, svcErr.IssueID)
	} else if id, ok := issue.IssueOf(err); ok {
		renderIssue(a.stderr, id)
	}
	return &ExitError{Code: code}
}
