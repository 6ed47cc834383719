// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/runnables-cli/runnables/internal/issue"
	"github.com/runnables-cli/runnables/pkg/types"
)

func TestNewServiceError_NilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("newServiceError(nil) did not panic")
		}
	}()
	_ = newServiceError(nil, 0, "")
}

func TestServiceError_Unwrap(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	svcErr := newServiceError(base, issue.RunnableNotFoundId, "")
	if !errors.Is(svcErr, base) {
		t.Error("ServiceError does not unwrap to its cause")
	}
	if svcErr.Error() != "boom" {
		t.Errorf("Error() = %q", svcErr.Error())
	}
}

func TestApp_Fail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		verbose    bool
		wantCode   types.ExitCode
		wantStderr []string
	}{
		{
			name:       "styled service error",
			err:        newServiceError(errors.New("raw"), issue.RunnableNotFoundId, "Error: styled text\n"),
			wantCode:   types.ExitFailure,
			wantStderr: []string{"styled text", "Runnable not found"},
		},
		{
			name:       "service error with custom code",
			err:        &ServiceError{Err: errors.New("bad"), Code: 3},
			wantCode:   3,
			wantStderr: []string{"Error: bad"},
		},
		{
			name: "actionable error with suggestions",
			err: issue.NewErrorContext().
				WithOperation("load configuration").
				WithSuggestion("Check the file").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(errors.New("syntax error")).
				BuildError(),
			wantCode:   types.ExitFailure,
			wantStderr: []string{"failed to load configuration: syntax error", "Check the file", "Failed to load configuration"},
		},
		{
			name: "verbose shows the chain",
			err: issue.NewErrorContext().
				WithOperation("load configuration").
				Wrap(errors.New("syntax error")).
				BuildError(),
			verbose:    true,
			wantCode:   types.ExitFailure,
			wantStderr: []string{"Error chain:", "1. syntax error"},
		},
		{
			name:       "plain error",
			err:        errors.New("plain"),
			wantCode:   types.ExitFailure,
			wantStderr: []string{"Error: plain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			app := NewApp(Dependencies{Stderr: &stderr})
			err := app.fail(tt.err, tt.verbose)

			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("fail() = %v, want ExitError", err)
			}
			if exitErr.Err != nil {
				t.Errorf("ExitError.Err = %v, want nil (already reported)", exitErr.Err)
			}
			if exitErr.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", exitErr.Code, tt.wantCode)
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr missing %q:\n%s", want, stderr.String())
				}
			}
		})
	}
}

func TestApp_FailPassesSilentExitThrough(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	app := NewApp(Dependencies{Stderr: &stderr})
	in := &ExitError{Code: 4}
	if got := app.fail(in, false); got != in {
		t.Errorf("fail() = %v, want the same ExitError", got)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	if got := (&ExitError{Code: 2}).Error(); got != "exit status 2" {
		t.Errorf("Error() = %q", got)
	}
	cause := errors.New("cause")
	e := &ExitError{Code: 1, Err: cause}
	if e.Error() != "cause" || !errors.Is(e, cause) {
		t.Errorf("ExitError does not wrap its cause: %v", e)
	}
}
