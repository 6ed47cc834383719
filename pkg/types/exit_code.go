// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is a process exit status in the POSIX range 0-255.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode falls outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Common exit codes.
const (
	ExitSuccess ExitCode = 0
	ExitFailure ExitCode = 1
)

// IsValid returns whether the ExitCode is in the POSIX range.
func (c ExitCode) IsValid() (bool, []error) {
	if c < 0 || c > 255 {
		return false, []error{&InvalidExitCodeError{Value: c}}
	}
	return true, nil
}

// IsSuccess reports whether c is zero.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d out of range 0-255", e.Value)
}

// Unwrap returns ErrInvalidExitCode for errors.Is() compatibility.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }
