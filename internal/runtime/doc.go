// SPDX-License-Identifier: MPL-2.0

// Package runtime executes composed runnable commands.
//
// Two runtime implementations are available:
//   - native: hands the command to a host shell as `<shell> -c <command>`
//   - virtual: parses and runs the command with the embedded mvdan/sh interpreter
//
// Both implement the Runtime interface with Name(), Available(), Validate() and
// Execute(). Runtimes that can buffer output implement CapturingRuntime.
// A non-zero exit status is reported through Result.ExitCode; Result.Error is
// reserved for failures to start or interpret the command.
package runtime
