// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers that fail the test on error, mostly for
// building directory trees that discovery tests scan.
package testutil
