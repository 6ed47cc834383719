// SPDX-License-Identifier: MPL-2.0

// Package source recognizes the task conventions runnables understands. Each
// Source inspects a single directory and emits Runnable records; Command
// composes the shell command line for a Runnable from its params.
//
// Scan never fails hard: a directory that lacks the marker, or whose manifest
// does not parse, yields an error matching ErrNotApplicable so that one bad
// manifest never aborts discovery of the rest of the tree.
package source
