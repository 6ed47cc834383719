// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when files under a directory change.
//
// Directories are registered recursively with fsnotify. Events are filtered
// through doublestar glob patterns and coalesced over a debounce window so the
// callback fires once per burst with the set of changed paths.
package watch
