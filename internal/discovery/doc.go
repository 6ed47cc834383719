// SPDX-License-Identifier: MPL-2.0

// Package discovery walks a directory tree once per enabled source and
// collects every Runnable into a flat, priority-ordered collection.
//
// Recoverable problems (a malformed manifest, an unreadable directory) never
// stop discovery. Malformed manifests come back as Diagnostics for the CLI
// layer to render; only an unresolvable root is an error.
package discovery
