// SPDX-License-Identifier: MPL-2.0

// Package config loads runnables settings using Viper with CUE as the file format.
//
// The file lives at $XDG_CONFIG_HOME/runnables/config.cue on Linux,
// ~/Library/Application Support/runnables/config.cue on macOS and
// %APPDATA%\runnables\config.cue on Windows. It is validated against the
// embedded #Config schema before being merged over the defaults, and every key
// can be overridden from the environment with a RUNNABLES_ prefix.
package config
