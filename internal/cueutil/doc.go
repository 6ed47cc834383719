// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles CUE documents against an embedded schema.
//
// The flow is always the same three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate and decode to a Go value
//
// # Usage
//
//	//go:embed config_schema.cue
//	var configSchema string
//
//	result, err := cueutil.ParseAndDecodeString[map[string]any](
//	    configSchema,
//	    data,
//	    "#Config",
//	    cueutil.WithConcrete(false),
//	    cueutil.WithFilename(path),
//	)
//
// Errors name the offending field as a JSON-style path, for example
// "config.cue: watch.debounce: conflicting values".
package cueutil
