// SPDX-License-Identifier: MPL-2.0

// Package types defines small value types shared across packages. It imports
// only the standard library and never imports domain packages.
package types
