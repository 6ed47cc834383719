// SPDX-License-Identifier: MPL-2.0

// Package runnable defines the data model shared by discovery, selection and
// execution: the Runnable record, the closed set of source kinds, and the
// per-kind parameter variants that pick which command a Runnable executes.
//
// This package is a leaf dependency: it imports only the standard library.
package runnable
