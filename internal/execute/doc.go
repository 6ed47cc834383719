// SPDX-License-Identifier: MPL-2.0

// Package execute runs a chosen runnable together with its "after" chain.
//
// Planning resolves every reference depth-first in listed order, rejects
// cyclic chains up front, and flattens the chain into an ordered list of
// steps. Running a plan hands each step's composed command to a Runner. A
// non-zero exit is reported per step and never aborts the chain.
package execute
