// SPDX-License-Identifier: MPL-2.0

package discovery

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"

	// CodeManifestSkipped marks a manifest that exists but could not be parsed.
	CodeManifestSkipped = "manifest_skipped"
	// CodeRunnableInvalid marks a runnable a source emitted without a name,
	// params, or working directory.
	CodeRunnableInvalid = "runnable_invalid"
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// Diagnostic is a structured, non-fatal discovery finding.
	Diagnostic struct {
		Severity Severity
		// Code is a machine-readable identifier such as CodeManifestSkipped.
		Code    string
		Message string
		// Path is the file the diagnostic refers to, if any.
		Path  string
		Cause error
	}
)
