// SPDX-License-Identifier: MPL-2.0

package runnable

// Cargo commands available to Rust runnables.
const (
	RustRun RustCommand = iota
	RustRunRelease
	RustPublish
	RustInstall
	RustTest
	RustFmt
	RustCheck
	RustClippy
	RustBuild
	RustBuildRelease
)

// Package managers available to Javascript runnables.
const (
	Yarn PackageManager = iota
	Npm
)

type (
	// Params selects the concrete command a Runnable executes. The set of
	// implementations is closed; a nil Params means "nothing chosen".
	Params interface {
		Kind() Kind
		params()
	}

	// RustCommand is a cargo subcommand choice.
	RustCommand int

	// PackageManager is the tool used to run a package.json script.
	PackageManager int

	// RunFileParams carries the command declared in runfile.toml.
	RunFileParams struct {
		Command string
	}

	// ShellParams carries the absolute path of the script to execute.
	ShellParams struct {
		Script string
	}

	// RustBinParams selects a cargo command for a binary package.
	RustBinParams struct {
		Command RustCommand
	}

	// RustLibParams selects a cargo command for a library package.
	RustLibParams struct {
		Command RustCommand
	}

	// JavascriptParams selects the package manager running the script.
	JavascriptParams struct {
		Manager PackageManager
	}
)

var rustShellVerbs = map[RustCommand]string{
	RustRun:          "cargo run",
	RustRunRelease:   "cargo run --release",
	RustPublish:      "cargo publish",
	RustInstall:      "cargo install --path .",
	RustTest:         "cargo test",
	RustFmt:          "cargo fmt",
	RustCheck:        "cargo check",
	RustClippy:       "cargo clippy",
	RustBuild:        "cargo build",
	RustBuildRelease: "cargo build --release",
}

var rustLabels = map[RustCommand]string{
	RustRun:          "run",
	RustRunRelease:   "run release",
	RustPublish:      "publish",
	RustInstall:      "install",
	RustTest:         "test",
	RustFmt:          "format",
	RustCheck:        "check",
	RustClippy:       "clippy",
	RustBuild:        "build",
	RustBuildRelease: "build release",
}

// ShellVerb returns the shell text for the cargo command.
func (c RustCommand) ShellVerb() string { return rustShellVerbs[c] }

// String returns a short human label.
func (c RustCommand) String() string { return rustLabels[c] }

// String returns the package manager's executable name.
func (m PackageManager) String() string {
	if m == Npm {
		return "npm"
	}
	return "yarn"
}

// Invocation returns the command prefix that runs a named script.
func (m PackageManager) Invocation() string {
	if m == Npm {
		return "npm run"
	}
	return "yarn"
}

func (RunFileParams) Kind() Kind    { return KindRunFile }
func (ShellParams) Kind() Kind      { return KindShell }
func (RustBinParams) Kind() Kind    { return KindRustBin }
func (RustLibParams) Kind() Kind    { return KindRustLib }
func (JavascriptParams) Kind() Kind { return KindJavascript }

func (RunFileParams) params()    {}
func (ShellParams) params()      {}
func (RustBinParams) params()    {}
func (RustLibParams) params()    {}
func (JavascriptParams) params() {}
