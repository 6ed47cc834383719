// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"os"

	"github.com/runnables-cli/runnables/pkg/fspath"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"

	"github.com/pelletier/go-toml/v2"
)

const (
	// CargoManifestName is the manifest both Rust sources require.
	CargoManifestName = "Cargo.toml"

	binEntryPoint = "src/main.rs"
	libEntryPoint = "src/lib.rs"
)

type (
	// RustBin emits a Runnable for a Cargo package with src/main.rs.
	RustBin struct{}

	// RustLib emits a Runnable for a Cargo package with src/lib.rs.
	RustLib struct{}

	cargoManifest struct {
		Package *struct {
			Name string `toml:"name"`
			// Description may be a table when inherited from a workspace.
			Description any `toml:"description"`
		} `toml:"package"`
	}
)

func (RustBin) Kind() runnable.Kind { return runnable.KindRustBin }
func (RustLib) Kind() runnable.Kind { return runnable.KindRustLib }

func (s RustBin) Scan(dir types.FilesystemPath) ([]runnable.Runnable, error) {
	return scanCargo(s.Kind(), dir, binEntryPoint, runnable.RustBinParams{Command: runnable.RustRun})
}

func (s RustLib) Scan(dir types.FilesystemPath) ([]runnable.Runnable, error) {
	return scanCargo(s.Kind(), dir, libEntryPoint, runnable.RustLibParams{Command: runnable.RustPublish})
}

// BuildCommand returns "cd <path> && cargo ...".
func (RustBin) BuildCommand(r runnable.Runnable, p runnable.RustBinParams) (string, error) {
	return inDir(r.Path, p.Command.ShellVerb())
}

// BuildCommand returns "cd <path> && cargo ...".
func (RustLib) BuildCommand(r runnable.Runnable, p runnable.RustLibParams) (string, error) {
	return inDir(r.Path, p.Command.ShellVerb())
}

func scanCargo(kind runnable.Kind, dir types.FilesystemPath, entryPoint string, params runnable.Params) ([]runnable.Runnable, error) {
	manifestPath := fspath.Join(dir, CargoManifestName)
	if !fspath.IsFile(manifestPath) || !fspath.IsFile(fspath.Join(dir, entryPoint)) {
		return nil, ErrNotApplicable
	}

	data, err := os.ReadFile(string(manifestPath))
	if err != nil {
		return nil, ErrNotApplicable
	}

	var manifest cargoManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, malformed(kind, manifestPath, err)
	}
	if manifest.Package == nil || manifest.Package.Name == "" {
		return nil, malformed(kind, manifestPath, errors.New("missing [package] name"))
	}

	description, _ := manifest.Package.Description.(string)
	return []runnable.Runnable{{
		Name:        manifest.Package.Name,
		Description: description,
		Path:        string(dir),
		Params:      params,
	}}, nil
}
