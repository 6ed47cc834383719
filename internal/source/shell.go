// SPDX-License-Identifier: MPL-2.0

package source

import (
	"os"
	"path/filepath"

	"github.com/runnables-cli/runnables/pkg/fspath"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"
)

// Shell emits one Runnable per *.sh file directly inside a directory.
type Shell struct{}

func (Shell) Kind() runnable.Kind { return runnable.KindShell }

// Scan lists dir non-recursively. Scripts are named by file name and run
// with dir as their Path.
func (Shell) Scan(dir types.FilesystemPath) ([]runnable.Runnable, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, ErrNotApplicable
	}

	var out []runnable.Runnable
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != ".sh" {
			continue
		}
		out = append(out, runnable.Runnable{
			Name:   e.Name(),
			Path:   string(dir),
			Params: runnable.ShellParams{Script: string(fspath.Join(dir, e.Name()))},
		})
	}
	if len(out) == 0 {
		return nil, ErrNotApplicable
	}
	return out, nil
}

// BuildCommand returns "sh <script>".
func (Shell) BuildCommand(_ runnable.Runnable, p runnable.ShellParams) (string, error) {
	script, err := quote(p.Script)
	if err != nil {
		return "", err
	}
	return "sh " + script, nil
}
