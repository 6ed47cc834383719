// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"os"

	"github.com/runnables-cli/runnables/pkg/fspath"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"

	"github.com/tidwall/gjson"
)

// PackageJSONName is the manifest Javascript looks for.
const PackageJSONName = "package.json"

// Javascript emits one Runnable per entry of package.json "scripts", in
// document order. The script body doubles as the description.
type Javascript struct{}

func (Javascript) Kind() runnable.Kind { return runnable.KindJavascript }

func (s Javascript) Scan(dir types.FilesystemPath) ([]runnable.Runnable, error) {
	manifest := fspath.Join(dir, PackageJSONName)
	data, err := os.ReadFile(string(manifest))
	if err != nil {
		return nil, ErrNotApplicable
	}
	if !gjson.ValidBytes(data) {
		return nil, malformed(s.Kind(), manifest, errors.New("invalid JSON"))
	}

	scripts := gjson.GetBytes(data, "scripts")
	if !scripts.IsObject() {
		return nil, ErrNotApplicable
	}

	var out []runnable.Runnable
	scripts.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "" {
			return true
		}
		out = append(out, runnable.Runnable{
			Name:        key.String(),
			Description: value.String(),
			Path:        string(dir),
			Params:      runnable.JavascriptParams{Manager: runnable.Yarn},
		})
		return true
	})
	if len(out) == 0 {
		return nil, ErrNotApplicable
	}
	return out, nil
}

// BuildCommand returns "cd <path> && yarn <script>" or "... && npm run <script>".
func (Javascript) BuildCommand(r runnable.Runnable, p runnable.JavascriptParams) (string, error) {
	name, err := quote(r.Name)
	if err != nil {
		return "", err
	}
	return inDir(r.Path, p.Manager.Invocation()+" "+name)
}
