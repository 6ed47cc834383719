// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runnables-cli/runnables/pkg/fspath"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/stringlist"
	"github.com/runnables-cli/runnables/pkg/types"

	"github.com/BurntSushi/toml"
)

// RunFileName is the task manifest RunFile looks for.
const RunFileName = "runfile.toml"

type (
	// RunFile emits one Runnable per top-level table in runfile.toml, in file order.
	//
	//	[build]
	//	command = "go build ./..."
	//	description = "Compile everything"
	//	after = "generate"
	//	path = "cmd/app"
	RunFile struct{}

	runfileTask struct {
		Command     string          `toml:"command"`
		Cmd         string          `toml:"cmd"`
		Description string          `toml:"description"`
		DisplayName string          `toml:"display_name"`
		Aliases     stringlist.List `toml:"aliases"`
		After       stringlist.List `toml:"after"`
		Path        string          `toml:"path"`
		Watch       stringlist.List `toml:"watch"`
	}
)

func (RunFile) Kind() runnable.Kind { return runnable.KindRunFile }

// Scan parses dir/runfile.toml.
func (s RunFile) Scan(dir types.FilesystemPath) ([]runnable.Runnable, error) {
	manifest := fspath.Join(dir, RunFileName)
	data, err := os.ReadFile(string(manifest))
	if err != nil {
		return nil, ErrNotApplicable
	}

	var tasks map[string]runfileTask
	meta, err := toml.Decode(string(data), &tasks)
	if err != nil {
		return nil, malformed(s.Kind(), manifest, err)
	}

	var out []runnable.Runnable
	for _, key := range meta.Keys() {
		if len(key) != 1 {
			continue
		}
		name := key[0]
		task := tasks[name]

		command := task.Command
		if command == "" {
			command = task.Cmd
		}
		if command == "" {
			return nil, malformed(s.Kind(), manifest, fmt.Errorf("task %q: missing command", name))
		}

		rel := task.Path
		if rel == "" {
			rel = "."
		}
		workDir := filepath.Clean(filepath.Join(string(dir), rel))
		if filepath.IsAbs(rel) {
			workDir = filepath.Clean(rel)
		}
		if !fspath.IsDir(types.FilesystemPath(workDir)) {
			return nil, malformed(s.Kind(), manifest, fmt.Errorf("task %q: path %q is not a directory", name, rel))
		}

		out = append(out, runnable.Runnable{
			Name:        name,
			Aliases:     task.Aliases,
			DisplayName: task.DisplayName,
			Description: task.Description,
			After:       task.After,
			Path:        workDir,
			Watch:       task.Watch,
			Params:      runnable.RunFileParams{Command: command},
		})
	}
	if len(out) == 0 {
		return nil, malformed(s.Kind(), manifest, errors.New("no tasks defined"))
	}
	return out, nil
}

// BuildCommand returns "cd <path> && <command>".
func (RunFile) BuildCommand(r runnable.Runnable, p runnable.RunFileParams) (string, error) {
	return inDir(r.Path, p.Command)
}
