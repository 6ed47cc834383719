// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/runnables-cli/runnables/internal/testutil"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"
)

func TestRunFile_Scan(t *testing.T) {
	t.Parallel()

	dir := testutil.TempDir(t)
	testutil.WriteTree(t, dir, map[string]string{
		"runfile.toml": `
[build]
command = "go build ./..."
description = "Compile"
aliases = "b, compile"

[greet]
cmd = "echo hi"
path = "sub"
after = """
# run these first
build
Shell:setup.sh # trailing
"""

[deploy]
command = "./deploy"
display_name = "Ship it"
watch = ["**/*.go", "go.mod"]
`,
		"sub/": "",
	})

	got, err := RunFile{}.Scan(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	names := make([]string, len(got))
	for i, r := range got {
		names[i] = r.Name
	}
	if want := []string{"build", "greet", "deploy"}; !slices.Equal(names, want) {
		t.Fatalf("names = %v, want %v (file order)", names, want)
	}

	build := got[0]
	if build.Description != "Compile" || !slices.Equal(build.Aliases, []string{"b", "compile"}) {
		t.Errorf("build = %+v", build)
	}
	if build.Path != dir {
		t.Errorf("build.Path = %q, want %q", build.Path, dir)
	}

	greet := got[1]
	if p := greet.Params.(runnable.RunFileParams); p.Command != "echo hi" {
		t.Errorf("greet command = %q, want %q (cmd key)", p.Command, "echo hi")
	}
	if !slices.Equal(greet.After, []string{"build", "Shell:setup.sh"}) {
		t.Errorf("greet.After = %q", greet.After)
	}
	if want := filepath.Join(dir, "sub"); greet.Path != want {
		t.Errorf("greet.Path = %q, want %q", greet.Path, want)
	}

	deploy := got[2]
	if deploy.Title() != "Ship it" || !slices.Equal(deploy.Watch, []string{"**/*.go", "go.mod"}) {
		t.Errorf("deploy = %+v", deploy)
	}
}

func TestRunFile_CommandRoundTrip(t *testing.T) {
	t.Parallel()

	dir := testutil.TempDir(t)
	testutil.WriteTree(t, dir, map[string]string{
		"runfile.toml": "[hello]\ncommand = \"echo hi\"\npath = \"sub\"\n",
		"sub/":         "",
	})

	got, err := RunFile{}.Scan(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	cmd, err := Command(got[0])
	if err != nil {
		t.Fatalf("Command() error: %v", err)
	}
	if want := "cd " + filepath.Join(dir, "sub") + " && echo hi"; cmd != want {
		t.Errorf("Command() = %q, want %q", cmd, want)
	}
}

func TestRunFile_NotApplicable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		files     map[string]string
		malformed bool
	}{
		{name: "no manifest", files: map[string]string{"README": "x"}},
		{name: "syntax error", files: map[string]string{"runfile.toml": "[build\ncommand ="}, malformed: true},
		{name: "missing command", files: map[string]string{"runfile.toml": "[build]\ndescription = \"x\""}, malformed: true},
		{name: "empty manifest", files: map[string]string{"runfile.toml": "# nothing"}, malformed: true},
		{name: "non-table value", files: map[string]string{"runfile.toml": "version = 1"}, malformed: true},
		{name: "missing path", files: map[string]string{"runfile.toml": "[a]\ncommand = \"echo hi\"\npath = \"nope\""}, malformed: true},
		{name: "path is a file", files: map[string]string{"runfile.toml": "[a]\ncommand = \"echo hi\"\npath = \"notes\"", "notes": "x"}, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := testutil.TempDir(t)
			testutil.WriteTree(t, dir, tt.files)

			_, err := RunFile{}.Scan(types.FilesystemPath(dir))
			if !errors.Is(err, ErrNotApplicable) {
				t.Fatalf("Scan() error = %v, want ErrNotApplicable", err)
			}
			var me *MalformedError
			if errors.As(err, &me) != tt.malformed {
				t.Errorf("MalformedError = %v, want malformed=%v", err, tt.malformed)
			}
		})
	}
}

func TestShell_Scan(t *testing.T) {
	t.Parallel()

	dir := testutil.TempDir(t)
	testutil.WriteTree(t, dir, map[string]string{
		"build.sh":        "echo build",
		"deploy.sh":       "echo deploy",
		"notes.txt":       "",
		"dir.sh/":         "",
		"nested/inner.sh": "echo nested",
	})

	got, err := Shell{}.Scan(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Scan() returned %d runnables, want 2: %+v", len(got), got)
	}
	if got[0].Name != "build.sh" || got[0].Path != dir {
		t.Errorf("got[0] = %+v", got[0])
	}

	cmd, err := Command(got[1])
	if err != nil {
		t.Fatalf("Command() error: %v", err)
	}
	if want := "sh " + filepath.Join(dir, "deploy.sh"); cmd != want {
		t.Errorf("Command() = %q, want %q", cmd, want)
	}

	if _, err := (Shell{}).Scan(types.FilesystemPath(filepath.Join(dir, "dir.sh"))); !errors.Is(err, ErrNotApplicable) {
		t.Errorf("Scan() of script-less dir error = %v, want ErrNotApplicable", err)
	}
}

func TestShell_QuotesScriptPath(t *testing.T) {
	t.Parallel()

	r := runnable.Runnable{Name: "my script.sh", Path: "/w", Params: runnable.ShellParams{Script: "/w/my script.sh"}}
	cmd, err := Command(r)
	if err != nil {
		t.Fatalf("Command() error: %v", err)
	}
	if want := "sh '/w/my script.sh'"; cmd != want {
		t.Errorf("Command() = %q, want %q", cmd, want)
	}
}

func TestRust_BinAndLib(t *testing.T) {
	t.Parallel()

	dir := testutil.TempDir(t)
	testutil.WriteTree(t, dir, map[string]string{
		"Cargo.toml":  "[package]\nname = \"tool\"\ndescription = \"A tool\"\nversion = \"0.1.0\"\n",
		"src/main.rs": "fn main() {}",
		"src/lib.rs":  "",
	})

	bins, err := RustBin{}.Scan(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("RustBin.Scan() error: %v", err)
	}
	libs, err := RustLib{}.Scan(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("RustLib.Scan() error: %v", err)
	}
	if len(bins) != 1 || len(libs) != 1 {
		t.Fatalf("got %d bins, %d libs; want 1 each", len(bins), len(libs))
	}
	bin, lib := bins[0], libs[0]
	if bin.Name != "tool" || lib.Name != "tool" || bin.Description != "A tool" || lib.Description != "A tool" {
		t.Errorf("bin = %+v, lib = %+v", bin, lib)
	}
	if bin.Kind() != runnable.KindRustBin || lib.Kind() != runnable.KindRustLib {
		t.Errorf("kinds = %v, %v", bin.Kind(), lib.Kind())
	}

	tests := []struct {
		r    runnable.Runnable
		want string
	}{
		{bin, "cd " + dir + " && cargo run"},
		{bin.WithParams(runnable.RustBinParams{Command: runnable.RustRunRelease}), "cd " + dir + " && cargo run --release"},
		{bin.WithParams(runnable.RustBinParams{Command: runnable.RustInstall}), "cd " + dir + " && cargo install --path ."},
		{lib, "cd " + dir + " && cargo publish"},
		{lib.WithParams(runnable.RustLibParams{Command: runnable.RustClippy}), "cd " + dir + " && cargo clippy"},
	}
	for _, tt := range tests {
		got, err := Command(tt.r)
		if err != nil {
			t.Fatalf("Command() error: %v", err)
		}
		if got != tt.want {
			t.Errorf("Command() = %q, want %q", got, tt.want)
		}
	}
}

func TestRust_NotApplicable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
	}{
		{name: "no manifest", files: map[string]string{"src/main.rs": ""}},
		{name: "no entry point", files: map[string]string{"Cargo.toml": "[package]\nname = \"x\""}},
		{name: "workspace only", files: map[string]string{"Cargo.toml": "[workspace]\nmembers = []", "src/main.rs": ""}},
		{name: "invalid toml", files: map[string]string{"Cargo.toml": "[package\n", "src/main.rs": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := testutil.TempDir(t)
			testutil.WriteTree(t, dir, tt.files)
			if _, err := (RustBin{}).Scan(types.FilesystemPath(dir)); !errors.Is(err, ErrNotApplicable) {
				t.Errorf("Scan() error = %v, want ErrNotApplicable", err)
			}
		})
	}
}

func TestRust_WorkspaceInheritedDescription(t *testing.T) {
	t.Parallel()

	dir := testutil.TempDir(t)
	testutil.WriteTree(t, dir, map[string]string{
		"Cargo.toml": "[package]\nname = \"member\"\ndescription.workspace = true\n",
		"src/lib.rs": "",
	})

	got, err := RustLib{}.Scan(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if got[0].Description != "" {
		t.Errorf("Description = %q, want empty for inherited value", got[0].Description)
	}
}

func TestJavascript_Scan(t *testing.T) {
	t.Parallel()

	dir := testutil.TempDir(t)
	testutil.WriteTree(t, dir, map[string]string{
		"package.json": `{"name":"web","scripts":{"dev":"vite","build":"vite build","lint":"eslint ."}}`,
	})

	got, err := Javascript{}.Scan(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	var names []string
	for _, r := range got {
		names = append(names, r.Name)
	}
	if want := []string{"dev", "build", "lint"}; !slices.Equal(names, want) {
		t.Errorf("names = %v, want %v (document order)", names, want)
	}
	if got[1].Description != "vite build" {
		t.Errorf("Description = %q", got[1].Description)
	}

	yarn, err := Command(got[0])
	if err != nil {
		t.Fatal(err)
	}
	if want := "cd " + dir + " && yarn dev"; yarn != want {
		t.Errorf("Command() = %q, want %q", yarn, want)
	}
	npm, err := Command(got[0].WithParams(runnable.JavascriptParams{Manager: runnable.Npm}))
	if err != nil {
		t.Fatal(err)
	}
	if want := "cd " + dir + " && npm run dev"; npm != want {
		t.Errorf("Command() = %q, want %q", npm, want)
	}
}

func TestJavascript_NotApplicable(t *testing.T) {
	t.Parallel()

	for name, content := range map[string]string{
		"no scripts":    `{"name":"x"}`,
		"empty scripts": `{"scripts":{}}`,
		"invalid json":  `{"scripts":`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := testutil.TempDir(t)
			testutil.WriteTree(t, dir, map[string]string{"package.json": content})
			if _, err := (Javascript{}).Scan(types.FilesystemPath(dir)); !errors.Is(err, ErrNotApplicable) {
				t.Errorf("Scan() error = %v, want ErrNotApplicable", err)
			}
		})
	}
}

func TestCommand_NoParams(t *testing.T) {
	t.Parallel()

	if _, err := Command(runnable.Runnable{Name: "x"}); !errors.Is(err, ErrNoParams) {
		t.Errorf("Command() error = %v, want ErrNoParams", err)
	}
}

func TestEnabled(t *testing.T) {
	t.Parallel()

	var kinds []runnable.Kind
	for _, s := range Enabled(runnable.KindShell, runnable.KindJavascript) {
		kinds = append(kinds, s.Kind())
	}
	want := []runnable.Kind{runnable.KindRunFile, runnable.KindRustBin, runnable.KindRustLib}
	if !slices.Equal(kinds, want) {
		t.Errorf("Enabled() kinds = %v, want %v", kinds, want)
	}
	for i, s := range All() {
		if s.Kind() != runnable.Kinds()[i] {
			t.Errorf("All()[%d] = %v, want priority order %v", i, s.Kind(), runnable.Kinds())
		}
	}
}
