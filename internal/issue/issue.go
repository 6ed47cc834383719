// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	RootPathInvalidId Id = iota + 1
	RunnableNotFoundId
	NoRunnablesFoundId
	DependencyCycleId
	ConfigLoadFailedId
	ShellNotFoundId
	NotATerminalId
	ActionNotAvailableId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	rootPathInvalidIssue = &Issue{
		id: RootPathInvalidId,
		mdMsg: `
# Root path is not a directory!

The path given to runnables must be an existing directory. Discovery starts there
and walks every subdirectory that is not ignored.

## Things you can try:
- Check the spelling of the path:
~~~
$ ls -d /path/to/project
~~~

- Run without a path to use the current directory:
~~~
$ runnables
~~~`,
	}

	runnableNotFoundIssue = &Issue{
		id: RunnableNotFoundId,
		mdMsg: `
# Runnable not found!

No discovered runnable matches the requested name.

## Things you can try:
- List everything that was discovered:
~~~
$ runnables --list
~~~

- Qualify the name with its kind when two sources share a name:
~~~
$ runnables --runnable rust-bin:server
$ runnables --runnable runfile:build
~~~

- Aliases declared in runfile.toml are matched too:
~~~toml
[build]
command = "go build ./..."
aliases = "b, compile"
~~~`,
	}

	noRunnablesFoundIssue = &Issue{
		id: NoRunnablesFoundId,
		mdMsg: `
# No runnables found!

Discovery walked the directory tree but no source recognised anything.

## What is recognised:
1. ` + "`runfile.toml`" + ` tasks
2. ` + "`*.sh`" + ` scripts
3. ` + "`Cargo.toml`" + ` packages with a ` + "`src/main.rs`" + ` or ` + "`src/lib.rs`" + `
4. ` + "`package.json`" + ` scripts

## Things you can try:
- Make sure the sources are not disabled in your config or by ` + "`--disable`" + `.
- Check that the directories are not ignored (` + "`.git`" + `, ` + "`node_modules`" + `, ` + "`target`" + ` and your ` + "`ignore_dirs`" + `).
- Create a runfile:
~~~toml
[hello]
command = "echo hello"
description = "Say hello"
~~~`,
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Dependency cycle detected!

The ` + "`after`" + ` lists of your runfile tasks form a cycle, so no valid run order exists.
Nothing was executed.

## Things you can try:
- Follow the cycle printed above and remove one of the ` + "`after`" + ` entries.
- Preview the run order once it is fixed:
~~~
$ runnables --runnable build --dry-run
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Check the file for CUE syntax errors.
- Only these fields are accepted:
~~~cue
color:            "12"
disabled_sources: ["javascript"]
ignore_dirs:      ["dist"]
runtime:          "native"
shell:            "bash"
verbose:          false
watch: {
	patterns:     ["**/*.go"]
	ignore:       ["**/*_test.go"]
	debounce:     "500ms"
	clear_screen: true
}
~~~

- Pass a different file:
~~~
$ runnables --config ./runnables.cue
~~~`,
		extLinks: []HttpLink{
			"https://cuelang.org/docs/",
		},
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

The native runtime runs commands through a host shell, and that shell is not on your PATH.

## Things you can try:
- Point the native runtime at a shell you have:
~~~cue
shell: "bash"
~~~

- Use the built-in shell interpreter instead:
~~~cue
runtime: "virtual"
~~~`,
		extLinks: []HttpLink{
			"https://pkg.go.dev/mvdan.cc/sh/v3/interp",
		},
	}

	notATerminalIssue = &Issue{
		id: NotATerminalId,
		mdMsg: `
# Not a terminal!

The interactive picker needs a terminal on stdin.

## Things you can try:
- Run a runnable directly:
~~~
$ runnables --runnable build
~~~

- Print what was discovered:
~~~
$ runnables --list
~~~`,
	}

	actionNotAvailableIssue = &Issue{
		id: ActionNotAvailableId,
		mdMsg: `
# Action not available!

The key passed with ` + "`--key`" + ` has no action for this kind of runnable.

## Things you can try:
- Use one of the keys listed above.
- Press ` + "`k`" + ` in the picker to see the actions of the selected runnable.`,
	}

	issues = map[Id]*Issue{
		rootPathInvalidIssue.Id():    rootPathInvalidIssue,
		runnableNotFoundIssue.Id():   runnableNotFoundIssue,
		noRunnablesFoundIssue.Id():   noRunnablesFoundIssue,
		dependencyCycleIssue.Id():    dependencyCycleIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		shellNotFoundIssue.Id():      shellNotFoundIssue,
		notATerminalIssue.Id():       notATerminalIssue,
		actionNotAvailableIssue.Id(): actionNotAvailableIssue,
	}
)

// Values returns every known issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
