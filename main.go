// SPDX-License-Identifier: MPL-2.0

// Command runnables finds the tasks in a project tree and runs them.
package main

import cmd "github.com/runnables-cli/runnables/cmd/runnables"

func main() {
	cmd.Execute()
}
