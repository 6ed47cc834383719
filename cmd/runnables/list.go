// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/runnables-cli/runnables/internal/discovery"
	"github.com/runnables-cli/runnables/pkg/fspath"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"
)

// printList writes the discovered runnables grouped by kind, in discovery order.
func printList(w io.Writer, found discovery.Result) error {
	var b strings.Builder
	current := runnable.KindNone
	for _, r := range found.Runnables {
		if k := r.Kind(); k != current {
			if current != runnable.KindNone {
				b.WriteString("\n")
			}
			current = k
			b.WriteString(kindHeaderStyle.Render(k.DisplayName()) + "\n")
		}
		b.WriteString(formatListLine(found.Root, r) + "\n")
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}

func formatListLine(root types.FilesystemPath, r runnable.Runnable) string {
	line := fmt.Sprintf("  %3d %s", r.Index, CmdStyle.Render(r.Name))
	if len(r.Aliases) > 0 {
		line += " " + SubtitleStyle.Render("["+strings.Join(r.Aliases, ", ")+"]")
	}
	line += " " + SubtitleStyle.Render("("+fspath.Display(root, types.FilesystemPath(r.Path))+")")
	if r.Description != "" {
		line += " " + r.Description
	}
	return line
}
