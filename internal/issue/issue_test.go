// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		RootPathInvalidId,
		RunnableNotFoundId,
		NoRunnablesFoundId,
		DependencyCycleId,
		ConfigLoadFailedId,
		ShellNotFoundId,
		NotATerminalId,
		ActionNotAvailableId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if RootPathInvalidId != 1 {
		t.Errorf("RootPathInvalidId = %d, want 1", RootPathInvalidId)
	}
	if len(issues) != len(ids) {
		t.Errorf("catalog has %d issues, want %d", len(issues), len(ids))
	}
}

func TestIssue_Id(t *testing.T) {
	issue := Get(DependencyCycleId)
	if issue == nil {
		t.Fatal("Get(DependencyCycleId) returned nil")
	}

	if issue.Id() != DependencyCycleId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), DependencyCycleId)
	}
}

func TestIssue_ExtLinksIsClone(t *testing.T) {
	issue := Get(ConfigLoadFailedId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ConfigLoadFailed should carry external links")
	}

	original := links[0]
	links[0] = "modified"
	if issue.ExtLinks()[0] != original {
		t.Error("ExtLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	tests := []struct {
		id       Id
		contains []string
		excludes []string
	}{
		{
			id:       NoRunnablesFoundId,
			contains: []string{"No runnables found", "runfile.toml"},
			excludes: []string{"See also"},
		},
		{
			id:       ShellNotFoundId,
			contains: []string{"Shell not found", "## See also", "- <https://pkg.go.dev/mvdan.cc/sh/v3/interp>"},
		},
	}

	for _, tt := range tests {
		rendered, err := Get(tt.id).Render("")
		if err != nil {
			t.Fatalf("Render() returned error: %v", err)
		}
		for _, s := range tt.contains {
			if !strings.Contains(rendered, s) {
				t.Errorf("Render(%d) missing %q", tt.id, s)
			}
		}
		for _, s := range tt.excludes {
			if strings.Contains(rendered, s) {
				t.Errorf("Render(%d) should not contain %q", tt.id, s)
			}
		}
	}
}

func TestIssue_RenderWithGlamour(t *testing.T) {
	rendered, err := Get(RunnableNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "Runnable not found") {
		t.Errorf("rendered output missing title:\n%s", rendered)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{RootPathInvalidId, false, "Root path is not a directory"},
		{RunnableNotFoundId, false, "Runnable not found"},
		{NoRunnablesFoundId, false, "No runnables found"},
		{DependencyCycleId, false, "Dependency cycle detected"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{ShellNotFoundId, false, "Shell not found"},
		{NotATerminalId, false, "Not a terminal"},
		{ActionNotAvailableId, false, "Action not available"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}

			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain '%s'", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	values := Values()

	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}

	for i, issue := range values {
		if issue.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), i+1)
		}
	}
}
