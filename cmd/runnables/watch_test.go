// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"slices"
	"testing"
	"time"

	"github.com/runnables-cli/runnables/internal/config"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"
)

func TestWatchConfig_PatternPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		task       []string
		configured []string
		want       []string
	}{
		{name: "task patterns win", task: []string{"src/**/*.go"}, configured: []string{"**/*.md"}, want: []string{"src/**/*.go"}},
		{name: "config patterns", configured: []string{"**/*.md"}, want: []string{"**/*.md"}},
		{name: "everything", want: []string{defaultWatchPattern}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Watch.Patterns = tt.configured
			cfg.Watch.Debounce = 50 * time.Millisecond
			cfg.IgnoreDirs = []string{"dist"}
			s := &session{cfg: cfg}
			chosen := runnable.Runnable{Name: "build", Path: "/p", Watch: tt.task, Params: runnable.RunFileParams{Command: "make"}}

			got := newHarness(nil).app.watchConfig(s, chosen, nil)
			if !slices.Equal(got.Patterns, tt.want) {
				t.Errorf("Patterns = %v, want %v", got.Patterns, tt.want)
			}
			if got.BaseDir != types.FilesystemPath("/p") {
				t.Errorf("BaseDir = %q, want /p", got.BaseDir)
			}
			if !got.RunOnStart {
				t.Error("RunOnStart = false, want true")
			}
			if got.Debounce != 50*time.Millisecond {
				t.Errorf("Debounce = %v", got.Debounce)
			}
			if !slices.Equal(got.IgnoreDirs, []string{"dist"}) {
				t.Errorf("IgnoreDirs = %v", got.IgnoreDirs)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}
