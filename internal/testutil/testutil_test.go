// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTree(t *testing.T) {
	t.Parallel()

	root := TempDir(t)
	WriteTree(t, root, map[string]string{
		"a/b/file.txt": "hello",
		"empty/":       "",
	})

	data, err := os.ReadFile(filepath.Join(root, "a", "b", "file.txt"))
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}
	info, err := os.Stat(filepath.Join(root, "empty"))
	if err != nil || !info.IsDir() {
		t.Errorf("empty/ was not created as a directory: %v", err)
	}
}
