// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath that accept and
// return types.FilesystemPath.
package fspath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runnables-cli/runnables/pkg/types"
)

// Join wraps filepath.Join.
func Join(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Base wraps filepath.Base.
func Base(p types.FilesystemPath) string {
	return filepath.Base(string(p))
}

// Canonical returns the absolute, symlink-free form of p. It fails when p
// does not exist.
func Canonical(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks: %w", err)
	}
	return types.FilesystemPath(resolved), nil
}

// IsDir reports whether p names an existing directory.
func IsDir(p types.FilesystemPath) bool {
	info, err := os.Stat(string(p))
	return err == nil && info.IsDir()
}

// IsFile reports whether p names an existing regular file.
func IsFile(p types.FilesystemPath) bool {
	info, err := os.Stat(string(p))
	return err == nil && info.Mode().IsRegular()
}

// Rel returns p relative to base, or p unchanged when no relative path exists.
func Rel(base, p types.FilesystemPath) string {
	rel, err := filepath.Rel(string(base), string(p))
	if err != nil {
		return string(p)
	}
	return rel
}

// Display renders p for humans: "." for base itself, "./rel" for paths under
// base, and p unchanged otherwise.
func Display(base, p types.FilesystemPath) string {
	rel, err := filepath.Rel(string(base), string(p))
	switch {
	case err != nil, rel == "..", strings.HasPrefix(rel, ".."+string(filepath.Separator)):
		return string(p)
	case rel == ".":
		return "."
	default:
		return "." + string(filepath.Separator) + rel
	}
}
