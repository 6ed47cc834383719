// SPDX-License-Identifier: MPL-2.0

// Package pathfilter resolves .runinclude and .runignore marker files into
// the allow and deny lists that prune directory traversal.
package pathfilter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/runnables-cli/runnables/pkg/fspath"
	"github.com/runnables-cli/runnables/pkg/stringlist"
	"github.com/runnables-cli/runnables/pkg/types"
)

const (
	// IncludeFileName lists directories to traverse, relative to its own directory.
	IncludeFileName = ".runinclude"
	// IgnoreFileName lists directories never to traverse, relative to its own directory.
	IgnoreFileName = ".runignore"
)

// builtinIgnores are directory names that are never traversed.
var builtinIgnores = []string{"target", "node_modules", ".git"}

type (
	// Set holds canonical include and exclude paths plus the directory names
	// that are always skipped. The zero value is not usable; build one with
	// Resolve or New.
	Set struct {
		includes    map[types.FilesystemPath]struct{}
		excludes    map[types.FilesystemPath]struct{}
		ignoreNames []string
	}

	// Option configures a Set.
	Option func(*Set)
)

// WithIgnoreNames adds directory names to the built-in ignore list.
func WithIgnoreNames(names ...string) Option {
	return func(s *Set) {
		for _, n := range names {
			if n != "" && !slices.Contains(s.ignoreNames, n) {
				s.ignoreNames = append(s.ignoreNames, n)
			}
		}
	}
}

// New returns an empty Set with the built-in ignores active.
func New(opts ...Option) *Set {
	s := &Set{
		includes:    make(map[types.FilesystemPath]struct{}),
		excludes:    make(map[types.FilesystemPath]struct{}),
		ignoreNames: slices.Clone(builtinIgnores),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve walks root depth-first and collects every marker file it reaches.
// A directory's own markers are read before its children are considered, so
// an ignore file can prune its siblings' subtrees but never the directory it
// lives in. Only a root that cannot be canonicalized is an error.
func Resolve(root types.FilesystemPath, opts ...Option) (*Set, error) {
	canonicalRoot, err := fspath.Canonical(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}

	s := New(opts...)
	s.walk(canonicalRoot, s.readMarkers)
	return s, nil
}

// Allows reports whether traversal may descend into dir. dir must be canonical.
func (s *Set) Allows(dir types.FilesystemPath) bool {
	if slices.Contains(s.ignoreNames, fspath.Base(dir)) {
		return false
	}
	if len(s.includes) > 0 {
		if _, ok := s.includes[dir]; !ok {
			return false
		}
	}
	_, excluded := s.excludes[dir]
	return !excluded
}

// Include adds a canonical path to the allow list.
func (s *Set) Include(dir types.FilesystemPath) { s.includes[dir] = struct{}{} }

// Exclude adds a canonical path to the deny list.
func (s *Set) Exclude(dir types.FilesystemPath) { s.excludes[dir] = struct{}{} }

// Includes returns the allow list, sorted.
func (s *Set) Includes() []types.FilesystemPath { return sortedKeys(s.includes) }

// Excludes returns the deny list, sorted.
func (s *Set) Excludes() []types.FilesystemPath { return sortedKeys(s.excludes) }

// Walk visits root and every directory beneath it that the set allows, in
// depth-first pre-order with siblings in lexical order. root itself is always
// visited. root must be canonical.
func (s *Set) Walk(root types.FilesystemPath, visit func(dir types.FilesystemPath)) {
	s.walk(root, visit)
}

func (s *Set) walk(root types.FilesystemPath, visit func(dir types.FilesystemPath)) {
	stack := []types.FilesystemPath{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visit(dir)

		entries, err := os.ReadDir(string(dir))
		if err != nil {
			slog.Debug("skipping unreadable directory", "path", dir, "error", err)
			continue
		}

		var children []types.FilesystemPath
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			child := fspath.Join(dir, e.Name())
			if s.Allows(child) {
				children = append(children, child)
			}
		}
		// Push in reverse so the lexically first child is visited next.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

func (s *Set) readMarkers(dir types.FilesystemPath) {
	for _, entry := range readMarker(dir, IncludeFileName) {
		s.Include(entry)
	}
	for _, entry := range readMarker(dir, IgnoreFileName) {
		s.Exclude(entry)
	}
}

// readMarker returns the canonical paths listed in dir/name. Entries that do
// not exist are dropped since no traversed directory could match them.
func readMarker(dir types.FilesystemPath, name string) []types.FilesystemPath {
	data, err := os.ReadFile(string(fspath.Join(dir, name)))
	if err != nil {
		return nil
	}

	var out []types.FilesystemPath
	for _, entry := range stringlist.Parse(string(data)) {
		p := types.FilesystemPath(entry)
		if !filepath.IsAbs(entry) {
			p = fspath.Join(dir, entry)
		}
		canonical, err := fspath.Canonical(p)
		if err != nil {
			slog.Debug("ignoring marker entry", "file", fspath.Join(dir, name), "entry", entry, "error", err)
			continue
		}
		out = append(out, canonical)
	}
	return out
}

func sortedKeys(m map[types.FilesystemPath]struct{}) []types.FilesystemPath {
	out := make([]types.FilesystemPath, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
