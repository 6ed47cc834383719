// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/runnables-cli/runnables/internal/pathfilter"
	"github.com/runnables-cli/runnables/internal/source"
	"github.com/runnables-cli/runnables/pkg/fspath"
	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"
)

type (
	// Engine discovers runnables beneath a root directory.
	Engine struct {
		sources     []source.Source
		ignoreNames []string
	}

	// Option configures an Engine.
	Option func(*Engine)

	// Result is the output of a single discovery pass.
	Result struct {
		// Root is the canonical root directory.
		Root types.FilesystemPath
		// Runnables are grouped by source priority; Index equals position.
		Runnables []runnable.Runnable
		// Filters is the path filter set used for the walk.
		Filters     *pathfilter.Set
		Diagnostics []Diagnostic
	}
)

// WithSources replaces the default source list. Order is preserved.
func WithSources(sources ...source.Source) Option {
	return func(e *Engine) { e.sources = sources }
}

// WithIgnoreNames adds directory names that are never traversed.
func WithIgnoreNames(names ...string) Option {
	return func(e *Engine) { e.ignoreNames = append(e.ignoreNames, names...) }
}

// New creates an Engine that scans with every source unless configured otherwise.
func New(opts ...Option) *Engine {
	e := &Engine{sources: source.All()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Discover resolves root, builds its path filters, and walks the tree once
// per source. Only a root that cannot be resolved, or cancellation, is
// returned as an error.
func (e *Engine) Discover(ctx context.Context, root types.FilesystemPath) (Result, error) {
	canonicalRoot, err := fspath.Canonical(root)
	if err != nil {
		return Result{}, fmt.Errorf("resolve root %q: %w", root, err)
	}
	if !fspath.IsDir(canonicalRoot) {
		return Result{}, fmt.Errorf("resolve root %q: not a directory", root)
	}

	filters, err := pathfilter.Resolve(canonicalRoot, pathfilter.WithIgnoreNames(e.ignoreNames...))
	if err != nil {
		return Result{}, err
	}

	slog.Debug("path filters resolved",
		"root", canonicalRoot,
		"includes", filters.Includes(),
		"excludes", filters.Excludes())

	res := Result{Root: canonicalRoot, Filters: filters}
	for _, src := range e.sources {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("discovery canceled: %w", err)
		}
		found, diags := scanTree(src, canonicalRoot, filters)
		res.Runnables = append(res.Runnables, found...)
		res.Diagnostics = append(res.Diagnostics, diags...)
	}

	for i := range res.Runnables {
		res.Runnables[i].Index = i
	}

	slog.Debug("discovery finished",
		"root", canonicalRoot,
		"runnables", len(res.Runnables),
		"diagnostics", len(res.Diagnostics))
	return res, nil
}

func scanTree(src source.Source, root types.FilesystemPath, filters *pathfilter.Set) ([]runnable.Runnable, []Diagnostic) {
	var (
		found []runnable.Runnable
		diags []Diagnostic
	)
	filters.Walk(root, func(dir types.FilesystemPath) {
		rs, err := src.Scan(dir)
		if err == nil {
			for _, r := range rs {
				if ok, errs := r.IsValid(); !ok {
					invalid := errors.Join(errs...)
					slog.Debug("dropping invalid runnable", "kind", src.Kind(), "dir", dir, "error", invalid)
					diags = append(diags, Diagnostic{
						Severity: SeverityError,
						Code:     CodeRunnableInvalid,
						Message:  fmt.Sprintf("dropped %s runnable: %v", src.Kind(), invalid),
						Path:     string(dir),
						Cause:    invalid,
					})
					continue
				}
				found = append(found, r)
			}
			return
		}
		var malformed *source.MalformedError
		if errors.As(err, &malformed) {
			slog.Debug("skipping malformed manifest", "kind", src.Kind(), "path", malformed.Path, "error", malformed.Err)
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeManifestSkipped,
				Message:  fmt.Sprintf("skipped %s manifest: %v", src.Kind(), malformed.Err),
				Path:     string(malformed.Path),
				Cause:    err,
			})
		}
	})
	return found, diags
}
