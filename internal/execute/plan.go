// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/runnables-cli/runnables/internal/dag"
	"github.com/runnables-cli/runnables/internal/source"
	"github.com/runnables-cli/runnables/pkg/runnable"
)

// ErrDependencyCycle is the sentinel error wrapped by DependencyCycleError.
var ErrDependencyCycle = errors.New("dependency cycle")

type (
	// Step is one command to execute.
	Step struct {
		Runnable runnable.Runnable
		// Command is the composed shell command line.
		Command string
		// Depth is 0 for the chosen runnable and grows along "after" chains.
		Depth int
	}

	// SkippedDependency records an "after" reference that matched nothing.
	SkippedDependency struct {
		Ref       string
		Dependent string
	}

	// Plan is the flattened execution order for one chosen runnable.
	Plan struct {
		Steps   []Step
		Skipped []SkippedDependency
	}

	// DependencyCycleError is returned when "after" references loop back.
	DependencyCycleError struct {
		Cycle []string
	}
)

// NewPlan resolves chosen's dependency chain against all. Dependencies run
// with their default command choice; chosen keeps its own. A reference that
// names no runnable is skipped with a warning. Shared dependencies appear once
// per path that reaches them.
func NewPlan(chosen runnable.Runnable, all []runnable.Runnable) (*Plan, error) {
	if chosen.IsNone() {
		return nil, source.ErrNoParams
	}

	b := &planBuilder{all: all, graph: dag.New(), refs: make(map[string]string), expanded: make(map[string]bool)}
	if err := b.link(chosen); err != nil {
		return nil, err
	}
	if _, err := b.graph.TopologicalSort(); err != nil {
		var cycleErr *dag.CycleError
		if errors.As(err, &cycleErr) {
			return nil, b.cycleError(cycleErr.Cycle)
		}
		return nil, err
	}

	plan := &Plan{Skipped: b.skipped}
	if err := b.flatten(chosen, 0, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Error implements the error interface.
func (e *DependencyCycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Cycle, " -> "))
}

// Unwrap returns ErrDependencyCycle for errors.Is() compatibility.
func (e *DependencyCycleError) Unwrap() error { return ErrDependencyCycle }

type planBuilder struct {
	all      []runnable.Runnable
	graph    *dag.Graph
	refs     map[string]string
	expanded map[string]bool
	skipped  []SkippedDependency
}

// nodeKey identifies a runnable independently of its command choice.
func nodeKey(r runnable.Runnable) string {
	return fmt.Sprintf("%s:%s#%d", r.Kind(), r.Name, r.Index)
}

// link adds r and its transitive dependencies to the graph. Each runnable is
// expanded once, which keeps cyclic inputs finite.
func (b *planBuilder) link(r runnable.Runnable) error {
	key := nodeKey(r)
	b.graph.AddNode(key)
	b.refs[key] = runnable.Ref{Kind: r.Kind(), Name: r.Name}.String()
	if b.expanded[key] {
		return nil
	}
	b.expanded[key] = true

	deps, err := b.resolve(r, true)
	if err != nil {
		return err
	}
	for _, dep := range deps {
		b.graph.AddEdge(nodeKey(dep), key)
		if err := b.link(dep); err != nil {
			return err
		}
	}
	return nil
}

// flatten appends r's dependencies depth-first, then r itself.
func (b *planBuilder) flatten(r runnable.Runnable, depth int, plan *Plan) error {
	deps, err := b.resolve(r, false)
	if err != nil {
		return err
	}
	for _, dep := range deps {
		if err := b.flatten(dep, depth+1, plan); err != nil {
			return err
		}
	}

	command, err := source.Command(r)
	if err != nil {
		return fmt.Errorf("compose command for %s: %w", r.Name, err)
	}
	plan.Steps = append(plan.Steps, Step{Runnable: r, Command: command, Depth: depth})
	return nil
}

// resolve looks up r's "after" references in listed order. Missing targets
// are recorded (once, when record is set) and skipped.
func (b *planBuilder) resolve(r runnable.Runnable, record bool) ([]runnable.Runnable, error) {
	var deps []runnable.Runnable
	for _, text := range r.After {
		ref, err := runnable.ParseRef(text)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid after reference %q: %w", r.Name, text, err)
		}
		dep, ok := runnable.Lookup(b.all, ref.Kind, ref.Name)
		if !ok {
			if record {
				slog.Warn("skipping unknown dependency", "runnable", r.Name, "after", text)
				b.skipped = append(b.skipped, SkippedDependency{Ref: text, Dependent: r.Name})
			}
			continue
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

// cycleError converts graph keys back to "kind:name" references. Graph edges
// point from dependency to dependent, so the path is reversed to read in
// "after" order.
func (b *planBuilder) cycleError(cycle []string) *DependencyCycleError {
	out := make([]string, len(cycle))
	for i, key := range cycle {
		out[len(cycle)-1-i] = b.refs[key]
	}
	return &DependencyCycleError{Cycle: out}
}
