// SPDX-License-Identifier: MPL-2.0

// Package dag provides directed graph ordering and cycle detection. The
// execution coordinator uses it to reject cyclic "after" chains before any
// command runs.
package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is the sentinel error wrapped by CycleError.
var ErrCycle = errors.New("dependency cycle")

type (
	// CycleError indicates that the graph contains a cycle. Cycle is a closed
	// path: its first and last elements are the same node.
	CycleError struct {
		Cycle []string
	}

	// Graph is a directed graph keyed by string node names. An edge from A to
	// B means A must complete before B starts.
	Graph struct {
		// adjacency maps each node to its outgoing neighbors (nodes that depend on it).
		adjacency map[string][]string
		// nodes tracks all nodes in insertion order for deterministic output.
		nodes   []string
		nodeSet map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Unwrap returns ErrCycle for errors.Is() compatibility.
func (e *CycleError) Unwrap() error { return ErrCycle }

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		nodeSet:   make(map[string]bool),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge adds a directed edge from -> to, meaning "from" must run before "to".
// Both nodes are implicitly added if they don't exist.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.adjacency[from] = append(g.adjacency[from], to)
}

// TopologicalSort returns a valid execution order using Kahn's algorithm.
// Nodes at the same level keep insertion order. A cyclic graph yields a
// CycleError naming one concrete cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, neighbors := range g.adjacency {
		for _, neighbor := range neighbors {
			inDegree[neighbor]++
		}
	}

	var queue []string
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range g.adjacency[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, &CycleError{Cycle: g.FindCycle()}
	}
	return result, nil
}

// FindCycle returns the first cycle reachable in insertion order as a closed
// path, or nil when the graph is acyclic.
func (g *Graph) FindCycle() []string {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(g.nodes))
	var stack []string

	var visit func(node string) []string
	visit = func(node string) []string {
		state[node] = onStack
		stack = append(stack, node)
		for _, next := range g.adjacency[node] {
			switch state[next] {
			case onStack:
				start := len(stack) - 1
				for stack[start] != next {
					start--
				}
				cycle := append([]string(nil), stack[start:]...)
				return append(cycle, next)
			case unvisited:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[node] = done
		return nil
	}

	for _, node := range g.nodes {
		if state[node] == unvisited {
			if cycle := visit(node); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
