// Package graph builds a traversable view of a resolution result and
// renders it as DOT or an indented tree.
package graph

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	graphlib "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	pomdep "github.com/albertocavalcante/go-pomdep"
)

// Graph is a resolved dependency graph. Vertices are component ids
// ("group:name:version"); edges point from a dependent to the module it
// pulled in. Edges recorded against a version that lost conflict
// resolution are re-pointed at the selected version.
type Graph struct {
	// Root is the component resolution started from.
	Root pomdep.ComponentID

	g graphlib.Graph[string, string]
}

// Build constructs a graph from a resolution result.
func Build(res *pomdep.Resolution) (*Graph, error) {
	if res == nil {
		return nil, fmt.Errorf("resolution is nil")
	}

	g := graphlib.New(graphlib.StringHash, graphlib.Directed())

	// Selected version per module, used to re-point RequiredBy entries
	// that name a version removed by conflict resolution.
	selected := map[string]string{
		res.Root.ModuleID(): res.Root.String(),
	}
	for _, m := range res.Modules {
		selected[m.ID.ModuleID()] = m.ID.String()
	}

	if err := g.AddVertex(res.Root.String()); err != nil {
		return nil, fmt.Errorf("add root vertex: %w", err)
	}
	for _, m := range res.Modules {
		if err := g.AddVertex(m.ID.String()); err != nil {
			return nil, fmt.Errorf("add vertex %s: %w", m.ID, err)
		}
	}
	for _, m := range res.Modules {
		for _, from := range m.RequiredBy {
			source := normalize(from, selected)
			if source == m.ID.String() {
				continue
			}
			err := g.AddEdge(source, m.ID.String())
			if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("add edge %s -> %s: %w", source, m.ID, err)
			}
		}
	}

	return &Graph{Root: res.Root, g: g}, nil
}

// normalize maps a "group:name:version" id to the selected version of the
// same module, keeping unknown ids as they are.
func normalize(id string, selected map[string]string) string {
	if i := strings.LastIndex(id, ":"); i > 0 {
		if sel, ok := selected[id[:i]]; ok {
			return sel
		}
	}
	return id
}

// Dependencies returns the direct dependencies of a component id, sorted.
func (g *Graph) Dependencies(id string) ([]string, error) {
	adjacency, err := g.g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	return sortedKeys(adjacency[id]), nil
}

// Dependents returns the components that directly depend on id, sorted.
func (g *Graph) Dependents(id string) ([]string, error) {
	predecessors, err := g.g.PredecessorMap()
	if err != nil {
		return nil, err
	}
	return sortedKeys(predecessors[id]), nil
}

// DOT writes the graph in Graphviz DOT format.
func (g *Graph) DOT(w io.Writer) error {
	return draw.DOT(g.g, w)
}

// Tree renders the graph as an indented tree from the root. A node that
// was already printed is marked (^) instead of being expanded again, so
// shared and cyclic subgraphs stay finite.
func (g *Graph) Tree() (string, error) {
	adjacency, err := g.g.AdjacencyMap()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	printed := make(map[string]bool)
	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		if printed[id] {
			sb.WriteString(id)
			sb.WriteString(" (^)\n")
			return
		}
		printed[id] = true
		sb.WriteString(id)
		sb.WriteByte('\n')
		for _, child := range sortedKeys(adjacency[id]) {
			walk(child, depth+1)
		}
	}
	walk(g.Root.String(), 0)
	return sb.String(), nil
}

func sortedKeys(edges map[string]graphlib.Edge[string]) []string {
	out := make([]string, 0, len(edges))
	for k := range edges {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
