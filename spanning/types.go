// Package spanning defines the Tree type, sampling methods and sentinel
// errors for spanning-tree construction over a core.Graph.
package spanning

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvdistrict/core"
)

// ErrInvalidGraph indicates a nil graph.
var ErrInvalidGraph = errors.New("spanning: graph is nil")

// ErrRootNotFound indicates that the Prim root is not a unit of the graph.
var ErrRootNotFound = errors.New("spanning: root unit not found")

// ErrDisconnected indicates that the graph is empty or not connected, so no
// spanning tree covering every unit exists.
var ErrDisconnected = errors.New("spanning: graph is disconnected")

// ErrUnknownMethod indicates an unsupported Method value.
var ErrUnknownMethod = errors.New("spanning: unknown method")

// Method selects how a random spanning tree is drawn.
type Method string

const (
	// MethodKruskal draws i.i.d. uniform edge weights and takes the minimum
	// spanning tree with Kruskal's algorithm.
	MethodKruskal Method = "kruskal"

	// MethodPrim draws i.i.d. uniform edge weights and grows the minimum
	// spanning tree from a random root with Prim's algorithm. For the same
	// weights it yields the same tree as MethodKruskal.
	MethodPrim Method = "prim"

	// MethodWilson draws a uniformly random spanning tree with Wilson's
	// loop-erased random walks.
	MethodWilson Method = "wilson"
)

// ParseMethod maps a configuration string to a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodKruskal, MethodPrim, MethodWilson:
		return m, nil
	case "":
		return MethodKruskal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Tree is an undirected spanning tree over a set of units. It satisfies the
// bfs.Graph and dfs.Graph interfaces and is immutable once built.
type Tree struct {
	units []int
	edges []core.Edge
	adj   map[int][]int
}

func newTree(units []int, edges []core.Edge) *Tree {
	t := &Tree{
		units: units,
		edges: edges,
		adj:   make(map[int][]int, len(units)),
	}
	for _, u := range units {
		t.adj[u] = nil
	}
	for _, e := range edges {
		t.adj[e.From] = append(t.adj[e.From], e.To)
		t.adj[e.To] = append(t.adj[e.To], e.From)
	}
	for _, nbrs := range t.adj {
		sort.Ints(nbrs)
	}

	return t
}

// HasUnit reports whether id is spanned by the tree.
func (t *Tree) HasUnit(id int) bool {
	_, ok := t.adj[id]

	return ok
}

// Neighbors returns the tree neighbors of id in ascending order.
func (t *Tree) Neighbors(id int) ([]int, error) {
	nbrs, ok := t.adj[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", core.ErrUnitNotFound, id)
	}
	out := make([]int, len(nbrs))
	copy(out, nbrs)

	return out, nil
}

// UnitCount returns the number of spanned units.
func (t *Tree) UnitCount() int { return len(t.units) }

// Units returns the spanned unit IDs in ascending order.
func (t *Tree) Units() []int {
	out := make([]int, len(t.units))
	copy(out, t.units)

	return out
}

// Edges returns the tree edges in the order they were selected.
func (t *Tree) Edges() []core.Edge {
	out := make([]core.Edge, len(t.edges))
	copy(out, t.edges)

	return out
}

// trivial handles the 0- and 1-unit cases shared by every method.
func trivial(graph *core.Graph) (*Tree, bool, error) {
	if graph == nil {
		return nil, true, ErrInvalidGraph
	}
	units := graph.Units()
	switch len(units) {
	case 0:
		return nil, true, ErrDisconnected
	case 1:
		return newTree(units, nil), true, nil
	}

	return nil, false, nil
}
