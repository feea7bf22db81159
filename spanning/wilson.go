package spanning

import (
	"math/rand"

	"github.com/katalvlaran/lvdistrict/bfs"
	"github.com/katalvlaran/lvdistrict/core"
)

// Wilson draws a spanning tree uniformly at random among all spanning trees
// of graph, using loop-erased random walks from each unit (in ascending ID
// order) into the growing tree. The first tree unit is chosen by rng.
//
// Error Conditions:
//   - ErrInvalidGraph : graph is nil.
//   - ErrDisconnected : graph has no units, or is not connected.
//
// Expected time is the mean hitting time of the graph.
func Wilson(graph *core.Graph, rng *rand.Rand) (*Tree, error) {
	if t, done, err := trivial(graph); done {
		return t, err
	}
	// the walk never terminates on a disconnected graph
	if ok, err := bfs.IsConnected(graph); err != nil || !ok {
		return nil, ErrDisconnected
	}
	units := graph.Units()
	n := len(units)

	nbrs := make(map[int][]int, n)
	for _, u := range units {
		ns, err := graph.Neighbors(u)
		if err != nil {
			return nil, err
		}
		nbrs[u] = ns
	}

	inTree := make(map[int]bool, n)
	next := make(map[int]int, n)
	inTree[units[rng.Intn(n)]] = true

	edges := make([]core.Edge, 0, n-1)
	for _, start := range units {
		// walk until the tree is hit; overwriting next erases loops
		for u := start; !inTree[u]; u = next[u] {
			ns := nbrs[u]
			next[u] = ns[rng.Intn(len(ns))]
		}
		for u := start; !inTree[u]; u = next[u] {
			inTree[u] = true
			e, _ := graph.EdgeBetween(u, next[u])
			edges = append(edges, e)
		}
	}

	return newTree(units, edges), nil
}
