package spanning

import (
	"sort"

	"github.com/katalvlaran/lvdistrict/core"
)

// WeightFunc assigns a weight to an edge.
type WeightFunc func(e core.Edge) float64

// Kruskal computes the minimum spanning tree of graph under weight.
// It uses a disjoint-set (union-find) structure with path compression and
// union by rank.
//
// Error Conditions:
//   - ErrInvalidGraph : graph is nil.
//   - ErrDisconnected : graph has no units, or is not connected.
//
// Steps:
//  1. Retrieve sorted unit IDs; one unit -> trivial tree.
//  2. Weigh every edge and sort ascending (stable, so equal weights keep
//     edge-ID order).
//  3. Union endpoints of edges that join different components.
//  4. Stop at |U|-1 edges; fewer -> ErrDisconnected.
//
// Complexity: O(E log E + a(U)*E). Memory: O(E + U).
func Kruskal(graph *core.Graph, weight WeightFunc) (*Tree, float64, error) {
	if t, done, err := trivial(graph); done {
		return t, 0, err
	}
	units := graph.Units()
	edges := graph.Edges()

	weights := make(map[int]float64, len(edges))
	for _, e := range edges {
		weights[e.ID] = weight(e)
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return weights[edges[i].ID] < weights[edges[j].ID]
	})

	parent := make(map[int]int, len(units))
	rank := make(map[int]int, len(units))
	for _, u := range units {
		parent[u] = u
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) bool {
		ra, rb := find(a), find(b)
		if ra == rb {
			return false
		}
		switch {
		case rank[ra] < rank[rb]:
			parent[ra] = rb
		case rank[ra] > rank[rb]:
			parent[rb] = ra
		default:
			parent[rb] = ra
			rank[ra]++
		}
		return true
	}

	n := len(units)
	mst := make([]core.Edge, 0, n-1)
	var total float64
	for _, e := range edges {
		if union(e.From, e.To) {
			mst = append(mst, e)
			total += weights[e.ID]
			if len(mst) == n-1 {
				break
			}
		}
	}
	if len(mst) < n-1 {
		return nil, 0, ErrDisconnected
	}

	return newTree(units, mst), total, nil
}
