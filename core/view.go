// File: view.go
// Role: Non-mutating graph views.
// Determinism:
//   - Preserves unit values and edge IDs.
// Concurrency:
//   - Read lock on source; result is a fresh graph instance.

package core

import "sort"

// InducedSubgraph returns a new Graph containing only the units whose IDs are
// true in keep, and the edges with both endpoints kept. IDs absent from g are
// ignored. The input graph is not mutated.
//
// Complexity: O(K + sum of degrees of kept units), K = len(keep).
func InducedSubgraph(g *Graph, keep map[int]bool) *Graph {
	out := NewGraph(WithCapacity(len(keep)))

	g.mu.RLock()
	defer g.mu.RUnlock()

	for id, ok := range keep {
		if !ok {
			continue
		}
		u, exists := g.units[id]
		if !exists {
			continue
		}
		cp := *u
		out.units[id] = &cp
		out.adjacency[id] = make(map[int]int)
	}
	// Population is summed in ascending ID order, as TotalPopulation of a
	// graph built unit by unit in that order would be.
	for _, id := range sortedKeys(out.units) {
		out.population += out.units[id].Population
	}

	for id := range out.units {
		for nbr, eid := range g.adjacency[id] {
			// each edge once, from its smaller endpoint
			if nbr < id {
				continue
			}
			if _, kept := out.units[nbr]; !kept {
				continue
			}
			out.addEdgeWithID(*g.edges[eid])
		}
	}

	return out
}

func sortedKeys(m map[int]*Unit) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}
