// SPDX-License-Identifier: MIT

// File: methods_edges.go
// Role: Edge insertion, adjacency queries and edge enumeration.

package core

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// AddEdge joins units from and to with an undirected edge and returns its ID.
//
// Errors:
//   - ErrLoopNotAllowed if from == to.
//   - ErrUnitNotFound if either endpoint is missing.
//   - ErrMultiEdgeNotAllowed if the units are already adjacent.
func (g *Graph) AddEdge(from, to int) (int, error) {
	if from == to {
		return 0, fmt.Errorf("%w: %d", ErrLoopNotAllowed, from)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.units[from]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnitNotFound, from)
	}
	if _, ok := g.units[to]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnitNotFound, to)
	}
	if _, ok := g.adjacency[from][to]; ok {
		return 0, fmt.Errorf("%w: %d-%d", ErrMultiEdgeNotAllowed, from, to)
	}

	id := g.nextEdge()
	g.edges[id] = &Edge{ID: id, From: from, To: to}
	g.adjacency[from][to] = id
	g.adjacency[to][from] = id

	return id, nil
}

// addEdgeWithID inserts an edge under a fixed ID (used by views).
// Caller holds g.mu and has validated both endpoints.
func (g *Graph) addEdgeWithID(e Edge) {
	cp := e
	g.edges[e.ID] = &cp
	g.adjacency[e.From][e.To] = e.ID
	g.adjacency[e.To][e.From] = e.ID
	if int64(e.ID) >= g.nextEdgeID {
		g.nextEdgeID = int64(e.ID) + 1
	}
}

func (g *Graph) nextEdge() int {
	return int(atomic.AddInt64(&g.nextEdgeID, 1) - 1)
}

// HasEdge reports whether units u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.adjacency[u][v]

	return ok
}

// EdgeBetween returns the edge joining u and v, if any.
func (g *Graph) EdgeBetween(u, v int) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	id, ok := g.adjacency[u][v]
	if !ok {
		return Edge{}, false
	}

	return *g.edges[id], true
}

// Edges returns copies of all edges sorted by edge ID.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// Neighbors returns the IDs of units adjacent to id in ascending order.
func (g *Graph) Neighbors(id int) ([]int, error) {
	g.mu.RLock()
	adj, ok := g.adjacency[id]
	if !ok {
		g.mu.RUnlock()
		return nil, fmt.Errorf("%w: %d", ErrUnitNotFound, id)
	}
	out := make([]int, 0, len(adj))
	for nbr := range adj {
		out = append(out, nbr)
	}
	g.mu.RUnlock()

	sort.Ints(out)

	return out, nil
}

// Degree returns the number of units adjacent to id.
func (g *Graph) Degree(id int) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	adj, ok := g.adjacency[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnitNotFound, id)
	}

	return len(adj), nil
}
