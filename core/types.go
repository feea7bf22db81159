// SPDX-License-Identifier: MIT

// File: types.go
// Role: Unit, Edge, Graph, GraphOption, sentinel errors and NewGraph.

package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrUnitNotFound indicates an operation referenced a non-existent unit.
	ErrUnitNotFound = errors.New("core: unit not found")

	// ErrUnitExists indicates a second unit with an already used ID.
	ErrUnitExists = errors.New("core: unit already exists")

	// ErrNegativePopulation indicates a unit with population < 0 or not finite.
	ErrNegativePopulation = errors.New("core: population must be a finite value >= 0")

	// ErrBadGeometry indicates a unit whose area or perimeter is not a finite value > 0.
	ErrBadGeometry = errors.New("core: area and perimeter must be finite values > 0")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// Unit is an atomic geographic unit of a region.
//
// Units are immutable once added to a Graph: Graph.Unit returns a copy.
type Unit struct {
	// ID uniquely identifies this Unit within its Graph.
	ID int

	// Population is the count (or proxy count) of residents, >= 0.
	Population float64

	// Area is the planar area of the unit, > 0.
	Area float64

	// Perimeter is the planar boundary length of the unit, > 0.
	Perimeter float64
}

// Edge is an undirected adjacency between two distinct units.
type Edge struct {
	// ID is assigned by the Graph in insertion order.
	ID int

	// From and To are the endpoint unit IDs. AddEdge stores them as given;
	// the edge has no orientation.
	From, To int
}

// Other returns the endpoint opposite to id. If id is not an endpoint of e
// the result is From.
func (e Edge) Other(id int) int {
	if e.From == id {
		return e.To
	}

	return e.From
}

// Graph is the attributed adjacency graph of a region.
type Graph struct {
	mu sync.RWMutex

	// nextEdgeID is the ID handed to the next added edge (atomic).
	nextEdgeID int64

	units map[int]*Unit
	edges map[int]*Edge

	// adjacency[u][v] = edge ID joining u and v (stored in both directions).
	adjacency map[int]map[int]int

	// population caches the sum of unit populations.
	population float64
}

// GraphOption configures a Graph before any unit is added.
type GraphOption func(*Graph)

// WithCapacity pre-sizes the internal maps for n units.
// Non-positive values are ignored.
func WithCapacity(n int) GraphOption {
	return func(g *Graph) {
		if n <= 0 {
			return
		}
		g.units = make(map[int]*Unit, n)
		g.adjacency = make(map[int]map[int]int, n)
		g.edges = make(map[int]*Edge, 2*n)
	}
}

// NewGraph creates an empty Graph and applies the given options.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		units:     make(map[int]*Unit),
		edges:     make(map[int]*Edge),
		adjacency: make(map[int]map[int]int),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
