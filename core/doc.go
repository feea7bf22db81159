// Package core provides the thread-safe attributed adjacency graph that every
// other lvdistrict package works on.
//
// A Graph G = (U, E) holds geographic units (precincts, blocks, grid cells)
// as vertices and unit adjacency as undirected, unweighted edges:
//
//   - Unit carries an integer ID plus the three attributes the sampler and
//     the scorer read: Population, Area and Perimeter.
//   - Edge joins two distinct, existing units; self-loops and parallel edges
//     are rejected.
//   - Edge IDs are allocated atomically and monotonically (0, 1, 2, ...).
//
// Determinism
//
//	Units() is sorted by unit ID, Edges() by edge ID and Neighbors() by
//	neighbor ID. Every algorithm built on top of core iterates through these
//	enumerations, so a fixed random seed reproduces a run exactly.
//
// Concurrency
//
//	Reads take a shared lock and return copies. A graph is typically built
//	once (builder, geo) and then only read, which lets ReCom workers sample
//	spanning trees over the same graph in parallel.
//
// Views
//
//	InducedSubgraph(g, keep) returns a fresh graph restricted to the kept
//	units, preserving unit values and edge IDs. The source is not mutated.
//
// Errors
//
//	ErrUnitNotFound, ErrUnitExists, ErrNegativePopulation, ErrBadGeometry,
//	ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
package core
