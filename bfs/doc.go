// Package bfs provides breadth-first search over unit adjacency graphs
// (core.Graph, spanning.Tree, or anything implementing bfs.Graph).
//
// What
//
//   - BFS explores units in non-decreasing edge distance from a start unit and
//     returns a Result with Order, Depth and Parent.
//   - WithFilterNeighbor / WithinSet restrict the walk, e.g. to the units of
//     one district or to one side of a removed spanning-tree edge.
//   - Components, IsConnected and SetConnected answer the connectivity
//     questions the redistricting pipeline asks: is the region connected,
//     which island is largest, is every district contiguous.
//
// Determinism
//
//	Neighbors are enqueued in ascending unit ID, so the visit sequence is
//	fully reproducible.
//
// Complexity (V = units, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.BFS(g, start,
//	    bfs.WithContext(ctx),
//	    bfs.WithinSet(func(id int) bool { return district[id] == 3 }),
//	)
//
// Errors
//
//   - ErrGraphNil           if the graph is nil.
//   - ErrStartUnitNotFound  if the start unit does not exist.
//   - ErrOptionViolation    for invalid options (e.g. negative MaxDepth).
//   - ErrNeighbors          if Neighbors fails for any unit.
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
