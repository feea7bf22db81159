// Package spanning builds spanning trees of unit adjacency graphs.
//
// Deterministic minimum spanning trees:
//
//   - Kruskal(g, weight): sort edges, union-find with path compression and
//     union by rank. O(E log E).
//   - Prim(g, root, weight): grow from root with a binary heap. O(E log E).
//
// Random spanning trees for ReCom and the initial partitioner:
//
//   - Sample(g, seed, MethodKruskal): i.i.d. uniform weights + Kruskal.
//   - Sample(g, seed, MethodPrim):    same weights, Prim from a random root.
//   - Sample(g, seed, MethodWilson):  uniform spanning tree via Wilson's
//     loop-erased random walks.
//
// Sample is a pure function of its arguments, so parallel workers that are
// handed pre-drawn seeds reproduce a sequential run exactly.
//
// A Tree satisfies the traversal interfaces of packages bfs and dfs.
//
// Errors: ErrInvalidGraph, ErrRootNotFound, ErrDisconnected, ErrUnknownMethod.
package spanning
