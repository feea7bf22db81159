// Package dfs provides depth-first traversal over unit adjacency graphs
// with pre-order (OnVisit) and post-order (OnExit) hooks.
//
// The redistricting pipeline uses it to root a spanning tree and
// accumulate subtree populations bottom-up: a post-order guarantees that
// every child is finished before its parent.
//
// Neighbors are followed in ascending ID order, so traversals are
// deterministic. Recursion depth equals the depth of the DFS tree.
package dfs
