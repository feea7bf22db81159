// Package dfs implements depth-first search with pre- and post-order hooks.
package dfs

import (
	"fmt"
)

// dfsWalker holds traversal state.
type dfsWalker struct {
	graph Graph
	opts  Options
	res   *Result
}

// DFS explores g depth-first from start, following neighbors in ascending ID
// order. On a tree rooted at start, Result.Order is a post-order and
// Result.Parent gives the rooted-tree parent of every other unit, which is
// what subtree aggregation needs.
//
// Errors: ErrGraphNil, ErrStartUnitNotFound, ctx.Err() on cancellation, or a
// wrapped hook/Neighbors error. On error the partial Result is returned
// with a nil Order.
func DFS(g Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if !g.HasUnit(start) {
		return nil, fmt.Errorf("%w: %d", ErrStartUnitNotFound, start)
	}

	n := g.UnitCount()
	w := &dfsWalker{
		graph: g,
		opts:  o,
		res: &Result{
			Order:   make([]int, 0, n),
			Depth:   make(map[int]int, n),
			Parent:  make(map[int]int, n),
			Visited: make(map[int]bool, n),
		},
	}
	if err := w.traverse(start, 0); err != nil {
		w.res.Order = nil
		return w.res, err
	}

	return w.res, nil
}

// traverse visits id, recurses into unvisited neighbors, then appends id
// to Order.
func (w *dfsWalker) traverse(id, depth int) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	w.res.Visited[id] = true
	w.res.Depth[id] = depth

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			return fmt.Errorf("dfs: OnVisit hook for %d: %w", id, err)
		}
	}

	nbs, err := w.graph.Neighbors(id)
	if err != nil {
		return fmt.Errorf("dfs: Neighbors(%d): %w", id, err)
	}
	for _, nid := range nbs {
		if w.res.Visited[nid] {
			continue
		}
		if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(nid) {
			w.res.SkippedNeighbors++
			continue
		}
		w.res.Parent[nid] = id
		if err = w.traverse(nid, depth+1); err != nil {
			return err
		}
	}

	if w.opts.OnExit != nil {
		if err = w.opts.OnExit(id); err != nil {
			return fmt.Errorf("dfs: OnExit hook for %d: %w", id, err)
		}
	}
	w.res.Order = append(w.res.Order, id)

	return nil
}
