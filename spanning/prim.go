package spanning

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/lvdistrict/core"
)

// Prim computes the minimum spanning tree of graph under weight, growing
// it from root with a binary heap of frontier edges. Ties between equal
// weights are broken by edge ID.
//
// Error Conditions:
//   - ErrInvalidGraph : graph is nil.
//   - ErrRootNotFound : root is not a unit of graph.
//   - ErrDisconnected : graph has no units, or not every unit is reached.
//
// Complexity: O(E log E). Memory: O(E + U).
func Prim(graph *core.Graph, root int, weight WeightFunc) (*Tree, float64, error) {
	if graph != nil && graph.UnitCount() > 0 && !graph.HasUnit(root) {
		return nil, 0, fmt.Errorf("%w: %d", ErrRootNotFound, root)
	}
	if t, done, err := trivial(graph); done {
		return t, 0, err
	}
	units := graph.Units()
	n := len(units)

	visited := make(map[int]bool, n)
	mst := make([]core.Edge, 0, n-1)
	var total float64
	pq := &edgePQ{}

	push := func(from int) error {
		nbrs, err := graph.Neighbors(from)
		if err != nil {
			return err
		}
		for _, to := range nbrs {
			if visited[to] {
				continue
			}
			e, _ := graph.EdgeBetween(from, to)
			heap.Push(pq, frontierEdge{edge: e, to: to, weight: weight(e)})
		}
		return nil
	}

	visited[root] = true
	if err := push(root); err != nil {
		return nil, 0, err
	}
	for pq.Len() > 0 && len(mst) < n-1 {
		fe := heap.Pop(pq).(frontierEdge)
		if visited[fe.to] {
			continue
		}
		visited[fe.to] = true
		mst = append(mst, fe.edge)
		total += fe.weight
		if err := push(fe.to); err != nil {
			return nil, 0, err
		}
	}
	if len(mst) < n-1 {
		return nil, 0, ErrDisconnected
	}

	return newTree(units, mst), total, nil
}

// frontierEdge is a heap entry: an edge leading to the unvisited unit to.
type frontierEdge struct {
	edge   core.Edge
	to     int
	weight float64
}

// edgePQ implements heap.Interface as a min-heap by weight, then edge ID.
type edgePQ []frontierEdge

func (pq edgePQ) Len() int { return len(pq) }

func (pq edgePQ) Less(i, j int) bool {
	if pq[i].weight != pq[j].weight {
		return pq[i].weight < pq[j].weight
	}
	return pq[i].edge.ID < pq[j].edge.ID
}

func (pq edgePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(frontierEdge)) }

func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
