package tree

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvdistrict/bfs"
	"github.com/katalvlaran/lvdistrict/dfs"
	"github.com/katalvlaran/lvdistrict/spanning"
)

// Cut is a spanning-tree edge whose removal leaves two balanced sides.
// With the tree rooted at its smallest unit, Child is the endpoint farther
// from the root; its subtree is the "left" side.
type Cut struct {
	Child, Parent int

	// Population is the population of Child's subtree.
	Population float64

	// Districts is the number of districts the subtree side will hold.
	Districts int
}

// within reports |x - target| <= eps*target.
func within(x, target, eps float64) bool {
	return math.Abs(x-target) <= eps*target
}

// BalancedCuts returns every edge of t whose removal splits it into a side of
// k1 districts and a side of k-k1 districts, 1 <= k1 < k, each within eps of
// target*k1 and target*(k-k1) respectively and each holding at least as many
// units as districts. For each edge the smallest qualifying k1 is used.
// Cuts are ordered by Child.
//
// pop returns the population of a unit. Complexity: O(U*k).
func BalancedCuts(t *spanning.Tree, pop func(id int) float64, target float64, k int, eps float64) ([]Cut, error) {
	if t == nil || t.UnitCount() == 0 {
		return nil, spanning.ErrDisconnected
	}
	if k < 2 {
		return nil, nil
	}
	r, err := root(t, pop)
	if err != nil {
		return nil, err
	}
	res, sum, size := r.res, r.sum, r.size
	total, n := r.total, r.n

	var cuts []Cut
	for _, id := range res.Order {
		parent, ok := res.Parent[id]
		if !ok {
			continue
		}
		for k1 := 1; k1 < k; k1++ {
			k2 := k - k1
			if size[id] < k1 || n-size[id] < k2 {
				continue
			}
			if within(sum[id], target*float64(k1), eps) && within(total-sum[id], target*float64(k2), eps) {
				cuts = append(cuts, Cut{Child: id, Parent: parent, Population: sum[id], Districts: k1})
				break
			}
		}
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].Child < cuts[j].Child })

	return cuts, nil
}

// DistrictCuts returns every edge of t whose removal leaves one side, the
// district, with a population in [lo, hi] and the other side with at least
// rest units for the districts still to be drawn. Districts is 1 when the
// district is Child's subtree and rest when it is the other side; a cut
// where both sides qualify takes the subtree. Cuts are ordered by Child.
//
// Complexity: O(U).
func DistrictCuts(t *spanning.Tree, pop func(id int) float64, lo, hi float64, rest int) ([]Cut, error) {
	if t == nil || t.UnitCount() == 0 {
		return nil, spanning.ErrDisconnected
	}
	r, err := root(t, pop)
	if err != nil {
		return nil, err
	}
	inRange := func(x float64) bool { return lo <= x && x <= hi }

	var cuts []Cut
	for _, id := range r.res.Order {
		parent, ok := r.res.Parent[id]
		if !ok {
			continue
		}
		sub, size := r.sum[id], r.size[id]
		switch {
		case inRange(sub) && r.n-size >= rest:
			cuts = append(cuts, Cut{Child: id, Parent: parent, Population: sub, Districts: 1})
		case inRange(r.total-sub) && size >= rest:
			cuts = append(cuts, Cut{Child: id, Parent: parent, Population: sub, Districts: rest})
		}
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].Child < cuts[j].Child })

	return cuts, nil
}

// rooted is a spanning tree rooted at its smallest unit with subtree
// population sums and unit counts.
type rooted struct {
	res   *dfs.Result
	sum   map[int]float64
	size  map[int]int
	total float64
	n     int
}

func root(t *spanning.Tree, pop func(id int) float64) (*rooted, error) {
	top := t.Units()[0]
	res, err := dfs.DFS(t, top)
	if err != nil {
		return nil, fmt.Errorf("tree: rooting spanning tree: %w", err)
	}
	r := &rooted{
		res:  res,
		sum:  make(map[int]float64, len(res.Order)),
		size: make(map[int]int, len(res.Order)),
	}
	for _, id := range res.Order {
		r.sum[id] += pop(id)
		r.size[id]++
		if p, ok := res.Parent[id]; ok {
			r.sum[p] += r.sum[id]
			r.size[p] += r.size[id]
		}
	}
	r.total, r.n = r.sum[top], r.size[top]

	return r, nil
}

// Sides returns the units of c.Child's subtree and the remaining units,
// both ascending.
func Sides(t *spanning.Tree, c Cut) (left, right []int, err error) {
	res, err := bfs.BFS(t, c.Child, bfs.WithFilterNeighbor(func(curr, nbr int) bool {
		return !(curr == c.Child && nbr == c.Parent)
	}))
	if err != nil {
		return nil, nil, fmt.Errorf("tree: collecting cut side: %w", err)
	}
	for _, id := range t.Units() {
		if res.Visited(id) {
			left = append(left, id)
		} else {
			right = append(right, id)
		}
	}

	return left, right, nil
}
