package bfs

import "sort"

// Components returns the connected components of g. Each component lists
// its units in ascending order; components are ordered by their smallest
// unit ID.
func Components(g Lister, opts ...Option) ([][]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	seen := make(map[int]bool, g.UnitCount())
	var comps [][]int
	for _, id := range g.Units() {
		if seen[id] {
			continue
		}
		res, err := BFS(g, id, opts...)
		if err != nil {
			return nil, err
		}
		comp := make([]int, 0, len(res.Order))
		for _, u := range res.Order {
			seen[u] = true
			comp = append(comp, u)
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}

	return comps, nil
}

// IsConnected reports whether every unit of g is reachable from every other.
// An empty graph is not connected.
func IsConnected(g Lister) (bool, error) {
	if g == nil {
		return false, ErrGraphNil
	}
	units := g.Units()
	if len(units) == 0 {
		return false, nil
	}
	res, err := BFS(g, units[0])
	if err != nil {
		return false, err
	}

	return len(res.Order) == len(units), nil
}

// SetConnected reports whether the units in set induce a connected subgraph
// of g. An empty set is not connected.
func SetConnected(g Graph, set []int) (bool, error) {
	if len(set) == 0 {
		return false, nil
	}
	member := make(map[int]bool, len(set))
	for _, id := range set {
		member[id] = true
	}
	res, err := BFS(g, set[0], WithinSet(func(id int) bool { return member[id] }))
	if err != nil {
		return false, err
	}

	return len(res.Order) == len(member), nil
}
