// Package partition implements immutable district plans over a core.Graph
// together with their derived tallies.
package partition

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvdistrict/bfs"
	"github.com/katalvlaran/lvdistrict/core"
)

// Sentinel errors for partition construction.
var (
	// ErrNilGraph indicates a nil graph.
	ErrNilGraph = errors.New("partition: graph is nil")

	// ErrDistrictCount indicates a district count < 1.
	ErrDistrictCount = errors.New("partition: number of districts must be >= 1")

	// ErrDomainMismatch indicates an assignment that does not cover the
	// graph's units exactly.
	ErrDomainMismatch = errors.New("partition: assignment domain differs from graph units")

	// ErrDistrictOutOfRange indicates a district id outside [0, k).
	ErrDistrictOutOfRange = errors.New("partition: district id out of range")

	// ErrEmptyDistrict indicates a district with no units.
	ErrEmptyDistrict = errors.New("partition: empty district")
)

// frame is the part of a Partition that never changes along a chain: the
// graph and its unit/edge enumerations. Partitions derived with Flip share it.
type frame struct {
	graph *core.Graph
	units []core.Unit // ascending by ID
	index map[int]int // unit ID -> position in units
	edges []core.Edge // ascending by ID
	k     int
}

// Partition is an immutable assignment of every unit of a graph to one of
// NumDistricts districts, with its Tally computed at construction.
// Partitions are safe for concurrent reads.
type Partition struct {
	f      *frame
	assign []int // position -> district
	tally  *Tally
}

// New builds a Partition of g into k districts from assignment, which must
// map every unit of g, and nothing else, to a district in [0, k). Every
// district must be non-empty.
func New(g *core.Graph, assignment map[int]int, k int) (*Partition, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrDistrictCount, k)
	}

	ids := g.Units()
	f := &frame{
		graph: g,
		units: make([]core.Unit, len(ids)),
		index: make(map[int]int, len(ids)),
		edges: g.Edges(),
		k:     k,
	}
	for i, id := range ids {
		u, err := g.Unit(id)
		if err != nil {
			return nil, err
		}
		f.units[i] = u
		f.index[id] = i
	}

	if len(assignment) != len(ids) {
		return nil, fmt.Errorf("%w: %d assigned, %d units", ErrDomainMismatch, len(assignment), len(ids))
	}
	assign := make([]int, len(ids))
	for id, d := range assignment {
		i, ok := f.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: unit %d not in graph", ErrDomainMismatch, id)
		}
		if d < 0 || d >= k {
			return nil, fmt.Errorf("%w: unit %d -> %d (k=%d)", ErrDistrictOutOfRange, id, d, k)
		}
		assign[i] = d
	}

	return newPartition(f, assign)
}

func newPartition(f *frame, assign []int) (*Partition, error) {
	t := computeTally(f, assign)
	for d := 0; d < f.k; d++ {
		if len(t.members[d]) == 0 {
			return nil, fmt.Errorf("%w: %d", ErrEmptyDistrict, d)
		}
	}

	return &Partition{f: f, assign: assign, tally: t}, nil
}

// Flip returns a new Partition equal to p except that each unit in changes
// moves to the given district. p is not modified.
func (p *Partition) Flip(changes map[int]int) (*Partition, error) {
	assign := make([]int, len(p.assign))
	copy(assign, p.assign)
	for id, d := range changes {
		i, ok := p.f.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: unit %d not in graph", ErrDomainMismatch, id)
		}
		if d < 0 || d >= p.f.k {
			return nil, fmt.Errorf("%w: unit %d -> %d (k=%d)", ErrDistrictOutOfRange, id, d, p.f.k)
		}
		assign[i] = d
	}

	return newPartition(p.f, assign)
}

// Graph returns the underlying graph.
func (p *Partition) Graph() *core.Graph { return p.f.graph }

// NumDistricts returns k.
func (p *Partition) NumDistricts() int { return p.f.k }

// Tally returns the derived aggregates of p.
func (p *Partition) Tally() *Tally { return p.tally }

// District returns the district of unit id.
func (p *Partition) District(id int) (int, bool) {
	i, ok := p.f.index[id]
	if !ok {
		return 0, false
	}

	return p.assign[i], true
}

// Assignment returns a copy of the unit -> district map.
func (p *Partition) Assignment() map[int]int {
	out := make(map[int]int, len(p.assign))
	for i, u := range p.f.units {
		out[u.ID] = p.assign[i]
	}

	return out
}

// EachAssignment calls fn for every unit in ascending ID order.
func (p *Partition) EachAssignment(fn func(unit, district int)) {
	for i, u := range p.f.units {
		fn(u.ID, p.assign[i])
	}
}

// DistrictPairs returns every unordered pair {a, b}, a < b, of districts
// joined by at least one cut edge, sorted ascending.
func (p *Partition) DistrictPairs() [][2]int {
	seen := make(map[[2]int]bool)
	var pairs [][2]int
	for _, e := range p.tally.cut {
		a, _ := p.District(e.From)
		b, _ := p.District(e.To)
		if a > b {
			a, b = b, a
		}
		key := [2]int{a, b}
		if !seen[key] {
			seen[key] = true
			pairs = append(pairs, key)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	return pairs
}

// IsContiguous reports whether every district induces a connected subgraph.
func (p *Partition) IsContiguous() (bool, error) {
	for d := 0; d < p.f.k; d++ {
		ok, err := p.DistrictConnected(d)
		if err != nil || !ok {
			return false, err
		}
	}

	return true, nil
}

// DistrictConnected reports whether district d induces a connected subgraph.
func (p *Partition) DistrictConnected(d int) (bool, error) {
	if d < 0 || d >= p.f.k {
		return false, fmt.Errorf("%w: %d", ErrDistrictOutOfRange, d)
	}

	return bfs.SetConnected(p.f.graph, p.tally.members[d])
}
