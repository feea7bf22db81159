package partition

import "github.com/katalvlaran/lvdistrict/core"

// Tally holds per-district sums and the cut-edge set of one Partition.
// It is read-only: accessors return scalars or copies.
//
// District sums are accumulated over member units in ascending ID order, so
// two partitions whose district d has the same members report bit-identical
// sums for d.
type Tally struct {
	population []float64
	area       []float64
	perimeter  []float64
	members    [][]int
	cut        []core.Edge
}

func computeTally(f *frame, assign []int) *Tally {
	t := &Tally{
		population: make([]float64, f.k),
		area:       make([]float64, f.k),
		perimeter:  make([]float64, f.k),
		members:    make([][]int, f.k),
	}
	for i, u := range f.units {
		d := assign[i]
		t.population[d] += u.Population
		t.area[d] += u.Area
		t.perimeter[d] += u.Perimeter
		t.members[d] = append(t.members[d], u.ID)
	}
	for _, e := range f.edges {
		if assign[f.index[e.From]] != assign[f.index[e.To]] {
			t.cut = append(t.cut, e)
		}
	}

	return t
}

// NumDistricts returns the number of districts tallied.
func (t *Tally) NumDistricts() int { return len(t.population) }

// Population returns the population of district d.
func (t *Tally) Population(d int) float64 { return t.population[d] }

// Area returns the summed unit area of district d.
func (t *Tally) Area(d int) float64 { return t.area[d] }

// Perimeter returns the summed unit perimeter of district d.
func (t *Tally) Perimeter(d int) float64 { return t.perimeter[d] }

// Populations returns a copy of all district populations.
func (t *Tally) Populations() []float64 { return cloneFloats(t.population) }

// Areas returns a copy of all district areas.
func (t *Tally) Areas() []float64 { return cloneFloats(t.area) }

// Perimeters returns a copy of all district perimeters.
func (t *Tally) Perimeters() []float64 { return cloneFloats(t.perimeter) }

// Members returns the units of district d in ascending order.
func (t *Tally) Members(d int) []int {
	out := make([]int, len(t.members[d]))
	copy(out, t.members[d])

	return out
}

// CutEdges returns the edges whose endpoints lie in different districts,
// in ascending edge-ID order.
func (t *Tally) CutEdges() []core.Edge {
	out := make([]core.Edge, len(t.cut))
	copy(out, t.cut)

	return out
}

// NumCutEdges returns the number of cut edges.
func (t *Tally) NumCutEdges() int { return len(t.cut) }

func cloneFloats(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	return out
}
