package ensemble

import (
	"errors"

	"github.com/katalvlaran/lvdistrict/partition"
)

// ErrEmptyEnsemble indicates a modal assignment of an ensemble with no plans.
var ErrEmptyEnsemble = errors.New("ensemble: no plans")

// ModalAssignment returns, for every unit, the district it was assigned to
// most often across the ensemble. Ties go to the smallest district id.
func ModalAssignment(e *Ensemble) (map[int]int, error) {
	if e.Len() == 0 {
		return nil, ErrEmptyEnsemble
	}
	k := e.initial.NumDistricts()
	units := make([]int, 0)
	e.plans[0].EachAssignment(func(unit, _ int) { units = append(units, unit) })

	// counts[i*k+d] = times unit i (ascending position) was in district d
	counts := make([]int, len(units)*k)
	for _, p := range e.plans {
		i := 0
		p.EachAssignment(func(_, d int) {
			counts[i*k+d]++
			i++
		})
	}

	modal := make(map[int]int, len(units))
	for i, id := range units {
		best := 0
		for d := 1; d < k; d++ {
			if counts[i*k+d] > counts[i*k+best] {
				best = d
			}
		}
		modal[id] = best
	}

	return modal, nil
}

// Selection is the outcome of SelectBest.
type Selection struct {
	// Partition is the selected plan.
	Partition *partition.Partition

	// Index is its position in the ensemble, or -1 for the initial plan of
	// an empty ensemble.
	Index int

	// Score, Deviation and Compactness describe the selected plan:
	// Score = Deviation + (1 - Compactness).
	Score       float64
	Deviation   float64
	Compactness float64

	// Modal is the per-unit modal assignment (nil for an empty ensemble).
	Modal map[int]int

	// Scores holds the score of every ensemble member.
	Scores []float64
}

// SelectBest scores every member of e against the modal assignment and
// returns the one with the lowest score. For a member,
//
//	deviation = population of units assigned differently from their modal
//	            district / totalPopulation
//	score     = deviation + (1 - mean Polsby-Popper)
//
// Ties go to the earliest member. A non-positive totalPopulation makes every
// deviation 0. An empty ensemble selects the initial plan.
//
// SelectBest does not modify e; scoring the same ensemble twice selects the
// same plan.
func SelectBest(e *Ensemble, totalPopulation float64) (*Selection, error) {
	if e.Len() == 0 {
		c := MeanPolsbyPopper(e.initial)
		return &Selection{
			Partition:   e.initial,
			Index:       -1,
			Score:       1 - c,
			Compactness: c,
		}, nil
	}

	modal, err := ModalAssignment(e)
	if err != nil {
		return nil, err
	}
	g := e.initial.Graph()

	sel := &Selection{Index: -1, Modal: modal, Scores: make([]float64, e.Len())}
	for i, p := range e.plans {
		var off float64
		p.EachAssignment(func(unit, d int) {
			if modal[unit] != d {
				off += g.Population(unit)
			}
		})
		dev := 0.0
		if totalPopulation > 0 {
			dev = off / totalPopulation
		}
		score := dev + (1 - e.compactness[i])
		sel.Scores[i] = score
		if sel.Index < 0 || score < sel.Score {
			sel.Partition = p
			sel.Index = i
			sel.Score = score
			sel.Deviation = dev
			sel.Compactness = e.compactness[i]
		}
	}

	return sel, nil
}
