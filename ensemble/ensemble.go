// Package ensemble stores the plans visited by a Markov chain and selects
// the most typical and compact one.
package ensemble

import (
	"github.com/katalvlaran/lvdistrict/partition"
)

// Ensemble is the append-only trajectory of a chain run. It remembers the
// initial plan separately: a run of zero steps has an empty ensemble whose
// best plan is the initial one.
//
// An Ensemble is owned by one writer (the chain driver); readers must not
// run concurrently with Append.
type Ensemble struct {
	initial     *partition.Partition
	plans       []*partition.Partition
	compactness []float64
}

// New returns an empty ensemble for a chain starting at initial.
func New(initial *partition.Partition) *Ensemble {
	return &Ensemble{initial: initial}
}

// Append adds p and returns its mean Polsby-Popper score.
func (e *Ensemble) Append(p *partition.Partition) float64 {
	c := MeanPolsbyPopper(p)
	e.plans = append(e.plans, p)
	e.compactness = append(e.compactness, c)

	return c
}

// Initial returns the plan the chain started from.
func (e *Ensemble) Initial() *partition.Partition { return e.initial }

// Len returns the number of appended plans.
func (e *Ensemble) Len() int { return len(e.plans) }

// At returns the i-th appended plan.
func (e *Ensemble) At(i int) *partition.Partition { return e.plans[i] }

// Compactness returns the mean Polsby-Popper score of the i-th plan.
func (e *Ensemble) Compactness(i int) float64 { return e.compactness[i] }

// CompactnessScores returns a copy of the per-plan compactness scores.
func (e *Ensemble) CompactnessScores() []float64 {
	out := make([]float64, len(e.compactness))
	copy(out, e.compactness)

	return out
}

// MeanCompactness returns the ensemble-wide mean of the per-plan scores,
// or 0 for an empty ensemble.
func (e *Ensemble) MeanCompactness() float64 {
	if len(e.compactness) == 0 {
		return 0
	}
	var sum float64
	for _, c := range e.compactness {
		sum += c
	}

	return sum / float64(len(e.compactness))
}
