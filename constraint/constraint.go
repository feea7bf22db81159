// Package constraint provides plan validators: the population deviation
// bound every chain state must satisfy, plus contiguity and composition.
package constraint

import (
	"math"

	"github.com/katalvlaran/lvdistrict/partition"
)

// Validator reports whether a partition is admissible.
type Validator func(p *partition.Partition) bool

// Accepts reports whether every district population lies within
// epsilon*ideal of ideal: |pop_d - ideal| <= epsilon*ideal for all d.
func Accepts(p *partition.Partition, ideal, epsilon float64) bool {
	bound := epsilon * ideal
	t := p.Tally()
	for d := 0; d < t.NumDistricts(); d++ {
		if math.Abs(t.Population(d)-ideal) > bound {
			return false
		}
	}

	return true
}

// WithinPercentOfIdeal returns a Validator for Accepts(p, ideal, epsilon).
func WithinPercentOfIdeal(ideal, epsilon float64) Validator {
	return func(p *partition.Partition) bool {
		return Accepts(p, ideal, epsilon)
	}
}

// WithinPercentOfIdealFrom derives the ideal from initial (its total
// population over its district count) and bounds deviation from it.
func WithinPercentOfIdealFrom(initial *partition.Partition, epsilon float64) Validator {
	return WithinPercentOfIdeal(Ideal(initial), epsilon)
}

// Ideal returns total population / number of districts of p.
func Ideal(p *partition.Partition) float64 {
	var total float64
	for _, pop := range p.Tally().Populations() {
		total += pop
	}

	return total / float64(p.NumDistricts())
}

// Contiguous accepts partitions whose districts are all connected.
func Contiguous(p *partition.Partition) bool {
	ok, err := p.IsContiguous()

	return err == nil && ok
}

// All accepts a partition only if every validator does. Validators run in
// order and stop at the first rejection.
func All(vs ...Validator) Validator {
	return func(p *partition.Partition) bool {
		for _, v := range vs {
			if v != nil && !v(p) {
				return false
			}
		}
		return true
	}
}

// MaxDeviation returns max_d |pop_d - ideal| / ideal, the smallest epsilon
// for which Accepts(p, ideal, epsilon) holds.
func MaxDeviation(p *partition.Partition, ideal float64) float64 {
	if ideal == 0 {
		return 0
	}
	t := p.Tally()
	var worst float64
	for d := 0; d < t.NumDistricts(); d++ {
		if dev := math.Abs(t.Population(d)-ideal) / ideal; dev > worst {
			worst = dev
		}
	}

	return worst
}
