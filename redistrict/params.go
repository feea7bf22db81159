// Package redistrict wires the engine together: it builds a balanced
// initial plan, runs the ReCom chain and selects the representative plan
// of the resulting ensemble.
package redistrict

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvdistrict/chain"
	"github.com/katalvlaran/lvdistrict/spanning"
	"github.com/katalvlaran/lvdistrict/tree"
)

var (
	// ErrConfiguration is a fatal parameter or feasibility error: district
	// count below one, no population to balance, or an initial balance that
	// cannot be reached within the attempt budget.
	ErrConfiguration = errors.New("redistrict: configuration error")

	// ErrDisconnectedGraph indicates that the input graph is not connected.
	ErrDisconnectedGraph = errors.New("redistrict: graph is disconnected")
)

// DefaultPopulationTolerance is the initial-plan balance tolerance set by
// DefaultParams.
const DefaultPopulationTolerance = 0.02

// Params are the engine inputs.
type Params struct {
	// NumDistricts is the number of districts, at least 1.
	NumDistricts int

	// TotalSteps is the exact number of chain steps.
	TotalSteps int

	// Epsilon bounds every chain state: |pop_d - ideal| <= Epsilon*ideal.
	Epsilon float64

	// PopulationTolerance bounds the initial plan. It is capped at Epsilon
	// so the initial plan always satisfies the chain constraint. Zero asks
	// for exact balance; DefaultParams sets DefaultPopulationTolerance.
	PopulationTolerance float64

	// NodeRepeats is the number of spanning trees drawn per proposal.
	NodeRepeats int

	// Parallelism is the number of trees sampled concurrently per proposal.
	Parallelism int

	// MaxAttempts is the spanning-tree budget per district of the initial plan.
	MaxAttempts int

	// TreeMethod selects the spanning-tree sampler.
	TreeMethod spanning.Method

	// Seed makes the run reproducible.
	Seed int64

	// CheckContiguity adds district contiguity to the chain constraints.
	CheckContiguity bool

	// ProgressEvery is the chain progress logging interval in steps; 0
	// disables progress logs.
	ProgressEvery int
}

// DefaultParams returns two districts, 1000 steps and a 5% bound.
func DefaultParams() Params {
	return Params{
		NumDistricts:        2,
		TotalSteps:          1000,
		Epsilon:             0.05,
		PopulationTolerance: DefaultPopulationTolerance,
		NodeRepeats:         1,
		Parallelism:         1,
		MaxAttempts:         tree.DefaultMaxAttempts,
		TreeMethod:          spanning.MethodKruskal,
		ProgressEvery:       chain.DefaultProgressEvery,
	}
}

// normalize fills zero counts with defaults and validates p. Tolerances
// are taken as given.
func (p Params) normalize() (Params, error) {
	if p.NumDistricts < 1 {
		return p, fmt.Errorf("%w: num_districts %d < 1", ErrConfiguration, p.NumDistricts)
	}
	if p.TotalSteps < 0 {
		return p, fmt.Errorf("%w: total_steps %d < 0", ErrConfiguration, p.TotalSteps)
	}
	if p.Epsilon < 0 || p.Epsilon >= 1 {
		return p, fmt.Errorf("%w: epsilon %v outside [0, 1)", ErrConfiguration, p.Epsilon)
	}
	if p.PopulationTolerance < 0 {
		return p, fmt.Errorf("%w: population tolerance %v < 0", ErrConfiguration, p.PopulationTolerance)
	}
	p.PopulationTolerance = min(p.PopulationTolerance, p.Epsilon)
	if p.NodeRepeats == 0 {
		p.NodeRepeats = 1
	}
	if p.Parallelism == 0 {
		p.Parallelism = 1
	}
	if p.MaxAttempts == 0 {
		p.MaxAttempts = tree.DefaultMaxAttempts
	}
	m, err := spanning.ParseMethod(string(p.TreeMethod))
	if err != nil {
		return p, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	p.TreeMethod = m

	return p, nil
}
