package builder

import (
	"math/rand"
)

// BuilderOption configures builderConfig. Invalid arguments panic at option
// construction time.
type BuilderOption func(*builderConfig)

// WithRand sets the random source used by stochastic options.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed sets a deterministic random source.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithFirstID offsets all unit IDs so the first unit gets id.
func WithFirstID(id int) BuilderOption {
	return func(c *builderConfig) {
		c.firstID = id
	}
}

// WithUniformPopulation gives every unit population p.
func WithUniformPopulation(p float64) BuilderOption {
	if p < 0 {
		panic("builder: WithUniformPopulation(p<0)")
	}
	return func(c *builderConfig) {
		c.randomPop = false
		c.popFn = func(int) float64 { return p }
	}
}

// WithPopulationFn sets the population of the i-th unit (zero-based, in
// construction order) to fn(i).
func WithPopulationFn(fn func(i int) float64) BuilderOption {
	if fn == nil {
		panic("builder: WithPopulationFn(nil)")
	}
	return func(c *builderConfig) {
		c.randomPop = false
		c.popFn = fn
	}
}

// WithRandomPopulation draws integer populations uniformly from [min, max].
// Requires WithSeed or WithRand.
func WithRandomPopulation(min, max int) BuilderOption {
	if min < 0 || max < min {
		panic("builder: WithRandomPopulation requires 0 <= min <= max")
	}
	return func(c *builderConfig) {
		c.randomPop = true
		c.popMin, c.popMax = min, max
	}
}
