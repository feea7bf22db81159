package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvdistrict/core"
)

// builderConfig is the resolved option set shared by all constructors.
type builderConfig struct {
	// firstID is the unit ID of the first unit of the first constructor.
	firstID int

	// rng is required only by random populations.
	rng *rand.Rand

	// popFn maps a zero-based unit index to its population.
	popFn func(i int) float64

	// randomPop draws populations uniformly from [popMin, popMax] instead.
	randomPop      bool
	popMin, popMax int
}

const (
	defaultPopulation = 1.0

	// cellArea and cellPerimeter describe a unit square.
	cellArea      = 1.0
	cellPerimeter = 4.0
)

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		popFn: func(int) float64 { return defaultPopulation },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// addCells inserts n unit-square cells after the units already in g and
// returns their IDs in order. Units keep consecutive IDs across composed
// constructors.
func addCells(g *core.Graph, cfg builderConfig, method string, n int) ([]int, error) {
	base := g.UnitCount()
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		idx := base + i
		pop, err := cfg.population(idx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		u := core.Unit{ID: cfg.firstID + idx, Population: pop, Area: cellArea, Perimeter: cellPerimeter}
		if err = g.AddUnit(u); err != nil {
			return nil, fmt.Errorf("%s: AddUnit(%d): %w: %w", method, u.ID, ErrConstructFailed, err)
		}
		ids[i] = u.ID
	}

	return ids, nil
}

func (cfg builderConfig) population(idx int) (float64, error) {
	if !cfg.randomPop {
		return cfg.popFn(idx), nil
	}
	if cfg.rng == nil {
		return 0, ErrNeedRandSource
	}

	return float64(cfg.popMin + cfg.rng.Intn(cfg.popMax-cfg.popMin+1)), nil
}

func addEdge(g *core.Graph, method string, u, v int) error {
	if _, err := g.AddEdge(u, v); err != nil {
		return fmt.Errorf("%s: AddEdge(%d-%d): %w: %w", method, u, v, ErrConstructFailed, err)
	}

	return nil
}
