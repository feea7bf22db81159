package tree

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvdistrict/bfs"
	"github.com/katalvlaran/lvdistrict/core"
)

// RecursivePartition assigns every unit of g to one of k districts,
// 0..k-1, carving them off one at a time. Each district is one side of a
// spanning-tree cut of the units still unassigned. Its population window
// starts at ideal*(1-tolerance)..ideal*(1+tolerance) and is narrowed by the
// running surplus of the districts already carved, so that the last
// district, the final remainder, lands inside the window too.
//
// A carve that finds no cut within MaxAttempts trees throws the partial plan
// away and starts over, up to Restarts times.
//
// Every district of the result is non-empty and connected, and the
// assignment covers every unit exactly once.
//
// Errors: ErrNilGraph, ErrDistrictCount, ErrTooFewUnits, ErrDisconnected,
// ErrZeroPopulation (k > 1 with nothing to balance), ErrNoBalancedCut
// (every restart exhausted its attempt budget), ErrOptionViolation,
// ctx.Err().
func RecursivePartition(ctx context.Context, g *core.Graph, k int, ideal, tolerance float64, rng *rand.Rand, opts ...Option) (map[int]int, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrDistrictCount, k)
	}
	if n := g.UnitCount(); n < k {
		return nil, fmt.Errorf("%w: %d units, %d districts", ErrTooFewUnits, n, k)
	}
	ok, err := bfs.IsConnected(g)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDisconnected
	}
	if k > 1 && (g.TotalPopulation() <= 0 || ideal <= 0) {
		return nil, ErrZeroPopulation
	}

	for restart := 0; ; restart++ {
		assign, err := carveAll(ctx, g, k, ideal, tolerance, rng, o)
		if err == nil {
			return assign, nil
		}
		if !errors.Is(err, ErrNoBalancedCut) || restart >= o.Restarts {
			if restart > 0 {
				err = fmt.Errorf("%w (after %d restarts)", err, restart)
			}
			return nil, err
		}
	}
}

// carveAll makes one pass of k-1 carves; the remainder is district k-1.
func carveAll(ctx context.Context, g *core.Graph, k int, ideal, tol float64, rng *rand.Rand, o Options) (map[int]int, error) {
	assign := make(map[int]int, g.UnitCount())
	left := g
	lo, hi := ideal*(1-tol), ideal*(1+tol)
	// surplus of the districts carved so far over ideal
	var debt float64
	for d := 0; d < k-1; d++ {
		district, remainder, pop, err := carve(ctx, left, max(lo, lo-debt), min(hi, hi-debt), k-d-1, rng, o)
		if err != nil {
			return nil, err
		}
		for _, id := range district {
			assign[id] = d
		}
		debt += pop - ideal
		left = core.InducedSubgraph(left, toSet(remainder))
	}
	for _, id := range left.Units() {
		assign[id] = k - 1
	}

	return assign, nil
}

func toSet(ids []int) map[int]bool {
	m := make(map[int]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}

	return m
}
