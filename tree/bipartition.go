package tree

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvdistrict/core"
	"github.com/katalvlaran/lvdistrict/spanning"
)

// FindSplit draws one spanning tree of g from seed and, if it has balanced
// cuts (see BalancedCuts), picks one of them uniformly. It is a pure
// function of its arguments. Returns ErrNoBalancedCut when the tree has
// no qualifying edge.
func FindSplit(g *core.Graph, seed int64, target float64, k int, eps float64, method spanning.Method) (*Split, error) {
	rng := rand.New(rand.NewSource(seed))
	t, err := spanning.Sample(g, rng.Int63(), method)
	if err != nil {
		return nil, fmt.Errorf("tree: sampling spanning tree: %w", err)
	}
	cuts, err := BalancedCuts(t, g.Population, target, k, eps)
	if err != nil {
		return nil, err
	}
	if len(cuts) == 0 {
		return nil, ErrNoBalancedCut
	}
	c := cuts[rng.Intn(len(cuts))]
	left, right, err := Sides(t, c)
	if err != nil {
		return nil, err
	}

	return &Split{Left: left, LeftDistricts: c.Districts, Right: right, RightDistricts: k - c.Districts}, nil
}

// Bipartition splits g into two balanced sides for k >= 2 districts,
// drawing up to MaxAttempts spanning trees with seeds taken from rng.
// Returns ErrNoBalancedCut when the budget is exhausted and ctx.Err() when
// cancelled between attempts.
func Bipartition(ctx context.Context, g *core.Graph, target float64, k int, eps float64, rng *rand.Rand, opts ...Option) (*Split, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	if k < 2 {
		return nil, fmt.Errorf("%w: bipartition needs k >= 2, got %d", ErrDistrictCount, k)
	}

	for attempt := 0; attempt < o.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		split, err := FindSplit(g, rng.Int63(), target, k, eps, o.Method)
		if err == nil {
			return split, nil
		}
		if !errors.Is(err, ErrNoBalancedCut) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %d spanning trees over %d units, k=%d, target=%g, eps=%g",
		ErrNoBalancedCut, o.MaxAttempts, g.UnitCount(), k, target, eps)
}

// FindDistrict draws one spanning tree of g from seed and cuts off a single
// district with population in [lo, hi], leaving at least rest units behind
// (see DistrictCuts). The qualifying cut is picked uniformly. It returns
// the district, the remaining units and the district population. Returns
// ErrNoBalancedCut when the tree has no qualifying edge.
func FindDistrict(g *core.Graph, seed int64, lo, hi float64, rest int, method spanning.Method) (district, remainder []int, pop float64, err error) {
	rng := rand.New(rand.NewSource(seed))
	t, err := spanning.Sample(g, rng.Int63(), method)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("tree: sampling spanning tree: %w", err)
	}
	cuts, err := DistrictCuts(t, g.Population, lo, hi, rest)
	if err != nil {
		return nil, nil, 0, err
	}
	if len(cuts) == 0 {
		return nil, nil, 0, ErrNoBalancedCut
	}
	c := cuts[rng.Intn(len(cuts))]
	left, right, err := Sides(t, c)
	if err != nil {
		return nil, nil, 0, err
	}
	if c.Districts == 1 && lo <= c.Population && c.Population <= hi && len(right) >= rest {
		return left, right, c.Population, nil
	}
	for _, id := range right {
		pop += g.Population(id)
	}

	return right, left, pop, nil
}

// CarveDistrict is FindDistrict with seeds taken from rng, up to MaxAttempts
// spanning trees. Returns ErrNoBalancedCut when the budget is exhausted and
// ctx.Err() when cancelled between attempts.
func CarveDistrict(ctx context.Context, g *core.Graph, lo, hi float64, rest int, rng *rand.Rand, opts ...Option) (district, remainder []int, pop float64, err error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, nil, 0, err
	}
	if g == nil {
		return nil, nil, 0, ErrNilGraph
	}

	return carve(ctx, g, lo, hi, rest, rng, o)
}

func carve(ctx context.Context, g *core.Graph, lo, hi float64, rest int, rng *rand.Rand, o Options) ([]int, []int, float64, error) {
	for attempt := 0; attempt < o.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, nil, 0, ctx.Err()
		default:
		}
		district, remainder, pop, err := FindDistrict(g, rng.Int63(), lo, hi, rest, o.Method)
		if err == nil {
			return district, remainder, pop, nil
		}
		if !errors.Is(err, ErrNoBalancedCut) {
			return nil, nil, 0, err
		}
	}

	return nil, nil, 0, fmt.Errorf("%w: %d spanning trees over %d units, %d districts left, population in [%g, %g]",
		ErrNoBalancedCut, o.MaxAttempts, g.UnitCount(), rest+1, lo, hi)
}
