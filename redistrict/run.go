package redistrict

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvdistrict/bfs"
	"github.com/katalvlaran/lvdistrict/chain"
	"github.com/katalvlaran/lvdistrict/constraint"
	"github.com/katalvlaran/lvdistrict/core"
	"github.com/katalvlaran/lvdistrict/ensemble"
	"github.com/katalvlaran/lvdistrict/partition"
	"github.com/katalvlaran/lvdistrict/proposal"
	"github.com/katalvlaran/lvdistrict/telemetry"
	"github.com/katalvlaran/lvdistrict/tree"
)

// Result is the outcome of Run.
type Result struct {
	// Best is the selected plan.
	Best *partition.Partition

	// Initial is the plan the chain started from.
	Initial *partition.Partition

	// Ensemble holds every chain state, one per step.
	Ensemble *ensemble.Ensemble

	// Selection carries the scores behind Best.
	Selection *ensemble.Selection

	// Steps are the per-step diagnostics.
	Steps []chain.Step

	IdealPopulation float64
	TotalPopulation float64
}

type runOptions struct {
	logger  *zap.Logger
	metrics *telemetry.ChainMetrics
	onStep  func(chain.Step) error
}

// Option configures Run.
type Option func(*runOptions)

// WithLogger sets the run logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *runOptions) { o.logger = l }
}

// WithMetrics records chain metrics into m.
func WithMetrics(m *telemetry.ChainMetrics) Option {
	return func(o *runOptions) { o.metrics = m }
}

// WithOnStep registers a per-step callback, see chain.WithOnStep.
func WithOnStep(fn func(chain.Step) error) Option {
	return func(o *runOptions) { o.onStep = fn }
}

// Run partitions g into params.NumDistricts districts, runs the chain for
// params.TotalSteps steps and selects the best plan.
//
// A single district assigns every unit to district 0 and runs no steps.
// Fatal errors wrap ErrConfiguration or ErrDisconnectedGraph together with
// their cause. A cancelled ctx aborts with ctx.Err().
func Run(ctx context.Context, g *core.Graph, params Params, opts ...Option) (*Result, error) {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}
	log := telemetry.OrNop(ro.logger)

	params, err := params.normalize()
	if err != nil {
		return nil, err
	}
	if g == nil || g.UnitCount() == 0 {
		return nil, fmt.Errorf("%w: empty graph", ErrConfiguration)
	}
	connected, err := bfs.IsConnected(g)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrDisconnectedGraph
	}

	k := params.NumDistricts
	total := g.TotalPopulation()
	if k > 1 && total <= 0 {
		return nil, fmt.Errorf("%w: zero total population for %d districts", ErrConfiguration, k)
	}
	ideal := total / float64(k)
	log.Info("starting run",
		zap.Int("units", g.UnitCount()),
		zap.Int("districts", k),
		zap.Float64("ideal_population", ideal),
		zap.Int("steps", params.TotalSteps),
		zap.Float64("epsilon", params.Epsilon),
	)

	rng := rand.New(rand.NewSource(params.Seed))
	t0 := time.Now()
	initial, err := initialPlan(ctx, g, params, ideal, rng)
	if err != nil {
		return nil, err
	}
	ro.metrics.ObserveInitial(time.Since(t0))
	log.Debug("initial plan built", zap.Duration("elapsed", time.Since(t0)))
	res := &Result{Initial: initial, IdealPopulation: ideal, TotalPopulation: total}

	if k == 1 {
		res.Ensemble = ensemble.New(initial)
	} else {
		t0 = time.Now()
		ens, steps, err := runChain(ctx, initial, params, ideal, rng.Int63(), ro, log)
		if err != nil {
			return nil, err
		}
		res.Ensemble, res.Steps = ens, steps
		log.Info("chain finished", zap.Int("states", ens.Len()), zap.Duration("elapsed", time.Since(t0)))
	}

	sel, err := ensemble.SelectBest(res.Ensemble, total)
	if err != nil {
		return nil, err
	}
	res.Selection, res.Best = sel, sel.Partition
	log.Info("selected plan",
		zap.Int("index", sel.Index),
		zap.Float64("score", sel.Score),
		zap.Float64("deviation", sel.Deviation),
		zap.Float64("compactness", sel.Compactness),
	)

	return res, nil
}

func initialPlan(ctx context.Context, g *core.Graph, params Params, ideal float64, rng *rand.Rand) (*partition.Partition, error) {
	k := params.NumDistricts
	if k == 1 {
		assign := make(map[int]int, g.UnitCount())
		for _, id := range g.Units() {
			assign[id] = 0
		}
		return partition.New(g, assign, 1)
	}

	assign, err := tree.RecursivePartition(ctx, g, k, ideal, params.PopulationTolerance, rng,
		tree.WithMaxAttempts(params.MaxAttempts),
		tree.WithMethod(params.TreeMethod),
	)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case errors.Is(err, tree.ErrDisconnected):
		return nil, fmt.Errorf("%w: %w", ErrDisconnectedGraph, err)
	default:
		return nil, fmt.Errorf("%w: initial plan: %w", ErrConfiguration, err)
	}

	p, err := partition.New(g, assign, k)
	if err != nil {
		return nil, fmt.Errorf("%w: initial plan: %w", ErrConfiguration, err)
	}

	return p, nil
}

func runChain(ctx context.Context, initial *partition.Partition, params Params, ideal float64, seed int64, ro runOptions, log *zap.Logger) (*ensemble.Ensemble, []chain.Step, error) {
	rc, err := proposal.NewReCom(ideal, params.Epsilon,
		proposal.WithNodeRepeats(params.NodeRepeats),
		proposal.WithParallelism(params.Parallelism),
		proposal.WithTreeMethod(params.TreeMethod),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	checks := []constraint.Validator{constraint.WithinPercentOfIdeal(ideal, params.Epsilon)}
	if params.CheckContiguity {
		checks = append(checks, constraint.Contiguous)
	}
	c, err := chain.New(initial, rc,
		chain.WithTotalSteps(params.TotalSteps),
		chain.WithSeed(seed),
		chain.WithConstraints(checks...),
		chain.WithLogger(log),
		chain.WithMetrics(ro.metrics),
		chain.WithOnStep(ro.onStep),
		chain.WithProgressEvery(params.ProgressEvery),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	ens, err := c.Run(ctx)
	if err != nil {
		return nil, nil, err
	}

	return ens, c.Steps(), nil
}
