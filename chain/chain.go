package chain

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvdistrict/constraint"
	"github.com/katalvlaran/lvdistrict/ensemble"
	"github.com/katalvlaran/lvdistrict/partition"
	"github.com/katalvlaran/lvdistrict/telemetry"
)

// Chain is a single-use Markov chain over partitions.
//
// Run may be called once. State and Steps are safe to call concurrently
// with Run.
type Chain struct {
	opts     Options
	check    constraint.Validator
	proposer Proposer
	rng      *rand.Rand
	logger   *zap.Logger

	mu      sync.RWMutex
	state   State
	current *partition.Partition
	steps   []Step
}

// New validates initial against the constraints and returns a chain in
// the Initializing state.
func New(initial *partition.Partition, proposer Proposer, opts ...Option) (*Chain, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if initial == nil || proposer == nil {
		return nil, fmt.Errorf("%w: nil initial plan or proposer", ErrOptionViolation)
	}
	check := constraint.All(o.Constraints...)
	if !check(initial) {
		return nil, ErrInitialStateInvalid
	}

	return &Chain{
		opts:     o,
		check:    check,
		proposer: proposer,
		rng:      rand.New(rand.NewSource(o.Seed)),
		logger:   telemetry.OrNop(o.Logger),
		current:  initial,
	}, nil
}

// State returns the current lifecycle phase.
func (c *Chain) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// Current returns the plan the chain is at.
func (c *Chain) Current() *partition.Partition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

// Steps returns a copy of the step records so far.
func (c *Chain) Steps() []Step {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Step, len(c.steps))
	copy(out, c.steps)

	return out
}

// Run performs exactly TotalSteps steps and returns the ensemble of visited
// states, one per step. Each step proposes a candidate; a found candidate
// that passes every constraint becomes the current plan. The current plan
// is appended whatever the outcome.
//
// ctx is checked before every step. On cancellation Run returns the partial
// ensemble together with ctx.Err().
func (c *Chain) Run(ctx context.Context) (*ensemble.Ensemble, error) {
	c.mu.Lock()
	if c.state != Initializing {
		c.mu.Unlock()
		return nil, ErrAlreadyRun
	}
	c.state = Stepping
	initial := c.current
	c.mu.Unlock()

	ens := ensemble.New(initial)
	defer c.setState(Finished)

	var accepted int
	start := time.Now()
	for i := 1; i <= c.opts.TotalSteps; i++ {
		if err := ctx.Err(); err != nil {
			c.logger.Warn("chain cancelled", zap.Int("completed", i-1), zap.Error(err))
			return ens, err
		}

		t0 := time.Now()
		res, err := c.proposer.Propose(ctx, c.Current(), c.rng)
		if err != nil {
			return ens, fmt.Errorf("chain: step %d: %w", i, err)
		}
		elapsed := time.Since(t0)

		step := Step{Index: i, Pair: res.Pair}
		switch {
		case !res.Found:
			step.Outcome = NoSplit
		case c.check(res.Partition):
			step.Outcome = Accepted
			accepted++
			c.mu.Lock()
			c.current = res.Partition
			c.mu.Unlock()
		default:
			step.Outcome = Rejected
		}
		step.Compactness = ens.Append(c.Current())

		c.mu.Lock()
		c.steps = append(c.steps, step)
		c.mu.Unlock()
		c.opts.Metrics.ObserveStep(i, step.Outcome.String(), step.Compactness, elapsed)

		if n := c.opts.ProgressEvery; n > 0 && i%n == 0 {
			c.logger.Info("chain progress",
				zap.Int("step", i),
				zap.Int("total", c.opts.TotalSteps),
				zap.Int("accepted", accepted),
				zap.Float64("compactness", step.Compactness),
				zap.Duration("elapsed", time.Since(start)),
			)
		}
		if c.opts.OnStep != nil {
			if err := c.opts.OnStep(step); err != nil {
				return ens, fmt.Errorf("chain: step %d callback: %w", i, err)
			}
		}
	}

	c.logger.Debug("chain finished",
		zap.Int("steps", c.opts.TotalSteps),
		zap.Int("accepted", accepted),
		zap.Duration("elapsed", time.Since(start)),
	)

	return ens, nil
}

func (c *Chain) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
