// Package chain drives a ReCom Markov chain: from a valid initial plan it
// repeatedly proposes, checks constraints and accepts or keeps the current
// plan, recording every state into an ensemble.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvdistrict/constraint"
	"github.com/katalvlaran/lvdistrict/partition"
	"github.com/katalvlaran/lvdistrict/proposal"
	"github.com/katalvlaran/lvdistrict/telemetry"
)

// Sentinel errors.
var (
	// ErrInitialStateInvalid is returned when the initial plan violates a
	// constraint.
	ErrInitialStateInvalid = errors.New("chain: initial state violates constraints")

	// ErrOptionViolation is returned for an invalid Option.
	ErrOptionViolation = errors.New("chain: invalid option supplied")

	// ErrAlreadyRun is returned when Run is called a second time.
	ErrAlreadyRun = errors.New("chain: already run")
)

// State is the lifecycle phase of a Chain.
type State int

const (
	Initializing State = iota
	Stepping
	Finished
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Stepping:
		return "stepping"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome classifies a step.
type Outcome int

const (
	// Accepted: a split was found and the candidate passed every constraint.
	Accepted Outcome = iota
	// Rejected: a split was found but a constraint failed.
	Rejected
	// NoSplit: no balanced split was found; the chain self-loops.
	NoSplit
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case NoSplit:
		return "no_split"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Step is the diagnostic record of one chain step.
type Step struct {
	Index       int // 1-based
	Outcome     Outcome
	Pair        [2]int
	Compactness float64 // mean Polsby-Popper of the state after the step
}

// Proposer produces candidate plans. *proposal.ReCom implements it.
type Proposer interface {
	Propose(ctx context.Context, p *partition.Partition, rng *rand.Rand) (*proposal.Result, error)
}

// DefaultProgressEvery is the default progress logging interval in steps.
const DefaultProgressEvery = 100

// Options configures a Chain.
type Options struct {
	// TotalSteps is the exact number of steps Run performs.
	TotalSteps int

	// Seed seeds the chain's random source.
	Seed int64

	// Constraints must all hold for the initial plan and every accepted
	// state.
	Constraints []constraint.Validator

	// Logger receives progress logs. Nil means no logging.
	Logger *zap.Logger

	// Metrics records per-step metrics. Nil means none.
	Metrics *telemetry.ChainMetrics

	// OnStep runs after each step; a non-nil error stops the run.
	OnStep func(Step) error

	// ProgressEvery logs progress every N steps; 0 disables it.
	ProgressEvery int

	err error
}

// Option configures a Chain via functional arguments.
type Option func(*Options)

// DefaultOptions returns zero steps, seed 0, no constraints and progress
// every DefaultProgressEvery steps.
func DefaultOptions() Options {
	return Options{ProgressEvery: DefaultProgressEvery}
}

// WithTotalSteps sets the number of steps. Negative values are rejected.
func WithTotalSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: TotalSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.TotalSteps = n
	}
}

// WithSeed seeds the chain's random source.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithConstraints appends validators.
func WithConstraints(vs ...constraint.Validator) Option {
	return func(o *Options) { o.Constraints = append(o.Constraints, vs...) }
}

// WithLogger sets the progress logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *telemetry.ChainMetrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithOnStep registers a per-step callback.
func WithOnStep(fn func(Step) error) Option {
	return func(o *Options) { o.OnStep = fn }
}

// WithProgressEvery sets the progress interval; 0 disables progress logs.
func WithProgressEvery(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: ProgressEvery cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.ProgressEvery = n
	}
}
