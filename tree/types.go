// Package tree defines options and sentinel errors for balanced tree
// bipartition and recursive partitioning.
package tree

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvdistrict/spanning"
)

// Sentinel errors.
var (
	// ErrNilGraph indicates a nil graph.
	ErrNilGraph = errors.New("tree: graph is nil")

	// ErrDistrictCount indicates a district count < 1.
	ErrDistrictCount = errors.New("tree: number of districts must be >= 1")

	// ErrTooFewUnits indicates fewer units than districts.
	ErrTooFewUnits = errors.New("tree: fewer units than districts")

	// ErrZeroPopulation indicates that there is no population to balance
	// across more than one district.
	ErrZeroPopulation = errors.New("tree: total population is zero")

	// ErrDisconnected indicates a graph that is not connected.
	ErrDisconnected = errors.New("tree: graph is disconnected")

	// ErrNoBalancedCut indicates that no sampled spanning tree had a
	// balanced cut, or a cut carving off one district, within the attempt
	// budget.
	ErrNoBalancedCut = errors.New("tree: no balanced cut found")

	// ErrOptionViolation indicates an invalid Option.
	ErrOptionViolation = errors.New("tree: invalid option supplied")
)

const (
	// DefaultMaxAttempts bounds the spanning trees drawn per bipartition
	// or per carved district.
	DefaultMaxAttempts = 10000

	// DefaultRestarts bounds how often RecursivePartition starts over after
	// a carve runs out of attempts.
	DefaultRestarts = 10
)

// Options configures Bipartition and RecursivePartition.
type Options struct {
	// MaxAttempts is the number of spanning trees tried per split.
	MaxAttempts int

	// Method selects how spanning trees are drawn.
	Method spanning.Method

	// Restarts is how many times RecursivePartition discards a partial
	// plan and starts over. 0 gives a single pass.
	Restarts int

	err error
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns DefaultMaxAttempts, MethodKruskal and
// DefaultRestarts.
func DefaultOptions() Options {
	return Options{MaxAttempts: DefaultMaxAttempts, Method: spanning.MethodKruskal, Restarts: DefaultRestarts}
}

// WithMaxAttempts sets the attempt budget; n < 1 is an ErrOptionViolation.
func WithMaxAttempts(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: MaxAttempts must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxAttempts = n
	}
}

// WithRestarts sets the restart budget; n < 0 is an ErrOptionViolation.
func WithRestarts(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: Restarts must be >= 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.Restarts = n
	}
}

// WithMethod selects the spanning-tree sampler.
func WithMethod(m spanning.Method) Option {
	return func(o *Options) {
		if _, err := spanning.ParseMethod(string(m)); err != nil {
			o.err = fmt.Errorf("%w: %v", ErrOptionViolation, err)
			return
		}
		o.Method = m
	}
}

func resolve(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// Split is the outcome of one balanced bipartition.
type Split struct {
	// Left holds the units of the cut subtree, ascending.
	Left []int

	// LeftDistricts is the number of districts Left will hold.
	LeftDistricts int

	// Right holds the remaining units, ascending.
	Right []int

	// RightDistricts is the number of districts Right will hold.
	RightDistricts int
}
