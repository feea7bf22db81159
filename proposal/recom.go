// Package proposal implements the ReCom (recombination) proposal: merge two
// adjacent districts, draw a random spanning tree of the merger and cut it
// into two population-balanced halves.
package proposal

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvdistrict/core"
	"github.com/katalvlaran/lvdistrict/partition"
	"github.com/katalvlaran/lvdistrict/spanning"
	"github.com/katalvlaran/lvdistrict/tree"
)

// ErrInvalidConfig indicates invalid ReCom parameters.
var ErrInvalidConfig = errors.New("proposal: invalid ReCom configuration")

// Result is the outcome of one proposal.
type Result struct {
	// Partition is the candidate, or the input partition when Found is false.
	Partition *partition.Partition

	// Pair holds the merged districts (A < B). Zero when no pair exists.
	Pair [2]int

	// Found is false when no balanced split was found within the tree
	// budget (or the plan has no adjacent districts): a self-loop.
	Found bool

	// Trees counts the tree seeds up to and including the successful one
	// (all of them when Found is false).
	Trees int
}

// ReCom proposes new partitions by recombining two adjacent districts.
// A ReCom value is immutable and safe for concurrent use.
type ReCom struct {
	popTarget   float64
	epsilon     float64
	nodeRepeats int
	parallelism int
	method      spanning.Method
}

// Option configures a ReCom.
type Option func(*ReCom)

// WithNodeRepeats sets how many spanning trees are drawn per proposal
// before it is declared a self-loop. Each tree is searched over all of its
// edges. Default 1.
func WithNodeRepeats(n int) Option {
	return func(r *ReCom) { r.nodeRepeats = n }
}

// WithParallelism samples up to n trees concurrently. The result does not
// depend on n. Default 1.
func WithParallelism(n int) Option {
	return func(r *ReCom) { r.parallelism = n }
}

// WithTreeMethod selects the spanning-tree sampler. Default MethodKruskal.
func WithTreeMethod(m spanning.Method) Option {
	return func(r *ReCom) { r.method = m }
}

// NewReCom returns a ReCom splitting merged districts into halves whose
// populations lie within epsilon*popTarget of popTarget.
func NewReCom(popTarget, epsilon float64, opts ...Option) (*ReCom, error) {
	r := &ReCom{
		popTarget:   popTarget,
		epsilon:     epsilon,
		nodeRepeats: 1,
		parallelism: 1,
		method:      spanning.MethodKruskal,
	}
	for _, opt := range opts {
		opt(r)
	}
	switch {
	case popTarget <= 0:
		return nil, fmt.Errorf("%w: population target %g must be > 0", ErrInvalidConfig, popTarget)
	case epsilon < 0 || epsilon >= 1:
		return nil, fmt.Errorf("%w: epsilon %g outside [0, 1)", ErrInvalidConfig, epsilon)
	case r.nodeRepeats < 1:
		return nil, fmt.Errorf("%w: node repeats %d < 1", ErrInvalidConfig, r.nodeRepeats)
	case r.parallelism < 1:
		return nil, fmt.Errorf("%w: parallelism %d < 1", ErrInvalidConfig, r.parallelism)
	}
	if _, err := spanning.ParseMethod(string(r.method)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return r, nil
}

// Propose draws one ReCom move from p. All randomness comes from rng: one
// draw picks the district pair and NodeRepeats draws seed the trees, so the
// rng advances by the same amount whatever the outcome.
//
// The candidate equals p outside the chosen pair. The half holding more of
// district A's former units keeps label A; ties keep the subtree half as A.
// Errors are returned only for cancellation and internal failures; a
// missing split is reported through Result.Found.
func (r *ReCom) Propose(ctx context.Context, p *partition.Partition, rng *rand.Rand) (*Result, error) {
	pairs := p.DistrictPairs()
	if len(pairs) == 0 {
		return &Result{Partition: p}, nil
	}
	pair := pairs[rng.Intn(len(pairs))]
	seeds := make([]int64, r.nodeRepeats)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	t := p.Tally()
	merged := make(map[int]bool)
	for _, id := range t.Members(pair[0]) {
		merged[id] = true
	}
	for _, id := range t.Members(pair[1]) {
		merged[id] = true
	}
	sub := core.InducedSubgraph(p.Graph(), merged)

	split, trees, err := r.search(ctx, sub, seeds)
	if err != nil {
		return nil, err
	}
	if split == nil {
		return &Result{Partition: p, Pair: pair, Trees: trees}, nil
	}

	a, b := pair[0], pair[1]
	leftA := 0
	for _, id := range split.Left {
		if d, _ := p.District(id); d == a {
			leftA++
		}
	}
	leftLabel, rightLabel := a, b
	if rightA := len(t.Members(a)) - leftA; rightA > leftA {
		leftLabel, rightLabel = b, a
	}
	changes := make(map[int]int, len(merged))
	for _, id := range split.Left {
		changes[id] = leftLabel
	}
	for _, id := range split.Right {
		changes[id] = rightLabel
	}
	cand, err := p.Flip(changes)
	if err != nil {
		return nil, fmt.Errorf("proposal: applying split of %v: %w", pair, err)
	}

	return &Result{Partition: cand, Pair: pair, Found: true, Trees: trees}, nil
}

// search tries the seeds in order and returns the split of the first seed
// that yields one. With parallelism > 1 seeds run in batches; the lowest
// successful index of a batch wins, so the outcome matches a sequential run.
func (r *ReCom) search(ctx context.Context, sub *core.Graph, seeds []int64) (*tree.Split, int, error) {
	attempt := func(seed int64) (*tree.Split, error) {
		s, err := tree.FindSplit(sub, seed, r.popTarget, 2, r.epsilon, r.method)
		if errors.Is(err, tree.ErrNoBalancedCut) {
			return nil, nil
		}
		return s, err
	}

	if r.parallelism == 1 {
		for i, seed := range seeds {
			if err := ctx.Err(); err != nil {
				return nil, i, err
			}
			s, err := attempt(seed)
			if err != nil || s != nil {
				return s, i + 1, err
			}
		}
		return nil, len(seeds), nil
	}

	tried := 0
	for start := 0; start < len(seeds); start += r.parallelism {
		end := min(start+r.parallelism, len(seeds))
		batch := make([]*tree.Split, end-start)
		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				s, err := attempt(seeds[i])
				batch[i-start] = s
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, tried, err
		}
		tried = end
		for i, s := range batch {
			if s != nil {
				return s, start + i + 1, nil
			}
		}
	}

	return nil, tried, nil
}
