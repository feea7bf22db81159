package chain_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvdistrict/builder"
	"github.com/katalvlaran/lvdistrict/chain"
	"github.com/katalvlaran/lvdistrict/constraint"
	"github.com/katalvlaran/lvdistrict/partition"
	"github.com/katalvlaran/lvdistrict/proposal"
	"github.com/katalvlaran/lvdistrict/telemetry"
	"github.com/katalvlaran/lvdistrict/tree"
)

const eps = 0.1

func initial(t *testing.T, k int) (*partition.Partition, float64) {
	t.Helper()
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{
		builder.WithSeed(4),
		builder.WithRandomPopulation(90, 110),
	}, builder.Grid(6, 6))
	require.NoError(t, err)
	ideal := g.TotalPopulation() / float64(k)
	assign, err := tree.RecursivePartition(context.Background(), g, k, ideal, 0.05, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	p, err := partition.New(g, assign, k)
	require.NoError(t, err)
	require.True(t, constraint.Accepts(p, ideal, 0.05))

	return p, ideal
}

// scripted replays fixed results, ignoring its input.
type scripted struct {
	results []*proposal.Result
	calls   int
}

func (s *scripted) Propose(_ context.Context, p *partition.Partition, _ *rand.Rand) (*proposal.Result, error) {
	r := s.results[s.calls%len(s.results)]
	s.calls++
	if r == nil {
		return &proposal.Result{Partition: p}, nil
	}
	return r, nil
}

func TestRun_EveryStateSatisfiesBound(t *testing.T) {
	p, ideal := initial(t, 4)
	rc, err := proposal.NewReCom(ideal, eps, proposal.WithNodeRepeats(2))
	require.NoError(t, err)

	c, err := chain.New(p, rc,
		chain.WithTotalSteps(60),
		chain.WithSeed(11),
		chain.WithConstraints(constraint.WithinPercentOfIdeal(ideal, eps)),
	)
	require.NoError(t, err)
	assert.Equal(t, chain.Initializing, c.State())

	ens, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, chain.Finished, c.State())
	require.Equal(t, 60, ens.Len())

	steps := c.Steps()
	require.Len(t, steps, 60)
	for i := 0; i < ens.Len(); i++ {
		assert.True(t, constraint.Accepts(ens.At(i), ideal, eps), "state %d", i)
		assert.Equal(t, i+1, steps[i].Index)
	}
	assert.Same(t, ens.At(59), c.Current())
	assert.Same(t, p, ens.Initial())
}

func TestRun_Deterministic(t *testing.T) {
	p, ideal := initial(t, 3)
	run := func() []map[int]int {
		rc, err := proposal.NewReCom(ideal, eps)
		require.NoError(t, err)
		c, err := chain.New(p, rc, chain.WithTotalSteps(15), chain.WithSeed(3),
			chain.WithConstraints(constraint.WithinPercentOfIdeal(ideal, eps)))
		require.NoError(t, err)
		ens, err := c.Run(context.Background())
		require.NoError(t, err)
		out := make([]map[int]int, ens.Len())
		for i := range out {
			out[i] = ens.At(i).Assignment()
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestRun_Outcomes(t *testing.T) {
	p, _ := initial(t, 2)

	// a candidate that moves one unit across and breaks nothing structural
	moved := p.Assignment()
	var unit int
	for id, d := range moved {
		if d == 0 {
			unit = id
			break
		}
	}
	moved[unit] = 1
	other, err := partition.New(p.Graph(), moved, 2)
	require.NoError(t, err)

	s := &scripted{results: []*proposal.Result{
		{Partition: other, Pair: [2]int{0, 1}, Found: true},
		nil,
	}}
	onlyInitial := func(q *partition.Partition) bool { return q == p || q == other }
	rejectOther := func(q *partition.Partition) bool { return q != other }

	t.Run("accepted then no split", func(t *testing.T) {
		s.calls = 0
		c, err := chain.New(p, s, chain.WithTotalSteps(2), chain.WithConstraints(onlyInitial))
		require.NoError(t, err)
		ens, err := c.Run(context.Background())
		require.NoError(t, err)
		steps := c.Steps()
		assert.Equal(t, chain.Accepted, steps[0].Outcome)
		assert.Equal(t, chain.NoSplit, steps[1].Outcome)
		assert.Same(t, other, ens.At(0))
		assert.Same(t, other, ens.At(1))
	})

	t.Run("rejected keeps current", func(t *testing.T) {
		s.calls = 0
		c, err := chain.New(p, s, chain.WithTotalSteps(1), chain.WithConstraints(rejectOther))
		require.NoError(t, err)
		ens, err := c.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, chain.Rejected, c.Steps()[0].Outcome)
		assert.Same(t, p, ens.At(0))
	})
}

func TestNew_Validation(t *testing.T) {
	p, ideal := initial(t, 2)
	rc, err := proposal.NewReCom(ideal, eps)
	require.NoError(t, err)

	_, err = chain.New(p, rc, chain.WithConstraints(func(*partition.Partition) bool { return false }))
	assert.ErrorIs(t, err, chain.ErrInitialStateInvalid)

	_, err = chain.New(p, rc, chain.WithTotalSteps(-1))
	assert.ErrorIs(t, err, chain.ErrOptionViolation)

	_, err = chain.New(p, rc, chain.WithProgressEvery(-5))
	assert.ErrorIs(t, err, chain.ErrOptionViolation)

	_, err = chain.New(nil, rc)
	assert.ErrorIs(t, err, chain.ErrOptionViolation)
}

func TestRun_ZeroSteps(t *testing.T) {
	p, ideal := initial(t, 2)
	rc, err := proposal.NewReCom(ideal, eps)
	require.NoError(t, err)
	c, err := chain.New(p, rc)
	require.NoError(t, err)

	ens, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ens.Len())
	assert.Same(t, p, ens.Initial())

	_, err = c.Run(context.Background())
	assert.ErrorIs(t, err, chain.ErrAlreadyRun)
}

func TestRun_Cancel(t *testing.T) {
	p, ideal := initial(t, 2)
	rc, err := proposal.NewReCom(ideal, eps)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	c, err := chain.New(p, rc, chain.WithTotalSteps(1000), chain.WithOnStep(func(s chain.Step) error {
		if s.Index == 5 {
			cancel()
		}
		return nil
	}))
	require.NoError(t, err)

	ens, err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, ens.Len())
	assert.Equal(t, chain.Finished, c.State())
}

func TestRun_OnStepError(t *testing.T) {
	p, ideal := initial(t, 2)
	rc, err := proposal.NewReCom(ideal, eps)
	require.NoError(t, err)
	stop := errors.New("stop")

	c, err := chain.New(p, rc, chain.WithTotalSteps(10), chain.WithOnStep(func(chain.Step) error { return stop }))
	require.NoError(t, err)
	ens, err := c.Run(context.Background())
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, ens.Len())
}

func TestRun_LogsAndMetrics(t *testing.T) {
	p, ideal := initial(t, 2)
	rc, err := proposal.NewReCom(ideal, eps)
	require.NoError(t, err)

	obs, logs := observer.New(zapcore.InfoLevel)
	reg := prometheus.NewRegistry()
	m, err := telemetry.NewChainMetrics(reg)
	require.NoError(t, err)

	c, err := chain.New(p, rc,
		chain.WithTotalSteps(25),
		chain.WithProgressEvery(10),
		chain.WithLogger(zap.New(obs)),
		chain.WithMetrics(m),
		chain.WithConstraints(constraint.WithinPercentOfIdeal(ideal, eps)),
	)
	require.NoError(t, err)
	_, err = c.Run(context.Background())
	require.NoError(t, err)

	progress := logs.FilterMessage("chain progress").All()
	require.Len(t, progress, 2)
	assert.Equal(t, int64(20), progress[1].ContextMap()["step"])

	var total float64
	for _, o := range []chain.Outcome{chain.Accepted, chain.Rejected, chain.NoSplit} {
		total += testutil.ToFloat64(m.Steps.WithLabelValues(o.String()))
	}
	assert.Equal(t, 25.0, total)
	assert.Equal(t, 25.0, testutil.ToFloat64(m.Step))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "stepping", chain.Stepping.String())
	assert.Equal(t, "no_split", chain.NoSplit.String())
	assert.Equal(t, "rejected", chain.Rejected.String())
	assert.Equal(t, "Outcome(9)", chain.Outcome(9).String())
}
