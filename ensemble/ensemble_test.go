package ensemble_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvdistrict/builder"
	"github.com/katalvlaran/lvdistrict/core"
	"github.com/katalvlaran/lvdistrict/ensemble"
	"github.com/katalvlaran/lvdistrict/partition"
)

// 0 1
// 2 3
func square(t *testing.T) *core.Graph {
	t.Helper()
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithUniformPopulation(10)}, builder.Grid(2, 2))
	require.NoError(t, err)

	return g
}

func plan(t *testing.T, g *core.Graph, assign map[int]int) *partition.Partition {
	t.Helper()
	p, err := partition.New(g, assign, 2)
	require.NoError(t, err)

	return p
}

var (
	byRow = map[int]int{0: 0, 1: 0, 2: 1, 3: 1}
	byCol = map[int]int{0: 0, 1: 1, 2: 0, 3: 1}
)

func TestPolsbyPopper(t *testing.T) {
	g := square(t)
	p := plan(t, g, byRow)

	// each district: area 2, summed perimeter 8
	want := 4 * math.Pi * 2 / 64
	scores := ensemble.PolsbyPopper(p)
	require.Len(t, scores, 2)
	assert.InDelta(t, want, scores[0], 1e-12)
	assert.InDelta(t, want, scores[1], 1e-12)
	assert.InDelta(t, want, ensemble.MeanPolsbyPopper(p), 1e-12)
}

func TestModalAssignment(t *testing.T) {
	g := square(t)
	rows, cols := plan(t, g, byRow), plan(t, g, byCol)

	t.Run("majority", func(t *testing.T) {
		e := ensemble.New(rows)
		e.Append(rows)
		e.Append(rows)
		e.Append(cols)
		modal, err := ensemble.ModalAssignment(e)
		require.NoError(t, err)
		assert.Equal(t, byRow, modal)
	})

	t.Run("ties go to smallest district", func(t *testing.T) {
		e := ensemble.New(rows)
		e.Append(rows)
		e.Append(cols)
		modal, err := ensemble.ModalAssignment(e)
		require.NoError(t, err)
		assert.Equal(t, map[int]int{0: 0, 1: 0, 2: 0, 3: 1}, modal)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ensemble.ModalAssignment(ensemble.New(rows))
		assert.ErrorIs(t, err, ensemble.ErrEmptyEnsemble)
	})
}

func TestSelectBest(t *testing.T) {
	g := square(t)
	rows, cols := plan(t, g, byRow), plan(t, g, byCol)
	c := ensemble.MeanPolsbyPopper(rows)

	e := ensemble.New(rows)
	e.Append(cols)
	e.Append(rows)
	e.Append(rows)
	require.Equal(t, 3, e.Len())

	sel, err := ensemble.SelectBest(e, g.TotalPopulation())
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Index, "first of the tied modal plans")
	assert.Same(t, e.At(1), sel.Partition)
	assert.Equal(t, 0.0, sel.Deviation)
	assert.InDelta(t, 1-c, sel.Score, 1e-12)
	assert.InDeltaSlice(t, []float64{1.5 - c, 1 - c, 1 - c}, sel.Scores, 1e-12)

	again, err := ensemble.SelectBest(e, g.TotalPopulation())
	require.NoError(t, err)
	assert.Equal(t, sel.Index, again.Index)
	assert.Equal(t, sel.Scores, again.Scores)
	assert.Equal(t, 3, e.Len())
}

func TestSelectBest_ZeroPopulation(t *testing.T) {
	g := square(t)
	rows, cols := plan(t, g, byRow), plan(t, g, byCol)
	e := ensemble.New(rows)
	e.Append(rows)
	e.Append(cols)

	sel, err := ensemble.SelectBest(e, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Index)
	for _, s := range sel.Scores {
		assert.InDelta(t, sel.Scores[0], s, 1e-12)
	}
}

func TestSelectBest_Empty(t *testing.T) {
	g := square(t)
	rows := plan(t, g, byRow)
	e := ensemble.New(rows)

	sel, err := ensemble.SelectBest(e, g.TotalPopulation())
	require.NoError(t, err)
	assert.Equal(t, -1, sel.Index)
	assert.Same(t, rows, sel.Partition)
	assert.Nil(t, sel.Modal)
	assert.Equal(t, 0.0, e.MeanCompactness())
}

func TestEnsemble_Compactness(t *testing.T) {
	g := square(t)
	rows := plan(t, g, byRow)
	e := ensemble.New(rows)
	got := e.Append(rows)
	assert.Equal(t, got, e.Compactness(0))

	scores := e.CompactnessScores()
	scores[0] = -1
	assert.Equal(t, got, e.Compactness(0))
	assert.Equal(t, got, e.MeanCompactness())
	assert.Same(t, rows, e.Initial())
}
