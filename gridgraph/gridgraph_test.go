package gridgraph_test

import (
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvdistrict/bfs"
	"github.com/katalvlaran/lvdistrict/gridgraph"
)

// Grid (population per cell, 0 = uninhabited):
//
//	0 5 5 0
//	5 5 0 0
//	0 0 7 7
var twoIslands = [][]float64{
	{0, 5, 5, 0},
	{5, 5, 0, 0},
	{0, 0, 7, 7},
}

func connected(t *testing.T, g bfs.Lister) bool {
	t.Helper()
	ok, err := bfs.IsConnected(g)
	require.NoError(t, err)

	return ok
}

func TestNewGridGraph_Errors(t *testing.T) {
	cases := []struct {
		name   string
		values [][]float64
		opts   func(*gridgraph.GridOptions)
		want   error
	}{
		{"empty", nil, nil, gridgraph.ErrEmptyGrid},
		{"empty row", [][]float64{{}}, nil, gridgraph.ErrEmptyGrid},
		{"ragged", [][]float64{{1, 2}, {3}}, nil, gridgraph.ErrNonRectangular},
		{"negative", [][]float64{{1, -2}}, nil, gridgraph.ErrBadValue},
		{"nan", [][]float64{{math.NaN()}}, nil, gridgraph.ErrBadValue},
		{"inf", [][]float64{{math.Inf(1)}}, nil, gridgraph.ErrBadValue},
		{"cell size", [][]float64{{1}}, func(o *gridgraph.GridOptions) { o.CellSize = 0 }, gridgraph.ErrBadCellSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := gridgraph.DefaultGridOptions()
			if tc.opts != nil {
				tc.opts(&opts)
			}
			_, err := gridgraph.NewGridGraph(tc.values, opts)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewGridGraph_CopiesInput(t *testing.T) {
	values := [][]float64{{1, 2}, {3, 4}}
	gg, err := gridgraph.From2D(values, gridgraph.Conn4)
	require.NoError(t, err)
	values[0][0] = 99
	assert.Equal(t, 1.0, gg.CellValues[0][0])
	assert.Equal(t, 2, gg.Width)
	assert.Equal(t, 2, gg.Height)
}

func TestIndexCoordinate(t *testing.T) {
	gg, err := gridgraph.From2D(twoIslands, gridgraph.Conn4)
	require.NoError(t, err)
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			idx := gg.Index(x, y)
			assert.Equal(t, y*4+x, idx)
			gx, gy := gg.Coordinate(idx)
			assert.Equal(t, [2]int{x, y}, [2]int{gx, gy})
		}
	}
	assert.False(t, gg.InBounds(-1, 0))
	assert.False(t, gg.InBounds(4, 0))
	assert.False(t, gg.IsLand(0, 0))
	assert.True(t, gg.IsLand(1, 0))
	assert.Len(t, gg.Land(), 6)
}

func TestConnectedComponents(t *testing.T) {
	gg, err := gridgraph.From2D(twoIslands, gridgraph.Conn4)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 4, 5}, {10, 11}}, gg.ConnectedComponents())

	// Corners touching: one island under Conn8.
	diag := [][]float64{
		{1, 0, 1},
		{0, 1, 0},
		{1, 0, 1},
	}
	gg4, err := gridgraph.From2D(diag, gridgraph.Conn4)
	require.NoError(t, err)
	assert.Len(t, gg4.ConnectedComponents(), 5)
	gg8, err := gridgraph.From2D(diag, gridgraph.Conn8)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 2, 4, 6, 8}}, gg8.ConnectedComponents())
}

func TestConnectedComponents_LandThreshold(t *testing.T) {
	opts := gridgraph.DefaultGridOptions()
	opts.LandThreshold = 6
	gg, err := gridgraph.NewGridGraph(twoIslands, opts)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{10, 11}}, gg.ConnectedComponents())
}

func TestToCoreGraph(t *testing.T) {
	opts := gridgraph.DefaultGridOptions()
	opts.CellSize = 2
	gg, err := gridgraph.NewGridGraph(twoIslands, opts)
	require.NoError(t, err)

	g, err := gg.ToCoreGraph()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 5, 10, 11}, g.Units())
	assert.Equal(t, 5+5+5+5+7+7.0, g.TotalPopulation())
	// 1-2, 1-5, 4-5, 10-11
	assert.Equal(t, 4, g.EdgeCount())
	assert.True(t, g.HasEdge(1, 5))
	assert.False(t, g.HasEdge(2, 5))
	assert.False(t, connected(t, g))

	u, err := g.Unit(10)
	require.NoError(t, err)
	assert.Equal(t, 7.0, u.Population)
	assert.Equal(t, 4.0, u.Area)
	assert.Equal(t, 8.0, u.Perimeter)
}

func TestToCoreGraph_Conn8(t *testing.T) {
	gg, err := gridgraph.From2D(twoIslands, gridgraph.Conn8)
	require.NoError(t, err)
	g, err := gg.ToCoreGraph()
	require.NoError(t, err)
	// Conn4 edges plus the diagonals 2-5, 5-10 and 1-4.
	assert.Equal(t, 7, g.EdgeCount())
	assert.True(t, g.HasEdge(5, 10))
	assert.True(t, connected(t, g))
}

func TestLargestIslandGraph(t *testing.T) {
	gg, err := gridgraph.From2D(twoIslands, gridgraph.Conn4)
	require.NoError(t, err)
	g, dropped, err := gg.LargestIslandGraph()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 5}, g.Units())
	assert.Equal(t, []int{10, 11}, dropped)
	assert.True(t, connected(t, g))

	// Equal sizes: the island holding the smallest cell wins.
	tie, err := gridgraph.From2D([][]float64{{1, 0, 1}}, gridgraph.Conn4)
	require.NoError(t, err)
	g, dropped, err = tie.LargestIslandGraph()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, g.Units())
	assert.Equal(t, []int{2}, dropped)
}

func TestNoLand(t *testing.T) {
	gg, err := gridgraph.From2D([][]float64{{0, 0}, {0.5, 0}}, gridgraph.Conn4)
	require.NoError(t, err)
	_, err = gg.ToCoreGraph()
	assert.ErrorIs(t, err, gridgraph.ErrNoLand)
	_, _, err = gg.LargestIslandGraph()
	assert.ErrorIs(t, err, gridgraph.ErrNoLand)
}

func TestReadCSV(t *testing.T) {
	in := "# population raster\n0, 5,5,0\n5,5,,0\n0,0,7,7.5\n"
	rows, err := gridgraph.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 5, 5, 0}, {5, 5, 0, 0}, {0, 0, 7, 7.5}}, rows)

	_, err = gridgraph.ReadCSV(strings.NewReader("1,2\n3,x\n"))
	require.ErrorIs(t, err, gridgraph.ErrParse)
	assert.Contains(t, err.Error(), "line 2 field 2")

	// Comment and blank lines still count toward the reported line.
	_, err = gridgraph.ReadCSV(strings.NewReader("# raster\n1,2\n\n3,x\n"))
	require.ErrorIs(t, err, gridgraph.ErrParse)
	assert.Contains(t, err.Error(), "line 4 field 2")

	rows, err = gridgraph.ReadCSV(strings.NewReader("1,2\n3\n"))
	require.NoError(t, err)
	_, err = gridgraph.NewGridGraph(rows, gridgraph.DefaultGridOptions())
	assert.ErrorIs(t, err, gridgraph.ErrNonRectangular)
}

func TestLoadCSV(t *testing.T) {
	path := t.TempDir() + "/raster.csv"
	require.NoError(t, os.WriteFile(path, []byte("1,1\n0,1\n"), 0o644))
	gg, err := gridgraph.LoadCSV(path, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 3}}, gg.ConnectedComponents())

	_, err = gridgraph.LoadCSV(path+".missing", gridgraph.DefaultGridOptions())
	assert.Error(t, err)
}
