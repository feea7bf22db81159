package dfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvdistrict/builder"
	"github.com/katalvlaran/lvdistrict/dfs"
)

func TestDFS_Errors(t *testing.T) {
	_, err := dfs.DFS(nil, 0)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)

	g, err := builder.BuildGraph(nil, nil, builder.Path(3))
	require.NoError(t, err)
	_, err = dfs.DFS(g, 7)
	assert.ErrorIs(t, err, dfs.ErrStartUnitNotFound)
}

func TestDFS_PostOrderOnPath(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Path(4))
	require.NoError(t, err)

	var pre []int
	res, err := dfs.DFS(g, 1, dfs.WithOnVisit(func(id int) error {
		pre = append(pre, id)
		return nil
	}))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 0, 2, 3}, pre)
	assert.Equal(t, []int{0, 3, 2, 1}, res.Order)
	assert.Equal(t, map[int]int{0: 1, 2: 1, 3: 2}, res.Parent)
	assert.Equal(t, 2, res.Depth[3])
}

func TestDFS_SubtreeSums(t *testing.T) {
	// 2x2 grid: 0-1, 0-2, 1-3, 2-3; populations 1,2,3,4
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{
		builder.WithPopulationFn(func(i int) float64 { return float64(i + 1) }),
	}, builder.Grid(2, 2))
	require.NoError(t, err)

	res, err := dfs.DFS(g, 0)
	require.NoError(t, err)

	// DFS tree: 0 -> 1 -> 3 -> 2
	sum := make(map[int]float64)
	for _, id := range res.Order {
		sum[id] += g.Population(id)
		if p, ok := res.Parent[id]; ok {
			sum[p] += sum[id]
		}
	}
	assert.Equal(t, 10.0, sum[0])
	assert.Equal(t, 9.0, sum[1])
	assert.Equal(t, 7.0, sum[3])
	assert.Equal(t, 3.0, sum[2])
}

func TestDFS_FilterHookErrorCancel(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Path(5))
	require.NoError(t, err)

	res, err := dfs.DFS(g, 0, dfs.WithFilterNeighbor(func(id int) bool { return id != 3 }))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 0}, res.Order)
	assert.Equal(t, 1, res.SkippedNeighbors)

	boom := errors.New("boom")
	res, err = dfs.DFS(g, 0, dfs.WithOnExit(func(id int) error {
		if id == 2 {
			return boom
		}
		return nil
	}))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, res.Order)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dfs.DFS(g, 0, dfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
