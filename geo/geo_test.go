package geo_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvdistrict/geo"
)

// square is a unit-square Polygon feature with lower-left corner (x, y).
func square(x, y int, props string) string {
	return fmt.Sprintf(`{"type":"Feature","properties":{%s},"geometry":{"type":"Polygon","coordinates":[[[%d,%d],[%d,%d],[%d,%d],[%d,%d],[%d,%d]]]}}`,
		props, x, y, x+1, y, x+1, y+1, x, y+1, x, y)
}

func collection(features ...string) string {
	return `{"type":"FeatureCollection","features":[` + strings.Join(features, ",") + `]}`
}

// 0 1 2 in a row, 3 touching 2 at a corner, 4 far away, 5 a point.
var precincts = collection(
	square(0, 0, `"TOTPOP":10,"G20PRE":1`),
	square(1, 0, `"TOTPOP":20`),
	square(2, 0, `"TOTPOP":"30"`),
	square(3, 1, `"TOTPOP":40`),
	square(10, 10, `"TOTPOP":50`),
	`{"type":"Feature","properties":{"TOTPOP":60},"geometry":{"type":"Point","coordinates":[0,0]}}`,
)

func TestLoad_Rook(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	r, err := geo.Load(strings.NewReader(precincts), geo.WithLogger(zap.New(obs)))
	require.NoError(t, err)

	assert.Equal(t, "TOTPOP", r.Population.Column)
	assert.Equal(t, []int{0, 1, 2}, r.Graph.Units())
	assert.Equal(t, []int{3, 4}, r.DroppedIslands)
	assert.Equal(t, []int{5}, r.DroppedGeometry)
	assert.Equal(t, 60.0, r.Graph.TotalPopulation())
	assert.True(t, r.Graph.HasEdge(0, 1))
	assert.True(t, r.Graph.HasEdge(1, 2))
	assert.False(t, r.Graph.HasEdge(0, 2))

	u, err := r.Graph.Unit(2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, u.Area, 1e-12)
	assert.InDelta(t, 4.0, u.Perimeter, 1e-12)

	assert.Equal(t, 1, logs.FilterMessage("graph is not connected, keeping the largest component").Len())
	assert.Equal(t, 1, logs.FilterMessage("dropped features with unusable geometry").Len())
}

func TestLoad_SelfIntersectingFlagged(t *testing.T) {
	// a bow-tie sharing the edge x=1 with the unit square at the origin,
	// crossing itself at (1.5, 0.5)
	bowTie := `{"type":"Feature","properties":{"TOTPOP":5},"geometry":{"type":"Polygon","coordinates":[[[1,0],[1,1],[3,-1],[3,2],[1,0]]]}}`
	obs, logs := observer.New(zapcore.WarnLevel)
	r, err := geo.Load(strings.NewReader(collection(square(0, 0, `"TOTPOP":10`), bowTie)),
		geo.WithLogger(zap.New(obs)))
	require.NoError(t, err)

	assert.Equal(t, []int{1}, r.SelfIntersecting)
	assert.Empty(t, r.DroppedGeometry)
	assert.Equal(t, []int{0, 1}, r.Graph.Units())
	assert.Equal(t, 1, logs.FilterMessage("self-intersecting geometry measured without repair").Len())

	// simple rings are not flagged
	r, err = geo.Load(strings.NewReader(precincts))
	require.NoError(t, err)
	assert.Empty(t, r.SelfIntersecting)
}

func TestLoad_Queen(t *testing.T) {
	r, err := geo.Load(strings.NewReader(precincts), geo.WithAdjacency(geo.Queen))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, r.Graph.Units())
	assert.True(t, r.Graph.HasEdge(2, 3))
	assert.Equal(t, []int{4}, r.DroppedIslands)
}

func TestLoad_ComponentTie(t *testing.T) {
	in := collection(
		square(5, 5, `"POP20":1`),
		square(6, 5, `"POP20":1`),
		square(0, 0, `"POP20":1`),
		square(1, 0, `"POP20":1`),
	)
	r, err := geo.Load(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, r.Graph.Units())
	assert.Equal(t, []int{2, 3}, r.DroppedIslands)
}

func TestLoad_Projection(t *testing.T) {
	in := collection(square(0, 0, `"TOTPOP":1`), square(1, 0, `"TOTPOP":1`))
	r, err := geo.Load(strings.NewReader(in), geo.WithProjection(true))
	require.NoError(t, err)
	u, err := r.Graph.Unit(0)
	require.NoError(t, err)
	// one degree square at the equator is roughly 111 km on a side
	assert.InDelta(t, 1.24e10, u.Area, 0.05e10)
	assert.True(t, r.Graph.HasEdge(0, 1))
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		opts []geo.Option
		want error
	}{
		{"no population", collection(square(0, 0, `"NAME":"a"`)), nil, geo.ErrNoPopulation},
		{"zero proxy", collection(square(0, 0, `"G20PRE":0`)), nil, geo.ErrZeroProxyPopulation},
		{"missing column", collection(square(0, 0, `"TOTPOP":1`)), []geo.Option{geo.WithPopulationColumn("VAP")}, geo.ErrColumnNotFound},
		{"no polygons", collection(`{"type":"Feature","properties":{"TOTPOP":1},"geometry":{"type":"Point","coordinates":[0,0]}}`), nil, geo.ErrNoUnits},
		{"adjacency", collection(square(0, 0, `"TOTPOP":1`)), []geo.Option{geo.WithAdjacency("bishop")}, geo.ErrUnknownAdjacency},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := geo.Load(strings.NewReader(tc.in), tc.opts...)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := geo.Load(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestResolvePopulation(t *testing.T) {
	fc, err := geojson.UnmarshalFeatureCollection([]byte(collection(
		square(0, 0, `"g20pre_d":5,"PRE20R":3,"USS_X":"n/a","NAME":"a"`),
		square(1, 0, `"g20pre_d":1,"PRE20R":null`),
	)))
	require.NoError(t, err)

	pop, err := geo.ResolvePopulation(fc, "")
	require.NoError(t, err)
	assert.Equal(t, geo.ProxyColumn, pop.Column)
	assert.Equal(t, []string{"PRE20R", "g20pre_d"}, pop.ProxyColumns)
	assert.Equal(t, []float64{8, 1}, pop.Values)

	pop, err = geo.ResolvePopulation(fc, "g20pre_d")
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 1}, pop.Values)

	// a standard column wins over vote columns, in lookup order
	fc2, err := geojson.UnmarshalFeatureCollection([]byte(collection(square(0, 0, `"TOTAL_POP":2,"POP100":7,"G20PRE":9`))))
	require.NoError(t, err)
	pop, err = geo.ResolvePopulation(fc2, "")
	require.NoError(t, err)
	assert.Equal(t, "POP100", pop.Column)
	assert.Equal(t, []float64{7}, pop.Values)
}

func TestWriteAssignment(t *testing.T) {
	r, err := geo.Load(strings.NewReader(precincts))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, geo.WriteAssignment(&buf, r, map[int]int{0: 0, 1: 1, 2: 1}))

	out, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, out.Features, 6)
	assert.Equal(t, 1.0, out.Features[0].Properties[geo.DistrictProperty])
	assert.Equal(t, 2.0, out.Features[2].Properties[geo.DistrictProperty])
	assert.NotContains(t, out.Features[4].Properties, geo.DistrictProperty)
	assert.Equal(t, 20.0, out.Features[1].Properties["TOTPOP"])

	// input untouched
	assert.NotContains(t, r.Features.Features[0].Properties, geo.DistrictProperty)
}

func TestLoadFile_WriteAssignmentFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.geojson")
	require.NoError(t, os.WriteFile(in, []byte(precincts), 0o600))

	r, err := geo.LoadFile(in)
	require.NoError(t, err)
	outPath := filepath.Join(dir, "out.geojson")
	require.NoError(t, geo.WriteAssignmentFile(outPath, r, map[int]int{0: 0, 1: 0, 2: 0}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"best_cd":1`)

	_, err = geo.LoadFile(filepath.Join(dir, "missing.geojson"))
	assert.Error(t, err)
}

func TestParseAdjacency(t *testing.T) {
	a, err := geo.ParseAdjacency("")
	require.NoError(t, err)
	assert.Equal(t, geo.Rook, a)
	_, err = geo.ParseAdjacency("hex")
	assert.ErrorIs(t, err, geo.ErrUnknownAdjacency)
}
