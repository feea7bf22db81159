package gridgraph_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvdistrict/gridgraph"
)

func randomRaster(n int) [][]float64 {
	rng := rand.New(rand.NewSource(42))
	grid := make([][]float64, n)
	for y := range grid {
		row := make([]float64, n)
		for x := range row {
			row[x] = float64(rng.Intn(5)) // 0 is water
		}
		grid[y] = row
	}

	return grid
}

// BenchmarkConnectedComponents measures ConnectedComponents on a
// 1000×1000 raster. Complexity: O(W×H×d)
func BenchmarkConnectedComponents(b *testing.B) {
	gg, err := gridgraph.NewGridGraph(randomRaster(1000), gridgraph.DefaultGridOptions())
	if err != nil {
		b.Fatalf("setup NewGridGraph failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gg.ConnectedComponents()
	}
}

// BenchmarkToCoreGraph measures unit-graph conversion of a 200×200 raster.
func BenchmarkToCoreGraph(b *testing.B) {
	opts := gridgraph.DefaultGridOptions()
	opts.Conn = gridgraph.Conn8
	gg, err := gridgraph.NewGridGraph(randomRaster(200), opts)
	if err != nil {
		b.Fatalf("setup NewGridGraph failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gg.ToCoreGraph(); err != nil {
			b.Fatal(err)
		}
	}
}
