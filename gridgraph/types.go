// Package gridgraph defines core types and options for population rasters.
package gridgraph

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// Cell is a single land cell with its coordinates and population.
type Cell struct {
	X, Y  int
	Value float64
}

// GridOptions contains tunable parameters for raster analysis.
type GridOptions struct {
	// LandThreshold is the minimum cell value considered land.
	LandThreshold float64
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
	// CellSize is the side length of a cell; units get area CellSize² and
	// perimeter 4×CellSize.
	CellSize float64
}

// DefaultGridOptions returns LandThreshold=1 (cells of at least one
// person are land), Conn4 and unit cells.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		LandThreshold: 1,
		Conn:          Conn4,
		CellSize:      1,
	}
}

// GridGraph treats a raster as a graph. It is immutable once built.
// Width and Height define dimensions; CellValues[y][x] holds the input value.
type GridGraph struct {
	Width, Height   int
	CellValues      [][]float64
	Conn            Connectivity
	LandThreshold   float64
	CellSize        float64
	neighborOffsets [][2]int
}
