package gridgraph

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvdistrict/core"
)

// NewGridGraph constructs a GridGraph from a non-empty, rectangular 2D slice.
// It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid, ErrNonRectangular, ErrBadValue or ErrBadCellSize.
// Algorithmic complexity: O(W×H) time and memory.
func NewGridGraph(values [][]float64, opts GridOptions) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	if opts.CellSize <= 0 || math.IsInf(opts.CellSize, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadCellSize, opts.CellSize)
	}
	h, w := len(values), len(values[0])
	cells := make([][]float64, h)
	for y, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for x, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("%w: (%d,%d)=%v", ErrBadValue, x, y, v)
			}
		}
		cells[y] = make([]float64, w)
		copy(cells[y], row)
	}

	var offsets [][2]int
	if opts.Conn == Conn8 {
		offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	} else {
		offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}

	return &GridGraph{
		Width:           w,
		Height:          h,
		CellValues:      cells,
		Conn:            opts.Conn,
		LandThreshold:   opts.LandThreshold,
		CellSize:        opts.CellSize,
		neighborOffsets: offsets,
	}, nil
}

// From2D is NewGridGraph with DefaultGridOptions and the given connectivity.
func From2D(values [][]float64, conn Connectivity) (*GridGraph, error) {
	opts := DefaultGridOptions()
	opts.Conn = conn

	return NewGridGraph(values, opts)
}

// InBounds reports whether (x,y) lies within the grid boundaries.
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// IsLand reports whether (x,y) is in bounds and at least LandThreshold.
func (gg *GridGraph) IsLand(x, y int) bool {
	return gg.InBounds(x, y) && gg.CellValues[y][x] >= gg.LandThreshold
}

// NeighborOffsets returns the neighbor offsets for gg.Conn.
func (gg *GridGraph) NeighborOffsets() [][2]int {
	return gg.neighborOffsets
}

// Land returns the land cells in row-major order.
func (gg *GridGraph) Land() []Cell {
	var out []Cell
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if gg.IsLand(x, y) {
				out = append(out, Cell{X: x, Y: y, Value: gg.CellValues[y][x]})
			}
		}
	}

	return out
}

// ToCoreGraph converts the land cells into a *core.Graph. Each land cell
// (x,y) becomes unit Index(x,y) with population CellValues[y][x]; neighbor
// land cells are joined per gg.Conn. Returns ErrNoLand when there is none.
// Complexity: O(W×H×d) time, Memory: O(W×H + E).
func (gg *GridGraph) ToCoreGraph() (*core.Graph, error) {
	return gg.subgraph(func(int) bool { return true })
}

// LargestIslandGraph is ToCoreGraph restricted to the largest island (ties
// go to the island with the smallest cell index). It also returns the
// indices of the land cells left out.
func (gg *GridGraph) LargestIslandGraph() (*core.Graph, []int, error) {
	comps := gg.ConnectedComponents()
	if len(comps) == 0 {
		return nil, nil, ErrNoLand
	}
	best := 0
	for i, c := range comps {
		if len(c) > len(comps[best]) {
			best = i
		}
	}
	keep := make(map[int]bool, len(comps[best]))
	for _, idx := range comps[best] {
		keep[idx] = true
	}
	var dropped []int
	for i, c := range comps {
		if i != best {
			dropped = append(dropped, c...)
		}
	}
	g, err := gg.subgraph(func(idx int) bool { return keep[idx] })

	return g, sortedCopy(dropped), err
}

func (gg *GridGraph) subgraph(include func(idx int) bool) (*core.Graph, error) {
	g := core.NewGraph(core.WithCapacity(gg.Width * gg.Height))
	area, perimeter := gg.CellSize*gg.CellSize, 4*gg.CellSize
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			idx := gg.Index(x, y)
			if !gg.IsLand(x, y) || !include(idx) {
				continue
			}
			u := core.Unit{ID: idx, Population: gg.CellValues[y][x], Area: area, Perimeter: perimeter}
			if err := g.AddUnit(u); err != nil {
				return nil, fmt.Errorf("gridgraph: %w", err)
			}
		}
	}
	if g.UnitCount() == 0 {
		return nil, ErrNoLand
	}
	for _, id := range g.Units() {
		x, y := gg.Coordinate(id)
		for _, d := range gg.neighborOffsets {
			nx, ny := x+d[0], y+d[1]
			if !gg.InBounds(nx, ny) {
				continue
			}
			nid := gg.Index(nx, ny)
			// each pair once, from its smaller index
			if nid < id || !g.HasUnit(nid) {
				continue
			}
			if _, err := g.AddEdge(id, nid); err != nil {
				return nil, fmt.Errorf("gridgraph: %w", err)
			}
		}
	}

	return g, nil
}

// Index maps (x,y) to a row-major index: y*Width + x.
func (gg *GridGraph) Index(x, y int) int {
	return y*gg.Width + x
}

// Coordinate converts a row-major index back to (x,y).
func (gg *GridGraph) Coordinate(idx int) (x, y int) {
	return idx % gg.Width, idx / gg.Width
}
