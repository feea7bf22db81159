// Package gridgraph treats a population raster, a 2D grid of per-cell
// population counts, as a region of square units.
//
// What:
//
//   - GridGraph wraps a rectangular [][]float64 raster with a LandThreshold.
//   - Cells with value ≥ LandThreshold are land units; the rest is water.
//   - Identifies connected components ("islands") of land cells.
//   - Converts the land cells, or the largest island only, to a *core.Graph
//     whose unit IDs are row-major cell indices (y*Width + x).
//
// Connectivity:
//
//   - Conn4 joins orthogonal neighbors (rook adjacency).
//   - Conn8 also joins diagonal neighbors (queen adjacency).
//
// Complexity:
//
//   - ConnectedComponents: O(W×H×d), Memory: O(W×H)    (d = 4 or 8).
//   - ToCoreGraph:         O(W×H×d), Memory: O(W×H + E).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrBadValue: a cell is negative, NaN or infinite.
//   - ErrNoLand: no cell reaches LandThreshold.
package gridgraph
