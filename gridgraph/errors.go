package gridgraph

import "errors"

var (
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrBadValue indicates a negative or non-finite cell value.
	ErrBadValue = errors.New("gridgraph: cell values must be finite and non-negative")
	// ErrNoLand indicates that no cell is land.
	ErrNoLand = errors.New("gridgraph: no land cells")
	// ErrBadCellSize indicates a non-positive cell size.
	ErrBadCellSize = errors.New("gridgraph: cell size must be positive")
)
