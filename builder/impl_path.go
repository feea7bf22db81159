package builder

import (
	"fmt"

	"github.com/katalvlaran/lvdistrict/core"
)

const (
	methodPath   = "Path"
	minPathNodes = 1
)

// Path returns a Constructor for a strip of n cells joined end to end.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewUnits)
		}
		ids, err := addCells(g, cfg, methodPath, n)
		if err != nil {
			return err
		}
		for i := 0; i+1 < n; i++ {
			if err = addEdge(g, methodPath, ids[i], ids[i+1]); err != nil {
				return err
			}
		}

		return nil
	}
}
