package spanning

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvdistrict/core"
)

// RandomWeights returns a WeightFunc with one uniform [0,1) weight per edge,
// drawn from rng in edge-ID order when RandomWeights is called.
func RandomWeights(graph *core.Graph, rng *rand.Rand) WeightFunc {
	edges := graph.Edges()
	w := make(map[int]float64, len(edges))
	for _, e := range edges {
		w[e.ID] = rng.Float64()
	}

	return func(e core.Edge) float64 { return w[e.ID] }
}

// Sample draws a random spanning tree of graph with the given method. It is
// a pure function of (graph, seed, method): the same inputs always give the
// same tree, whichever goroutine runs it.
func Sample(graph *core.Graph, seed int64, method Method) (*Tree, error) {
	if graph == nil {
		return nil, ErrInvalidGraph
	}
	rng := rand.New(rand.NewSource(seed))

	switch method {
	case MethodKruskal, "":
		t, _, err := Kruskal(graph, RandomWeights(graph, rng))
		return t, err
	case MethodPrim:
		units := graph.Units()
		if len(units) == 0 {
			return nil, ErrDisconnected
		}
		root := units[rng.Intn(len(units))]
		t, _, err := Prim(graph, root, RandomWeights(graph, rng))
		return t, err
	case MethodWilson:
		return Wilson(graph, rng)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, string(method))
	}
}
