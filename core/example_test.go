package core_test

import (
	"fmt"

	"github.com/katalvlaran/lvdistrict/core"
)

// ExampleGraph builds a three-unit strip and inspects it.
func ExampleGraph() {
	g := core.NewGraph()
	for id := 0; id < 3; id++ {
		_ = g.AddUnit(core.Unit{ID: id, Population: 100, Area: 1, Perimeter: 4})
	}
	_, _ = g.AddEdge(0, 1)
	_, _ = g.AddEdge(1, 2)

	nbrs, _ := g.Neighbors(1)
	fmt.Println("units:", g.Units())
	fmt.Println("neighbors of 1:", nbrs)
	fmt.Println("population:", g.TotalPopulation())

	sub := core.InducedSubgraph(g, map[int]bool{0: true, 1: true})
	fmt.Println("subgraph edges:", sub.EdgeCount())

	// Output:
	// units: [0 1 2]
	// neighbors of 1: [0 2]
	// population: 300
	// subgraph edges: 1
}
