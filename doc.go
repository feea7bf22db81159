// Package lvdistrict samples redistricting plans with a ReCom Markov chain:
// split a region of population units into k contiguous districts of
// near-equal population, then walk the space of such plans by repeatedly
// merging two adjacent districts and re-splitting them along a random
// spanning tree.
//
// What is inside?
//
//	A library plus a CLI that bring together:
//		• Region graphs: units with population, area and perimeter
//		• Inputs: GeoJSON precincts, CSV population rasters, synthetic grids
//		• Spanning trees: Kruskal, Prim and Wilson samplers
//		• Tree cuts: balanced edge search and recursive initial plans
//		• The chain: proposals, constraints, seeded and reproducible runs
//		• Scoring: Polsby-Popper compactness and best-plan selection
//		• Ambient: zap logging, Prometheus metrics, YAML/env config, SQLite run store
//
// Under the hood the packages layer bottom-up:
//
//	core/       Graph, Unit and Edge with thread-safe primitives
//	bfs/, dfs/  traversals, connectivity and subtree sums
//	builder/    deterministic Grid, Path and Cycle regions
//	spanning/   uniform-ish random spanning trees
//	tree/       balanced cuts and recursive partitioning
//	partition/  district assignments and population tallies
//	constraint/ population bounds and contiguity
//	proposal/   the ReCom merge-and-split move
//	chain/      the Markov chain state machine
//	ensemble/   accepted plans, compactness and selection
//	redistrict/ one call from graph and Params to Result
//	geo/, gridgraph/ GeoJSON and raster region loaders
//	config/, runstore/, telemetry/ settings, persistence, logs and metrics
//
// Quick ASCII example, a 2×4 grid split into two districts:
//
//	A A B B
//	A A B B
//
//	go run github.com/katalvlaran/lvdistrict/cmd/lvdistrict -grid-rows 2 -grid-cols 4
package lvdistrict
