// Package builder produces deterministic synthetic regions for tests,
// benchmarks and CLI demos.
//
// Every unit is a unit-square cell (area 1, perimeter 4); only populations
// and adjacency vary:
//
//   - Grid(rows, cols): rook-adjacent lattice, index r*cols + c.
//   - Path(n):          strip of n cells.
//   - Cycle(n):         ring of n cells (n >= 3).
//
// Options (BuilderOption):
//
//   - WithFirstID(id):             offset unit IDs.
//   - WithUniformPopulation(p):    constant population (default 1).
//   - WithPopulationFn(fn):        population of the i-th unit.
//   - WithRandomPopulation(a, b):  integer populations in [a, b]; needs an rng.
//   - WithSeed(seed) / WithRand(r): random source.
//
// Invalid option arguments panic when the option is constructed. Runtime
// failures are reported with ErrTooFewUnits, ErrNeedRandSource or
// ErrConstructFailed.
//
// BuildGraph applies constructors in order on one graph; IDs continue from
// one constructor to the next, so BuildGraph(nil, nil, Path(3), Path(2))
// is a region with two islands.
package builder
