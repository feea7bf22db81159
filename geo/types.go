// Package geo turns a GeoJSON precinct collection into the attributed
// adjacency graph the engine consumes, and writes a chosen plan back as
// GeoJSON.
//
// Ingestion resolves a population value per feature, measures planar area
// and perimeter (optionally after projecting lon/lat to Web Mercator),
// detects rook or queen adjacency and keeps the largest connected component.
// Unit IDs are feature indices in the input collection.
package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvdistrict/core"
)

// Sentinel errors.
var (
	// ErrNoPopulation indicates that no population column and no vote
	// column for a proxy population were found.
	ErrNoPopulation = errors.New("geo: no population column and no vote columns for a proxy")

	// ErrZeroProxyPopulation indicates a proxy population that sums to zero.
	ErrZeroProxyPopulation = errors.New("geo: proxy population sums to zero")

	// ErrColumnNotFound indicates an explicit population column absent from
	// every feature.
	ErrColumnNotFound = errors.New("geo: population column not found")

	// ErrNoUnits indicates a collection without usable polygon features.
	ErrNoUnits = errors.New("geo: no usable polygon features")

	// ErrUnknownAdjacency indicates an unsupported adjacency rule.
	ErrUnknownAdjacency = errors.New("geo: unknown adjacency rule")
)

// PopulationColumns are the standard census population columns, in the
// order they are looked up.
var PopulationColumns = []string{"P0010001", "TOTPOP", "POP20", "POP100", "U7B001", "TOTAL_POP"}

// ProxyPrefixes select the vote-total columns summed into a proxy
// population when no standard column exists. Matching is on the upper-cased
// property name.
var ProxyPrefixes = []string{"G20", "C20", "R21", "S20", "USS", "PRE"}

// ProxyColumn is the name reported for a synthesized proxy population.
const ProxyColumn = "PROXY_POP"

// Adjacency selects which shared boundary makes two units neighbors.
type Adjacency string

const (
	// Rook joins units that share a boundary segment.
	Rook Adjacency = "rook"
	// Queen joins units that share at least one vertex.
	Queen Adjacency = "queen"
)

// ParseAdjacency maps a configuration string to an Adjacency; "" is Rook.
func ParseAdjacency(s string) (Adjacency, error) {
	switch a := Adjacency(s); a {
	case Rook, Queen:
		return a, nil
	case "":
		return Rook, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAdjacency, s)
	}
}

// DefaultSnap is the coordinate grid, in input units, that vertices are
// rounded to before adjacency matching.
const DefaultSnap = 1e-7

// Options configures Load.
type Options struct {
	// PopulationColumn overrides column detection when non-empty.
	PopulationColumn string

	// Project measures area and perimeter in Web Mercator meters, treating
	// input coordinates as WGS84 lon/lat.
	Project bool

	// Adjacency is the neighbor rule.
	Adjacency Adjacency

	// Snap is the vertex rounding grid for adjacency; <= 0 disables it.
	Snap float64

	// Logger receives ingestion warnings.
	Logger *zap.Logger
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns rook adjacency, DefaultSnap and no projection.
func DefaultOptions() Options {
	return Options{Adjacency: Rook, Snap: DefaultSnap}
}

// WithPopulationColumn forces the population column.
func WithPopulationColumn(name string) Option {
	return func(o *Options) { o.PopulationColumn = name }
}

// WithProjection enables Web Mercator measurement.
func WithProjection(on bool) Option {
	return func(o *Options) { o.Project = on }
}

// WithAdjacency sets the neighbor rule.
func WithAdjacency(a Adjacency) Option {
	return func(o *Options) { o.Adjacency = a }
}

// WithSnap sets the vertex rounding grid.
func WithSnap(grid float64) Option {
	return func(o *Options) { o.Snap = grid }
}

// WithLogger sets the warning logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Region is a loaded precinct collection and its adjacency graph.
type Region struct {
	// Graph holds the kept units; unit ID = feature index.
	Graph *core.Graph

	// Features is the input collection, unmodified.
	Features *geojson.FeatureCollection

	// Population describes how unit populations were resolved.
	Population Population

	// DroppedGeometry lists features skipped for unusable geometry.
	DroppedGeometry []int

	// SelfIntersecting lists kept features with a self-intersecting ring.
	// They are measured as given, without repair, so their area and
	// perimeter are not reliable.
	SelfIntersecting []int

	// DroppedIslands lists units outside the largest component.
	DroppedIslands []int
}

// Population describes the resolved population source.
type Population struct {
	// Column is the standard or explicit column, or ProxyColumn.
	Column string

	// ProxyColumns lists the summed vote columns for a proxy population.
	ProxyColumns []string

	// Values holds one population per feature.
	Values []float64
}
