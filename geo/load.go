package geo

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvdistrict/bfs"
	"github.com/katalvlaran/lvdistrict/core"
)

// LoadFile opens path and calls Load.
func LoadFile(path string, opts ...Option) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geo: %w", err)
	}
	defer f.Close()

	return Load(f, opts...)
}

// Load reads a GeoJSON FeatureCollection from r and builds its Region.
//
// Features without a Polygon or MultiPolygon geometry, or with zero or
// non-finite area or perimeter, are dropped. When the remaining graph is
// not connected, only the largest component is kept (ties go to the
// component holding the smallest unit ID).
func Load(r io.Reader, opts ...Option) (*Region, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	rule, err := ParseAdjacency(string(o.Adjacency))
	if err != nil {
		return nil, err
	}
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("geo: reading collection: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geo: decoding collection: %w", err)
	}

	pop, err := ResolvePopulation(fc, o.PopulationColumn)
	if err != nil {
		return nil, err
	}
	if pop.Column == ProxyColumn {
		log.Warn("no standard population column, using proxy population",
			zap.Strings("columns", pop.ProxyColumns))
	} else {
		log.Debug("population column resolved", zap.String("column", pop.Column))
	}

	region := &Region{Features: fc, Population: pop}
	g := core.NewGraph(core.WithCapacity(len(fc.Features)))
	geoms := make(map[int]orb.Geometry, len(fc.Features))
	for i, f := range fc.Features {
		area, perimeter, ok := measure(f.Geometry, o.Project)
		if !ok {
			region.DroppedGeometry = append(region.DroppedGeometry, i)
			continue
		}
		if selfIntersects(f.Geometry) {
			region.SelfIntersecting = append(region.SelfIntersecting, i)
		}
		u := core.Unit{ID: i, Population: pop.Values[i], Area: area, Perimeter: perimeter}
		if err = g.AddUnit(u); err != nil {
			return nil, fmt.Errorf("geo: feature %d: %w", i, err)
		}
		geoms[i] = f.Geometry
	}
	if n := len(region.DroppedGeometry); n > 0 {
		log.Warn("dropped features with unusable geometry", zap.Int("count", n))
	}
	if n := len(region.SelfIntersecting); n > 0 {
		log.Warn("self-intersecting geometry measured without repair",
			zap.Int("count", n), zap.Ints("features", region.SelfIntersecting))
	}
	if g.UnitCount() == 0 {
		return nil, ErrNoUnits
	}

	for _, p := range neighborPairs(geoms, rule, snapper(o.Snap)) {
		if _, err = g.AddEdge(p[0], p[1]); err != nil {
			return nil, fmt.Errorf("geo: adjacency %d-%d: %w", p[0], p[1], err)
		}
	}

	g, dropped, err := largestComponent(g)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		log.Warn("graph is not connected, keeping the largest component",
			zap.Int("kept", g.UnitCount()),
			zap.Int("dropped", len(dropped)),
		)
	}
	region.Graph, region.DroppedIslands = g, dropped

	return region, nil
}

// measure returns the planar area and boundary length of a polygonal
// geometry, projected to Web Mercator first when project is set.
func measure(geom orb.Geometry, proj bool) (area, perimeter float64, ok bool) {
	switch geom.(type) {
	case orb.Polygon, orb.MultiPolygon:
	default:
		return 0, 0, false
	}
	if proj {
		geom = project.Geometry(orb.Clone(geom), project.WGS84.ToMercator)
	}
	area = math.Abs(planar.Area(geom))
	perimeter = planar.Length(geom)
	for _, v := range [...]float64{area, perimeter} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return 0, 0, false
		}
	}

	return area, perimeter, true
}

// selfIntersects reports whether any ring of a Polygon or MultiPolygon
// crosses or touches itself away from its consecutive vertices.
func selfIntersects(geom orb.Geometry) bool {
	var polys []orb.Polygon
	switch g := geom.(type) {
	case orb.Polygon:
		polys = []orb.Polygon{g}
	case orb.MultiPolygon:
		polys = g
	}
	for _, poly := range polys {
		for _, ring := range poly {
			if ringSelfIntersects(ring) {
				return true
			}
		}
	}

	return false
}

// ringSelfIntersects checks every pair of non-adjacent edges. O(n²).
func ringSelfIntersects(ring orb.Ring) bool {
	pts := make([]orb.Point, 0, len(ring)+1)
	for _, p := range ring {
		if len(pts) == 0 || p != pts[len(pts)-1] {
			pts = append(pts, p)
		}
	}
	if len(pts) > 1 && pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	m := len(pts) - 1 // edges
	if m < 4 {
		return false
	}
	for i := 0; i < m; i++ {
		for j := i + 2; j < m; j++ {
			if i == 0 && j == m-1 {
				continue // first and last edge share the closing vertex
			}
			if segmentsIntersect(pts[i], pts[i+1], pts[j], pts[j+1]) {
				return true
			}
		}
	}

	return false
}

func segmentsIntersect(a, b, c, d orb.Point) bool {
	d1, d2 := orient(c, d, a), orient(c, d, b)
	d3, d4 := orient(a, b, c), orient(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	return (d1 == 0 && onSegment(c, d, a)) || (d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) || (d4 == 0 && onSegment(a, b, d))
}

// orient is the cross product (b-a)×(c-a).
func orient(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// onSegment reports whether p, collinear with a-b, lies within its box.
func onSegment(a, b, p orb.Point) bool {
	return min(a[0], b[0]) <= p[0] && p[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= p[1] && p[1] <= max(a[1], b[1])
}

// largestComponent returns g itself when connected, otherwise the induced
// subgraph of its largest component and the IDs left out.
func largestComponent(g *core.Graph) (*core.Graph, []int, error) {
	comps, err := bfs.Components(g)
	if err != nil {
		return nil, nil, err
	}
	if len(comps) <= 1 {
		return g, nil, nil
	}
	// components come ordered by smallest ID, so strict > keeps the first
	best := 0
	for i, c := range comps {
		if len(c) > len(comps[best]) {
			best = i
		}
	}
	keep := make(map[int]bool, len(comps[best]))
	for _, id := range comps[best] {
		keep[id] = true
	}
	var dropped []int
	for _, id := range g.Units() {
		if !keep[id] {
			dropped = append(dropped, id)
		}
	}

	return core.InducedSubgraph(g, keep), dropped, nil
}
