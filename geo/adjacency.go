package geo

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

type vertexKey [2]int64

type segmentKey [2]vertexKey

// snapper rounds coordinates onto a grid so that shared boundaries written
// with slightly different floating-point noise still match.
type snapper float64

func (s snapper) key(p orb.Point) vertexKey {
	if s <= 0 {
		return vertexKey{int64(math.Float64bits(p[0])), int64(math.Float64bits(p[1]))}
	}
	g := float64(s)
	return vertexKey{int64(math.Round(p[0] / g)), int64(math.Round(p[1] / g))}
}

func less(a, b vertexKey) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// rings returns every ring of a Polygon or MultiPolygon.
func rings(g orb.Geometry) []orb.Ring {
	switch t := g.(type) {
	case orb.Polygon:
		return t
	case orb.MultiPolygon:
		var out []orb.Ring
		for _, p := range t {
			out = append(out, p...)
		}
		return out
	default:
		return nil
	}
}

// neighborPairs returns the sorted, de-duplicated unit pairs (a < b) that
// share a boundary segment (Rook) or a vertex (Queen).
func neighborPairs(geoms map[int]orb.Geometry, rule Adjacency, snap snapper) [][2]int {
	owners := make(map[interface{}][]int)
	add := func(k interface{}, id int) {
		ids := owners[k]
		if n := len(ids); n > 0 && ids[n-1] == id {
			return
		}
		owners[k] = append(ids, id)
	}

	ids := make([]int, 0, len(geoms))
	for id := range geoms {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		for _, r := range rings(geoms[id]) {
			for i := 0; i < len(r); i++ {
				a := snap.key(r[i])
				if rule == Queen {
					add(a, id)
					continue
				}
				if i+1 == len(r) {
					break
				}
				b := snap.key(r[i+1])
				if a == b {
					continue
				}
				if less(b, a) {
					a, b = b, a
				}
				add(segmentKey{a, b}, id)
			}
		}
	}

	seen := make(map[[2]int]bool)
	var pairs [][2]int
	for _, owned := range owners {
		for i := 0; i < len(owned); i++ {
			for j := i + 1; j < len(owned); j++ {
				p := [2]int{owned[i], owned[j]}
				if p[0] > p[1] {
					p[0], p[1] = p[1], p[0]
				}
				if p[0] == p[1] || seen[p] {
					continue
				}
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	return pairs
}
