package road

import (
	"math"

	"github.com/tidwall/rtree"

	"github.com/azybler/hmm-mapmatch/internal/geo"
)

// metersPerDegreeLat is the (near-constant) length of one degree of
// latitude; used to convert a search radius in meters into a bounding-box
// padding in degrees for the coarse R-tree filter.
const metersPerDegreeLat = 111_320.0

// Index is an edge-keyed spatial index: an R-tree over each edge's polyline
// bounding envelope, with exact per-edge projection as the second pass.
// Both the forward and backward Road of a two-way BaseRoad are indexed
// separately, so a radius search can return one projection for each.
type Index struct {
	tree rtree.RTreeG[*Road]
}

// NewIndex builds a spatial index over the given edges.
func NewIndex(edges []*Road) *Index {
	idx := &Index{}
	for _, e := range edges {
		lo, hi := envelope(e.Geometry())
		idx.tree.Insert(lo, hi, e)
	}
	return idx
}

func envelope(line []geo.LatLng) (lo, hi [2]float64) {
	lo = [2]float64{line[0].Lon, line[0].Lat}
	hi = lo
	for _, p := range line[1:] {
		if p.Lon < lo[0] {
			lo[0] = p.Lon
		}
		if p.Lat < lo[1] {
			lo[1] = p.Lat
		}
		if p.Lon > hi[0] {
			hi[0] = p.Lon
		}
		if p.Lat > hi[1] {
			hi[1] = p.Lat
		}
	}
	return
}

// degreePad converts a radius in meters into (dLon, dLat) degree paddings
// centered at the given latitude.
func degreePad(lat, meters float64) (dLon, dLat float64) {
	dLat = meters / metersPerDegreeLat
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 1e-6 {
		cosLat = 1e-6
	}
	dLon = meters / (metersPerDegreeLat * cosLat)
	return
}

// Radius returns the RoadPoints that are projections of q onto edges whose
// geometry comes within r meters of q: a coarse R-tree envelope search
// followed by exact per-candidate projection.
func (idx *Index) Radius(q geo.LatLng, r float64) []RoadPoint {
	dLon, dLat := degreePad(q.Lat, r)
	lo := [2]float64{q.Lon - dLon, q.Lat - dLat}
	hi := [2]float64{q.Lon + dLon, q.Lat + dLat}

	var out []RoadPoint
	idx.tree.Search(lo, hi, func(_, _ [2]float64, e *Road) bool {
		point, fraction := geo.Project(e.Geometry(), q)
		if geo.Distance(point, q) <= r {
			out = append(out, RoadPoint{Edge: e, Fraction: fraction})
		}
		return true
	})
	return out
}
