package road

import "github.com/azybler/hmm-mapmatch/internal/geo"

// RoadPoint is a position along an edge, measured as the fraction of the
// edge's cumulative geodesic length from its source vertex.
type RoadPoint struct {
	Edge     *Road
	Fraction float64 // [0, 1]
}

// Point returns the WGS-84 coordinate of this road point.
func (p RoadPoint) Point() geo.LatLng {
	return geo.Interpolate(p.Edge.Geometry(), p.Fraction)
}

// Azimuth returns the polyline tangent direction at this fraction, degrees
// in [0, 360).
func (p RoadPoint) Azimuth() float64 {
	return geo.TangentAzimuth(p.Edge.Geometry(), p.Fraction)
}

// Equal reports whether two road points denote the same edge and fraction.
func (p RoadPoint) Equal(o RoadPoint) bool {
	return p.Edge == o.Edge && p.Fraction == o.Fraction
}
