package routing

import (
	"fmt"

	"github.com/azybler/hmm-mapmatch/internal/geo"
	"github.com/azybler/hmm-mapmatch/internal/road"
)

// Path is a route between two RoadPoints: a non-empty ordered sequence of
// connected edges, the first carrying Source and the last carrying Target.
type Path struct {
	Source road.RoadPoint
	Target road.RoadPoint
	Edges  []*road.Road
}

// NewPath validates and constructs a Path. Construction fails with an
// "invalid path" error if the edges are disconnected, the source/target
// don't sit on the first/last edge, or a single-edge same-edge path has
// the target behind the source.
func NewPath(source, target road.RoadPoint, edges []*road.Road) (*Path, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("invalid path: empty edge sequence")
	}
	if edges[0] != source.Edge {
		return nil, fmt.Errorf("invalid path: first edge %d != source edge %d", edges[0].ID(), source.Edge.ID())
	}
	if edges[len(edges)-1] != target.Edge {
		return nil, fmt.Errorf("invalid path: last edge %d != target edge %d", edges[len(edges)-1].ID(), target.Edge.ID())
	}
	for i := 0; i+1 < len(edges); i++ {
		if edges[i+1].Source() != edges[i].Target() {
			return nil, fmt.Errorf("invalid path: edge %d (source %d) does not follow edge %d (target %d)",
				edges[i+1].ID(), edges[i+1].Source(), edges[i].ID(), edges[i].Target())
		}
	}
	if len(edges) == 1 && source.Edge == target.Edge && source.Fraction > target.Fraction {
		return nil, fmt.Errorf("invalid path: single-edge path requires source.fraction <= target.fraction")
	}
	return &Path{Source: source, Target: target, Edges: edges}, nil
}

// Length returns the geodesic length of the path in meters: the partial
// remainder of the first edge, full lengths of interior edges, and the
// partial prefix of the last edge.
func (p *Path) Length() float64 {
	if len(p.Edges) == 1 {
		return p.Edges[0].Length() * (p.Target.Fraction - p.Source.Fraction)
	}
	total := p.Edges[0].Length() * (1 - p.Source.Fraction)
	for i := 1; i+1 < len(p.Edges); i++ {
		total += p.Edges[i].Length()
	}
	total += p.Edges[len(p.Edges)-1].Length() * p.Target.Fraction
	return total
}

// Geometry returns the concatenated polyline of the path from Source.Point()
// to Target.Point().
func (p *Path) Geometry() []geo.LatLng {
	var out []geo.LatLng
	for i, e := range p.Edges {
		line := e.Geometry()
		startF, endF := 0.0, 1.0
		if i == 0 {
			startF = p.Source.Fraction
		}
		if i == len(p.Edges)-1 {
			endF = p.Target.Fraction
		}
		seg := clipPolyline(line, startF, endF)
		if i > 0 && len(seg) > 0 && len(out) > 0 {
			seg = seg[1:] // avoid duplicating the shared vertex
		}
		out = append(out, seg...)
	}
	return out
}

func clipPolyline(line []geo.LatLng, startF, endF float64) []geo.LatLng {
	if startF <= 0 && endF >= 1 {
		return append([]geo.LatLng(nil), line...)
	}
	out := []geo.LatLng{geo.Interpolate(line, startF)}
	if total := geo.Length(line); total > 0 {
		var accum float64
		for i := 1; i+1 < len(line); i++ {
			accum += geo.Distance(line[i-1], line[i])
			if f := accum / total; f > startF && f < endF {
				out = append(out, line[i])
			}
		}
	}
	return append(out, geo.Interpolate(line, endF))
}

// NumEdges returns the number of edges in the path, the quantity the HMM
// filter's deterministic tie-break rule compares first.
func (p *Path) NumEdges() int { return len(p.Edges) }

// IsUturn reports whether the path makes an immediate reversal onto a
// sibling edge anywhere along its edge sequence — the mechanism by which
// a two-way road permits turning around.
func (p *Path) IsUturn() bool {
	for i := 0; i+1 < len(p.Edges); i++ {
		if p.Edges[i].Sibling() == p.Edges[i+1] {
			return true
		}
	}
	return false
}
