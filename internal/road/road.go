package road

import (
	"sync"

	"github.com/azybler/hmm-mapmatch/internal/geo"
)

// Road is a directed edge in the routable graph, a projection of a single
// BaseRoad onto one heading. Two-way BaseRoads yield a forward/backward
// sibling pair sharing the same base but with distinct edge ids: the
// forward edge id is even, the backward sibling is forward+1.
type Road struct {
	id      int64
	base    *BaseRoad
	forward bool // heading: true = forward, false = backward

	source int64 // compacted vertex id
	target int64 // compacted vertex id

	sibling *Road // nil unless base.Direction == DirBoth

	m *RoadMap // owning map, for successor lookup

	reverseOnce sync.Once
	reverseGeom []geo.LatLng
}

// ID returns the edge id. Even ids are forward edges, odd ids are backward.
func (r *Road) ID() int64 { return r.id }

// Base returns the BaseRoad this edge was derived from.
func (r *Road) Base() *BaseRoad { return r.base }

// Heading returns the direction this edge represents.
func (r *Road) Heading() Direction {
	if r.forward {
		return DirForward
	}
	return DirBackward
}

// Length returns the edge length in meters (same for both siblings of a
// two-way road).
func (r *Road) Length() float64 { return r.base.Length }

// Priority returns the routing cost multiplier.
func (r *Road) Priority() float64 { return r.base.Priority }

// MaxSpeed returns the speed limit in m/s for this edge's heading.
func (r *Road) MaxSpeed() float64 {
	if r.forward {
		return r.base.MaxSpeedForward
	}
	return r.base.MaxSpeedBackward
}

// Source returns the source vertex id (compacted).
func (r *Road) Source() int64 { return r.source }

// Target returns the target vertex id (compacted).
func (r *Road) Target() int64 { return r.target }

// Sibling returns the reverse-heading edge sharing this edge's BaseRoad,
// or nil if the BaseRoad is one-way.
func (r *Road) Sibling() *Road { return r.sibling }

// Type returns the BaseRoad's road type (e.g. "motorway", "residential").
func (r *Road) Type() string { return r.base.Type }

// Geometry returns the ordered polyline from Source() to Target(). For a
// backward edge this is the reverse of the BaseRoad's canonical polyline,
// computed once and cached: the canonical forward polyline lives on
// BaseRoad, the reverse is derived lazily.
func (r *Road) Geometry() []geo.LatLng {
	if r.forward {
		return r.base.Geometry
	}
	r.reverseOnce.Do(func() {
		r.reverseGeom = geo.ReversePolyline(r.base.Geometry)
	})
	return r.reverseGeom
}

// Successors returns the edges whose source vertex equals this edge's
// target vertex, in ascending edge-id order (the order the Router relies on
// for deterministic tie-breaking).
func (r *Road) Successors() []*Road {
	if r.m == nil {
		return nil
	}
	return r.m.successorsOf(r.target)
}
