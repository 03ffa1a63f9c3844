package interchange

import (
	"fmt"

	"github.com/azybler/hmm-mapmatch/internal/road"
	"github.com/azybler/hmm-mapmatch/internal/routing"
)

// RoadPoint is the normative wire shape of road.RoadPoint: an edge id (even
// = forward, odd = backward sibling) and a fraction along it.
type RoadPoint struct {
	Road     int64   `json:"road"`
	Fraction float64 `json:"fraction"`
}

// Path is the normative wire shape of routing.Path.
type Path struct {
	Source RoadPoint `json:"source"`
	Target RoadPoint `json:"target"`
	Roads  []int64   `json:"roads"`
}

// Transition is the normative wire shape of a MatcherTransition.
type Transition struct {
	Route Path `json:"route"`
}

// FromRoadPoint converts a domain RoadPoint to its wire shape.
func FromRoadPoint(rp road.RoadPoint) RoadPoint {
	return RoadPoint{Road: rp.Edge.ID(), Fraction: rp.Fraction}
}

// ToRoadPoint resolves a wire RoadPoint against rm's edge table.
func ToRoadPoint(rm *road.RoadMap, w RoadPoint) (road.RoadPoint, error) {
	e, ok := rm.Edge(w.Road)
	if !ok {
		return road.RoadPoint{}, fmt.Errorf("interchange: unknown edge id %d", w.Road)
	}
	return road.RoadPoint{Edge: e, Fraction: w.Fraction}, nil
}

// FromPath converts a domain Path to its wire shape.
func FromPath(p *routing.Path) Path {
	w := Path{
		Source: FromRoadPoint(p.Source),
		Target: FromRoadPoint(p.Target),
		Roads:  make([]int64, len(p.Edges)),
	}
	for i, e := range p.Edges {
		w.Roads[i] = e.ID()
	}
	return w
}

// ToPath resolves a wire Path against rm's edge table, reconstructing a
// validated domain Path.
func ToPath(rm *road.RoadMap, w Path) (*routing.Path, error) {
	source, err := ToRoadPoint(rm, w.Source)
	if err != nil {
		return nil, err
	}
	target, err := ToRoadPoint(rm, w.Target)
	if err != nil {
		return nil, err
	}
	edges := make([]*road.Road, len(w.Roads))
	for i, id := range w.Roads {
		e, ok := rm.Edge(id)
		if !ok {
			return nil, fmt.Errorf("interchange: unknown edge id %d in path", id)
		}
		edges[i] = e
	}
	return routing.NewPath(source, target, edges)
}
