// Package road implements the directed road graph: BaseRoad source records,
// the split-edge Road graph derived from them, RoadMap construction, and
// RoadPoint positions along edges.
package road

import (
	"fmt"

	"github.com/azybler/hmm-mapmatch/internal/geo"
)

// Direction encodes which of a BaseRoad's headings are traversable.
type Direction int

const (
	DirForward  Direction = 1
	DirBackward Direction = 2
	DirBoth     Direction = 3
)

func (d Direction) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBackward:
		return "backward"
	case DirBoth:
		return "both"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// BaseRoad is an immutable road segment as delivered by a road provider.
// It yields one or two Roads (directed edges) in the routable graph,
// depending on Direction.
type BaseRoad struct {
	ID     int64
	RefID  int64 // external reference id (e.g. source map way id)
	Source int64 // source vertex, as given by the provider (pre-dedup)
	Target int64 // target vertex, as given by the provider (pre-dedup)

	Direction Direction
	Type      string
	Priority  float64 // multiplicative routing cost factor, >= 1.0

	MaxSpeedForward  float64 // m/s
	MaxSpeedBackward float64 // m/s

	Length   float64 // meters
	Geometry []geo.LatLng // ordered source -> target, WGS-84

	Tunnel      bool
	TunnelEntry bool
	Country     string
}

// Validate checks BaseRoad's invariants: positive length, a polyline with
// at least two vertices, and positive speeds.
func (b *BaseRoad) Validate() error {
	if b.Length <= 0 {
		return fmt.Errorf("road %d: length must be > 0, got %v", b.ID, b.Length)
	}
	if len(b.Geometry) < 2 {
		return fmt.Errorf("road %d: geometry must have >= 2 vertices, got %d", b.ID, len(b.Geometry))
	}
	if b.Priority < 1.0 {
		return fmt.Errorf("road %d: priority must be >= 1.0, got %v", b.ID, b.Priority)
	}
	switch b.Direction {
	case DirForward, DirBoth:
		if b.MaxSpeedForward <= 0 {
			return fmt.Errorf("road %d: maxspeedForward must be > 0, got %v", b.ID, b.MaxSpeedForward)
		}
	}
	switch b.Direction {
	case DirBackward, DirBoth:
		if b.MaxSpeedBackward <= 0 {
			return fmt.Errorf("road %d: maxspeedBackward must be > 0, got %v", b.ID, b.MaxSpeedBackward)
		}
	}
	if b.Direction != DirForward && b.Direction != DirBackward && b.Direction != DirBoth {
		return fmt.Errorf("road %d: invalid direction %v", b.ID, b.Direction)
	}
	return nil
}

// Provider yields BaseRoad records for RoadMap construction. Ordering is
// irrelevant; implementations are external (OSM import, a database cursor,
// a test fixture slice) and outside this package's concern.
type Provider interface {
	Roads() ([]*BaseRoad, error)
}

// SliceProvider adapts a plain slice of BaseRoads to Provider, the shape
// most tests and small embedders need.
type SliceProvider []*BaseRoad

func (s SliceProvider) Roads() ([]*BaseRoad, error) { return s, nil }
