// Package routing implements Cost functions and a bounded, goal-directed,
// multi-target Dijkstra Router over a road.RoadMap.
package routing

import "github.com/azybler/hmm-mapmatch/internal/road"

// Cost is additive, non-negative routing cost. Edge returns the full-edge
// cost; Partial returns the cost of travelling a fraction of the edge
// starting from its source vertex.
type Cost interface {
	Edge(e *road.Road) float64
	Partial(e *road.Road, fraction float64) float64
}

type distanceCost struct{}

func (distanceCost) Edge(e *road.Road) float64                 { return e.Length() }
func (distanceCost) Partial(e *road.Road, fraction float64) float64 { return e.Length() * fraction }

type timeCost struct{}

func (timeCost) Edge(e *road.Road) float64 { return e.Length() / e.MaxSpeed() }
func (timeCost) Partial(e *road.Road, fraction float64) float64 {
	return (e.Length() / e.MaxSpeed()) * fraction
}

// Distance is the length-based Cost.
var Distance Cost = distanceCost{}

// Time is the travel-time Cost (length / maxspeed).
var Time Cost = timeCost{}

// prioritized multiplies an inner Cost by the edge's routing priority.
type prioritized struct{ inner Cost }

func (p prioritized) Edge(e *road.Road) float64 { return p.inner.Edge(e) * e.Priority() }
func (p prioritized) Partial(e *road.Road, fraction float64) float64 {
	return p.inner.Partial(e, fraction) * e.Priority()
}

// WithPriority wraps a Cost so that it is multiplied by each edge's
// Priority() factor.
func WithPriority(c Cost) Cost { return prioritized{inner: c} }

// cappedVelocityTime is a Time-like cost where each edge's effective speed
// is capped at maxVelocity, used as the Router's bound function when a
// caller supplies an upper speed bound (spec §4.D maxVelocity).
type cappedVelocityTime struct{ maxVelocity float64 }

func (c cappedVelocityTime) speed(e *road.Road) float64 {
	s := e.MaxSpeed()
	if c.maxVelocity > 0 && c.maxVelocity < s {
		return c.maxVelocity
	}
	return s
}

func (c cappedVelocityTime) Edge(e *road.Road) float64 { return e.Length() / c.speed(e) }
func (c cappedVelocityTime) Partial(e *road.Road, fraction float64) float64 {
	return (e.Length() / c.speed(e)) * fraction
}

// VelocityCappedTime returns a Time cost whose per-edge speed never exceeds
// maxVelocity (m/s). Used to bound the Router with a realistic worst-case
// travel time independent of posted speed limits.
func VelocityCappedTime(maxVelocity float64) Cost { return cappedVelocityTime{maxVelocity: maxVelocity} }
