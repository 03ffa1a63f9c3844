package hmm

import (
	"context"
	"math"

	"github.com/azybler/hmm-mapmatch/internal/config"
	"github.com/azybler/hmm-mapmatch/internal/geo"
	"github.com/azybler/hmm-mapmatch/internal/road"
	"github.com/azybler/hmm-mapmatch/internal/routing"
)

// TransitionProbability computes the route from prevPoint to curPoint with
// cost=Time and bound=Time capped by Δt·vMax, and scores it against the
// great-circle distance between the two originating samples. It returns
// ok=false for a null transition (no route within bound, a non-positive
// Δt, or a non-positive Beta). When a route exists but the score underflows
// to 0, it returns ok=true with prob 0.
func TransitionProbability(ctx context.Context, rt *routing.Router, prevSample, curSample Sample, prevPoint, curPoint road.RoadPoint, cfg config.MatcherConfig) (route *routing.Path, prob float64, ok bool) {
	deltaT := float64(curSample.Time-prevSample.Time) / 1000.0
	if deltaT <= 0 {
		return nil, 0, false
	}
	maxBound := deltaT * cfg.VMax
	path := rt.RouteOne(ctx, prevPoint, curPoint, routing.Time, routing.Time, maxBound, routing.Options{MaxVelocity: cfg.VMax})
	if path == nil {
		return nil, 0, false
	}
	if cfg.Beta <= 0 {
		return path, 0, false
	}

	greatCircle := geo.Distance(prevSample.Point, curSample.Point)
	pt := (1 / cfg.Beta) * math.Exp(-math.Abs(path.Length()-greatCircle)/cfg.Beta)
	if math.IsNaN(pt) {
		return path, 0, false
	}
	return path, pt, true
}
