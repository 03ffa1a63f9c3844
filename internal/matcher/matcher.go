package matcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/azybler/hmm-mapmatch/internal/config"
	"github.com/azybler/hmm-mapmatch/internal/geo"
	"github.com/azybler/hmm-mapmatch/internal/hmm"
	"github.com/azybler/hmm-mapmatch/internal/road"
	"github.com/azybler/hmm-mapmatch/internal/routing"
)

// Matcher drives the HMM filter online: a façade holding long-lived
// dependencies, exposing one stateful, per-trace entry point.
type Matcher struct {
	roadMap *road.RoadMap
	router  *routing.Router
	cfg     config.MatcherConfig
	log     *slog.Logger

	state   []*hmm.MatcherCandidate
	prevZ   *hmm.Sample
	history *KState

	nextCandidateID int
}

// New creates a Matcher bound to a built RoadMap. log may be nil, in which
// case slog.Default() is used.
func New(rm *road.RoadMap, cfg config.MatcherConfig, log *slog.Logger) *Matcher {
	if log == nil {
		log = slog.Default()
	}
	return &Matcher{
		roadMap: rm,
		router:  routing.NewRouter(),
		cfg:     cfg,
		log:     log,
		history: NewKState(cfg.StateWindow, cfg.StateCount),
	}
}

// Step ingests one sample, advancing the filter and returning the new state
// vector S_t. A gated sample (too soon or too close to the last accepted
// one) returns the unchanged previous state vector and ok=false.
func (m *Matcher) Step(ctx context.Context, z hmm.Sample) (state []*hmm.MatcherCandidate, ok bool, err error) {
	if err := z.Validate(); err != nil {
		return nil, false, fmt.Errorf("matcher: %w", err)
	}

	if m.prevZ != nil && m.gated(z) {
		return m.state, false, nil
	}

	points := m.searchCandidates(z)
	candidates := make([]*hmm.MatcherCandidate, len(points))
	emission := make([]float64, len(points))
	for i, pt := range points {
		emission[i] = hmm.EmissionProbability(z, pt, m.cfg)
		candidates[i] = &hmm.MatcherCandidate{
			ID:    m.newCandidateID(),
			Point: pt,
			Sample: &hmm.Sample{
				ID: z.ID, TraceID: z.TraceID, Time: z.Time, Point: z.Point,
				Azimuth: z.Azimuth, GPSOutage: z.GPSOutage, Velocity: z.Velocity, Accuracy: z.Accuracy,
			},
		}
	}

	prevZ := m.prevZ
	transitionFn := func(p, c *hmm.MatcherCandidate) (hmm.Transition, float64, bool) {
		path, pt, tok := hmm.TransitionProbability(ctx, m.router, *prevZ, z, p.Point, c.Point, m.cfg)
		if !tok {
			return nil, 0, false
		}
		return &hmm.MatcherTransition{Route: path}, pt, true
	}

	var newState []*hmm.MatcherCandidate
	var brk bool
	if prevZ == nil {
		newState, brk = hmm.Forward(nil, candidates, emission, z.Time, nil)
	} else {
		newState, brk = hmm.Forward(m.state, candidates, emission, z.Time, transitionFn)
	}
	if brk {
		m.log.Warn("hmm break: no viable transition from previous state, restarting", "sampleID", z.ID, "traceID", z.TraceID, "time", z.Time)
	}

	m.state = newState
	zCopy := z
	m.prevZ = &zCopy
	m.history.Push(time.UnixMilli(z.Time), newState)

	return newState, true, nil
}

// gated reports whether z should be skipped under the minimum-interval /
// minimum-distance sample gate.
func (m *Matcher) gated(z hmm.Sample) bool {
	if m.cfg.MinInterval > 0 {
		dt := time.Duration(z.Time-m.prevZ.Time) * time.Millisecond
		if dt < m.cfg.MinInterval {
			return true
		}
	}
	if m.cfg.MinDistance > 0 {
		if geo.Distance(m.prevZ.Point, z.Point) < m.cfg.MinDistance {
			return true
		}
	}
	return false
}

// searchCandidates runs the radius search at z.point, widening up to
// RadiusMax if the initial radius yields nothing.
func (m *Matcher) searchCandidates(z hmm.Sample) []road.RoadPoint {
	r := m.cfg.Radius
	points := m.roadMap.Index().Radius(z.Point, r)
	for len(points) == 0 && r < m.cfg.RadiusMax {
		r *= 2
		if r > m.cfg.RadiusMax {
			r = m.cfg.RadiusMax
		}
		points = m.roadMap.Index().Radius(z.Point, r)
		if r == m.cfg.RadiusMax {
			break
		}
	}
	return points
}

func (m *Matcher) newCandidateID() string {
	m.nextCandidateID++
	return fmt.Sprintf("c%d", m.nextCandidateID)
}

// State returns the current state vector S_t.
func (m *Matcher) State() []*hmm.MatcherCandidate { return m.state }

// MostProbableTrajectory walks the predecessor chain from the candidate
// maximizing seqprob in the current state vector, concatenating transitions
// in reverse into a single Path. Returns nil if the state vector is empty.
func (m *Matcher) MostProbableTrajectory() *routing.Path {
	if len(m.state) == 0 {
		return nil
	}
	best := m.state[0]
	for _, c := range m.state[1:] {
		if c.SeqProb() > best.SeqProb() {
			best = c
		}
	}

	var edges []*routing.Path
	for c := best; c != nil && c.TransitionV != nil; c = c.Predecessor {
		edges = append(edges, c.TransitionV.Route)
	}
	if len(edges) == 0 {
		return nil
	}
	// edges were collected backward (most recent first); reverse.
	for i, j := 0, len(edges)-1; i < j; i, j = j, i {
		edges[i], edges[j] = edges[j], edges[i]
	}

	var allEdges []*road.Road
	for _, p := range edges {
		seg := p.Edges
		if len(allEdges) > 0 && len(seg) > 0 && allEdges[len(allEdges)-1] == seg[0] {
			seg = seg[1:] // consecutive transitions share the pivot candidate's edge
		}
		allEdges = append(allEdges, seg...)
	}
	combined, err := routing.NewPath(edges[0].Source, edges[len(edges)-1].Target, allEdges)
	if err != nil {
		m.log.Warn("most-probable-trajectory reconstruction produced a disconnected path", "error", err)
		return nil
	}
	return combined
}
