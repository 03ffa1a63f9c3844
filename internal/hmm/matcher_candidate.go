package hmm

import (
	"github.com/azybler/hmm-mapmatch/internal/road"
	"github.com/azybler/hmm-mapmatch/internal/routing"
)

// MatcherTransition is the concrete Transition: the inferred route between
// two consecutive candidates (the Matcher façade's MatcherTransition type).
type MatcherTransition struct {
	Route *routing.Path
}

// NumEdges implements Transition.
func (t *MatcherTransition) NumEdges() int {
	if t == nil || t.Route == nil {
		return 0
	}
	return t.Route.NumEdges()
}

// MatcherCandidate is the concrete state candidate (StateCandidate). It
// implements Candidate[*MatcherCandidate].
type MatcherCandidate struct {
	ID          string
	Point       road.RoadPoint
	Sample      *Sample
	FiltProbV   float64
	SeqProbV    float64
	Predecessor *MatcherCandidate
	TransitionV *MatcherTransition
	Time        int64
}

func (c *MatcherCandidate) FiltProb() float64     { return c.FiltProbV }
func (c *MatcherCandidate) SetFiltProb(v float64) { c.FiltProbV = v }
func (c *MatcherCandidate) SeqProb() float64      { return c.SeqProbV }
func (c *MatcherCandidate) SetSeqProb(v float64)  { c.SeqProbV = v }
func (c *MatcherCandidate) SetTime(t int64)       { c.Time = t }

// EdgeID identifies the road edge this candidate sits on.
func (c *MatcherCandidate) EdgeID() int64 { return c.Point.Edge.ID() }

// SetPredecessor records the winning predecessor and its transition. pred
// is a back-reference only: MatcherCandidate never owns its predecessor's
// lifetime beyond what KState's window keeps reachable.
func (c *MatcherCandidate) SetPredecessor(pred *MatcherCandidate, tr Transition) {
	c.Predecessor = pred
	mt, _ := tr.(*MatcherTransition)
	c.TransitionV = mt
}
