package interchange

import (
	"fmt"

	"github.com/azybler/hmm-mapmatch/internal/hmm"
	"github.com/azybler/hmm-mapmatch/internal/road"
)

// Candidate is the normative wire shape of a MatcherCandidate.
type Candidate struct {
	ID          string      `json:"id"`
	FiltProb    float64     `json:"filtprob"`
	SeqProb     LogProb     `json:"seqprob"`
	Predecessor *string     `json:"predecessor,omitempty"`
	Transition  *Transition `json:"transition,omitempty"`
	RoadPoint   RoadPoint   `json:"roadpoint"`
	Sample      *Sample     `json:"sample,omitempty"`
}

// FromCandidate converts a domain MatcherCandidate to its wire shape. The
// predecessor is encoded by id only (a back-reference, per the data model's
// ownership rule), not embedded.
func FromCandidate(c *hmm.MatcherCandidate) Candidate {
	w := Candidate{
		ID:        c.ID,
		FiltProb:  c.FiltProb(),
		SeqProb:   LogProb(c.SeqProb()),
		RoadPoint: FromRoadPoint(c.Point),
	}
	if c.Predecessor != nil {
		id := c.Predecessor.ID
		w.Predecessor = &id
	}
	if c.TransitionV != nil && c.TransitionV.Route != nil {
		w.Transition = &Transition{Route: FromPath(c.TransitionV.Route)}
	}
	if c.Sample != nil {
		s := FromSample(*c.Sample)
		w.Sample = &s
	}
	return w
}

// ToCandidate resolves a wire Candidate against rm's edge table. The
// predecessor back-reference is returned separately as an id string for the
// caller to resolve within its own id-keyed window (per the engine's
// predecessor-cycle design: candidates are never reconstructed as an owning
// graph from the wire form alone).
func ToCandidate(rm *road.RoadMap, w Candidate) (*hmm.MatcherCandidate, string, error) {
	pt, err := ToRoadPoint(rm, w.RoadPoint)
	if err != nil {
		return nil, "", fmt.Errorf("interchange: candidate %s: %w", w.ID, err)
	}
	c := &hmm.MatcherCandidate{
		ID:        w.ID,
		Point:     pt,
		FiltProbV: w.FiltProb,
		SeqProbV:  float64(w.SeqProb),
	}
	if w.Sample != nil {
		s := ToSample(*w.Sample)
		c.Sample = &s
	}
	if w.Transition != nil {
		route, err := ToPath(rm, w.Transition.Route)
		if err != nil {
			return nil, "", fmt.Errorf("interchange: candidate %s: %w", w.ID, err)
		}
		c.TransitionV = &hmm.MatcherTransition{Route: route}
	}
	predID := ""
	if w.Predecessor != nil {
		predID = *w.Predecessor
	}
	return c, predID, nil
}
