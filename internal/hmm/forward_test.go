package hmm

import (
	"math"
	"testing"
)

// fakeTransition and fakeCandidate are synthetic state types with no
// dependency on road/routing, proving the forward pass is usable with
// types outside the Matcher's own concrete candidate.
type fakeTransition struct{ edges int }

func (f fakeTransition) NumEdges() int { return f.edges }

type fakeCandidate struct {
	id       int64
	filtProb float64
	seqProb  float64
	pred     *fakeCandidate
	tr       Transition
	time     int64
}

func (c *fakeCandidate) FiltProb() float64     { return c.filtProb }
func (c *fakeCandidate) SetFiltProb(v float64) { c.filtProb = v }
func (c *fakeCandidate) SeqProb() float64      { return c.seqProb }
func (c *fakeCandidate) SetSeqProb(v float64)  { c.seqProb = v }
func (c *fakeCandidate) SetTime(t int64)       { c.time = t }
func (c *fakeCandidate) EdgeID() int64         { return c.id }
func (c *fakeCandidate) SetPredecessor(pred *fakeCandidate, tr Transition) {
	c.pred = pred
	c.tr = tr
}

func sumFiltProb(cs []*fakeCandidate) float64 {
	var s float64
	for _, c := range cs {
		s += c.filtProb
	}
	return s
}

// TestForwardRestartCase covers scenario S2: empty predecessors with
// non-empty emissions normalizes filtprob to p_e / Σp_e and seqprob to
// log10(p_e).
func TestForwardRestartCase(t *testing.T) {
	candidates := []*fakeCandidate{{id: 1}, {id: 2}}
	emission := []float64{0.3, 0.7}

	result, brk := Forward(nil, candidates, emission, 1000, nil)
	if brk {
		t.Fatal("restart case should not be reported as an HMM break")
	}
	if len(result) != 2 {
		t.Fatalf("result has %d candidates, want 2", len(result))
	}
	if math.Abs(result[0].FiltProb()-0.3) > 1e-9 {
		t.Errorf("candidate 1 filtprob = %v, want 0.3", result[0].FiltProb())
	}
	if math.Abs(result[1].FiltProb()-0.7) > 1e-9 {
		t.Errorf("candidate 2 filtprob = %v, want 0.7", result[1].FiltProb())
	}
	if math.Abs(result[0].SeqProb()-math.Log10(0.3)) > 1e-9 {
		t.Errorf("candidate 1 seqprob = %v, want log10(0.3)", result[0].SeqProb())
	}
	if math.Abs(sumFiltProb(result)-1.0) > 1e-9 {
		t.Errorf("Σfiltprob = %v, want 1 (invariant 1)", sumFiltProb(result))
	}
}

// TestForwardTieBreakFewerEdges covers scenario S4: equal seqprob
// contributions prefer the predecessor whose transition route has fewer
// edges.
func TestForwardTieBreakFewerEdges(t *testing.T) {
	p1 := &fakeCandidate{id: 10, filtProb: 0.5, seqProb: 0}
	p2 := &fakeCandidate{id: 20, filtProb: 0.5, seqProb: 0}
	c := &fakeCandidate{id: 99}

	transition := func(p, _ *fakeCandidate) (Transition, float64, bool) {
		switch p.id {
		case 10:
			return fakeTransition{edges: 3}, 0.4, true
		case 20:
			return fakeTransition{edges: 1}, 0.4, true
		}
		return nil, 0, false
	}

	result, brk := Forward([]*fakeCandidate{p1, p2}, []*fakeCandidate{c}, []float64{0.5}, 2000, transition)
	if brk {
		t.Fatal("did not expect an HMM break")
	}
	if len(result) != 1 {
		t.Fatalf("result has %d candidates, want 1", len(result))
	}
	if result[0].pred != p2 {
		t.Errorf("expected predecessor p2 (fewer edges), got %v", result[0].pred)
	}
}

// TestForwardTieBreakSmallerEdgeID covers S4's second clause: when edge
// counts also tie, prefer the predecessor with the smaller edge id.
func TestForwardTieBreakSmallerEdgeID(t *testing.T) {
	p1 := &fakeCandidate{id: 10, filtProb: 0.5, seqProb: 0}
	p2 := &fakeCandidate{id: 3, filtProb: 0.5, seqProb: 0}
	c := &fakeCandidate{id: 99}

	transition := func(p, _ *fakeCandidate) (Transition, float64, bool) {
		return fakeTransition{edges: 2}, 0.4, true
	}

	result, _ := Forward([]*fakeCandidate{p1, p2}, []*fakeCandidate{c}, []float64{0.5}, 2000, transition)
	if result[0].pred != p2 {
		t.Errorf("expected predecessor with smaller edge id (3), got id %d", result[0].pred.id)
	}
}

// TestForwardDropsZeroFiltProb covers the drop rule: a candidate with no
// viable transition contributes nothing and is dropped from the result.
func TestForwardDropsZeroFiltProb(t *testing.T) {
	p := &fakeCandidate{id: 1, filtProb: 1.0, seqProb: 0}
	reachable := &fakeCandidate{id: 2}
	unreachable := &fakeCandidate{id: 3}

	transition := func(pr, c *fakeCandidate) (Transition, float64, bool) {
		if c.id == 2 {
			return fakeTransition{edges: 1}, 0.5, true
		}
		return nil, 0, false // null transition
	}

	result, brk := Forward([]*fakeCandidate{p}, []*fakeCandidate{reachable, unreachable}, []float64{0.6, 0.6}, 3000, transition)
	if brk {
		t.Fatal("at least one candidate survived, this is not a break")
	}
	if len(result) != 1 || result[0].id != 2 {
		t.Fatalf("expected only candidate 2 to survive, got %v", result)
	}
}

// TestForwardHMMBreakFallsBackToRestart covers scenario S3: when every
// candidate's transitions are null, the step is reported as a break and the
// restart case is used instead.
func TestForwardHMMBreakFallsBackToRestart(t *testing.T) {
	p := &fakeCandidate{id: 1, filtProb: 1.0, seqProb: 0}
	c1 := &fakeCandidate{id: 2}
	c2 := &fakeCandidate{id: 3}

	noTransition := func(_, _ *fakeCandidate) (Transition, float64, bool) { return nil, 0, false }

	result, brk := Forward([]*fakeCandidate{p}, []*fakeCandidate{c1, c2}, []float64{0.4, 0.6}, 4000, noTransition)
	if !brk {
		t.Fatal("expected an HMM break when every transition is null")
	}
	if len(result) != 2 {
		t.Fatalf("restart fallback should populate both candidates, got %d", len(result))
	}
	if math.Abs(sumFiltProb(result)-1.0) > 1e-9 {
		t.Errorf("Σfiltprob after restart fallback = %v, want 1", sumFiltProb(result))
	}
}

// TestForwardAccumulatesMultiplePredecessors checks that filtprob sums
// contributions from every viable predecessor before being scaled by p_e.
func TestForwardAccumulatesMultiplePredecessors(t *testing.T) {
	p1 := &fakeCandidate{id: 1, filtProb: 0.6, seqProb: -1}
	p2 := &fakeCandidate{id: 2, filtProb: 0.4, seqProb: -2}
	c := &fakeCandidate{id: 3}

	transition := func(p, _ *fakeCandidate) (Transition, float64, bool) {
		return fakeTransition{edges: 1}, 0.5, true
	}

	result, _ := Forward([]*fakeCandidate{p1, p2}, []*fakeCandidate{c}, []float64{0.2}, 5000, transition)
	want := (0.5*0.6 + 0.5*0.4) * 0.2 / ((0.5*0.6 + 0.5*0.4) * 0.2) // normalized single survivor == 1
	if math.Abs(result[0].FiltProb()-want) > 1e-9 {
		t.Errorf("filtprob = %v, want %v", result[0].FiltProb(), want)
	}
}
