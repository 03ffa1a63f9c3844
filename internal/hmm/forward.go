package hmm

import "math"

// TransitionFunc scores a candidate pair (p, c): p is a predecessor from
// S_{t-1}, c a candidate for t. ok is false for a null transition (no route
// within bound); callers should also treat prob <= 0 as null.
type TransitionFunc[C any] func(p, c C) (tr Transition, prob float64, ok bool)

// Forward runs one step of the Viterbi-style forward filter.
//
// predecessors is S_{t-1} (possibly empty). candidates is the emission
// candidate set for t, with emission[i] the precomputed p_e for
// candidates[i] (both slices must be the same length and order). transition
// scores each (predecessor, candidate) pair.
//
// Forward mutates each surviving candidate's filtprob/seqprob/predecessor/
// time in place and returns the new state vector S_t, normalized to sum to
// 1, along with whether this step was an HMM break (candidates existed but
// none had a viable transition, so the restart case was used instead).
func Forward[C Candidate[C]](predecessors []C, candidates []C, emission []float64, sampleTime int64, transition TransitionFunc[C]) (stateVector []C, hmmBreak bool) {
	if len(candidates) != len(emission) {
		panic("hmm: candidates and emission must have the same length")
	}
	if len(candidates) == 0 {
		return nil, false
	}
	if len(predecessors) == 0 {
		sv, _ := restart(candidates, emission, sampleTime)
		return sv, false
	}

	var normsum float64
	survivors := make([]C, 0, len(candidates))

	for i, c := range candidates {
		c.SetFiltProb(0)

		bestSeq := math.Inf(-1)
		var bestPred C
		var bestTr Transition
		hasBest := false

		for _, p := range predecessors {
			tr, pt, ok := transition(p, c)
			if !ok || pt <= 0 {
				continue
			}
			c.SetFiltProb(c.FiltProb() + pt*p.FiltProb())

			seq := p.SeqProb() + math.Log10(pt) + math.Log10(emission[i])
			if !hasBest || better(seq, bestSeq, tr, bestTr, p.EdgeID(), bestPred.EdgeID()) {
				bestSeq, bestTr, bestPred, hasBest = seq, tr, p, true
			}
		}

		if hasBest {
			c.SetSeqProb(bestSeq)
			c.SetPredecessor(bestPred, bestTr)
		} else {
			c.SetSeqProb(math.Inf(-1))
		}

		fp := c.FiltProb()
		if fp == 0 || math.IsNaN(fp) {
			continue // dropped: no viable transition contributed
		}
		fp *= emission[i]
		c.SetFiltProb(fp)
		c.SetTime(sampleTime)
		normsum += fp
		survivors = append(survivors, c)
	}

	if len(survivors) == 0 {
		sv, _ := restart(candidates, emission, sampleTime)
		return sv, true
	}

	normalize(survivors, normsum)
	return survivors, false
}

// better implements the forward pass's deterministic tie-break: higher
// seqprob wins outright; on an exact tie, prefer the transition with fewer
// edges, then the predecessor with the smaller edge id.
func better(seq, bestSeq float64, tr, bestTr Transition, predEdgeID, bestPredEdgeID int64) bool {
	if seq != bestSeq {
		return seq > bestSeq
	}
	if n, bn := tr.NumEdges(), bestTr.NumEdges(); n != bn {
		return n < bn
	}
	return predEdgeID < bestPredEdgeID
}

// restart implements the filter's restart case: every candidate with a
// positive emission probability seeds a fresh trajectory.
func restart[C Candidate[C]](candidates []C, emission []float64, sampleTime int64) ([]C, bool) {
	var normsum float64
	survivors := make([]C, 0, len(candidates))
	for i, c := range candidates {
		pe := emission[i]
		if pe <= 0 || math.IsNaN(pe) {
			continue
		}
		c.SetFiltProb(pe)
		c.SetSeqProb(math.Log10(pe))
		c.SetTime(sampleTime)
		normsum += pe
		survivors = append(survivors, c)
	}
	if len(survivors) == 0 {
		return nil, false
	}
	normalize(survivors, normsum)
	return survivors, false
}

// normalize scales filtprob so the state vector sums to 1 (invariant 1),
// or to all-zero if normsum is degenerate.
func normalize[C Candidate[C]](cs []C, normsum float64) {
	if normsum == 0 || math.IsNaN(normsum) {
		for _, c := range cs {
			c.SetFiltProb(0)
		}
		return
	}
	for _, c := range cs {
		c.SetFiltProb(c.FiltProb() / normsum)
	}
}
