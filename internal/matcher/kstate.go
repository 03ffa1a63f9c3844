// Package matcher drives the HMM filter online: a Matcher façade holding
// long-lived dependencies (RoadMap, Router, spatial index) plus a KState
// sliding window of past state vectors.
package matcher

import (
	"time"

	"github.com/azybler/hmm-mapmatch/internal/hmm"
)

// frame is one retained state vector, timestamped for window pruning.
type frame struct {
	time  time.Time
	state []*hmm.MatcherCandidate
}

// KState is a sliding window of past state vectors, bounded by an optional
// time span and/or count. It prunes predecessors no longer referenced by
// any candidate in the current frontier, per the engine's resource-model
// pruning invariant.
type KState struct {
	window time.Duration // 0 disables the time bound
	count  int           // 0 disables the count bound
	frames []frame
}

// NewKState creates a KState bounded by window (time span, 0 = unbounded)
// and count (number of retained frames, 0 = unbounded).
func NewKState(window time.Duration, count int) *KState {
	return &KState{window: window, count: count}
}

// Push appends a new state vector as the current frontier, then prunes
// frames that have fallen outside the window or count bound and are no
// longer reachable from the new frontier's predecessor chains.
func (k *KState) Push(at time.Time, state []*hmm.MatcherCandidate) {
	k.frames = append(k.frames, frame{time: at, state: state})
	k.prune(at)
}

// prune drops frames outside the configured bounds, but only once nothing
// in the retained frontier still references them through a predecessor
// chain (identifier-keyed reachability, per the engine's predecessor-cycle
// design note: candidates are looked up by back-reference, never owned).
func (k *KState) prune(now time.Time) {
	reachable := k.reachableSet()

	cut := 0
	for cut < len(k.frames)-1 {
		f := k.frames[cut]
		expiredByTime := k.window > 0 && now.Sub(f.time) > k.window
		expiredByCount := k.count > 0 && len(k.frames)-cut > k.count
		if !expiredByTime && !expiredByCount {
			break
		}
		if frameStillReferenced(f.state, reachable) {
			break
		}
		cut++
	}
	if cut > 0 {
		k.frames = append([]frame(nil), k.frames[cut:]...)
	}
}

// reachableSet walks the predecessor chains of the latest frontier and
// returns the set of candidates still referenced.
func (k *KState) reachableSet() map[*hmm.MatcherCandidate]bool {
	reachable := make(map[*hmm.MatcherCandidate]bool)
	if len(k.frames) == 0 {
		return reachable
	}
	for _, c := range k.frames[len(k.frames)-1].state {
		for p := c; p != nil; p = p.Predecessor {
			if reachable[p] {
				break
			}
			reachable[p] = true
		}
	}
	return reachable
}

func frameStillReferenced(state []*hmm.MatcherCandidate, reachable map[*hmm.MatcherCandidate]bool) bool {
	for _, c := range state {
		if reachable[c] {
			return true
		}
	}
	return false
}

// Latest returns the most recent state vector, or nil if the window is
// empty.
func (k *KState) Latest() []*hmm.MatcherCandidate {
	if len(k.frames) == 0 {
		return nil
	}
	return k.frames[len(k.frames)-1].state
}

// Len returns the number of retained frames.
func (k *KState) Len() int { return len(k.frames) }
