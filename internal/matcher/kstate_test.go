package matcher

import (
	"testing"
	"time"

	"github.com/azybler/hmm-mapmatch/internal/hmm"
)

func TestKStatePrunesUnreferencedFrames(t *testing.T) {
	k := NewKState(0, 2)

	root := &hmm.MatcherCandidate{ID: "root"}
	k.Push(time.UnixMilli(1000), []*hmm.MatcherCandidate{root})

	mid := &hmm.MatcherCandidate{ID: "mid"}
	mid.SetPredecessor(root, nil)
	k.Push(time.UnixMilli(2000), []*hmm.MatcherCandidate{mid})

	// leaf starts a fresh trajectory (no predecessor), so root and mid are
	// no longer referenced; root's frame is over the count bound and goes.
	leaf := &hmm.MatcherCandidate{ID: "leaf"}
	k.Push(time.UnixMilli(3000), []*hmm.MatcherCandidate{leaf})

	if k.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (unreferenced root frame pruned by count=2)", k.Len())
	}
	if k.Latest()[0] != leaf {
		t.Fatalf("Latest() did not return the most recently pushed frame")
	}
}

func TestKStateRetainsReachablePredecessorBeyondCount(t *testing.T) {
	k := NewKState(0, 1)

	root := &hmm.MatcherCandidate{ID: "root"}
	k.Push(time.UnixMilli(1000), []*hmm.MatcherCandidate{root})

	leaf := &hmm.MatcherCandidate{ID: "leaf"}
	leaf.SetPredecessor(root, nil)
	k.Push(time.UnixMilli(2000), []*hmm.MatcherCandidate{leaf})

	// root is still referenced by leaf's predecessor chain, so it must
	// survive even though count=1 would otherwise prune the first frame.
	found := false
	for _, f := range k.frames {
		for _, c := range f.state {
			if c == root {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("root frame was pruned even though it is still referenced")
	}
}
