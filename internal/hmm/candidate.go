package hmm

// Transition is the capability the forward filter needs from a transition
// value: the number of edges in its route, used by the deterministic
// tie-break rule. *routing.Path satisfies this directly.
type Transition interface {
	NumEdges() int
}

// Candidate is the capability set the forward filter needs from a state
// candidate. It is self-referential (F-bounded) so SetPredecessor can store
// a concrete predecessor of the caller's own type without losing type
// information, keeping the filter generic enough to run against synthetic
// types in tests.
type Candidate[C any] interface {
	FiltProb() float64
	SetFiltProb(float64)
	SeqProb() float64
	SetSeqProb(float64)
	SetTime(int64)
	// EdgeID identifies the road edge this candidate sits on; used by the
	// tie-break rule to compare predecessors deterministically.
	EdgeID() int64
	// SetPredecessor records the winning predecessor and its transition.
	// A candidate owns its transition; the predecessor is a back-reference.
	SetPredecessor(pred C, tr Transition)
}
