package routing

import (
	"context"
	"sync"

	"github.com/azybler/hmm-mapmatch/internal/road"
)

// pqItem is one priority-queue entry: key is the confirmed-cheapest cost to
// reach the END (target vertex) of edge; boundKey is the analogous
// accumulation under the bound Cost.
type pqItem struct {
	edge     *road.Road
	key      float64
	boundKey float64
}

// minHeap is a concrete-typed min-heap for the router's priority queue,
// avoiding container/heap's interface-boxing overhead. Ties are broken
// by ascending edge id, so results are deterministic across runs.
type minHeap struct {
	items []pqItem
}

func less(a, b pqItem) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	return a.edge.ID() < b.edge.ID()
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(it pqItem) {
	h.items = append(h.items, it)
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h.items[i], h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		l, r := 2*i+1, 2*i+2
		if l < n && less(h.items[l], h.items[smallest]) {
			smallest = l
		}
		if r < n && less(h.items[r], h.items[smallest]) {
			smallest = r
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// Options carries the Router's optional pruning knobs from spec §4.D.
type Options struct {
	// MaxTime, if > 0, overrides maxBound: entries are pruned once their
	// bound key (interpreted as traversal time) exceeds MaxTime.
	MaxTime float64
	// MaxVelocity, if > 0, replaces the caller's bound Cost with
	// VelocityCappedTime(MaxVelocity): a travel-time bound whose per-edge
	// speed never exceeds MaxVelocity.
	MaxVelocity float64
}

// Router performs bounded, goal-directed, multi-target Dijkstra over a
// road.RoadMap: safe for concurrent use once the underlying RoadMap is
// built. Per-query scratch state (the priority queue and relaxation maps)
// is pooled rather than allocated fresh on every call, since Route runs
// once per (predecessor, candidate) pair on every filter step.
type Router struct {
	qsPool sync.Pool
}

// NewRouter creates a Router.
func NewRouter() *Router {
	rt := &Router{}
	rt.qsPool.New = func() any { return newQueryState() }
	return rt
}

type predInfo struct {
	edges []*road.Road
}

// queryState holds one Route call's scratch state: the relaxation maps and
// priority queue. Pooled across calls and reset between uses.
type queryState struct {
	bestKey       map[int64]float64
	pathTo        map[int64]predInfo
	targetsByEdge map[int64][]int
	heap          minHeap
}

func newQueryState() *queryState {
	return &queryState{
		bestKey:       make(map[int64]float64, 64),
		pathTo:        make(map[int64]predInfo, 64),
		targetsByEdge: make(map[int64][]int, 8),
	}
}

func (qs *queryState) reset() {
	clear(qs.bestKey)
	clear(qs.pathTo)
	clear(qs.targetsByEdge)
	qs.heap.items = qs.heap.items[:0]
}

// Route computes the least-cost path from source to each of targets, under
// cost (the objective) and bound (the pruning accumulator capped at
// maxBound). Result[i] corresponds to targets[i] and is nil if that target
// is unreachable within the bound.
func (rt *Router) Route(ctx context.Context, source road.RoadPoint, targets []road.RoadPoint, cost, bound Cost, maxBound float64, opts Options) []*Path {
	if opts.MaxTime > 0 {
		maxBound = opts.MaxTime
	}
	if opts.MaxVelocity > 0 {
		bound = VelocityCappedTime(opts.MaxVelocity)
	}

	qs := rt.qsPool.Get().(*queryState)
	defer func() {
		qs.reset()
		rt.qsPool.Put(qs)
	}()

	result := make([]*Path, len(targets))
	targetsByEdge := qs.targetsByEdge
	remaining := 0
	for i, tp := range targets {
		targetsByEdge[tp.Edge.ID()] = append(targetsByEdge[tp.Edge.ID()], i)
		remaining++
	}

	settle := func(i int, edges []*road.Road) {
		if result[i] != nil {
			return
		}
		p, err := NewPath(source, targets[i], edges)
		if err != nil {
			return
		}
		result[i] = p
		remaining--
	}

	extend := func(prefix []*road.Road, e *road.Road) []*road.Road {
		out := make([]*road.Road, len(prefix)+1)
		copy(out, prefix)
		out[len(prefix)] = e
		return out
	}

	// Targets lying ahead of source on source's own edge settle immediately.
	for _, i := range targetsByEdge[source.Edge.ID()] {
		if targets[i].Fraction >= source.Fraction {
			settle(i, []*road.Road{source.Edge})
		}
	}
	if remaining == 0 {
		return result
	}

	startKey := cost.Partial(source.Edge, 1-source.Fraction)
	startBound := bound.Partial(source.Edge, 1-source.Fraction)
	if startBound > maxBound {
		return result
	}

	bestKey := qs.bestKey
	pathTo := qs.pathTo
	bestKey[source.Edge.ID()] = startKey
	pathTo[source.Edge.ID()] = predInfo{edges: []*road.Road{source.Edge}}

	h := &qs.heap
	h.Push(pqItem{edge: source.Edge, key: startKey, boundKey: startBound})

	for h.Len() > 0 && remaining > 0 {
		select {
		case <-ctx.Done():
			return result
		default:
		}

		it := h.Pop()
		if it.key > bestKey[it.edge.ID()] {
			continue // stale entry, superseded by a cheaper path already processed
		}
		prefix := pathTo[it.edge.ID()].edges

		for _, succ := range it.edge.Successors() {
			// Settle targets on succ using the confirmed-minimal cost to
			// reach its source vertex (it.key): a target at fraction f on
			// succ settles at key(it.edge) + cost(succ, f).
			for _, i := range targetsByEdge[succ.ID()] {
				if result[i] != nil {
					continue
				}
				tb := it.boundKey + bound.Partial(succ, targets[i].Fraction)
				if tb > maxBound {
					continue
				}
				settle(i, extend(prefix, succ))
			}

			key := it.key + cost.Edge(succ)
			bk := it.boundKey + bound.Edge(succ)
			if bk > maxBound {
				continue
			}
			if existing, ok := bestKey[succ.ID()]; ok && key >= existing {
				continue
			}
			bestKey[succ.ID()] = key
			pathTo[succ.ID()] = predInfo{edges: extend(prefix, succ)}
			h.Push(pqItem{edge: succ, key: key, boundKey: bk})
		}
	}

	return result
}

// RouteOne is a convenience wrapper for a single target.
func (rt *Router) RouteOne(ctx context.Context, source, target road.RoadPoint, cost, bound Cost, maxBound float64, opts Options) *Path {
	results := rt.Route(ctx, source, []road.RoadPoint{target}, cost, bound, maxBound, opts)
	return results[0]
}
