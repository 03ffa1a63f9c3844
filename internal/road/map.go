package road

import (
	"fmt"
	"sort"
)

// RoadMap is the directed graph built once from a Provider and held
// immutable for the lifetime of a Matcher. Vertices are deduplicated
// integers derived from each BaseRoad's source/target; edges are indexed
// by edge id and grouped by source vertex for successor iteration.
type RoadMap struct {
	edges   []*Road         // indexed by position, sorted by id
	byID    map[int64]*Road // edge id -> edge
	bySrc   map[int64][]*Road
	index   *Index
	numVert int
}

// NewRoadMap builds a RoadMap from a Provider, following the same
// two-pass shape as a CSR graph builder: collect and validate BaseRoads,
// then emit and index their Road edges.
func NewRoadMap(p Provider) (*RoadMap, error) {
	baseRoads, err := p.Roads()
	if err != nil {
		return nil, fmt.Errorf("road provider: %w", err)
	}
	return BuildRoadMap(baseRoads)
}

// BuildRoadMap builds a RoadMap directly from a slice of BaseRoads.
func BuildRoadMap(baseRoads []*BaseRoad) (*RoadMap, error) {
	m := &RoadMap{
		byID:  make(map[int64]*Road),
		bySrc: make(map[int64][]*Road),
	}

	// Step 1: validate, and compact the vertex id space.
	vertexOf := make(map[int64]int64)
	nextVertex := int64(0)
	compact := func(v int64) int64 {
		if idx, ok := vertexOf[v]; ok {
			return idx
		}
		idx := nextVertex
		vertexOf[v] = idx
		nextVertex++
		return idx
	}

	for _, br := range baseRoads {
		if err := br.Validate(); err != nil {
			return nil, fmt.Errorf("invalid map data: %w", err)
		}
	}

	// Step 2: emit Road edges, even id = forward, odd id = backward sibling.
	for i, br := range baseRoads {
		baseID := int64(i) * 2
		var fwd, bwd *Road

		if br.Direction == DirForward || br.Direction == DirBoth {
			fwd = &Road{
				id:      baseID,
				base:    br,
				forward: true,
				source:  compact(br.Source),
				target:  compact(br.Target),
				m:       m,
			}
		}
		if br.Direction == DirBackward || br.Direction == DirBoth {
			bwd = &Road{
				id:      baseID + 1,
				base:    br,
				forward: false,
				source:  compact(br.Target),
				target:  compact(br.Source),
				m:       m,
			}
		}
		if fwd != nil && bwd != nil {
			fwd.sibling = bwd
			bwd.sibling = fwd
		}
		for _, e := range []*Road{fwd, bwd} {
			if e == nil {
				continue
			}
			m.edges = append(m.edges, e)
			m.byID[e.id] = e
		}
	}

	m.numVert = int(nextVertex)

	// Step 3: sort edges by id for deterministic iteration (Router tie-break
	// relies on ascending edge id order).
	sort.Slice(m.edges, func(i, j int) bool { return m.edges[i].id < m.edges[j].id })

	// Step 4: group by source vertex for successor lookup: bucket, then
	// sort each bucket by id for deterministic iteration order.
	for _, e := range m.edges {
		m.bySrc[e.source] = append(m.bySrc[e.source], e)
	}
	for src := range m.bySrc {
		bucket := m.bySrc[src]
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].id < bucket[j].id })
	}

	// Step 5: validate that every edge's successor set resolves (the graph
	// may legitimately have dead ends with zero successors, that's fine;
	// what must hold is that any successor we do report is a genuine match).
	for _, e := range m.edges {
		for _, s := range m.bySrc[e.target] {
			if s.source != e.target {
				return nil, fmt.Errorf("invalid graph: successor %d of edge %d has source %d, want %d", s.id, e.id, s.source, e.target)
			}
		}
	}

	m.index = NewIndex(m.edges)

	return m, nil
}

// successorsOf returns the edges whose source vertex is v, in ascending id
// order.
func (m *RoadMap) successorsOf(v int64) []*Road {
	return m.bySrc[v]
}

// Edge looks up an edge by id.
func (m *RoadMap) Edge(id int64) (*Road, bool) {
	e, ok := m.byID[id]
	return e, ok
}

// Edges returns all edges, sorted by ascending id.
func (m *RoadMap) Edges() []*Road { return m.edges }

// NumVertices returns the number of distinct (compacted) vertices.
func (m *RoadMap) NumVertices() int { return m.numVert }

// NumEdges returns the number of Road edges (not BaseRoads: a two-way
// BaseRoad contributes two).
func (m *RoadMap) NumEdges() int { return len(m.edges) }

// Index returns the map's spatial index.
func (m *RoadMap) Index() *Index { return m.index }
