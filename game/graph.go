package game

import (
	"fmt"
	"sort"
)

// Edge is a temporal edge declaration: an ordered vertex pair plus the
// schedule of instants at which it may be taken. A nil When means Always.
type Edge struct {
	From, To VertexID
	When     Availability
}

type edge struct {
	from, to int
	when     Availability
}

// Graph is a temporal graph: vertices with fixed ownership and a
// time-indexed edge relation. Immutable once constructed; the solver and
// any number of readers may share it.
//
// Punctual (At) edges are indexed by instant at construction, so EdgesAt is
// a map lookup plus a scan of the usually short list of non-punctual edges,
// never a pass over the whole edge set.
type Graph struct {
	ids    []VertexID
	index  map[VertexID]int
	owners []Owner
	edges  []edge

	byInstant map[int][]int32 // punctual edge indices, keyed by instant
	scan      []int32         // edges keyed by schedules that need evaluation
}

// NewGraph validates the declarations and builds the instant index.
// Duplicate vertex declarations are rejected; an edge endpoint naming an
// undeclared vertex yields ErrUnknownVertex.
func NewGraph(vertices []Vertex, edges []Edge) (*Graph, error) {
	g := &Graph{
		ids:       make([]VertexID, 0, len(vertices)),
		index:     make(map[VertexID]int, len(vertices)),
		owners:    make([]Owner, 0, len(vertices)),
		byInstant: make(map[int][]int32),
	}
	for _, v := range vertices {
		if _, dup := g.index[v.ID]; dup {
			return nil, fmt.Errorf("duplicate vertex %q", string(v.ID))
		}
		g.index[v.ID] = len(g.ids)
		g.ids = append(g.ids, v.ID)
		g.owners = append(g.owners, v.Owner)
	}
	for _, e := range edges {
		from, ok := g.index[e.From]
		if !ok {
			return nil, unknownVertex(e.From)
		}
		to, ok := g.index[e.To]
		if !ok {
			return nil, unknownVertex(e.To)
		}
		when := e.When
		if when == nil {
			when = Always()
		}
		ei := int32(len(g.edges))
		g.edges = append(g.edges, edge{from: from, to: to, when: when})
		if at, punctual := when.(atSched); punctual {
			for _, t := range at.instants {
				g.byInstant[t] = append(g.byInstant[t], ei)
			}
		} else {
			g.scan = append(g.scan, ei)
		}
	}
	return g, nil
}

// NumVertices returns the number of declared vertices.
func (g *Graph) NumVertices() int { return len(g.ids) }

// NumEdges returns the number of declared temporal edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Vertices returns the vertex names in declaration order.
func (g *Graph) Vertices() []VertexID {
	return append([]VertexID(nil), g.ids...)
}

// Edges returns the temporal edge declarations in declaration order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = Edge{From: g.ids[e.from], To: g.ids[e.to], When: e.when}
	}
	return out
}

// OwnerOf returns the ownership tag of a vertex.
func (g *Graph) OwnerOf(v VertexID) (Owner, error) {
	i, ok := g.index[v]
	if !ok {
		return Controller, unknownVertex(v)
	}
	return g.owners[i], nil
}

// EdgesAt returns exactly the edges usable at instant t, in declaration order.
func (g *Graph) EdgesAt(t int) []Edge {
	var idx []int32
	idx = append(idx, g.byInstant[t]...)
	for _, ei := range g.scan {
		if g.edges[ei].when.Available(t) {
			idx = append(idx, ei)
		}
	}
	sort.Slice(idx, func(a, b int) bool { return idx[a] < idx[b] })
	out := make([]Edge, len(idx))
	for i, ei := range idx {
		e := g.edges[ei]
		out[i] = Edge{From: g.ids[e.from], To: g.ids[e.to], When: e.when}
	}
	return out
}

// SuccessorsAt returns the destinations reachable from v at instant t.
func (g *Graph) SuccessorsAt(v VertexID, t int) ([]VertexID, error) {
	from, ok := g.index[v]
	if !ok {
		return nil, unknownVertex(v)
	}
	var out []VertexID
	seen := make(map[int]bool)
	g.forEachEdgeAt(t, func(ei int32) {
		e := g.edges[ei]
		if e.from == from && !seen[e.to] {
			seen[e.to] = true
			out = append(out, g.ids[e.to])
		}
	})
	return out, nil
}

// Period returns the global period of the edge schedule: the lcm of every
// edge's schedule period. ok is false as soon as one edge's schedule is not
// fully periodic (punctual or one-sided), in which case the solver's
// periodicity shortcut stays disabled.
func (g *Graph) Period() (int, bool) {
	p := 1
	for _, e := range g.edges {
		ep, ok := e.when.Period()
		if !ok {
			return 0, false
		}
		p = lcm(p, ep)
	}
	return p, true
}

// forEachEdgeAt visits the index of every edge active at t. Visit order is
// the instant index followed by the scan list, which is stable for a given
// graph.
func (g *Graph) forEachEdgeAt(t int, fn func(ei int32)) {
	for _, ei := range g.byInstant[t] {
		fn(ei)
	}
	for _, ei := range g.scan {
		if g.edges[ei].when.Available(t) {
			fn(ei)
		}
	}
}

func (g *Graph) indexOf(v VertexID) (int, bool) {
	i, ok := g.index[v]
	return i, ok
}

// setOf converts vertex names into a bitset, validating each name.
func (g *Graph) setOf(ids []VertexID) (*Set, error) {
	s := NewSet(len(g.ids))
	for _, id := range ids {
		i, ok := g.index[id]
		if !ok {
			return nil, unknownVertex(id)
		}
		s.Add(i)
	}
	return s, nil
}

// ownerMask returns the bitset of vertices owned by o.
func (g *Graph) ownerMask(o Owner) *Set {
	s := NewSet(len(g.ids))
	for i, ow := range g.owners {
		if ow == o {
			s.Add(i)
		}
	}
	return s
}

// names maps dense indices back to vertex names, sorted by name.
func (g *Graph) names(idx []int) []VertexID {
	out := make([]VertexID, len(idx))
	for i, v := range idx {
		out[i] = g.ids[v]
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
