package navigation

import (
	"iter"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/vmath"
)

// GraphView is the static visibility graph plus one query's temporary edges
// Produced by Augment; the WalkBox itself is never mutated
type GraphView struct {
	base *WalkBox

	// Query points not already in the static graph; ids continue after the base vertices
	extra []vmath.Point
	index map[vmath.Point]VertexID

	overlay adjacency

	location, pointer VertexID
}

// Augment connects location and pointer to the static graph
// Order: location↔pointer, then per vertex location↔vertex and vertex↔pointer
// vertex↔pointer edges require a walkable pointer; an unwalkable location adds nothing
func (wb *WalkBox) Augment(location, pointer vmath.Point) *GraphView {
	v := &GraphView{
		base:     wb,
		index:    make(map[vmath.Point]VertexID, 2),
		overlay:  newAdjacency(),
		location: NoVertex,
		pointer:  NoVertex,
	}
	if !wb.Contains(location) {
		return v
	}

	v.location = v.intern(location)
	v.pointer = v.intern(pointer)
	pointerWalkable := wb.Contains(pointer)

	v.connect(v.location, v.pointer)
	for i := range wb.vertices {
		id := VertexID(i)
		v.connect(v.location, id)
		if pointerWalkable {
			v.connect(id, v.pointer)
		}
	}
	return v
}

// intern returns the static id for p, or registers p as an overlay vertex
func (v *GraphView) intern(p vmath.Point) VertexID {
	if id, ok := v.base.index[p]; ok {
		return id
	}
	if id, ok := v.index[p]; ok {
		return id
	}
	id := VertexID(len(v.base.vertices) + len(v.extra))
	v.extra = append(v.extra, p)
	v.index[p] = id
	return id
}

func (v *GraphView) connect(a, b VertexID) {
	if a == b || v.base.graph.has(a, b) || v.overlay.has(a, b) {
		return
	}
	pa, _ := v.Vertex(a)
	pb, _ := v.Vertex(b)
	s := geometry.Seg(pa, pb)
	if !v.base.walkable(s) {
		return
	}
	v.overlay.add(Edge{From: a, To: b, Segment: s})
}

// Location returns the query start id, NoVertex when it was not walkable
func (v *GraphView) Location() VertexID { return v.location }

// Pointer returns the query goal id, NoVertex when the location was not walkable
func (v *GraphView) Pointer() VertexID { return v.pointer }

// TemporaryEdges returns the overlay edges in insertion order
func (v *GraphView) TemporaryEdges() []Edge {
	out := make([]Edge, len(v.overlay.edges))
	copy(out, v.overlay.edges)
	return out
}

// --- WalkableGraph ---

// Edges yields static edges then overlay edges
func (v *GraphView) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for e := range v.base.graph.all() {
			if !yield(e) {
				return
			}
		}
		for e := range v.overlay.all() {
			if !yield(e) {
				return
			}
		}
	}
}

func (v *GraphView) Neighbours(id VertexID) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for e := range v.base.graph.from(id) {
			if !yield(e) {
				return
			}
		}
		for e := range v.overlay.from(id) {
			if !yield(e) {
				return
			}
		}
	}
}

func (v *GraphView) Vertex(id VertexID) (vmath.Point, bool) {
	if p, ok := v.base.Vertex(id); ok {
		return p, true
	}
	i := int(id) - len(v.base.vertices)
	if i < 0 || i >= len(v.extra) {
		return vmath.Point{}, false
	}
	return v.extra[i], true
}

func (v *GraphView) Lookup(p vmath.Point) (VertexID, bool) {
	if id, ok := v.base.index[p]; ok {
		return id, true
	}
	id, ok := v.index[p]
	return id, ok
}
