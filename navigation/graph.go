package navigation

import (
	"iter"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/vmath"
)

// VertexID identifies a graph vertex; positions are payload, never keys
type VertexID int32

// NoVertex marks an absent vertex
const NoVertex VertexID = -1

// Edge is a straight walkable connection between two vertices
// Stored edges are undirected, Neighbours orients them away from the queried vertex
type Edge struct {
	From, To VertexID
	Segment  geometry.Segment
}

// Reverse returns the edge traversed the other way
func (e Edge) Reverse() Edge {
	return Edge{From: e.To, To: e.From, Segment: e.Segment.Reverse()}
}

// Length is the traversal cost of the edge
func (e Edge) Length() float64 {
	return e.Segment.Length()
}

// WalkableGraph is the capability consumed by FindPath
type WalkableGraph interface {
	// Edges yields every walkable edge, recomputed on each call
	Edges() iter.Seq[Edge]
	// Neighbours yields edges leaving id, each with From == id
	Neighbours(id VertexID) iter.Seq[Edge]
	// Vertex returns the position of id
	Vertex(id VertexID) (vmath.Point, bool)
	// Lookup returns the vertex at exactly p
	Lookup(p vmath.Point) (VertexID, bool)
}

// --- Adjacency ---

// adjacency indexes undirected edges by endpoint
type adjacency struct {
	edges []Edge
	by    map[VertexID][]int
}

func newAdjacency() adjacency {
	return adjacency{by: make(map[VertexID][]int)}
}

// add stores e unless an edge with the same endpoints already exists
// Returns false for duplicates
func (a *adjacency) add(e Edge) bool {
	if a.has(e.From, e.To) {
		return false
	}
	idx := len(a.edges)
	a.edges = append(a.edges, e)
	a.by[e.From] = append(a.by[e.From], idx)
	a.by[e.To] = append(a.by[e.To], idx)
	return true
}

func (a *adjacency) all() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, e := range a.edges {
			if !yield(e) {
				return
			}
		}
	}
}

// from yields the edges touching id oriented outward
func (a *adjacency) from(id VertexID) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, i := range a.by[id] {
			e := a.edges[i]
			if e.From != id {
				e = e.Reverse()
			}
			if !yield(e) {
				return
			}
		}
	}
}

func (a *adjacency) count() int {
	return len(a.edges)
}

// has reports an edge between u and v in either direction
func (a *adjacency) has(u, v VertexID) bool {
	for _, i := range a.by[u] {
		o := a.edges[i]
		if (o.From == u && o.To == v) || (o.From == v && o.To == u) {
			return true
		}
	}
	return false
}
