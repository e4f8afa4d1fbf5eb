package navigation

import (
	"iter"
	"slices"

	"go.uber.org/zap"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/observability"
	"github.com/lixenwraith/walkbox/vmath"
)

// BoundaryTolerance is the distance within which a point counts as on the boundary
// Boundary points are walkable so clamped destinations remain valid goals
const BoundaryTolerance = 1e-9

// WalkBox is the walkable region: one exterior ring minus zero or more holes
// Immutable after construction and safe for concurrent readers
type WalkBox struct {
	exterior *geometry.Polygon
	holes    []*geometry.Polygon
	bounds   geometry.Bounds

	boundary []geometry.Segment
	corners  []vmath.Point // Every ring vertex, for grazing checks

	vertices []vmath.Point
	index    map[vmath.Point]VertexID
	graph    adjacency
}

// NewWalkBox normalizes ring orientation and builds the static visibility graph
// Graph vertices are the exterior's reflex vertices followed by each hole's convex vertices
func NewWalkBox(exterior *geometry.Polygon, holes ...*geometry.Polygon) *WalkBox {
	wb := &WalkBox{
		exterior: exterior.Normalized(),
		holes:    make([]*geometry.Polygon, 0, len(holes)),
		index:    make(map[vmath.Point]VertexID),
		graph:    newAdjacency(),
	}
	wb.bounds = wb.exterior.Bounds()

	wb.addRing(wb.exterior)
	for v := range wb.exterior.ReflexVertices() {
		wb.addVertex(v)
	}
	for _, h := range holes {
		h = h.Normalized()
		wb.holes = append(wb.holes, h)
		wb.addRing(h)
		for v := range h.ConvexVertices() {
			wb.addVertex(v)
		}
	}

	for i := range wb.vertices {
		for j := i + 1; j < len(wb.vertices); j++ {
			s := geometry.Seg(wb.vertices[i], wb.vertices[j])
			if !wb.walkable(s) {
				continue
			}
			wb.graph.add(Edge{From: VertexID(i), To: VertexID(j), Segment: s})
		}
	}

	observability.GetLogger().Debug("WalkBox built",
		zap.Int("holes", len(wb.holes)),
		zap.Int("boundary_edges", len(wb.boundary)),
		zap.Int("vertices", len(wb.vertices)),
		zap.Int("visibility_edges", wb.graph.count()),
	)
	return wb
}

func (wb *WalkBox) addRing(p *geometry.Polygon) {
	for e := range p.Edges() {
		wb.boundary = append(wb.boundary, e)
	}
	wb.corners = append(wb.corners, p.Vertices()...)
}

func (wb *WalkBox) addVertex(v vmath.Point) {
	if _, ok := wb.index[v]; ok {
		return
	}
	wb.index[v] = VertexID(len(wb.vertices))
	wb.vertices = append(wb.vertices, v)
}

// --- Accessors ---

func (wb *WalkBox) Exterior() *geometry.Polygon { return wb.exterior }

func (wb *WalkBox) Holes() []*geometry.Polygon { return slices.Clone(wb.holes) }

func (wb *WalkBox) Bounds() geometry.Bounds { return wb.bounds }

// BoundaryEdges returns exterior then hole edges
func (wb *WalkBox) BoundaryEdges() []geometry.Segment {
	return slices.Clone(wb.boundary)
}

// Vertices returns graph vertex positions indexed by VertexID
func (wb *WalkBox) Vertices() []vmath.Point {
	return slices.Clone(wb.vertices)
}

// VisibilityEdges returns the static graph edges
func (wb *WalkBox) VisibilityEdges() []Edge {
	return slices.Clone(wb.graph.edges)
}

// --- WalkableGraph over the static graph ---

func (wb *WalkBox) Edges() iter.Seq[Edge] {
	return wb.graph.all()
}

func (wb *WalkBox) Neighbours(id VertexID) iter.Seq[Edge] {
	return wb.graph.from(id)
}

func (wb *WalkBox) Vertex(id VertexID) (vmath.Point, bool) {
	if id < 0 || int(id) >= len(wb.vertices) {
		return vmath.Point{}, false
	}
	return wb.vertices[id], true
}

func (wb *WalkBox) Lookup(p vmath.Point) (VertexID, bool) {
	id, ok := wb.index[p]
	return id, ok
}

// --- Region queries ---

// Contains reports p inside the exterior and outside every hole
// Points within BoundaryTolerance of any boundary edge count as inside
func (wb *WalkBox) Contains(p vmath.Point) bool {
	if !wb.bounds.Inflate(BoundaryTolerance).Contains(p) {
		return false
	}
	if wb.onBoundary(p) {
		return true
	}

	// Even-odd over exterior and hole edges together, horizontal ray toward +x
	inside := false
	for _, e := range wb.boundary {
		a, b := e.Start, e.End
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func (wb *WalkBox) onBoundary(p vmath.Point) bool {
	for _, e := range wb.boundary {
		if e.DistanceTo(p) <= BoundaryTolerance {
			return true
		}
	}
	return false
}

// ClampDestination returns p when walkable, else the nearest point on any boundary edge
func (wb *WalkBox) ClampDestination(p vmath.Point) vmath.Point {
	if wb.Contains(p) {
		return p
	}
	best := p
	bestDist := -1.0
	for _, e := range wb.boundary {
		c := e.ClosestPoint(p)
		if d := p.DistanceSqTo(c); bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// walkable is the admissibility test shared by static and overlay edges
// The segment must be non-degenerate, cross no boundary edge, and stay inside the region
// between every boundary vertex it grazes
func (wb *WalkBox) walkable(s geometry.Segment) bool {
	if s.Degenerate() {
		return false
	}
	for _, b := range wb.boundary {
		if s.Crosses(b) {
			return false
		}
	}

	// Split at grazed vertices; each piece is wholly inside or outside
	sv := s.Vector()
	l2 := sv.LenSq()
	cuts := []float64{0, 1}
	for _, c := range wb.corners {
		t := c.Sub(s.Start).Dot(sv) / l2
		if t <= 0 || t >= 1 {
			continue
		}
		if s.DistanceTo(c) <= BoundaryTolerance {
			cuts = append(cuts, t)
		}
	}
	slices.Sort(cuts)
	for i := 1; i < len(cuts); i++ {
		if cuts[i]-cuts[i-1] <= vmath.Epsilon {
			continue
		}
		mid := s.Start.Add(sv.Scale((cuts[i-1] + cuts[i]) / 2))
		if !wb.Contains(mid) {
			return false
		}
	}
	return true
}
