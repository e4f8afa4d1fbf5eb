package geometry

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/lixenwraith/walkbox/vmath"
)

// ErrDegeneratePolygon is returned for rings with fewer than 3 distinct vertices
var ErrDegeneratePolygon = errors.New("geometry: degenerate polygon")

// Orientation is the winding of a ring in y-up axes
type Orientation int8

const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	CounterClockwise Orientation = 1
)

func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "collinear"
	}
}

// Polygon is an immutable simple closed ring; the last vertex connects back to the first
type Polygon struct {
	vertices []vmath.Point
	bounds   Bounds
}

// NewPolygon builds a ring from vertices in order
// Consecutive duplicates and a trailing vertex repeating the first are dropped
func NewPolygon(vertices ...vmath.Point) (*Polygon, error) {
	vs := make([]vmath.Point, 0, len(vertices))
	for _, v := range vertices {
		if len(vs) > 0 && vs[len(vs)-1] == v {
			continue
		}
		vs = append(vs, v)
	}
	for len(vs) > 1 && vs[len(vs)-1] == vs[0] {
		vs = vs[:len(vs)-1]
	}
	if len(vs) < 3 {
		return nil, fmt.Errorf("%w: %d distinct vertices, need 3", ErrDegeneratePolygon, len(vs))
	}

	b := EmptyBounds()
	for _, v := range vs {
		b = b.Extend(v)
	}
	return &Polygon{vertices: vs, bounds: b}, nil
}

// MustPolygon is NewPolygon for static data; panics on error
func MustPolygon(vertices ...vmath.Point) *Polygon {
	p, err := NewPolygon(vertices...)
	if err != nil {
		panic(err)
	}
	return p
}

// Vertices returns a copy of the ring
func (p *Polygon) Vertices() []vmath.Point {
	return slices.Clone(p.vertices)
}

func (p *Polygon) Len() int {
	return len(p.vertices)
}

func (p *Polygon) Vertex(i int) vmath.Point {
	return p.vertices[i]
}

func (p *Polygon) Bounds() Bounds {
	return p.bounds
}

// Edges yields one segment per vertex, vertex i to vertex i+1, wrapping the last to the first
func (p *Polygon) Edges() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		n := len(p.vertices)
		for i := range n {
			if !yield(Seg(p.vertices[i], p.vertices[(i+1)%n])) {
				return
			}
		}
	}
}

// SignedArea is the shoelace area, positive for counter-clockwise rings in y-up axes
func (p *Polygon) SignedArea() float64 {
	var sum float64
	n := len(p.vertices)
	for i := range n {
		a := p.vertices[i]
		b := p.vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

func (p *Polygon) Orientation() Orientation {
	area := p.SignedArea()
	switch {
	case area > vmath.Epsilon:
		return CounterClockwise
	case area < -vmath.Epsilon:
		return Clockwise
	default:
		return Collinear
	}
}

// Reversed returns the ring traversed the other way, starting from the same vertex
func (p *Polygon) Reversed() *Polygon {
	vs := make([]vmath.Point, len(p.vertices))
	vs[0] = p.vertices[0]
	for i := 1; i < len(vs); i++ {
		vs[i] = p.vertices[len(vs)-i]
	}
	return &Polygon{vertices: vs, bounds: p.bounds}
}

// Normalized returns the ring in counter-clockwise (y-up) order so convex vertices turn positive
func (p *Polygon) Normalized() *Polygon {
	if p.Orientation() == Clockwise {
		return p.Reversed()
	}
	return p
}

// Centroid returns the area centroid, or the vertex mean for zero-area rings
func (p *Polygon) Centroid() vmath.Point {
	area := p.SignedArea()
	n := len(p.vertices)
	if vmath.NearZero(area) {
		var sx, sy float64
		for _, v := range p.vertices {
			sx += v.X
			sy += v.Y
		}
		return vmath.Pt(sx/float64(n), sy/float64(n))
	}
	var cx, cy float64
	for i := range n {
		a := p.vertices[i]
		b := p.vertices[(i+1)%n]
		f := a.X*b.Y - b.X*a.Y
		cx += (a.X + b.X) * f
		cy += (a.Y + b.Y) * f
	}
	return vmath.Pt(cx/(6*area), cy/(6*area))
}

// --- Vertex classification ---

// Turn returns the cross product of the incoming and outgoing edge directions at vertex i
// Positive is a left turn in y-up axes
func (p *Polygon) Turn(i int) float64 {
	n := len(p.vertices)
	prev := p.vertices[(i-1+n)%n]
	cur := p.vertices[i]
	next := p.vertices[(i+1)%n]
	return cur.Sub(prev).Cross(next.Sub(cur))
}

// Reflex reports a turn against the ring's winding
// Ring is expected counter-clockwise, see Normalized
func (p *Polygon) Reflex(i int) bool {
	return p.Turn(i) < -vmath.Epsilon
}

// Convex reports a turn with the ring's winding; collinear vertices are neither
func (p *Polygon) Convex(i int) bool {
	return p.Turn(i) > vmath.Epsilon
}

// ReflexVertices yields reflex vertices in ring order
func (p *Polygon) ReflexVertices() iter.Seq[vmath.Point] {
	return p.filter(p.Reflex)
}

// ConvexVertices yields convex vertices in ring order
func (p *Polygon) ConvexVertices() iter.Seq[vmath.Point] {
	return p.filter(p.Convex)
}

func (p *Polygon) filter(keep func(int) bool) iter.Seq[vmath.Point] {
	return func(yield func(vmath.Point) bool) {
		for i, v := range p.vertices {
			if keep(i) && !yield(v) {
				return
			}
		}
	}
}

// --- Containment ---

// Contains is the even-odd test with a horizontal ray toward +x
// Points exactly on an edge may land either side; callers needing an inclusive boundary
// combine it with OnBoundary
func (p *Polygon) Contains(pt vmath.Point) bool {
	if !p.bounds.Contains(pt) {
		return false
	}
	inside := false
	n := len(p.vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := p.vertices[i]
		b := p.vertices[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// OnBoundary reports pt within tol of some edge
func (p *Polygon) OnBoundary(pt vmath.Point, tol float64) bool {
	if !p.bounds.Inflate(tol).Contains(pt) {
		return false
	}
	for e := range p.Edges() {
		if e.DistanceTo(pt) <= tol {
			return true
		}
	}
	return false
}

// ClosestBoundaryPoint returns the nearest point on any edge and its distance
func (p *Polygon) ClosestBoundaryPoint(pt vmath.Point) (vmath.Point, float64) {
	best := p.vertices[0]
	bestDist := pt.DistanceTo(best)
	for e := range p.Edges() {
		c := e.ClosestPoint(pt)
		if d := pt.DistanceTo(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}
