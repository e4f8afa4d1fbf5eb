package geometry

import (
	"math"

	"github.com/lixenwraith/walkbox/vmath"
)

// Segment is a directed line segment
// Callers must not build graph edges from degenerate segments, see Degenerate
type Segment struct {
	Start, End vmath.Point
}

// Seg constructs a Segment
func Seg(start, end vmath.Point) Segment {
	return Segment{Start: start, End: end}
}

// Vector returns End - Start
func (s Segment) Vector() vmath.Vector {
	return s.End.Sub(s.Start)
}

func (s Segment) Length() float64 {
	return s.Vector().Len()
}

// Degenerate reports a segment shorter than Epsilon
func (s Segment) Degenerate() bool {
	return s.Length() < vmath.Epsilon
}

func (s Segment) Reverse() Segment {
	return Segment{Start: s.End, End: s.Start}
}

func (s Segment) Midpoint() vmath.Point {
	return s.Start.Lerp(s.End, 0.5)
}

// SameEndpoints reports undirected equality
func (s Segment) SameEndpoints(o Segment) bool {
	return (s.Start == o.Start && s.End == o.End) || (s.Start == o.End && s.End == o.Start)
}

// Less orders segments by start x, start y, end x, end y
func (s Segment) Less(o Segment) bool {
	switch {
	case s.Start.X != o.Start.X:
		return s.Start.X < o.Start.X
	case s.Start.Y != o.Start.Y:
		return s.Start.Y < o.Start.Y
	case s.End.X != o.End.X:
		return s.End.X < o.End.X
	default:
		return s.End.Y < o.End.Y
	}
}

// ClosestPoint projects p onto the segment, clamping the projection to the endpoints
// A degenerate segment returns Start
func (s Segment) ClosestPoint(p vmath.Point) vmath.Point {
	sv := s.Vector()
	l2 := sv.LenSq()
	if l2 == 0 {
		return s.Start
	}
	t := vmath.Clamp01(p.Sub(s.Start).Dot(sv) / l2)
	return s.Start.Add(sv.Scale(t))
}

// DistanceTo returns the distance from p to the closest point of the segment
func (s Segment) DistanceTo(p vmath.Point) float64 {
	return p.DistanceTo(s.ClosestPoint(p))
}

// --- Intersection ---

// params returns the cross-product terms of the parametric intersection
// s.Start + t*r == o.Start + u*q, with t = tn/den and u = un/den
func (s Segment) params(o Segment) (den, tn, un float64) {
	r := s.Vector()
	q := o.Vector()
	d := o.Start.Sub(s.Start)
	return r.Cross(q), d.Cross(q), d.Cross(r)
}

// Crosses is the strict proper-intersection test: each segment's endpoints lie strictly on
// opposite sides of the other's supporting line
// Touching at an endpoint, collinear overlap and parallel segments never cross
func (s Segment) Crosses(o Segment) bool {
	den, tn, un := s.params(o)
	if vmath.NearZero(den) || vmath.NearZero(tn) || vmath.NearZero(un) {
		return false
	}
	t := tn / den
	u := un / den
	return t > vmath.Epsilon && t < 1-vmath.Epsilon &&
		u > vmath.Epsilon && u < 1-vmath.Epsilon
}

// Straddles is the half-plane form of the crossing test over Line coefficients
// Touching counts, parallel and collinear segments do not; it agrees with Crosses on every
// pair of non-degenerate segments that do not touch
func (s Segment) Straddles(o Segment) bool {
	first := LineThrough(s.Start, s.End)
	if sameSide(first.Eval(o.Start), first.Eval(o.End)) {
		return false
	}
	other := LineThrough(o.Start, o.End)
	if sameSide(other.Eval(s.Start), other.Eval(s.End)) {
		return false
	}
	return !first.Parallel(other)
}

// Intersects is the inclusive test: touching endpoints and collinear overlap count
func (s Segment) Intersects(o Segment) bool {
	den, tn, un := s.params(o)
	if vmath.NearZero(den) {
		if !vmath.NearZero(o.Start.Sub(s.Start).Cross(s.Vector())) {
			return false
		}
		return s.collinearOverlap(o)
	}
	t := tn / den
	u := un / den
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// Intersection returns the single crossing or touching point
// Parallel and collinear segments report none
func (s Segment) Intersection(o Segment) (vmath.Point, bool) {
	den, tn, un := s.params(o)
	if vmath.NearZero(den) {
		return vmath.Point{}, false
	}
	t := tn / den
	u := un / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return vmath.Point{}, false
	}
	return s.Start.Add(s.Vector().Scale(t)), true
}

// collinearOverlap checks interval overlap of o projected onto s
func (s Segment) collinearOverlap(o Segment) bool {
	r := s.Vector()
	l2 := r.LenSq()
	if l2 == 0 {
		return o.DistanceTo(s.Start) == 0
	}
	t0 := o.Start.Sub(s.Start).Dot(r) / l2
	t1 := o.End.Sub(s.Start).Dot(r) / l2
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t1 >= 0 && t0 <= 1
}

// --- Rasterization ---

// Raster returns the rounded lattice points along the segment, both endpoints included
// Step count is the diagonal distance max(|dx|, |dy|)
func (s Segment) Raster() []vmath.Point {
	v := s.Vector()
	n := math.Max(math.Abs(v.X), math.Abs(v.Y))
	steps := int(n)
	if steps == 0 {
		return []vmath.Point{s.Start.Round()}
	}
	points := make([]vmath.Point, 0, steps+1)
	for step := 0; step <= steps; step++ {
		t := float64(step) / n
		points = append(points, s.Start.Lerp(s.End, t).Round())
	}
	return points
}
