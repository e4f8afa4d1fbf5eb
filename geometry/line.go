package geometry

import (
	"github.com/lixenwraith/walkbox/vmath"
)

// Line is the implicit form A*x + B*y + C = 0 of the line through two points
type Line struct {
	A, B, C float64
}

// LineThrough returns the line through start and end
func LineThrough(start, end vmath.Point) Line {
	return Line{
		A: end.Y - start.Y,
		B: start.X - end.X,
		C: end.X*start.Y - start.X*end.Y,
	}
}

// Eval returns the signed side value of p; zero on the line
func (l Line) Eval(p vmath.Point) float64 {
	return l.A*p.X + l.B*p.Y + l.C
}

// Parallel reports a zero determinant between the two direction normals
func (l Line) Parallel(o Line) bool {
	return l.A*o.B-o.A*l.B == 0
}

// sameSide reports both values strictly on one side of a line
func sameSide(d1, d2 float64) bool {
	return (d1 > 0 && d2 > 0) || (d1 < 0 && d2 < 0)
}
