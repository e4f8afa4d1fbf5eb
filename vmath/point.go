package vmath

import (
	"fmt"
	"math"
)

// Point is a 2D position in world (pixel) coordinates
type Point struct {
	X, Y float64
}

// Pt constructs a Point
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the displacement p - o
func (p Point) Sub(o Point) Vector {
	return Vector{p.X - o.X, p.Y - o.Y}
}

// Add moves p by v
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.X, p.Y + v.Y}
}

// Scale multiplies both coordinates, convenience for origin-relative math
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Vector returns the displacement from the origin
func (p Point) Vector() Vector {
	return Vector{p.X, p.Y}
}

func (p Point) DistanceTo(o Point) float64 {
	return p.Sub(o).Len()
}

func (p Point) DistanceSqTo(o Point) float64 {
	return p.Sub(o).LenSq()
}

// Lerp interpolates p→o by t
func (p Point) Lerp(o Point, t float64) Point {
	return Point{Lerp(p.X, o.X, t), Lerp(p.Y, o.Y, t)}
}

func (p Point) Round() Point {
	return Point{math.Round(p.X), math.Round(p.Y)}
}

// XY truncates to integer cell coordinates
func (p Point) XY() (int, int) {
	return int(p.X), int(p.Y)
}

// Near reports both coordinates within tol of o
func (p Point) Near(o Point, tol float64) bool {
	return math.Abs(p.X-o.X) <= tol && math.Abs(p.Y-o.Y) <= tol
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
