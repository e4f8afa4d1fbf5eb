package vmath

import (
	"math"
)

// Vector is a free 2D displacement
type Vector struct {
	X, Y float64
}

// Vec constructs a Vector
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

// Div divides both components by s; s must be non-zero
func (v Vector) Div(s float64) Vector {
	return Vector{v.X / s, v.Y / s}
}

// Dot returns x1*x2 + y1*y2
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the scalar 2D cross product x1*y2 - y1*x2
// Positive when o turns left of v in y-up axes (clockwise on a y-down screen)
func (v Vector) Cross(o Vector) float64 {
	return v.X*o.Y - v.Y*o.X
}

// LenSq returns squared length without sqrt
func (v Vector) LenSq() float64 {
	return v.Dot(v)
}

func (v Vector) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns the unit vector, zero-safe: a zero vector stays zero
func (v Vector) Normalize() Vector {
	l := v.Len()
	if l == 0 {
		return Vector{}
	}
	return v.Div(l)
}

// Lerp interpolates v→o by t
func (v Vector) Lerp(o Vector, t float64) Vector {
	return v.Add(o.Sub(v).Scale(t))
}

func (v Vector) Round() Vector {
	return Vector{math.Round(v.X), math.Round(v.Y)}
}

// MaxElement returns the larger component
func (v Vector) MaxElement() float64 {
	return math.Max(v.X, v.Y)
}

// IsZero reports both components below Epsilon
func (v Vector) IsZero() bool {
	return NearZero(v.X) && NearZero(v.Y)
}

// Point reinterprets the displacement as a position from the origin
func (v Vector) Point() Point {
	return Point{v.X, v.Y}
}
