package geometry

import (
	"math"

	"github.com/lixenwraith/walkbox/vmath"
)

// Bounds is an axis-aligned bounding box, inclusive on all sides
type Bounds struct {
	Min, Max vmath.Point
}

// EmptyBounds returns an inverted box that any Extend call replaces
func EmptyBounds() Bounds {
	return Bounds{
		Min: vmath.Pt(math.Inf(1), math.Inf(1)),
		Max: vmath.Pt(math.Inf(-1), math.Inf(-1)),
	}
}

// Extend grows the box to include p
func (b Bounds) Extend(p vmath.Point) Bounds {
	return Bounds{
		Min: vmath.Pt(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)),
		Max: vmath.Pt(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)),
	}
}

// Inflate grows every side by d
func (b Bounds) Inflate(d float64) Bounds {
	return Bounds{
		Min: vmath.Pt(b.Min.X-d, b.Min.Y-d),
		Max: vmath.Pt(b.Max.X+d, b.Max.Y+d),
	}
}

func (b Bounds) Contains(p vmath.Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Empty reports an inverted box
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}
