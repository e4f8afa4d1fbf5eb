package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/vmath"
)

// Viewport maps world coordinates onto a cols x rows cell grid and back
// World bounds Min lands on cell (0,0), Max on (cols-1, rows-1)
type Viewport struct {
	world   geometry.Bounds
	cols    int
	rows    int
	toCell  mgl64.Mat3
	toWorld mgl64.Mat3
}

// NewViewport builds the affine transform for world onto the grid
// Degenerate extents map to a single column or row
func NewViewport(world geometry.Bounds, cols, rows int) *Viewport {
	sx, sy := 1.0, 1.0
	if w := world.Width(); w > 0 && cols > 1 {
		sx = float64(cols-1) / w
	}
	if h := world.Height(); h > 0 && rows > 1 {
		sy = float64(rows-1) / h
	}
	m := mgl64.Scale2D(sx, sy).Mul3(mgl64.Translate2D(-world.Min.X, -world.Min.Y))
	return &Viewport{
		world:   world,
		cols:    cols,
		rows:    rows,
		toCell:  m,
		toWorld: m.Inv(),
	}
}

func (vp *Viewport) World() geometry.Bounds {
	return vp.world
}

// Size returns the grid dimensions
func (vp *Viewport) Size() (cols, rows int) {
	return vp.cols, vp.rows
}

// ToCell converts a world point to the nearest cell
func (vp *Viewport) ToCell(p vmath.Point) Point {
	v := vp.toCell.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return Point{X: int(math.Round(v.X())), Y: int(math.Round(v.Y()))}
}

// ToWorld converts a cell to the world point at its center, rounded to whole units
func (vp *Viewport) ToWorld(c Point) vmath.Point {
	v := vp.toWorld.Mul3x1(mgl64.Vec3{float64(c.X), float64(c.Y), 1})
	return vmath.Pt(v.X(), v.Y()).Round()
}
