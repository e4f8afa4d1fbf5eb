package core

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/navigation"
	"github.com/lixenwraith/walkbox/vmath"
)

// Point represents a 2D cell coordinate
type Point struct {
	X, Y int
}

// Cell represents a single cell in the buffer
type Cell struct {
	Rune  rune
	Style tcell.Style
}

var emptyCell = Cell{Rune: ' ', Style: tcell.StyleDefault}

// Buffer is a 2D grid of cells composed off-screen, then blitted to a tcell screen
type Buffer struct {
	width  int
	height int
	lines  [][]Cell
	dirty  map[Point]bool // Changed cells since last blit
}

// NewBuffer creates a new buffer with the given dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

func (b *Buffer) Width() int {
	return b.width
}

func (b *Buffer) Height() int {
	return b.height
}

// Resize resizes the buffer, preserving existing content where possible
func (b *Buffer) Resize(newWidth, newHeight int) {
	newLines := make([][]Cell, newHeight)
	for y := 0; y < newHeight; y++ {
		newLines[y] = make([]Cell, newWidth)
		for x := 0; x < newWidth; x++ {
			if y < b.height && x < b.width {
				newLines[y][x] = b.lines[y][x]
			} else {
				newLines[y][x] = emptyCell
			}
		}
	}

	b.width = newWidth
	b.height = newHeight
	b.lines = newLines
	b.dirty = make(map[Point]bool)
	for y := 0; y < newHeight; y++ {
		for x := 0; x < newWidth; x++ {
			b.dirty[Point{X: x, Y: y}] = true
		}
	}
}

// GetCell returns the cell at the given position
func (b *Buffer) GetCell(x, y int) (Cell, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{}, false
	}
	return b.lines[y][x], true
}

// SetCell sets the cell at the given position and marks it as dirty
func (b *Buffer) SetCell(x, y int, cell Cell) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	if b.lines[y][x] == cell {
		return true
	}
	b.lines[y][x] = cell
	b.dirty[Point{X: x, Y: y}] = true
	return true
}

// SetContent sets rune and style at the given position
func (b *Buffer) SetContent(x, y int, r rune, style tcell.Style) bool {
	return b.SetCell(x, y, Cell{Rune: r, Style: style})
}

// Clear blanks every cell
func (b *Buffer) Clear() {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.SetCell(x, y, emptyCell)
		}
	}
}

// GetLine returns a copy of row y
func (b *Buffer) GetLine(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	line := make([]Cell, b.width)
	copy(line, b.lines[y])
	return line
}

// DirtyRegions returns all dirty positions
func (b *Buffer) DirtyRegions() []Point {
	regions := make([]Point, 0, len(b.dirty))
	for p := range b.dirty {
		regions = append(regions, p)
	}
	return regions
}

// ClearDirty clears all dirty flags
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
}

// --- Drawing ---

// DrawSegment rasterizes a world segment through vp
func (b *Buffer) DrawSegment(vp *Viewport, s geometry.Segment, r rune, style tcell.Style) {
	from := vp.ToCell(s.Start)
	to := vp.ToCell(s.End)
	cells := geometry.Seg(
		vmath.Pt(float64(from.X), float64(from.Y)),
		vmath.Pt(float64(to.X), float64(to.Y)),
	).Raster()
	for _, c := range cells {
		x, y := c.XY()
		b.SetContent(x, y, r, style)
	}
}

// DrawTagged draws debug segments in order; later categories overwrite earlier ones
// dim blends every color toward black, used for the hover preview
func (b *Buffer) DrawTagged(vp *Viewport, segs []navigation.TaggedSegment, dim float64) {
	for _, ts := range segs {
		r, rgb := CategoryGlyph(ts.Category)
		b.DrawSegment(vp, ts.Segment, r, rgb.Blend(RGBBlack, dim).Style())
	}
}

// DrawPoint marks the cell holding world point p
func (b *Buffer) DrawPoint(vp *Viewport, p vmath.Point, r rune, style tcell.Style) {
	c := vp.ToCell(p)
	b.SetContent(c.X, c.Y, r, style)
}

// DrawText writes s left to right from (x, y), clipped to the buffer
func (b *Buffer) DrawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		b.SetContent(x, y, r, style)
		x++
	}
}

// Blit copies dirty cells to the screen and clears the dirty set
func (b *Buffer) Blit(screen tcell.Screen) {
	for p := range b.dirty {
		c := b.lines[p.Y][p.X]
		screen.SetContent(p.X, p.Y, c.Rune, nil, c.Style)
	}
	b.ClearDirty()
}
