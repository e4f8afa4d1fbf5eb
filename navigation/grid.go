package navigation

import (
	"iter"
	"math"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/vmath"
)

// Direction index into DirVectors: N=0, NE=1, E=2, SE=3, S=4, SW=5, W=6, NW=7
const (
	DirN     int8 = 0
	DirNE    int8 = 1
	DirE     int8 = 2
	DirSE    int8 = 3
	DirS     int8 = 4
	DirSW    int8 = 5
	DirW     int8 = 6
	DirNW    int8 = 7
	DirCount int8 = 8
)

// Direction vectors matching DirN..DirNW, y grows downward
var DirVectors = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// WallChecker returns true if the cell blocks navigation
type WallChecker func(x, y int) bool

// GridGraph is an 8-connected passability lattice satisfying WalkableGraph
// Vertices sit at cell centers; diagonal moves may not cut a blocked corner
type GridGraph struct {
	Width, Height int
	CellSize      float64
	Origin        vmath.Point // World position of the top-left cell corner

	blocked []bool
}

// NewGridGraph samples isBlocked once per cell
func NewGridGraph(width, height int, cellSize float64, origin vmath.Point, isBlocked WallChecker) *GridGraph {
	g := &GridGraph{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		Origin:   origin,
		blocked:  make([]bool, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.blocked[y*width+x] = isBlocked(x, y)
		}
	}
	return g
}

// RasterizeWalkBox covers wb's bounds with cells, passable where the cell center is walkable
func RasterizeWalkBox(wb *WalkBox, cellSize float64) *GridGraph {
	b := wb.Bounds()
	width := int(math.Ceil(b.Width() / cellSize))
	height := int(math.Ceil(b.Height() / cellSize))
	g := &GridGraph{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		Origin:   b.Min,
		blocked:  make([]bool, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.blocked[y*width+x] = !wb.Contains(g.center(x, y))
		}
	}
	return g
}

// IsBlocked treats out-of-range cells as blocked
func (g *GridGraph) IsBlocked(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return true
	}
	return g.blocked[y*g.Width+x]
}

func (g *GridGraph) center(x, y int) vmath.Point {
	return vmath.Pt(
		g.Origin.X+(float64(x)+0.5)*g.CellSize,
		g.Origin.Y+(float64(y)+0.5)*g.CellSize,
	)
}

// Cell returns the cell containing p
func (g *GridGraph) Cell(p vmath.Point) (int, int) {
	return int(math.Floor((p.X - g.Origin.X) / g.CellSize)),
		int(math.Floor((p.Y - g.Origin.Y) / g.CellSize))
}

// step returns the edge from (x, y) in direction dir, false if blocked or corner-cutting
func (g *GridGraph) step(x, y int, dir int8) (Edge, bool) {
	dx, dy := DirVectors[dir][0], DirVectors[dir][1]
	nx, ny := x+dx, y+dy
	if g.IsBlocked(nx, ny) {
		return Edge{}, false
	}
	// Diagonal corner cutting prevention
	if dx != 0 && dy != 0 && (g.IsBlocked(x+dx, y) || g.IsBlocked(x, y+dy)) {
		return Edge{}, false
	}
	return Edge{
		From:    VertexID(y*g.Width + x),
		To:      VertexID(ny*g.Width + nx),
		Segment: geometry.Seg(g.center(x, y), g.center(nx, ny)),
	}, true
}

// --- WalkableGraph ---

// Edges yields each undirected edge once, from the E, SE, S and SW directions
func (g *GridGraph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if g.IsBlocked(x, y) {
					continue
				}
				for dir := DirE; dir <= DirSW; dir++ {
					if e, ok := g.step(x, y, dir); ok && !yield(e) {
						return
					}
				}
			}
		}
	}
}

func (g *GridGraph) Neighbours(id VertexID) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		x, y := int(id)%g.Width, int(id)/g.Width
		if g.IsBlocked(x, y) {
			return
		}
		for dir := int8(0); dir < DirCount; dir++ {
			if e, ok := g.step(x, y, dir); ok && !yield(e) {
				return
			}
		}
	}
}

func (g *GridGraph) Vertex(id VertexID) (vmath.Point, bool) {
	if id < 0 || int(id) >= g.Width*g.Height {
		return vmath.Point{}, false
	}
	return g.center(int(id)%g.Width, int(id)/g.Width), true
}

// Lookup snaps p to its containing passable cell
func (g *GridGraph) Lookup(p vmath.Point) (VertexID, bool) {
	x, y := g.Cell(p)
	if g.IsBlocked(x, y) {
		return NoVertex, false
	}
	return VertexID(y*g.Width + x), true
}
