package scene

import (
	"math/rand/v2"

	"github.com/lixenwraith/walkbox/navigation"
	"github.com/lixenwraith/walkbox/vmath"
)

// MazeConfig shapes a generated lattice maze
type MazeConfig struct {
	Width, Height int     // Cells, rounded down to odd, minimum 3
	CellSize      float64 // World pixels per cell
	Braiding      float64 // 0 yields a perfect maze, 1 opens every eligible dead end
	Seed          uint64
}

// Maze is a generated grid scene; cells route through navigation.GridGraph
type Maze struct {
	Graph      *navigation.GridGraph
	Start, End vmath.Point // Cell centers of the opposite corners
}

// Wall reports a blocked cell
func (m *Maze) Wall(x, y int) bool {
	return m.Graph.IsBlocked(x, y)
}

// GenerateMaze carves a spanning tree with a randomized depth-first backtracker, then
// braids dead ends into loops without opening 2x2 plazas
func GenerateMaze(cfg MazeConfig) *Maze {
	rows := oddAtLeast3(cfg.Height)
	cols := oddAtLeast3(cfg.Width)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	walls := make([][]bool, rows)
	for y := range walls {
		walls[y] = make([]bool, cols)
		for x := range walls[y] {
			walls[y][x] = true
		}
	}

	carve(walls, 1, 1, rng)
	if cfg.Braiding > 0 {
		braid(walls, cfg.Braiding, rng)
	}

	cellSize := cfg.CellSize
	if cellSize <= 0 {
		cellSize = 1
	}
	g := navigation.NewGridGraph(cols, rows, cellSize, vmath.Point{}, func(x, y int) bool {
		return walls[y][x]
	})
	start, _ := g.Vertex(navigation.VertexID(1*cols + 1))
	end, _ := g.Vertex(navigation.VertexID((rows-2)*cols + cols - 2))
	return &Maze{Graph: g, Start: start, End: end}
}

var jumps = [4][2]int{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

func carve(walls [][]bool, sx, sy int, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])
	type cell struct{ x, y int }

	stack := []cell{{sx, sy}}
	walls[sy][sx] = false
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		var options [4]cell
		n := 0
		for _, j := range jumps {
			nx, ny := cur.x+j[0], cur.y+j[1]
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && walls[ny][nx] {
				options[n] = cell{j[0], j[1]}
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := options[rng.IntN(n)]
		walls[cur.y+d.y/2][cur.x+d.x/2] = false
		walls[cur.y+d.y][cur.x+d.x] = false
		stack = append(stack, cell{cur.x + d.x, cur.y + d.y})
	}
}

func braid(walls [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])
	open := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < cols && y < rows && !walls[y][x]
	}

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			exits := 0
			for _, j := range jumps {
				if open(x+j[0]/2, y+j[1]/2) {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			for _, j := range jumps {
				nx, ny := x+j[0], y+j[1]
				wx, wy := x+j[0]/2, y+j[1]/2
				if nx <= 0 || nx >= cols-1 || ny <= 0 || ny >= rows-1 || !walls[wy][wx] {
					continue
				}
				if formsPlaza(open, wx, wy) {
					continue
				}
				walls[wy][wx] = false
				break
			}
		}
	}
}

// formsPlaza reports whether opening (x, y) completes a 2x2 open square
func formsPlaza(open func(x, y int) bool, x, y int) bool {
	for _, q := range [4][2]int{{-1, -1}, {0, -1}, {-1, 0}, {0, 0}} {
		ox, oy := x+q[0], y+q[1]
		n := 0
		for _, c := range [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			cx, cy := ox+c[0], oy+c[1]
			if (cx == x && cy == y) || open(cx, cy) {
				n++
			}
		}
		if n == 4 {
			return true
		}
	}
	return false
}

func oddAtLeast3(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
