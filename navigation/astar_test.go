package navigation

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/walkbox/vmath"
)

func TestComputePathLRoom(t *testing.T) {
	wb := lRoom(t)
	start := vmath.Pt(150, 150)
	goal := vmath.Pt(570, 120)

	path, ok := ComputePath(wb, start, goal)
	require.True(t, ok)

	assertPoints(t, []vmath.Point{start, vmath.Pt(300, 240), vmath.Pt(360, 240), goal}, path.Waypoints())
	assertWalkable(t, wb, path)

	reflex := wb.Vertices()
	waypoints := path.Waypoints()
	for _, p := range waypoints[1 : len(waypoints)-1] {
		assert.Contains(t, reflex, p, "intermediate waypoints are reflex vertices")
	}

	want := start.DistanceTo(vmath.Pt(300, 240)) + 60 + vmath.Pt(360, 240).DistanceTo(goal)
	assert.InDelta(t, want, path.Distance(), 1e-9)
	assert.Equal(t, start, path.Start())
	assert.Equal(t, goal, path.End())
	assert.Equal(t, 4, path.Len())
}

func TestComputePathNotchedRoom(t *testing.T) {
	wb := notchedRoom(t)
	assert.Len(t, wb.Vertices(), 4)

	tests := []struct {
		name        string
		start, goal vmath.Point
		want        []vmath.Point
	}{
		{
			name:  "around the hanging wall",
			start: vmath.Pt(150, 150),
			goal:  vmath.Pt(570, 120),
			want:  []vmath.Point{vmath.Pt(150, 150), vmath.Pt(300, 240), vmath.Pt(360, 240), vmath.Pt(570, 120)},
		},
		{
			name:  "around the slot",
			start: vmath.Pt(600, 290),
			goal:  vmath.Pt(600, 190),
			want:  []vmath.Point{vmath.Pt(600, 290), vmath.Pt(510, 280), vmath.Pt(510, 260), vmath.Pt(600, 190)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := ComputePath(wb, tt.start, tt.goal)
			require.True(t, ok)
			assertPoints(t, tt.want, path.Waypoints())
			assertWalkable(t, wb, path)
		})
	}
}

func TestComputePathCorridor(t *testing.T) {
	wb := NewWalkBox(ring(t, 0, 0, 400, 0, 400, 100, 0, 100))
	start := vmath.Pt(20, 50)
	goal := vmath.Pt(380, 50)

	path, ok := ComputePath(wb, start, goal)
	require.True(t, ok)
	assert.Equal(t, []vmath.Point{start, goal}, path.Waypoints())
	assert.Equal(t, 360.0, path.Distance())
}

func TestComputePathSamePoint(t *testing.T) {
	wb := lRoom(t)
	p := vmath.Pt(200, 200)

	path, ok := ComputePath(wb, p, p)
	require.True(t, ok)
	assert.Equal(t, []vmath.Point{p}, path.Waypoints())
	assert.Zero(t, path.Distance())
	assert.Empty(t, slices.Collect(path.Segments()))
}

func TestComputePathUnreachable(t *testing.T) {
	wb := lRoom(t)

	_, ok := ComputePath(wb, vmath.Pt(-100, -100), vmath.Pt(900, 900))
	assert.False(t, ok, "both endpoints outside the bounding box")

	_, ok = ComputePath(wb, vmath.Pt(150, 150), vmath.Pt(700, 120))
	assert.False(t, ok, "unclamped pointer beyond the wall")

	_, ok = ComputePath(wb, vmath.Pt(330, 100), vmath.Pt(150, 150))
	assert.False(t, ok, "start inside the hanging wall")
}

func TestComputePathAroundPillar(t *testing.T) {
	wb := pillarRoom(t)
	start := vmath.Pt(50, 150)
	goal := vmath.Pt(250, 150)

	path, ok := ComputePath(wb, start, goal)
	require.True(t, ok)
	assertWalkable(t, wb, path)
	assert.InDelta(t, 2*math.Sqrt(5000)+100, path.Distance(), 1e-9)

	// Equal-cost routes above and below resolve toward greater y
	assertPoints(t, []vmath.Point{start, vmath.Pt(100, 200), vmath.Pt(200, 200), goal}, path.Waypoints())

	again, ok := ComputePath(wb, start, goal)
	require.True(t, ok)
	assert.Equal(t, path.Waypoints(), again.Waypoints())
}

func TestFindPathStaticGraphBothDirections(t *testing.T) {
	wb := lRoom(t)
	a := vmath.Pt(300, 240)
	b := vmath.Pt(360, 240)

	fwd, ok := FindPath(wb, a, b)
	require.True(t, ok)
	assert.Equal(t, []vmath.Point{a, b}, fwd.Waypoints())

	back, ok := FindPath(wb, b, a)
	require.True(t, ok, "undirected static edges traverse both ways")
	assert.Equal(t, []vmath.Point{b, a}, back.Waypoints())

	_, ok = FindPath(wb, a, vmath.Pt(1, 1))
	assert.False(t, ok, "goal not in graph")
}

func TestMinHeapOrder(t *testing.T) {
	var h minHeap
	entries := []heapEntry{
		{id: 1, pos: vmath.Pt(0, 0), priority: 5},
		{id: 2, pos: vmath.Pt(0, 0), priority: 1},
		{id: 3, pos: vmath.Pt(10, 0), priority: 3},
		{id: 4, pos: vmath.Pt(20, 0), priority: 3},
		{id: 5, pos: vmath.Pt(20, 5), priority: 3},
		{id: 6, pos: vmath.Pt(20, 5), priority: 3},
		{id: 7, pos: vmath.Pt(0, 0), priority: 0.5},
	}
	for _, e := range entries {
		h.push(e)
	}

	var got []VertexID
	for len(h) > 0 {
		got = append(got, h.pop().id)
	}
	assert.Equal(t, []VertexID{7, 2, 6, 5, 4, 3, 1}, got)
}

func TestShortestPathIterators(t *testing.T) {
	p := newShortestPath([]vmath.Point{vmath.Pt(0, 0), vmath.Pt(3, 4), vmath.Pt(3, 10)})
	assert.Equal(t, 11.0, p.Distance())
	assert.Len(t, slices.Collect(p.Segments()), 2)
	assert.Equal(t, p.Waypoints(), slices.Collect(p.Points()))

	// Early exit and restart
	for range p.Points() {
		break
	}
	assert.Len(t, slices.Collect(p.Points()), 3)

	w := p.Waypoints()
	w[0] = vmath.Pt(99, 99)
	assert.Equal(t, vmath.Pt(0, 0), p.Start(), "Waypoints returns a copy")
}
