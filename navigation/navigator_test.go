package navigation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/walkbox/vmath"
)

func TestAddTemporaryEdgesIdempotent(t *testing.T) {
	nav := NewNavigator(lRoom(t))
	static := len(nav.WalkableEdges())
	assert.Equal(t, 1, static)

	loc := vmath.Pt(150, 150)
	ptr := vmath.Pt(200, 300)
	nav.AddTemporaryEdges(loc, ptr)
	first := len(nav.WalkableEdges())
	nav.AddTemporaryEdges(loc, ptr)
	assert.Equal(t, first, len(nav.WalkableEdges()))
	assert.Greater(t, first, static)

	// Stale overlay fully replaced
	nav.AddTemporaryEdges(vmath.Pt(-1, -1), ptr)
	assert.Equal(t, static, len(nav.WalkableEdges()))
}

func TestNavigateClampsPointer(t *testing.T) {
	nav := NewNavigator(lRoom(t))
	loc := vmath.Pt(500, 200)

	res := nav.Navigate(loc, vmath.Pt(700, 120))
	require.True(t, res.Reachable())
	assert.Equal(t, vmath.Pt(610, 120), res.Destination)
	assert.Equal(t, []vmath.Point{loc, vmath.Pt(610, 120)}, res.Path.Waypoints())
	assertWalkable(t, nav.WalkBox(), res.Path)
}

func TestNavigateAroundWallToClampedGoal(t *testing.T) {
	nav := NewNavigator(lRoom(t))
	loc := vmath.Pt(150, 150)

	// Pointer inside the wall snaps to its underside, reached via the left corner
	res := nav.Navigate(loc, vmath.Pt(330, 230))
	require.True(t, res.Reachable())
	assert.Equal(t, vmath.Pt(330, 240), res.Destination)
	assertPoints(t, []vmath.Point{loc, vmath.Pt(300, 240), vmath.Pt(330, 240)}, res.Path.Waypoints())
}

func TestNavigateUnreachable(t *testing.T) {
	nav := NewNavigator(lRoom(t))
	res := nav.Navigate(vmath.Pt(-100, -100), vmath.Pt(150, 150))
	assert.False(t, res.Reachable())
	assert.Nil(t, res.Path)
	assert.Equal(t, vmath.Pt(150, 150), res.Destination)
}

func TestDebugCategories(t *testing.T) {
	nav := NewNavigator(lRoom(t))
	res := nav.Navigate(vmath.Pt(150, 150), vmath.Pt(570, 120))
	require.True(t, res.Reachable())

	counts := map[Category]int{}
	for _, s := range nav.Debug(res.Path) {
		counts[s.Category]++
	}
	assert.Equal(t, 8, counts[CategoryBoundary])
	assert.Equal(t, len(nav.WalkableEdges()), counts[CategoryGraph])
	assert.Equal(t, 3, counts[CategoryPath])

	assert.Zero(t, len(filter(nav.Debug(nil), CategoryPath)))
	assert.Equal(t, "boundary", CategoryBoundary.String())
	assert.Equal(t, "path", CategoryPath.String())
}

func filter(segs []TaggedSegment, c Category) []TaggedSegment {
	var out []TaggedSegment
	for _, s := range segs {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

func TestNavigatorConcurrentQueries(t *testing.T) {
	nav := NewNavigator(notchedRoom(t))
	queries := [][2]vmath.Point{
		{vmath.Pt(150, 150), vmath.Pt(570, 120)},
		{vmath.Pt(600, 290), vmath.Pt(600, 190)},
	}

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(q [2]vmath.Point) {
			defer wg.Done()
			res := nav.Navigate(q[0], q[1])
			assert.True(t, res.Reachable())
			assert.Equal(t, q[0], res.Path.Start())
			assert.Equal(t, q[1], res.Path.End())
		}(queries[i%len(queries)])
	}
	wg.Wait()
}

func TestQueryCacheThrottling(t *testing.T) {
	nav := NewNavigator(lRoom(t))
	c := NewQueryCache(3, 40)
	loc := vmath.Pt(150, 150)

	assert.True(t, c.Update(nav, loc, vmath.Pt(200, 200)), "first update computes")
	assert.True(t, c.IsValid())
	assert.False(t, c.Update(nav, loc, vmath.Pt(200, 200)), "unchanged inputs")

	// Small move waits for the throttle
	assert.False(t, c.Update(nav, loc, vmath.Pt(205, 200)))
	assert.True(t, c.PendingUpdate)
	assert.True(t, c.Update(nav, loc, vmath.Pt(205, 200)))
	assert.Equal(t, vmath.Pt(205, 200), c.Result.Destination)

	// Large move recomputes immediately
	assert.True(t, c.Update(nav, loc, vmath.Pt(570, 120)))
	assert.True(t, c.Result.Reachable())
	assert.Equal(t, 4, c.Result.Path.Len())

	c.MarkDirty()
	assert.False(t, c.Update(nav, loc, vmath.Pt(570, 120)))
	assert.False(t, c.Update(nav, loc, vmath.Pt(570, 120)))
	assert.True(t, c.Update(nav, loc, vmath.Pt(570, 120)))

	c.Invalidate()
	assert.True(t, c.Update(nav, loc, vmath.Pt(570, 120)))
}
