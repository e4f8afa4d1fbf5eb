package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/walkbox/vmath"
)

func TestStep(t *testing.T) {
	tests := []struct {
		name      string
		loc, dest vmath.Point
		speed, dt float64
		want      vmath.Point
	}{
		{"partial horizontal", vmath.Pt(0, 0), vmath.Pt(100, 0), 0.15, 100, vmath.Pt(15, 0)},
		{"snap on overshoot", vmath.Pt(0, 0), vmath.Pt(10, 0), 0.15, 100, vmath.Pt(10, 0)},
		{"exact arrival", vmath.Pt(0, 0), vmath.Pt(0, 15), 0.15, 100, vmath.Pt(0, 15)},
		{"already there", vmath.Pt(5, 5), vmath.Pt(5, 5), 0.15, 16, vmath.Pt(5, 5)},
		{"diagonal", vmath.Pt(0, 0), vmath.Pt(30, 40), 1, 25, vmath.Pt(15, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Step(tt.loc, tt.dest, tt.speed, tt.dt)
			assert.True(t, got.Near(tt.want, 1e-9), "Expected %v, got %v", tt.want, got)
		})
	}
}

func TestCapSpeed(t *testing.T) {
	v, clamped := CapSpeed(vmath.Vec(30, 40), 5)
	assert.True(t, clamped)
	assert.InDelta(t, 3.0, v.X, 1e-9)
	assert.InDelta(t, 4.0, v.Y, 1e-9)

	v, clamped = CapSpeed(vmath.Vec(1, 1), 5)
	assert.False(t, clamped)
	assert.Equal(t, vmath.Vec(1, 1), v)
}

func TestWalkerFollowsWaypoints(t *testing.T) {
	w := NewWalker(vmath.Pt(0, 0), 1)
	w.Follow([]vmath.Point{vmath.Pt(0, 0), vmath.Pt(10, 0), vmath.Pt(10, 10)})

	assert.True(t, w.Moving())
	assert.Equal(t, []vmath.Point{vmath.Pt(10, 0), vmath.Pt(10, 10)}, w.Remaining(), "start waypoint skipped")

	assert.False(t, w.Tick(5))
	assert.Equal(t, vmath.Pt(5, 0), w.Position())

	// Leftover travel carries around the corner
	assert.False(t, w.Tick(8))
	assert.True(t, w.Position().Near(vmath.Pt(10, 3), 1e-9))
	assert.Len(t, w.Remaining(), 1)

	assert.True(t, w.Tick(100))
	assert.Equal(t, vmath.Pt(10, 10), w.Position())
	assert.False(t, w.Moving())
	assert.False(t, w.Tick(100), "idle walker never re-reports arrival")
}

func TestWalkerStopAndTeleport(t *testing.T) {
	w := NewWalker(vmath.Pt(0, 0), 0.15)
	w.Follow([]vmath.Point{vmath.Pt(100, 0)})
	w.Tick(100)
	w.Stop()
	assert.False(t, w.Moving())
	assert.True(t, w.Position().Near(vmath.Pt(15, 0), 1e-9))

	w.Follow([]vmath.Point{vmath.Pt(100, 0)})
	w.Teleport(vmath.Pt(50, 50))
	assert.False(t, w.Moving())
	assert.Equal(t, vmath.Pt(50, 50), w.Position())
	assert.Equal(t, 0.15, w.Speed())
}
