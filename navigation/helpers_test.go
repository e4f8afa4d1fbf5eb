package navigation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/vmath"
)

func ring(t *testing.T, xy ...float64) *geometry.Polygon {
	t.Helper()
	vs := make([]vmath.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		vs = append(vs, vmath.Pt(xy[i], xy[i+1]))
	}
	p, err := geometry.NewPolygon(vs...)
	require.NoError(t, err)
	return p
}

// lRoom is a room split by a wall hanging from the ceiling between x=300 and x=360
func lRoom(t *testing.T) *WalkBox {
	return NewWalkBox(ring(t, 60, 60, 300, 60, 300, 240, 360, 240, 360, 60, 610, 60, 610, 435, 60, 435))
}

// notchedRoom adds a slot cut into the right wall between y=260 and y=280
func notchedRoom(t *testing.T) *WalkBox {
	return NewWalkBox(ring(t,
		60, 60, 300, 60, 300, 240, 360, 240, 360, 60, 610, 60, 610, 260,
		510, 260, 510, 280, 610, 280, 610, 435, 60, 435, 60, 60,
	))
}

// pillarRoom is a 300x300 room with a 100x100 pillar in the middle
func pillarRoom(t *testing.T) *WalkBox {
	return NewWalkBox(
		ring(t, 0, 0, 300, 0, 300, 300, 0, 300),
		ring(t, 100, 100, 200, 100, 200, 200, 100, 200),
	)
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func assertPoints(t *testing.T, want, got []vmath.Point) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

// assertWalkable checks every path segment against every boundary edge
func assertWalkable(t *testing.T, wb *WalkBox, p *ShortestPath) {
	t.Helper()
	for s := range p.Segments() {
		for _, b := range wb.BoundaryEdges() {
			if s.Crosses(b) {
				t.Errorf("Expected path segment %v→%v not to cross boundary %v→%v", s.Start, s.End, b.Start, b.End)
			}
		}
	}
}
