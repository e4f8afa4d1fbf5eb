package game

import (
	"fmt"

	"github.com/lixenwraith/walkbox/core"
	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/navigation"
	"github.com/lixenwraith/walkbox/vmath"
)

// previewDim darkens the hover path against the committed one
const previewDim = 0.5

// Render composes the frame into the buffer and blits it
func (g *Game) Render() {
	g.buf.Clear()

	// Layers bottom to top: graph, boundary, preview, committed route, markers
	if g.overlay {
		var graph []navigation.TaggedSegment
		for _, s := range g.nav.WalkableEdges() {
			graph = append(graph, navigation.TaggedSegment{Segment: s, Category: navigation.CategoryGraph})
		}
		g.buf.DrawTagged(g.vp, graph, 0)
	}

	var boundary []navigation.TaggedSegment
	for _, s := range g.nav.BoundaryEdges() {
		boundary = append(boundary, navigation.TaggedSegment{Segment: s, Category: navigation.CategoryBoundary})
	}
	g.buf.DrawTagged(g.vp, boundary, 0)

	preview, ok := g.Preview()
	if ok && g.hovering && preview.Path != nil {
		g.buf.DrawTagged(g.vp, pathSegments(preview.Path.Waypoints()), previewDim)
	}

	pos := g.walker.Position()
	if route := g.walker.Remaining(); len(route) > 0 {
		pts := append([]vmath.Point{pos}, route...)
		g.buf.DrawTagged(g.vp, pathSegments(pts), 0)
		g.buf.DrawPoint(g.vp, route[len(route)-1], 'X', core.RGBTarget.Style())
	}
	if ok && g.hovering && !preview.Reachable() {
		g.buf.DrawPoint(g.vp, preview.Destination, 'x', core.RGBTarget.Style())
	}
	g.buf.DrawPoint(g.vp, pos, '@', core.RGBAgent.Style())

	g.buf.DrawText(0, g.buf.Height()-1, g.status(), core.RGBText.Style())

	g.buf.Blit(g.screen)
	g.screen.Show()
}

func (g *Game) status() string {
	state := "idle"
	if g.walker.Moving() {
		state = "walking"
	}
	preview, ok := g.Preview()
	target := "-"
	if ok && g.hovering {
		target = preview.Destination.String()
		if !preview.Reachable() {
			target += " blocked"
		}
	}
	return fmt.Sprintf(" %s  agent %v  pointer %v  dest %s  [%s]  d:overlay s:stop q:quit",
		g.scene.Name, g.walker.Position().Round(), g.pointer, target, state)
}

func pathSegments(pts []vmath.Point) []navigation.TaggedSegment {
	out := make([]navigation.TaggedSegment, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		out = append(out, navigation.TaggedSegment{
			Segment:  geometry.Seg(pts[i-1], pts[i]),
			Category: navigation.CategoryPath,
		})
	}
	return out
}
