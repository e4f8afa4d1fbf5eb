package navigation

import (
	"sync"

	"go.uber.org/zap"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/observability"
	"github.com/lixenwraith/walkbox/vmath"
)

// Result is the outcome of one navigation query
type Result struct {
	Location    vmath.Point
	Destination vmath.Point   // Pointer after clamping into the region
	Path        *ShortestPath // Nil when no path exists
}

// Reachable reports a found path
func (r Result) Reachable() bool {
	return r.Path != nil
}

// Navigator owns the current query overlay over a shared WalkBox
// One Navigator per agent; methods are safe for concurrent use
type Navigator struct {
	mu   sync.Mutex
	wb   *WalkBox
	view *GraphView
}

func NewNavigator(wb *WalkBox) *Navigator {
	return &Navigator{wb: wb}
}

func (n *Navigator) WalkBox() *WalkBox {
	return n.wb
}

// ClampDestination snaps p into the walkable region
func (n *Navigator) ClampDestination(p vmath.Point) vmath.Point {
	return n.wb.ClampDestination(p)
}

// AddTemporaryEdges replaces the held overlay with one built for location and pointer
// Repeating the call with the same arguments yields the same edge set
func (n *Navigator) AddTemporaryEdges(location, pointer vmath.Point) {
	view := n.wb.Augment(location, pointer)
	n.mu.Lock()
	n.view = view
	n.mu.Unlock()
}

// WalkableEdges returns static edges followed by the held overlay's temporary edges
func (n *Navigator) WalkableEdges() []geometry.Segment {
	n.mu.Lock()
	view := n.view
	n.mu.Unlock()

	var g WalkableGraph = n.wb
	if view != nil {
		g = view
	}
	var out []geometry.Segment
	for e := range g.Edges() {
		out = append(out, e.Segment)
	}
	return out
}

func (n *Navigator) BoundaryEdges() []geometry.Segment {
	return n.wb.BoundaryEdges()
}

// Navigate clamps pointer, rebuilds the overlay and searches it
// Overlay swap and search run under one lock so concurrent queries never mix overlays
func (n *Navigator) Navigate(location, pointer vmath.Point) Result {
	n.mu.Lock()
	defer n.mu.Unlock()

	dest := n.wb.ClampDestination(pointer)
	n.view = n.wb.Augment(location, dest)
	path, ok := FindPath(n.view, location, dest)

	res := Result{Location: location, Destination: dest}
	if ok {
		res.Path = path
	}

	if ce := observability.GetLogger().Check(zap.DebugLevel, "Navigation query"); ce != nil {
		fields := []zap.Field{
			zap.Stringer("location", location),
			zap.Stringer("pointer", pointer),
			zap.Stringer("destination", dest),
			zap.Int("temporary_edges", n.view.overlay.count()),
			zap.Bool("reachable", ok),
		}
		if ok {
			fields = append(fields, zap.Int("waypoints", path.Len()), zap.Float64("distance", path.Distance()))
		}
		ce.Write(fields...)
	}
	return res
}

// Debug tags boundary edges, walkable edges and the optional path for rendering
func (n *Navigator) Debug(path *ShortestPath) []TaggedSegment {
	out := tag(nil, CategoryBoundary, n.wb.boundary...)
	out = tag(out, CategoryGraph, n.WalkableEdges()...)
	if path != nil {
		for s := range path.Segments() {
			out = tag(out, CategoryPath, s)
		}
	}
	return out
}
