package navigation

import (
	"iter"
	"slices"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/vmath"
)

// ShortestPath is an ordered waypoint list from start to goal, never empty
type ShortestPath struct {
	points   []vmath.Point
	distance float64
}

func newShortestPath(points []vmath.Point) *ShortestPath {
	p := &ShortestPath{points: points}
	for i := 1; i < len(points); i++ {
		p.distance += points[i-1].DistanceTo(points[i])
	}
	return p
}

func (p *ShortestPath) Start() vmath.Point { return p.points[0] }

func (p *ShortestPath) End() vmath.Point { return p.points[len(p.points)-1] }

// Len is the number of waypoints including start and goal
func (p *ShortestPath) Len() int { return len(p.points) }

// Distance is the summed segment length
func (p *ShortestPath) Distance() float64 { return p.distance }

// Points yields waypoints in travel order
func (p *ShortestPath) Points() iter.Seq[vmath.Point] {
	return slices.Values(p.points)
}

// Waypoints returns a copy of the waypoints
func (p *ShortestPath) Waypoints() []vmath.Point {
	return slices.Clone(p.points)
}

// Segments yields consecutive waypoint pairs
func (p *ShortestPath) Segments() iter.Seq[geometry.Segment] {
	return func(yield func(geometry.Segment) bool) {
		for i := 1; i < len(p.points); i++ {
			if !yield(geometry.Seg(p.points[i-1], p.points[i])) {
				return
			}
		}
	}
}

// ComputePath augments wb with start and goal and searches the resulting view
// The goal is used as given; clamp it first to route toward an outside point
func ComputePath(wb *WalkBox, start, goal vmath.Point) (*ShortestPath, bool) {
	return FindPath(wb.Augment(start, goal), start, goal)
}
