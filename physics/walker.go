package physics

import (
	"sync"

	"github.com/lixenwraith/walkbox/vmath"
)

// Walker follows a waypoint list at constant speed
type Walker struct {
	mu sync.RWMutex

	position  vmath.Point
	waypoints []vmath.Point // Remaining targets, head is the current one
	speed     float64       // World pixels per millisecond
}

func NewWalker(position vmath.Point, speed float64) *Walker {
	return &Walker{position: position, speed: speed}
}

// Follow replaces the remaining route
// A leading waypoint equal to the current position is skipped
func (w *Walker) Follow(waypoints []vmath.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.waypoints = append(w.waypoints[:0], waypoints...)
	w.skipReached()
}

// Stop drops the remaining route
func (w *Walker) Stop() {
	w.mu.Lock()
	w.waypoints = w.waypoints[:0]
	w.mu.Unlock()
}

// Teleport moves to p and drops the route
func (w *Walker) Teleport(p vmath.Point) {
	w.mu.Lock()
	w.position = p
	w.waypoints = w.waypoints[:0]
	w.mu.Unlock()
}

// Tick advances by dtMs, carrying leftover travel across waypoints
// Returns true on the tick the final waypoint is reached
func (w *Walker) Tick(dtMs float64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.waypoints) == 0 {
		return false
	}
	budget := w.speed * dtMs
	for len(w.waypoints) > 0 && budget > 0 {
		target := w.waypoints[0]
		dist := w.position.DistanceTo(target)
		if dist > budget {
			w.position = Step(w.position, target, w.speed, budget/w.speed)
			return false
		}
		w.position = target
		w.waypoints = w.waypoints[1:]
		budget -= dist
	}
	return len(w.waypoints) == 0
}

func (w *Walker) skipReached() {
	for len(w.waypoints) > 0 && w.waypoints[0] == w.position {
		w.waypoints = w.waypoints[1:]
	}
}

func (w *Walker) Position() vmath.Point {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.position
}

// Moving reports a route in progress
func (w *Walker) Moving() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.waypoints) > 0
}

// Remaining returns a copy of the waypoints still ahead
func (w *Walker) Remaining() []vmath.Point {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]vmath.Point, len(w.waypoints))
	copy(out, w.waypoints)
	return out
}

func (w *Walker) Speed() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.speed
}
