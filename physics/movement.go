package physics

import (
	"github.com/lixenwraith/walkbox/vmath"
)

// Step moves loc toward dest by speed*dtMs along the straight line
// Snaps onto dest when the step would reach or overshoot it
// speed is in world pixels per millisecond
func Step(loc, dest vmath.Point, speed, dtMs float64) vmath.Point {
	delta := dest.Sub(loc)
	dist := delta.Len()
	travel := speed * dtMs
	if dist <= travel || vmath.NearZero(dist) {
		return dest
	}
	return loc.Add(delta.Scale(travel / dist))
}

// CapSpeed limits v to maxSpeed magnitude
// Returns true if v was clamped
func CapSpeed(v vmath.Vector, maxSpeed float64) (vmath.Vector, bool) {
	if v.LenSq() > maxSpeed*maxSpeed {
		return v.Normalize().Scale(maxSpeed), true
	}
	return v, false
}
