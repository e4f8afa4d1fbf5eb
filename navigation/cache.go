package navigation

import (
	"math"

	"github.com/lixenwraith/walkbox/vmath"
)

// QueryCache manages hover preview recomputation with throttling
type QueryCache struct {
	Result Result

	// Recomputation throttling
	LastLocation           vmath.Point // Query inputs of the cached result
	LastPointer            vmath.Point
	TicksSinceCompute      int     // Ticks since last computation
	MinTicksBetweenCompute int     // Minimum ticks between recomputes
	DirtyDistance          float64 // Inputs must move this far (Manhattan) to trigger immediate recompute

	// PendingUpdate latches true on any input change, cleared after compute
	PendingUpdate bool

	valid bool
}

// NewQueryCache creates a cache that computes on its first Update
func NewQueryCache(minTicks int, dirtyDist float64) *QueryCache {
	return &QueryCache{
		TicksSinceCompute:      minTicks, // Allow immediate first compute
		MinTicksBetweenCompute: minTicks,
		DirtyDistance:          dirtyDist,
		PendingUpdate:          true, // Force initial compute
	}
}

// Update advances one tick and re-runs the query through nav when due
// Returns true if the result was recomputed this tick
func (c *QueryCache) Update(nav *Navigator, location, pointer vmath.Point) bool {
	c.TicksSinceCompute++

	if c.valid {
		moved := manhattan(location, c.LastLocation) + manhattan(pointer, c.LastPointer)
		switch {
		case moved >= c.DirtyDistance:
			c.PendingUpdate = true
			c.TicksSinceCompute = c.MinTicksBetweenCompute
		case moved > 0:
			c.PendingUpdate = true
		}
	}

	if (c.PendingUpdate && c.TicksSinceCompute >= c.MinTicksBetweenCompute) || !c.valid {
		c.Result = nav.Navigate(location, pointer)
		c.LastLocation = location
		c.LastPointer = pointer
		c.TicksSinceCompute = 0
		c.PendingUpdate = false
		c.valid = true
		return true
	}

	return false
}

// MarkDirty forces recomputation on next eligible tick
func (c *QueryCache) MarkDirty() {
	c.PendingUpdate = true
}

// Invalidate forces recomputation on the next Update regardless of throttling
func (c *QueryCache) Invalidate() {
	c.valid = false
}

// IsValid returns true if a result has been computed
func (c *QueryCache) IsValid() bool {
	return c.valid
}

func manhattan(a, b vmath.Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}
