package navigation

import (
	"math"

	"github.com/lixenwraith/walkbox/vmath"
)

// --- Min-heap for A* ---

type heapEntry struct {
	id       VertexID
	pos      vmath.Point
	priority float64
}

// before orders entries by priority, ties broken toward greater X, then greater Y, then greater id
func (e heapEntry) before(o heapEntry) bool {
	if e.priority != o.priority {
		return e.priority < o.priority
	}
	if e.pos.X != o.pos.X {
		return e.pos.X > o.pos.X
	}
	if e.pos.Y != o.pos.Y {
		return e.pos.Y > o.pos.Y
	}
	return e.id > o.id
}

type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	// Sift up
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !(*h)[i].before((*h)[parent]) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].before((*h)[left]) {
			smallest = right
		}
		if !(*h)[smallest].before((*h)[i]) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// FindPath runs A* over g from start to goal, both resolved through g.Lookup
// Priority is cost-so-far plus the straight-line distance from the expanded vertex to goal
// Returns false when either endpoint is not in g or the goal is unreachable
func FindPath(g WalkableGraph, start, goal vmath.Point) (*ShortestPath, bool) {
	startID, ok := g.Lookup(start)
	if !ok {
		return nil, false
	}
	goalID, ok := g.Lookup(goal)
	if !ok {
		return nil, false
	}

	// Known endpoints start unreached; ids missing from the table are unseen
	cost := make(map[VertexID]float64)
	for e := range g.Edges() {
		cost[e.From] = math.Inf(1)
		cost[e.To] = math.Inf(1)
	}
	cost[startID] = 0
	prev := make(map[VertexID]VertexID)

	startPos, _ := g.Vertex(startID)
	frontier := minHeap{{id: startID, pos: startPos, priority: 0}}
	for len(frontier) > 0 {
		cur := frontier.pop()
		if cur.id == goalID {
			return reconstruct(g, prev, startID, goalID), true
		}

		h := goal.DistanceTo(cur.pos)
		for e := range g.Neighbours(cur.id) {
			candidate := cost[cur.id] + e.Length()
			if known, seen := cost[e.To]; seen && candidate >= known {
				continue
			}
			cost[e.To] = candidate
			prev[e.To] = cur.id
			frontier.push(heapEntry{id: e.To, pos: e.Segment.End, priority: candidate + h})
		}
	}
	return nil, false
}

// reconstruct walks predecessors back from goal
func reconstruct(g WalkableGraph, prev map[VertexID]VertexID, startID, goalID VertexID) *ShortestPath {
	var ids []VertexID
	for id := goalID; id != startID; id = prev[id] {
		ids = append(ids, id)
	}
	ids = append(ids, startID)

	points := make([]vmath.Point, len(ids))
	for i, id := range ids {
		p, _ := g.Vertex(id)
		points[len(ids)-1-i] = p
	}
	return newShortestPath(points)
}
