package navigation

import (
	"github.com/lixenwraith/walkbox/geometry"
)

// Category tags a segment for the debug renderer
type Category uint8

const (
	CategoryBoundary Category = iota
	CategoryGraph
	CategoryPath
)

func (c Category) String() string {
	switch c {
	case CategoryBoundary:
		return "boundary"
	case CategoryGraph:
		return "graph"
	case CategoryPath:
		return "path"
	default:
		return "unknown"
	}
}

// TaggedSegment is one line of the debug overlay
type TaggedSegment struct {
	Segment  geometry.Segment
	Category Category
}

// tag appends segs under category c
func tag(dst []TaggedSegment, c Category, segs ...geometry.Segment) []TaggedSegment {
	for _, s := range segs {
		dst = append(dst, TaggedSegment{Segment: s, Category: c})
	}
	return dst
}
