// Package scene holds the built-in walkable regions
package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/navigation"
	"github.com/lixenwraith/walkbox/vmath"
)

var (
	ErrUnknownScene = errors.New("scene: unknown scene")
	ErrInvalidScene = errors.New("scene: invalid scene")
)

// Scene is an in-memory region definition in world pixels, y growing downward
type Scene struct {
	Name        string
	Description string
	Exterior    []vmath.Point
	Holes       [][]vmath.Point
	Spawn       vmath.Point
}

func pts(xy ...float64) []vmath.Point {
	out := make([]vmath.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, vmath.Pt(xy[i], xy[i+1]))
	}
	return out
}

var builtin = []Scene{
	{
		Name:        "notched-room",
		Description: "L-room with a wall hanging from the ceiling and a slot cut into the right wall",
		Exterior: pts(
			60, 60, 300, 60, 300, 240, 360, 240, 360, 60, 610, 60, 610, 260,
			510, 260, 510, 280, 610, 280, 610, 435, 60, 435, 60, 60,
		),
		Spawn: vmath.Pt(150, 150),
	},
	{
		Name:        "l-room",
		Description: "Room split by a single wall hanging from the ceiling",
		Exterior:    pts(60, 60, 300, 60, 300, 240, 360, 240, 360, 60, 610, 60, 610, 435, 60, 435),
		Spawn:       vmath.Pt(150, 150),
	},
	{
		Name:        "pillars",
		Description: "Open hall with three square pillars",
		Exterior:    pts(40, 40, 760, 40, 760, 440, 40, 440),
		Holes: [][]vmath.Point{
			pts(200, 150, 280, 150, 280, 230, 200, 230),
			pts(420, 250, 500, 250, 500, 330, 420, 330),
			pts(580, 120, 660, 120, 660, 200, 580, 200),
		},
		Spawn: vmath.Pt(100, 100),
	},
	{
		Name:        "courtyard",
		Description: "Hall around a U-shaped block enclosing a pocket open to the south",
		Exterior:    pts(40, 40, 640, 40, 640, 440, 40, 440),
		Holes: [][]vmath.Point{
			pts(200, 120, 480, 120, 480, 360, 400, 360, 400, 200, 280, 200, 280, 360, 200, 360),
		},
		Spawn: vmath.Pt(100, 100),
	},
}

// All returns every built-in scene
func All() []Scene {
	return slices.Clone(builtin)
}

// Names lists built-in scene names in declaration order
func Names() []string {
	names := make([]string, len(builtin))
	for i, s := range builtin {
		names[i] = s.Name
	}
	return names
}

// Get returns the named scene
func Get(name string) (Scene, error) {
	for _, s := range builtin {
		if s.Name == name {
			return s, nil
		}
	}
	return Scene{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// Build validates the scene and constructs its WalkBox
func (s Scene) Build() (*navigation.WalkBox, error) {
	exterior, err := geometry.NewPolygon(s.Exterior...)
	if err != nil {
		return nil, fmt.Errorf("scene %q exterior: %w", s.Name, err)
	}

	holes := make([]*geometry.Polygon, 0, len(s.Holes))
	for i, ring := range s.Holes {
		hole, err := geometry.NewPolygon(ring...)
		if err != nil {
			return nil, fmt.Errorf("scene %q hole %d: %w", s.Name, i, err)
		}
		for _, v := range hole.Vertices() {
			if !exterior.Contains(v) {
				return nil, fmt.Errorf("%w: %q hole %d vertex %v outside exterior", ErrInvalidScene, s.Name, i, v)
			}
		}
		holes = append(holes, hole)
	}

	wb := navigation.NewWalkBox(exterior, holes...)
	if !wb.Contains(s.Spawn) {
		return nil, fmt.Errorf("%w: %q spawn %v not walkable", ErrInvalidScene, s.Name, s.Spawn)
	}
	return wb, nil
}

// Load is Get followed by Build
func Load(name string) (Scene, *navigation.WalkBox, error) {
	s, err := Get(name)
	if err != nil {
		return Scene{}, nil, err
	}
	wb, err := s.Build()
	if err != nil {
		return Scene{}, nil, err
	}
	return s, wb, nil
}
