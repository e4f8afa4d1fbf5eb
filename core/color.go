package core

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/walkbox/navigation"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Palette
var (
	RGBBlack    = RGB{0, 0, 0}
	RGBBoundary = RGB{10, 10, 240}
	RGBGraph    = RGB{240, 240, 240}
	RGBPath     = RGB{10, 240, 10}
	RGBAgent    = RGB{240, 200, 10}
	RGBTarget   = RGB{240, 60, 60}
	RGBText     = RGB{200, 200, 200}
)

// Blend performs alpha blending: result = src*alpha + c*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style returns a foreground style on the default background
func (c RGB) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Color())
}

// CategoryGlyph returns the rune and color a debug segment category draws with
func CategoryGlyph(c navigation.Category) (rune, RGB) {
	switch c {
	case navigation.CategoryBoundary:
		return '#', RGBBoundary
	case navigation.CategoryPath:
		return '*', RGBPath
	default:
		return '·', RGBGraph
	}
}
