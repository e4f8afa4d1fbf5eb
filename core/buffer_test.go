package core

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/navigation"
	"github.com/lixenwraith/walkbox/vmath"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(10, 5)
	if b.Width() != 10 || b.Height() != 5 {
		t.Fatalf("Expected 10x5, got %dx%d", b.Width(), b.Height())
	}
	cell, ok := b.GetCell(9, 4)
	if !ok || cell.Rune != ' ' {
		t.Errorf("Expected blank cell, got %q (ok=%v)", cell.Rune, ok)
	}
}

func TestBufferBounds(t *testing.T) {
	b := NewBuffer(4, 3)
	for _, p := range []Point{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		if b.SetContent(p.X, p.Y, 'x', tcell.StyleDefault) {
			t.Errorf("Expected SetContent at %v to fail", p)
		}
		if _, ok := b.GetCell(p.X, p.Y); ok {
			t.Errorf("Expected GetCell at %v to fail", p)
		}
	}
}

func TestBufferDirtyTracking(t *testing.T) {
	b := NewBuffer(5, 5)
	b.ClearDirty()

	b.SetContent(2, 3, 'a', tcell.StyleDefault)
	b.SetContent(2, 3, 'a', tcell.StyleDefault)
	dirty := b.DirtyRegions()
	if len(dirty) != 1 || dirty[0] != (Point{2, 3}) {
		t.Errorf("Expected single dirty cell (2,3), got %v", dirty)
	}
}

func TestBufferResizePreserves(t *testing.T) {
	b := NewBuffer(3, 3)
	b.SetContent(1, 1, 'k', tcell.StyleDefault)
	b.Resize(5, 2)
	if c, _ := b.GetCell(1, 1); c.Rune != 'k' {
		t.Errorf("Expected preserved 'k', got %q", c.Rune)
	}
	if c, _ := b.GetCell(4, 1); c.Rune != ' ' {
		t.Errorf("Expected blank new cell, got %q", c.Rune)
	}
}

func TestDrawText(t *testing.T) {
	b := NewBuffer(6, 1)
	b.DrawText(3, 0, "hello", tcell.StyleDefault)
	line := b.GetLine(0)
	got := string([]rune{line[3].Rune, line[4].Rune, line[5].Rune})
	if got != "hel" {
		t.Errorf("Expected clipped text 'hel', got %q", got)
	}
}

func TestDrawSegment(t *testing.T) {
	vp := NewViewport(geometry.Bounds{Min: vmath.Pt(0, 0), Max: vmath.Pt(90, 40)}, 10, 5)
	b := NewBuffer(10, 5)
	b.DrawSegment(vp, geometry.Seg(vmath.Pt(0, 20), vmath.Pt(90, 20)), '#', tcell.StyleDefault)

	for x := 0; x < 10; x++ {
		if c, _ := b.GetCell(x, 2); c.Rune != '#' {
			t.Errorf("Expected '#' at (%d,2), got %q", x, c.Rune)
		}
	}
	if c, _ := b.GetCell(0, 1); c.Rune != ' ' {
		t.Errorf("Expected row 1 untouched, got %q", c.Rune)
	}
}

func TestDrawTaggedLayering(t *testing.T) {
	vp := NewViewport(geometry.Bounds{Min: vmath.Pt(0, 0), Max: vmath.Pt(40, 40)}, 5, 5)
	b := NewBuffer(5, 5)
	s := geometry.Seg(vmath.Pt(0, 0), vmath.Pt(40, 0))
	b.DrawTagged(vp, []navigation.TaggedSegment{
		{Segment: s, Category: navigation.CategoryGraph},
		{Segment: s, Category: navigation.CategoryPath},
	}, 0)

	c, _ := b.GetCell(2, 0)
	if c.Rune != '*' {
		t.Errorf("Expected path glyph on top, got %q", c.Rune)
	}
	fg, _, _ := c.Style.Decompose()
	if fg != RGBPath.Color() {
		t.Errorf("Expected path color, got %v", fg)
	}
}

func TestBlit(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(4, 2)

	b := NewBuffer(4, 2)
	b.SetContent(3, 1, '@', RGBAgent.Style())
	b.Blit(screen)

	r, _, _, _ := screen.GetContent(3, 1)
	if r != '@' {
		t.Errorf("Expected '@' on screen, got %q", r)
	}
	if n := len(b.DirtyRegions()); n != 0 {
		t.Errorf("Expected dirty set cleared, got %d", n)
	}
}

func TestBlend(t *testing.T) {
	got := RGBBoundary.Blend(RGBBlack, 0.5)
	want := RGB{5, 5, 120}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if RGBPath.Blend(RGBBlack, 0) != RGBPath {
		t.Error("Expected zero alpha to keep color")
	}
}
