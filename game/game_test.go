package game

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/walkbox/config"
	"github.com/lixenwraith/walkbox/core"
	"github.com/lixenwraith/walkbox/scene"
	"github.com/lixenwraith/walkbox/vmath"
)

func newTestGame(t *testing.T) (*Game, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(56, 39)

	cfg := config.Default()
	cfg.Navigation.RecomputeTicks = 0
	cfg.Audio.Enabled = false

	sc, wb, err := scene.Load("l-room")
	require.NoError(t, err)
	return New(screen, cfg, sc, wb, nil), screen
}

// cellOf returns the screen cell for a world point
func cellOf(g *Game, p vmath.Point) core.Point {
	return g.vp.ToCell(p)
}

func mouse(c core.Point, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(c.X, c.Y, buttons, tcell.ModNone)
}

func TestHoverPreview(t *testing.T) {
	g, _ := newTestGame(t)

	c := cellOf(g, vmath.Pt(450, 150))
	require.True(t, g.HandleEvent(mouse(c, tcell.ButtonNone)))
	g.Tick()

	res, ok := g.Preview()
	require.True(t, ok)
	require.True(t, res.Reachable())
	assert.Equal(t, 4, res.Path.Len())
	assert.False(t, g.Walker().Moving(), "hover must not move the agent")
}

func TestClickCommitsAndArrives(t *testing.T) {
	g, _ := newTestGame(t)

	c := cellOf(g, vmath.Pt(450, 150))
	g.HandleEvent(mouse(c, tcell.Button1))
	g.HandleEvent(mouse(c, tcell.ButtonNone))
	require.True(t, g.Walker().Moving())

	route := g.Walker().Remaining()
	goal := route[len(route)-1]

	for i := 0; i < 10_000 && g.Walker().Moving(); i++ {
		g.Tick()
	}
	assert.False(t, g.Walker().Moving())
	assert.True(t, g.Walker().Position().Near(goal, 1e-9))
}

func TestHeldButtonCommitsOnce(t *testing.T) {
	g, _ := newTestGame(t)

	c := cellOf(g, vmath.Pt(450, 150))
	g.HandleEvent(mouse(c, tcell.Button1))
	first := g.Walker().Remaining()

	// Dragging with the button held does not re-commit
	g.HandleEvent(mouse(cellOf(g, vmath.Pt(500, 400)), tcell.Button1))
	assert.Equal(t, first, g.Walker().Remaining())
}

func TestKeys(t *testing.T) {
	g, _ := newTestGame(t)

	overlay := g.Overlay()
	assert.True(t, g.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)))
	assert.Equal(t, !overlay, g.Overlay())

	g.HandleEvent(mouse(cellOf(g, vmath.Pt(450, 150)), tcell.Button1))
	require.True(t, g.Walker().Moving())
	g.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	assert.False(t, g.Walker().Moving())

	assert.False(t, g.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, g.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestRender(t *testing.T) {
	g, screen := newTestGame(t)
	g.Render()

	agent := cellOf(g, vmath.Pt(150, 150))
	r, _, _, _ := screen.GetContent(agent.X, agent.Y)
	assert.Equal(t, '@', r)

	corner := cellOf(g, vmath.Pt(60, 60))
	r, _, _, _ = screen.GetContent(corner.X, corner.Y)
	assert.Equal(t, '#', r)

	_, h := screen.Size()
	var line strings.Builder
	w, _ := screen.Size()
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, h-1)
		line.WriteRune(r)
	}
	assert.Contains(t, line.String(), "l-room")
}

func TestRunQuitsOnKey(t *testing.T) {
	g, screen := newTestGame(t)

	done := make(chan error, 1)
	go func() { done <- g.Run(context.Background()) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after quit key")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g, _ := newTestGame(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
