package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/walkbox/audio"
	"github.com/lixenwraith/walkbox/config"
	"github.com/lixenwraith/walkbox/core"
	"github.com/lixenwraith/walkbox/navigation"
	"github.com/lixenwraith/walkbox/observability"
	"github.com/lixenwraith/walkbox/physics"
	"github.com/lixenwraith/walkbox/scene"
	"github.com/lixenwraith/walkbox/vmath"
)

// statusRows is the number of rows reserved below the map
const statusRows = 1

// Game is the terminal click-to-walk driver
// Hover previews a path through the query cache, left click commits it to the walker
type Game struct {
	screen   tcell.Screen
	cfg      config.NavigationConfig
	scene    scene.Scene
	nav      *navigation.Navigator
	walker   *physics.Walker
	cache    *navigation.QueryCache
	feedback *audio.Feedback

	buf *core.Buffer
	vp  *core.Viewport

	pointer  vmath.Point
	hovering bool
	buttons  tcell.ButtonMask
	overlay  bool
	dtMs     float64
	log      *zap.Logger
}

// New wires a game onto an initialized screen; fb may be nil for silent play
func New(screen tcell.Screen, cfg *config.Config, sc scene.Scene, wb *navigation.WalkBox, fb *audio.Feedback) *Game {
	if fb == nil {
		fb = audio.NewFeedback(config.AudioConfig{})
	}
	g := &Game{
		screen:   screen,
		cfg:      cfg.Navigation,
		scene:    sc,
		nav:      navigation.NewNavigator(wb),
		walker:   physics.NewWalker(sc.Spawn, cfg.Navigation.AgentSpeed),
		cache:    navigation.NewQueryCache(cfg.Navigation.RecomputeTicks, cfg.Navigation.DirtyDistance),
		feedback: fb,
		pointer:  sc.Spawn,
		overlay:  cfg.Navigation.DebugOverlay,
		dtMs:     float64(cfg.Navigation.TickInterval()) / float64(time.Millisecond),
		log:      observability.GetLogger().With(zap.String("scene", sc.Name)),
	}
	w, h := screen.Size()
	g.resize(w, h)
	return g
}

// Run drives the game until ctx is cancelled or the player quits
// The caller owns screen Init and Fini; Fini unblocks the event poller
func (g *Game) Run(ctx context.Context) error {
	g.screen.EnableMouse(tcell.MouseMotionEvents)
	defer g.screen.DisableMouse()

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	ticker := time.NewTicker(g.cfg.TickInterval())
	defer ticker.Stop()

	g.log.Info("Game started", zap.Stringer("spawn", g.scene.Spawn))
	g.Render()

	for {
		select {
		case <-ctx.Done():
			g.log.Info("Game stopped", zap.Error(ctx.Err()))
			return nil

		case ev := <-events:
			if !g.HandleEvent(ev) {
				g.log.Info("Game quit")
				return nil
			}

		case <-ticker.C:
			g.Tick()
			g.Render()
		}
	}
}

// HandleEvent applies one input event; returns false to quit
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q', ev.Rune() == 'Q':
			return false
		case ev.Rune() == 'd', ev.Rune() == 'D':
			g.overlay = !g.overlay
		case ev.Rune() == 's', ev.Rune() == 'S':
			g.walker.Stop()
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		mapCols, mapRows := g.vp.Size()
		g.hovering = x < mapCols && y < mapRows
		if g.hovering {
			g.pointer = g.vp.ToWorld(core.Point{X: x, Y: y})
		}
		pressed := ev.Buttons()&tcell.Button1 != 0 && g.buttons&tcell.Button1 == 0
		g.buttons = ev.Buttons()
		if pressed && g.hovering {
			g.commit()
		}

	case *tcell.EventResize:
		g.resize(ev.Size())
		g.screen.Sync()
	}
	return true
}

// Tick advances the walker and refreshes the hover preview
func (g *Game) Tick() {
	if g.walker.Moving() && g.walker.Tick(g.dtMs) {
		g.log.Debug("Arrived", zap.Stringer("position", g.walker.Position()))
		g.feedback.PlayArrive()
	}
	if g.hovering {
		g.cache.Update(g.nav, g.walker.Position(), g.pointer)
	}
}

// commit queries from the current position and hands the path to the walker
func (g *Game) commit() {
	res := g.nav.Navigate(g.walker.Position(), g.pointer)
	g.cache.Result = res
	g.cache.MarkDirty()
	if !res.Reachable() {
		g.log.Info("Destination unreachable", zap.Stringer("pointer", g.pointer))
		g.feedback.PlayBlocked()
		return
	}
	g.walker.Follow(res.Path.Waypoints())
	g.log.Info("Path committed",
		zap.Stringer("destination", res.Destination),
		zap.Int("waypoints", res.Path.Len()),
		zap.Float64("distance", res.Path.Distance()))
	g.feedback.PlayCommit()
}

// resize fits the scene into the screen above the status line
func (g *Game) resize(w, h int) {
	if g.buf == nil {
		g.buf = core.NewBuffer(w, h)
	} else {
		g.buf.Resize(w, h)
	}
	g.vp = core.NewViewport(g.nav.WalkBox().Bounds(), w, max(h-statusRows, 1))
}

func (g *Game) Walker() *physics.Walker {
	return g.walker
}

func (g *Game) Overlay() bool {
	return g.overlay
}

// Preview returns the latest hover query result
func (g *Game) Preview() (navigation.Result, bool) {
	return g.cache.Result, g.cache.IsValid()
}
