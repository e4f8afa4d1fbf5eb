package network

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/walkbox/config"
	"github.com/lixenwraith/walkbox/navigation"
	"github.com/lixenwraith/walkbox/physics"
)

const sendQueueSize = 64

var errSessionClosed = errors.New("network: session closed")

// Session is one websocket client driving its own agent over the shared WalkBox
type Session struct {
	ID uuid.UUID

	conn    *websocket.Conn
	nav     *navigation.Navigator
	walker  *physics.Walker
	limiter *rate.Limiter
	cfg     config.ServerConfig
	tick    time.Duration
	debug   bool
	log     *zap.Logger
	metrics *serverMetrics

	// Send queue, drained by writeLoop only
	sendCh chan []byte

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, nav *navigation.Navigator, walker *physics.Walker,
	cfg config.ServerConfig, navCfg config.NavigationConfig, metrics *serverMetrics, log *zap.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:      id,
		conn:    conn,
		nav:     nav,
		walker:  walker,
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxQueryRate), cfg.QueryBurst),
		cfg:     cfg,
		tick:    navCfg.TickInterval(),
		debug:   navCfg.DebugOverlay,
		log:     log.With(zap.Stringer("session", id)),
		metrics: metrics,
		sendCh:  make(chan []byte, sendQueueSize),
		closeCh: make(chan struct{}),
	}
}

// Close initiates shutdown; safe to call more than once
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
		s.conn.Close()
	})
}

// Done is closed once the session shuts down
func (s *Session) Done() <-chan struct{} {
	return s.closeCh
}

// run blocks until any loop exits
func (s *Session) run() error {
	var g errgroup.Group
	g.Go(s.loop(s.readLoop))
	g.Go(s.loop(s.writeLoop))
	g.Go(s.loop(s.tickLoop))
	err := g.Wait()
	if errors.Is(err, errSessionClosed) || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}
	return err
}

// loop closes the session when fn returns so sibling loops unwind
func (s *Session) loop(fn func() error) func() error {
	return func() error {
		defer s.Close()
		return fn()
	}
}

// send queues v for writeLoop; drops when the queue is full
func (s *Session) send(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("Encode failed", zap.Error(err))
		return
	}
	select {
	case s.sendCh <- data:
	case <-s.closeCh:
	default:
		s.metrics.dropped.Add(1)
		s.log.Warn("Send queue full, dropping message")
	}
}

func (s *Session) sendError(msg string) {
	s.send(ErrorMessage{Type: MsgError, Message: msg})
}

func (s *Session) readLoop() error {
	s.conn.SetReadLimit(s.cfg.ReadLimit)
	deadline := 2 * s.cfg.PingInterval
	s.conn.SetReadDeadline(time.Now().Add(deadline))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(deadline))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.closeCh:
				return errSessionClosed
			default:
				return err
			}
		}
		s.conn.SetReadDeadline(time.Now().Add(deadline))

		msg, err := DecodeClient(data)
		if err != nil {
			s.metrics.badMessages.Add(1)
			s.sendError(err.Error())
			continue
		}
		s.handle(msg)
	}
}

func (s *Session) handle(msg ClientMessage) {
	switch msg.Type {
	case MsgPing:
		s.send(PongMessage{Type: MsgPong})

	case MsgPosition:
		p := msg.Point()
		if !s.nav.WalkBox().Contains(p) {
			s.sendError("position outside walkable region")
			return
		}
		s.walker.Teleport(p)
		s.send(StateMessage{Type: MsgState, Position: wirePoint(p)})

	case MsgPointer:
		if !s.limiter.Allow() {
			s.metrics.rateLimited.Add(1)
			s.sendError("query rate exceeded")
			return
		}
		started := time.Now()
		res := s.nav.Navigate(s.walker.Position(), msg.Point())
		s.metrics.lastQueryMs.Set(float64(time.Since(started)) / float64(time.Millisecond))
		s.metrics.queries.Add(1)
		if !res.Reachable() {
			s.metrics.unreachable.Add(1)
		}
		committed := msg.Click && res.Reachable()
		if committed {
			s.walker.Follow(res.Path.Waypoints())
		}
		var debug []navigation.TaggedSegment
		if s.debug {
			debug = s.nav.Debug(res.Path)
		}
		s.send(newPathMessage(res, committed, debug))
	}
}

func (s *Session) writeLoop() error {
	ping := time.NewTicker(s.cfg.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-s.closeCh:
			return errSessionClosed

		case data := <-s.sendCh:
			s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}

		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.cfg.WriteTimeout)); err != nil {
				return err
			}
		}
	}
}

// tickLoop advances the walker and reports its position while it moves
func (s *Session) tickLoop() error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	dtMs := float64(s.tick) / float64(time.Millisecond)

	for {
		select {
		case <-s.closeCh:
			return errSessionClosed
		case <-ticker.C:
			if !s.walker.Moving() {
				continue
			}
			arrived := s.walker.Tick(dtMs)
			s.send(StateMessage{
				Type:     MsgState,
				Position: wirePoint(s.walker.Position()),
				Moving:   !arrived,
				Arrived:  arrived,
			})
		}
	}
}
