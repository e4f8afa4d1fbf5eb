package network

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/walkbox/config"
	"github.com/lixenwraith/walkbox/navigation"
	"github.com/lixenwraith/walkbox/observability"
	"github.com/lixenwraith/walkbox/physics"
	"github.com/lixenwraith/walkbox/scene"
)

// Server exposes one scene to websocket clients, one agent per connection
type Server struct {
	cfg    config.ServerConfig
	navCfg config.NavigationConfig
	scene  scene.Scene
	wb     *navigation.WalkBox

	upgrader websocket.Upgrader
	metrics  *serverMetrics

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	closed   bool
	wg       sync.WaitGroup
}

// NewServer creates a server for a built scene; wb is shared read-only across sessions
func NewServer(cfg *config.Config, sc scene.Scene, wb *navigation.WalkBox) *Server {
	return &Server{
		cfg:    cfg.Server,
		navCfg: cfg.Navigation,
		scene:  sc,
		wb:     wb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[uuid.UUID]*Session),
		metrics:  newServerMetrics(),
	}
}

// Handler routes /ws and /healthz
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Run listens on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts on ln until ctx is cancelled, then drains sessions
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log := observability.GetLogger()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", zap.String("address", ln.Addr().String()), zap.String("scene", s.scene.Name))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.Close()
		log.Info("Server stopped")
		return err
	})
	return g.Wait()
}

// Close disconnects every session and waits for their handlers to return
// Connections arriving afterwards are refused
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Metrics returns a point-in-time copy of the server counters
func (s *Server) Metrics() map[string]float64 {
	return s.metrics.registry.Snapshot()
}

// SessionCount returns current connected session count
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	log := observability.GetLogger()
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	sess := newSession(conn, navigation.NewNavigator(s.wb),
		physics.NewWalker(s.scene.Spawn, s.navCfg.AgentSpeed), s.cfg, s.navCfg, s.metrics, log)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.sessions[sess.ID] = sess
	s.wg.Add(1)
	s.mu.Unlock()
	s.metrics.sessionsTotal.Add(1)
	s.metrics.sessionsActive.Add(1)
	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
		s.metrics.sessionsActive.Add(-1)
		s.wg.Done()
	}()

	sess.log.Info("Session opened", zap.String("remote", r.RemoteAddr))
	sess.send(HelloMessage{
		Type:     MsgHello,
		Session:  sess.ID.String(),
		Scene:    s.scene.Name,
		Position: wirePoint(s.scene.Spawn),
		Boundary: wireSegments(s.wb.BoundaryEdges()),
	})

	if err := sess.run(); err != nil {
		sess.log.Warn("Session ended with error", zap.Error(err))
		return
	}
	sess.log.Info("Session closed")
}

type healthResponse struct {
	Status   string             `json:"status"`
	Scene    string             `json:"scene"`
	Sessions int                `json:"sessions"`
	Metrics  map[string]float64 `json:"metrics"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthResponse{
		Status:   "ok",
		Scene:    s.scene.Name,
		Sessions: s.SessionCount(),
		Metrics:  s.metrics.registry.Snapshot(),
	})
}
