// Package web serves the game to browsers: a static page plus a websocket
// per player streaming recorded frames.
package web

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tomz197/skyshooter/internal/loop"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/loop/server"
	"github.com/tomz197/skyshooter/internal/score"
)

//go:embed index.html
var indexHTML []byte

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second // Must be less than pongWait

	maxMessageSize = 1024
	sendBuffer     = 8
)

// Options configures the web server.
type Options struct {
	Hub    *server.Hub
	Tuning config.Tuning
	// Store returns the high score store for a player, nil for in-memory.
	Store  func(username string) score.Store
	Logger *log.Logger
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	hub      *server.Hub
	tuning   config.Tuning
	store    func(username string) score.Store
	log      *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a new server instance.
func NewServer(opts Options) *Server {
	hub := opts.Hub
	if hub == nil {
		hub = server.NewHub(10)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		hub:    hub,
		tuning: opts.Tuning,
		store:  opts.Store,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Handler returns the routes: the game page at / and the socket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleWebSocket upgrades the request and runs a game for it until either
// side hangs up.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade failed", "err", err)
		return
	}

	id := uuid.New()
	username := r.URL.Query().Get("name")
	if username == "" {
		username = "web-" + id.String()[:8]
	}

	var store score.Store
	var scores *score.AsyncStore
	if s.store != nil {
		scores = score.NewAsyncStore(s.store(username), s.log)
		store = scores
	}

	c := newConn(id, ws, s.hub.RegisterClient(username), s.log.With("session", id.String(), "user", username))
	c.session = loop.NewSession(loop.Options{
		Tuning: s.tuning,
		Store:  store,
		HUD:    connHUD{c: c, hub: s.hub},
		Logger: c.log,
	})
	c.log.Info("Browser connected")

	go c.writePump()
	go c.run()
	c.readPump()

	s.hub.UnregisterClient(c.handle.ID)
	if scores != nil {
		scores.Close()
	}
	c.log.Info("Browser disconnected")
}

// connHUD forwards finished games to the leaderboard.
type connHUD struct {
	c   *conn
	hub *server.Hub
}

func (h connHUD) Stats(loop.Stats) {}

func (h connHUD) GameOver(finalScore int) {
	h.hub.ReportScore(h.c.handle.ID, finalScore)
}
