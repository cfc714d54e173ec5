// Package web hosts the simulator in a browser. Each websocket connection
// gets its own game stepped on the server; every refresh is sent to the
// page as a display list that a small script replays onto an HTML canvas.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dronehub/fpv-mini/internal/core"
	"github.com/dronehub/fpv-mini/internal/games/fpv"
	"github.com/dronehub/fpv-mini/internal/storage"
)

//go:embed static/index.html
var indexHTML []byte

const maxPilotName = 16

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the refresh rate of each session.
	TickRate int

	// Seed seeds every session's game. 0 seeds each session from the clock.
	Seed int64
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: 60,
	}
}

// GameFactory creates the game for a new session.
type GameFactory func() (*fpv.Game, error)

// Server serves the page, the websocket endpoint and the leaderboard.
type Server struct {
	config   Config
	newGame  GameFactory
	store    *storage.Store
	logger   *log.Logger
	router   chi.Router
	upgrader websocket.Upgrader
}

// NewServer creates a server. store may be nil.
func NewServer(cfg Config, newGame GameFactory, store *storage.Store, logger *log.Logger) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		config:  cfg,
		newGame: newGame,
		store:   store,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
		},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/api/scores", s.handleScores)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

// ServeHTTP lets the server be mounted or tested directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// loggingMiddleware logs each request with its status and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// handleScores returns the top scores as JSON. ?limit= caps the list.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	type row struct {
		Player string    `json:"player"`
		Score  int       `json:"score"`
		At     time.Time `json:"at"`
	}
	rows := []row{}

	if s.store != nil {
		scores, err := s.store.TopScores(gameID, limit)
		if err != nil {
			s.logger.Error("could not load scores", "error", err)
			http.Error(w, "scores unavailable", http.StatusInternalServerError)
			return
		}
		for _, sc := range scores {
			rows = append(rows, row{Player: sc.Player, Score: sc.Score, At: sc.CreatedAt})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

// gameID is the leaderboard the web host reads and writes.
const gameID = "fpv"

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	game, err := s.newGame()
	if err != nil {
		s.logger.Error("cannot create game", "error", err)
		http.Error(w, "game unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		game.Close()
		s.logger.Warn("upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	surface := game.Config().Surface
	game.Reset(core.RuntimeConfig{
		ScreenW:  int(surface.Width),
		ScreenH:  int(surface.Height),
		TickRate: s.config.TickRate,
		Seed:     seed,
	})

	sess := NewSession(uuid.NewString(), PilotName(r.URL.Query().Get("pilot")), game, s.store, s.config.TickRate, s.logger)
	sess.logger.Info("session started", "remote", r.RemoteAddr)
	start := time.Now()

	if err := sess.serve(r.Context(), conn); err != nil {
		sess.logger.Warn("session failed", "error", err)
	}
	sess.logger.Info("session ended",
		"duration", time.Since(start).Round(time.Second),
		"dropped_frames", sess.Dropped(),
	)
}

// PilotName cleans a user-supplied name for the leaderboard.
func PilotName(raw string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return -1
	}, raw)
	if runes := []rune(name); len(runes) > maxPilotName {
		name = string(runes[:maxPilotName])
	}
	if name == "" {
		return storage.AnonymousPlayer
	}
	return name
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("web: %w", err)
	case <-done:
	}

	s.logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
