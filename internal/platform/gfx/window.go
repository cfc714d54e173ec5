// Package gfx hosts the simulator in a desktop window through Ebitengine.
// Ebitengine drives the refresh loop: every Update is one display refresh
// and every Draw paints the game onto the window at the logical surface size.
package gfx

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dronehub/fpv-mini/internal/core"
	"github.com/dronehub/fpv-mini/internal/registry"
	"github.com/dronehub/fpv-mini/internal/storage"
)

// Game is what the window needs from a hosted game.
type Game interface {
	registry.Game
	registry.Drawer
}

// Config configures a window.
type Config struct {
	Title    string
	Width    int // logical surface size
	Height   int
	Scale    float64 // window size as a multiple of the surface
	TickRate int
	Seed     int64 // 0 seeds from the clock
	Player   string
}

// Window runs one game in a desktop window.
type Window struct {
	game   Game
	store  *storage.Store
	logger *log.Logger
	cfg    Config
	canvas *Canvas

	state      core.GameState
	scoreSaved bool
	quitting   bool
}

// NewWindow creates a window host. store may be nil.
func NewWindow(game Game, store *storage.Store, cfg Config, logger *log.Logger) *Window {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	game.Reset(core.RuntimeConfig{
		ScreenW:  cfg.Width,
		ScreenH:  cfg.Height,
		TickRate: cfg.TickRate,
		Seed:     cfg.Seed,
	})

	return &Window{
		game:   game,
		store:  store,
		logger: logger,
		cfg:    cfg,
		canvas: NewCanvas(float64(cfg.Width), float64(cfg.Height)),
	}
}

// Update is one display refresh.
func (w *Window) Update() error {
	in := pollInput()
	if in.Has(core.ActionQuit) {
		w.quitting = true
		return ebiten.Termination
	}
	w.step(in)
	return nil
}

// step feeds one refresh of input to the game and saves the score once
// per finished run.
func (w *Window) step(in core.InputFrame) {
	w.state = w.game.Step(in).State

	if w.state.GameOver && !w.scoreSaved {
		if w.store != nil && w.state.Score > 0 {
			if _, err := w.store.SaveScore(w.game.ID(), w.cfg.Player, w.state.Score); err != nil {
				w.logger.Warn("could not save score", "error", err)
			}
		}
		w.scoreSaved = true
	}
	if !w.state.GameOver {
		w.scoreSaved = false
	}
}

// Draw paints the current game state.
func (w *Window) Draw(screen *ebiten.Image) {
	w.canvas.Target(screen)
	w.game.Draw(w.canvas)
}

// Layout keeps the logical surface size regardless of the window size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.cfg.Width, w.cfg.Height
}

// State returns the game state as of the last refresh.
func (w *Window) State() core.GameState {
	return w.state
}

// Run opens the window and blocks until it is closed.
func Run(game Game, store *storage.Store, cfg Config, logger *log.Logger) error {
	w := NewWindow(game, store, cfg, logger)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(int(float64(w.cfg.Width)*w.cfg.Scale), int(float64(w.cfg.Height)*w.cfg.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.cfg.TickRate)

	w.logger.Info("opening window", "game", game.ID(), "size", fmt.Sprintf("%dx%d", w.cfg.Width, w.cfg.Height))
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("gfx: %w", err)
	}
	return nil
}
