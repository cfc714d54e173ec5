package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dronehub/fpv-mini/internal/games/fpv"
	"github.com/dronehub/fpv-mini/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the browser host",
	Long: `Serve the game to browsers. Every page load gets its own game run on
the server; frames stream over a websocket and taps stream back.

Endpoints:
  /             - the game page (?pilot=name sets the leaderboard name)
  /ws           - websocket frame stream
  /api/scores   - top scores as JSON (?limit=n)
  /healthz      - liveness check

Examples:
  fpv web
  fpv web --addr :9000 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	if err := checkGame(); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	// Sessions are silent: sound belongs to the browser, not the server
	factory := func() (*fpv.Game, error) {
		return newGame()
	}

	server := web.NewServer(cfg, factory, store, logger.WithPrefix("fpv-web"))
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
