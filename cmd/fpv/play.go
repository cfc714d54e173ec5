package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dronehub/fpv-mini/internal/core"
	"github.com/dronehub/fpv-mini/internal/games/fpv"
	"github.com/dronehub/fpv-mini/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly in this terminal",
	Long: `Fly the drone in this terminal. The 800x500 play field is scaled to
the terminal size.

Controls:
  Space/Up/W/click - Thrust (also launches a new run)
  Enter            - Launch
  P                - Pause
  R                - Restart
  Esc              - Pause, or leave when not flying
  Ctrl+S           - Screenshot to ~/.fpv/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Wider gates, gentler speed-up
  normal - Default settings
  hard   - Narrower gates, faster start, steeper speed-up
  fixed  - Speed never increases

Examples:
  fpv play
  fpv play --difficulty easy
  fpv play --seed 42 --mute
  fpv play --config ./my-fpv.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	sound, closeSound := openSound()
	defer closeSound()

	game, err := newGame(fpv.WithAudio(sound))
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	defer game.Close()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, cfg, flagPilot); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
