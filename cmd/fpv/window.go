package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dronehub/fpv-mini/internal/games/fpv"
	"github.com/dronehub/fpv-mini/internal/platform/gfx"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Fly in a desktop window",
	Long: `Open a desktop window with the play field at its native 800x500
resolution, scaled by --scale. Click, tap or press space to thrust.

Examples:
  fpv window
  fpv window --scale 1.5 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size as a multiple of the play field")
}

func runWindow(_ *cobra.Command, _ []string) error {
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

	surface := game.Config().Surface
	return gfx.Run(game, store, gfx.Config{
		Title:    game.Title(),
		Width:    int(surface.Width),
		Height:   int(surface.Height),
		Scale:    flagScale,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   flagPilot,
	}, logger)
}
