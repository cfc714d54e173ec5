package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dronehub/fpv-mini/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults [game]",
	Short: "Print the built-in game config",
	Long: `Print the embedded default config as YAML, ready to edit and pass
back with --config or to save as ~/.fpv/configs/fpv.yaml.

Examples:
  fpv defaults > my-fpv.yaml
  fpv play --config my-fpv.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDefaults,
}

func runDefaults(_ *cobra.Command, args []string) error {
	gameID := "fpv"
	if len(args) == 1 {
		gameID = args[0]
	}

	data := config.GetDefaultYAML(gameID)
	if data == nil {
		return fmt.Errorf("no built-in config for %q", gameID)
	}
	_, err := os.Stdout.Write(data)
	return err
}
