// fpv is FPV Simulator Mini: fly a drone through gates in your terminal,
// a desktop window, over SSH or in a browser.
//
// Usage:
//
//	fpv play                - Fly in this terminal
//	fpv window              - Fly in a desktop window
//	fpv serve               - Start SSH server for remote play
//	fpv web                 - Start the browser host
//	fpv scores              - Show the leaderboard
//	fpv list                - List registered games
//	fpv defaults            - Print the built-in config
//
// Global flags:
//
//	--fps <rate>          - Display refresh rate (default: 60)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Scores database (default: ~/.fpv/scores.db)
//	--config <path>       - Game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--mute                - Disable sound
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dronehub/fpv-mini/internal/audio"
	"github.com/dronehub/fpv-mini/internal/config"
	"github.com/dronehub/fpv-mini/internal/games/fpv"
	"github.com/dronehub/fpv-mini/internal/storage"
)

const soundVolume = 0.3

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagMute       bool
	flagPilot      string

	logger *log.Logger
)

// envFlags lets FPV_* variables (from the environment or .env) stand in
// for flags that were not given on the command line.
var envFlags = map[string]string{
	"db":         "FPV_DB",
	"config":     "FPV_CONFIG",
	"difficulty": "FPV_DIFFICULTY",
	"pilot":      "FPV_PILOT",
	"ssh":        "FPV_SSH_ADDR",
	"addr":       "FPV_WEB_ADDR",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fpv",
	Short: "FPV Simulator Mini - fly a drone through gates",
	Long: `FPV Simulator Mini is a one-button side-scroller: tap to thrust,
thread the gates, grab batteries for points and shields to survive a hit.

Available commands:
  play     - Fly in this terminal
  window   - Fly in a desktop window
  serve    - Start SSH server for remote play
  web      - Start the browser host
  scores   - View the leaderboard
  list     - Show registered games

Examples:
  fpv play
  fpv play --difficulty hard
  fpv window --scale 1.5
  fpv serve --ssh :2222
  fpv web --addr :8080
  fpv scores --table`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display refresh rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fpv/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.PersistentFlags().StringVar(&flagPilot, "pilot", defaultPilot(), "Name recorded on the leaderboard")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// setup runs before every command: env defaults, logger, game config.
func setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is normal
	_ = godotenv.Load()

	if err := applyEnv(cmd); err != nil {
		return err
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fpv",
		Level:           level,
	})

	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	// Games created through the registry (SSH sessions) see the same config
	fpv.SetConfigPath(flagConfig)
	fpv.SetDifficultyPreset(flagDifficulty)
	return nil
}

// applyEnv fills flags the user did not set from FPV_* variables.
func applyEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for name, env := range envFlags {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if v, ok := os.LookupEnv(env); ok && v != "" {
			if err := f.Value.Set(v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}

	if !flags.Changed("mute") {
		switch strings.ToLower(os.Getenv("FPV_AUDIO")) {
		case "off", "0", "false", "no":
			flagMute = true
		}
	}
	return nil
}

// defaultPilot is the OS user name, or anonymous.
func defaultPilot() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return storage.AnonymousPlayer
}

// newGame creates the simulator from --config and --difficulty.
func newGame(opts ...fpv.Option) (*fpv.Game, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	return fpv.Load(flagConfig, preset, opts...)
}

// checkGame builds and discards one game so servers fail on a bad config
// before they accept connections.
func checkGame() error {
	g, err := newGame()
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	g.Close()
	return nil
}

// openSound opens the speaker unless muted. The returned func releases it.
func openSound() (audio.Player, func()) {
	return audio.Open(!flagMute, soundVolume, logger)
}

// openStore opens the leaderboard, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, playing without a leaderboard", "error", err)
		return nil
	}
	return store
}
