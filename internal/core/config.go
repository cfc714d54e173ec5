package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Display refreshes per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int     // Current score
	HighScore int     // Best score this process
	Playing   bool    // Whether a run is in progress
	GameOver  bool    // Whether the last run has ended
	Paused    bool    // Whether the game is paused
	Shield    bool    // Whether a shield is active
	Speed     float64 // Current scroll speed
}

// StepResult is returned by Game.Step() after each display refresh.
type StepResult struct {
	State GameState
}
