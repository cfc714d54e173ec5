// Package config provides YAML-based game configuration loading, validation
// and difficulty management for the simulator.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// FPVConfig contains all configuration for the FPV simulator.
type FPVConfig struct {
	Surface      FPVSurface       `yaml:"surface"`
	Physics      FPVPhysics       `yaml:"physics"`
	Player       FPVPlayer        `yaml:"player"`
	Obstacles    FPVObstacles     `yaml:"obstacles"`
	Collectibles FPVCollectibles  `yaml:"collectibles"`
	Particles    FPVParticles     `yaml:"particles"`
	Difficulty   DifficultyConfig `yaml:"difficulty"`
}

// FPVSurface is the logical resolution of the drawing surface.
type FPVSurface struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FPVPhysics defines the per-frame integration constants.
type FPVPhysics struct {
	Gravity       float64 `yaml:"gravity"`        // Added to velocity every frame
	Thrust        float64 `yaml:"thrust"`         // Velocity set by a thrust input (negative = up)
	TiltFactor    float64 `yaml:"tilt_factor"`    // Radians of target tilt per unit of velocity
	TiltLimit     float64 `yaml:"tilt_limit"`     // Max absolute tilt in radians
	TiltSmoothing float64 `yaml:"tilt_smoothing"` // Fraction of the remaining tilt closed per frame
}

// FPVPlayer defines the craft's spawn point and size.
type FPVPlayer struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	HitboxMargin float64 `yaml:"hitbox_margin"` // Shrink applied on every side before collision tests
}

// FPVObstacles defines gate geometry and spawn cadence.
type FPVObstacles struct {
	GapSize       float64 `yaml:"gap_size"`
	MinHeight     float64 `yaml:"min_height"`     // Minimum wall height above and below the gap
	PoleWidth     float64 `yaml:"pole_width"`
	SpawnInterval int     `yaml:"spawn_interval"` // Frames between gates at base speed
}

// FPVCollectibles defines pickup probabilities and rewards.
type FPVCollectibles struct {
	Size          float64 `yaml:"size"`
	BatteryChance float64 `yaml:"battery_chance"`
	ShieldChance  float64 `yaml:"shield_chance"`
	BatteryPoints int     `yaml:"battery_points"`
}

// FPVParticles bounds the visual effects layer.
type FPVParticles struct {
	Max          int `yaml:"max"`
	ThrustCount  int `yaml:"thrust_count"`
	PickupCount  int `yaml:"pickup_count"`
	ShieldCount  int `yaml:"shield_count"`
	ExplodeCount int `yaml:"explode_count"`
}

// DifficultyConfig defines the score-driven speed ratchet.
type DifficultyConfig struct {
	Enabled        bool    `yaml:"enabled"`
	BaseSpeed      float64 `yaml:"base_speed"`      // Scroll speed at score 0
	ScoreStep      int     `yaml:"score_step"`      // Points per ratchet step
	SpeedIncrement float64 `yaml:"speed_increment"` // Speed added per step
	MaxSpeed       float64 `yaml:"max_speed"`       // 0 = unbounded
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Empty means keep the config.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// Validate rejects configurations the simulation cannot run with.
// It is called once at game construction; spawn code relies on it.
func (c FPVConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Surface.Width > 0 && c.Surface.Height > 0, "surface must have positive size, got %vx%v", c.Surface.Width, c.Surface.Height)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player must have positive size")
	check(c.Player.Y >= 0 && c.Player.Y <= c.Surface.Height-c.Player.Height, "player start y %v is outside the play field", c.Player.Y)
	check(c.Player.HitboxMargin >= 0, "hitbox margin must not be negative")
	check(c.Obstacles.GapSize > 0, "gap size must be positive")
	check(c.Obstacles.MinHeight >= 0, "min wall height must not be negative")
	check(c.Obstacles.GapSize+2*c.Obstacles.MinHeight <= c.Surface.Height,
		"gap %v with min wall %v leaves no room on a %v tall surface",
		c.Obstacles.GapSize, c.Obstacles.MinHeight, c.Surface.Height)
	check(c.Obstacles.PoleWidth > 0, "pole width must be positive")
	check(c.Obstacles.SpawnInterval > 0, "spawn interval must be positive")
	check(c.Collectibles.BatteryChance >= 0 && c.Collectibles.ShieldChance >= 0, "collectible chances must not be negative")
	check(c.Collectibles.BatteryChance+c.Collectibles.ShieldChance < 0.5,
		"collectible chances %v+%v must leave a majority of spawns empty",
		c.Collectibles.BatteryChance, c.Collectibles.ShieldChance)
	check(c.Difficulty.BaseSpeed > 0, "base speed must be positive")
	check(c.Difficulty.ScoreStep > 0, "score step must be positive")
	check(c.Difficulty.SpeedIncrement >= 0, "speed increment must not be negative")
	check(c.Difficulty.MaxSpeed == 0 || c.Difficulty.MaxSpeed >= c.Difficulty.BaseSpeed,
		"max speed %v is below base speed %v", c.Difficulty.MaxSpeed, c.Difficulty.BaseSpeed)
	check(c.Particles.Max > 0, "particle cap must be positive")

	return errors.Join(errs...)
}
