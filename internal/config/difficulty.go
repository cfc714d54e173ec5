package config

import "math"

// DifficultyManager derives scroll speed and spawn cadence from the score.
// Speed only ever rises within a run because score never decreases.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether the ratchet is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.SpeedIncrement > 0
}

// BaseSpeed returns the speed at the start of a run.
func (d *DifficultyManager) BaseSpeed() float64 {
	return d.cfg.BaseSpeed
}

// Level returns the number of completed ratchet steps for a score.
func (d *DifficultyManager) Level(score int) int {
	if !d.IsEnabled() || score <= 0 || d.cfg.ScoreStep <= 0 {
		return 0
	}
	return score / d.cfg.ScoreStep
}

// Speed returns the scroll speed for a score: base + floor(score/step) * increment.
func (d *DifficultyManager) Speed(score int) float64 {
	speed := d.cfg.BaseSpeed + float64(d.Level(score))*d.cfg.SpeedIncrement
	if d.cfg.MaxSpeed > 0 {
		speed = math.Min(speed, d.cfg.MaxSpeed)
	}
	return speed
}

// SpawnInterval scales a base interval by how much faster than base the world scrolls,
// so gates keep roughly the same spacing in surface units.
func (d *DifficultyManager) SpawnInterval(baseInterval float64, score int) float64 {
	speed := d.Speed(score)
	if speed <= 0 || d.cfg.BaseSpeed <= 0 {
		return baseInterval
	}
	return baseInterval / (speed / d.cfg.BaseSpeed)
}
