package fpv

import "github.com/dronehub/fpv-mini/internal/config"

// Spawner emits gates on a frame clock whose interval shrinks with speed.
type Spawner struct {
	cfg        *config.FPVConfig
	difficulty *config.DifficultyManager
	rng        *RNG
	elapsed    float64 // Frames since the last spawn
}

// NewSpawner creates a spawner. The config must already be validated.
func NewSpawner(cfg *config.FPVConfig, diff *config.DifficultyManager, rng *RNG) *Spawner {
	return &Spawner{
		cfg:        cfg,
		difficulty: diff,
		rng:        rng,
	}
}

// Reset restarts the spawn clock.
func (s *Spawner) Reset() {
	s.elapsed = 0
}

// Interval returns the current effective interval in frames.
func (s *Spawner) Interval(score int) float64 {
	return s.difficulty.SpawnInterval(float64(s.cfg.Obstacles.SpawnInterval), score)
}

// Tick advances the clock by one frame and spawns when it exceeds the interval.
// The returned collectible is nil when the roll lands in the empty band.
func (s *Spawner) Tick(score int) (Gate, *Collectible, bool) {
	s.elapsed++
	if s.elapsed <= s.Interval(score) {
		return Gate{}, nil, false
	}
	s.elapsed = 0

	gate := s.spawnGate()
	return gate, s.spawnCollectible(gate), true
}

// spawnGate places a gate at the right edge with a uniform top height
// that keeps the whole gap on screen.
func (s *Spawner) spawnGate() Gate {
	obs := s.cfg.Obstacles
	lo := obs.MinHeight
	hi := s.cfg.Surface.Height - obs.GapSize - obs.MinHeight
	return Gate{
		X:         s.cfg.Surface.Width,
		TopHeight: s.rng.Range(lo, hi),
	}
}

// spawnCollectible rolls once: shield band, then battery band, else nothing.
// A pickup sits in the middle of its gate's gap.
func (s *Spawner) spawnCollectible(g Gate) *Collectible {
	cc := s.cfg.Collectibles
	r := s.rng.Float64()

	var kind Kind
	switch {
	case r < cc.ShieldChance:
		kind = KindShield
	case r < cc.ShieldChance+cc.BatteryChance:
		kind = KindBattery
	default:
		return nil
	}

	return &Collectible{
		X:    g.X + s.cfg.Obstacles.PoleWidth/2,
		Y:    g.TopHeight + s.cfg.Obstacles.GapSize/2,
		Kind: kind,
	}
}
