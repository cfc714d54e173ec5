package fpv

import (
	"math"
	"math/rand"
	"time"
)

// RNG wraps a seeded source with the draws the simulator needs.
// The game keeps two: one for spawning and one for cosmetic jitter,
// so particle effects never shift where gates appear.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic generator for the given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform value in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// Range returns a uniform value in [lo, hi).
func (g *RNG) Range(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}

// Angle returns a uniform direction in [0, 2π).
func (g *RNG) Angle() float64 {
	return g.r.Float64() * 2 * math.Pi
}

// Intn returns a uniform int in [0, n).
func (g *RNG) Intn(n int) int {
	return g.r.Intn(n)
}

// Clock supplies wall time for cosmetic animation only (blink, shield pulse).
// The simulation itself advances on the frame counter.
type Clock func() time.Time
