package fpv

import (
	"image/color"
	"math"
)

// Burst selects the spawn distribution and palette for a group of particles.
type Burst int

const (
	BurstThrust Burst = iota
	BurstPickup
	BurstShield
	BurstExplosion
)

type burstStyle struct {
	cone     bool    // Narrow cone around heading instead of a full circle
	heading  float64 // Cone center, radians (screen coordinates, y down)
	spread   float64 // Cone half-width, radians
	minSpeed float64
	maxSpeed float64
	minDecay float64
	maxDecay float64
	minSize  float64
	maxSize  float64
	colors   []color.NRGBA
}

var burstStyles = map[Burst]burstStyle{
	// Up and slightly back from the rear of the drone
	BurstThrust: {
		cone:     true,
		heading:  -math.Pi/2 - 0.5,
		spread:   0.35,
		minSpeed: 1, maxSpeed: 3,
		minDecay: 0.04, maxDecay: 0.08,
		minSize: 2, maxSize: 4,
		colors: []color.NRGBA{
			{R: 255, G: 200, B: 80, A: 255},
			{R: 255, G: 140, B: 40, A: 255},
		},
	},
	BurstPickup: {
		minSpeed: 1, maxSpeed: 3,
		minDecay: 0.03, maxDecay: 0.05,
		minSize: 2, maxSize: 3,
		colors: []color.NRGBA{
			{R: 120, G: 255, B: 140, A: 255},
			{R: 250, G: 250, B: 120, A: 255},
		},
	},
	BurstShield: {
		minSpeed: 2, maxSpeed: 5,
		minDecay: 0.02, maxDecay: 0.04,
		minSize: 2, maxSize: 4,
		colors: []color.NRGBA{
			{R: 80, G: 220, B: 255, A: 255},
			{R: 200, G: 250, B: 255, A: 255},
		},
	},
	BurstExplosion: {
		minSpeed: 1, maxSpeed: 7,
		minDecay: 0.01, maxDecay: 0.03,
		minSize: 3, maxSize: 7,
		colors: []color.NRGBA{
			{R: 255, G: 80, B: 40, A: 255},
			{R: 255, G: 170, B: 40, A: 255},
			{R: 255, G: 240, B: 200, A: 255},
		},
	},
}

// ParticleSystem owns the live sparks. It has no effect on gameplay.
type ParticleSystem struct {
	particles []Particle
	max       int
	rng       *RNG
}

// NewParticleSystem creates a system holding at most max particles.
func NewParticleSystem(max int, rng *RNG) *ParticleSystem {
	return &ParticleSystem{
		particles: make([]Particle, 0, max),
		max:       max,
		rng:       rng,
	}
}

// Emit spawns n particles of the given burst at (x, y), all at full life.
// When the cap is exceeded the oldest particles are dropped first.
func (ps *ParticleSystem) Emit(b Burst, x, y float64, n int) {
	st, ok := burstStyles[b]
	if !ok || n <= 0 {
		return
	}

	for i := 0; i < n; i++ {
		angle := ps.rng.Angle()
		if st.cone {
			angle = st.heading + ps.rng.Range(-st.spread, st.spread)
		}
		speed := ps.rng.Range(st.minSpeed, st.maxSpeed)
		ps.particles = append(ps.particles, Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  1,
			Decay: ps.rng.Range(st.minDecay, st.maxDecay),
			Color: st.colors[ps.rng.Intn(len(st.colors))],
			Size:  ps.rng.Range(st.minSize, st.maxSize),
		})
	}

	if over := len(ps.particles) - ps.max; over > 0 {
		n := copy(ps.particles, ps.particles[over:])
		ps.particles = ps.particles[:n]
	}
}

// Update ages every particle by one frame and retires the dead ones.
func (ps *ParticleSystem) Update() {
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.Life -= p.Decay
		p.X += p.VX
		p.Y += p.VY
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	ps.particles = alive
}

// Clear removes every particle.
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}

// Particles returns the live particles. The slice is only valid until the next call.
func (ps *ParticleSystem) Particles() []Particle {
	return ps.particles
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Opacity maps remaining life to a color alpha.
func Opacity(p Particle) uint8 {
	life := math.Max(0, math.Min(1, p.Life))
	return uint8(math.Round(life * 255))
}
