package fpv

import "github.com/dronehub/fpv-mini/internal/core"

// Integrate advances the player one frame. Velocity changes before position.
func Integrate(p *Player, gravity float64) {
	p.Velocity += gravity
	p.Y += p.Velocity
}

// Thrust overwrites vertical velocity with the impulse, so repeated taps never compound.
func Thrust(p *Player, impulse float64) {
	p.Velocity = impulse
}

// Tilt eases the visual rotation toward an angle proportional to velocity.
func Tilt(p *Player, factor, limit, smoothing float64) {
	target := core.ClampF(p.Velocity*factor, -limit, limit)
	p.Rotation += (target - p.Rotation) * smoothing
}

// OutOfBounds reports whether the player has left the vertical play field.
// Leaving it is a crash, never a clamp.
func OutOfBounds(p Player, surfaceH float64) bool {
	return p.Y < 0 || p.Y > surfaceH-p.Height
}
