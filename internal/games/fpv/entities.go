package fpv

import (
	"image/color"

	"github.com/dronehub/fpv-mini/internal/core"
)

// Phase is the run state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player is the drone. X/Y is the top-left corner of its sprite.
type Player struct {
	X, Y     float64
	Velocity float64 // Vertical, positive = down
	Rotation float64 // Visual tilt in radians
	Width    float64
	Height   float64
}

// Rect returns the drawn bounds.
func (p Player) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.Width, p.Height)
}

// Hitbox returns the collision rect, shrunk by margin on every side.
func (p Player) Hitbox(margin float64) core.RectF {
	return p.Rect().Inset(margin)
}

// Center returns the middle of the sprite.
func (p Player) Center() (float64, float64) {
	return p.Rect().Center()
}

// Gate is a top/bottom wall pair with a gap between them.
type Gate struct {
	X         float64 // Left edge of the pole
	TopHeight float64 // Top wall spans [0, TopHeight]; bottom starts at TopHeight+gap
	Passed    bool
}

// TopRect returns the upper wall.
func (g Gate) TopRect(poleWidth float64) core.RectF {
	return core.NewRectF(g.X, 0, poleWidth, g.TopHeight)
}

// BottomRect returns the lower wall.
func (g Gate) BottomRect(poleWidth, gapSize, surfaceH float64) core.RectF {
	top := g.TopHeight + gapSize
	return core.NewRectF(g.X, top, poleWidth, surfaceH-top)
}

// Kind tags a collectible.
type Kind int

const (
	KindBattery Kind = iota
	KindShield
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBattery:
		return "battery"
	case KindShield:
		return "shield"
	default:
		return "unknown"
	}
}

// Collectible is a pickup. X/Y is its center.
type Collectible struct {
	X, Y      float64
	Kind      Kind
	Collected bool
}

// Rect returns the pickup bounds for the given size.
func (c Collectible) Rect(size float64) core.RectF {
	return core.NewRectF(c.X-size/2, c.Y-size/2, size, size)
}

// Particle is a purely visual spark. Life runs from 1 down to 0.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Decay  float64
	Color  color.NRGBA
	Size   float64
}
