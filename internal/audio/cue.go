// Package audio provides the sound-cue port used by the simulator and
// a beep-backed synthesiser that renders each cue as a short tone.
package audio

// Cue identifies a notable game event that has a sound.
type Cue int

const (
	CueThrust Cue = iota
	CueScore
	CueShield
	CueCrash
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueThrust:
		return "thrust"
	case CueScore:
		return "score"
	case CueShield:
		return "shield"
	case CueCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// Player receives cues from the game. Play must return immediately and
// must never feed back into the simulation.
type Player interface {
	Play(c Cue)
}

// Silent discards every cue. Used by tests, SSH sessions and --mute.
type Silent struct{}

// Play implements Player.
func (Silent) Play(Cue) {}

// Func adapts an ordinary function to the Player interface.
type Func func(Cue)

// Play implements Player.
func (f Func) Play(c Cue) { f(c) }
