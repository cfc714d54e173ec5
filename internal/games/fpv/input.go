package fpv

import (
	"github.com/dronehub/fpv-mini/internal/audio"
	"github.com/dronehub/fpv-mini/internal/core"
)

// Activate is the single tap/key action. While playing it thrusts;
// otherwise it starts a new run.
func (g *Game) Activate() {
	if g.phase != PhasePlaying {
		g.Start()
		return
	}
	if g.paused {
		return
	}

	Thrust(&g.player, g.cfg.Physics.Thrust)
	g.particles.Emit(BurstThrust, g.player.X, g.player.Y+g.player.Height/2, g.cfg.Particles.ThrustCount)
	g.audio.Play(audio.CueThrust)
}

// TogglePause freezes or resumes a run. The pending frame is cancelled
// while paused and requested again on resume.
func (g *Game) TogglePause() {
	if g.phase != PhasePlaying {
		return
	}
	g.paused = !g.paused
	if g.paused {
		g.cancelFrame()
	} else {
		g.requestFrame()
	}
	g.changed()
}

// HandleInput applies one refresh worth of platform actions.
func (g *Game) HandleInput(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		g.Start()
		return
	}
	if in.Has(core.ActionPause) {
		g.TogglePause()
	}
	if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
		g.Activate()
	}
}
