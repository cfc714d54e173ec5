package fpv

import "github.com/dronehub/fpv-mini/internal/audio"

// collideGates tests the hitbox against every gate wall and awards passes.
// It returns true when the run crashed.
//
// A shielded hit consumes the shield and skips the remaining wall tests
// for this frame. The drone is not moved out of the wall, so if it is
// still inside one next frame that is an unshielded hit.
func (g *Game) collideGates() bool {
	obs := g.cfg.Obstacles
	hit := g.player.Hitbox(g.cfg.Player.HitboxMargin)

	for _, gt := range g.gates {
		top := gt.TopRect(obs.PoleWidth)
		bottom := gt.BottomRect(obs.PoleWidth, obs.GapSize, g.cfg.Surface.Height)
		if !hit.Intersects(top) && !hit.Intersects(bottom) {
			continue
		}
		if !g.shield {
			g.crash()
			return true
		}
		g.shield = false
		cx, cy := g.player.Center()
		g.particles.Emit(BurstShield, cx, cy, g.cfg.Particles.ShieldCount)
		g.audio.Play(audio.CueShield)
		break
	}

	right := g.player.X + g.player.Width
	for i := range g.gates {
		gt := &g.gates[i]
		if !gt.Passed && gt.X+obs.PoleWidth < right {
			gt.Passed = true
			g.score++
			g.audio.Play(audio.CueScore)
		}
	}
	return false
}

// collideCollectibles picks up anything the drone's sprite overlaps.
func (g *Game) collideCollectibles() {
	size := g.cfg.Collectibles.Size
	body := g.player.Rect()

	for i := range g.collectibles {
		c := &g.collectibles[i]
		if c.Collected || !body.Intersects(c.Rect(size)) {
			continue
		}
		c.Collected = true
		switch c.Kind {
		case KindBattery:
			g.score += g.cfg.Collectibles.BatteryPoints
			g.audio.Play(audio.CueScore)
		case KindShield:
			g.shield = true
			g.audio.Play(audio.CueShield)
		}
		g.particles.Emit(BurstPickup, c.X, c.Y, g.cfg.Particles.PickupCount)
	}
}
