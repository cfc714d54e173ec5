package fpv

import (
	"fmt"
	"image/color"
	"math"

	"github.com/dronehub/fpv-mini/internal/core"
)

// Palette
var (
	skyTop      = color.NRGBA{R: 6, G: 8, B: 22, A: 255}
	skyBottom   = color.NRGBA{R: 20, G: 24, B: 56, A: 255}
	skylineFar  = color.NRGBA{R: 28, G: 42, B: 74, A: 255}
	skylineNear = color.NRGBA{R: 58, G: 58, B: 58, A: 255}
	windowLit   = color.NRGBA{R: 245, G: 245, B: 67, A: 200}
	gateBody    = color.NRGBA{R: 13, G: 188, B: 121, A: 255}
	gateCap     = color.NRGBA{R: 35, G: 209, B: 139, A: 255}
	batteryBody = color.NRGBA{R: 229, G: 229, B: 16, A: 255}
	batteryNub  = color.NRGBA{R: 229, G: 229, B: 229, A: 255}
	shieldItem  = color.NRGBA{R: 17, G: 168, B: 205, A: 255}
	droneBody   = color.NRGBA{R: 229, G: 229, B: 229, A: 255}
	droneRotor  = color.NRGBA{R: 241, G: 76, B: 76, A: 255}
	shieldRing  = color.NRGBA{R: 41, G: 184, B: 219, A: 255}
	hudText     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	hudAccent   = color.NRGBA{R: 255, G: 135, B: 0, A: 255}
	overlayDim  = color.NRGBA{R: 0, G: 0, B: 0, A: 150}
)

const (
	skyBands    = 6
	capHeight   = 14
	capOverhang = 4
	blinkPeriod = 500 // ms
)

// Draw renders the current state onto c. It reads state only; cosmetic
// animation uses the injected clock and the frame counter.
func (g *Game) Draw(c core.Canvas) {
	w, h := g.cfg.Surface.Width, g.cfg.Surface.Height
	now := g.clock()
	blinkOn := (now.UnixMilli()/blinkPeriod)%2 == 0

	g.drawBackground(c, w, h)
	g.drawGates(c, h)
	g.drawCollectibles(c, now.UnixMilli())
	g.drawParticles(c)
	if g.phase != PhaseGameOver {
		g.drawDrone(c, now.UnixMilli())
	}
	g.drawHUD(c, w)

	switch {
	case g.phase == PhaseIdle:
		g.drawOverlay(c, w, h, "FPV SIMULATOR MINI", "TAP OR PRESS SPACE TO LAUNCH", blinkOn)
	case g.phase == PhaseGameOver:
		g.drawOverlay(c, w, h, "CRASHED", fmt.Sprintf("SCORE %d   BEST %d   TAP TO RETRY", g.score, g.highScore), blinkOn)
	case g.paused:
		g.drawOverlay(c, w, h, "PAUSED", "PRESS P TO RESUME", true)
	}
}

// drawBackground paints the sky as stacked bands and two skyline layers
// scrolling at different rates.
func (g *Game) drawBackground(c core.Canvas, w, h float64) {
	bandH := h / skyBands
	for i := 0; i < skyBands; i++ {
		t := float64(i) / float64(skyBands-1)
		c.FillRect(core.NewRectF(0, float64(i)*bandH, w, bandH+1), lerpColor(skyTop, skyBottom, t))
	}

	scroll := float64(g.frame) * g.speed
	g.drawSkyline(c, w, h, scroll*0.2, 70, 180, 11, skylineFar, false)
	g.drawSkyline(c, w, h, scroll*0.5, 90, 120, 23, skylineNear, true)
}

// drawSkyline draws a repeating row of buildings. Heights come from a
// hash of the building index, so the row is stable while it scrolls.
func (g *Game) drawSkyline(c core.Canvas, w, h, offset, bw, maxH float64, salt uint32, col color.NRGBA, windows bool) {
	first := int(math.Floor(offset / bw))
	for i := first; float64(i)*bw-offset < w; i++ {
		x := float64(i)*bw - offset
		bh := maxH * (0.35 + 0.65*hash01(uint32(i), salt))
		c.FillRect(core.NewRectF(x+2, h-bh, bw-4, bh), col)

		if !windows {
			continue
		}
		for wy := h - bh + 12; wy < h-16; wy += 24 {
			if hash01(uint32(i)*31+uint32(wy), salt) < 0.3 {
				c.FillRect(core.NewRectF(x+bw/2-6, wy, 12, 8), windowLit)
			}
		}
	}
}

func (g *Game) drawGates(c core.Canvas, h float64) {
	obs := g.cfg.Obstacles
	for _, gt := range g.gates {
		top := gt.TopRect(obs.PoleWidth)
		bottom := gt.BottomRect(obs.PoleWidth, obs.GapSize, h)
		c.FillRect(top, gateBody)
		c.FillRect(bottom, gateBody)

		capW := obs.PoleWidth + 2*capOverhang
		c.FillRect(core.NewRectF(gt.X-capOverhang, top.Bottom()-capHeight, capW, capHeight), gateCap)
		c.FillRect(core.NewRectF(gt.X-capOverhang, bottom.Y, capW, capHeight), gateCap)
	}
}

func (g *Game) drawCollectibles(c core.Canvas, ms int64) {
	size := g.cfg.Collectibles.Size
	bob := math.Sin(float64(ms)/200) * 2

	for _, it := range g.collectibles {
		if it.Collected {
			continue
		}
		r := it.Rect(size)
		r.Y += bob
		switch it.Kind {
		case KindBattery:
			c.FillRect(core.NewRectF(r.X+size*0.2, r.Y, size*0.6, size), batteryBody)
			c.FillRect(core.NewRectF(r.X+size*0.35, r.Y-3, size*0.3, 3), batteryNub)
		case KindShield:
			c.FillCircle(it.X, it.Y+bob, size/2, shieldItem)
		}
	}
}

func (g *Game) drawParticles(c core.Canvas) {
	for _, p := range g.particles.Particles() {
		col := p.Color
		col.A = Opacity(p)
		c.FillCircle(p.X, p.Y, p.Size, col)
	}
}

// drawDrone draws the body rotated by the current tilt, two rotors at
// its ends and, when shielded, a pulsing ring behind it.
func (g *Game) drawDrone(c core.Canvas, ms int64) {
	p := g.player
	cx, cy := p.Center()

	if g.shield {
		pulse := 0.5 + 0.5*math.Sin(float64(ms)/150)
		ring := shieldRing
		ring.A = uint8(60 + 80*pulse)
		c.FillCircle(cx, cy, p.Width*0.8, ring)
	}

	sin, cos := math.Sincos(p.Rotation)
	rotate := func(dx, dy float64) core.PointF {
		return core.PointF{X: cx + dx*cos - dy*sin, Y: cy + dx*sin + dy*cos}
	}

	hw, hh := p.Width/2, p.Height/2
	body := []core.PointF{
		rotate(-hw, -hh*0.4),
		rotate(hw, -hh*0.4),
		rotate(hw, hh),
		rotate(-hw, hh),
	}
	c.FillPolygon(body, droneBody)

	for _, side := range []float64{-1, 1} {
		rotor := rotate(side*hw, -hh*0.6)
		c.FillCircle(rotor.X, rotor.Y, hh*0.6, droneRotor)
	}
}

func (g *Game) drawHUD(c core.Canvas, w float64) {
	c.Text(16, 12, fmt.Sprintf("SCORE %d", g.score), hudText)

	best := fmt.Sprintf("BEST %d", g.highScore)
	c.Text(w-16-c.TextWidth(best), 12, best, hudText)

	c.Text(16, 36, fmt.Sprintf("SPD %.1f", g.speed), hudAccent)
	if g.shield {
		c.Text(16, 60, "SHIELD", shieldRing)
	}
}

// drawOverlay dims the play field and centers a title and subtitle.
func (g *Game) drawOverlay(c core.Canvas, w, h float64, title, subtitle string, showSubtitle bool) {
	c.FillRect(core.NewRectF(0, h/2-60, w, 120), overlayDim)
	c.Text((w-c.TextWidth(title))/2, h/2-30, title, hudAccent)
	if showSubtitle {
		c.Text((w-c.TextWidth(subtitle))/2, h/2+10, subtitle, hudText)
	}
}

// Render draws onto a character screen, scaling the logical surface to fit.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.Draw(core.NewCellCanvas(dst, g.cfg.Surface.Width, g.cfg.Surface.Height))
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// hash01 maps an integer to a stable pseudo-random value in [0, 1).
func hash01(n, salt uint32) float64 {
	x := n*2654435761 ^ salt*40503
	x ^= x >> 15
	x *= 2246822519
	x ^= x >> 13
	return float64(x) / float64(math.MaxUint32+1)
}
