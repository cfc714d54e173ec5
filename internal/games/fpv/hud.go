package fpv

// HUD is the read-only snapshot published to the presentation layer,
// at most once per frame.
type HUD struct {
	Score     int
	HighScore int
	Playing   bool
	GameOver  bool
	Paused    bool
	Shield    bool
	Speed     float64
	Phase     Phase
	Frame     uint64
}

// HUD returns the most recently published snapshot.
func (g *Game) HUD() HUD {
	return g.hud
}

// Subscribe registers fn to receive every published snapshot.
// Call the returned func to stop receiving.
func (g *Game) Subscribe(fn func(HUD)) (cancel func()) {
	id := g.nextListener
	g.nextListener++
	g.listeners[id] = fn
	return func() {
		delete(g.listeners, id)
	}
}

// changed publishes a state change made outside the loop. Inside Step it
// waits for the frame, or the end of the refresh, to publish once.
func (g *Game) changed() {
	if g.stepping {
		g.hudDirty = true
		return
	}
	g.publish()
}

func (g *Game) publish() {
	g.hudDirty = false
	g.hud = HUD{
		Score:     g.score,
		HighScore: g.highScore,
		Playing:   g.phase == PhasePlaying,
		GameOver:  g.phase == PhaseGameOver,
		Paused:    g.paused,
		Shield:    g.shield,
		Speed:     g.speed,
		Phase:     g.phase,
		Frame:     g.frame,
	}
	for _, fn := range g.listeners {
		fn(g.hud)
	}
}
