package fpv

import (
	"image/color"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dronehub/fpv-mini/internal/audio"
	"github.com/dronehub/fpv-mini/internal/config"
	"github.com/dronehub/fpv-mini/internal/core"
)

// cueLog records audio cues in order.
type cueLog struct {
	cues []audio.Cue
}

func (l *cueLog) Play(c audio.Cue) { l.cues = append(l.cues, c) }

func (l *cueLog) count(c audio.Cue) int {
	n := 0
	for _, got := range l.cues {
		if got == c {
			n++
		}
	}
	return n
}

var fixedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, cfg config.FPVConfig) (*Game, *cueLog) {
	t.Helper()
	cues := &cueLog{}
	g, err := New(cfg, WithAudio(cues), WithClock(func() time.Time { return fixedTime }))
	require.NoError(t, err)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g, cues
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// simState captures everything the simulation owns except particles,
// which keep fading after a crash.
type simState struct {
	Player       Player
	Gates        []Gate
	Collectibles []Collectible
	Score        int
	HighScore    int
	Shield       bool
	Speed        float64
	Frame        uint64
	Phase        Phase
}

func snapshot(g *Game) simState {
	return simState{
		Player:       g.player,
		Gates:        slices.Clone(g.gates),
		Collectibles: slices.Clone(g.collectibles),
		Score:        g.score,
		HighScore:    g.highScore,
		Shield:       g.shield,
		Speed:        g.speed,
		Frame:        g.frame,
		Phase:        g.phase,
	}
}

// opCanvas records draw calls for render tests.
type opCanvas struct {
	w, h  float64
	rects int
	polys int
	circs []color.NRGBA
	texts []string
}

func (c *opCanvas) Size() (float64, float64)                    { return c.w, c.h }
func (c *opCanvas) FillRect(core.RectF, color.NRGBA)            { c.rects++ }
func (c *opCanvas) FillCircle(_, _, _ float64, col color.NRGBA) { c.circs = append(c.circs, col) }
func (c *opCanvas) FillPolygon([]core.PointF, color.NRGBA)      { c.polys++ }
func (c *opCanvas) Text(_, _ float64, s string, _ color.NRGBA)  { c.texts = append(c.texts, s) }
func (c *opCanvas) TextWidth(s string) float64                  { return float64(len(s)) * 8 }
