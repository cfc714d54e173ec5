package gfx

import (
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronehub/fpv-mini/internal/core"
	"github.com/dronehub/fpv-mini/internal/storage"
)

type stubGame struct {
	cfg   core.RuntimeConfig
	state core.GameState
	steps int
}

func (g *stubGame) ID() string                   { return "stub" }
func (g *stubGame) Title() string                { return "Stub" }
func (g *stubGame) Reset(cfg core.RuntimeConfig) { g.cfg = cfg }
func (g *stubGame) Render(*core.Screen)          {}
func (g *stubGame) Draw(core.Canvas)             {}
func (g *stubGame) State() core.GameState        { return g.state }
func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.state}
}

func TestCollect(t *testing.T) {
	pressed := func(keys ...ebiten.Key) func(ebiten.Key) bool {
		return func(k ebiten.Key) bool {
			for _, want := range keys {
				if k == want {
					return true
				}
			}
			return false
		}
	}

	tests := []struct {
		name   string
		keys   []ebiten.Key
		tapped bool
		want   []core.Action
	}{
		{"nothing", nil, false, nil},
		{"space", []ebiten.Key{ebiten.KeySpace}, false, []core.Action{core.ActionJump}},
		{"tap", nil, true, []core.Action{core.ActionJump}},
		{"pause and restart", []ebiten.Key{ebiten.KeyP, ebiten.KeyR}, false, []core.Action{core.ActionPause, core.ActionRestart}},
		{"escape", []ebiten.Key{ebiten.KeyEscape}, false, []core.Action{core.ActionQuit}},
		{"enter", []ebiten.Key{ebiten.KeyEnter}, false, []core.Action{core.ActionConfirm}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := collect(pressed(tt.keys...), tt.tapped)
			for _, a := range tt.want {
				assert.True(t, in.Has(a), "missing %v", a)
			}
			assert.Len(t, in.Actions, len(tt.want))
		})
	}
}

func TestNewWindowSeedsGame(t *testing.T) {
	g := &stubGame{}
	NewWindow(g, nil, Config{Width: 800, Height: 500, Seed: 9}, nil)

	assert.Equal(t, int64(9), g.cfg.Seed)
	assert.Equal(t, 800, g.cfg.ScreenW)
	assert.Equal(t, 60, g.cfg.TickRate)
}

func TestWindowLayoutKeepsSurface(t *testing.T) {
	w := NewWindow(&stubGame{}, nil, Config{Width: 800, Height: 500}, nil)

	lw, lh := w.Layout(1920, 1080)
	assert.Equal(t, 800, lw)
	assert.Equal(t, 500, lh)
}

func TestWindowSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	g := &stubGame{state: core.GameState{GameOver: true, Score: 6}}
	w := NewWindow(g, store, Config{Width: 800, Height: 500, Player: "ace"}, nil)

	for i := 0; i < 3; i++ {
		w.step(core.NewInputFrame())
	}

	scores, err := store.TopScores("stub", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "ace", scores[0].Player)
	assert.Equal(t, 3, g.steps)
}

func TestTextWidth(t *testing.T) {
	assert.InDelta(t, 0.0, TextWidth(""), 1e-9)
	assert.InDelta(t, float64(5*glyphW*textScale), TextWidth("SCORE"), 1e-9)
}
