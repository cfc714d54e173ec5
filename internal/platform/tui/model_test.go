package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronehub/fpv-mini/internal/core"
	"github.com/dronehub/fpv-mini/internal/storage"
)

// stubGame records what the model feeds it and reports a scripted state.
type stubGame struct {
	resets int
	inputs []core.InputFrame
	state  core.GameState
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "STUB") }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	seen := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			seen.Set(a)
		}
	}
	g.inputs = append(g.inputs, seen)
	return core.StepResult{State: g.state}
}

func (g *stubGame) lastInput() core.InputFrame {
	return g.inputs[len(g.inputs)-1]
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitResetsGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig(), "ace")

	cmd := m.Init()
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, g.resets)
}

func TestModelLeavesRoomForFooter(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig(), "ace")

	assert.Equal(t, 80, m.screen.Width())
	assert.Equal(t, 22, m.screen.Height())
}

func TestModelKeyInputReachesNextStep(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig(), "ace")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = update(t, m, TickMsg{})

	require.Len(t, g.inputs, 1)
	assert.True(t, g.lastInput().Has(core.ActionJump))

	// input is consumed by the step that saw it
	_, _ = update(t, m, TickMsg{})
	assert.False(t, g.lastInput().Has(core.ActionJump))
}

func TestModelMouseClickThrusts(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig(), "ace")

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, _ = update(t, m, TickMsg{})

	assert.True(t, g.lastInput().Has(core.ActionJump))
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig(), "ace")

	m, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelEscPausesLiveRun(t *testing.T) {
	g := &stubGame{state: core.GameState{Playing: true}}
	m := NewModel(g, nil, testConfig(), "ace")
	m, _ = update(t, m, TickMsg{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	_, _ = update(t, m, TickMsg{})
	assert.True(t, g.lastInput().Has(core.ActionPause))
}

func TestModelEscLeavesWhenNotFlying(t *testing.T) {
	g := &stubGame{state: core.GameState{GameOver: true}}
	m := NewModel(g, nil, testConfig(), "ace")
	m, _ = update(t, m, TickMsg{})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig(), "ace")
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 1, g.resets)
	assert.Equal(t, 120, m.screen.Width())
	assert.Equal(t, 38, m.screen.Height())
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	store := openStore(t)
	g := &stubGame{state: core.GameState{Playing: true, Score: 4}}
	m := NewModel(g, store, testConfig(), "ace")

	m, _ = update(t, m, TickMsg{})
	g.state = core.GameState{GameOver: true, Score: 4}
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, TickMsg{})
	}

	scores, err := store.TopScores("stub", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 4, scores[0].Score)
	assert.Equal(t, "ace", scores[0].Player)

	// a new run that ends again is saved again
	g.state = core.GameState{Playing: true, Score: 9}
	m, _ = update(t, m, TickMsg{})
	g.state = core.GameState{GameOver: true, Score: 9}
	_, _ = update(t, m, TickMsg{})

	scores, err = store.TopScores("stub", 10)
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}

func TestModelSkipsZeroScore(t *testing.T) {
	store := openStore(t)
	g := &stubGame{state: core.GameState{GameOver: true}}
	m := NewModel(g, store, testConfig(), "ace")

	_, _ = update(t, m, TickMsg{})

	scores, err := store.TopScores("stub", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestModelView(t *testing.T) {
	g := &stubGame{state: core.GameState{Playing: true, Score: 3, HighScore: 8, Speed: 3.5, Shield: true}}
	m := NewModel(g, nil, testConfig(), "ace")
	m, _ = update(t, m, TickMsg{})

	view := m.View()
	assert.Contains(t, view, "STUB")
	assert.Contains(t, view, "score 3")
	assert.Contains(t, view, "best 8")
	assert.Contains(t, view, "speed 3.5")
	assert.Contains(t, view, "shield")
	assert.Contains(t, view, "pilot ace")
	assert.Contains(t, view, "thrust")
}

func TestModelHelpToggleShrinksField(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig(), "ace")
	before := m.screen.Height()

	m, _ = update(t, m, keyRunes("?"))

	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.screen.Height(), before)
	assert.True(t, strings.Contains(m.View(), "screenshot"))
}
