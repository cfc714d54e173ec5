package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreboardListsAllPilots(t *testing.T) {
	store := openStore(t)
	for _, s := range []struct {
		player string
		score  int
	}{{"ace", 5}, {"bee", 11}, {"ace", 8}} {
		_, err := store.SaveScore("fpv", s.player, s.score)
		require.NoError(t, err)
	}

	m := NewScoreboardModel(store, "fpv", "FPV Simulator Mini", "ace", 80, 24)

	rows := m.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, 11, rows[0].Score)
	assert.Equal(t, "bee", rows[0].Player)

	view := m.View()
	assert.Contains(t, view, "HIGH SCORES - FPV Simulator Mini")
	assert.Contains(t, view, "3 flights · 2 pilots · best 11")
}

func TestScoreboardToggleMine(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveScore("fpv", "ace", 5)
	require.NoError(t, err)
	_, err = store.SaveScore("fpv", "bee", 11)
	require.NoError(t, err)

	m := NewScoreboardModel(store, "fpv", "FPV Simulator Mini", "ace", 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)

	rows := m.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "ace", rows[0].Player)
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, "fpv", "FPV Simulator Mini", "ace", 80, 24)

	assert.Empty(t, m.Rows())
	assert.Contains(t, m.View(), "No scores recorded yet.")
	assert.Contains(t, m.View(), "no flights logged")
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, "fpv", "FPV Simulator Mini", "ace", 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, next.(ScoreboardModel).IsGoingBack())

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, next.(ScoreboardModel).IsQuitting())
}
