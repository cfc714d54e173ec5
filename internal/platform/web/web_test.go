package web

import (
	"encoding/json"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronehub/fpv-mini/internal/config"
	"github.com/dronehub/fpv-mini/internal/core"
	"github.com/dronehub/fpv-mini/internal/games/fpv"
	"github.com/dronehub/fpv-mini/internal/storage"
)

func newGame() (*fpv.Game, error) {
	return fpv.New(config.DefaultFPVConfig())
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRecorderOps(t *testing.T) {
	r := NewRecorder(800, 500)
	red := color.NRGBA{R: 255, A: 255}

	r.FillRect(core.NewRectF(1, 2, 3, 4), red)
	r.FillCircle(10, 10, 5, red)
	r.FillPolygon([]core.PointF{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}, red)
	r.Text(5, 6, "SCORE 1", red)

	// invisible or degenerate draws are skipped
	r.FillRect(core.NewRectF(0, 0, 9, 9), color.NRGBA{})
	r.FillCircle(0, 0, 0, red)
	r.FillPolygon([]core.PointF{{X: 0, Y: 0}, {X: 1, Y: 1}}, red)
	r.Text(0, 0, "", red)

	require.Equal(t, 4, r.Len())
	ops := r.Flush()
	assert.Equal(t, 0, r.Len())

	assert.Equal(t, OpRect, ops[0].Kind)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, ops[0].Color)
	assert.Equal(t, OpCircle, ops[1].Kind)
	assert.Equal(t, []float64{0, 0, 4, 0, 0, 4}, ops[2].Points)
	assert.Equal(t, "SCORE 1", ops[3].Text)
}

func TestRecorderTextWidth(t *testing.T) {
	r := NewRecorder(800, 500)
	assert.InDelta(t, 5*glyphWidth, r.TextWidth("SCORE"), 1e-9)
}

func TestPilotName(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"ace", "ace"},
		{"", storage.AnonymousPlayer},
		{"<script>", "script"},
		{"!!!", storage.AnonymousPlayer},
		{"a_very-long-pilot-name-indeed", "a_very-long-pilo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PilotName(tt.raw), "PilotName(%q)", tt.raw)
	}
}

func TestSessionTickStartsOnJump(t *testing.T) {
	g, err := newGame()
	require.NoError(t, err)
	g.Reset(core.RuntimeConfig{Seed: 3, TickRate: 60})

	s := NewSession("test", "ace", g, nil, 60, quietLogger())
	defer s.Close()

	assert.True(t, s.Push("jump"))
	assert.False(t, s.Push("barrel-roll"))

	data, err := s.Tick()
	require.NoError(t, err)

	var frame Frame
	require.NoError(t, json.Unmarshal(data, &frame))
	assert.Equal(t, "frame", frame.Type)
	assert.Equal(t, "playing", frame.HUD.Phase)
	assert.Equal(t, uint64(1), frame.HUD.Frame)
	assert.NotEmpty(t, frame.Ops)
}

func TestSessionSavesFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	g, err := newGame()
	require.NoError(t, err)
	g.Reset(core.RuntimeConfig{Seed: 3, TickRate: 60})

	s := NewSession("test", "ace", g, store, 60, quietLogger())
	defer s.Close()

	s.saveScore(core.GameState{GameOver: true, Score: 7})
	s.saveScore(core.GameState{GameOver: true, Score: 7})

	scores, err := store.TopScores("fpv", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "ace", scores[0].Player)
}

func TestServerIndexAndHealth(t *testing.T) {
	srv := NewServer(DefaultConfig(), newGame, nil, quietLogger())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "FPV Simulator Mini")

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServerScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()
	_, err = store.SaveScore("fpv", "ace", 4)
	require.NoError(t, err)
	_, err = store.SaveScore("fpv", "bee", 9)
	require.NoError(t, err)

	srv := NewServer(DefaultConfig(), newGame, store, quietLogger())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scores?limit=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []struct {
		Player string `json:"player"`
		Score  int    `json:"score"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "bee", rows[0].Player)
	assert.Equal(t, 9, rows[0].Score)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scores?limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServerScoresWithoutStore(t *testing.T) {
	srv := NewServer(DefaultConfig(), newGame, nil, quietLogger())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scores", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestServerWebSocketStreamsFrames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11
	ts := httptest.NewServer(NewServer(cfg, newGame, nil, quietLogger()))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?pilot=ace"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("jump")))

	deadline := time.Now().Add(5 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))

	var frame Frame
	for time.Now().Before(deadline) {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &frame))
		if frame.HUD.Phase == "playing" {
			break
		}
	}
	assert.Equal(t, "playing", frame.HUD.Phase)
	assert.NotEmpty(t, frame.Ops)
}
