package web

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/dronehub/fpv-mini/internal/core"
	"github.com/dronehub/fpv-mini/internal/games/fpv"
	"github.com/dronehub/fpv-mini/internal/storage"
)

const (
	inputBuffer  = 32
	outputBuffer = 4
	writeWait    = 5 * time.Second
	maxMessage   = 512
)

// clientActions maps the words the page sends to game actions.
var clientActions = map[string]core.Action{
	"jump":    core.ActionJump,
	"start":   core.ActionConfirm,
	"pause":   core.ActionPause,
	"restart": core.ActionRestart,
}

// Frame is one refresh sent to the browser.
type Frame struct {
	Type string  `json:"type"`
	HUD  HUDView `json:"hud"`
	Ops  []Op    `json:"ops"`
}

// HUDView is the HUD as the page reads it.
type HUDView struct {
	Score     int     `json:"score"`
	HighScore int     `json:"best"`
	Speed     float64 `json:"speed"`
	Shield    bool    `json:"shield"`
	Phase     string  `json:"phase"`
	Paused    bool    `json:"paused"`
	Frame     uint64  `json:"frame"`
}

// Session plays one game for one browser connection. The game is owned by
// the run goroutine; the reader only forwards actions over a channel.
type Session struct {
	ID     string
	Player string

	game     *fpv.Game
	recorder *Recorder
	store    *storage.Store
	logger   *log.Logger
	tickRate int

	input  chan core.Action
	output chan []byte

	hud        fpv.HUD
	unsub      func()
	scoreSaved bool
	dropped    int
}

// NewSession mounts a recorder on game and subscribes to its HUD.
func NewSession(id, player string, game *fpv.Game, store *storage.Store, tickRate int, logger *log.Logger) *Session {
	if tickRate <= 0 {
		tickRate = 60
	}
	w, h := game.Config().Surface.Width, game.Config().Surface.Height

	s := &Session{
		ID:       id,
		Player:   player,
		game:     game,
		recorder: NewRecorder(w, h),
		store:    store,
		logger:   logger.With("session", id, "player", player),
		tickRate: tickRate,
		input:    make(chan core.Action, inputBuffer),
		output:   make(chan []byte, outputBuffer),
		hud:      game.HUD(),
	}
	game.Mount(s.recorder)
	s.unsub = game.Subscribe(func(h fpv.HUD) { s.hud = h })
	return s
}

// Push queues a client word. Unknown words and a full queue are ignored.
func (s *Session) Push(word string) bool {
	a, ok := clientActions[word]
	if !ok {
		return false
	}
	select {
	case s.input <- a:
		return true
	default:
		return false
	}
}

// Tick drains queued input into one refresh and returns the encoded frame.
func (s *Session) Tick() ([]byte, error) {
	in := core.NewInputFrame()
drain:
	for {
		select {
		case a := <-s.input:
			in.Set(a)
		default:
			break drain
		}
	}

	st := s.game.Step(in).State
	s.saveScore(st)

	return json.Marshal(Frame{
		Type: "frame",
		HUD: HUDView{
			Score:     st.Score,
			HighScore: st.HighScore,
			Speed:     st.Speed,
			Shield:    st.Shield,
			Phase:     s.game.Phase().String(),
			Paused:    st.Paused,
			Frame:     s.hud.Frame,
		},
		Ops: s.recorder.Flush(),
	})
}

// saveScore stores a finished run once.
func (s *Session) saveScore(st core.GameState) {
	if st.GameOver && !s.scoreSaved {
		if s.store != nil && st.Score > 0 {
			if _, err := s.store.SaveScore(s.game.ID(), s.Player, st.Score); err != nil {
				s.logger.Warn("could not save score", "error", err)
			}
		}
		s.logger.Info("run ended", "score", st.Score, "best", st.HighScore)
		s.scoreSaved = true
	}
	if !st.GameOver {
		s.scoreSaved = false
	}
}

// Run steps the game at the tick rate until ctx ends, queueing frames on
// the output channel. A slow client loses frames rather than stalling the game.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.output)
	defer s.Close()

	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			frame, err := s.Tick()
			if err != nil {
				return err
			}
			select {
			case s.output <- frame:
			default:
				s.dropped++
			}
		}
	}
}

// Output is the stream of encoded frames. It closes when Run returns.
func (s *Session) Output() <-chan []byte {
	return s.output
}

// Close stops the game loop and releases the game.
func (s *Session) Close() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	s.game.Close()
}

// Dropped is the number of frames the client was too slow to take.
func (s *Session) Dropped() int {
	return s.dropped
}

// serve wires a websocket connection to a session: one goroutine reads
// client words, one writes frames, and the game runs in Run.
func (s *Session) serve(ctx context.Context, conn *websocket.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn.SetReadLimit(maxMessage)

	go func() {
		defer cancel()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug("read failed", "error", err)
				}
				return
			}
			s.Push(string(msg))
		}
	}()

	writeErr := make(chan error, 1)
	go func() {
		for frame := range s.output {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				cancel()
				// wait for Run to close the channel
				for range s.output {
				}
				writeErr <- err
				return
			}
		}
		writeErr <- nil
	}()

	runErr := s.Run(ctx)
	werr := <-writeErr

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))

	if runErr != nil {
		return runErr
	}
	if werr != nil && !errors.Is(werr, websocket.ErrCloseSent) {
		return werr
	}
	return nil
}
