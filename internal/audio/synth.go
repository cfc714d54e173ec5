package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	queueSize  = 16
)

// Synth turns cues into tones on the speaker. Play never blocks: cues go into
// a small buffered queue drained by one goroutine, and a full queue drops the cue.
type Synth struct {
	rate   beep.SampleRate
	volume float64
	out    func(beep.Streamer)

	queue  chan Cue
	done   chan struct{}
	closed atomic.Bool
	once   sync.Once
	wg     sync.WaitGroup

	dropped atomic.Int64
}

// NewSynth initialises the speaker and starts the synth goroutine.
func NewSynth(volume float64) (*Synth, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}

	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	return newSynth(sampleRate, volume, func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	}), nil
}

// newSynth builds a synth around an arbitrary output, used directly by tests.
func newSynth(rate beep.SampleRate, volume float64, out func(beep.Streamer)) *Synth {
	s := &Synth{
		rate:   rate,
		volume: volume,
		out:    out,
		queue:  make(chan Cue, queueSize),
		done:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *Synth) run() {
	defer s.wg.Done()
	for {
		select {
		case c := <-s.queue:
			if st := Tone(c, s.rate, s.volume); st != nil {
				s.out(st)
			}
		case <-s.done:
			return
		}
	}
}

// Play implements Player.
func (s *Synth) Play(c Cue) {
	if s.closed.Load() {
		return
	}
	select {
	case s.queue <- c:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns how many cues were discarded because the queue was full.
func (s *Synth) Dropped() int64 {
	return s.dropped.Load()
}

// Close stops the synth goroutine. Cues played afterwards are ignored.
func (s *Synth) Close() {
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.done)
		s.wg.Wait()
	})
}

// Open returns a working player: a Synth when audio is enabled and the
// device initialises, Silent otherwise. The returned func releases it.
func Open(enabled bool, volume float64, logger *log.Logger) (Player, func()) {
	if !enabled {
		return Silent{}, func() {}
	}
	s, err := NewSynth(volume)
	if err != nil {
		if logger != nil {
			logger.Warn("audio unavailable, continuing muted", "err", err)
		}
		return Silent{}, func() {}
	}
	return s, s.Close
}
