package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally sweeping linearly from freq to endFreq.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator whose pitch glides from startFreq to endFreq.
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     startFreq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume maps to Silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Tone durations
const (
	thrustDuration = 80 * time.Millisecond
	scoreNote      = 70 * time.Millisecond
	shieldDuration = 250 * time.Millisecond
	crashDuration  = 450 * time.Millisecond
)

// Tone renders a cue as a finite streamer at the given master volume.
// Unknown cues return nil.
func Tone(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueThrust:
		// Short low blip, pitched up slightly like a motor spinning up
		osc := NewSweep(140, 220, thrustDuration, WaveSquare, rate)
		s = newVolume(NewEnvelope(osc, thrustDuration, 5*time.Millisecond, 50*time.Millisecond, rate), 0.25)
	case CueScore:
		// Two-note chime (A5 -> E6)
		n1 := NewEnvelope(NewOscillator(880, scoreNote, WaveSine, rate), scoreNote, 3*time.Millisecond, 40*time.Millisecond, rate)
		n2 := NewEnvelope(NewOscillator(1318.51, scoreNote*2, WaveSine, rate), scoreNote*2, 3*time.Millisecond, 100*time.Millisecond, rate)
		s = newVolume(beep.Seq(n1, n2), 0.5)
	case CueShield:
		osc := NewSweep(300, 1200, shieldDuration, WaveSaw, rate)
		s = newVolume(NewEnvelope(osc, shieldDuration, 10*time.Millisecond, 120*time.Millisecond, rate), 0.3)
	case CueCrash:
		noise := NewEnvelope(NewOscillator(0, crashDuration, WaveNoise, rate), crashDuration, 2*time.Millisecond, 400*time.Millisecond, rate)
		thud := NewEnvelope(NewSweep(120, 40, crashDuration, WaveSine, rate), crashDuration, 2*time.Millisecond, 300*time.Millisecond, rate)
		s = beep.Mix(newVolume(noise, 0.5), newVolume(thud, 0.8))
	default:
		return nil
	}
	return newVolume(s, volume)
}
