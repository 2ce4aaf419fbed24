// Package sound renders the game's cues as short procedural effects.
package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/plus3/flapper/game"
)

const (
	jumpDuration  = 90 * time.Millisecond
	noteDuration  = 70 * time.Millisecond
	hitDuration   = 250 * time.Millisecond
	attack        = 5 * time.Millisecond
	shortRelease  = 30 * time.Millisecond
	hitRelease    = 200 * time.Millisecond
	effectsVolume = 0.4
)

// Synth returns a finite streamer for cue, or nil for an unknown cue.
func Synth(cue game.Cue, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case game.CueJump:
		s = jumpSound(rate)
	case game.CueScore:
		s = scoreSound(rate)
	case game.CueHit:
		s = hitSound(rate)
	default:
		return nil
	}
	return withVolume(s, effectsVolume)
}

// jumpSound is a square wave sweeping up an octave.
func jumpSound(rate beep.SampleRate) beep.Streamer {
	sweep := &chirp{from: 330, to: 660, total: rate.N(jumpDuration), rate: rate}
	return newEnvelope(sweep, jumpDuration, attack, shortRelease, rate)
}

// scoreSound is two short sine notes, B5 then E6.
func scoreSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(note(987.77, rate), note(1318.51, rate))
}

func note(freq float64, rate beep.SampleRate) beep.Streamer {
	var tone beep.Streamer
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		// The rate is too low for a sine at freq; fall back to a flat chirp.
		tone = &chirp{from: freq, to: freq, total: rate.N(noteDuration), rate: rate}
	}
	return newEnvelope(beep.Take(rate.N(noteDuration), tone), noteDuration, attack, shortRelease, rate)
}

// hitSound is a burst of noise with a long decay.
func hitSound(rate beep.SampleRate) beep.Streamer {
	burst := &noise{total: rate.N(hitDuration), rng: rand.New(rand.NewPCG(1, 2))}
	return newEnvelope(burst, hitDuration, attack, hitRelease, rate)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type chirp struct {
	from, to float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

func (c *chirp) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.position >= c.total {
			return i, i > 0
		}
		val := -1.0
		if c.phase < 0.5 {
			val = 1.0
		}
		samples[i] = [2]float64{val, val}

		progress := float64(c.position) / float64(c.total)
		freq := c.from + (c.to-c.from)*progress
		c.phase += freq / float64(c.rate)
		c.phase -= math.Floor(c.phase)
		c.position++
	}
	return len(samples), true
}

func (c *chirp) Err() error { return nil }

type noise struct {
	position int
	total    int
	rng      *rand.Rand
}

func (s *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		val := s.rng.Float64()*2 - 1
		samples[i] = [2]float64{val, val}
		s.position++
	}
	return len(samples), true
}

func (s *noise) Err() error { return nil }

// envelope fades the stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if remaining := e.total - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.total - e.release
	for i := range n {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= releaseStart && e.release > 0 {
			vol = min(vol, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
