// Package audio synthesizes the round-end cues with beep and plays them
// through the ebiten audio context.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"bemine/internal/round"
)

const SampleRate beep.SampleRate = 44100

type Cue int

const (
	CueNone Cue = iota
	CueWon      // rising three note chime
	CueLost     // short falling buzz
)

// CueFor maps a terminal round state to its cue.
func CueFor(s round.State) Cue {
	switch s {
	case round.Won:
		return CueWon
	case round.Lost:
		return CueLost
	}
	return CueNone
}

const (
	noteLength  = 140 * time.Millisecond
	noteAttack  = 8 * time.Millisecond
	noteRelease = 100 * time.Millisecond
	buzzLength  = 380 * time.Millisecond
)

// Synthesize builds the streamer for a cue at the given volume in [0, 1].
func Synthesize(c Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	switch c {
	case CueWon:
		var notes []beep.Streamer
		for _, f := range []float64{1046.5, 1318.5, 1568.0} {
			n, err := note(rate, f, noteLength, noteAttack, noteRelease)
			if err != nil {
				return nil, err
			}
			notes = append(notes, n)
		}
		return newVolume(beep.Seq(notes...), volume), nil

	case CueLost:
		low, err := note(rate, 196, buzzLength, 5*time.Millisecond, 250*time.Millisecond)
		if err != nil {
			return nil, err
		}
		beat, err := note(rate, 207.6, buzzLength, 5*time.Millisecond, 250*time.Millisecond)
		if err != nil {
			return nil, err
		}
		return newVolume(beep.Mix(newVolume(low, 0.6), newVolume(beat, 0.4)), volume), nil
	}
	return nil, fmt.Errorf("audio: no sound for cue %d", c)
}

func note(rate beep.SampleRate, freq float64, length, attack, release time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	return newEnvelope(beep.Take(rate.N(length), tone), length, attack, release, rate), nil
}

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, length, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(length),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, false
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume becomes silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
