package audio

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Player fires one-shot cues on an ebiten audio context.
type Player struct {
	ctx    *audio.Context
	mute   bool
	volume float64
	active []*audio.Player
}

// NewPlayer opens the process-wide audio context. A muted player never
// touches the audio device.
func NewPlayer(mute bool) *Player {
	p := &Player{mute: mute, volume: 0.5}
	if mute {
		return p
	}
	p.ctx = audio.CurrentContext()
	if p.ctx == nil {
		p.ctx = audio.NewContext(int(SampleRate))
	}
	return p
}

func (p *Player) Play(c Cue) {
	if p.mute || c == CueNone {
		return
	}
	s, err := Synthesize(c, SampleRate, p.volume)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}
	pl, err := p.ctx.NewPlayer(NewReader(s))
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}
	pl.Play()
	p.active = append(p.active, pl)
}

// Update releases cues that have finished. Call once per frame.
func (p *Player) Update() {
	live := p.active[:0]
	for _, pl := range p.active {
		if pl.IsPlaying() {
			live = append(live, pl)
			continue
		}
		if err := pl.Close(); err != nil {
			log.Printf("audio: close: %v", err)
		}
	}
	clear(p.active[len(live):])
	p.active = live
}
