// Package audio renders pouring as filtered noise through the speaker
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/sirup/engine"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/status"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Player mixes one pour voice per vessel and a splash on every overflow
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	voices      map[string]*PourVoice
	overflows   int64
	seed        uint64
	initialized bool
}

// NewPlayer creates a player that is silent until Initialize
func NewPlayer() *Player {
	mixer := &beep.Mixer{}
	// Keeps the mixer alive on the speaker before any vessel is observed
	mixer.Add(beep.Silence(-1))
	return &Player{
		mixer:  mixer,
		voices: make(map[string]*PourVoice),
	}
}

// Initialize opens the speaker and starts the mixer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences the mixer
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	p.mixer.Add(beep.Silence(-1))
	speaker.Unlock()
	clear(p.voices)
	p.initialized = false
}

// Voice returns the voice for a vessel, creating and mixing it on first use
func (p *Player) Voice(name string) *PourVoice {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.voiceLocked(name)
}

func (p *Player) voiceLocked(name string) *PourVoice {
	if v, ok := p.voices[name]; ok {
		return v
	}
	p.seed++
	v := NewPourVoice(p.seed, sampleRate)
	p.voices[name] = v
	p.add(v)
	return v
}

// Observe is a scheduler observer mapping emission speeds to voice gains
func (p *Player) Observe(world *engine.World) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, vessel := range world.Vessels() {
		p.voiceLocked(vessel.Name).SetSpeed(vessel.Emitter.Speed)
	}

	total := world.Status.Ints.Get(status.Overflows).Load()
	if total > p.overflows {
		p.overflows = total
		p.seed++
		p.add(NewSplash(parameter.PourVoiceMaxGain, p.seed, sampleRate))
	}
}

// add mixes s, taking the speaker lock once the speaker runs
func (p *Player) add(s beep.Streamer) {
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}

// Streaming returns the number of streamers in the mixer
func (p *Player) Streaming() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}
