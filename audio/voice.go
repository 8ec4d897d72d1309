package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/status"
	"github.com/lixenwraith/sirup/vmath"
)

// PourVoice is an endless noise stream whose loudness follows emission speed
// SetSpeed is called from the simulation goroutine, Stream from the speaker goroutine
type PourVoice struct {
	target status.Gauge

	gain      float64
	smoothing float64
	source    beep.Streamer
}

// NewPourVoice creates a silent voice
func NewPourVoice(seed uint64, rate beep.SampleRate) *PourVoice {
	return &PourVoice{
		smoothing: parameter.PourVoiceSmoothing,
		source:    NewNoise(-1, 0.08, seed, rate),
	}
}

// SetSpeed maps an emission speed to the target gain
func (v *PourVoice) SetSpeed(speed float64) {
	ratio := vmath.Clamp(speed/parameter.PourVoiceFullSpeed, 0, 1)
	v.target.Store(ratio * parameter.PourVoiceMaxGain)
}

// Target returns the gain the voice is moving toward
func (v *PourVoice) Target() float64 {
	return v.target.Load()
}

func (v *PourVoice) Stream(samples [][2]float64) (n int, ok bool) {
	n, _ = v.source.Stream(samples)
	target := v.target.Load()
	for i := 0; i < n; i++ {
		v.gain += (target - v.gain) * v.smoothing
		samples[i][0] *= v.gain
		samples[i][1] *= v.gain
	}
	return len(samples), true
}

func (v *PourVoice) Err() error { return nil }
