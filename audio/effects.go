package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/sirup/vmath"
)

// noise generates low-passed white noise for a fixed number of samples
// A negative duration streams forever
type noise struct {
	rng      *vmath.FastRand
	alpha    float64 // One-pole low-pass coefficient, 1 passes white noise
	last     float64
	duration int
	position int
}

// NewNoise creates a filtered noise source
func NewNoise(duration time.Duration, alpha float64, seed uint64, rate beep.SampleRate) beep.Streamer {
	samples := -1
	if duration >= 0 {
		samples = rate.N(duration)
	}
	return &noise{
		rng:      vmath.NewFastRand(seed),
		alpha:    vmath.Clamp(alpha, 0, 1),
		duration: samples,
	}
}

func (o *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.duration >= 0 && o.position >= o.duration {
			return i, i > 0
		}
		o.last += o.alpha * (o.rng.Float64()*2 - 1 - o.last)
		samples[i][0] = o.last
		samples[i][1] = o.last
		o.position++
	}
	return len(samples), true
}

func (o *noise) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over total duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(0, total-att-rel)

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
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so zero gain is silent
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// NewSplash is the short burst played when a container overflows
func NewSplash(gain float64, seed uint64, rate beep.SampleRate) beep.Streamer {
	const (
		length  = 140 * time.Millisecond
		attack  = 4 * time.Millisecond
		release = 110 * time.Millisecond
	)
	burst := NewEnvelope(NewNoise(length, 0.35, seed, rate), length, attack, release, rate)
	return newVolume(burst, gain)
}
