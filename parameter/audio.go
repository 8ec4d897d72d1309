package parameter

import "time"

// Pour audio cue
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// PourVoiceMaxGain is the noise amplitude at full emission
	PourVoiceMaxGain = 0.25

	// PourVoiceFullSpeed is the summed emission speed mapped to full gain
	PourVoiceFullSpeed = 10.0

	// PourVoiceSmoothing is the per-sample gain follow factor
	PourVoiceSmoothing = 0.0005
)
