package parameter

import "time"

// Speaker
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferLength is the speaker buffer duration; larger values
	// survive scheduler hiccups at the cost of latency
	AudioBufferLength = 100 * time.Millisecond

	DefaultAudioVolume = 0.8
)

// Master Fades
const (
	// StartupFadeDuration ramps the master gain from silence at launch
	StartupFadeDuration = 2 * time.Second

	// ShutdownFadeDuration ramps to silence before the speaker closes
	ShutdownFadeDuration = 400 * time.Millisecond

	// VolumeRampDuration smooths runtime volume changes so registry
	// writes never click
	VolumeRampDuration = 150 * time.Millisecond
)

// Voices
const (
	// ChimeDecay is the envelope decay for connection chimes
	ChimeDecay = 600 * time.Millisecond

	// TickDecay is the short envelope for pulse ticks
	TickDecay = 90 * time.Millisecond

	// BlipDecay is the envelope for spawn blips
	BlipDecay = 180 * time.Millisecond
)
