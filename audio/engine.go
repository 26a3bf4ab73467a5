package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// Engine drives the speaker: a mixer for one-shot voices with a master
// gain stage on top for mute, volume ramps, and the startup and
// shutdown fades. Implements engine.AudioPlayer.
type Engine struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	master  *gainStage
	rng     *vmath.FastRand
	volume  float64
	running atomic.Bool
	muted   atomic.Bool
}

// New creates an engine with the given master volume. The seed feeds
// the chime bank pick so a run replays with the same voices.
func New(volume float64, seed uint64) *Engine {
	e := &Engine{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		mixer:  &beep.Mixer{},
		rng:    vmath.NewFastRand(seed),
		volume: volume,
	}
	e.master = newGainStage(e.mixer, e.rate, 0)
	return e
}

// Start opens the speaker and fades the master gain in from silence.
// An error means no output device is available; callers treat that as
// audio disabled.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running.Load() {
		return nil
	}

	if err := speaker.Init(e.rate, e.rate.N(parameter.AudioBufferLength)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	e.master.FadeTo(e.volume, parameter.StartupFadeDuration, easeOutCubic)
	speaker.Play(e.master)
	e.running.Store(true)
	return nil
}

// Stop fades the master gain to silence, then clears the mixer and
// closes the speaker. Blocks for the fade so the ramp plays out before
// teardown.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}

	speaker.Lock()
	e.master.FadeTo(0, parameter.ShutdownFadeDuration, easeInCubic)
	speaker.Unlock()

	time.Sleep(parameter.ShutdownFadeDuration + parameter.AudioBufferLength)

	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Play mixes a one-shot voice. Returns false when the engine is down,
// muted, or the sound type has no voice.
func (e *Engine) Play(sound core.SoundType) bool {
	if !e.running.Load() || e.muted.Load() {
		return false
	}

	e.mu.Lock()
	voice := buildVoice(sound, e.rate, e.rng)
	e.mu.Unlock()
	if voice == nil {
		return false
	}

	speaker.Lock()
	e.mixer.Add(voice)
	speaker.Unlock()
	return true
}

// ToggleMute flips the mute state and reports the new state. Muting
// gates the master stage rather than clearing the mixer, so unmute
// resumes mid-voice without artifacts.
func (e *Engine) ToggleMute() bool {
	e.mu.Lock()
	muted := !e.muted.Load()
	e.muted.Store(muted)
	e.mu.Unlock()

	if e.running.Load() {
		speaker.Lock()
		e.master.SetSilent(muted)
		speaker.Unlock()
	} else {
		e.master.SetSilent(muted)
	}
	return muted
}

// IsMuted returns the current mute state
func (e *Engine) IsMuted() bool {
	return e.muted.Load()
}

// IsRunning returns true once Start has succeeded and Stop has not run
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// SetVolume ramps the master gain to v. Values outside [0,1] are
// rejected and the current level is retained.
func (e *Engine) SetVolume(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("volume must be in [0,1], got %v", v)
	}

	e.mu.Lock()
	e.volume = v
	e.mu.Unlock()

	if e.running.Load() {
		speaker.Lock()
		e.master.FadeTo(v, parameter.VolumeRampDuration, easeLinear)
		speaker.Unlock()
	}
	return nil
}
