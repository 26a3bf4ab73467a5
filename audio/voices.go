package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// WaveShape selects the oscillator waveform
type WaveShape int

const (
	WaveSine WaveShape = iota
	WaveTriangle
	WaveNoise
)

// oscillator generates a fixed-length tone at constant frequency
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	shape    WaveShape
	rate     beep.SampleRate
	noise    int64 // LCG state for WaveNoise
}

func newOscillator(freq float64, d time.Duration, shape WaveShape, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(d),
		shape:    shape,
		rate:     rate,
		noise:    0x3FD5A2C9,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.shape {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			o.noise = (o.noise*1103515245 + 12345) & 0x7fffffff
			val = float64(o.noise)/float64(0x7fffffff)*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep glides a sine tone linearly between two frequencies over its
// lifetime, for falling tails and pitched thumps
type sweep struct {
	from     float64
	to       float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

func newSweep(from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(d),
		rate:     rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, false
		}

		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t
		val := math.Sin(2 * math.Pi * s.phase)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope shapes a streamer with linear attack and release ramps and
// truncates it at the total duration
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, total, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(total),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, false
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= e.total-e.release {
			rel := float64(e.total-e.position) / float64(e.release)
			if rel < vol {
				vol = rel
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a streamer with logarithmic gain. Zero or negative
// gain silences outright since log2 diverges there.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// chimeRoots is the pentatonic bank established-connection chimes pick
// from: A4, C5, D5, E5, G5
var chimeRoots = []float64{440.00, 523.25, 587.33, 659.26, 783.99}

// newRisingChime plays the root then a fifth above it, the second note
// carrying an octave shimmer
func newRisingChime(root float64, rate beep.SampleRate) beep.Streamer {
	first := newEnvelope(
		newOscillator(root, 110*time.Millisecond, WaveSine, rate),
		110*time.Millisecond, 6*time.Millisecond, 70*time.Millisecond, rate)

	fund := newEnvelope(
		newOscillator(root*1.5, parameter.ChimeDecay, WaveSine, rate),
		parameter.ChimeDecay, 6*time.Millisecond, 450*time.Millisecond, rate)
	shimmer := newEnvelope(
		newOscillator(root*3, parameter.ChimeDecay, WaveSine, rate),
		parameter.ChimeDecay, 6*time.Millisecond, 500*time.Millisecond, rate)
	second := beep.Mix(
		newVolume(fund, 0.8),
		newVolume(shimmer, 0.25),
	)

	return newVolume(beep.Seq(newVolume(first, 0.8), second), 0.5)
}

// newFallingChime plays the root then a fifth below it, duller than
// the rising form
func newFallingChime(root float64, rate beep.SampleRate) beep.Streamer {
	first := newEnvelope(
		newOscillator(root, 110*time.Millisecond, WaveSine, rate),
		110*time.Millisecond, 6*time.Millisecond, 70*time.Millisecond, rate)
	second := newEnvelope(
		newOscillator(root*2.0/3.0, parameter.ChimeDecay, WaveSine, rate),
		parameter.ChimeDecay, 6*time.Millisecond, 450*time.Millisecond, rate)

	return newVolume(beep.Seq(newVolume(first, 0.8), newVolume(second, 0.8)), 0.45)
}

// newBlip is the spawn sound, a short bright triangle pip at A5
func newBlip(rate beep.SampleRate) beep.Streamer {
	osc := newOscillator(880.0, parameter.BlipDecay, WaveTriangle, rate)
	shaped := newEnvelope(osc, parameter.BlipDecay, 4*time.Millisecond, 130*time.Millisecond, rate)
	return newVolume(shaped, 0.35)
}

// newDespawnFade is a soft downward glide for nodes leaving the scene
func newDespawnFade(rate beep.SampleRate) beep.Streamer {
	glide := newSweep(520, 180, 260*time.Millisecond, rate)
	shaped := newEnvelope(glide, 260*time.Millisecond, 10*time.Millisecond, 180*time.Millisecond, rate)
	return newVolume(shaped, 0.35)
}

// newBeat is the sequencer pulse, a low pitched thump
func newBeat(rate beep.SampleRate) beep.Streamer {
	thump := newSweep(150, 55, parameter.TickDecay, rate)
	shaped := newEnvelope(thump, parameter.TickDecay, 2*time.Millisecond, 60*time.Millisecond, rate)
	return newVolume(shaped, 0.5)
}

// newAccent is the downbeat variant, brighter and with a noise snap
func newAccent(rate beep.SampleRate) beep.Streamer {
	thump := newSweep(210, 70, parameter.TickDecay, rate)
	thumpShaped := newEnvelope(thump, parameter.TickDecay, 2*time.Millisecond, 60*time.Millisecond, rate)

	snap := newOscillator(0, 40*time.Millisecond, WaveNoise, rate)
	snapShaped := newEnvelope(snap, 40*time.Millisecond, time.Millisecond, 30*time.Millisecond, rate)

	mixed := beep.Mix(
		newVolume(thumpShaped, 0.85),
		newVolume(snapShaped, 0.2),
	)
	return newVolume(mixed, 0.6)
}

// buildVoice constructs the one-shot streamer for a sound type. The
// rng drives the chime bank pick; nil means no voice is defined.
func buildVoice(sound core.SoundType, rate beep.SampleRate, rng *vmath.FastRand) beep.Streamer {
	switch sound {
	case core.SoundChime:
		root := chimeRoots[rng.Intn(len(chimeRoots))]
		return newRisingChime(root, rate)
	case core.SoundTick:
		return newFallingChime(587.33, rate) // D5
	case core.SoundBlip:
		return newBlip(rate)
	case core.SoundFade:
		return newDespawnFade(rate)
	case core.SoundBeat:
		return newBeat(rate)
	case core.SoundAccent:
		return newAccent(rate)
	default:
		return nil
	}
}
