package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// fadeCurve maps normalized ramp progress to gain progress
type fadeCurve func(t float64) float64

func easeLinear(t float64) float64 { return t }

func easeInCubic(t float64) float64 { return t * t * t }

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// fade is one gain ramp: where it started, how long it runs, and the
// shape it follows between the two levels
type fade struct {
	start    int // sample position the ramp began at
	duration int // ramp length in samples
	from     float64
	to       float64
	curve    fadeCurve
}

// gainStage scales a wrapped streamer by a master level. Level changes
// run through a fade evaluated per sample, so ramps never click. The
// stage sits between the mixer and the speaker; mutate it only under
// the speaker lock once playback has started.
type gainStage struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	pos      int
	level    float64 // steady level once no ramp is active
	ramp     *fade
	silent   bool
}

func newGainStage(s beep.Streamer, rate beep.SampleRate, level float64) *gainStage {
	return &gainStage{
		streamer: s,
		rate:     rate,
		level:    level,
	}
}

// FadeTo ramps from the current instantaneous level to target over d.
// A zero or negative duration takes effect immediately.
func (g *gainStage) FadeTo(target float64, d time.Duration, curve fadeCurve) {
	ramp := &fade{
		start:    g.pos,
		duration: g.rate.N(d),
		from:     g.levelAt(g.pos),
		to:       target,
		curve:    curve,
	}
	g.level = target
	if ramp.duration <= 0 {
		g.ramp = nil
		return
	}
	g.ramp = ramp
}

// SetSilent hard-gates the output without disturbing ramp state, so
// unmuting resumes at the level the fade would have reached anyway
func (g *gainStage) SetSilent(silent bool) {
	g.silent = silent
}

// Level reports the instantaneous gain
func (g *gainStage) Level() float64 {
	return g.levelAt(g.pos)
}

func (g *gainStage) levelAt(pos int) float64 {
	if g.ramp == nil {
		return g.level
	}
	t := float64(pos-g.ramp.start) / float64(g.ramp.duration)
	if t >= 1 {
		return g.ramp.to
	}
	if t < 0 {
		t = 0
	}
	return g.ramp.from + (g.ramp.to-g.ramp.from)*g.ramp.curve(t)
}

func (g *gainStage) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := g.levelAt(g.pos)
		if g.silent {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		g.pos++
		if g.ramp != nil && g.pos >= g.ramp.start+g.ramp.duration {
			g.level = g.ramp.to
			g.ramp = nil
		}
	}
	return n, ok
}

func (g *gainStage) Err() error {
	return g.streamer.Err()
}
