package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// constStreamer fills every sample with a fixed value and never drains
type constStreamer struct {
	val float64
}

func (c *constStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		samples[i][0] = c.val
		samples[i][1] = c.val
	}
	return len(samples), true
}

func (c *constStreamer) Err() error { return nil }

// Test steady gain with no ramp active
func TestGainStageSteadyLevel(t *testing.T) {
	g := newGainStage(&constStreamer{val: 1.0}, beep.SampleRate(1000), 0.5)

	buf := make([][2]float64, 64)
	n, ok := g.Stream(buf)
	if n != 64 || !ok {
		t.Errorf("Expected full stream, got n=%d ok=%v", n, ok)
	}
	for i := range buf {
		if buf[i][0] != 0.5 || buf[i][1] != 0.5 {
			t.Fatalf("Expected 0.5 at sample %d, got %v/%v", i, buf[i][0], buf[i][1])
		}
	}
}

// Test a linear ramp from silence to full gain
func TestGainStageLinearRamp(t *testing.T) {
	rate := beep.SampleRate(1000)
	g := newGainStage(&constStreamer{val: 1.0}, rate, 0)

	g.FadeTo(1.0, 100*time.Millisecond, easeLinear)

	buf := make([][2]float64, 128)
	n, ok := g.Stream(buf)
	if n != 128 || !ok {
		t.Fatalf("Expected full stream, got n=%d ok=%v", n, ok)
	}

	for i := 0; i < 100; i++ {
		want := float64(i) / 100
		if buf[i][0] != want {
			t.Fatalf("Expected gain %v at sample %d, got %v", want, i, buf[i][0])
		}
	}
	for i := 100; i < 128; i++ {
		if buf[i][0] != 1.0 {
			t.Fatalf("Expected full gain at sample %d, got %v", i, buf[i][0])
		}
	}

	if g.Level() != 1.0 {
		t.Errorf("Expected steady level 1.0 after ramp, got %v", g.Level())
	}
}

// Test that a new fade starts from the current mid-ramp level
func TestGainStageFadeRebase(t *testing.T) {
	rate := beep.SampleRate(1000)
	g := newGainStage(&constStreamer{val: 1.0}, rate, 0)

	g.FadeTo(1.0, 100*time.Millisecond, easeLinear)
	g.Stream(make([][2]float64, 50))

	if g.Level() != 0.5 {
		t.Fatalf("Expected mid-ramp level 0.5, got %v", g.Level())
	}

	g.FadeTo(0, 50*time.Millisecond, easeLinear)

	buf := make([][2]float64, 64)
	g.Stream(buf)

	if buf[0][0] != 0.5 {
		t.Errorf("Expected rebased start at 0.5, got %v", buf[0][0])
	}
	if buf[25][0] != 0.25 {
		t.Errorf("Expected 0.25 halfway down, got %v", buf[25][0])
	}
	for i := 50; i < 64; i++ {
		if buf[i][0] != 0 {
			t.Fatalf("Expected silence at sample %d, got %v", i, buf[i][0])
		}
	}
}

// Test curve shapes at their endpoints and midpoint
func TestGainStageCurveShapes(t *testing.T) {
	curves := []struct {
		name string
		fn   fadeCurve
		mid  float64
	}{
		{"linear", easeLinear, 0.5},
		{"inCubic", easeInCubic, 0.125},
		{"outCubic", easeOutCubic, 0.875},
	}
	for _, c := range curves {
		if got := c.fn(0); got != 0 {
			t.Errorf("Expected %s(0) = 0, got %v", c.name, got)
		}
		if got := c.fn(1); got != 1 {
			t.Errorf("Expected %s(1) = 1, got %v", c.name, got)
		}
		if got := c.fn(0.5); got != c.mid {
			t.Errorf("Expected %s(0.5) = %v, got %v", c.name, c.mid, got)
		}
	}
}

// Test the mute gate silencing output without losing the level
func TestGainStageSilentGate(t *testing.T) {
	g := newGainStage(&constStreamer{val: 1.0}, beep.SampleRate(1000), 0.8)

	g.SetSilent(true)
	buf := make([][2]float64, 32)
	g.Stream(buf)
	for i := range buf {
		if buf[i][0] != 0 || buf[i][1] != 0 {
			t.Fatalf("Expected silence while gated, got %v at sample %d", buf[i][0], i)
		}
	}

	g.SetSilent(false)
	g.Stream(buf)
	for i := range buf {
		if buf[i][0] != 0.8 {
			t.Fatalf("Expected level restored to 0.8, got %v at sample %d", buf[i][0], i)
		}
	}
}

// Test that a zero-duration fade takes effect immediately
func TestGainStageInstantFade(t *testing.T) {
	g := newGainStage(&constStreamer{val: 1.0}, beep.SampleRate(1000), 1.0)

	g.FadeTo(0.3, 0, easeLinear)

	if g.Level() != 0.3 {
		t.Errorf("Expected immediate level 0.3, got %v", g.Level())
	}

	buf := make([][2]float64, 16)
	g.Stream(buf)
	for i := range buf {
		if buf[i][0] != 0.3 {
			t.Fatalf("Expected 0.3 at sample %d, got %v", i, buf[i][0])
		}
	}
}
