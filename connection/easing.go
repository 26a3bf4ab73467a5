package connection

import (
	"fmt"
	"sort"
)

// Key is one control point of an easing curve
type Key struct {
	T float64 // Normalized time [0,1]
	V float64 // Value at T
}

// Curve is a piecewise-linear easing curve sampled against normalized time
// Replaces suspension-based timed animation: callers hold a start time and
// a duration and sample elapsed/duration each tick
type Curve struct {
	keys []Key
}

// NewCurve builds a curve from control points
// Rejects definitions with fewer than two keys; keys are sorted by T and
// clamped into [0,1]
func NewCurve(keys []Key) (Curve, error) {
	if len(keys) < 2 {
		return Curve{}, fmt.Errorf("easing curve needs at least 2 keys, got %d", len(keys))
	}

	ks := make([]Key, len(keys))
	copy(ks, keys)
	for i := range ks {
		if ks[i].T < 0 {
			ks[i].T = 0
		}
		if ks[i].T > 1 {
			ks[i].T = 1
		}
	}
	sort.SliceStable(ks, func(a, b int) bool { return ks[a].T < ks[b].T })

	return Curve{keys: ks}, nil
}

// Valid reports whether the curve carries enough keys to sample
func (c Curve) Valid() bool {
	return len(c.keys) >= 2
}

// Sample evaluates the curve at t, clamping t into [0,1]
// Sample(1) is the curve's resting value after the animation window expires
func (c Curve) Sample(t float64) float64 {
	if len(c.keys) == 0 {
		return 0
	}
	if t <= c.keys[0].T {
		return c.keys[0].V
	}
	last := len(c.keys) - 1
	if t >= c.keys[last].T {
		return c.keys[last].V
	}

	for i := 0; i < last; i++ {
		a, b := c.keys[i], c.keys[i+1]
		if t > b.T {
			continue
		}
		span := b.T - a.T
		if span <= 0 {
			return b.V
		}
		f := (t - a.T) / span
		return a.V + (b.V-a.V)*f
	}
	return c.keys[last].V
}

// Preset emission curves, selectable by name in config

// CurvePulse spikes past full intensity then settles to a glow
func CurvePulse() Curve {
	c, _ := NewCurve([]Key{
		{T: 0.0, V: 0.0},
		{T: 0.15, V: 1.0},
		{T: 0.45, V: 0.55},
		{T: 1.0, V: 0.7},
	})
	return c
}

// CurveRise ramps linearly from dark to full
func CurveRise() Curve {
	c, _ := NewCurve([]Key{
		{T: 0.0, V: 0.0},
		{T: 1.0, V: 1.0},
	})
	return c
}

// CurvePlateau ramps up quickly and holds
func CurvePlateau() Curve {
	c, _ := NewCurve([]Key{
		{T: 0.0, V: 0.0},
		{T: 0.25, V: 1.0},
		{T: 1.0, V: 1.0},
	})
	return c
}

// CurveByName resolves a config curve name
func CurveByName(name string) (Curve, error) {
	switch name {
	case "pulse":
		return CurvePulse(), nil
	case "rise":
		return CurveRise(), nil
	case "plateau":
		return CurvePlateau(), nil
	default:
		return Curve{}, fmt.Errorf("unknown emission curve %q", name)
	}
}
