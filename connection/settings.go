package connection

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/lixenwraith/filament/parameter"
)

// Runtime setters. Every setter validates its argument against the
// same rules as NewDirector and, on rejection, returns an error while
// the previous value stays in force. All are control-goroutine only,
// like Tick.

// SetScanRadius changes the detection radius. Takes effect on the next
// scan pass; targets already active but now out of range are released
// by that pass.
func (d *Director) SetScanRadius(r float64) error {
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return fmt.Errorf("scan radius must be positive, got %v", r)
	}
	d.cfg.ScanRadius = r
	return nil
}

// SetScanInterval changes the scan cadence
func (d *Director) SetScanInterval(iv time.Duration) error {
	if iv <= 0 {
		return fmt.Errorf("scan interval must be positive, got %v", iv)
	}
	d.cfg.ScanInterval = iv
	return nil
}

// SetTag changes the eligibility tag. Active targets carrying the old
// tag fail the next scan's filter and drain out through the removal
// queue.
func (d *Director) SetTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag filter must not be empty")
	}
	d.cfg.Tag = tag
	return nil
}

// SetMaxConnections resizes capacity. Growth takes effect immediately;
// shrinking queues the highest slots for removal so they leave through
// the normal eviction path, notifications included.
func (d *Director) SetMaxConnections(n int) error {
	if n < 1 || n > parameter.MaxConnectionsLimit {
		return fmt.Errorf("max connections must be in [1,%d], got %d", parameter.MaxConnectionsLimit, n)
	}
	if n < d.state.active {
		for i := n; i < d.state.active; i++ {
			d.pendingRemove.push(d.state.targets[i])
		}
	}
	if n > d.state.max {
		d.state.resize(n, d.state.segments)
	}
	d.cfg.MaxConnections = n
	return nil
}

// SetTimeBetweenConnections changes the pacing interval. The limiter is
// rebuilt, so one transition may fire immediately after the change.
func (d *Director) SetTimeBetweenConnections(iv time.Duration) error {
	if iv <= 0 {
		return fmt.Errorf("time between connections must be positive, got %v", iv)
	}
	d.cfg.TimeBetweenConnections = iv
	d.limiter = rate.NewLimiter(rate.Every(iv), 1)
	return nil
}

// SetSequential switches between paced and immediate admission. The
// queued backlog carries over; an immediate step drains it on the next
// tick.
func (d *Director) SetSequential(v bool) error {
	d.cfg.Sequential = v
	return nil
}

// SetRandomizeOrder toggles per-pass shuffling of newly discovered
// targets
func (d *Director) SetRandomizeOrder(v bool) error {
	d.cfg.RandomizeOrder = v
	return nil
}

// SetSegments changes polyline resolution. Existing slots survive; their
// polylines are recomputed at the new resolution on the next tick.
func (d *Director) SetSegments(n int) error {
	if n < 2 || n > parameter.MaxCurveSegments {
		return fmt.Errorf("segments must be in [2,%d], got %d", parameter.MaxCurveSegments, n)
	}
	if n != d.state.segments {
		d.state.resize(d.state.max, n)
	}
	d.cfg.Segments = n
	return nil
}

// SetCurvature changes bow depth. Sign flips the bow to the other side
// of the chord for every connection at once.
func (d *Director) SetCurvature(c float64) error {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return fmt.Errorf("curvature must be finite, got %v", c)
	}
	d.cfg.Curvature = c
	return nil
}

// SetTrimMode switches between fractional and fixed-distance endpoint
// trimming
func (d *Director) SetTrimMode(m TrimMode) error {
	if m != TrimPercent && m != TrimDistance {
		return fmt.Errorf("unknown trim mode %d", m)
	}
	d.cfg.TrimMode = m
	return nil
}

// SetSourceTrim changes the trim applied at the scanning end
func (d *Director) SetSourceTrim(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("source trim must be non-negative, got %v", v)
	}
	d.cfg.SourceTrim = v
	return nil
}

// SetTargetTrim changes the trim applied at the target end
func (d *Director) SetTargetTrim(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("target trim must be non-negative, got %v", v)
	}
	d.cfg.TargetTrim = v
	return nil
}

// SetEmissionDuration changes how long the establishment flare runs.
// Slots mid-flare resample against the new duration.
func (d *Director) SetEmissionDuration(dur time.Duration) error {
	if dur <= 0 {
		return fmt.Errorf("emission duration must be positive, got %v", dur)
	}
	d.cfg.EmissionDuration = dur
	return nil
}

// SetEmissionIntensity scales the flare amplitude
func (d *Director) SetEmissionIntensity(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("emission intensity must be non-negative, got %v", v)
	}
	d.cfg.EmissionIntensity = v
	return nil
}

// SetEmissionCurve replaces the flare envelope
func (d *Director) SetEmissionCurve(c Curve) error {
	if !c.Valid() {
		return fmt.Errorf("emission curve needs at least 2 keys")
	}
	d.cfg.EmissionCurve = c
	return nil
}
