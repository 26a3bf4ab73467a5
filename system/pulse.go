package system

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lixenwraith/filament/config"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// PulseSystem is the beat sequencer: it emits a pulse event on every
// beat of the configured tempo and nudges the node population toward
// its target by issuing spawn and despawn requests.
type PulseSystem struct {
	registry *config.Registry

	bpm      int
	interval time.Duration
	nextBeat time.Time
	beat     int

	autoSpawn bool
	targetPop int

	timeRes *engine.TimeResource
	rng     *vmath.FastRand
}

func NewPulseSystem(registry *config.Registry, bpm int, autoSpawn bool, targetPop int) *PulseSystem {
	return &PulseSystem{
		registry:  registry,
		bpm:       bpm,
		autoSpawn: autoSpawn,
		targetPop: targetPop,
	}
}

func (s *PulseSystem) Init(w *engine.World) error {
	if s.bpm < parameter.MinPulseBPM || s.bpm > parameter.MaxPulseBPM {
		return fmt.Errorf("pulse bpm must be in [%d,%d], got %d",
			parameter.MinPulseBPM, parameter.MaxPulseBPM, s.bpm)
	}
	s.interval = beatInterval(s.bpm)
	s.timeRes = engine.MustGetResource[*engine.TimeResource](w.Resources)
	s.rng = engine.MustGetResource[*engine.RandResource](w.Resources).Rand

	s.registry.RegisterAdjustable("pulse.bpm",
		func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("pulse.bpm: %w", err)
			}
			return s.setBPM(n)
		},
		func(delta float64) error {
			return s.setBPM(s.bpm + int(delta))
		})
	return nil
}

func (s *PulseSystem) Priority() int {
	return parameter.PriorityPulse
}

func (s *PulseSystem) Update(w *engine.World, dt time.Duration) {
	now := s.timeRes.SceneTime

	if s.nextBeat.IsZero() {
		s.nextBeat = now
	}

	// Scene time freezes under pause, so catch-up only covers stalls;
	// past a few beats, skip ahead instead of bursting
	if now.Sub(s.nextBeat) > 4*s.interval {
		s.nextBeat = now
	}

	for !now.Before(s.nextBeat) {
		s.fire(w)
		s.nextBeat = s.nextBeat.Add(s.interval)
	}
}

func (s *PulseSystem) fire(w *engine.World) {
	w.PushEvent(event.EventPulse, &event.PulsePayload{
		Beat:   s.beat,
		Accent: s.beat%4 == 0,
	})
	s.beat++

	pop := w.Nodes.Count()
	switch {
	case s.autoSpawn && pop < s.targetPop:
		if s.rng.Intn(100) < parameter.PulseSpawnChance {
			kind := event.NodeDrift
			if s.rng.Intn(100) < 25 {
				kind = event.NodeOrbit
			}
			w.PushEvent(event.EventSpawnRequest, &event.SpawnRequestPayload{Kind: kind})
		}

	case pop > s.targetPop:
		if s.rng.Intn(100) < parameter.PulseDespawnChance {
			w.PushEvent(event.EventDespawnRequest, &event.DespawnRequestPayload{Oldest: true})
		}
	}
}

// setBPM changes the tempo and realigns the next beat to the new
// cadence
func (s *PulseSystem) setBPM(bpm int) error {
	if bpm < parameter.MinPulseBPM || bpm > parameter.MaxPulseBPM {
		return fmt.Errorf("pulse bpm must be in [%d,%d], got %d",
			parameter.MinPulseBPM, parameter.MaxPulseBPM, bpm)
	}
	s.bpm = bpm
	s.interval = beatInterval(bpm)
	if s.timeRes != nil && !s.nextBeat.IsZero() {
		s.nextBeat = s.timeRes.SceneTime.Add(s.interval)
	}
	return nil
}

// BPM returns the current tempo
func (s *PulseSystem) BPM() int {
	return s.bpm
}

func beatInterval(bpm int) time.Duration {
	return time.Duration(int64(time.Minute) / int64(bpm))
}
