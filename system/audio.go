package system

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lixenwraith/filament/config"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/parameter"
)

// AudioSystem translates installation events into synth voices. It
// never blocks: a saturated mixer drops the sound.
type AudioSystem struct {
	registry *config.Registry

	player  engine.AudioPlayer
	timeRes *engine.TimeResource
	status  *engine.StatusResource
}

func NewAudioSystem(registry *config.Registry) *AudioSystem {
	return &AudioSystem{
		registry: registry,
	}
}

func (s *AudioSystem) Init(w *engine.World) error {
	s.timeRes = engine.MustGetResource[*engine.TimeResource](w.Resources)
	s.status, _ = engine.GetResource[*engine.StatusResource](w.Resources)
	if res, ok := engine.GetResource[*engine.AudioResource](w.Resources); ok {
		s.player = res.Player
	}

	s.registry.Register("audio.volume", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("audio.volume: %w", err)
		}
		if s.player == nil {
			return fmt.Errorf("audio is disabled")
		}
		return s.player.SetVolume(f)
	})
	return nil
}

func (s *AudioSystem) Priority() int {
	return parameter.PriorityAudio
}

func (s *AudioSystem) Update(w *engine.World, dt time.Duration) {}

func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventConnectionEstablished,
		event.EventConnectionBroken,
		event.EventNodeSpawned,
		event.EventNodeDespawned,
		event.EventPulse,
		event.EventMuteToggle,
	}
}

func (s *AudioSystem) HandleEvent(w *engine.World, ev event.Event) {
	if s.player == nil || !s.player.IsRunning() {
		return
	}

	switch ev.Type {
	case event.EventConnectionEstablished:
		s.player.Play(core.SoundChime)

	case event.EventConnectionBroken:
		s.player.Play(core.SoundTick)

	case event.EventNodeSpawned:
		s.player.Play(core.SoundBlip)

	case event.EventNodeDespawned:
		s.player.Play(core.SoundFade)

	case event.EventPulse:
		if p, ok := ev.Payload.(*event.PulsePayload); ok && p.Accent {
			s.player.Play(core.SoundAccent)
		} else {
			s.player.Play(core.SoundBeat)
		}

	case event.EventMuteToggle:
		muted := s.player.ToggleMute()
		if s.status != nil {
			text := "sound on"
			if muted {
				text = "muted"
			}
			s.status.Post(text, s.timeRes.RealTime.Add(parameter.StatusMessageDuration))
		}
	}
}
