package system

import (
	"testing"

	"github.com/lixenwraith/filament/config"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/event"
)

// stubPlayer records every voice trigger for assertions
type stubPlayer struct {
	played  []core.SoundType
	muted   bool
	running bool
	volume  float64
}

func (p *stubPlayer) Play(s core.SoundType) bool {
	p.played = append(p.played, s)
	return true
}

func (p *stubPlayer) ToggleMute() bool {
	p.muted = !p.muted
	return p.muted
}

func (p *stubPlayer) IsMuted() bool   { return p.muted }
func (p *stubPlayer) IsRunning() bool { return p.running }

func (p *stubPlayer) SetVolume(v float64) error {
	p.volume = v
	return nil
}

func newAudio(t *testing.T, env *testEnv, player engine.AudioPlayer) (*AudioSystem, *config.Registry) {
	t.Helper()
	if player != nil {
		engine.AddResource(env.world.Resources, &engine.AudioResource{Player: player})
	}
	reg := config.NewRegistry()
	s := NewAudioSystem(reg)
	if err := s.Init(env.world); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s, reg
}

// Test each installation event triggers its voice
func TestAudioVoiceMapping(t *testing.T) {
	env := newTestEnv(1)
	player := &stubPlayer{running: true}
	s, _ := newAudio(t, env, player)

	s.HandleEvent(env.world, event.Event{Type: event.EventConnectionEstablished, Payload: &event.ConnectionPayload{}})
	s.HandleEvent(env.world, event.Event{Type: event.EventConnectionBroken, Payload: &event.ConnectionPayload{}})
	s.HandleEvent(env.world, event.Event{Type: event.EventNodeSpawned, Payload: uint64(3)})
	s.HandleEvent(env.world, event.Event{Type: event.EventNodeDespawned, Payload: uint64(3)})
	s.HandleEvent(env.world, event.Event{Type: event.EventPulse, Payload: &event.PulsePayload{Beat: 4, Accent: true}})
	s.HandleEvent(env.world, event.Event{Type: event.EventPulse, Payload: &event.PulsePayload{Beat: 5}})

	want := []core.SoundType{
		core.SoundChime,
		core.SoundTick,
		core.SoundBlip,
		core.SoundFade,
		core.SoundAccent,
		core.SoundBeat,
	}
	if len(player.played) != len(want) {
		t.Fatalf("Expected %d voices, got %d", len(want), len(player.played))
	}
	for i, snd := range want {
		if player.played[i] != snd {
			t.Errorf("Expected voice %v at %d, got %v", snd, i, player.played[i])
		}
	}
}

// Test a stopped engine drops every trigger
func TestAudioSilentWhenStopped(t *testing.T) {
	env := newTestEnv(2)
	player := &stubPlayer{running: false}
	s, _ := newAudio(t, env, player)

	s.HandleEvent(env.world, event.Event{Type: event.EventNodeSpawned, Payload: uint64(1)})
	s.HandleEvent(env.world, event.Event{Type: event.EventMuteToggle})

	if len(player.played) != 0 {
		t.Errorf("Expected no voices from a stopped engine, got %d", len(player.played))
	}
	if player.muted {
		t.Error("Expected mute untouched on a stopped engine")
	}
}

// Test the system is inert with audio disabled entirely
func TestAudioDisabled(t *testing.T) {
	env := newTestEnv(3)
	s, reg := newAudio(t, env, nil)

	s.HandleEvent(env.world, event.Event{Type: event.EventNodeSpawned, Payload: uint64(1)})

	if err := reg.Apply("audio.volume", "0.5"); err == nil {
		t.Error("Expected the volume setter to reject with audio disabled")
	}
}

// Test the volume binding parses and forwards
func TestAudioVolumeBinding(t *testing.T) {
	env := newTestEnv(4)
	player := &stubPlayer{running: true}
	_, reg := newAudio(t, env, player)

	if err := reg.Apply("audio.volume", "0.7"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if player.volume != 0.7 {
		t.Errorf("Expected volume 0.7, got %v", player.volume)
	}
	if err := reg.Apply("audio.volume", "loud"); err == nil {
		t.Error("Expected a parse error")
	}
}

// Test mute toggling posts the state change
func TestAudioMuteStatus(t *testing.T) {
	env := newTestEnv(5)
	player := &stubPlayer{running: true}
	s, _ := newAudio(t, env, player)

	s.HandleEvent(env.world, event.Event{Type: event.EventMuteToggle})
	if !player.muted {
		t.Error("Expected the player muted")
	}
	if msg := env.status.Current(env.time.RealTime); msg != "muted" {
		t.Errorf("Expected status %q, got %q", "muted", msg)
	}

	s.HandleEvent(env.world, event.Event{Type: event.EventMuteToggle})
	if player.muted {
		t.Error("Expected the player unmuted")
	}
	if msg := env.status.Current(env.time.RealTime); msg != "sound on" {
		t.Errorf("Expected status %q, got %q", "sound on", msg)
	}
}
