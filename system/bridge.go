package system

import (
	"time"

	"github.com/lixenwraith/filament/bridge"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/parameter"
)

// BridgeSystem mirrors installation events to remote bridge sessions
type BridgeSystem struct {
	server *bridge.Server
}

func NewBridgeSystem(server *bridge.Server) *BridgeSystem {
	return &BridgeSystem{server: server}
}

func (s *BridgeSystem) Init(w *engine.World) error {
	return nil
}

func (s *BridgeSystem) Priority() int {
	return parameter.PriorityBridge
}

func (s *BridgeSystem) Update(w *engine.World, dt time.Duration) {}

func (s *BridgeSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventConnectionEstablished,
		event.EventConnectionBroken,
		event.EventNodeSpawned,
		event.EventNodeDespawned,
		event.EventPulse,
	}
}

func (s *BridgeSystem) HandleEvent(w *engine.World, ev event.Event) {
	if s.server == nil || !s.server.IsRunning() {
		return
	}

	switch ev.Type {
	case event.EventConnectionEstablished, event.EventConnectionBroken:
		p, ok := ev.Payload.(*event.ConnectionPayload)
		if !ok {
			return
		}
		name := bridge.EventEstablished
		if ev.Type == event.EventConnectionBroken {
			name = bridge.EventBroken
		}
		s.server.Broadcast(bridge.Notification{
			Event:  name,
			Hub:    uint64(p.Director),
			Target: uint64(p.Target),
			Slot:   p.Slot,
		})

	case event.EventNodeSpawned, event.EventNodeDespawned:
		e, ok := event.UnpackEntity(ev.Payload)
		if !ok {
			return
		}
		name := bridge.EventSpawned
		if ev.Type == event.EventNodeDespawned {
			name = bridge.EventDespawned
		}
		s.server.Broadcast(bridge.Notification{Event: name, Node: uint64(e)})

	case event.EventPulse:
		p, ok := ev.Payload.(*event.PulsePayload)
		if !ok {
			return
		}
		s.server.Broadcast(bridge.Notification{
			Event:  bridge.EventBeat,
			Beat:   p.Beat,
			Accent: p.Accent,
		})
	}
}
