package input

import (
	"sync/atomic"

	"github.com/lixenwraith/filament/event"
)

// Action is work the caller must do itself after an intent is applied
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionPauseToggle
	ActionResize
)

// Router applies Intents. Population and parameter intents become
// queued events for the simulation loop; control intents that must
// keep working while the scheduler is paused or stopped surface as
// Actions for the caller
type Router struct {
	events *event.Queue
	tick   *atomic.Int64
}

// NewRouter creates a router pushing onto the given queue, stamping
// events with the tick counter when one is provided
func NewRouter(events *event.Queue, tick *atomic.Int64) *Router {
	return &Router{events: events, tick: tick}
}

// Apply routes one intent. Nil intents are ignored
func (r *Router) Apply(it *Intent) Action {
	if it == nil {
		return ActionNone
	}

	switch it.Type {
	case IntentQuit:
		return ActionQuit
	case IntentPauseToggle:
		return ActionPauseToggle
	case IntentResize:
		return ActionResize

	case IntentMuteToggle:
		r.push(event.EventMuteToggle, nil)

	case IntentSpawnDrift:
		r.push(event.EventSpawnRequest, &event.SpawnRequestPayload{Kind: event.NodeDrift})

	case IntentSpawnOrbit:
		r.push(event.EventSpawnRequest, &event.SpawnRequestPayload{Kind: event.NodeOrbit})

	case IntentDespawnOldest:
		r.push(event.EventDespawnRequest, &event.DespawnRequestPayload{Oldest: true})

	case IntentPulseTrigger:
		r.push(event.EventPulse, &event.PulsePayload{Accent: true})

	case IntentParamSet:
		r.push(event.EventParamSet, &event.ParamSetPayload{Key: it.Key, Value: it.Value})

	case IntentParamAdjust:
		r.push(event.EventParamAdjust, &event.ParamAdjustPayload{Key: it.Key, Delta: it.Delta})
	}
	return ActionNone
}

func (r *Router) push(t event.EventType, payload any) {
	var frame int64
	if r.tick != nil {
		frame = r.tick.Load()
	}
	r.events.Push(event.Event{Type: t, Payload: payload, Frame: frame})
}
