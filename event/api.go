package event

import (
	"github.com/lixenwraith/filament/core"
)

// EmitNodeLifecycle performs a zero-allocation spawn/despawn notification
// Packs the entity into the payload to bypass heap allocation
func EmitNodeLifecycle(q *Queue, t EventType, id core.Entity, frame int64) {
	q.Push(Event{
		Type:    t,
		Payload: uint64(id),
		Frame:   frame,
	})
}

// UnpackEntity recovers the entity from a packed lifecycle payload
func UnpackEntity(payload any) (core.Entity, bool) {
	packed, ok := payload.(uint64)
	if !ok {
		return core.NullEntity, false
	}
	return core.Entity(packed), true
}

// EmitConnection publishes an established/broken transition
func EmitConnection(q *Queue, t EventType, director, target core.Entity, slot int, frame int64) {
	q.Push(Event{
		Type:    t,
		Payload: &ConnectionPayload{Director: director, Target: target, Slot: slot},
		Frame:   frame,
	})
}

// EmitParamSet routes one tunable assignment to the setter registry
func EmitParamSet(q *Queue, key, value string, frame int64) {
	q.Push(Event{
		Type:    EventParamSet,
		Payload: &ParamSetPayload{Key: key, Value: value},
		Frame:   frame,
	})
}

// EmitParamAdjust routes one relative tunable nudge to the setter registry
func EmitParamAdjust(q *Queue, key string, delta float64, frame int64) {
	q.Push(Event{
		Type:    EventParamAdjust,
		Payload: &ParamAdjustPayload{Key: key, Delta: delta},
		Frame:   frame,
	})
}
