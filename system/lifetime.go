package system

import (
	"time"

	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/parameter"
)

// LifetimeSystem sweeps expired entities into despawn requests, so
// retirement always flows through the spawner's single removal path
type LifetimeSystem struct {
	timeRes *engine.TimeResource
}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Init(w *engine.World) error {
	s.timeRes = engine.MustGetResource[*engine.TimeResource](w.Resources)
	return nil
}

func (s *LifetimeSystem) Priority() int {
	return parameter.PriorityLifetime
}

func (s *LifetimeSystem) Update(w *engine.World, dt time.Duration) {
	now := s.timeRes.SceneTime

	for _, e := range w.Lifetimes.All() {
		lt, ok := w.Lifetimes.Get(e)
		if !ok {
			continue
		}
		if now.After(lt.ExpiresAt) {
			w.PushEvent(event.EventDespawnRequest, &event.DespawnRequestPayload{Entity: e})
		}
	}
}
