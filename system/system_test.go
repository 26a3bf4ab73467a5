package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/vmath"
)

const (
	testWidth  = 64
	testHeight = 40
	testDepth  = 32
)

// testEnv is a fully resourced world on a fabricated clock. Tests move
// time with advance, so systems never see the wall clock and every run
// is reproducible.
type testEnv struct {
	world  *engine.World
	time   *engine.TimeResource
	queue  *event.Queue
	status *engine.StatusResource

	seq uint64
}

func newTestEnv(seed uint64) *testEnv {
	w := engine.NewWorld(testWidth, testHeight, testDepth)

	tr := &engine.TimeResource{}
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tr.Update(start, start, 16*time.Millisecond, 0)

	status := &engine.StatusResource{}

	engine.AddResource(w.Resources, tr)
	engine.AddResource(w.Resources, &engine.SceneResource{Width: testWidth, Height: testHeight, Depth: testDepth})
	engine.AddResource(w.Resources, &engine.RandResource{Rand: vmath.NewFastRand(seed)})
	engine.AddResource(w.Resources, status)

	q := event.NewQueue()
	w.SetEventMetadata(q, &atomic.Int64{})

	return &testEnv{world: w, time: tr, queue: q, status: status}
}

// advance moves scene and real time forward together
func (env *testEnv) advance(dt time.Duration) {
	env.time.Update(
		env.time.SceneTime.Add(dt),
		env.time.RealTime.Add(dt),
		dt,
		env.time.Tick+1,
	)
}

// drain empties the event queue
func (env *testEnv) drain() []event.Event {
	return env.queue.Consume()
}

func filterType(events []event.Event, t event.EventType) []event.Event {
	var out []event.Event
	for _, ev := range events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// addNode places a bare tagged node, bypassing the spawner
func (env *testEnv) addNode(x, y, z float64, tag string) core.Entity {
	e := env.world.CreateEntity()
	env.seq++
	env.world.Positions.Set(e, component.Position{Pos: vmath.V3FToQ32(vmath.Vec3F{X: x, Y: y, Z: z})})
	env.world.Nodes.Set(e, component.Node{Tag: tag, Seq: env.seq, BornAt: env.time.SceneTime})
	return e
}

// addHub places a hub entity ready for director adoption
func (env *testEnv) addHub(x, y, z float64) core.Entity {
	e := env.world.CreateEntity()
	env.world.Positions.Set(e, component.Position{Pos: vmath.V3FToQ32(vmath.Vec3F{X: x, Y: y, Z: z})})
	env.world.Hubs.Set(e, component.Hub{Label: "hub"})
	return e
}

func spawnEvent(p *event.SpawnRequestPayload) event.Event {
	return event.Event{Type: event.EventSpawnRequest, Payload: p}
}

func despawnEvent(p *event.DespawnRequestPayload) event.Event {
	return event.Event{Type: event.EventDespawnRequest, Payload: p}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
