package renderers

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/render"
	"github.com/lixenwraith/filament/vmath"
)

const (
	testWidth  = 64
	testHeight = 40
	testDepth  = 32
)

// testEnv is a resourced world on a fabricated clock, mirroring what
// the bootstrap wires before the first frame
type testEnv struct {
	world  *engine.World
	time   *engine.TimeResource
	scene  *engine.SceneResource
	status *engine.StatusResource
}

func newTestEnv(seed uint64) *testEnv {
	w := engine.NewWorld(testWidth, testHeight, testDepth)

	tr := &engine.TimeResource{}
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tr.Update(start, start, 16*time.Millisecond, 0)

	scene := &engine.SceneResource{Width: testWidth, Height: testHeight, Depth: testDepth}
	status := &engine.StatusResource{}

	engine.AddResource(w.Resources, tr)
	engine.AddResource(w.Resources, scene)
	engine.AddResource(w.Resources, &engine.RandResource{Rand: vmath.NewFastRand(seed)})
	engine.AddResource(w.Resources, status)

	w.SetEventMetadata(event.NewQueue(), &atomic.Int64{})

	return &testEnv{world: w, time: tr, scene: scene, status: status}
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

// context builds the frame context the render loop would pass
func (env *testEnv) context(screenW, screenH int, paused, muted bool) render.Context {
	return render.NewContext(env.scene, env.time, screenW, screenH, paused, muted)
}

// addNode places a bare tagged node, bypassing the spawner
func (env *testEnv) addNode(x, y, z float64, tag string) core.Entity {
	e := env.world.CreateEntity()
	env.world.Positions.Set(e, component.Position{Pos: vmath.V3FToQ32(vmath.Vec3F{X: x, Y: y, Z: z})})
	env.world.Nodes.Set(e, component.Node{Tag: tag, Seq: uint64(e), BornAt: env.time.SceneTime})
	return e
}

// addHub places a hub entity ready for director adoption
func (env *testEnv) addHub(x, y, z float64) core.Entity {
	e := env.world.CreateEntity()
	env.world.Positions.Set(e, component.Position{Pos: vmath.V3FToQ32(vmath.Vec3F{X: x, Y: y, Z: z})})
	env.world.Hubs.Set(e, component.Hub{Label: "hub"})
	return e
}

// rowString collects the runes of one buffer row
func rowString(buf *render.Buffer, y, width int) string {
	out := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		r := buf.CellAt(x, y).Rune
		if r == 0 {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
