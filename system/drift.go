package system

import (
	"time"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// DriftSystem moves wandering nodes: a bounded-speed random walk with
// periodic heading changes and soft reflection off the volume walls
type DriftSystem struct {
	timeRes *engine.TimeResource
	scene   *engine.SceneResource
	rng     *vmath.FastRand
}

func NewDriftSystem() *DriftSystem {
	return &DriftSystem{}
}

func (s *DriftSystem) Init(w *engine.World) error {
	s.timeRes = engine.MustGetResource[*engine.TimeResource](w.Resources)
	s.scene = engine.MustGetResource[*engine.SceneResource](w.Resources)
	s.rng = engine.MustGetResource[*engine.RandResource](w.Resources).Rand
	return nil
}

func (s *DriftSystem) Priority() int {
	return parameter.PriorityDrift
}

func (s *DriftSystem) Update(w *engine.World, dt time.Duration) {
	now := s.timeRes.SceneTime
	step := dt.Seconds()

	for _, e := range w.Drifts.All() {
		d, ok := w.Drifts.Get(e)
		if !ok {
			continue
		}
		p, ok := w.Positions.Get(e)
		if !ok {
			continue
		}

		if now.After(d.NextTurn) {
			speed := vmath.ToFloat(s.rng.FixedRange(
				vmath.FromFloat(parameter.DriftSpeedMin),
				vmath.FromFloat(parameter.DriftSpeedMax)))
			d.Vel = vmath.V3FScale(randUnit(s.rng), speed)
			d.NextTurn = now.Add(wanderInterval(s.rng))
		}

		pf := vmath.V3ToFloat(p.Pos)
		d.Vel = steerFromWalls(pf, d.Vel, s.scene)
		pf = vmath.V3FAdd(pf, vmath.V3FScale(d.Vel, step))

		q := vmath.V3ClampBox(vmath.V3FToQ32(pf), s.volumeMin(), s.volumeMax())
		w.Positions.Set(e, component.Position{Pos: q})
		w.Drifts.Set(e, d)
	}
}

func (s *DriftSystem) volumeMin() vmath.Vec3 {
	m := vmath.FromFloat(0.5)
	return vmath.Vec3{X: m, Y: m, Z: m}
}

func (s *DriftSystem) volumeMax() vmath.Vec3 {
	return vmath.Vec3{
		X: vmath.FromFloat(float64(s.scene.Width) - 0.5),
		Y: vmath.FromFloat(float64(s.scene.Height) - 0.5),
		Z: vmath.FromFloat(float64(s.scene.Depth) - 0.5),
	}
}

// steerFromWalls flips any velocity component carrying the node deeper
// into a wall margin
func steerFromWalls(pos, vel vmath.Vec3F, scene *engine.SceneResource) vmath.Vec3F {
	vel.X = steerAxis(pos.X, vel.X, float64(scene.Width))
	vel.Y = steerAxis(pos.Y, vel.Y, float64(scene.Height))
	vel.Z = steerAxis(pos.Z, vel.Z, float64(scene.Depth))
	return vel
}

func steerAxis(p, v, dim float64) float64 {
	if p < parameter.WallMargin && v < 0 {
		return -v
	}
	if p > dim-parameter.WallMargin && v > 0 {
		return -v
	}
	return v
}
