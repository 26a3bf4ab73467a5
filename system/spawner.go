package system

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// Node appearance per kind
var (
	driftFrames    = []rune{'o', 'c', 'u', 'c'}
	orbitFrames    = []rune{'O', 'C', 'U', 'C'}
	playheadFrames = []rune{'@', '0', 'Q', '0'}
)

const (
	driftColor    = tcell.ColorAqua
	orbitColor    = tcell.ColorMediumPurple
	playheadColor = tcell.ColorYellow
)

// SpawnerSystem creates and retires nodes on request events. It is the
// single owner of node entity assembly, so every spawn source
// (keyboard, sequencer, bridge) produces identically shaped entities.
type SpawnerSystem struct {
	maxNodes int
	ttl      time.Duration

	seq uint64

	timeRes *engine.TimeResource
	scene   *engine.SceneResource
	status  *engine.StatusResource
	rng     *vmath.FastRand
}

func NewSpawnerSystem(maxNodes int, ttl time.Duration) *SpawnerSystem {
	return &SpawnerSystem{
		maxNodes: maxNodes,
		ttl:      ttl,
	}
}

func (s *SpawnerSystem) Init(w *engine.World) error {
	s.timeRes = engine.MustGetResource[*engine.TimeResource](w.Resources)
	s.scene = engine.MustGetResource[*engine.SceneResource](w.Resources)
	s.rng = engine.MustGetResource[*engine.RandResource](w.Resources).Rand
	s.status, _ = engine.GetResource[*engine.StatusResource](w.Resources)
	return nil
}

func (s *SpawnerSystem) Priority() int {
	return parameter.PrioritySpawner
}

func (s *SpawnerSystem) Update(w *engine.World, dt time.Duration) {}

func (s *SpawnerSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSpawnRequest,
		event.EventDespawnRequest,
	}
}

func (s *SpawnerSystem) HandleEvent(w *engine.World, ev event.Event) {
	switch ev.Type {
	case event.EventSpawnRequest:
		if p, ok := ev.Payload.(*event.SpawnRequestPayload); ok {
			s.spawn(w, p)
		}

	case event.EventDespawnRequest:
		if p, ok := ev.Payload.(*event.DespawnRequestPayload); ok {
			s.despawn(w, p)
		}
	}
}

func (s *SpawnerSystem) spawn(w *engine.World, p *event.SpawnRequestPayload) {
	count := p.Count
	if count < 1 {
		count = 1
	}

	for i := 0; i < count; i++ {
		if w.Nodes.Count() >= s.maxNodes {
			if s.status != nil {
				s.status.Post("node limit reached", s.timeRes.RealTime.Add(parameter.StatusMessageDuration))
			}
			return
		}
		s.spawnOne(w, p)
	}
}

func (s *SpawnerSystem) spawnOne(w *engine.World, p *event.SpawnRequestPayload) {
	now := s.timeRes.SceneTime

	pos := p.Pos
	if !p.HasPos {
		pos = s.randomPos()
	}

	tag := p.Tag
	if tag == "" {
		tag = parameter.DefaultScanTag
	}

	e := w.CreateEntity()
	w.Positions.Set(e, component.Position{Pos: pos})
	s.seq++
	w.Nodes.Set(e, component.Node{Tag: tag, Seq: s.seq, BornAt: now})
	w.Lifetimes.Set(e, component.Lifetime{ExpiresAt: now.Add(s.ttl)})
	w.Spins.Set(e, component.Spin{
		Frames: framesFor(p.Kind),
		Phase:  s.rng.Fixed(),
		Rate:   vmath.FromFloat(parameter.SpinTurnsPerSecond),
	})

	switch p.Kind {
	case event.NodeOrbit, event.NodePlayhead:
		s.attachOrbit(w, e, pos, p.Kind)
	default:
		s.attachDrift(w, e)
	}

	w.Glyphs.Set(e, component.Glyph{Rune: framesFor(p.Kind)[0], Color: colorFor(p.Kind)})

	w.PushEvent(event.EventNodeSpawned, uint64(e))
}

func (s *SpawnerSystem) attachDrift(w *engine.World, e core.Entity) {
	speed := vmath.ToFloat(s.rng.FixedRange(
		vmath.FromFloat(parameter.DriftSpeedMin),
		vmath.FromFloat(parameter.DriftSpeedMax)))

	w.Drifts.Set(e, component.Drift{
		Vel:      vmath.V3FScale(randUnit(s.rng), speed),
		NextTurn: s.timeRes.SceneTime.Add(wanderInterval(s.rng)),
	})
}

func (s *SpawnerSystem) attachOrbit(w *engine.World, e core.Entity, pos vmath.Vec3, kind event.NodeKind) {
	short := s.scene.Width
	if s.scene.Depth < short {
		short = s.scene.Depth
	}

	angVel := vmath.ToFloat(s.rng.FixedRange(
		vmath.FromFloat(parameter.OrbitTurnsPerSecondMin),
		vmath.FromFloat(parameter.OrbitTurnsPerSecondMax)))
	if kind == event.NodePlayhead {
		angVel = parameter.PlayheadTurnsPerSecond
	}

	o := component.Orbit{
		Center: s.scene.Center(),
		Radius: vmath.FromFloat(float64(short) * parameter.OrbitRadiusFactor),
		Angle:  s.rng.Fixed(),
		AngVel: vmath.FromFloat(angVel),
	}
	w.Orbits.Set(e, o)

	// Place on the ring immediately so the node does not jump on its
	// first motion tick
	w.Positions.Set(e, component.Position{Pos: orbitPos(o)})
}

func (s *SpawnerSystem) despawn(w *engine.World, p *event.DespawnRequestPayload) {
	target := p.Entity

	if target == core.NullEntity && p.Oldest {
		target = s.oldestNode(w)
	}
	if target == core.NullEntity {
		return
	}
	// A request can outlive its node by a tick; silently skip
	if !w.Nodes.Has(target) {
		return
	}

	w.DestroyEntity(target)
	w.PushEvent(event.EventNodeDespawned, uint64(target))
}

func (s *SpawnerSystem) oldestNode(w *engine.World) core.Entity {
	oldest := core.NullEntity
	var minSeq uint64
	for _, e := range w.Nodes.All() {
		n, ok := w.Nodes.Get(e)
		if !ok {
			continue
		}
		if oldest == core.NullEntity || n.Seq < minSeq {
			oldest = e
			minSeq = n.Seq
		}
	}
	return oldest
}

func (s *SpawnerSystem) randomPos() vmath.Vec3 {
	return vmath.Vec3{
		X: s.randomAxis(s.scene.Width),
		Y: s.randomAxis(s.scene.Height),
		Z: s.randomAxis(s.scene.Depth),
	}
}

func (s *SpawnerSystem) randomAxis(dim int) int64 {
	lo := vmath.FromFloat(parameter.WallMargin)
	hi := vmath.FromFloat(float64(dim) - parameter.WallMargin)
	if hi <= lo {
		return vmath.FromInt(dim) / 2
	}
	return s.rng.FixedRange(lo, hi)
}

// randUnit draws a uniform direction by rejection-sampling the unit
// ball
func randUnit(rng *vmath.FastRand) vmath.Vec3F {
	for {
		v := vmath.Vec3F{
			X: vmath.ToFloat(rng.Fixed())*2 - 1,
			Y: vmath.ToFloat(rng.Fixed())*2 - 1,
			Z: vmath.ToFloat(rng.Fixed())*2 - 1,
		}
		if m := vmath.V3FMagSq(v); m > 0.01 && m <= 1.0 {
			return vmath.V3FNormalize(v)
		}
	}
}

func wanderInterval(rng *vmath.FastRand) time.Duration {
	jitter := time.Duration(vmath.ToFloat(rng.Fixed()) * float64(time.Second))
	return parameter.DriftWanderInterval + jitter
}

func framesFor(kind event.NodeKind) []rune {
	switch kind {
	case event.NodeOrbit:
		return orbitFrames
	case event.NodePlayhead:
		return playheadFrames
	default:
		return driftFrames
	}
}

func colorFor(kind event.NodeKind) tcell.Color {
	switch kind {
	case event.NodeOrbit:
		return orbitColor
	case event.NodePlayhead:
		return playheadColor
	default:
		return driftColor
	}
}

// orbitPos evaluates the ring position for the orbit's current angle
func orbitPos(o component.Orbit) vmath.Vec3 {
	return vmath.Vec3{
		X: o.Center.X + vmath.Mul(vmath.Cos(o.Angle), o.Radius),
		Y: o.Center.Y,
		Z: o.Center.Z + vmath.Mul(vmath.Sin(o.Angle), o.Radius),
	}
}
