package system

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/config"
	"github.com/lixenwraith/filament/connection"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// worldTargets adapts the world's position store and node tags to the
// director's target source
type worldTargets struct {
	world *engine.World
}

func (wt worldTargets) CollectInRadius(origin vmath.Vec3, radius int64, out []core.Entity) []core.Entity {
	return wt.world.Positions.CollectInRadius(origin, radius, out)
}

func (wt worldTargets) Position(e core.Entity) (vmath.Vec3, bool) {
	p, ok := wt.world.Positions.Get(e)
	if !ok {
		return vmath.Vec3{}, false
	}
	return p.Pos, true
}

func (wt worldTargets) Tag(e core.Entity) (string, bool) {
	n, ok := wt.world.Nodes.Get(e)
	if !ok {
		return "", false
	}
	return n.Tag, true
}

// hubNotifier routes one hub's slot transitions back to the system
type hubNotifier struct {
	sys *DirectorSystem
	hub core.Entity
}

func (n hubNotifier) ConnectionEstablished(target core.Entity, slot int) {
	n.sys.onEstablished(n.hub, target, slot)
}

func (n hubNotifier) ConnectionBroken(target core.Entity, slot int) {
	n.sys.onBroken(n.hub, target, slot)
}

type markerKey struct {
	hub    core.Entity
	target core.Entity
}

// DirectorSystem runs one connection director per hub entity: it
// adopts hubs as they appear, drives their scan/admit/solve pass each
// tick, keeps endpoint markers glued to the filament ends, and exposes
// the connection tunables through the setter registry.
type DirectorSystem struct {
	registry *config.Registry
	template connection.Config

	directors map[core.Entity]*connection.Director
	order     []core.Entity
	markers   map[markerKey][2]core.Entity

	world   *engine.World
	timeRes *engine.TimeResource
	status  *engine.StatusResource
}

func NewDirectorSystem(registry *config.Registry, template connection.Config) *DirectorSystem {
	return &DirectorSystem{
		registry:  registry,
		template:  template,
		directors: make(map[core.Entity]*connection.Director),
		markers:   make(map[markerKey][2]core.Entity),
	}
}

func (s *DirectorSystem) Init(w *engine.World) error {
	if err := s.template.Validate(); err != nil {
		return fmt.Errorf("director template: %w", err)
	}
	s.world = w
	s.timeRes = engine.MustGetResource[*engine.TimeResource](w.Resources)
	s.status, _ = engine.GetResource[*engine.StatusResource](w.Resources)
	s.registerParams()
	return nil
}

func (s *DirectorSystem) Priority() int {
	return parameter.PriorityDirector
}

func (s *DirectorSystem) Update(w *engine.World, dt time.Duration) {
	s.world = w
	now := s.timeRes.SceneTime

	s.syncHubs(w)

	for _, hub := range s.order {
		pos, ok := w.Positions.Get(hub)
		if !ok {
			continue
		}
		s.directors[hub].Tick(now, pos.Pos)
	}

	s.repositionMarkers(w)
}

func (s *DirectorSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventParamSet,
		event.EventParamAdjust,
	}
}

func (s *DirectorSystem) HandleEvent(w *engine.World, ev event.Event) {
	s.world = w
	switch ev.Type {
	case event.EventParamSet:
		if p, ok := ev.Payload.(*event.ParamSetPayload); ok {
			if err := s.registry.Apply(p.Key, p.Value); err != nil {
				s.post(err.Error())
			} else {
				s.post(fmt.Sprintf("%s = %s", p.Key, p.Value))
			}
		}

	case event.EventParamAdjust:
		if p, ok := ev.Payload.(*event.ParamAdjustPayload); ok {
			if err := s.registry.Adjust(p.Key, p.Delta); err != nil {
				s.post(err.Error())
			} else {
				s.post(fmt.Sprintf("%s %+g", p.Key, p.Delta))
			}
		}
	}
}

// Director returns the hub's director, if one is running
func (s *DirectorSystem) Director(hub core.Entity) (*connection.Director, bool) {
	d, ok := s.directors[hub]
	return d, ok
}

// Hubs returns the adopted hub entities in adoption order
func (s *DirectorSystem) Hubs() []core.Entity {
	return s.order
}

// Shutdown joins every director's outstanding solver batch
func (s *DirectorSystem) Shutdown() {
	for _, hub := range s.order {
		s.directors[hub].Shutdown()
	}
}

// syncHubs adopts new hub entities and tears down directors whose hub
// lost its Hub or Position component
func (s *DirectorSystem) syncHubs(w *engine.World) {
	for _, hub := range w.Hubs.All() {
		if _, ok := s.directors[hub]; ok {
			continue
		}
		if !w.Positions.Has(hub) {
			continue
		}
		cfg := s.template
		cfg.Seed = s.template.Seed ^ uint64(hub)*0x9E3779B97F4A7C15
		d, err := connection.NewDirector(hub, worldTargets{world: w}, hubNotifier{sys: s, hub: hub}, cfg)
		if err != nil {
			// Template is validated at Init and on every setter
			s.post(err.Error())
			continue
		}
		s.directors[hub] = d
		s.order = append(s.order, hub)
	}

	for i := 0; i < len(s.order); {
		hub := s.order[i]
		if w.Hubs.Has(hub) && w.Positions.Has(hub) {
			i++
			continue
		}
		s.teardown(w, hub)
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}

// teardown shuts the hub's director down and removes its markers
// without routing through the eviction path; the hub is already gone
func (s *DirectorSystem) teardown(w *engine.World, hub core.Entity) {
	s.directors[hub].Shutdown()
	delete(s.directors, hub)

	var orphans []core.Entity
	for key, pair := range s.markers {
		if key.hub != hub {
			continue
		}
		orphans = append(orphans, pair[0], pair[1])
		delete(s.markers, key)
	}
	w.DestroyEntities(orphans)
}

// repositionMarkers snaps each connection's marker pair onto the solved
// polyline ends
func (s *DirectorSystem) repositionMarkers(w *engine.World) {
	for _, hub := range s.order {
		st := s.directors[hub].State()
		for i := 0; i < st.ActiveCount(); i++ {
			pair, ok := s.markers[markerKey{hub: hub, target: st.Target(i)}]
			if !ok {
				continue
			}

			pos, dir := st.SourceEnd(i)
			w.Markers.Set(pair[0], component.Marker{
				Hub: hub, Target: st.Target(i), AtSource: true,
				Pos: pos, Dir: dir,
			})

			pos, dir = st.TargetEnd(i)
			w.Markers.Set(pair[1], component.Marker{
				Hub: hub, Target: st.Target(i), AtSource: false,
				Pos: pos, Dir: dir,
			})
		}
	}
}

func (s *DirectorSystem) onEstablished(hub, target core.Entity, slot int) {
	src := s.world.CreateEntity()
	dst := s.world.CreateEntity()
	s.world.Markers.Set(src, component.Marker{Hub: hub, Target: target, AtSource: true})
	s.world.Markers.Set(dst, component.Marker{Hub: hub, Target: target, AtSource: false})
	s.markers[markerKey{hub: hub, target: target}] = [2]core.Entity{src, dst}

	s.world.PushEvent(event.EventConnectionEstablished,
		&event.ConnectionPayload{Director: hub, Target: target, Slot: slot})
}

func (s *DirectorSystem) onBroken(hub, target core.Entity, slot int) {
	key := markerKey{hub: hub, target: target}
	if pair, ok := s.markers[key]; ok {
		s.world.DestroyEntities(pair[:])
		delete(s.markers, key)
	}

	s.world.PushEvent(event.EventConnectionBroken,
		&event.ConnectionPayload{Director: hub, Target: target, Slot: slot})
}

func (s *DirectorSystem) post(text string) {
	if s.status == nil {
		return
	}
	s.status.Post(text, s.timeRes.RealTime.Add(parameter.StatusMessageDuration))
}

// registerParams binds the connection tunables to the setter registry.
// Each closure validates the candidate template first, so a rejected
// value never reaches any director and later-adopted hubs inherit only
// accepted values.
func (s *DirectorSystem) registerParams() {
	s.registry.RegisterAdjustable("scan.radius",
		func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("scan.radius: %w", err)
			}
			return s.setRadius(f)
		},
		func(delta float64) error {
			return s.setRadius(s.template.ScanRadius + delta)
		})

	s.registry.Register("scan.interval_seconds", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("scan.interval_seconds: %w", err)
		}
		next := s.template
		next.ScanInterval = time.Duration(f * float64(time.Second))
		return s.commit(next, func(d *connection.Director) error {
			return d.SetScanInterval(next.ScanInterval)
		})
	})

	s.registry.Register("scan.tag", func(v string) error {
		next := s.template
		next.Tag = v
		return s.commit(next, func(d *connection.Director) error {
			return d.SetTag(v)
		})
	})

	s.registry.Register("admission.max_connections", func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("admission.max_connections: %w", err)
		}
		next := s.template
		next.MaxConnections = n
		return s.commit(next, func(d *connection.Director) error {
			return d.SetMaxConnections(n)
		})
	})

	s.registry.Register("admission.time_between_connections", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("admission.time_between_connections: %w", err)
		}
		next := s.template
		next.TimeBetweenConnections = time.Duration(f * float64(time.Second))
		return s.commit(next, func(d *connection.Director) error {
			return d.SetTimeBetweenConnections(next.TimeBetweenConnections)
		})
	})

	s.registry.Register("admission.sequential", func(v string) error {
		b, err := parseToggle(v, s.template.Sequential)
		if err != nil {
			return fmt.Errorf("admission.sequential: %w", err)
		}
		next := s.template
		next.Sequential = b
		return s.commit(next, func(d *connection.Director) error {
			return d.SetSequential(b)
		})
	})

	s.registry.Register("admission.randomize_order", func(v string) error {
		b, err := parseToggle(v, s.template.RandomizeOrder)
		if err != nil {
			return fmt.Errorf("admission.randomize_order: %w", err)
		}
		next := s.template
		next.RandomizeOrder = b
		return s.commit(next, func(d *connection.Director) error {
			return d.SetRandomizeOrder(b)
		})
	})

	s.registry.Register("curve.segments", func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("curve.segments: %w", err)
		}
		next := s.template
		next.Segments = n
		return s.commit(next, func(d *connection.Director) error {
			return d.SetSegments(n)
		})
	})

	s.registry.RegisterAdjustable("curve.curvature",
		func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("curve.curvature: %w", err)
			}
			return s.setCurvature(f)
		},
		func(delta float64) error {
			return s.setCurvature(s.template.Curvature + delta)
		})

	s.registry.Register("curve.trim_mode", func(v string) error {
		m, err := connection.TrimModeByName(v)
		if err != nil {
			return err
		}
		next := s.template
		next.TrimMode = m
		return s.commit(next, func(d *connection.Director) error {
			return d.SetTrimMode(m)
		})
	})

	s.registry.Register("curve.source_trim", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("curve.source_trim: %w", err)
		}
		next := s.template
		next.SourceTrim = f
		return s.commit(next, func(d *connection.Director) error {
			return d.SetSourceTrim(f)
		})
	})

	s.registry.Register("curve.target_trim", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("curve.target_trim: %w", err)
		}
		next := s.template
		next.TargetTrim = f
		return s.commit(next, func(d *connection.Director) error {
			return d.SetTargetTrim(f)
		})
	})

	s.registry.Register("emission.duration_seconds", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("emission.duration_seconds: %w", err)
		}
		next := s.template
		next.EmissionDuration = time.Duration(f * float64(time.Second))
		return s.commit(next, func(d *connection.Director) error {
			return d.SetEmissionDuration(next.EmissionDuration)
		})
	})

	s.registry.Register("emission.intensity", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("emission.intensity: %w", err)
		}
		next := s.template
		next.EmissionIntensity = f
		return s.commit(next, func(d *connection.Director) error {
			return d.SetEmissionIntensity(f)
		})
	})

	s.registry.Register("emission.curve", func(v string) error {
		c, err := connection.CurveByName(v)
		if err != nil {
			return err
		}
		next := s.template
		next.EmissionCurve = c
		return s.commit(next, func(d *connection.Director) error {
			return d.SetEmissionCurve(c)
		})
	})
}

func (s *DirectorSystem) setRadius(r float64) error {
	next := s.template
	next.ScanRadius = r
	return s.commit(next, func(d *connection.Director) error {
		return d.SetScanRadius(r)
	})
}

func (s *DirectorSystem) setCurvature(c float64) error {
	next := s.template
	next.Curvature = c
	return s.commit(next, func(d *connection.Director) error {
		return d.SetCurvature(c)
	})
}

// parseToggle reads a bool value, with "toggle" flipping the current
// state so stateless callers (keyboard, bridge) can flip without
// reading first
func parseToggle(v string, current bool) (bool, error) {
	if v == "toggle" {
		return !current, nil
	}
	return strconv.ParseBool(v)
}

// commit validates the candidate template, fans the change out to the
// live directors, and records it for hubs adopted later
func (s *DirectorSystem) commit(next connection.Config, apply func(*connection.Director) error) error {
	if err := next.Validate(); err != nil {
		return err
	}
	for _, hub := range s.order {
		if err := apply(s.directors[hub]); err != nil {
			return err
		}
	}
	s.template = next
	return nil
}
