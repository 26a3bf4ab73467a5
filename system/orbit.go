package system

import (
	"time"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// OrbitSystem advances ring nodes around their center in the
// horizontal plane. Angle math stays in Q32.32 turns so orbits are
// reproducible across runs.
type OrbitSystem struct{}

func NewOrbitSystem() *OrbitSystem {
	return &OrbitSystem{}
}

func (s *OrbitSystem) Init(w *engine.World) error {
	return nil
}

func (s *OrbitSystem) Priority() int {
	return parameter.PriorityOrbit
}

func (s *OrbitSystem) Update(w *engine.World, dt time.Duration) {
	step := vmath.FromFloat(dt.Seconds())

	for _, e := range w.Orbits.All() {
		o, ok := w.Orbits.Get(e)
		if !ok {
			continue
		}

		o.Angle = (o.Angle + vmath.Mul(o.AngVel, step)) & vmath.Mask
		w.Positions.Set(e, component.Position{Pos: orbitPos(o)})
		w.Orbits.Set(e, o)
	}
}
