package system

import (
	"time"

	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// SpinSystem cycles node glyphs through their frame sets. Phase is a
// Q32.32 turn; one full turn walks the frame set once.
type SpinSystem struct{}

func NewSpinSystem() *SpinSystem {
	return &SpinSystem{}
}

func (s *SpinSystem) Init(w *engine.World) error {
	return nil
}

func (s *SpinSystem) Priority() int {
	return parameter.PrioritySpin
}

func (s *SpinSystem) Update(w *engine.World, dt time.Duration) {
	step := vmath.FromFloat(dt.Seconds())

	for _, e := range w.Spins.All() {
		sp, ok := w.Spins.Get(e)
		if !ok || len(sp.Frames) == 0 {
			continue
		}

		sp.Phase = (sp.Phase + vmath.Mul(sp.Rate, step)) & vmath.Mask
		idx := int(vmath.ToFloat(sp.Phase) * float64(len(sp.Frames)))
		if idx >= len(sp.Frames) {
			idx = len(sp.Frames) - 1
		}

		if g, ok := w.Glyphs.Get(e); ok {
			g.Rune = sp.Frames[idx]
			w.Glyphs.Set(e, g)
		}
		w.Spins.Set(e, sp)
	}
}
