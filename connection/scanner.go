package connection

import (
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/vmath"
)

// TargetSource is the external spatial surface the director queries.
// Targets are owned elsewhere and may disappear between any two calls;
// ok=false from Position or Tag means the handle is dead.
type TargetSource interface {
	// CollectInRadius appends broad-phase candidates near origin to out
	// and returns the extended slice. Over-collection is fine; the
	// scanner applies the precise distance, tag, and liveness filters.
	CollectInRadius(origin vmath.Vec3, radius int64, out []core.Entity) []core.Entity

	// Position reports a target's current position
	Position(e core.Entity) (vmath.Vec3, bool)

	// Tag reports a target's tag
	Tag(e core.Entity) (string, bool)
}

// Scanner produces the eligible-target set for one detection pass
// Stateless between calls: eligibility memory lives with the reconciler
// inputs, not here
type Scanner struct {
	src TargetSource
	buf []core.Entity
}

func NewScanner(src TargetSource) *Scanner {
	return &Scanner{
		src: src,
		buf: make([]core.Entity, 0, 64),
	}
}

// Scan fills outList/outSet with every live target within radius of
// origin carrying tag, excluding the scanning entity itself.
// outList keeps broad-phase order so admission is deterministic for a
// given scene; outSet mirrors it for O(1) membership checks.
func (s *Scanner) Scan(
	origin vmath.Vec3,
	radius float64,
	tag string,
	exclude core.Entity,
	outList []core.Entity,
	outSet map[core.Entity]struct{},
) []core.Entity {
	outList = outList[:0]
	clear(outSet)

	rFixed := vmath.FromFloat(radius)
	rSq := vmath.Mul(rFixed, rFixed)

	s.buf = s.src.CollectInRadius(origin, rFixed, s.buf[:0])
	for _, e := range s.buf {
		if e == exclude {
			continue
		}
		if _, dup := outSet[e]; dup {
			continue
		}
		pos, ok := s.src.Position(e)
		if !ok {
			continue
		}
		if vmath.V3DistSq(pos, origin) > rSq {
			continue
		}
		t, ok := s.src.Tag(e)
		if !ok || t != tag {
			continue
		}
		outSet[e] = struct{}{}
		outList = append(outList, e)
	}
	return outList
}
