package connection

import (
	"time"

	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/vmath"
)

// State owns the per-slot connection arrays
//
// Occupied slots pack into [0, active); eviction compacts by shifting
// every parallel array down together so an index means the same
// connection in all of them. The arrays are reused across ticks and are
// only handed to solver workers for the duration of one joined batch.
type State struct {
	max      int
	segments int
	active   int

	targets   []core.Entity
	curveDirs []vmath.Vec3F
	targetPos []vmath.Vec3F
	createdAt []time.Time

	emission   []float64
	emissionOn []bool

	srcEndPos []vmath.Vec3F
	srcEndDir []vmath.Vec3F
	tgtEndPos []vmath.Vec3F
	tgtEndDir []vmath.Vec3F

	// Flat polyline storage, slot i owns points[i*segments:(i+1)*segments]
	points []vmath.Vec3F
}

func newState(max, segments int) *State {
	s := &State{}
	s.alloc(max, segments)
	return s
}

func (s *State) alloc(max, segments int) {
	s.max = max
	s.segments = segments

	s.targets = make([]core.Entity, max)
	s.curveDirs = make([]vmath.Vec3F, max)
	s.targetPos = make([]vmath.Vec3F, max)
	s.createdAt = make([]time.Time, max)
	s.emission = make([]float64, max)
	s.emissionOn = make([]bool, max)
	s.srcEndPos = make([]vmath.Vec3F, max)
	s.srcEndDir = make([]vmath.Vec3F, max)
	s.tgtEndPos = make([]vmath.Vec3F, max)
	s.tgtEndDir = make([]vmath.Vec3F, max)
	s.points = make([]vmath.Vec3F, max*segments)
}

// resize grows capacity or changes segment resolution, keeping the
// occupied prefix. Shrinking below the active count is the caller's
// responsibility to avoid (evict first).
func (s *State) resize(max, segments int) {
	if max == s.max && segments == s.segments {
		return
	}

	old := *s
	s.alloc(max, segments)
	s.active = old.active

	copy(s.targets, old.targets[:old.active])
	copy(s.curveDirs, old.curveDirs[:old.active])
	copy(s.targetPos, old.targetPos[:old.active])
	copy(s.createdAt, old.createdAt[:old.active])
	copy(s.emission, old.emission[:old.active])
	copy(s.emissionOn, old.emissionOn[:old.active])
	copy(s.srcEndPos, old.srcEndPos[:old.active])
	copy(s.srcEndDir, old.srcEndDir[:old.active])
	copy(s.tgtEndPos, old.tgtEndPos[:old.active])
	copy(s.tgtEndDir, old.tgtEndDir[:old.active])
	// Polylines are recomputed next solve; geometry is not carried over
}

// occupy claims the next free slot for target and returns its index
// Caller guarantees active < max
func (s *State) occupy(target core.Entity, dir vmath.Vec3F, pos vmath.Vec3F, now time.Time) int {
	i := s.active
	s.targets[i] = target
	s.curveDirs[i] = dir
	s.targetPos[i] = pos
	s.createdAt[i] = now
	s.emission[i] = 0
	s.emissionOn[i] = true
	s.srcEndPos[i] = vmath.Vec3F{}
	s.srcEndDir[i] = vmath.Vec3F{}
	s.tgtEndPos[i] = vmath.Vec3F{}
	s.tgtEndDir[i] = vmath.Vec3F{}
	s.active++
	return i
}

// slotOf locates a target's slot by handle, -1 when absent
// Linear scan over a small fixed capacity
func (s *State) slotOf(target core.Entity) int {
	for i := 0; i < s.active; i++ {
		if s.targets[i] == target {
			return i
		}
	}
	return -1
}

// evict vacates the target's slot, shifting every higher slot down one
// position across all parallel arrays. Returns the vacated index.
func (s *State) evict(target core.Entity) (int, bool) {
	i := s.slotOf(target)
	if i < 0 {
		return -1, false
	}

	last := s.active - 1
	copy(s.targets[i:], s.targets[i+1:s.active])
	copy(s.curveDirs[i:], s.curveDirs[i+1:s.active])
	copy(s.targetPos[i:], s.targetPos[i+1:s.active])
	copy(s.createdAt[i:], s.createdAt[i+1:s.active])
	copy(s.emission[i:], s.emission[i+1:s.active])
	copy(s.emissionOn[i:], s.emissionOn[i+1:s.active])
	copy(s.srcEndPos[i:], s.srcEndPos[i+1:s.active])
	copy(s.srcEndDir[i:], s.srcEndDir[i+1:s.active])
	copy(s.tgtEndPos[i:], s.tgtEndPos[i+1:s.active])
	copy(s.tgtEndDir[i:], s.tgtEndDir[i+1:s.active])
	copy(s.points[i*s.segments:], s.points[(i+1)*s.segments:s.active*s.segments])

	s.targets[last] = core.NullEntity
	s.curveDirs[last] = vmath.Vec3F{}
	s.targetPos[last] = vmath.Vec3F{}
	s.createdAt[last] = time.Time{}
	s.emission[last] = 0
	s.emissionOn[last] = false
	s.srcEndPos[last] = vmath.Vec3F{}
	s.srcEndDir[last] = vmath.Vec3F{}
	s.tgtEndPos[last] = vmath.Vec3F{}
	s.tgtEndDir[last] = vmath.Vec3F{}
	for j := last * s.segments; j < (last+1)*s.segments; j++ {
		s.points[j] = vmath.Vec3F{}
	}

	s.active--
	return i, true
}

// --- Read surface for renderers and adapters ---

// ActiveCount is the number of occupied slots
func (s *State) ActiveCount() int { return s.active }

// Segments is the polyline resolution per slot
func (s *State) Segments() int { return s.segments }

// Capacity is the physical slot array size
func (s *State) Capacity() int { return s.max }

// Target returns the handle occupying slot i
func (s *State) Target(i int) core.Entity { return s.targets[i] }

// CurveDir returns slot i's fixed perpendicular offset
func (s *State) CurveDir(i int) vmath.Vec3F { return s.curveDirs[i] }

// CreatedAt returns slot i's establishment time
func (s *State) CreatedAt(i int) time.Time { return s.createdAt[i] }

// Polyline returns slot i's point storage
// Valid until the next tick's solve; renderers read it under the world lock
func (s *State) Polyline(i int) []vmath.Vec3F {
	return s.points[i*s.segments : (i+1)*s.segments]
}

// Emission returns slot i's current emission intensity
func (s *State) Emission(i int) float64 { return s.emission[i] }

// EmissionActive reports whether slot i is inside its animation window
func (s *State) EmissionActive(i int) bool { return s.emissionOn[i] }

// SourceEnd returns the source-side marker pose for slot i
func (s *State) SourceEnd(i int) (pos, dir vmath.Vec3F) {
	return s.srcEndPos[i], s.srcEndDir[i]
}

// TargetEnd returns the target-side marker pose for slot i
func (s *State) TargetEnd(i int) (pos, dir vmath.Vec3F) {
	return s.tgtEndPos[i], s.tgtEndDir[i]
}
