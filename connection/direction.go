package connection

import (
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// Reference axes for the perpendicular offset, tried in order when the
// previous candidate is near-parallel to the connection axis
var (
	axisUp      = vmath.Vec3F{X: 0, Y: 1, Z: 0}
	axisForward = vmath.Vec3F{X: 0, Y: 0, Z: 1}
	axisRight   = vmath.Vec3F{X: 1, Y: 0, Z: 0}
)

// EstablishDirection computes the fixed unit offset for a new connection.
// Called once at promotion; the result is held for the connection's life
// so the bulge never flips mid-frame.
//
// The cross of the source->target axis with "up" gives a horizontal
// perpendicular; "forward" then "right" cover the degenerate vertical
// cases. The sign flips on a hash of the target's establishment position
// so distinct targets curve apart deterministically.
func EstablishDirection(source, target vmath.Vec3) vmath.Vec3F {
	axis := vmath.V3FSub(vmath.V3ToFloat(target), vmath.V3ToFloat(source))
	axis = vmath.V3FNormalize(axis)

	dir := vmath.V3FCross(axis, axisUp)
	if vmath.V3FMagSq(dir) < parameter.DirectionFallbackThreshold {
		dir = vmath.V3FCross(axis, axisForward)
	}
	if vmath.V3FMagSq(dir) < parameter.DirectionFallbackThreshold {
		dir = vmath.V3FCross(axis, axisRight)
	}

	dir = vmath.V3FNormalize(dir)
	if vmath.V3FMagSq(dir) == 0 {
		// Coincident endpoints; the solver collapses this slot anyway
		dir = axisUp
	}

	if positionHash(target)&1 == 1 {
		dir = vmath.V3FScale(dir, -1)
	}
	return dir
}

// positionHash mixes the raw Q32.32 words of a position
// Fixed-point input keeps the hash identical across runs and platforms.
// The finalizer folds the high word down; integer-grid positions carry 32
// low zero bits per coordinate and would otherwise share parity.
func positionHash(p vmath.Vec3) uint64 {
	h := uint64(p.X) * 0x9E3779B97F4A7C15
	h ^= uint64(p.Y) * 0xBF58476D1CE4E5B9
	h ^= uint64(p.Z) * 0x94D049BB133111EB
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	return h
}
