package component

import (
	"time"

	"github.com/lixenwraith/filament/vmath"
)

// Drift wanders through the volume with a bounded velocity,
// picking a new heading when NextTurn passes
type Drift struct {
	Vel      vmath.Vec3F
	NextTurn time.Time
}

// Orbit circles a fixed center in the horizontal plane
// Angle and AngVel are Q32.32 turns; Radius is Q32.32 world units
type Orbit struct {
	Center vmath.Vec3
	Radius int64
	Angle  int64
	AngVel int64
}
