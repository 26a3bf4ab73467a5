package component

import (
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/vmath"
)

// Marker is an endpoint decoration for an active connection,
// positioned and oriented by the hub's director each tick
// Pos lives here instead of a Position component so markers stay out
// of the spatial index and never show up as scan candidates
type Marker struct {
	Hub      core.Entity
	Target   core.Entity
	AtSource bool
	Pos      vmath.Vec3F
	Dir      vmath.Vec3F
}
