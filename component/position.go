package component

import (
	"github.com/lixenwraith/filament/vmath"
)

// Position places an entity in the scene volume
// Q32.32 fixed-point so spatial cells and scan results are reproducible
type Position struct {
	Pos vmath.Vec3
}
