package connection

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// TrimMode selects how endpoint trims are interpreted
type TrimMode int

const (
	// TrimPercent trims each end by a fraction of the span
	TrimPercent TrimMode = iota
	// TrimDistance trims each end by a world-unit length
	TrimDistance
)

// TrimModeByName resolves a config trim mode name
func TrimModeByName(name string) (TrimMode, error) {
	switch name {
	case "percent":
		return TrimPercent, nil
	case "distance":
		return TrimDistance, nil
	default:
		return TrimPercent, fmt.Errorf("unknown trim mode %q", name)
	}
}

// CurveParams are the solver inputs shared by every slot in one batch
type CurveParams struct {
	Curvature  float64
	TrimMode   TrimMode
	SourceTrim float64
	TargetTrim float64
}

// trimSpan converts the configured trims into the [trimStart, trimEnd]
// parameter window. Fixed-distance trims cap at 45% of the span each;
// percentage trims rescale jointly past 90% combined, preserving their
// ratio. Either way the window keeps at least 10% of the span, so the
// trimmed curve never collapses or inverts.
func trimSpan(dist float64, p CurveParams) (float64, float64) {
	var sFrac, tFrac float64

	switch p.TrimMode {
	case TrimDistance:
		sFrac = p.SourceTrim / dist
		tFrac = p.TargetTrim / dist
		if sFrac > parameter.FixedTrimCap {
			sFrac = parameter.FixedTrimCap
		}
		if tFrac > parameter.FixedTrimCap {
			tFrac = parameter.FixedTrimCap
		}
	default:
		sFrac = p.SourceTrim
		tFrac = p.TargetTrim
		if sum := sFrac + tFrac; sum > parameter.PercentTrimCap {
			scale := parameter.PercentTrimCap / sum
			sFrac *= scale
			tFrac *= scale
		}
	}

	if sFrac < 0 {
		sFrac = 0
	}
	if tFrac < 0 {
		tFrac = 0
	}
	return sFrac, 1 - tFrac
}

// SolvePolyline fills out with a trimmed quadratic Bezier from source to
// target. len(out) is the segment resolution and must be >= 2.
//
// Coincident endpoints collapse every point onto the source instead of
// producing NaN directions. The control point sits off the midpoint along
// curveDir, scaled by distance and curvature.
func SolvePolyline(source, target, curveDir vmath.Vec3F, p CurveParams, out []vmath.Vec3F) {
	delta := vmath.V3FSub(target, source)
	dist := vmath.V3FMag(delta)

	if dist < parameter.DegenerateEpsilon {
		for i := range out {
			out[i] = source
		}
		return
	}

	mid := vmath.V3FLerp(source, target, 0.5)
	control := vmath.V3FAdd(mid, vmath.V3FScale(curveDir, dist*p.Curvature*parameter.ControlOffsetFactor))

	trimStart, trimEnd := trimSpan(dist, p)
	span := trimEnd - trimStart
	denom := float64(len(out) - 1)

	for i := range out {
		t := trimStart + span*(float64(i)/denom)
		omt := 1 - t

		a := omt * omt
		b := 2 * omt * t
		c := t * t

		out[i] = vmath.Vec3F{
			X: a*source.X + b*control.X + c*target.X,
			Y: a*source.Y + b*control.Y + c*target.Y,
			Z: a*source.Z + b*control.Z + c*target.Z,
		}
	}
}

// SolveBatch recomputes the polylines of all occupied slots as one
// data-parallel pass. Workers write disjoint polyline regions and the
// call joins them before returning, so slot geometry is never read while
// a worker is still writing and no work outlives the tick that issued it.
func SolveBatch(st *State, source vmath.Vec3F, p CurveParams, shards int) {
	active := st.active
	if active == 0 {
		return
	}

	if shards > active {
		shards = active
	}
	if shards <= 1 {
		solveRange(st, source, p, 0, active)
		return
	}

	var g errgroup.Group
	chunk := (active + shards - 1) / shards
	for lo := 0; lo < active; lo += chunk {
		hi := lo + chunk
		if hi > active {
			hi = active
		}
		g.Go(func() error {
			solveRange(st, source, p, lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

func solveRange(st *State, source vmath.Vec3F, p CurveParams, lo, hi int) {
	for i := lo; i < hi; i++ {
		SolvePolyline(source, st.targetPos[i], st.curveDirs[i], p, st.Polyline(i))
	}
}
