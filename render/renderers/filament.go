package renderers

import (
	"github.com/lixenwraith/filament/connection"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/parameter/visual"
	"github.com/lixenwraith/filament/render"
	"github.com/lixenwraith/filament/system"
	"github.com/lixenwraith/filament/vmath"
)

// quadCell accumulates one scene cell's sub-cell coverage for a frame
// bits follow the visual.QuadrantChars encoding
type quadCell struct {
	bits  uint8
	color render.RGB
	glow  float64
}

// FilamentRenderer rasterizes connection polylines at 2x2 sub-cell
// resolution. Strokes accumulate into a scene-sized quadrant grid so
// crossing filaments union their coverage instead of overdrawing,
// then composite to the buffer in one pass
type FilamentRenderer struct {
	directors *system.DirectorSystem

	cells []quadCell
	dirty []int // grid indices written this frame
	gridW int
	gridH int
}

// NewFilamentRenderer creates a renderer reading the director registry
func NewFilamentRenderer(directors *system.DirectorSystem) *FilamentRenderer {
	return &FilamentRenderer{
		directors: directors,
		dirty:     make([]int, 0, 256),
	}
}

func (r *FilamentRenderer) Render(ctx render.Context, buf *render.Buffer) {
	r.ensureGrid(ctx.SceneWidth, ctx.SceneHeight)

	for _, hub := range r.directors.Hubs() {
		dir, ok := r.directors.Director(hub)
		if !ok {
			continue
		}
		st := dir.State()
		for i := 0; i < st.ActiveCount(); i++ {
			r.rasterize(ctx, st, i)
		}
	}

	r.composite(ctx, buf)

	// Endpoint flares screen over the composited glow, so they draw last
	for _, hub := range r.directors.Hubs() {
		dir, ok := r.directors.Director(hub)
		if !ok {
			continue
		}
		st := dir.State()
		for i := 0; i < st.ActiveCount(); i++ {
			emission := st.Emission(i)
			srcPos, _ := st.SourceEnd(i)
			tgtPos, _ := st.TargetEnd(i)
			r.flare(ctx, buf, srcPos, emission)
			r.flare(ctx, buf, tgtPos, emission)
		}
	}
}

// ensureGrid sizes the accumulation grid to the scene volume
func (r *FilamentRenderer) ensureGrid(width, height int) {
	if r.gridW == width && r.gridH == height && r.cells != nil {
		return
	}
	r.gridW = width
	r.gridH = height
	r.cells = make([]quadCell, width*height)
	r.dirty = r.dirty[:0]
}

// rasterize walks slot i's polyline, plotting each segment into the
// quadrant grid via Bresenham in doubled coordinates
func (r *FilamentRenderer) rasterize(ctx render.Context, st *connection.State, i int) {
	pts := st.Polyline(i)
	if len(pts) < 2 {
		return
	}

	t := st.Emission(i)
	if t > 1 {
		t = 1
	}
	stroke := render.Lerp(visual.RgbFilamentBase, visual.RgbFilamentHot, t)

	for s := 0; s < len(pts)-1; s++ {
		p0 := pts[s]
		p1 := pts[s+1]

		// Depth shade per segment; polyline z varies slowly enough
		shade := ctx.DepthShade(p0.Z)
		color := render.Scale(stroke, shade)

		r.traceQuads(
			int(p0.X*2), int(p0.Y*2),
			int(p1.X*2), int(p1.Y*2),
			color, t,
		)
	}
}

// traceQuads plots a Bresenham line in quadrant (doubled) coordinates
func (r *FilamentRenderer) traceQuads(x0, y0, x1, y1 int, color render.RGB, glow float64) {
	dx := x1 - x0
	dy := y1 - y0
	absDx, absDy := dx, dy
	if absDx < 0 {
		absDx = -absDx
	}
	if absDy < 0 {
		absDy = -absDy
	}

	stepX, stepY := 1, 1
	if dx < 0 {
		stepX = -1
	}
	if dy < 0 {
		stepY = -1
	}

	totalSteps := max(absDx, absDy)
	err := absDx - absDy
	qx, qy := x0, y0

	for step := 0; step <= totalSteps; step++ {
		r.plot(qx, qy, color, glow)

		if step < totalSteps {
			e2 := 2 * err
			if e2 > -absDy {
				err -= absDy
				qx += stepX
			}
			if e2 < absDx {
				err += absDx
				qy += stepY
			}
		}
	}
}

// plot accumulates one quadrant point into its scene cell
func (r *FilamentRenderer) plot(qx, qy int, color render.RGB, glow float64) {
	cellX := qx >> 1
	cellY := qy >> 1
	if cellX < 0 || cellX >= r.gridW || cellY < 0 || cellY >= r.gridH {
		return
	}

	idx := cellY*r.gridW + cellX
	qc := &r.cells[idx]

	if qc.bits == 0 {
		r.dirty = append(r.dirty, idx)
	}

	qc.bits |= 1 << ((uint(qy)&1)<<1 | uint(qx)&1)
	qc.color = render.Max(qc.color, color, 1.0)
	if glow > qc.glow {
		qc.glow = glow
	}
}

// composite writes accumulated cells to the buffer and resets the grid
func (r *FilamentRenderer) composite(ctx render.Context, buf *render.Buffer) {
	for _, idx := range r.dirty {
		qc := &r.cells[idx]

		sceneX := idx % r.gridW
		sceneY := idx / r.gridW
		if sx, sy, visible := ctx.SceneToScreen(sceneX, sceneY); visible {
			buf.SetFgOnly(sx, sy, visual.QuadrantChars[qc.bits], qc.color)

			// Halo brightens with the strongest emission crossing the cell
			glowScale := parameter.FilamentGlowScale * (0.5 + 0.5*qc.glow)
			buf.SetBgOnly(sx, sy, render.Scale(qc.color, glowScale))
		}

		*qc = quadCell{}
	}
	r.dirty = r.dirty[:0]
}

// flare draws the emission-driven endpoint glow
// The center cell screens so repeated flares never blow out; the side
// spill adds so overlapping endpoints from separate connections stack
func (r *FilamentRenderer) flare(ctx render.Context, buf *render.Buffer, pos vmath.Vec3F, emission float64) {
	if emission <= 0 {
		return
	}
	if emission > 1 {
		emission = 1
	}

	sx, sy, visible := ctx.SceneToScreen(int(pos.X), int(pos.Y))
	if !visible {
		return
	}

	core := render.Scale(visual.RgbFilamentHot, emission*parameter.EndpointGlowScale*ctx.DepthShade(pos.Z))
	buf.Set(sx, sy, 0, render.RGBBlack, core, render.BlendScreenBg, 1.0)

	spill := render.Scale(core, 0.45)
	buf.Set(sx-1, sy, 0, render.RGBBlack, spill, render.BlendAddBg, 1.0)
	buf.Set(sx+1, sy, 0, render.RGBBlack, spill, render.BlendAddBg, 1.0)
}
