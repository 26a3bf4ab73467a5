package renderers

import (
	"math"

	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/parameter/visual"
	"github.com/lixenwraith/filament/render"
	"github.com/lixenwraith/filament/vmath"
)

// MarkerRenderer draws connection endpoint decorations
// Each marker is an arrow glyph aligned to the filament tangent at its
// end, over a soft halo so endpoints read against dense strokes
type MarkerRenderer struct {
	world *engine.World
}

// NewMarkerRenderer creates a renderer reading the marker store
func NewMarkerRenderer(world *engine.World) *MarkerRenderer {
	return &MarkerRenderer{world: world}
}

func (r *MarkerRenderer) Render(ctx render.Context, buf *render.Buffer) {
	for _, e := range r.world.Markers.All() {
		marker, ok := r.world.Markers.Get(e)
		if !ok {
			continue
		}

		sx, sy, visible := ctx.SceneToScreen(int(marker.Pos.X), int(marker.Pos.Y))
		if !visible {
			continue
		}

		shade := ctx.DepthShade(marker.Pos.Z)
		if marker.AtSource {
			// Departure end sits on the hub glow, keep it subdued
			shade *= 0.8
		}

		halo := render.Scale(visual.RgbMarkerHalo, shade)
		buf.Set(sx, sy, 0, render.RGBBlack, halo, render.BlendAlphaBg, parameter.MarkerHaloAlpha)

		arrow := render.Scale(visual.RgbMarkerArrow, shade)
		buf.Set(sx, sy, arrowRune(marker.Dir), arrow, render.RGBBlack, render.BlendMaxFg, 1.0)
	}
}

// arrowRune picks the octant glyph for a tangent direction
// Screen y grows downward, so +y maps to the down arrow
func arrowRune(d vmath.Vec3F) rune {
	if d.X == 0 && d.Y == 0 {
		// Tangent points into the screen
		return '◦'
	}
	angle := math.Atan2(d.Y, d.X)
	octant := int(math.Round(angle/(math.Pi/4))) & 7
	return visual.ArrowChars[octant]
}
