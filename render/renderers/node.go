package renderers

import (
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/render"
	"github.com/lixenwraith/filament/vmath"
)

// NodeRenderer draws every positioned entity carrying a Glyph,
// depth-shaded by its z coordinate. Spin animation is applied by the
// spin system before render, so this only transcribes current runes
type NodeRenderer struct {
	world *engine.World
}

// NewNodeRenderer creates a renderer reading the glyph and position stores
func NewNodeRenderer(world *engine.World) *NodeRenderer {
	return &NodeRenderer{world: world}
}

func (r *NodeRenderer) Render(ctx render.Context, buf *render.Buffer) {
	for _, e := range r.world.Glyphs.All() {
		glyph, ok := r.world.Glyphs.Get(e)
		if !ok || glyph.Rune == 0 {
			continue
		}
		pos, ok := r.world.Positions.Get(e)
		if !ok {
			continue
		}

		p := vmath.V3ToFloat(pos.Pos)
		sx, sy, visible := ctx.SceneToScreen(int(p.X), int(p.Y))
		if !visible {
			continue
		}

		cr, cg, cb := glyph.Color.RGB()
		fg := render.Scale(
			render.RGB{R: uint8(cr), G: uint8(cg), B: uint8(cb)},
			ctx.DepthShade(p.Z),
		)

		// Fg-only write keeps the filament glow behind the glyph
		buf.SetFgOnly(sx, sy, glyph.Rune, fg)
	}
}
