package renderers

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/render"
	"github.com/lixenwraith/filament/vmath"
)

// Test glyphs render depth-shaded at their projected cell
func TestNodeGlyphDepthShade(t *testing.T) {
	env := newTestEnv(1)

	e := env.addNode(5.5, 6.5, 16, "node")
	env.world.Glyphs.Set(e, component.Glyph{Rune: '✦', Color: tcell.NewRGBColor(100, 150, 200)})

	ctx := env.context(80, 45, false, false)
	buf := render.NewBuffer(80, 45)
	NewNodeRenderer(env.world).Render(ctx, buf)

	cell := buf.CellAt(13, 8)
	if cell.Rune != '✦' {
		t.Fatalf("Expected glyph rune, got %q", cell.Rune)
	}

	want := render.Scale(render.RGB{R: 100, G: 150, B: 200}, ctx.DepthShade(16))
	if cell.Fg != want {
		t.Errorf("Expected shaded color %v, got %v", want, cell.Fg)
	}
}

// Test a front-plane glyph keeps its full color
func TestNodeGlyphFrontPlane(t *testing.T) {
	env := newTestEnv(1)

	e := env.addNode(10.5, 10.5, 0, "node")
	env.world.Glyphs.Set(e, component.Glyph{Rune: '●', Color: tcell.NewRGBColor(40, 220, 160)})

	ctx := env.context(80, 45, false, false)
	buf := render.NewBuffer(80, 45)
	NewNodeRenderer(env.world).Render(ctx, buf)

	cell := buf.CellAt(18, 12)
	if cell.Rune != '●' {
		t.Fatalf("Expected glyph rune, got %q", cell.Rune)
	}
	if want := (render.RGB{R: 40, G: 220, B: 160}); cell.Fg != want {
		t.Errorf("Expected unshaded color %v, got %v", want, cell.Fg)
	}
}

// Test glyph writes preserve a background laid down by earlier layers
func TestNodeGlyphPreservesBackground(t *testing.T) {
	env := newTestEnv(1)

	e := env.addNode(10.5, 10.5, 0, "node")
	env.world.Glyphs.Set(e, component.Glyph{Rune: '●', Color: tcell.NewRGBColor(255, 255, 255)})

	ctx := env.context(80, 45, false, false)
	buf := render.NewBuffer(80, 45)
	glow := render.RGB{R: 30, G: 40, B: 80}
	buf.SetBgOnly(18, 12, glow)

	NewNodeRenderer(env.world).Render(ctx, buf)

	cell := buf.CellAt(18, 12)
	if cell.Rune != '●' {
		t.Fatalf("Expected glyph rune over the glow, got %q", cell.Rune)
	}
	if cell.Bg != glow {
		t.Errorf("Expected background preserved %v, got %v", glow, cell.Bg)
	}
}

// Test entities without a position or with an empty rune are skipped
func TestNodeGlyphSkips(t *testing.T) {
	env := newTestEnv(1)

	floating := env.world.CreateEntity()
	env.world.Glyphs.Set(floating, component.Glyph{Rune: '?', Color: tcell.ColorWhite})

	blank := env.addNode(20.5, 20.5, 0, "node")
	env.world.Glyphs.Set(blank, component.Glyph{Rune: 0, Color: tcell.ColorWhite})

	ctx := env.context(80, 45, false, false)
	buf := render.NewBuffer(80, 45)
	NewNodeRenderer(env.world).Render(ctx, buf)

	for y := 0; y < 45; y++ {
		for x := 0; x < 80; x++ {
			if buf.CellAt(x, y).Rune != 0 {
				t.Fatalf("Expected nothing drawn, got %q at (%d,%d)", buf.CellAt(x, y).Rune, x, y)
			}
		}
	}
}
