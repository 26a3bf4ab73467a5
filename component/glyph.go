package component

import (
	"github.com/gdamore/tcell/v2"
)

// Glyph is an entity's visual representation
type Glyph struct {
	Rune  rune
	Color tcell.Color
}

// Spin cycles a glyph through a frame set
// Phase and Rate are Q32.32 turns; one full turn walks all frames once
type Spin struct {
	Frames []rune
	Phase  int64
	Rate   int64
}
