package render

import (
	"github.com/gdamore/tcell/v2"
)

// Buffer is a compositor backed by a Cell array with dirty tracking
// Renderers draw in any order; Flush converts the composited frame to
// tcell styles in one pass
type Buffer struct {
	cells   []Cell // Optimization: Persistent buffer for output reuse
	touched []bool
	width   int
	height  int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	size := width * height
	cells := make([]Cell, size)
	touched := make([]bool, size)
	for i := range cells {
		cells[i] = Cell{
			Rune: 0,
			Fg:   RgbBackground,
			Bg:   RGBBlack,
		}
		touched[i] = false
	}
	return &Buffer{
		cells:   cells,
		touched: touched,
		width:   width,
		height:  height,
	}
}

// Width returns the buffer width in cells
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in cells
func (b *Buffer) Height() int { return b.height }

// CellAt returns the composited cell at x, y (zero Cell out of bounds)
func (b *Buffer) CellAt(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	// Initialize first cell
	b.cells[0] = Cell{
		Rune: 0,
		Fg:   RgbBackground,
		Bg:   RGBBlack,
	}
	b.touched[0] = false
	// Exponential copy for cells
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	// Exponential copy for touched
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

// inBounds returns true if in screen bounds
func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// ===== COMPOSITOR API =====

// Set composites a cell with specified blend mode
func (b *Buffer) Set(x, y int, mainRune rune, fg, bg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]

	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	// 1. Update Rune if provided
	if mainRune != 0 {
		dst.Rune = mainRune
	}

	// 2. Background Processing
	if flags&flagBg != 0 {
		switch op {
		case opReplace:
			dst.Bg = bg
		case opAlpha:
			dst.Bg = Blend(dst.Bg, bg, alpha)
		case opAdd:
			dst.Bg = Add(dst.Bg, bg, alpha)
		case opMax:
			dst.Bg = Max(dst.Bg, bg, alpha)
		case opScreen:
			dst.Bg = Screen(dst.Bg, bg, alpha)
		}
		// Always mark touched if we touched background
		b.touched[idx] = true
	}

	// 3. Foreground Processing
	if flags&flagFg != 0 {
		switch op {
		case opReplace:
			dst.Fg = fg
		case opAlpha:
			dst.Fg = Blend(dst.Fg, fg, alpha)
		case opAdd:
			dst.Fg = Add(dst.Fg, fg, alpha)
		case opMax:
			dst.Fg = Max(dst.Fg, fg, alpha)
		case opScreen:
			dst.Fg = Screen(dst.Fg, fg, alpha)
		}
	}
}

// SetFgOnly writes rune and foreground while preserving existing background
// Unwrapped for performance: Bypass BlendMode decoding and branching for high-frequency text rendering
// Does NOT mark cell as touched, allowing underlying background to persist or default in finalize()
func (b *Buffer) SetFgOnly(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]

	dst.Rune = r
	dst.Fg = fg
}

// SetBgOnly updates the background color while preserving existing rune/foreground
// Unwrapped for performance: Optimized for area effects avoiding full cell writes
// Marks cell as touched to prevent default background override
func (b *Buffer) SetBgOnly(x, y int, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x

	b.cells[idx].Bg = bg
	b.touched[idx] = true
}

// SetWithBg writes a cell with explicit fg and bg colors (opaque replace)
// Unwrapped for performance: This is the hot path for text rows and fills
func (b *Buffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]

	dst.Rune = r
	dst.Fg = fg
	dst.Bg = bg
	b.touched[idx] = true
}

// ===== OUTPUT =====

// finalize sets default background to untouched cells before Flush
func (b *Buffer) finalize() {
	for i := range b.cells {
		if !b.touched[i] {
			b.cells[i].Bg = RgbBackground
		}
	}
}

// Flush writes the composited frame to the tcell screen and shows it
// Called outside the world lock; the buffer is not shared with systems
func (b *Buffer) Flush(screen tcell.Screen) {
	b.finalize()

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := b.cells[y*b.width+x]

			r := cell.Rune
			if r == 0 {
				r = ' '
			}

			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(cell.Fg.R), int32(cell.Fg.G), int32(cell.Fg.B))).
				Background(tcell.NewRGBColor(int32(cell.Bg.R), int32(cell.Bg.G), int32(cell.Bg.B)))

			screen.SetContent(x, y, r, nil, style)
		}
	}

	screen.Show()
}
