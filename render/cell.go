package render

// Cell is one composited screen cell
// Fg colors the rune, Bg fills behind it
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Predefined default colors
var (
	RGBBlack = RGB{0, 0, 0}

	// RgbBackground is the default backdrop (deep night blue)
	RgbBackground = RGB{10, 11, 22}
)
