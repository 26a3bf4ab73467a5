package visual

import (
	"github.com/lixenwraith/filament/render"
)

// render.RGB color definitions for the installation layers
var (
	// Filament stroke gradient, cold at rest to hot at full emission
	RgbFilamentBase = render.RGB{58, 134, 255}  // Electric blue
	RgbFilamentHot  = render.RGB{214, 244, 255} // Near-white core

	// Endpoint markers
	RgbMarkerArrow = render.RGB{232, 197, 124} // Warm sand
	RgbMarkerHalo  = render.RGB{118, 86, 196}  // Violet bloom

	// Status bar
	RgbStatusBarBg  = render.RGB{24, 26, 48}    // Raised panel
	RgbStatusText   = render.RGB{164, 172, 200} // Body text
	RgbStatusDim    = render.RGB{92, 98, 130}   // Separators, labels
	RgbStatusAccent = render.RGB{125, 207, 255} // Live values

	// State badges
	RgbBadgePaused = render.RGB{240, 178, 92} // Amber
	RgbBadgeMuted  = render.RGB{202, 92, 112} // Rose
)
