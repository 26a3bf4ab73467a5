package parameter

// Screen Layout
const (
	// StatusBarRows is the number of rows reserved at the screen bottom
	StatusBarRows = 1
)

// Depth & Glow
const (
	// DepthShadeFloor is the brightness factor at the far plane
	// Front of the volume renders at 1.0, the back dims to this
	DepthShadeFloor = 0.35

	// FilamentGlowScale scales stroke color bled into cell backgrounds
	FilamentGlowScale = 0.30

	// EndpointGlowScale scales emission into the endpoint flare
	EndpointGlowScale = 0.55

	// MarkerHaloAlpha is the background mix strength under a marker
	MarkerHaloAlpha = 0.35
)
