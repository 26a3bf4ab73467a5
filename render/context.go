package render

import (
	"time"

	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/parameter"
)

// Context provides frame state for renderers, passed by value
type Context struct {
	// Time state
	SceneTime time.Time
	RealTime  time.Time
	DeltaTime float64
	Paused    bool
	Muted     bool

	// Scene volume dimensions (world units)
	SceneWidth  int
	SceneHeight int
	SceneDepth  int

	// Scene centering offset (screen coordinates)
	// Non-zero when the scene is smaller than the drawable area
	OffsetX int
	OffsetY int

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int
}

// NewContext builds a frame context from the scene and time resources
// Called under the world lock so TimeResource reads are consistent
// The bottom StatusBarRows rows are reserved; the scene centers in the rest
func NewContext(scene *engine.SceneResource, times *engine.TimeResource, screenWidth, screenHeight int, paused, muted bool) Context {
	drawableHeight := screenHeight - parameter.StatusBarRows

	offsetX := 0
	offsetY := 0
	if scene.Width < screenWidth {
		offsetX = (screenWidth - scene.Width) / 2
	}
	if scene.Height < drawableHeight {
		offsetY = (drawableHeight - scene.Height) / 2
	}

	return Context{
		SceneTime: times.SceneTime,
		RealTime:  times.RealTime,
		DeltaTime: times.DeltaTime.Seconds(),
		Paused:    paused,
		Muted:     muted,

		SceneWidth:  scene.Width,
		SceneHeight: scene.Height,
		SceneDepth:  scene.Depth,

		OffsetX: offsetX,
		OffsetY: offsetY,

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// SceneToScreen converts scene cell coordinates to screen coordinates
// Returns (sx, sy, visible) where visible=false if outside the scene
// volume or the screen
func (rc *Context) SceneToScreen(sceneX, sceneY int) (int, int, bool) {
	if sceneX < 0 || sceneX >= rc.SceneWidth || sceneY < 0 || sceneY >= rc.SceneHeight {
		return 0, 0, false
	}
	sx := sceneX + rc.OffsetX
	sy := sceneY + rc.OffsetY
	if sx < 0 || sx >= rc.ScreenWidth || sy < 0 || sy >= rc.ScreenHeight-parameter.StatusBarRows {
		return 0, 0, false
	}
	return sx, sy, true
}

// DepthShade maps scene depth to a brightness factor
// z=0 (nearest) is full brightness, the far plane dims to DepthShadeFloor
func (rc *Context) DepthShade(z float64) float64 {
	if rc.SceneDepth <= 0 {
		return 1.0
	}
	t := z / float64(rc.SceneDepth)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return 1.0 - t*(1.0-parameter.DepthShadeFloor)
}
