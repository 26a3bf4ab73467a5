package render

// BlendMode defines compositing operations using a bitmask (Flags | Op)
type BlendMode uint8

// Blend Operations (0-15)
const (
	opReplace uint8 = 0x00
	opAlpha   uint8 = 0x01
	opAdd     uint8 = 0x02
	opMax     uint8 = 0x03
	opScreen  uint8 = 0x04
)

// Blend Flags
const (
	flagBg uint8 = 0x10 // Apply operation to Background
	flagFg uint8 = 0x20 // Apply operation to Foreground
)

// Pre-defined Blend Modes
const (
	// BlendAlphaBg mixes into the background only, preserving fg (halos)
	BlendAlphaBg = BlendMode(opAlpha | flagBg)

	// BlendAddBg accumulates into the background only (stacking glow)
	BlendAddBg = BlendMode(opAdd | flagBg)

	// BlendMaxFg keeps the brighter foreground per channel (crossing strokes)
	BlendMaxFg = BlendMode(opMax | flagFg)

	// BlendScreenBg lightens the background without blowing out (endpoint flare)
	BlendScreenBg = BlendMode(opScreen | flagBg)
)
