package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// Installation control
	IntentQuit        // q, Esc, Ctrl+C
	IntentPauseToggle // p
	IntentMuteToggle  // m
	IntentResize      // Terminal resize event

	// Population
	IntentSpawnDrift    // Any unbound letter
	IntentSpawnOrbit    // o
	IntentDespawnOldest // d
	IntentPulseTrigger  // Space

	// Runtime tunables
	IntentParamSet    // r, s (bool toggles through the setter registry)
	IntentParamAdjust // Arrow keys (radius, curvature)
)

// Intent represents a parsed semantic action
// Pure data struct with no function pointers or engine dependencies
type Intent struct {
	Type  IntentType
	Key   string  // Registry key for param intents
	Value string  // Absolute value for IntentParamSet
	Delta float64 // Signed nudge for IntentParamAdjust
}
