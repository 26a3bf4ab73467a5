package input

import "github.com/gdamore/tcell/v2"

// KeyEntry describes a key's binding without function pointers
type KeyEntry struct {
	Intent IntentType
	Key    string
	Value  string
	Delta  float64
}

// KeyTable maps keys to intents
// Letters not bound here spawn drift nodes, so the whole alphabet is a
// playable surface
type KeyTable struct {
	// Special keys (Esc, Ctrl+*, arrows)
	Special map[tcell.Key]KeyEntry

	// Rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Special: map[tcell.Key]KeyEntry{
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyCtrlC:  {Intent: IntentQuit},

			tcell.KeyUp:    {Intent: IntentParamAdjust, Key: "scan.radius", Delta: 1},
			tcell.KeyDown:  {Intent: IntentParamAdjust, Key: "scan.radius", Delta: -1},
			tcell.KeyRight: {Intent: IntentParamAdjust, Key: "curve.curvature", Delta: 0.25},
			tcell.KeyLeft:  {Intent: IntentParamAdjust, Key: "curve.curvature", Delta: -0.25},
		},

		Runes: map[rune]KeyEntry{
			'q': {Intent: IntentQuit},
			'p': {Intent: IntentPauseToggle},
			'm': {Intent: IntentMuteToggle},

			'o': {Intent: IntentSpawnOrbit},
			'd': {Intent: IntentDespawnOldest},
			' ': {Intent: IntentPulseTrigger},

			'r': {Intent: IntentParamSet, Key: "admission.randomize_order", Value: "toggle"},
			's': {Intent: IntentParamSet, Key: "admission.sequential", Value: "toggle"},
		},
	}
}
