package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Handler parses tcell events into semantic Intents
type Handler struct {
	keys *KeyTable
}

// NewHandler creates a handler with the default key bindings
func NewHandler() *Handler {
	return &Handler{keys: DefaultKeyTable()}
}

// Process parses a terminal event and returns an Intent
// Returns nil for events with no binding
func (h *Handler) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.processKey(ev)
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	}
	return nil
}

func (h *Handler) processKey(ev *tcell.EventKey) *Intent {
	if ev.Key() != tcell.KeyRune {
		if entry, ok := h.keys.Special[ev.Key()]; ok {
			return entry.intent()
		}
		return nil
	}

	r := ev.Rune()
	if entry, ok := h.keys.Runes[r]; ok {
		return entry.intent()
	}

	// Unbound letters feed the scene
	if unicode.IsLetter(r) {
		return &Intent{Type: IntentSpawnDrift}
	}
	return nil
}

func (e KeyEntry) intent() *Intent {
	return &Intent{
		Type:  e.Intent,
		Key:   e.Key,
		Value: e.Value,
		Delta: e.Delta,
	}
}
