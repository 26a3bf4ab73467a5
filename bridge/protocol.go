package bridge

import (
	"fmt"

	"github.com/lixenwraith/filament/event"
)

// Inbound op names
const (
	OpSpawn   = "spawn"
	OpDespawn = "despawn"
	OpTrigger = "trigger"
	OpSet     = "set"
	OpMute    = "mute"
	OpQuit    = "quit"
)

// Command is one inbound control operation
// The op selects which of the optional fields matter
type Command struct {
	Op    string    `json:"op"`
	Kind  string    `json:"kind,omitempty"`  // spawn: "drift", "orbit", "playhead"
	Tag   string    `json:"tag,omitempty"`   // spawn: scan tag override
	Count int       `json:"count,omitempty"` // spawn: batch size
	Pos   []float64 `json:"pos,omitempty"`   // spawn: [x y z] placement
	Node  uint64    `json:"node,omitempty"`  // despawn: specific node, 0 = oldest
	Key   string    `json:"key,omitempty"`   // set: registry key
	Value string    `json:"value,omitempty"` // set: raw value
}

// Outbound notification names
const (
	EventEstablished = "connection_established"
	EventBroken      = "connection_broken"
	EventSpawned     = "node_spawned"
	EventDespawned   = "node_despawned"
	EventBeat        = "pulse"
	EventError       = "error"
)

// Notification is one outbound event fanned to every session
// Absent numeric fields decode as zero: slot 0 and beat 0 are valid
type Notification struct {
	Event  string `json:"event"`
	Hub    uint64 `json:"hub,omitempty"`
	Target uint64 `json:"target,omitempty"`
	Slot   int    `json:"slot,omitempty"`
	Node   uint64 `json:"node,omitempty"`
	Beat   int    `json:"beat,omitempty"`
	Accent bool   `json:"accent,omitempty"`
	Error  string `json:"error,omitempty"`
}

// kindByName maps a wire kind to a spawner node kind
// Empty selects drift, the default population
func kindByName(name string) (event.NodeKind, error) {
	switch name {
	case "", "drift":
		return event.NodeDrift, nil
	case "orbit":
		return event.NodeOrbit, nil
	case "playhead":
		return event.NodePlayhead, nil
	default:
		return event.NodeDrift, fmt.Errorf("unknown node kind %q", name)
	}
}
