package event

import (
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/vmath"
)

// NodeKind selects the motion profile of a spawned node
type NodeKind int

const (
	NodeDrift NodeKind = iota
	NodeOrbit
	NodePlayhead
)

// SpawnRequestPayload describes a node to create
// Zero Pos means "pick a seeded random position"
type SpawnRequestPayload struct {
	Kind   NodeKind
	Tag    string
	Pos    vmath.Vec3
	HasPos bool
	Count  int // 0 means 1
}

// DespawnRequestPayload selects a node to retire
// Entity 0 with Oldest set retires the longest-lived node
type DespawnRequestPayload struct {
	Entity core.Entity
	Oldest bool
}

// PulsePayload is one sequencer beat
type PulsePayload struct {
	Beat   int  // Monotonic beat counter
	Accent bool // Every fourth beat
}

// ConnectionPayload identifies a slot transition
type ConnectionPayload struct {
	Director core.Entity
	Target   core.Entity
	Slot     int
}

// ParamSetPayload carries one runtime tunable assignment
// Value is the raw string form; the setter registry parses and validates
type ParamSetPayload struct {
	Key   string
	Value string
}

// ParamAdjustPayload nudges a numeric tunable relative to its current value
type ParamAdjustPayload struct {
	Key   string
	Delta float64
}
