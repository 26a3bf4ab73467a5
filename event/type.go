package event

// EventType represents the type of installation event
type EventType int

const (
	// === Control Events ===

	// EventQuit requests shutdown of the installation
	// Trigger: InputHandler (q/Esc/Ctrl+C), bridge "quit" op, OS signal
	// Consumer: main loop | Payload: nil
	EventQuit EventType = iota

	// EventPauseToggle freezes or resumes scene time
	// Trigger: InputHandler (p)
	// Consumer: main loop | Payload: nil
	EventPauseToggle

	// EventMuteToggle flips audio output
	// Trigger: InputHandler (m), bridge "mute" op
	// Consumer: AudioSystem | Payload: nil
	EventMuteToggle

	// EventParamSet applies a runtime tunable through the setter registry
	// Trigger: InputHandler (toggles), bridge "set" op
	// Consumer: DirectorSystem | Payload: *ParamSetPayload
	EventParamSet

	// EventParamAdjust nudges a numeric tunable by a delta
	// Trigger: InputHandler (arrow keys)
	// Consumer: DirectorSystem | Payload: *ParamAdjustPayload
	EventParamAdjust

	// === Population Events ===

	// EventSpawnRequest asks the spawner for a new node
	// Trigger: InputHandler (letters, o), PulseSystem auto-spawn, bridge "spawn" op
	// Consumer: SpawnerSystem | Payload: *SpawnRequestPayload
	EventSpawnRequest

	// EventDespawnRequest asks the spawner to retire a node
	// Trigger: InputHandler (d), PulseSystem age-out, bridge "despawn" op
	// Consumer: SpawnerSystem | Payload: *DespawnRequestPayload
	EventDespawnRequest

	// EventNodeSpawned signals a node entered the scene
	// Trigger: SpawnerSystem
	// Consumer: AudioSystem, BridgeSystem | Payload: packed entity (uint64)
	EventNodeSpawned

	// EventNodeDespawned signals a node left the scene
	// Trigger: SpawnerSystem, LifetimeSystem
	// Consumer: AudioSystem, BridgeSystem | Payload: packed entity (uint64)
	EventNodeDespawned

	// === Rhythm Events ===

	// EventPulse is one beat of the internal sequencer
	// Trigger: PulseSystem on BPM schedule, bridge "trigger" op
	// Consumer: AudioSystem, renderers via scene state | Payload: *PulsePayload
	EventPulse

	// === Connection Events ===

	// EventConnectionEstablished signals a slot became occupied
	// Trigger: DirectorSystem at promotion
	// Consumer: AudioSystem, BridgeSystem | Payload: *ConnectionPayload
	EventConnectionEstablished

	// EventConnectionBroken signals a slot was vacated
	// Trigger: DirectorSystem at eviction
	// Consumer: AudioSystem, BridgeSystem | Payload: *ConnectionPayload
	EventConnectionBroken
)

// Event is one queued installation event
type Event struct {
	Type    EventType
	Payload any
	Frame   int64
}
