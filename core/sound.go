package core

// SoundType represents different sound effects
type SoundType int

const (
	SoundChime SoundType = iota // Connection established
	SoundTick                   // Connection broken
	SoundBlip                   // Node spawned
	SoundFade                   // Node despawned
	SoundBeat                   // Sequencer pulse
	SoundAccent                 // Accented sequencer pulse
	SoundTypeCount
)
