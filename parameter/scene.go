package parameter

import "time"

// Installation Volume (world units)
const (
	DefaultVolumeWidth  = 64
	DefaultVolumeHeight = 40
	DefaultVolumeDepth  = 32
)

// Node Population
const (
	// DefaultMaxNodes caps the total node count regardless of spawn source
	DefaultMaxNodes = 64

	// DefaultNodeTTL is the age at which unattended nodes are swept
	DefaultNodeTTL = 45 * time.Second

	// DefaultTargetPopulation is the node count the pulse sequencer drifts toward
	DefaultTargetPopulation = 14
)

// Node Motion
const (
	// DriftSpeedMin/Max bound the random walk speed (units/second)
	DriftSpeedMin = 0.6
	DriftSpeedMax = 2.4

	// DriftWanderInterval is how often a drifting node picks a new heading
	DriftWanderInterval = 3 * time.Second

	// WallMargin is the soft-repulsion distance from the volume faces
	WallMargin = 3.0

	// OrbitRadiusFactor scales the ring radius from the volume's short axis
	OrbitRadiusFactor = 0.35

	// OrbitTurnsPerSecondMin/Max bound per-node angular velocity
	OrbitTurnsPerSecondMin = 0.02
	OrbitTurnsPerSecondMax = 0.08

	// PlayheadTurnsPerSecond is the bright ring-runner's angular velocity
	PlayheadTurnsPerSecond = 0.15

	// SpinTurnsPerSecond drives the node glyph rotation
	SpinTurnsPerSecond = 0.5
)

// Pulse Sequencer
const (
	DefaultPulseBPM = 90

	// MinPulseBPM / MaxPulseBPM bound runtime tempo changes
	MinPulseBPM = 20
	MaxPulseBPM = 300

	// PulseSpawnChance is the per-pulse probability (percent) of an
	// auto-spawn when the population sits below target
	PulseSpawnChance = 55

	// PulseDespawnChance is the per-pulse probability (percent) of an
	// age-despawn when the population sits above target
	PulseDespawnChance = 35
)
