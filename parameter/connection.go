package parameter

import "time"

// Detection
const (
	// DefaultScanRadius is the hub's detection radius in world units
	DefaultScanRadius = 12.0

	// DefaultScanInterval is the wall-clock period between proximity scans,
	// independent of the simulation tick rate
	DefaultScanInterval = 500 * time.Millisecond

	// DefaultScanTag is the tag nodes must carry to be eligible
	DefaultScanTag = "node"
)

// Admission
const (
	// DefaultMaxConnections is the slot capacity of one director
	DefaultMaxConnections = 10

	// MaxConnectionsLimit bounds runtime capacity changes
	MaxConnectionsLimit = 64

	// DefaultTimeBetweenConnections paces sequential admission/eviction:
	// at most one slot transition per interval
	DefaultTimeBetweenConnections = 200 * time.Millisecond
)

// Curve Geometry
const (
	// DefaultCurveSegments is the polyline point count per filament
	DefaultCurveSegments = 24

	// MaxCurveSegments bounds runtime segment changes
	MaxCurveSegments = 128

	// DefaultCurvature scales the perpendicular bulge
	DefaultCurvature = 1.0

	// ControlOffsetFactor converts curvature*distance into the control
	// point offset from the midpoint
	ControlOffsetFactor = 0.25

	// DegenerateEpsilon is the source/target distance below which the
	// curve collapses to the source point
	DegenerateEpsilon = 1e-6

	// DirectionFallbackThreshold is the squared cross-product magnitude
	// below which the reference axis is considered parallel
	DirectionFallbackThreshold = 0.01

	// FixedTrimCap limits a fixed-distance trim to this fraction of the
	// span per endpoint
	FixedTrimCap = 0.45

	// PercentTrimCap limits the combined percentage trim; beyond it both
	// trims rescale jointly, preserving their ratio
	PercentTrimCap = 0.90

	// DefaultSourceTrim / DefaultTargetTrim are percentage-mode defaults
	DefaultSourceTrim = 0.08
	DefaultTargetTrim = 0.08
)

// Emission
const (
	// DefaultEmissionDuration caps the easing sample window after a slot
	// is established
	DefaultEmissionDuration = 1200 * time.Millisecond

	// DefaultEmissionIntensity scales the sampled easing value
	DefaultEmissionIntensity = 1.0
)

// Curve Solve Dispatch
const (
	// SolverShards is the worker count the per-tick curve batch fans out to
	SolverShards = 4
)
