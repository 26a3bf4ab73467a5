package parameter

import "time"

// Engine Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// SimUpdateInterval is the simulation tick interval (clock tick)
	SimUpdateInterval = 50 * time.Millisecond
)

// StatusMessageDuration is how long a status-bar message stays visible
const StatusMessageDuration = 4 * time.Second

// ECS & Resource Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047
)

// MaxEntitiesPerCell set to 15 to ensure the Cell struct fits exactly into 128 bytes
// (2 cache lines) when Entity is uint64 (8 bytes)
// 15 * 8 (Entities) + 1 (Count) + 7 (Padding) = 128 bytes
const MaxEntitiesPerCell = 15

// Spatial Index
const (
	// CellShift is the power-of-two size of one index cell in world units (4)
	CellShift = 2
)
