package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityPulse    = 10 // Beat clock before anything that reacts to pulses
	PrioritySpawner  = 20
	PriorityLifetime = 30 // Sweeps expired nodes before motion
	PriorityDrift    = 40
	PriorityOrbit    = 50
	PrioritySpin     = 60
	PriorityDirector = 100 // After all motion so scans see settled positions
	PriorityAudio    = 200
	PriorityBridge   = 210 // After audio, fans out this tick's notifications
)
