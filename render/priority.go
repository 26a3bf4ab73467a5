package render

// RenderPriority determines render order. Lower values render first
type RenderPriority int

const (
	PriorityFilament RenderPriority = iota
	PriorityMarker
	PriorityNode
	PriorityUI
)
