package core

// Entity is a unique identifier for a scene entity
// IDs are never reused within a run; 0 is the null entity
type Entity uint64

// NullEntity is the zero value, never assigned to a live entity
const NullEntity Entity = 0
