package component

import (
	"time"
)

// Node marks an entity as a connectable scene member
// The tag is matched against each hub's scan filter
type Node struct {
	Tag    string
	Seq    uint64 // Spawn ordinal, oldest-first despawn key
	BornAt time.Time
}

// Lifetime retires an entity when scene time passes ExpiresAt
type Lifetime struct {
	ExpiresAt time.Time
}
