package engine

import (
	"sync"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/vmath"
)

// PositionStore is a specialized store for Position that maintains a
// spatial index for radius queries. Every mutation goes through the
// overrides below so the index never drifts from the component data
type PositionStore struct {
	*Store[component.Position]
	index        *SpatialIndex
	spatialMutex sync.RWMutex
}

// NewPositionStore creates a position store indexing the given volume
// (dimensions in world units)
func NewPositionStore(width, height, depth int) *PositionStore {
	return &PositionStore{
		Store: NewStore[component.Position](),
		index: NewSpatialIndex(width, height, depth),
	}
}

// Set overrides the base Store.Set to maintain spatial index consistency
func (ps *PositionStore) Set(e core.Entity, pos component.Position) {
	ps.spatialMutex.Lock()
	defer ps.spatialMutex.Unlock()

	if old, exists := ps.Store.Get(e); exists {
		ps.index.Move(e, old.Pos, pos.Pos)
	} else {
		ps.index.Insert(e, pos.Pos)
	}
	ps.Store.Set(e, pos)
}

// Remove overrides the base Store.Remove to maintain spatial index consistency
func (ps *PositionStore) Remove(e core.Entity) {
	ps.spatialMutex.Lock()
	defer ps.spatialMutex.Unlock()

	if pos, exists := ps.Store.Get(e); exists {
		ps.index.Remove(e, pos.Pos)
	}
	ps.Store.Remove(e)
}

// RemoveBatch overrides the base Store.RemoveBatch; the promoted method
// would skip the index removals
func (ps *PositionStore) RemoveBatch(entities []core.Entity) {
	if len(entities) == 0 {
		return
	}

	ps.spatialMutex.Lock()
	defer ps.spatialMutex.Unlock()

	for _, e := range entities {
		if pos, exists := ps.Store.Get(e); exists {
			ps.index.Remove(e, pos.Pos)
		}
	}
	ps.Store.RemoveBatch(entities)
}

// Clear overrides base Clear to also clear the spatial index
func (ps *PositionStore) Clear() {
	ps.spatialMutex.Lock()
	defer ps.spatialMutex.Unlock()

	ps.Store.Clear()
	ps.index.Clear()
}

// CollectInRadius appends candidate entities near origin to out
// Over-collects at cell granularity; callers filter by exact distance
func (ps *PositionStore) CollectInRadius(origin vmath.Vec3, radius int64, out []core.Entity) []core.Entity {
	ps.spatialMutex.RLock()
	defer ps.spatialMutex.RUnlock()
	return ps.index.CollectInRadius(origin, radius, out)
}
