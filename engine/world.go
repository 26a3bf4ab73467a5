package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/event"
)

// System is an interface that all systems must implement
type System interface {
	// Init prepares the system once before the scheduler starts
	Init(w *World) error

	// Update advances the system by one tick
	Update(w *World, dt time.Duration)

	// Priority orders system execution; lower values run first
	Priority() int
}

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	// Global resource store
	Resources *ResourceStore

	// Position store (special - maintains the spatial index)
	Positions *PositionStore

	// Component stores (public for direct system access)
	Nodes     *Store[component.Node]
	Glyphs    *Store[component.Glyph]
	Spins     *Store[component.Spin]
	Drifts    *Store[component.Drift]
	Orbits    *Store[component.Orbit]
	Lifetimes *Store[component.Lifetime]
	Hubs      *Store[component.Hub]
	Markers   *Store[component.Marker]

	// Lifecycle registry - all stores implement AnyStore for uniform cleanup
	allStores []AnyStore

	// Direct pointers for high-frequency event emission
	eventQueue *event.Queue
	tickSource *atomic.Int64

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a new ECS world indexing a volume of the given
// dimensions in world units
func NewWorld(width, height, depth int) *World {
	w := &World{
		nextEntityID: 1,
		Resources:    NewResourceStore(),
		Positions:    NewPositionStore(width, height, depth),
		Nodes:        NewStore[component.Node](),
		Glyphs:       NewStore[component.Glyph](),
		Spins:        NewStore[component.Spin](),
		Drifts:       NewStore[component.Drift](),
		Orbits:       NewStore[component.Orbit](),
		Lifetimes:    NewStore[component.Lifetime](),
		Hubs:         NewStore[component.Hub](),
		Markers:      NewStore[component.Marker](),
		systems:      make([]System, 0),
	}

	// Positions registers as the PositionStore wrapper, not the inner
	// store, so spatial index cleanup rides along with removals
	w.allStores = []AnyStore{
		w.Positions,
		w.Nodes,
		w.Glyphs,
		w.Spins,
		w.Drifts,
		w.Orbits,
		w.Lifetimes,
		w.Hubs,
		w.Markers,
	}

	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	for _, store := range w.allStores {
		store.Remove(e)
	}
}

// DestroyEntities removes all components for multiple entities using
// single-pass batch removal on every store
func (w *World) DestroyEntities(entities []core.Entity) {
	if len(entities) == 0 {
		return
	}
	for _, store := range w.allStores {
		store.RemoveBatch(entities)
	}
}

// HasAnyComponent checks if an entity has at least one component
// Useful for validating entity existence
func (w *World) HasAnyComponent(e core.Entity) bool {
	for _, store := range w.allStores {
		if store.Has(e) {
			return true
		}
	}
	return false
}

// EntityCount returns the number of IDs handed out so far, not the
// count of live entities. For accurate counts, query specific stores
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return int(w.nextEntityID - 1)
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextEntityID = 1
	for _, store := range w.allStores {
		store.Clear()
	}
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems
// Used by the scheduler for event handler auto-registration
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// InitSystems runs every system's Init in priority order
// Must be called after all AddSystem calls and before the scheduler starts
func (w *World) InitSystems() error {
	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		if err := system.Init(w); err != nil {
			return err
		}
	}
	return nil
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires the world's update mutex
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// Unlock releases the update mutex
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}

// Update runs all systems sequentially
func (w *World) Update(dt time.Duration) {
	w.RunSafe(func() {
		w.UpdateLocked(dt)
	})
}

// UpdateLocked runs all systems assuming the caller already holds updateMutex
func (w *World) UpdateLocked(dt time.Duration) {
	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		system.Update(w, dt)
	}
}

// SetEventMetadata wires the direct pointers for PushEvent
// Called once during bootstrap
func (w *World) SetEventMetadata(q *event.Queue, tick *atomic.Int64) {
	w.eventQueue = q
	w.tickSource = tick
}

// PushEvent emits an installation event using direct cached pointers
// This is the hot-path for all system communication
func (w *World) PushEvent(eventType event.EventType, payload any) {
	if w.eventQueue == nil || w.tickSource == nil {
		return // Not yet initialized
	}

	w.eventQueue.Push(event.Event{
		Type:    eventType,
		Payload: payload,
		Frame:   w.tickSource.Load(),
	})
}
