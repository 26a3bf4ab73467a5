package engine

import (
	"reflect"
	"sync"
	"time"

	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/vmath"
)

// ResourceStore is a thread-safe container for global installation resources
// It allows systems to access shared data (Time, Scene, Audio) without
// coupling to the bootstrap code
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any
}

// NewResourceStore creates a new empty resource store
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		resources: make(map[reflect.Type]any),
	}
}

// AddResource registers or updates a resource in the store
// T should be the pointer type of the resource struct so systems share
// one mutable instance
func AddResource[T any](rs *ResourceStore, resource T) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	t := reflect.TypeOf(resource)
	rs.resources[t] = resource
}

// GetResource retrieves a resource of type T from the store
// Returns the zero value of T and false if not found
func GetResource[T any](rs *ResourceStore) (T, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	var target T
	t := reflect.TypeOf(target)

	val, ok := rs.resources[t]
	if !ok {
		return target, false
	}

	return val.(T), true
}

// MustGetResource retrieves a resource or panics if missing
// Useful for core resources (Time, Scene) that must exist
func MustGetResource[T any](rs *ResourceStore) T {
	res, ok := GetResource[T](rs)
	if !ok {
		var target T
		panic("Required resource not found: " + reflect.TypeOf(target).String())
	}
	return res
}

// === Core Resources ===

// TimeResource wraps time data for systems
// It is updated by the ClockScheduler at the start of a tick
type TimeResource struct {
	// SceneTime is the current time in the installation (affected by pause)
	SceneTime time.Time

	// RealTime is the wall-clock time (unaffected by pause)
	RealTime time.Time

	// DeltaTime is the duration since the last update
	DeltaTime time.Duration

	// Tick is the current simulation tick count
	Tick int64
}

// Update modifies TimeResource fields in-place (zero allocation)
// Must be called under world lock to prevent races with system reads
func (tr *TimeResource) Update(sceneTime, realTime time.Time, deltaTime time.Duration, tick int64) {
	tr.SceneTime = sceneTime
	tr.RealTime = realTime
	tr.DeltaTime = deltaTime
	tr.Tick = tick
}

// SceneResource holds the installation volume dimensions in world units
type SceneResource struct {
	Width  int
	Height int
	Depth  int
}

// Center returns the volume midpoint in Q32.32 coordinates
func (sr *SceneResource) Center() vmath.Vec3 {
	return vmath.Vec3{
		X: vmath.FromInt(sr.Width) / 2,
		Y: vmath.FromInt(sr.Height) / 2,
		Z: vmath.FromInt(sr.Depth) / 2,
	}
}

// EventQueueResource wraps the event queue for system access
type EventQueueResource struct {
	Queue *event.Queue
}

// AudioPlayer abstracts sound output for systems
// The audio package provides the production implementation; tests use stubs
type AudioPlayer interface {
	// Play queues a sound effect, returns false if dropped
	Play(sound core.SoundType) bool

	// ToggleMute flips mute state, returns new state
	ToggleMute() bool

	// IsMuted returns current mute state
	IsMuted() bool

	// IsRunning returns true if the audio engine is operational
	IsRunning() bool

	// SetVolume changes the master gain; rejects values outside [0,1]
	SetVolume(v float64) error
}

// AudioResource wraps the audio player interface
type AudioResource struct {
	Player AudioPlayer
}

// RandResource holds the deterministic random source shared by systems
// Seeded once at startup; all in-tick draws go through it so a run
// replays identically from the same seed
type RandResource struct {
	Rand *vmath.FastRand
}

// StatusResource carries the transient status-bar message
// Written by systems under the world lock, read by the status renderer
type StatusResource struct {
	Text  string
	Until time.Time
}

// Post replaces the status message until the given deadline
func (sr *StatusResource) Post(text string, until time.Time) {
	sr.Text = text
	sr.Until = until
}

// Current returns the message, or empty once the deadline passes
func (sr *StatusResource) Current(now time.Time) string {
	if sr.Text == "" || now.After(sr.Until) {
		return ""
	}
	return sr.Text
}
