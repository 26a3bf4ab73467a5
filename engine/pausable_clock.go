package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides pausable scene time with pause duration tracking
// All readings come from the injected base provider so the clock can be
// driven by a mock in tests
type PausableClock struct {
	mu sync.RWMutex

	// Base time tracking
	realStartTime  time.Time // When clock was created (real time)
	sceneStartTime time.Time // Scene time epoch (adjusted for pauses)

	// Pause state
	isPaused        atomic.Bool
	pauseStartTime  time.Time     // When current pause started (real time)
	totalPausedTime time.Duration // Cumulative pause duration

	base TimeProvider
}

// NewPausableClock creates a new pausable clock over the given provider
func NewPausableClock(base TimeProvider) *PausableClock {
	now := base.Now()
	return &PausableClock{
		realStartTime:  now,
		sceneStartTime: now,
		base:           base,
	}
}

// Now returns current scene time (affected by pause)
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		// During pause: return frozen time at pause point
		return pc.sceneStartTime.Add(pc.pauseStartTime.Sub(pc.realStartTime) - pc.totalPausedTime)
	}

	// Scene elapsed = real elapsed - total paused time
	realElapsed := pc.base.Now().Sub(pc.realStartTime)
	sceneElapsed := realElapsed - pc.totalPausedTime
	return pc.sceneStartTime.Add(sceneElapsed)
}

// RealTime returns actual wall clock time (unaffected by pause)
func (pc *PausableClock) RealTime() time.Time {
	return pc.base.Now()
}

// Pause stops scene time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStartTime = pc.base.Now()
	}
}

// Resume continues scene time advancement
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()

		if !pc.pauseStartTime.IsZero() {
			pauseDuration := pc.base.Now().Sub(pc.pauseStartTime)
			pc.totalPausedTime += pauseDuration
			pc.pauseStartTime = time.Time{}
		}
	}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		// Include current pause duration
		total += pc.base.Now().Sub(pc.pauseStartTime)
	}
	return total
}
