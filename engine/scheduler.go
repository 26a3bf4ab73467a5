package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/filament/core"
)

// ClockScheduler drives the simulation on a fixed tick
// Handles pause-aware scheduling without busy-wait and keeps the tick
// cadence drift-corrected against scene time
type ClockScheduler struct {
	world   *World
	timeRes *TimeResource

	pausableClock *PausableClock
	isPaused      *atomic.Bool

	// Tick configuration
	tickInterval     time.Duration
	lastTickTime     time.Time // Last tick in scene time
	nextTickDeadline time.Time // Next tick deadline for drift correction

	tickCount atomic.Int64
	mu        sync.RWMutex

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Frame synchronization channels
	frameReady <-chan struct{} // Receive signal that frame is ready
	updateDone chan<- struct{} // Send signal that update is complete

	// Event routing
	eventRouter *EventRouter
}

// NewClockScheduler creates a scheduler with the specified tick interval
// Receives the frameReady sync channel and returns the updateDone channel
// the render loop waits on
func NewClockScheduler(
	world *World,
	pausableClock *PausableClock,
	isPaused *atomic.Bool,
	tickInterval time.Duration,
	frameReady <-chan struct{},
) (*ClockScheduler, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)

	timeRes := MustGetResource[*TimeResource](world.Resources)
	eqRes := MustGetResource[*EventQueueResource](world.Resources)

	cs := &ClockScheduler{
		world:         world,
		pausableClock: pausableClock,
		isPaused:      isPaused,
		tickInterval:  tickInterval,
		timeRes:       timeRes,
		lastTickTime:  pausableClock.Now(),
		eventRouter:   NewEventRouter(eqRes.Queue),
		frameReady:    frameReady,
		updateDone:    updateDone,
		stopChan:      make(chan struct{}),
	}

	return cs, updateDone
}

// RegisterEventHandler adds an event handler to the router
// Must be called before Start()
func (cs *ClockScheduler) RegisterEventHandler(handler EventHandler) {
	cs.eventRouter.Register(handler)
}

// TickCounter exposes the tick source for World.SetEventMetadata
func (cs *ClockScheduler) TickCounter() *atomic.Int64 {
	return &cs.tickCount
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		// Use core.Go for safe execution with centralized crash handling
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// schedulerLoop runs the main scheduling loop with pause awareness
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = cs.pausableClock.Now().Add(cs.tickInterval)
	cs.lastTickTime = cs.pausableClock.Now()
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		var sleepDuration time.Duration

		if cs.isPaused.Load() {
			// Scene time is frozen, but the control surface stays live:
			// mute, quit, and parameter changes from any producer still
			// dispatch. Systems do not update, so nothing moves
			cs.world.RunSafe(func() {
				cs.timeRes.Update(cs.pausableClock.Now(), cs.pausableClock.RealTime(), 0, cs.tickCount.Load())
				cs.eventRouter.DispatchAll(cs.world)
			})

			// Increase sleep interval while paused to save CPU
			sleepDuration = cs.tickInterval * 2
		} else {
			sceneNow := cs.pausableClock.Now()

			cs.mu.RLock()
			deadline := cs.nextTickDeadline
			cs.mu.RUnlock()

			if !sceneNow.Before(deadline) {
				select {
				case <-cs.frameReady:
				case <-time.After(cs.tickInterval * 2):
				case <-cs.stopChan:
					return
				}

				cs.processTick()

				cs.mu.Lock()
				cs.lastTickTime = sceneNow
				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)

				maxBehind := cs.tickInterval * 2
				if sceneNow.Sub(cs.nextTickDeadline) > maxBehind {
					cs.nextTickDeadline = sceneNow.Add(cs.tickInterval)
				}
				deadline = cs.nextTickDeadline
				cs.mu.Unlock()

				select {
				case cs.updateDone <- struct{}{}:
				default:
				}

				sleepDuration = deadline.Sub(cs.pausableClock.Now())
				if sleepDuration < 0 {
					sleepDuration = 0
				}
			} else {
				sleepDuration = deadline.Sub(sceneNow)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}

// DispatchEventsImmediately processes all pending events synchronously
// Used during bootstrap and shutdown when the loop is not running
func (cs *ClockScheduler) DispatchEventsImmediately() {
	cs.world.RunSafe(func() {
		cs.eventRouter.DispatchAll(cs.world)
	})
}

// TickCount returns the number of completed ticks
func (cs *ClockScheduler) TickCount() int64 {
	return cs.tickCount.Load()
}

// processTick executes one clock cycle
func (cs *ClockScheduler) processTick() {
	if cs.isPaused.Load() {
		return
	}

	cs.world.RunSafe(func() {
		tick := cs.tickCount.Add(1)

		now := cs.pausableClock.Now()
		cs.timeRes.Update(now, cs.pausableClock.RealTime(), cs.tickInterval, tick)

		// Process events (input -> systems)
		cs.eventRouter.DispatchAll(cs.world)

		// Run systems
		cs.world.UpdateLocked(cs.tickInterval)
	})
}
