package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/filament/event"
)

// countingSystem counts Update calls for scheduler tests
type countingSystem struct {
	updates atomic.Int32
}

func (s *countingSystem) Init(w *World) error { return nil }

func (s *countingSystem) Update(w *World, dt time.Duration) {
	s.updates.Add(1)
}

func (s *countingSystem) Priority() int { return 10 }

func newSchedulerFixture() (*World, *PausableClock, *atomic.Bool) {
	w := newTestWorld()
	AddResource(w.Resources, &TimeResource{})
	AddResource(w.Resources, &EventQueueResource{Queue: event.NewQueue()})
	clock := NewPausableClock(NewMonotonicTimeProvider())
	var paused atomic.Bool
	return w, clock, &paused
}

// feedFrames keeps the frameReady channel satisfied until stop closes
func feedFrames(frameReady chan<- struct{}, stop <-chan struct{}) {
	go func() {
		for {
			select {
			case frameReady <- struct{}{}:
			case <-stop:
				return
			}
		}
	}()
}

// Test the scheduler ticks systems and stamps the time resource
func TestSchedulerTicks(t *testing.T) {
	w, clock, paused := newSchedulerFixture()
	sys := &countingSystem{}
	w.AddSystem(sys)

	frameReady := make(chan struct{}, 1)
	stopFeed := make(chan struct{})
	feedFrames(frameReady, stopFeed)
	defer close(stopFeed)

	cs, updateDone := NewClockScheduler(w, clock, paused, 10*time.Millisecond, frameReady)
	cs.Start()

	// First completed tick must signal the render loop
	select {
	case <-updateDone:
	case <-time.After(time.Second):
		t.Fatal("Expected an updateDone signal within 1s")
	}

	time.Sleep(120 * time.Millisecond)
	cs.Stop()

	ticks := cs.TickCount()
	if ticks < 3 {
		t.Errorf("Expected at least 3 ticks in 120ms at 10ms interval, got %d", ticks)
	}
	if got := int64(sys.updates.Load()); got != ticks {
		t.Errorf("Expected one system update per tick (%d), got %d", ticks, got)
	}

	tr := MustGetResource[*TimeResource](w.Resources)
	if tr.Tick != ticks {
		t.Errorf("Expected time resource tick %d, got %d", ticks, tr.Tick)
	}
	if tr.DeltaTime != 10*time.Millisecond {
		t.Errorf("Expected delta 10ms, got %v", tr.DeltaTime)
	}
}

// Test pause gates ticking and resume restores it
func TestSchedulerPauseGating(t *testing.T) {
	w, clock, paused := newSchedulerFixture()
	sys := &countingSystem{}
	w.AddSystem(sys)

	frameReady := make(chan struct{}, 1)
	stopFeed := make(chan struct{})
	feedFrames(frameReady, stopFeed)
	defer close(stopFeed)

	paused.Store(true)
	clock.Pause()

	cs, _ := NewClockScheduler(w, clock, paused, 10*time.Millisecond, frameReady)
	cs.Start()
	defer cs.Stop()

	time.Sleep(80 * time.Millisecond)
	if got := cs.TickCount(); got != 0 {
		t.Errorf("Expected no ticks while paused, got %d", got)
	}

	paused.Store(false)
	clock.Resume()

	deadline := time.Now().Add(time.Second)
	for cs.TickCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if cs.TickCount() == 0 {
		t.Error("Expected ticks to resume after unpause")
	}
}

// Test queued events reach registered handlers during ticks
func TestSchedulerDispatchesEvents(t *testing.T) {
	w, clock, paused := newSchedulerFixture()
	w.AddSystem(&countingSystem{})

	frameReady := make(chan struct{}, 1)
	stopFeed := make(chan struct{})
	feedFrames(frameReady, stopFeed)
	defer close(stopFeed)

	cs, _ := NewClockScheduler(w, clock, paused, 10*time.Millisecond, frameReady)

	handler := &recordingHandler{types: []event.EventType{event.EventPulse}}
	cs.RegisterEventHandler(handler)

	q := MustGetResource[*EventQueueResource](w.Resources).Queue
	q.Push(event.Event{Type: event.EventPulse})
	q.Push(event.Event{Type: event.EventPulse})

	cs.Start()
	time.Sleep(80 * time.Millisecond)
	cs.Stop()

	if len(handler.seen) != 2 {
		t.Errorf("Expected 2 dispatched events, got %d", len(handler.seen))
	}
}

// Test the control surface stays live under pause: queued events
// still dispatch even though no ticks run
func TestSchedulerPausedDispatch(t *testing.T) {
	w, clock, paused := newSchedulerFixture()
	sys := &countingSystem{}
	w.AddSystem(sys)

	frameReady := make(chan struct{}, 1)
	stopFeed := make(chan struct{})
	feedFrames(frameReady, stopFeed)
	defer close(stopFeed)

	paused.Store(true)
	clock.Pause()

	cs, _ := NewClockScheduler(w, clock, paused, 10*time.Millisecond, frameReady)
	handler := &recordingHandler{types: []event.EventType{event.EventMuteToggle}}
	cs.RegisterEventHandler(handler)

	q := MustGetResource[*EventQueueResource](w.Resources).Queue
	q.Push(event.Event{Type: event.EventMuteToggle})

	cs.Start()
	time.Sleep(100 * time.Millisecond)
	cs.Stop()

	if len(handler.seen) != 1 {
		t.Errorf("Expected the queued event to dispatch while paused, saw %d", len(handler.seen))
	}
	if got := cs.TickCount(); got != 0 {
		t.Errorf("Expected no ticks while paused, got %d", got)
	}
	if got := sys.updates.Load(); got != 0 {
		t.Errorf("Expected no system updates while paused, got %d", got)
	}
}

// Test stop halts the loop and is idempotent
func TestSchedulerStop(t *testing.T) {
	w, clock, paused := newSchedulerFixture()

	frameReady := make(chan struct{}, 1)
	stopFeed := make(chan struct{})
	feedFrames(frameReady, stopFeed)
	defer close(stopFeed)

	cs, _ := NewClockScheduler(w, clock, paused, 10*time.Millisecond, frameReady)
	cs.Start()
	time.Sleep(40 * time.Millisecond)

	cs.Stop()
	cs.Stop()

	after := cs.TickCount()
	time.Sleep(50 * time.Millisecond)
	if got := cs.TickCount(); got != after {
		t.Errorf("Expected tick count frozen after stop, got %d then %d", after, got)
	}
}
