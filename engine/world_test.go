package engine

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/event"
)

// orderedSystem records Update invocations for priority tests
type orderedSystem struct {
	name     string
	priority int
	log      *[]string
	initErr  error
}

func (s *orderedSystem) Init(w *World) error               { return s.initErr }
func (s *orderedSystem) Update(w *World, dt time.Duration) { *s.log = append(*s.log, s.name) }
func (s *orderedSystem) Priority() int                     { return s.priority }

func newTestWorld() *World {
	return NewWorld(16, 8, 8)
}

// Test entity IDs are sequential and never reused
func TestWorldCreateEntity(t *testing.T) {
	w := newTestWorld()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	if e1 == core.NullEntity {
		t.Error("Expected non-null entity ID")
	}
	if e2 != e1+1 {
		t.Errorf("Expected sequential IDs, got %d then %d", e1, e2)
	}
	if w.EntityCount() != 2 {
		t.Errorf("Expected entity count 2, got %d", w.EntityCount())
	}
}

// Test destroy removes the entity from every store including the index
func TestWorldDestroyEntityCleansAllStores(t *testing.T) {
	w := newTestWorld()

	e := w.CreateEntity()
	w.Positions.Set(e, positionAt(1, 1, 1))
	w.Nodes.Set(e, component.Node{Tag: "node"})
	w.Glyphs.Set(e, component.Glyph{Rune: 'o'})
	w.Lifetimes.Set(e, component.Lifetime{})

	w.DestroyEntity(e)

	if w.HasAnyComponent(e) {
		t.Error("Expected all components removed")
	}
	if containsEntity(queryNear(w.Positions, 1, 1, 1, 2), e) {
		t.Error("Expected destroyed entity out of the spatial index")
	}
}

// Test batch destroy sweeps every store in one pass
func TestWorldDestroyEntities(t *testing.T) {
	w := newTestWorld()

	var batch []core.Entity
	for i := 0; i < 4; i++ {
		e := w.CreateEntity()
		w.Positions.Set(e, positionAt(1+i*4, 1, 1))
		w.Nodes.Set(e, component.Node{Tag: "node"})
		if i%2 == 0 {
			batch = append(batch, e)
		}
	}

	w.DestroyEntities(batch)

	if w.Nodes.Count() != 2 {
		t.Errorf("Expected 2 nodes to survive, got %d", w.Nodes.Count())
	}
	for _, e := range batch {
		if w.HasAnyComponent(e) {
			t.Errorf("Expected entity %d fully removed", e)
		}
	}
}

// Test clear resets entity IDs and all stores
func TestWorldClear(t *testing.T) {
	w := newTestWorld()

	e := w.CreateEntity()
	w.Positions.Set(e, positionAt(1, 1, 1))
	w.Hubs.Set(e, component.Hub{Label: "hub"})

	w.Clear()

	if w.EntityCount() != 0 {
		t.Errorf("Expected entity count 0 after clear, got %d", w.EntityCount())
	}
	if w.Hubs.Count() != 0 || w.Positions.Count() != 0 {
		t.Error("Expected all stores empty after clear")
	}

	next := w.CreateEntity()
	if next != core.Entity(1) {
		t.Errorf("Expected IDs to restart at 1 after clear, got %d", next)
	}
}

// Test systems run in ascending priority order regardless of registration order
func TestWorldSystemPriorityOrder(t *testing.T) {
	w := newTestWorld()
	var log []string

	w.AddSystem(&orderedSystem{name: "late", priority: 90, log: &log})
	w.AddSystem(&orderedSystem{name: "early", priority: 10, log: &log})
	w.AddSystem(&orderedSystem{name: "mid", priority: 50, log: &log})

	w.Update(time.Millisecond)

	want := []string{"early", "mid", "late"}
	if len(log) != len(want) {
		t.Fatalf("Expected %d updates, got %d", len(want), len(log))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Expected update %d to be %q, got %q", i, want[i], log[i])
		}
	}
}

// Test InitSystems stops at the first failing system
func TestWorldInitSystemsError(t *testing.T) {
	w := newTestWorld()
	var log []string
	wantErr := errors.New("no device")

	w.AddSystem(&orderedSystem{name: "ok", priority: 1, log: &log})
	w.AddSystem(&orderedSystem{name: "bad", priority: 2, log: &log, initErr: wantErr})

	if err := w.InitSystems(); !errors.Is(err, wantErr) {
		t.Errorf("Expected init error %v, got %v", wantErr, err)
	}
}

// Test PushEvent is a no-op before wiring and stamps ticks after
func TestWorldPushEvent(t *testing.T) {
	w := newTestWorld()

	// Unwired: must not panic, must not deliver
	w.PushEvent(event.EventPulse, nil)

	q := event.NewQueue()
	var tick atomic.Int64
	tick.Store(7)
	w.SetEventMetadata(q, &tick)

	w.PushEvent(event.EventPulse, &event.PulsePayload{Beat: 3})

	got := q.Consume()
	if len(got) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(got))
	}
	if got[0].Type != event.EventPulse {
		t.Errorf("Expected EventPulse, got %v", got[0].Type)
	}
	if got[0].Frame != 7 {
		t.Errorf("Expected frame stamp 7, got %d", got[0].Frame)
	}
}
