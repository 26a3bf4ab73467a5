package engine

import (
	"testing"

	"github.com/lixenwraith/filament/core"
)

// MockComponent for store tests
type MockComponent struct {
	Value int
}

// Test basic set/get/has round trip
func TestStoreSetGet(t *testing.T) {
	s := NewStore[MockComponent]()

	e := core.Entity(1)
	s.Set(e, MockComponent{Value: 42})

	got, ok := s.Get(e)
	if !ok {
		t.Fatal("Expected component to exist after Set")
	}
	if got.Value != 42 {
		t.Errorf("Expected Value to be 42, got %d", got.Value)
	}
	if !s.Has(e) {
		t.Error("Expected Has to be true")
	}
	if s.Count() != 1 {
		t.Errorf("Expected count 1, got %d", s.Count())
	}
}

// Test that Set on an existing entity updates in place without duplicating
func TestStoreSetOverwrite(t *testing.T) {
	s := NewStore[MockComponent]()

	e := core.Entity(7)
	s.Set(e, MockComponent{Value: 1})
	s.Set(e, MockComponent{Value: 2})

	if s.Count() != 1 {
		t.Errorf("Expected count 1 after overwrite, got %d", s.Count())
	}
	got, _ := s.Get(e)
	if got.Value != 2 {
		t.Errorf("Expected updated Value 2, got %d", got.Value)
	}
}

// Test removal and entity list compaction
func TestStoreRemove(t *testing.T) {
	s := NewStore[MockComponent]()

	for i := 1; i <= 3; i++ {
		s.Set(core.Entity(i), MockComponent{Value: i})
	}

	s.Remove(core.Entity(2))

	if s.Has(core.Entity(2)) {
		t.Error("Expected entity 2 to be removed")
	}
	if s.Count() != 2 {
		t.Errorf("Expected count 2 after removal, got %d", s.Count())
	}

	// Remaining entities must still resolve
	for _, e := range []core.Entity{1, 3} {
		if !s.Has(e) {
			t.Errorf("Expected entity %d to survive removal of entity 2", e)
		}
	}

	// Removing a missing entity is a no-op
	s.Remove(core.Entity(99))
	if s.Count() != 2 {
		t.Errorf("Expected count unchanged after removing absent entity, got %d", s.Count())
	}
}

// Test that All returns a copy, not a live view
func TestStoreAllReturnsCopy(t *testing.T) {
	s := NewStore[MockComponent]()
	s.Set(core.Entity(1), MockComponent{})
	s.Set(core.Entity(2), MockComponent{})

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(all))
	}

	all[0] = core.Entity(999)
	fresh := s.All()
	for _, e := range fresh {
		if e == core.Entity(999) {
			t.Error("Mutating All() result leaked into the store")
		}
	}
}

// Test single-pass batch removal
func TestStoreRemoveBatch(t *testing.T) {
	s := NewStore[MockComponent]()

	for i := 1; i <= 6; i++ {
		s.Set(core.Entity(i), MockComponent{Value: i})
	}

	s.RemoveBatch([]core.Entity{2, 4, 6, 99})

	if s.Count() != 3 {
		t.Errorf("Expected count 3 after batch removal, got %d", s.Count())
	}
	for _, e := range []core.Entity{1, 3, 5} {
		if !s.Has(e) {
			t.Errorf("Expected entity %d to survive batch removal", e)
		}
	}
	for _, e := range []core.Entity{2, 4, 6} {
		if s.Has(e) {
			t.Errorf("Expected entity %d to be batch removed", e)
		}
	}

	// Empty batch and batch on empty store are no-ops
	s.RemoveBatch(nil)
	if s.Count() != 3 {
		t.Errorf("Expected count unchanged after nil batch, got %d", s.Count())
	}
	s.Clear()
	s.RemoveBatch([]core.Entity{1})
	if s.Count() != 0 {
		t.Errorf("Expected empty store to stay empty, got %d", s.Count())
	}
}

// Test clear resets both map and entity list
func TestStoreClear(t *testing.T) {
	s := NewStore[MockComponent]()
	s.Set(core.Entity(1), MockComponent{})
	s.Set(core.Entity(2), MockComponent{})

	s.Clear()

	if s.Count() != 0 {
		t.Errorf("Expected count 0 after clear, got %d", s.Count())
	}
	if s.Has(core.Entity(1)) {
		t.Error("Expected no components after clear")
	}
}
