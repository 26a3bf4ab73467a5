package engine

import (
	"testing"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/vmath"
)

func positionAt(x, y, z int) component.Position {
	return component.Position{Pos: qv(x, y, z)}
}

func queryNear(ps *PositionStore, x, y, z, radius int) []core.Entity {
	return ps.CollectInRadius(qv(x, y, z), vmath.FromInt(radius), nil)
}

// Test that Set keeps store and index in sync
func TestPositionStoreSet(t *testing.T) {
	ps := NewPositionStore(16, 8, 8)

	e := core.Entity(1)
	ps.Set(e, positionAt(1, 1, 1))

	got, ok := ps.Get(e)
	if !ok {
		t.Fatal("Expected position component after Set")
	}
	if got.Pos != qv(1, 1, 1) {
		t.Errorf("Expected stored position (1,1,1), got %v", got.Pos)
	}
	if !containsEntity(queryNear(ps, 1, 1, 1, 2), e) {
		t.Error("Expected entity in spatial query after Set")
	}
}

// Test that updating a position relocates the index entry
func TestPositionStoreSetRelocates(t *testing.T) {
	ps := NewPositionStore(16, 8, 8)

	e := core.Entity(1)
	ps.Set(e, positionAt(1, 1, 1))
	ps.Set(e, positionAt(13, 1, 1))

	if containsEntity(queryNear(ps, 1, 1, 1, 2), e) {
		t.Error("Expected entity to leave the old cell")
	}
	if !containsEntity(queryNear(ps, 13, 1, 1, 2), e) {
		t.Error("Expected entity in the new cell")
	}
	if ps.Count() != 1 {
		t.Errorf("Expected count 1 after in-place update, got %d", ps.Count())
	}
}

// Test that Remove cleans both component and index
func TestPositionStoreRemove(t *testing.T) {
	ps := NewPositionStore(16, 8, 8)

	e := core.Entity(1)
	ps.Set(e, positionAt(5, 1, 1))
	ps.Remove(e)

	if ps.Has(e) {
		t.Error("Expected component removed")
	}
	if containsEntity(queryNear(ps, 5, 1, 1, 2), e) {
		t.Error("Expected index entry removed")
	}

	// Removing an entity with no position is a no-op
	ps.Remove(core.Entity(42))
}

// Test that RemoveBatch cleans the index for every removed entity
// The promoted generic RemoveBatch would leave stale index entries
func TestPositionStoreRemoveBatch(t *testing.T) {
	ps := NewPositionStore(16, 8, 8)

	ps.Set(core.Entity(1), positionAt(1, 1, 1))
	ps.Set(core.Entity(2), positionAt(5, 1, 1))
	ps.Set(core.Entity(3), positionAt(9, 1, 1))

	ps.RemoveBatch([]core.Entity{1, 3})

	if ps.Count() != 1 {
		t.Errorf("Expected count 1 after batch removal, got %d", ps.Count())
	}
	all := queryNear(ps, 8, 1, 1, 16)
	if len(all) != 1 || all[0] != core.Entity(2) {
		t.Errorf("Expected only entity 2 in index, got %v", all)
	}
}

// Test clear wipes component data and index together
func TestPositionStoreClear(t *testing.T) {
	ps := NewPositionStore(16, 8, 8)
	ps.Set(core.Entity(1), positionAt(1, 1, 1))
	ps.Set(core.Entity(2), positionAt(13, 7, 7))

	ps.Clear()

	if ps.Count() != 0 {
		t.Errorf("Expected empty store after clear, got %d", ps.Count())
	}
	if len(queryNear(ps, 8, 4, 4, 16)) != 0 {
		t.Error("Expected empty index after clear")
	}
}
