package engine

import (
	"testing"

	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

func qv(x, y, z int) vmath.Vec3 {
	return vmath.Vec3{X: vmath.FromInt(x), Y: vmath.FromInt(y), Z: vmath.FromInt(z)}
}

func collectAll(g *SpatialIndex, origin vmath.Vec3, radius int) []core.Entity {
	return g.CollectInRadius(origin, vmath.FromInt(radius), nil)
}

func containsEntity(list []core.Entity, e core.Entity) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

// Test insert and radius collection across cells
func TestSpatialIndexInsertCollect(t *testing.T) {
	g := NewSpatialIndex(16, 8, 8)

	if !g.Insert(core.Entity(1), qv(1, 1, 1)) {
		t.Fatal("Expected in-bounds insert to succeed")
	}
	if !g.Insert(core.Entity(2), qv(5, 1, 1)) {
		t.Fatal("Expected in-bounds insert to succeed")
	}

	// Radius 2 around (1,1,1) spans only the first cell
	near := collectAll(g, qv(1, 1, 1), 2)
	if !containsEntity(near, 1) {
		t.Error("Expected entity 1 in small radius")
	}
	if containsEntity(near, 2) {
		t.Error("Expected entity 2 outside small radius cell box")
	}

	// Radius 6 spans both cells
	wide := collectAll(g, qv(1, 1, 1), 6)
	if !containsEntity(wide, 1) || !containsEntity(wide, 2) {
		t.Errorf("Expected both entities in wide radius, got %v", wide)
	}
}

// Test out-of-bounds positions are rejected without panic
func TestSpatialIndexBounds(t *testing.T) {
	g := NewSpatialIndex(16, 8, 8)

	if g.Insert(core.Entity(1), qv(-1, 1, 1)) {
		t.Error("Expected negative position insert to fail")
	}
	if g.Insert(core.Entity(2), qv(17, 1, 1)) {
		t.Error("Expected beyond-volume insert to fail")
	}

	// Remove at out-of-bounds position must not panic
	g.Remove(core.Entity(1), qv(-1, 1, 1))

	// Collection with an origin outside the volume clamps to edge cells
	got := collectAll(g, qv(-10, -10, -10), 2)
	if len(got) != 0 {
		t.Errorf("Expected no entities, got %v", got)
	}
}

// Test swap-remove keeps cell dense
func TestSpatialIndexRemove(t *testing.T) {
	g := NewSpatialIndex(16, 8, 8)
	pos := qv(1, 1, 1)

	g.Insert(core.Entity(1), pos)
	g.Insert(core.Entity(2), pos)
	g.Insert(core.Entity(3), pos)

	g.Remove(core.Entity(2), pos)

	got := collectAll(g, pos, 1)
	if len(got) != 2 {
		t.Fatalf("Expected 2 entities after removal, got %d", len(got))
	}
	if containsEntity(got, 2) {
		t.Error("Expected entity 2 to be removed")
	}
	if !containsEntity(got, 1) || !containsEntity(got, 3) {
		t.Errorf("Expected entities 1 and 3 to remain, got %v", got)
	}

	// Removing an absent entity is a no-op
	g.Remove(core.Entity(99), pos)
	if len(collectAll(g, pos, 1)) != 2 {
		t.Error("Expected count unchanged after removing absent entity")
	}
}

// Test cell capacity soft clip
func TestSpatialIndexCellOverflow(t *testing.T) {
	g := NewSpatialIndex(16, 8, 8)
	pos := qv(1, 1, 1)

	for i := 1; i <= parameter.MaxEntitiesPerCell; i++ {
		if !g.Insert(core.Entity(i), pos) {
			t.Fatalf("Expected insert %d to succeed", i)
		}
	}
	if g.Insert(core.Entity(100), pos) {
		t.Error("Expected insert beyond cell capacity to fail")
	}
}

// Test move skips work within a cell and relocates across cells
func TestSpatialIndexMove(t *testing.T) {
	g := NewSpatialIndex(16, 8, 8)

	g.Insert(core.Entity(1), qv(1, 1, 1))

	// Same cell: entity must not duplicate
	g.Move(core.Entity(1), qv(1, 1, 1), qv(2, 2, 2))
	got := collectAll(g, qv(1, 1, 1), 1)
	if len(got) != 1 {
		t.Fatalf("Expected 1 entity after same-cell move, got %d", len(got))
	}

	// Cross cell: entity leaves the old cell and appears in the new one
	g.Move(core.Entity(1), qv(2, 2, 2), qv(13, 1, 1))
	if containsEntity(collectAll(g, qv(1, 1, 1), 1), 1) {
		t.Error("Expected entity to leave the old cell")
	}
	if !containsEntity(collectAll(g, qv(13, 1, 1), 1), 1) {
		t.Error("Expected entity in the new cell")
	}
}

// Test clear empties every cell
func TestSpatialIndexClear(t *testing.T) {
	g := NewSpatialIndex(16, 8, 8)
	g.Insert(core.Entity(1), qv(1, 1, 1))
	g.Insert(core.Entity(2), qv(13, 7, 7))

	g.Clear()

	if len(collectAll(g, qv(1, 1, 1), 20)) != 0 {
		t.Error("Expected no entities after clear")
	}
}
