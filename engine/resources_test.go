package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/filament/vmath"
)

// Test resource add/get round trip by type
func TestResourceStoreAddGet(t *testing.T) {
	rs := NewResourceStore()

	tr := &TimeResource{Tick: 5}
	AddResource(rs, tr)

	got, ok := GetResource[*TimeResource](rs)
	if !ok {
		t.Fatal("Expected time resource to exist")
	}
	if got != tr {
		t.Error("Expected the same resource pointer back")
	}

	if _, ok := GetResource[*SceneResource](rs); ok {
		t.Error("Expected missing resource type to report false")
	}
}

// Test MustGetResource panics on missing resources
func TestMustGetResourcePanics(t *testing.T) {
	rs := NewResourceStore()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing required resource")
		}
	}()
	MustGetResource[*TimeResource](rs)
}

// Test in-place time resource update
func TestTimeResourceUpdate(t *testing.T) {
	tr := &TimeResource{}
	scene := time.Unix(100, 0)
	real := time.Unix(200, 0)

	tr.Update(scene, real, 50*time.Millisecond, 9)

	if !tr.SceneTime.Equal(scene) || !tr.RealTime.Equal(real) {
		t.Error("Expected times stored as given")
	}
	if tr.DeltaTime != 50*time.Millisecond {
		t.Errorf("Expected delta 50ms, got %v", tr.DeltaTime)
	}
	if tr.Tick != 9 {
		t.Errorf("Expected tick 9, got %d", tr.Tick)
	}
}

// Test scene center lands on the volume midpoint
func TestSceneResourceCenter(t *testing.T) {
	sr := &SceneResource{Width: 64, Height: 40, Depth: 32}
	c := sr.Center()

	want := vmath.Vec3{X: vmath.FromInt(32), Y: vmath.FromInt(20), Z: vmath.FromInt(16)}
	if c != want {
		t.Errorf("Expected center %v, got %v", want, c)
	}
}
