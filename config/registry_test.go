package config

import (
	"fmt"
	"strconv"
	"testing"
)

func TestRegistryApply(t *testing.T) {
	r := NewRegistry()

	var radius float64 = 12.0
	r.Register("scan.radius", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		if f <= 0 {
			return fmt.Errorf("radius must be positive")
		}
		radius = f
		return nil
	})

	if err := r.Apply("scan.radius", "20.5"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if radius != 20.5 {
		t.Errorf("radius = %v, want 20.5", radius)
	}

	if err := r.Apply("scan.nonsense", "1"); err == nil {
		t.Error("Apply on unknown key should fail")
	}
}

func TestRegistryApplyRejectsAndRetains(t *testing.T) {
	r := NewRegistry()

	var radius float64 = 12.0
	r.Register("scan.radius", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		if f <= 0 {
			return fmt.Errorf("radius must be positive")
		}
		radius = f
		return nil
	})

	if err := r.Apply("scan.radius", "-3"); err == nil {
		t.Fatal("Apply with out-of-range value should fail")
	}
	if radius != 12.0 {
		t.Errorf("rejected Apply mutated value: %v", radius)
	}

	if err := r.Apply("scan.radius", "not-a-number"); err == nil {
		t.Fatal("Apply with unparseable value should fail")
	}
	if radius != 12.0 {
		t.Errorf("rejected Apply mutated value: %v", radius)
	}
}

func TestRegistryAdjust(t *testing.T) {
	r := NewRegistry()

	var curvature float64 = 1.0
	r.RegisterAdjustable("curve.curvature",
		func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			curvature = f
			return nil
		},
		func(delta float64) error {
			curvature += delta
			return nil
		})
	r.Register("scan.tag", func(v string) error { return nil })

	if err := r.Adjust("curve.curvature", 0.25); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if err := r.Adjust("curve.curvature", -0.5); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if curvature != 0.75 {
		t.Errorf("curvature = %v, want 0.75", curvature)
	}

	if err := r.Adjust("scan.tag", 1); err == nil {
		t.Error("Adjust on non-adjustable key should fail")
	}
	if err := r.Adjust("missing.key", 1); err == nil {
		t.Error("Adjust on unknown key should fail")
	}
}

func TestRegistryKeysSorted(t *testing.T) {
	r := NewRegistry()
	nop := func(string) error { return nil }
	r.Register("scan.radius", nop)
	r.Register("admission.sequential", nop)
	r.Register("curve.segments", nop)

	keys := r.Keys()
	want := []string{"admission.sequential", "curve.segments", "scan.radius"}
	if len(keys) != len(want) {
		t.Fatalf("Keys count = %d, want %d", len(keys), len(want))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("Keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestRegistryHas(t *testing.T) {
	r := NewRegistry()
	r.Register("pulse.bpm", func(string) error { return nil })

	if !r.Has("pulse.bpm") {
		t.Error("Has should report registered key")
	}
	if r.Has("pulse.swing") {
		t.Error("Has should not report unregistered key")
	}
}
