package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

func newDrift(t *testing.T, env *testEnv) *DriftSystem {
	t.Helper()
	s := NewDriftSystem()
	if err := s.Init(env.world); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

// addDrifter places an entity with a fixed velocity and a heading
// change far enough out that the rng stays untouched
func addDrifter(env *testEnv, x, y, z float64, vel vmath.Vec3F) core.Entity {
	e := env.world.CreateEntity()
	env.world.Positions.Set(e, component.Position{Pos: vmath.V3FToQ32(vmath.Vec3F{X: x, Y: y, Z: z})})
	env.world.Drifts.Set(e, component.Drift{Vel: vel, NextTurn: env.time.SceneTime.Add(time.Hour)})
	return e
}

// Test position integrates velocity over the frame delta
func TestDriftIntegratesVelocity(t *testing.T) {
	env := newTestEnv(1)
	s := newDrift(t, env)
	e := addDrifter(env, 32, 20, 16, vmath.Vec3F{X: 1.5, Y: -0.5, Z: 0})

	s.Update(env.world, time.Second)

	p, _ := env.world.Positions.Get(e)
	pf := vmath.V3ToFloat(p.Pos)
	if absDiff(pf.X, 33.5) > 1e-9 || absDiff(pf.Y, 19.5) > 1e-9 || absDiff(pf.Z, 16) > 1e-9 {
		t.Errorf("Expected (33.5, 19.5, 16), got %+v", pf)
	}

	// Heading untouched before the turn deadline
	d, _ := env.world.Drifts.Get(e)
	if d.Vel.X != 1.5 || d.Vel.Y != -0.5 || d.Vel.Z != 0 {
		t.Errorf("Expected velocity unchanged, got %+v", d.Vel)
	}
}

// Test inbound velocity flips at both wall margins
func TestDriftSteersOffWalls(t *testing.T) {
	env := newTestEnv(2)
	s := newDrift(t, env)
	near := addDrifter(env, 1, 20, 16, vmath.Vec3F{X: -2, Y: 0, Z: 0})
	far := addDrifter(env, 63, 20, 16, vmath.Vec3F{X: 2, Y: 0, Z: 0})

	s.Update(env.world, 100*time.Millisecond)

	d, _ := env.world.Drifts.Get(near)
	if d.Vel.X != 2 {
		t.Errorf("Expected near-wall velocity flipped to +2, got %v", d.Vel.X)
	}
	d, _ = env.world.Drifts.Get(far)
	if d.Vel.X != -2 {
		t.Errorf("Expected far-wall velocity flipped to -2, got %v", d.Vel.X)
	}

	// Outbound velocity at a wall is left alone
	leaving := addDrifter(env, 1, 20, 16, vmath.Vec3F{X: 2, Y: 0, Z: 0})
	s.Update(env.world, 100*time.Millisecond)
	d, _ = env.world.Drifts.Get(leaving)
	if d.Vel.X != 2 {
		t.Errorf("Expected outbound velocity kept, got %v", d.Vel.X)
	}
}

// Test a runaway step clamps to the volume shell
func TestDriftClampsToVolume(t *testing.T) {
	env := newTestEnv(3)
	s := newDrift(t, env)
	e := addDrifter(env, 32, 20, 16, vmath.Vec3F{X: 1000, Y: 0, Z: 0})

	s.Update(env.world, time.Second)

	p, _ := env.world.Positions.Get(e)
	if want := vmath.FromFloat(float64(testWidth) - 0.5); p.Pos.X != want {
		t.Errorf("Expected clamp at %v, got %v", want, p.Pos.X)
	}
}

// Test a passed turn deadline draws a fresh bounded heading
func TestDriftPicksNewHeading(t *testing.T) {
	env := newTestEnv(4)
	s := newDrift(t, env)

	e := env.world.CreateEntity()
	env.world.Positions.Set(e, component.Position{Pos: vmath.V3FToQ32(vmath.Vec3F{X: 32, Y: 20, Z: 16})})
	env.world.Drifts.Set(e, component.Drift{
		Vel:      vmath.Vec3F{X: 0.1, Y: 0, Z: 0},
		NextTurn: env.time.SceneTime.Add(-time.Second),
	})

	s.Update(env.world, 16*time.Millisecond)

	d, _ := env.world.Drifts.Get(e)
	speed := vmath.V3FMag(d.Vel)
	if speed < parameter.DriftSpeedMin-0.01 || speed > parameter.DriftSpeedMax+0.01 {
		t.Errorf("Expected speed in [%v,%v], got %v",
			parameter.DriftSpeedMin, parameter.DriftSpeedMax, speed)
	}

	wait := d.NextTurn.Sub(env.time.SceneTime)
	if wait < parameter.DriftWanderInterval || wait >= parameter.DriftWanderInterval+time.Second {
		t.Errorf("Expected next turn within the wander window, got %v", wait)
	}
}
