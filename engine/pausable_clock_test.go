package engine

import (
	"testing"
	"time"
)

var clockEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Test scene time tracks the base provider while running
func TestPausableClockTracksBase(t *testing.T) {
	base := NewMockTimeProvider(clockEpoch)
	pc := NewPausableClock(base)

	if got := pc.Now(); !got.Equal(clockEpoch) {
		t.Errorf("Expected scene time at epoch, got %v", got)
	}

	base.Advance(5 * time.Second)
	if got := pc.Now(); !got.Equal(clockEpoch.Add(5 * time.Second)) {
		t.Errorf("Expected scene time epoch+5s, got %v", got)
	}
}

// Test pause freezes scene time while real time keeps moving
func TestPausableClockPauseFreezes(t *testing.T) {
	base := NewMockTimeProvider(clockEpoch)
	pc := NewPausableClock(base)

	base.Advance(5 * time.Second)
	pc.Pause()

	if !pc.IsPaused() {
		t.Fatal("Expected clock paused")
	}

	base.Advance(3 * time.Second)

	if got := pc.Now(); !got.Equal(clockEpoch.Add(5 * time.Second)) {
		t.Errorf("Expected frozen scene time epoch+5s, got %v", got)
	}
	if got := pc.RealTime(); !got.Equal(clockEpoch.Add(8 * time.Second)) {
		t.Errorf("Expected real time epoch+8s, got %v", got)
	}
	if got := pc.TotalPauseDuration(); got != 3*time.Second {
		t.Errorf("Expected total pause 3s, got %v", got)
	}
}

// Test resume continues scene time without the paused gap
func TestPausableClockResume(t *testing.T) {
	base := NewMockTimeProvider(clockEpoch)
	pc := NewPausableClock(base)

	base.Advance(5 * time.Second)
	pc.Pause()
	base.Advance(3 * time.Second)
	pc.Resume()

	if pc.IsPaused() {
		t.Fatal("Expected clock running after resume")
	}

	base.Advance(2 * time.Second)

	// 10s real elapsed minus 3s paused = 7s scene time
	if got := pc.Now(); !got.Equal(clockEpoch.Add(7 * time.Second)) {
		t.Errorf("Expected scene time epoch+7s, got %v", got)
	}
	if got := pc.TotalPauseDuration(); got != 3*time.Second {
		t.Errorf("Expected total pause 3s, got %v", got)
	}
}

// Test repeated pause/resume accumulates pause duration
func TestPausableClockRepeatedPauses(t *testing.T) {
	base := NewMockTimeProvider(clockEpoch)
	pc := NewPausableClock(base)

	for i := 0; i < 3; i++ {
		base.Advance(time.Second)
		pc.Pause()
		base.Advance(time.Second)
		pc.Resume()
	}

	// 6s real elapsed, 3s paused
	if got := pc.Now(); !got.Equal(clockEpoch.Add(3 * time.Second)) {
		t.Errorf("Expected scene time epoch+3s, got %v", got)
	}
	if got := pc.TotalPauseDuration(); got != 3*time.Second {
		t.Errorf("Expected total pause 3s, got %v", got)
	}

	// Redundant transitions are no-ops
	pc.Resume()
	pc.Resume()
	if got := pc.TotalPauseDuration(); got != 3*time.Second {
		t.Errorf("Expected pause total unchanged by redundant resume, got %v", got)
	}
}
