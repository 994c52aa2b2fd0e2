package poll

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRunsOnlyWhenActiveAndVisible(t *testing.T) {
	var ticks atomic.Int64
	s := NewScheduler(10*time.Millisecond, func() { ticks.Add(1) })

	if s.Running() {
		t.Fatal("Running() = true before activation")
	}

	s.SetActive(true)
	if !s.Running() {
		t.Fatal("Running() = false with active view and visible terminal")
	}

	time.Sleep(60 * time.Millisecond)
	if ticks.Load() == 0 {
		t.Error("no ticks fired while running")
	}

	s.SetVisible(false)
	if s.Running() {
		t.Error("Running() = true after losing visibility")
	}

	fired := ticks.Load()
	time.Sleep(60 * time.Millisecond)
	if got := ticks.Load(); got != fired {
		t.Errorf("ticks advanced from %d to %d while stopped", fired, got)
	}
}

func TestSchedulerResumesOnVisibility(t *testing.T) {
	var ticks atomic.Int64
	s := NewScheduler(10*time.Millisecond, func() { ticks.Add(1) })
	defer s.Stop()

	s.SetActive(true)
	s.SetVisible(false)
	s.SetVisible(true)

	if !s.Running() {
		t.Fatal("Running() = false after regaining visibility")
	}
	time.Sleep(60 * time.Millisecond)
	if ticks.Load() == 0 {
		t.Error("no ticks after resuming")
	}
}

func TestSchedulerNoDuplicateTimers(t *testing.T) {
	var ticks atomic.Int64
	s := NewScheduler(20*time.Millisecond, func() { ticks.Add(1) })
	defer s.Stop()

	// Repeated activation must not stack timers.
	s.SetActive(true)
	s.SetActive(true)
	s.SetVisible(true)
	s.SetActive(true)

	time.Sleep(110 * time.Millisecond)
	got := ticks.Load()
	// A single 20ms timer fires about 5 times in 110ms. Stacked timers
	// would at least double that.
	if got > 8 {
		t.Errorf("ticks = %d in 110ms, suggests duplicate timers", got)
	}
	if got == 0 {
		t.Error("no ticks fired")
	}
}

func TestSchedulerInactiveViewNeverStarts(t *testing.T) {
	s := NewScheduler(10*time.Millisecond, func() {
		t.Error("tick fired while orders view inactive")
	})
	defer s.Stop()

	s.SetVisible(true)
	s.SetVisible(false)
	s.SetVisible(true)

	if s.Running() {
		t.Error("Running() = true without active view")
	}
	time.Sleep(40 * time.Millisecond)
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler(10*time.Millisecond, func() {})
	s.SetActive(true)
	s.Stop()

	if s.Running() {
		t.Error("Running() = true after Stop()")
	}
}
