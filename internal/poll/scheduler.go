// Package poll drives the periodic refresh of order data, gated on the
// orders view being current and the terminal having focus.
package poll

import (
	"sync"
	"time"
)

// Scheduler owns a single repeating timer and the two gates that control
// it. The timer runs only while both gates are open; flipping either gate
// starts or stops it, never duplicating timers. Ticks invoke the callback
// without waiting for earlier refreshes to settle.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	tick     func()

	active  bool
	visible bool
	stop    chan struct{}
}

// NewScheduler creates a stopped scheduler. The terminal starts focused, so
// visibility defaults to true; the orders view is not current until the
// controller says so.
func NewScheduler(interval time.Duration, tick func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		tick:     tick,
		visible:  true,
	}
}

// SetActive records whether the orders view is current.
func (s *Scheduler) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
	s.reconcile()
}

// SetVisible records whether the terminal has focus.
func (s *Scheduler) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = visible
	s.reconcile()
}

// Running reports whether the timer is currently live.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// Stop closes both gates and halts the timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.visible = false
	s.reconcile()
}

// reconcile aligns the timer with the gates. Callers must hold mu.
func (s *Scheduler) reconcile() {
	want := s.active && s.visible
	running := s.stop != nil

	switch {
	case want && !running:
		stop := make(chan struct{})
		s.stop = stop
		go s.run(stop)
	case !want && running:
		close(s.stop)
		s.stop = nil
	}
}

func (s *Scheduler) run(stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-stop:
			return
		}
	}
}
