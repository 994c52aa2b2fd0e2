package api

import "sync"

// Guard is a single-flight boolean mutex. Save operations acquire it before
// dispatch so rapid repeated invocations cannot submit duplicates; the
// coordinator itself does not deduplicate.
type Guard struct {
	mu   sync.Mutex
	held bool
}

// TryAcquire takes the guard if it is free. Returns false if an operation is
// already in flight.
func (g *Guard) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held {
		return false
	}
	g.held = true
	return true
}

// Release frees the guard. Must be called on every exit path of the guarded
// operation, success or failure.
func (g *Guard) Release() {
	g.mu.Lock()
	g.held = false
	g.mu.Unlock()
}
