package api

import "sync"

// Busy is a reference count of in-flight requests. The busy indicator is
// shown while the count is above zero and hidden only when it returns to
// zero. Increments and decrements must be balanced across every exit path;
// Call does this with a deferred Done.
type Busy struct {
	mu       sync.Mutex
	count    int
	onChange func(active bool)
}

// OnChange registers a callback fired when the counter crosses zero in
// either direction. The callback runs outside the lock.
func (b *Busy) OnChange(fn func(active bool)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Add increments the in-flight count.
func (b *Busy) Add() {
	b.mu.Lock()
	b.count++
	fire := b.count == 1
	fn := b.onChange
	b.mu.Unlock()

	if fire && fn != nil {
		fn(true)
	}
}

// Done decrements the in-flight count. The count never goes below zero.
func (b *Busy) Done() {
	b.mu.Lock()
	fire := false
	if b.count > 0 {
		b.count--
		fire = b.count == 0
	}
	fn := b.onChange
	b.mu.Unlock()

	if fire && fn != nil {
		fn(false)
	}
}

// Count returns the current in-flight count.
func (b *Busy) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}
