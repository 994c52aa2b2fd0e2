package api

import "testing"

func TestGuardRejectsSecondAcquire(t *testing.T) {
	var g Guard

	if !g.TryAcquire() {
		t.Fatal("first TryAcquire: got false, want true")
	}
	if g.TryAcquire() {
		t.Error("second TryAcquire while held: got true, want false")
	}

	g.Release()
	if !g.TryAcquire() {
		t.Error("TryAcquire after Release: got false, want true")
	}
}

func TestGuardReleaseAfterFailureAllowsRetry(t *testing.T) {
	var g Guard

	// Simulate a guarded save that fails: the guard must still be released.
	if !g.TryAcquire() {
		t.Fatal("TryAcquire: got false, want true")
	}
	func() {
		defer g.Release()
		// failed operation
	}()

	if !g.TryAcquire() {
		t.Error("TryAcquire after failed guarded operation: got false, want true")
	}
}
