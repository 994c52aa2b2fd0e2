package session

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndLoadToken(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveToken("abc123"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	got, err := store.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if got != "abc123" {
		t.Errorf("LoadToken() = %q, want %q", got, "abc123")
	}
}

func TestStoreSaveTokenReplaces(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveToken("first"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}
	if err := store.SaveToken("second"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	got, err := store.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if got != "second" {
		t.Errorf("LoadToken() = %q, want %q", got, "second")
	}
}

func TestStoreLoadTokenEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if got != "" {
		t.Errorf("LoadToken() = %q, want empty string", got)
	}
}

func TestStoreClearToken(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveToken("abc123"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}
	if err := store.ClearToken(); err != nil {
		t.Fatalf("ClearToken() error = %v", err)
	}

	got, err := store.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if got != "" {
		t.Errorf("LoadToken() after clear = %q, want empty string", got)
	}
}

func TestStoreClearTokenAbsent(t *testing.T) {
	store := newTestStore(t)

	if err := store.ClearToken(); err != nil {
		t.Errorf("ClearToken() on empty store error = %v", err)
	}
}
