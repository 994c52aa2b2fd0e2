package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tably-dev/tably/internal/api"
)

func newTestManager(t *testing.T, handler http.Handler) (*Manager, *Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	store := newTestStore(t)
	return NewManager(store, client, nil), store
}

func TestManagerLoginPersistsToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/manager/login/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mgr, store := newTestManager(t, mux)

	if err := mgr.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !mgr.Authenticated() {
		t.Error("Authenticated() = false after successful login")
	}
	if got := mgr.Token(); got != "tok-1" {
		t.Errorf("Token() = %q, want %q", got, "tok-1")
	}

	persisted, err := store.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if persisted != "tok-1" {
		t.Errorf("persisted token = %q, want %q", persisted, "tok-1")
	}
}

func TestManagerLoginFailureClearsExisting(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/manager/login/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})
	mgr, store := newTestManager(t, mux)

	if err := store.SaveToken("stale"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	err := mgr.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatal("Login() error = nil, want error")
	}
	if mgr.Authenticated() {
		t.Error("Authenticated() = true after failed login")
	}

	persisted, err := store.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if persisted != "" {
		t.Errorf("persisted token = %q, want empty after failed login", persisted)
	}
}

func TestManagerRestoreValidToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/menu_items/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]any{})
	})
	mgr, store := newTestManager(t, mux)

	if err := store.SaveToken("tok-1"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	ok, err := mgr.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if !ok {
		t.Error("Restore() = false, want true for valid token")
	}
	if got := mgr.Token(); got != "tok-1" {
		t.Errorf("Token() = %q, want %q", got, "tok-1")
	}
}

func TestManagerRestoreRejectedTokenFailsClosed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/menu_items/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mgr, store := newTestManager(t, mux)

	if err := store.SaveToken("revoked"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	ok, err := mgr.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if ok {
		t.Error("Restore() = true, want false for rejected token")
	}
	if mgr.Authenticated() {
		t.Error("Authenticated() = true after rejected restore")
	}

	persisted, err := store.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if persisted != "" {
		t.Errorf("persisted token = %q, want empty after rejected restore", persisted)
	}
}

func TestManagerRestoreNoToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/menu_items/", func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected verify request with no stored token")
	})
	mgr, _ := newTestManager(t, mux)

	ok, err := mgr.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if ok {
		t.Error("Restore() = true, want false with no stored token")
	}
}

func TestManagerLogoutClearsEvenOnServerFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/manager/logout/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mgr, store := newTestManager(t, mux)

	if err := store.SaveToken("tok-1"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}
	mgr.setToken("tok-1")

	if err := mgr.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if mgr.Authenticated() {
		t.Error("Authenticated() = true after logout")
	}

	persisted, err := store.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if persisted != "" {
		t.Errorf("persisted token = %q, want empty after logout", persisted)
	}
}

func TestManagerInvalidateOnUnauthorized(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	store := newTestStore(t)
	mgr := NewManager(store, client, nil)
	mgr.setToken("expired")

	if _, err := client.Orders(context.Background()); err == nil {
		t.Fatal("Orders() error = nil, want unauthorized error")
	}
	if calls != 1 {
		t.Fatalf("server calls = %d, want 1", calls)
	}
	if mgr.Authenticated() {
		t.Error("Authenticated() = true after unauthorized response")
	}
}
