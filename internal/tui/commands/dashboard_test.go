package commands

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/api"
)

func newTestClient(t *testing.T, serverURL string) *api.Client {
	t.Helper()
	c, err := api.NewClient(serverURL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestInitialLoadHitsEverySection(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Path]++
		mu.Unlock()
		if r.URL.Path == "/api/analytics/summary/" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	msg := InitialLoadCmd(c)()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("InitialLoadCmd message: got %T, want tea.BatchMsg", msg)
	}
	if len(batch) != 5 {
		t.Fatalf("batched fetches: got %d, want 5", len(batch))
	}
	for _, cmd := range batch {
		cmd()
	}

	want := []string{
		"/api/menu_items/",
		"/api/categories/",
		"/api/orders/",
		"/api/qr_codes/",
		"/api/analytics/summary/",
	}
	mu.Lock()
	defer mu.Unlock()
	for _, path := range want {
		if seen[path] != 1 {
			t.Errorf("requests to %s: got %d, want 1", path, seen[path])
		}
	}
}
