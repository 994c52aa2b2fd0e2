package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/config"
	"github.com/tably-dev/tably/internal/log"
	"github.com/tably-dev/tably/internal/session"
	"github.com/tably-dev/tably/internal/tui"
)

// testApp wires a dashboard application against a recording server.
func testApp(t *testing.T) (*App, func() map[string]int) {
	t.Helper()

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
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	events, err := log.NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	sess := session.NewManager(store, client, events)

	a := New(config.DefaultConfig(), client, sess, events)
	t.Cleanup(a.scheduler.Stop)

	snapshot := func() map[string]int {
		mu.Lock()
		defer mu.Unlock()
		out := make(map[string]int, len(seen))
		for k, v := range seen {
			out[k] = v
		}
		return out
	}
	return a, snapshot
}

func TestLoginLoadsEverySection(t *testing.T) {
	a, snapshot := testApp(t)

	_, cmd := a.Update(tui.LoginResultMsg{})
	if cmd == nil {
		t.Fatal("login produced no command")
	}
	if a.model.State != tui.StateDashboard {
		t.Fatalf("state after login: got %v, want dashboard", a.model.State)
	}
	if a.model.Section != tui.SectionOrders {
		t.Fatalf("section after login: got %v, want orders", a.model.Section)
	}

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("login command message: got %T, want tea.BatchMsg", msg)
	}
	for _, c := range batch {
		c()
	}

	want := []string{
		"/api/menu_items/",
		"/api/categories/",
		"/api/orders/",
		"/api/qr_codes/",
		"/api/analytics/summary/",
	}
	seen := snapshot()
	for _, path := range want {
		if seen[path] != 1 {
			t.Errorf("requests to %s: got %d, want 1", path, seen[path])
		}
	}
}

func TestOrderStatusChangeRefetchesOrders(t *testing.T) {
	a, snapshot := testApp(t)
	a.model.State = tui.StateDashboard

	_, cmd := a.Update(tui.OrderStatusMsg{})
	if cmd == nil {
		t.Fatal("status change produced no re-fetch command")
	}

	msg := cmd()
	om, ok := msg.(tui.OrdersMsg)
	if !ok {
		t.Fatalf("re-fetch message: got %T, want tui.OrdersMsg", msg)
	}
	if om.Err != nil {
		t.Fatalf("re-fetch failed: %v", om.Err)
	}
	if got := snapshot()["/api/orders/"]; got != 1 {
		t.Errorf("requests to /api/orders/: got %d, want 1", got)
	}
}

func TestCategorySaveErrorSurfacesInForm(t *testing.T) {
	a, _ := testApp(t)
	a.model.State = tui.StateDashboard
	a.model.Section = tui.SectionCategories

	_, _ = a.Update(tui.CategorySavedMsg{Err: &api.ValidationError{Reason: "category name is required"}})

	if got := a.categoriesView.FormError(); got != "category name is required" {
		t.Errorf("form error: got %q, want the validation reason", got)
	}
}
