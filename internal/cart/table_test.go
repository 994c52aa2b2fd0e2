package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tably-dev/tably/internal/api"
)

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestResolveTableScoped(t *testing.T) {
	const tableUUID = "0b7f5a1e-9c2d-4e8f-b1a3-6d4e2f8c9a10"

	mux := http.NewServeMux()
	mux.HandleFunc("/api/menu/"+tableUUID+"/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"categories":   []any{},
			"menu_items":   []any{},
			"table_number": "T3",
		})
	})
	client := newTestClient(t, mux)

	menu, tc, err := ResolveTable(context.Background(), client, tableUUID)
	if err != nil {
		t.Fatalf("ResolveTable() error = %v", err)
	}
	if menu == nil {
		t.Fatal("ResolveTable() menu = nil")
	}
	if tc.TableNumber != "T3" {
		t.Errorf("TableNumber = %q, want %q", tc.TableNumber, "T3")
	}
	if tc.Number() != "T3" {
		t.Errorf("Number() = %q, want %q", tc.Number(), "T3")
	}
}

func TestResolveTableUnscoped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/menu/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"categories": []any{},
			"menu_items": []any{},
		})
	})
	client := newTestClient(t, mux)

	_, tc, err := ResolveTable(context.Background(), client, "")
	if err != nil {
		t.Fatalf("ResolveTable() error = %v", err)
	}
	if tc.TableUUID != "" {
		t.Errorf("TableUUID = %q, want empty", tc.TableUUID)
	}
	if tc.Number() != "Unknown Table" {
		t.Errorf("Number() = %q, want %q", tc.Number(), "Unknown Table")
	}
}

func TestResolveTableMalformedIdentifier(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { requests++ })
	client := newTestClient(t, mux)

	_, _, err := ResolveTable(context.Background(), client, "not-a-uuid")
	if err == nil {
		t.Fatal("ResolveTable() error = nil, want error for malformed identifier")
	}
	if requests != 0 {
		t.Errorf("server requests = %d, want 0 for malformed identifier", requests)
	}
}
