package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := NewClient(serverURL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken("abc123"))

	if _, err := c.MenuItems(context.Background()); err != nil {
		t.Fatalf("MenuItems failed: %v", err)
	}
	if gotAuth != "Token abc123" {
		t.Errorf("Authorization header: got %q, want %q", gotAuth, "Token abc123")
	}
}

func TestNoAuthHeaderOnAnonymousCall(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"categories":[],"menu_items":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken("abc123"))

	if _, err := c.Menu(context.Background()); err != nil {
		t.Fatalf("Menu failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization header on anonymous call: got %q, want empty", gotAuth)
	}
}

func TestCSRFHeaderOnMutatingCall(t *testing.T) {
	var gotCSRF string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-42", Path: "/"})
			_, _ = w.Write([]byte(`[]`))
		case http.MethodPatch:
			gotCSRF = r.Header.Get("X-CSRFToken")
			_, _ = w.Write([]byte(`{"id":1,"status":"in_progress"}`))
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken("tok"))

	// First GET picks up the anti-forgery cookie.
	if _, err := c.Orders(context.Background()); err != nil {
		t.Fatalf("Orders failed: %v", err)
	}
	if _, err := c.SetOrderStatus(context.Background(), 1, "in_progress"); err != nil {
		t.Fatalf("SetOrderStatus failed: %v", err)
	}
	if gotCSRF != "csrf-42" {
		t.Errorf("X-CSRFToken: got %q, want %q", gotCSRF, "csrf-42")
	}
}

func TestContentTypePerBodyKind(t *testing.T) {
	var contentTypes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentTypes = append(contentTypes, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"id":1,"name":"x","is_available":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken("tok"))

	if _, err := c.SetItemAvailability(context.Background(), 1, true); err != nil {
		t.Fatalf("SetItemAvailability failed: %v", err)
	}

	draft := ItemDraft{Name: "Latte", Price: 4.5, CategoryID: 2, IsAvailable: true}
	if _, err := c.SaveMenuItem(context.Background(), draft, 0); err != nil {
		t.Fatalf("SaveMenuItem failed: %v", err)
	}

	if len(contentTypes) != 2 {
		t.Fatalf("got %d requests, want 2", len(contentTypes))
	}
	if contentTypes[0] != "application/json" {
		t.Errorf("JSON call Content-Type: got %q, want application/json", contentTypes[0])
	}
	if !strings.HasPrefix(contentTypes[1], "multipart/form-data; boundary=") {
		t.Errorf("multipart call Content-Type: got %q, want multipart with boundary", contentTypes[1])
	}
}

func TestUnauthorizedRunsHookAndNotifiesOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken("stale"))

	hookCalls := 0
	c.OnUnauthorized(func() { hookCalls++ })
	var notices []string
	c.SetNotifier(func(msg string, success bool) { notices = append(notices, msg) })

	_, err := c.Orders(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Orders error: got %v, want ErrUnauthorized", err)
	}
	if hookCalls != 1 {
		t.Errorf("unauthorized hook calls: got %d, want 1", hookCalls)
	}
	if len(notices) != 1 {
		t.Errorf("notifications: got %d, want exactly 1", len(notices))
	}
}

func TestNoContentResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken("tok"))

	if err := c.DeleteMenuItem(context.Background(), 7); err != nil {
		t.Fatalf("DeleteMenuItem failed: %v", err)
	}
}

func TestServerErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "detail field", body: `{"detail":"item name already exists"}`, want: "item name already exists"},
		{name: "error field", body: `{"error":"table not found"}`, want: "table not found"},
		{name: "unstructured body", body: `oops`, want: "API error: 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			c.SetTokenSource(staticToken("tok"))
			var notices []string
			c.SetNotifier(func(msg string, success bool) { notices = append(notices, msg) })

			_, err := c.Orders(context.Background())
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type: got %T (%v), want *Error", err, err)
			}
			if apiErr.Message != tt.want {
				t.Errorf("message: got %q, want %q", apiErr.Message, tt.want)
			}
			if len(notices) != 1 || notices[0] != tt.want {
				t.Errorf("notifications: got %v, want exactly [%q]", notices, tt.want)
			}
		})
	}
}

func TestNetworkFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken("tok"))

	_, err := c.Orders(context.Background())
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("error type: got %T (%v), want *NetworkError", err, err)
	}
}

func TestBusyCounterBalancedAcrossOutcomes(t *testing.T) {
	var mu sync.Mutex
	n := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		n++
		i := n
		mu.Unlock()
		switch i % 3 {
		case 0:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"boom"}`))
		case 1:
			_, _ = w.Write([]byte(`[]`))
		case 2:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken("tok"))

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Orders(context.Background())
		}()
	}
	wg.Wait()

	if got := c.Busy().Count(); got != 0 {
		t.Errorf("busy count after all requests settled: got %d, want 0", got)
	}
}

func TestBusyOnChangeTransitions(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken("tok"))

	var mu sync.Mutex
	var transitions []bool
	c.Busy().OnChange(func(active bool) {
		mu.Lock()
		transitions = append(transitions, active)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Orders(context.Background())
		}()
	}

	// Wait for all three to be in flight, then let them finish.
	deadline := time.Now().Add(2 * time.Second)
	for c.Busy().Count() != 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(transitions) != 2 || transitions[0] != true || transitions[1] != false {
		t.Errorf("busy transitions: got %v, want [true false]", transitions)
	}
}

func TestListDecodeBothShapes(t *testing.T) {
	bare := []byte(`[{"id":1,"name":"Drinks"}]`)
	paged := []byte(`{"count":1,"next":null,"previous":null,"results":[{"id":1,"name":"Drinks"}]}`)

	for _, data := range [][]byte{bare, paged} {
		var l list[Category]
		if err := json.Unmarshal(data, &l); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if len(l.Items) != 1 || l.Items[0].Name != "Drinks" {
			t.Errorf("decode %s: got %+v, want one category Drinks", data, l.Items)
		}
	}
}

func TestMoneyUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{in: `"12.50"`, want: 12.5},
		{in: `12.5`, want: 12.5},
		{in: `""`, want: 0},
	}
	for _, tt := range tests {
		var m Money
		if err := json.Unmarshal([]byte(tt.in), &m); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if m != tt.want {
			t.Errorf("Money(%s): got %v, want %v", tt.in, m, tt.want)
		}
	}
}

func TestLoginReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/manager/login/" {
			t.Errorf("login path: got %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"token":"tok-1"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	tok, err := c.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tok != "tok-1" {
		t.Errorf("token: got %q, want tok-1", tok)
	}
}

func TestLoginValidatesInput(t *testing.T) {
	c := newTestClient(t, "http://localhost:1")
	_, err := c.Login(context.Background(), "", "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type: got %T, want *ValidationError", err)
	}
}

func TestSaveCategoryValidationNotifies(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken("abc123"))
	var notices []string
	c.SetNotifier(func(msg string, success bool) { notices = append(notices, msg) })

	_, err := c.SaveCategory(context.Background(), 0, "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type: got %T, want *ValidationError", err)
	}
	if len(notices) != 1 {
		t.Errorf("notifications: got %d, want 1", len(notices))
	}
	if requests != 0 {
		t.Errorf("requests dispatched: got %d, want 0", requests)
	}
}
