package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/log"
)

// Manager owns the authentication lifecycle for the manager dashboard. It
// holds the active token in memory, persists it through the Store, and
// implements api.TokenSource so the request layer can attach it.
type Manager struct {
	mu     sync.Mutex
	token  string
	store  *Store
	client *api.Client
	events *log.Logger
}

// NewManager wires the session manager to its credential store and API
// client. The client's unauthorized hook is pointed at Invalidate so an
// expired token tears the session down exactly once.
func NewManager(store *Store, client *api.Client, events *log.Logger) *Manager {
	m := &Manager{
		store:  store,
		client: client,
		events: events,
	}
	client.SetTokenSource(m)
	client.OnUnauthorized(m.Invalidate)
	return m
}

// Token returns the active credential, or the empty string when
// unauthenticated.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Authenticated reports whether a credential is currently held.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// Restore loads a persisted credential and verifies it against the server
// with an authenticated read. Any failure clears the credential so a stale
// or revoked token never survives startup.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	token, err := m.store.LoadToken()
	if err != nil {
		return false, fmt.Errorf("restore session: %w", err)
	}
	if token == "" {
		return false, nil
	}

	m.setToken(token)

	if _, err := m.client.MenuItems(ctx); err != nil {
		m.setToken("")
		if clearErr := m.store.ClearToken(); clearErr != nil {
			return false, fmt.Errorf("clear stale credential: %w", clearErr)
		}
		return false, nil
	}

	return true, nil
}

// Login exchanges credentials for a token and persists it. Any existing
// credential is cleared before the attempt so a failed login never leaves a
// stale token behind.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.setToken("")
	if err := m.store.ClearToken(); err != nil {
		return err
	}

	token, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.logEvent(log.EventLoginFailed, err)
		return err
	}

	m.setToken(token)
	if err := m.store.SaveToken(token); err != nil {
		return err
	}

	m.logEvent(log.EventLogin, nil)
	return nil
}

// Logout invalidates the token server-side on a best-effort basis, then
// clears local state unconditionally.
func (m *Manager) Logout(ctx context.Context) error {
	if m.Authenticated() {
		if err := m.client.Logout(ctx); err != nil {
			m.logEvent(log.EventRequestFailed, err)
		}
	}

	m.setToken("")
	if err := m.store.ClearToken(); err != nil {
		return err
	}

	m.logEvent(log.EventLogout, nil)
	return nil
}

// Invalidate drops the session locally without contacting the server. It is
// installed as the client's unauthorized hook.
func (m *Manager) Invalidate() {
	m.setToken("")
	_ = m.store.ClearToken()
	m.logEvent(log.EventSessionExpired, nil)
}

func (m *Manager) setToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *Manager) logEvent(event string, cause error) {
	if m.events == nil {
		return
	}
	entry := log.LogEvent{Event: event}
	if cause != nil {
		entry.Error = cause.Error()
	}
	_ = m.events.Append(entry)
}
