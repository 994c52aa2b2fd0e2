// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/session"
	"github.com/tably-dev/tably/internal/tui"
)

// RestoreCmd verifies a stored credential against the server.
func RestoreCmd(sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		ok, err := sess.Restore(context.Background())
		return tui.RestoreResultMsg{Authenticated: ok, Err: err}
	}
}

// LoginCmd exchanges credentials for a session token.
func LoginCmd(sess *session.Manager, username, password string) tea.Cmd {
	return func() tea.Msg {
		err := sess.Login(context.Background(), username, password)
		return tui.LoginResultMsg{Err: err}
	}
}

// LogoutCmd tears the session down. Server-side failures are swallowed by
// the session manager, so this always comes back as logged out.
func LogoutCmd(sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		_ = sess.Logout(context.Background())
		return tui.LoggedOutMsg{}
	}
}
