// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Common key binding constants.
const (
	KeyCtrlC = "ctrl+c"
	KeyCtrlL = "ctrl+l"
	KeyTab   = "tab"
	KeyEnter = "enter"
	KeyEsc   = "esc"
	KeyUp    = "up"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeyRight = "right"
)

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the TUI program with the given model in alternate screen mode.
// Focus reporting is enabled so polling can pause while the terminal is in
// the background.
func Run(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
