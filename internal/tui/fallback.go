// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"errors"
	"fmt"
)

// ErrNotATerminal is returned when the dashboard is launched without a TTY.
var ErrNotATerminal = errors.New("the dashboard requires an interactive terminal")

// FallbackGuidance prints pointers to the non-interactive commands. It is
// used when the dashboard cannot run because stdout is not a terminal.
func FallbackGuidance() error {
	fmt.Println("Non-TTY environment detected.")
	fmt.Println("Use 'tably login' then 'tably orders' for non-interactive access.")
	return ErrNotATerminal
}
