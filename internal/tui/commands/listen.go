package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/tui"
)

// ListenPollCmd waits for the next polling tick. The handler must re-issue
// this command after each tick to keep listening.
func ListenPollCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return tui.PollTickMsg{}
	}
}

// ListenBusyCmd waits for the next busy-indicator transition.
func ListenBusyCmd(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		return tui.BusyMsg{Busy: <-ch}
	}
}

// ListenToastCmd waits for the next notification.
func ListenToastCmd(ch <-chan tui.Toast) tea.Cmd {
	return func() tea.Msg {
		t := <-ch
		return tui.ToastMsg{Text: t.Text, Success: t.Success}
	}
}
