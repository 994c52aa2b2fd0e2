package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/cart"
	"github.com/tably-dev/tably/internal/log"
	"github.com/tably-dev/tably/internal/tui"
)

// LoadMenuCmd fetches the customer menu, scoped to a table when an
// identifier is present.
func LoadMenuCmd(client *api.Client, tableUUID string) tea.Cmd {
	return func() tea.Msg {
		menu, table, err := cart.ResolveTable(context.Background(), client, tableUUID)
		return tui.MenuLoadedMsg{Menu: menu, Table: table, Err: err}
	}
}

// PlaceOrderCmd submits the customer's order. The guard prevents a second
// submission while one is outstanding.
func PlaceOrderCmd(client *api.Client, guard *api.Guard, events *log.Logger, submission api.OrderCreate) tea.Cmd {
	return func() tea.Msg {
		if !guard.TryAcquire() {
			return tui.OrderPlacedMsg{Err: &api.ValidationError{Reason: "your order is already being placed"}}
		}
		defer guard.Release()

		placed, err := client.PlaceOrder(context.Background(), submission)
		if err == nil && events != nil {
			_ = events.Append(log.LogEvent{
				Event:       log.EventOrderPlaced,
				OrderID:     placed.ID,
				TableNumber: submission.TableNumber,
			})
		}
		return tui.OrderPlacedMsg{Order: placed, Err: err}
	}
}
