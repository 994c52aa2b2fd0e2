package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/log"
	"github.com/tably-dev/tably/internal/order"
	"github.com/tably-dev/tably/internal/tui"
)

// SetOrderStatusCmd requests a status change. The server stays the authority
// on transition legality; a rejection comes back as a regular API error.
func SetOrderStatusCmd(client *api.Client, events *log.Logger, id int64, next order.Status) tea.Cmd {
	return func() tea.Msg {
		updated, err := client.SetOrderStatus(context.Background(), id, string(next))
		if err == nil && events != nil {
			_ = events.Append(log.LogEvent{
				Event:       log.EventOrderStatusChanged,
				OrderID:     id,
				OrderStatus: string(next),
			})
		}
		return tui.OrderStatusMsg{Order: updated, Err: err}
	}
}

// GenerateQRCmd requests a QR code for a table, optionally branding it with
// a logo.
func GenerateQRCmd(client *api.Client, events *log.Logger, tableNumber, color string, logo *api.Upload, maxLogoBytes int64) tea.Cmd {
	return func() tea.Msg {
		code, err := client.GenerateQRCode(context.Background(), tableNumber, color, logo, maxLogoBytes)
		if err == nil && events != nil {
			_ = events.Append(log.LogEvent{Event: log.EventQRGenerated, TableNumber: tableNumber})
		}
		return tui.QRGeneratedMsg{Code: code, Err: err}
	}
}
