package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/tui"
)

// DefaultAnalyticsDays is the initial analytics window.
const DefaultAnalyticsDays = 7

// FetchMenuItemsCmd refreshes the menu item collection.
func FetchMenuItemsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		items, err := client.MenuItems(context.Background())
		return tui.MenuItemsMsg{Items: items, Err: err}
	}
}

// FetchCategoriesCmd refreshes the category collection.
func FetchCategoriesCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		categories, err := client.Categories(context.Background())
		return tui.CategoriesMsg{Categories: categories, Err: err}
	}
}

// FetchOrdersCmd refreshes the order collection.
func FetchOrdersCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.Orders(context.Background())
		return tui.OrdersMsg{Orders: orders, Err: err}
	}
}

// FetchQRCodesCmd refreshes the QR code collection.
func FetchQRCodesCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		codes, err := client.QRCodes(context.Background())
		return tui.QRCodesMsg{Codes: codes, Err: err}
	}
}

// FetchAnalyticsCmd fetches the analytics summary for a trailing window.
func FetchAnalyticsCmd(client *api.Client, days int) tea.Cmd {
	return func() tea.Msg {
		summary, err := client.AnalyticsSummary(context.Background(), days)
		return tui.AnalyticsMsg{Days: days, Summary: summary, Err: err}
	}
}

// FetchActivitiesCmd fetches one page of the manager activity log.
func FetchActivitiesCmd(client *api.Client, page, perPage int, search, activityType string) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.ActivityLog(context.Background(), page, perPage, search, activityType)
		return tui.ActivitiesMsg{Page: entries, Err: err}
	}
}

// InitialLoadCmd kicks off the full dashboard load after authentication.
func InitialLoadCmd(client *api.Client) tea.Cmd {
	return tea.Batch(
		FetchMenuItemsCmd(client),
		FetchCategoriesCmd(client),
		FetchOrdersCmd(client),
		FetchQRCodesCmd(client),
		FetchAnalyticsCmd(client, DefaultAnalyticsDays),
	)
}
