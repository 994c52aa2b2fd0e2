package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/log"
	"github.com/tably-dev/tably/internal/tui"
)

// SaveItemCmd creates or updates a menu item. The guard serializes saves so
// rapid repeated submissions cannot produce duplicates.
func SaveItemCmd(client *api.Client, guard *api.Guard, events *log.Logger, draft api.ItemDraft, maxImageBytes int64) tea.Cmd {
	return func() tea.Msg {
		if !guard.TryAcquire() {
			return tui.ItemSavedMsg{Err: &api.ValidationError{Reason: "a save is already in progress"}}
		}
		defer guard.Release()

		item, err := client.SaveMenuItem(context.Background(), draft, maxImageBytes)
		if err == nil && events != nil {
			_ = events.Append(log.LogEvent{Event: log.EventItemSaved, ItemName: item.Name})
		}
		return tui.ItemSavedMsg{Item: item, Err: err}
	}
}

// DeleteItemCmd removes a menu item.
func DeleteItemCmd(client *api.Client, events *log.Logger, id int64, name string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteMenuItem(context.Background(), id)
		if err == nil && events != nil {
			_ = events.Append(log.LogEvent{Event: log.EventItemDeleted, ItemName: name})
		}
		return tui.ItemDeletedMsg{ID: id, Err: err}
	}
}

// ToggleAvailabilityCmd flips whether an item can be ordered.
func ToggleAvailabilityCmd(client *api.Client, id int64, available bool) tea.Cmd {
	return func() tea.Msg {
		item, err := client.SetItemAvailability(context.Background(), id, available)
		return tui.AvailabilityMsg{Item: item, Err: err}
	}
}

// SaveCategoryCmd creates or renames a category.
func SaveCategoryCmd(client *api.Client, events *log.Logger, id int64, name string) tea.Cmd {
	return func() tea.Msg {
		category, err := client.SaveCategory(context.Background(), id, name)
		if err == nil && events != nil {
			_ = events.Append(log.LogEvent{Event: log.EventCategorySaved, ItemName: name})
		}
		return tui.CategorySavedMsg{Category: category, Err: err}
	}
}

// DeleteCategoryCmd removes a category.
func DeleteCategoryCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteCategory(context.Background(), id)
		return tui.CategoryDeletedMsg{ID: id, Err: err}
	}
}
