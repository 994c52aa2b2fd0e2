// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/cart"
)

// ============================================================================
// Session Messages
// ============================================================================

// RestoreResultMsg reports the outcome of verifying a stored credential.
type RestoreResultMsg struct {
	Authenticated bool
	Err           error
}

// LoginResultMsg reports the outcome of a login attempt.
type LoginResultMsg struct {
	Err error
}

// LoggedOutMsg signals that the session has been torn down locally.
type LoggedOutMsg struct{}

// ============================================================================
// Fetch Messages
// ============================================================================

// MenuItemsMsg carries the refreshed menu item collection.
type MenuItemsMsg struct {
	Items []api.MenuItem
	Err   error
}

// CategoriesMsg carries the refreshed category collection.
type CategoriesMsg struct {
	Categories []api.Category
	Err        error
}

// OrdersMsg carries the refreshed order collection.
type OrdersMsg struct {
	Orders []api.Order
	Err    error
}

// QRCodesMsg carries the refreshed QR code collection.
type QRCodesMsg struct {
	Codes []api.QRCode
	Err   error
}

// AnalyticsMsg carries a refreshed analytics summary.
type AnalyticsMsg struct {
	Days    int
	Summary *api.AnalyticsSummary
	Err     error
}

// ActivitiesMsg carries a page of the manager activity log.
type ActivitiesMsg struct {
	Page *api.ActivityPage
	Err  error
}

// ============================================================================
// Mutation Messages
// ============================================================================

// ItemSavedMsg reports a menu item create or update.
type ItemSavedMsg struct {
	Item *api.MenuItem
	Err  error
}

// ItemDeletedMsg reports a menu item deletion.
type ItemDeletedMsg struct {
	ID  int64
	Err error
}

// AvailabilityMsg reports an availability toggle.
type AvailabilityMsg struct {
	Item *api.MenuItem
	Err  error
}

// CategorySavedMsg reports a category create or rename.
type CategorySavedMsg struct {
	Category *api.Category
	Err      error
}

// CategoryDeletedMsg reports a category deletion.
type CategoryDeletedMsg struct {
	ID  int64
	Err error
}

// OrderStatusMsg reports a requested order status change.
type OrderStatusMsg struct {
	Order *api.Order
	Err   error
}

// QRGeneratedMsg reports QR code generation for a table.
type QRGeneratedMsg struct {
	Code *api.QRCode
	Err  error
}

// ============================================================================
// Customer Messages
// ============================================================================

// MenuLoadedMsg carries the customer menu and resolved table context.
type MenuLoadedMsg struct {
	Menu  *api.Menu
	Table cart.TableContext
	Err   error
}

// OrderPlacedMsg reports a customer order submission.
type OrderPlacedMsg struct {
	Order *api.Order
	Err   error
}

// ============================================================================
// Utility Messages
// ============================================================================

// PollTickMsg fires when the polling scheduler requests an orders refresh.
type PollTickMsg struct{}

// BusyMsg reports a change of the in-flight request indicator.
type BusyMsg struct {
	Busy bool
}

// ToastMsg shows a transient notification.
type ToastMsg struct {
	Text    string
	Success bool
}

// ToastClearMsg hides the current notification.
type ToastClearMsg struct{}

// CtrlCResetMsg resets the double Ctrl+C confirmation after its timeout.
type CtrlCResetMsg struct{}
