// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/config"
	"github.com/tably-dev/tably/internal/log"
	"github.com/tably-dev/tably/internal/order"
	"github.com/tably-dev/tably/internal/session"
)

// ViewState represents the current state of the TUI.
type ViewState int

const (
	StateRestoring ViewState = iota // Verifying a stored credential
	StateLogin
	StateDashboard
)

// Section represents the active dashboard section.
type Section int

const (
	SectionOrders Section = iota
	SectionMenu
	SectionCategories
	SectionQR
	SectionAnalytics
)

// String returns the section's display name.
func (s Section) String() string {
	switch s {
	case SectionOrders:
		return "Orders"
	case SectionMenu:
		return "Menu"
	case SectionCategories:
		return "Categories"
	case SectionQR:
		return "QR Codes"
	case SectionAnalytics:
		return "Analytics"
	default:
		return "Unknown"
	}
}

// Toast is a transient notification shown in the status area.
type Toast struct {
	Text    string
	Success bool
}

// Model is the shared dashboard state. It is constructed once and passed to
// every component, so isolated instances can exist side by side in tests.
type Model struct {
	// State management
	State   ViewState
	Section Section

	// Wiring
	Cfg     *config.Config
	Client  *api.Client
	Session *session.Manager
	Events  *log.Logger

	// Fetched collections, replaced wholesale after every fetch
	Items      []api.MenuItem
	Categories []api.Category
	Orders     []api.Order
	QRCodes    []api.QRCode
	Analytics  *api.AnalyticsSummary
	Activities *api.ActivityPage

	// Derived after every orders fetch
	Stats order.Summary

	// Status area
	Busy  bool
	Toast Toast

	// Shared components
	Spinner spinner.Model

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool
}

// NewModel creates the shared dashboard state.
func NewModel(cfg *config.Config, client *api.Client, sess *session.Manager, events *log.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	return &Model{
		State:   StateRestoring,
		Section: SectionOrders,
		Cfg:     cfg,
		Client:  client,
		Session: sess,
		Events:  events,
		Spinner: sp,
		Width:   80,
		Height:  24,
	}
}
