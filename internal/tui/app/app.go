// Package app provides the manager dashboard application that wires all
// sections together.
package app

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/config"
	"github.com/tably-dev/tably/internal/log"
	"github.com/tably-dev/tably/internal/order"
	"github.com/tably-dev/tably/internal/poll"
	"github.com/tably-dev/tably/internal/session"
	"github.com/tably-dev/tably/internal/tui"
	"github.com/tably-dev/tably/internal/tui/commands"
	"github.com/tably-dev/tably/internal/tui/views"
)

// toastDuration is how long a notification stays visible.
const toastDuration = 4 * time.Second

// activityPageSize is the rows-per-page for the activity log.
const activityPageSize = 10

// App is the manager dashboard application. It owns the shared model, the
// polling scheduler, and the per-section view models.
type App struct {
	model     *tui.Model
	scheduler *poll.Scheduler
	saveGuard *api.Guard

	// Channels bridging the coordinator's callbacks into the message loop.
	pollCh  chan struct{}
	busyCh  chan bool
	toastCh chan tui.Toast

	// View models
	loginView      views.LoginModel
	ordersView     views.OrdersModel
	menuView       views.MenuModel
	categoriesView views.CategoriesModel
	qrView         views.QRModel
	analyticsView  views.AnalyticsModel
}

// New creates the dashboard application and wires the coordinator's
// callbacks into it.
func New(cfg *config.Config, client *api.Client, sess *session.Manager, events *log.Logger) *App {
	model := tui.NewModel(cfg, client, sess, events)

	a := &App{
		model:     model,
		saveGuard: &api.Guard{},
		pollCh:    make(chan struct{}, 1),
		busyCh:    make(chan bool, 64),
		toastCh:   make(chan tui.Toast, 16),
	}

	client.SetNotifier(func(text string, success bool) {
		select {
		case a.toastCh <- tui.Toast{Text: text, Success: success}:
		default:
		}
	})
	client.Busy().OnChange(func(busy bool) {
		select {
		case a.busyCh <- busy:
		default:
		}
	})

	interval := time.Duration(cfg.Orders.PollInterval) * time.Second
	a.scheduler = poll.NewScheduler(interval, func() {
		select {
		case a.pollCh <- struct{}{}:
		default:
		}
	})

	a.loginView = views.NewLoginModel(model.Width, model.Height)
	a.ordersView = views.NewOrdersModel(nil, order.Summary{}, model.Width, model.Height)
	a.menuView = views.NewMenuModel(nil, nil, model.Width, model.Height)
	a.categoriesView = views.NewCategoriesModel(nil, model.Width, model.Height)
	a.qrView = views.NewQRModel(nil, model.Width, model.Height)
	a.analyticsView = views.NewAnalyticsModel(model.Width, model.Height)

	return a
}

// Init verifies any stored credential and starts the channel listeners.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.model.Spinner.Tick,
		commands.RestoreCmd(a.model.Session),
		commands.ListenPollCmd(a.pollCh),
		commands.ListenBusyCmd(a.busyCh),
		commands.ListenToastCmd(a.toastCh),
	)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		return a, a.propagateToAll(msg)

	case tea.FocusMsg:
		a.scheduler.SetVisible(true)
		return a, nil

	case tea.BlurMsg:
		a.scheduler.SetVisible(false)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.model.Spinner, cmd = a.model.Spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if handled, cmd := a.handleGlobalKey(msg); handled {
			return a, cmd
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.PollTickMsg:
		return a, tea.Batch(
			commands.FetchOrdersCmd(a.model.Client),
			commands.ListenPollCmd(a.pollCh),
		)

	case tui.BusyMsg:
		a.model.Busy = msg.Busy
		return a, tea.Batch(
			a.model.Spinner.Tick,
			commands.ListenBusyCmd(a.busyCh),
		)

	case tui.ToastMsg:
		a.model.Toast = tui.Toast{Text: msg.Text, Success: msg.Success}
		return a, tea.Batch(
			tea.Tick(toastDuration, func(time.Time) tea.Msg { return tui.ToastClearMsg{} }),
			commands.ListenToastCmd(a.toastCh),
		)

	case tui.ToastClearMsg:
		a.model.Toast = tui.Toast{}
		return a, nil
	}

	if cmd, routed := a.handleSessionMsg(msg); routed {
		return a, cmd
	}
	if cmd, routed := a.handleDataMsg(msg); routed {
		return a, cmd
	}
	if cmd, routed := a.handleRequestMsg(msg); routed {
		return a, cmd
	}

	return a, a.updateActiveView(msg)
}

// handleGlobalKey covers keys that apply regardless of the active section.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case tui.KeyCtrlC:
		if a.model.CtrlCPending {
			a.scheduler.Stop()
			return true, tea.Quit
		}
		a.model.CtrlCPending = true
		return true, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return tui.CtrlCResetMsg{}
		})

	case tui.KeyCtrlL:
		if a.model.State == tui.StateDashboard {
			return true, commands.LogoutCmd(a.model.Session)
		}

	case tui.KeyTab:
		if a.model.State == tui.StateDashboard && !a.sectionCapturing() {
			return true, a.cycleSection()
		}
	}
	return false, nil
}

// sectionCapturing reports whether the active section is consuming raw key
// input, in which case tab must reach it instead of switching sections.
func (a *App) sectionCapturing() bool {
	switch a.model.Section {
	case tui.SectionOrders:
		return a.ordersView.Editing()
	case tui.SectionMenu:
		return a.menuView.Editing()
	case tui.SectionCategories:
		return a.categoriesView.Editing()
	case tui.SectionQR:
		return a.qrView.Editing()
	case tui.SectionAnalytics:
		return a.analyticsView.Editing()
	default:
		return false
	}
}

// cycleSection advances to the next dashboard section and retargets the
// polling scheduler.
func (a *App) cycleSection() tea.Cmd {
	a.model.Section = tui.Section((int(a.model.Section) + 1) % 5)
	a.scheduler.SetActive(a.model.Section == tui.SectionOrders)

	if a.model.Section == tui.SectionAnalytics && a.model.Analytics == nil {
		return commands.FetchAnalyticsCmd(a.model.Client, commands.DefaultAnalyticsDays)
	}
	return nil
}

// ============================================================================
// Session Messages
// ============================================================================

func (a *App) handleSessionMsg(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tui.RestoreResultMsg:
		if msg.Err != nil {
			a.model.State = tui.StateLogin
			a.loginView.SetError(msg.Err.Error())
			return a.loginView.Init(), true
		}
		if msg.Authenticated {
			return a.enterDashboard(), true
		}
		a.model.State = tui.StateLogin
		return a.loginView.Init(), true

	case views.SubmitLoginMsg:
		return commands.LoginCmd(a.model.Session, msg.Username, msg.Password), true

	case tui.LoginResultMsg:
		if msg.Err != nil {
			a.loginView.SetError(loginFailureText(msg.Err))
			return nil, true
		}
		return a.enterDashboard(), true

	case tui.LoggedOutMsg:
		a.teardownToLogin("")
		return a.loginView.Init(), true
	}

	return nil, false
}

// enterDashboard transitions into the dashboard and loads every section.
func (a *App) enterDashboard() tea.Cmd {
	a.model.State = tui.StateDashboard
	a.model.Section = tui.SectionOrders
	a.scheduler.SetActive(true)
	return commands.InitialLoadCmd(a.model.Client)
}

// teardownToLogin clears dashboard state after logout or session expiry.
func (a *App) teardownToLogin(notice string) {
	a.model.State = tui.StateLogin
	a.model.Items = nil
	a.model.Categories = nil
	a.model.Orders = nil
	a.model.QRCodes = nil
	a.model.Analytics = nil
	a.model.Activities = nil
	a.model.Stats = order.Summary{}
	a.scheduler.SetActive(false)

	a.loginView = views.NewLoginModel(a.model.Width, a.model.Height)
	if notice != "" {
		a.loginView.SetError(notice)
	}
}

func loginFailureText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var validation *api.ValidationError
	if errors.As(err, &validation) {
		return validation.Reason
	}
	return "Login failed. Please try again."
}

// ============================================================================
// Fetch and Mutation Messages
// ============================================================================

func (a *App) handleDataMsg(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tui.MenuItemsMsg:
		if msg.Err != nil {
			return a.handleFetchErr(msg.Err), true
		}
		a.model.Items = msg.Items
		a.menuView.SetItems(msg.Items)
		return nil, true

	case tui.CategoriesMsg:
		if msg.Err != nil {
			return a.handleFetchErr(msg.Err), true
		}
		a.model.Categories = msg.Categories
		a.menuView.SetCategories(msg.Categories)
		a.categoriesView.SetCategories(msg.Categories)
		return nil, true

	case tui.OrdersMsg:
		if msg.Err != nil {
			return a.handleFetchErr(msg.Err), true
		}
		a.model.Orders = msg.Orders
		a.model.Stats = order.Stats(msg.Orders, time.Now())
		a.ordersView.SetOrders(msg.Orders, a.model.Stats)
		return nil, true

	case tui.QRCodesMsg:
		if msg.Err != nil {
			return a.handleFetchErr(msg.Err), true
		}
		a.model.QRCodes = msg.Codes
		a.qrView.SetCodes(msg.Codes)
		return nil, true

	case tui.AnalyticsMsg:
		if msg.Err != nil {
			return a.handleFetchErr(msg.Err), true
		}
		a.model.Analytics = msg.Summary
		a.analyticsView.SetSummary(msg.Days, msg.Summary)
		search, activityType := a.analyticsView.Filters()
		return commands.FetchActivitiesCmd(a.model.Client, 1, activityPageSize, search, activityType), true

	case tui.ActivitiesMsg:
		if msg.Err != nil {
			return a.handleFetchErr(msg.Err), true
		}
		a.model.Activities = msg.Page
		a.analyticsView.SetActivities(msg.Page)
		return nil, true

	case tui.ItemSavedMsg:
		if msg.Err != nil {
			a.menuView.SetFormError(messageFor(msg.Err))
			return a.handleFetchErr(msg.Err), true
		}
		a.menuView.CloseForm()
		return commands.FetchMenuItemsCmd(a.model.Client), true

	case tui.ItemDeletedMsg:
		if msg.Err != nil {
			return a.handleFetchErr(msg.Err), true
		}
		return commands.FetchMenuItemsCmd(a.model.Client), true

	case tui.AvailabilityMsg:
		if msg.Err != nil {
			return a.handleFetchErr(msg.Err), true
		}
		return commands.FetchMenuItemsCmd(a.model.Client), true

	case tui.CategorySavedMsg:
		if msg.Err != nil {
			a.categoriesView.SetFormError(messageFor(msg.Err))
			return a.handleFetchErr(msg.Err), true
		}
		a.categoriesView.CloseForm()
		return commands.FetchCategoriesCmd(a.model.Client), true

	case tui.CategoryDeletedMsg:
		if msg.Err != nil {
			return a.handleFetchErr(msg.Err), true
		}
		return commands.FetchCategoriesCmd(a.model.Client), true

	case tui.OrderStatusMsg:
		if msg.Err != nil {
			return a.handleFetchErr(msg.Err), true
		}
		return commands.FetchOrdersCmd(a.model.Client), true

	case tui.QRGeneratedMsg:
		if msg.Err != nil {
			a.qrView.SetFormError(messageFor(msg.Err))
			return a.handleFetchErr(msg.Err), true
		}
		a.qrView.CloseForm()
		return commands.FetchQRCodesCmd(a.model.Client), true
	}

	return nil, false
}

// handleFetchErr funnels every failed call through the single session
// teardown point. Non-auth failures were already surfaced as toasts by the
// coordinator's notifier.
func (a *App) handleFetchErr(err error) tea.Cmd {
	if errors.Is(err, api.ErrUnauthorized) {
		a.teardownToLogin("Session expired. Please log in again.")
		return a.loginView.Init()
	}
	return nil
}

// messageFor extracts a display message from a failed mutation.
func messageFor(err error) string {
	var validation *api.ValidationError
	if errors.As(err, &validation) {
		return validation.Reason
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Request failed. Please try again."
}

// ============================================================================
// View Request Messages
// ============================================================================

func (a *App) handleRequestMsg(msg tea.Msg) (tea.Cmd, bool) {
	c := a.model.Client
	switch msg := msg.(type) {
	case views.SaveItemRequestMsg:
		return commands.SaveItemCmd(c, a.saveGuard, a.model.Events, msg.Draft, a.model.Cfg.Uploads.MaxImageBytes), true

	case views.DeleteItemRequestMsg:
		return commands.DeleteItemCmd(c, a.model.Events, msg.ID, msg.Name), true

	case views.ToggleItemRequestMsg:
		return commands.ToggleAvailabilityCmd(c, msg.ID, msg.Available), true

	case views.SaveCategoryRequestMsg:
		return commands.SaveCategoryCmd(c, a.model.Events, msg.ID, msg.Name), true

	case views.DeleteCategoryRequestMsg:
		return commands.DeleteCategoryCmd(c, msg.ID), true

	case views.OrderActionMsg:
		return commands.SetOrderStatusCmd(c, a.model.Events, msg.ID, msg.Next), true

	case views.RefreshOrdersMsg:
		return commands.FetchOrdersCmd(c), true

	case views.GenerateQRRequestMsg:
		var logo *api.Upload
		if msg.LogoPath != "" {
			loaded, err := api.LoadUpload(msg.LogoPath)
			if err != nil {
				a.qrView.SetFormError(err.Error())
				return nil, true
			}
			logo = loaded
		}
		return commands.GenerateQRCmd(c, a.model.Events, msg.TableNumber, msg.Color, logo, a.model.Cfg.Uploads.MaxLogoBytes), true

	case views.AnalyticsRangeMsg:
		return commands.FetchAnalyticsCmd(c, msg.Days), true

	case views.ActivitiesPageMsg:
		return commands.FetchActivitiesCmd(c, msg.Page, activityPageSize, msg.Search, msg.Type), true
	}

	return nil, false
}

// ============================================================================
// View Routing
// ============================================================================

// propagateToAll fans a resize out to every view so none keeps stale
// dimensions.
func (a *App) propagateToAll(msg tea.WindowSizeMsg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.loginView, cmd = a.loginView.Update(msg)
	cmds = append(cmds, cmd)
	a.ordersView, cmd = a.ordersView.Update(msg)
	cmds = append(cmds, cmd)
	a.menuView, cmd = a.menuView.Update(msg)
	cmds = append(cmds, cmd)
	a.categoriesView, cmd = a.categoriesView.Update(msg)
	cmds = append(cmds, cmd)
	a.qrView, cmd = a.qrView.Update(msg)
	cmds = append(cmds, cmd)
	a.analyticsView, cmd = a.analyticsView.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

// updateActiveView routes remaining messages to the visible view.
func (a *App) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.model.State {
	case tui.StateLogin:
		a.loginView, cmd = a.loginView.Update(msg)
		return cmd

	case tui.StateDashboard:
		switch a.model.Section {
		case tui.SectionOrders:
			a.ordersView, cmd = a.ordersView.Update(msg)
		case tui.SectionMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case tui.SectionCategories:
			a.categoriesView, cmd = a.categoriesView.Update(msg)
		case tui.SectionQR:
			a.qrView, cmd = a.qrView.Update(msg)
		case tui.SectionAnalytics:
			a.analyticsView, cmd = a.analyticsView.Update(msg)
		}
		return cmd
	}

	return nil
}

// ============================================================================
// Rendering
// ============================================================================

// View renders the current application state.
func (a *App) View() string {
	switch a.model.State {
	case tui.StateRestoring:
		content := tui.BoxStyle.Render(a.model.Spinner.View() + " Checking session...")
		return a.center(content)

	case tui.StateLogin:
		return a.center(a.loginView.View())

	case tui.StateDashboard:
		return a.renderDashboard()

	default:
		return "Unknown state"
	}
}

func (a *App) center(content string) string {
	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

func (a *App) renderDashboard() string {
	header := tui.TitleStyle.Render("Tably Manager")
	if a.model.Busy {
		header += "  " + a.model.Spinner.View()
	}
	if a.model.Toast.Text != "" {
		style := tui.ErrorStyle
		if a.model.Toast.Success {
			style = tui.SuccessStyle
		}
		header += "  " + style.Render(a.model.Toast.Text)
	}

	var content string
	switch a.model.Section {
	case tui.SectionOrders:
		content = a.ordersView.View()
	case tui.SectionMenu:
		content = a.menuView.View()
	case tui.SectionCategories:
		content = a.categoriesView.View()
	case tui.SectionQR:
		content = a.qrView.View()
	case tui.SectionAnalytics:
		content = a.analyticsView.View()
	}

	footer := tui.DimStyle.Render("Tab: Next section · Ctrl+L: Logout · Ctrl+C: Exit")
	if a.model.CtrlCPending {
		footer = tui.WarningStyle.Render("Press Ctrl+C again to exit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		a.renderSectionTabs(),
		"",
		content,
		"",
		footer,
	)
}

// renderSectionTabs renders the section bar with the active one highlighted.
func (a *App) renderSectionTabs() string {
	sections := []tui.Section{
		tui.SectionOrders,
		tui.SectionMenu,
		tui.SectionCategories,
		tui.SectionQR,
		tui.SectionAnalytics,
	}

	var rendered []string
	for _, s := range sections {
		if s == a.model.Section {
			rendered = append(rendered, tui.ActiveTabStyle.Render(s.String()))
		} else {
			rendered = append(rendered, tui.InactiveTabStyle.Render(s.String()))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
