package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/tui"
)

// AnalyticsRangeMsg is sent when the user cycles the trailing window.
type AnalyticsRangeMsg struct {
	Days int
}

// ActivitiesPageMsg is sent when the user pages or filters the activity log.
type ActivitiesPageMsg struct {
	Page   int
	Search string
	Type   string
}

// analyticsRanges are the selectable trailing windows, in cycling order.
var analyticsRanges = []int{7, 30, 90}

// activityTypes are the selectable activity filters; empty means all.
var activityTypes = []string{
	"",
	"login",
	"logout",
	"order_placed",
	"item_created",
	"item_updated",
	"item_deleted",
	"qr_generated",
}

// AnalyticsModel is the view model for the analytics section.
type AnalyticsModel struct {
	summary      *api.AnalyticsSummary
	activities   *api.ActivityPage
	days         int
	search       textinput.Model
	searching    bool
	activityType string
	viewport     viewport.Model
	width        int
	height       int
}

// NewAnalyticsModel creates the analytics section view.
func NewAnalyticsModel(width, height int) AnalyticsModel {
	vp := viewport.New(width-8, height-12)

	search := textinput.New()
	search.Placeholder = "Search activity"
	search.CharLimit = 64
	search.Width = 32

	return AnalyticsModel{
		days:     analyticsRanges[0],
		search:   search,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// SetSummary replaces the displayed summary after a fetch.
func (m *AnalyticsModel) SetSummary(days int, summary *api.AnalyticsSummary) {
	m.days = days
	m.summary = summary
	m.viewport.SetContent(m.renderContent())
}

// SetActivities replaces the displayed activity page after a fetch.
func (m *AnalyticsModel) SetActivities(page *api.ActivityPage) {
	m.activities = page
	m.viewport.SetContent(m.renderContent())
}

// Filters returns the current activity search text and type filter.
func (m AnalyticsModel) Filters() (search, activityType string) {
	return m.search.Value(), m.activityType
}

// Editing reports whether the activity search input has focus.
func (m AnalyticsModel) Editing() bool {
	return m.searching
}

// Init returns the initial command for the analytics view.
func (m AnalyticsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the analytics view.
func (m AnalyticsModel) Update(msg tea.Msg) (AnalyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 8
		m.viewport.Height = msg.Height - 12
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case tui.KeyEsc:
				m.searching = false
				m.search.Blur()
				m.search.SetValue("")
				return m, m.refreshActivities(1)
			case tui.KeyEnter:
				m.searching = false
				m.search.Blur()
				return m, m.refreshActivities(1)
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "w":
			next := analyticsRanges[0]
			for i, d := range analyticsRanges {
				if d == m.days {
					next = analyticsRanges[(i+1)%len(analyticsRanges)]
					break
				}
			}
			days := next
			return m, func() tea.Msg {
				return AnalyticsRangeMsg{Days: days}
			}

		case "/":
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink

		case "t":
			next := activityTypes[0]
			for i, t := range activityTypes {
				if t == m.activityType {
					next = activityTypes[(i+1)%len(activityTypes)]
					break
				}
			}
			m.activityType = next
			return m, m.refreshActivities(1)

		case "]":
			if m.activities != nil && m.activities.Page < m.activities.TotalPages {
				return m, m.refreshActivities(m.activities.Page + 1)
			}
			return m, nil

		case "[":
			if m.activities != nil && m.activities.Page > 1 {
				return m, m.refreshActivities(m.activities.Page - 1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m AnalyticsModel) refreshActivities(page int) tea.Cmd {
	search, activityType := m.search.Value(), m.activityType
	return func() tea.Msg {
		return ActivitiesPageMsg{Page: page, Search: search, Type: activityType}
	}
}

// View renders the analytics section.
func (m AnalyticsModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(fmt.Sprintf("Analytics · last %d days", m.days)))
	b.WriteString("\n\n")

	if m.summary == nil {
		b.WriteString(tui.DimStyle.Render("Loading analytics..."))
	} else {
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n\n")
	if m.searching {
		b.WriteString("Search: " + m.search.View())
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("Enter: Apply · Esc: Clear"))
	} else {
		filter := "all"
		if m.activityType != "" {
			filter = m.activityType
		}
		b.WriteString(tui.DimStyle.Render(fmt.Sprintf(
			"w: Change window · /: Search · t: Type (%s) · [/]: Activity pages · j/k: Scroll", filter)))
	}
	return b.String()
}

func (m AnalyticsModel) renderContent() string {
	if m.summary == nil {
		return ""
	}
	s := m.summary

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Customers: %d · Orders: %d · Items sold: %d · Revenue: %s\n\n",
		s.TotalCustomers, s.TotalOrders, s.TotalItems, s.TotalRevenue))

	if len(s.PopularItems) > 0 {
		b.WriteString(tui.SelectedStyle.Render("Popular items"))
		b.WriteString("\n")
		for _, p := range s.PopularItems {
			b.WriteString(fmt.Sprintf("  %-24s %4dx in %d orders · %s\n",
				p.Name, p.TotalQuantity, p.OrderCount, p.TotalRevenue))
		}
		b.WriteString("\n")
	}

	if len(s.RevenueData) > 0 {
		b.WriteString(tui.SelectedStyle.Render("Revenue by day"))
		b.WriteString("\n")
		for _, r := range s.RevenueData {
			b.WriteString(fmt.Sprintf("  %s  %s (%d orders)\n", r.Date, r.Revenue, r.OrderCount))
		}
		b.WriteString("\n")
	}

	if len(s.CategoryRevenue) > 0 {
		b.WriteString(tui.SelectedStyle.Render("Revenue by category"))
		b.WriteString("\n")
		for _, c := range s.CategoryRevenue {
			b.WriteString(fmt.Sprintf("  %-24s %s (%d orders)\n", c.Category, c.Revenue, c.OrderCount))
		}
		b.WriteString("\n")
	}

	if len(s.HourlyOrders) > 0 {
		b.WriteString(tui.SelectedStyle.Render("Busiest hours"))
		b.WriteString("\n")
		for _, h := range s.HourlyOrders {
			b.WriteString(fmt.Sprintf("  %s  %s\n", h.Hour, strings.Repeat("▇", h.OrderCount)))
		}
		b.WriteString("\n")
	}

	if m.activities != nil && len(m.activities.Data) > 0 {
		b.WriteString(tui.SelectedStyle.Render(fmt.Sprintf("Activity (page %d/%d)", m.activities.Page, m.activities.TotalPages)))
		b.WriteString("\n")
		for _, a := range m.activities.Data {
			b.WriteString(fmt.Sprintf("  %s  %-16s %s\n",
				a.Timestamp.Format("Jan 02 15:04"), a.ActivityType, a.Username))
		}
	}

	return b.String()
}
