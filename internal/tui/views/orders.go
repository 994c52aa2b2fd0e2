package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/order"
	"github.com/tably-dev/tably/internal/tui"
)

// OrderActionMsg is sent when the user picks a status change for an order.
type OrderActionMsg struct {
	ID   int64
	Next order.Status
}

// RefreshOrdersMsg is sent when the user requests a manual refresh.
type RefreshOrdersMsg struct{}

// orderEntry implements list.Item for the order list.
type orderEntry struct {
	order api.Order
}

// Title returns the order headline for list display.
func (e orderEntry) Title() string {
	return fmt.Sprintf("%s #%d · %s · %s",
		statusIcon(order.Status(e.order.Status)),
		e.order.ID,
		e.order.TableNumber,
		order.Label(order.Status(e.order.Status)),
	)
}

// Description returns the order details line for list display.
func (e orderEntry) Description() string {
	names := make([]string, 0, len(e.order.Items))
	for _, it := range e.order.Items {
		names = append(names, fmt.Sprintf("%dx %s", it.Quantity, it.MenuItemName))
	}
	return fmt.Sprintf("%s · %s · %s",
		e.order.TotalPrice,
		strings.Join(names, ", "),
		e.order.CreatedAt.Format("15:04"),
	)
}

// FilterValue returns the value used for filtering in the list.
func (e orderEntry) FilterValue() string {
	return e.order.TableNumber
}

func statusIcon(s order.Status) string {
	switch {
	case order.IsActive(s):
		return tui.StatusActive
	case s == order.StatusCompleted:
		return tui.StatusDone
	case s == order.StatusCancelled:
		return tui.StatusCancelled
	default:
		return tui.StatusArchived
	}
}

// OrdersModel is the view model for the orders section.
type OrdersModel struct {
	orderList list.Model
	stats     order.Summary
	width     int
	height    int
}

// NewOrdersModel creates the orders section view.
func NewOrdersModel(orders []api.Order, stats order.Summary, width, height int) OrdersModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("#E8590C")).
		BorderForeground(lipgloss.Color("#E8590C"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("#9CA3AF"))

	l := list.New(orderItems(orders), delegate, width-8, height-12)
	l.Title = "Orders"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return OrdersModel{
		orderList: l,
		stats:     stats,
		width:     width,
		height:    height,
	}
}

func orderItems(orders []api.Order) []list.Item {
	items := make([]list.Item, len(orders))
	for i, o := range orders {
		items[i] = orderEntry{order: o}
	}
	return items
}

// SetOrders replaces the displayed collection after a fetch.
func (m *OrdersModel) SetOrders(orders []api.Order, stats order.Summary) {
	m.orderList.SetItems(orderItems(orders))
	m.stats = stats
}

// Editing reports whether the filter input currently captures input.
func (m OrdersModel) Editing() bool {
	return m.orderList.FilterState() == list.Filtering
}

// Init returns the initial command for the orders view.
func (m OrdersModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the orders view.
func (m OrdersModel) Update(msg tea.Msg) (OrdersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.orderList.SetSize(msg.Width-8, msg.Height-12)
		return m, nil

	case tea.KeyMsg:
		// The filter input takes over plain keys while active.
		if m.orderList.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "r":
			return m, func() tea.Msg { return RefreshOrdersMsg{} }
		case "1", "2":
			entry, ok := m.orderList.SelectedItem().(orderEntry)
			if !ok {
				return m, nil
			}
			actions := order.Actions(order.Status(entry.order.Status))
			idx := int(msg.String()[0] - '1')
			if idx >= len(actions) {
				return m, nil
			}
			id := entry.order.ID
			next := actions[idx].Next
			return m, func() tea.Msg {
				return OrderActionMsg{ID: id, Next: next}
			}
		}
	}

	var cmd tea.Cmd
	m.orderList, cmd = m.orderList.Update(msg)
	return m, cmd
}

// View renders the orders section.
func (m OrdersModel) View() string {
	var b strings.Builder

	statsLine := fmt.Sprintf("Active orders: %d · Today's revenue: $%.2f",
		m.stats.ActiveCount, m.stats.TodayRevenue)
	b.WriteString(tui.TitleStyle.Render(statsLine))
	b.WriteString("\n\n")

	if len(m.orderList.Items()) == 0 {
		b.WriteString(tui.DimStyle.Render("No orders yet"))
	} else {
		b.WriteString(m.orderList.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderFooter lists the status changes offered for the selected order.
func (m OrdersModel) renderFooter() string {
	hints := []string{"r: Refresh", "/: Filter"}

	if entry, ok := m.orderList.SelectedItem().(orderEntry); ok {
		actions := order.Actions(order.Status(entry.order.Status))
		for i, a := range actions {
			hints = append(hints, fmt.Sprintf("%d: %s", i+1, a.Label))
		}
	}

	return tui.DimStyle.Render(strings.Join(hints, " · "))
}
