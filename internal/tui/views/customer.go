package views

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/cart"
	"github.com/tably-dev/tably/internal/log"
	"github.com/tably-dev/tably/internal/tui"
	"github.com/tably-dev/tably/internal/tui/commands"
)

// customerRow is one display row of the customer menu: either a category
// header or a selectable item.
type customerRow struct {
	header string
	item   *api.MenuItem
}

// CustomerModel is the standalone customer ordering view, launched with a
// QR-carried table identifier.
type CustomerModel struct {
	client    *api.Client
	events    *log.Logger
	guard     *api.Guard
	tableUUID string
	toasts    chan tui.Toast

	table   cart.TableContext
	menu    *api.Menu
	rows    []customerRow
	cursor  int
	basket  *cart.Cart
	loadErr string
	notice  string

	width  int
	height int
}

// NewCustomerModel creates the customer ordering view. tableUUID may be
// empty for the unscoped menu.
func NewCustomerModel(client *api.Client, events *log.Logger, tableUUID string) *CustomerModel {
	m := &CustomerModel{
		client:    client,
		events:    events,
		guard:     &api.Guard{},
		tableUUID: tableUUID,
		toasts:    make(chan tui.Toast, 16),
		basket:    cart.New(),
		width:     80,
		height:    24,
	}
	client.SetNotifier(func(text string, success bool) {
		select {
		case m.toasts <- tui.Toast{Text: text, Success: success}:
		default:
		}
	})
	return m
}

// Init fetches the menu, scoped to the table when an identifier is present,
// and starts the notification listener.
func (m *CustomerModel) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadMenuCmd(m.client, m.tableUUID),
		commands.ListenToastCmd(m.toasts),
	)
}

// Update handles messages for the customer view.
func (m *CustomerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tui.MenuLoadedMsg:
		if msg.Err != nil {
			m.loadErr = msg.Err.Error()
			return m, nil
		}
		m.menu = msg.Menu
		m.table = msg.Table
		m.buildRows()
		m.cursor = m.firstItemRow()
		return m, nil

	case tui.OrderPlacedMsg:
		if msg.Err != nil {
			m.notice = tui.ErrorStyle.Render(friendlyError(msg.Err))
			return m, nil
		}
		m.basket.Clear()
		m.notice = tui.SuccessStyle.Render(fmt.Sprintf("Order #%d placed. The kitchen is on it!", msg.Order.ID))
		return m, nil

	case tui.ToastMsg:
		m.notice = tui.WarningStyle.Render(msg.Text)
		return m, commands.ListenToastCmd(m.toasts)

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlC, "q":
			return m, tea.Quit
		case tui.KeyUp, "k":
			m.moveCursor(-1)
		case tui.KeyDown, "j":
			m.moveCursor(1)
		case "+", tui.KeyEnter:
			if item := m.selectedItem(); item != nil {
				m.basket.Add(*item)
			}
		case "-":
			if item := m.selectedItem(); item != nil {
				m.basket.Decrement(item.ID)
			}
		case "c":
			if m.basket.Empty() {
				m.notice = tui.WarningStyle.Render("Your cart is empty")
				return m, nil
			}
			m.notice = ""
			return m, commands.PlaceOrderCmd(m.client, m.guard, m.events, m.basket.ToOrder(m.table.TableNumber))
		}
	}

	return m, nil
}

func (m *CustomerModel) buildRows() {
	m.rows = nil
	for _, c := range m.menu.Categories {
		var items []*api.MenuItem
		for i := range m.menu.MenuItems {
			it := &m.menu.MenuItems[i]
			if it.CategoryDetails != nil && it.CategoryDetails.ID == c.ID {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		m.rows = append(m.rows, customerRow{header: c.Name})
		for _, it := range items {
			m.rows = append(m.rows, customerRow{item: it})
		}
	}
}

func (m *CustomerModel) firstItemRow() int {
	for i, r := range m.rows {
		if r.item != nil {
			return i
		}
	}
	return 0
}

func (m *CustomerModel) moveCursor(delta int) {
	i := m.cursor
	for {
		i += delta
		if i < 0 || i >= len(m.rows) {
			return
		}
		if m.rows[i].item != nil {
			m.cursor = i
			return
		}
	}
}

func (m *CustomerModel) selectedItem() *api.MenuItem {
	if m.cursor < len(m.rows) {
		return m.rows[m.cursor].item
	}
	return nil
}

// View renders the customer menu and cart.
func (m *CustomerModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(fmt.Sprintf("Menu · %s", m.table.Number())))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != "":
		b.WriteString(tui.ErrorStyle.Render(m.loadErr))
	case m.menu == nil:
		b.WriteString(tui.DimStyle.Render("Loading menu..."))
	case len(m.rows) == 0:
		b.WriteString(tui.DimStyle.Render("The menu is empty"))
	default:
		for i, row := range m.rows {
			if row.header != "" {
				b.WriteString(tui.SelectedStyle.Render(row.header))
				b.WriteString("\n")
				continue
			}
			b.WriteString(m.renderItemRow(i, row.item))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderCart())
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n")
	}
	b.WriteString(tui.DimStyle.Render("+/-: Adjust cart · c: Place order · q: Quit"))

	return b.String()
}

func (m *CustomerModel) renderItemRow(idx int, item *api.MenuItem) string {
	qty := 0
	for _, l := range m.basket.Lines() {
		if l.ID == item.ID {
			qty = l.Quantity
		}
	}

	prefix := "  "
	if idx == m.cursor {
		prefix = "> "
	}
	line := fmt.Sprintf("%s%-28s %8s", prefix, item.Name, item.Price)
	if qty > 0 {
		line += fmt.Sprintf("  x%d", qty)
	}
	switch {
	case !item.IsAvailable:
		line = tui.DimStyle.Render(line + "  (unavailable)")
	case idx == m.cursor:
		line = tui.SelectedStyle.Render(line)
	}
	return line + "\n"
}

func (m *CustomerModel) renderCart() string {
	if m.basket.Empty() {
		return tui.DimStyle.Render("Cart is empty")
	}

	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Your order"))
	b.WriteString("\n")
	for _, l := range m.basket.Lines() {
		b.WriteString(fmt.Sprintf("  %dx %-26s %8s\n", l.Quantity, l.Name, l.Price*api.Money(l.Quantity)))
	}
	b.WriteString(fmt.Sprintf("  Total: %s", m.basket.Total()))
	return b.String()
}

// friendlyError keeps raw transport noise away from the customer.
func friendlyError(err error) string {
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return "Could not reach the restaurant. Please try again."
	}
	return err.Error()
}
