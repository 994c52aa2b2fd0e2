// Package cart holds the customer's in-progress order and the table context
// it will be submitted under.
package cart

import (
	"github.com/tably-dev/tably/internal/api"
)

// unknownTable is the table number bound to orders placed without a
// resolved table context.
const unknownTable = "Unknown Table"

// Line is one entry of the in-progress order. Lines are ephemeral and never
// persisted.
type Line struct {
	ID       int64
	Name     string
	Price    api.Money
	Quantity int
}

// Cart accumulates menu items for a single customer sitting. Lines keep
// insertion order so the view stays stable as quantities change.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of the item into the cart. Adding an item already
// present bumps its quantity. Unavailable items are ignored.
func (c *Cart) Add(item api.MenuItem) {
	if !item.IsAvailable {
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	})
}

// Increment bumps the quantity of an existing line. Unknown ids are
// ignored.
func (c *Cart) Increment(id int64) {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity++
			return
		}
	}
}

// Decrement lowers the quantity of a line, removing it once the quantity
// would drop below one.
func (c *Cart) Decrement(id int64) {
	for i := range c.lines {
		if c.lines[i].ID != id {
			continue
		}
		c.lines[i].Quantity--
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// Remove deletes a line regardless of quantity.
func (c *Cart) Remove(id int64) {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total returns the summed price of the cart.
func (c *Cart) Total() api.Money {
	var total api.Money
	for _, l := range c.lines {
		total += l.Price * api.Money(l.Quantity)
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// ToOrder packages the cart into an order submission for the given table.
// An empty table number falls back to the unknown-table marker.
func (c *Cart) ToOrder(tableNumber string) api.OrderCreate {
	if tableNumber == "" {
		tableNumber = unknownTable
	}
	items := make([]api.OrderCreateItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, api.OrderCreateItem{
			MenuItemID: l.ID,
			Quantity:   l.Quantity,
		})
	}
	return api.OrderCreate{
		TableNumber: tableNumber,
		Items:       items,
	}
}
