// Package api provides the HTTP client for the restaurant service REST API.
// This file defines the wire types shared by all endpoints.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Money is a decimal amount. The API serializes decimals as JSON strings
// ("12.50"); plain numbers are accepted too.
type Money float64

// UnmarshalJSON accepts both `"12.50"` and `12.5`.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*m = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse money %q: %w", s, err)
		}
		*m = Money(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// MarshalJSON emits the string form the server expects.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

// Category is a menu category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MenuItem is a single dish on the menu. CategoryDetails is populated on
// reads; writes reference the category by id only.
type MenuItem struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           Money     `json:"price"`
	CategoryDetails *Category `json:"category_details"`
	IsAvailable     bool      `json:"is_available"`
	ImageURL        string    `json:"image_url"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID           int64  `json:"id"`
	MenuItemID   int64  `json:"menu_item"`
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
	PriceAtOrder Money  `json:"price_at_order"`
}

// Order is the server-owned order record. The client never computes status
// transitions locally; it requests one and re-fetches.
type Order struct {
	ID          int64       `json:"id"`
	TableNumber string      `json:"table_number"`
	Status      string      `json:"status"`
	TotalPrice  Money       `json:"total_price"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Items       []OrderItem `json:"items"`
}

// OrderCreateItem is one line of an order submission.
type OrderCreateItem struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// OrderCreate is the payload for placing a new order.
type OrderCreate struct {
	TableNumber string            `json:"table_number"`
	Items       []OrderCreateItem `json:"items"`
}

// Menu is the customer-facing menu payload. TableNumber is set only when the
// menu was fetched for a specific table.
type Menu struct {
	Categories  []Category `json:"categories"`
	MenuItems   []MenuItem `json:"menu_items"`
	TableNumber string     `json:"table_number,omitempty"`
}

// QRCode describes a generated per-table QR code.
type QRCode struct {
	UUID        string    `json:"uuid"`
	TableNumber string    `json:"table_number"`
	QRCodeURL   string    `json:"qr_code_url"`
	LogoURL     string    `json:"logo_url"`
	QRColor     string    `json:"qr_color"`
	CreatedAt   time.Time `json:"created_at"`
}

// PopularItem is one entry of the analytics popular-items list.
type PopularItem struct {
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
	OrderCount    int    `json:"order_count"`
	TotalRevenue  Money  `json:"total_revenue"`
}

// RevenuePoint is one day of the analytics revenue series.
type RevenuePoint struct {
	Date       string `json:"date"`
	Revenue    Money  `json:"revenue"`
	OrderCount int    `json:"order_count"`
}

// VisitorPoint is one day of the analytics visitor series.
type VisitorPoint struct {
	Date     string `json:"date"`
	Visitors int    `json:"visitors"`
}

// CategoryRevenue is per-category revenue over the analytics window.
type CategoryRevenue struct {
	Category   string `json:"category"`
	Revenue    Money  `json:"revenue"`
	Quantity   int    `json:"quantity"`
	OrderCount int    `json:"order_count"`
}

// HourlyOrders is the order count for one hour of day.
type HourlyOrders struct {
	Hour       string `json:"hour"`
	OrderCount int    `json:"order_count"`
}

// AnalyticsSummary is the aggregated analytics payload.
type AnalyticsSummary struct {
	TotalCustomers  int               `json:"total_customers"`
	TotalItems      int               `json:"total_items"`
	TotalOrders     int               `json:"total_orders"`
	TotalRevenue    Money             `json:"total_revenue"`
	PopularItems    []PopularItem     `json:"popular_items"`
	RevenueData     []RevenuePoint    `json:"revenue_data"`
	VisitorData     []VisitorPoint    `json:"visitor_data"`
	CategoryRevenue []CategoryRevenue `json:"category_revenue"`
	HourlyOrders    []HourlyOrders    `json:"hourly_orders"`
}

// ActivityEntry is one row of the server-side activity log.
type ActivityEntry struct {
	ActivityType string          `json:"activity_type"`
	Username     string          `json:"username"`
	Details      json.RawMessage `json:"details"`
	Timestamp    time.Time       `json:"timestamp"`
}

// ActivityPage is a paginated slice of the activity log.
type ActivityPage struct {
	Data       []ActivityEntry `json:"data"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}
