package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Menu fetches the unscoped customer menu. No credential required.
func (c *Client) Menu(ctx context.Context) (*Menu, error) {
	var m Menu
	if err := c.get(ctx, "/menu/", false, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MenuForTable fetches the menu scoped to a table identifier. The response
// carries the table number the identifier resolves to.
func (c *Client) MenuForTable(ctx context.Context, tableUUID string) (*Menu, error) {
	var m Menu
	if err := c.get(ctx, "/menu/"+url.PathEscape(tableUUID)+"/", false, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Categories fetches all menu categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var l list[Category]
	if err := c.get(ctx, "/categories/", true, &l); err != nil {
		return nil, err
	}
	return l.Items, nil
}

// SaveCategory creates a category (id 0) or updates an existing one.
func (c *Client) SaveCategory(ctx context.Context, id int64, name string) (*Category, error) {
	if name == "" {
		err := &ValidationError{Reason: "category name is required"}
		c.say(err.Error(), false)
		return nil, err
	}
	payload := map[string]string{"name": name}
	var cat Category
	var err error
	if id == 0 {
		err = c.sendJSON(ctx, http.MethodPost, "/categories/", payload, &cat)
	} else {
		err = c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/categories/%d/", id), payload, &cat)
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category. Items in the category are unaffected
// server-side.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	status, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d/", id), nil, "", true, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return &Error{Status: status, Message: "unexpected response deleting category"}
	}
	return nil
}

// MenuItems fetches the full menu item list. Also serves as the lightweight
// authenticated read used to verify a stored credential.
func (c *Client) MenuItems(ctx context.Context) ([]MenuItem, error) {
	var l list[MenuItem]
	if err := c.get(ctx, "/menu_items/", true, &l); err != nil {
		return nil, err
	}
	return l.Items, nil
}

// ItemDraft is the client-side input for creating or updating a menu item.
// ID zero means create. Image is optional.
type ItemDraft struct {
	ID          int64
	Name        string
	Description string
	Price       Money
	CategoryID  int64
	IsAvailable bool
	Image       *Upload
}

// validate rejects drafts the server would reject anyway, before dispatch.
func (d *ItemDraft) validate(maxImageBytes int64) error {
	if d.Name == "" {
		return &ValidationError{Reason: "missing required field: name"}
	}
	if d.Price <= 0 {
		return &ValidationError{Reason: "missing required field: price"}
	}
	if d.CategoryID == 0 {
		return &ValidationError{Reason: "missing required field: category"}
	}
	if d.Image != nil {
		if err := d.Image.validate(menuImageTypes, maxImageBytes); err != nil {
			return err
		}
	}
	return nil
}

// SaveMenuItem creates or updates a menu item via multipart form submission
// so an optional image can ride along. Callers serialize saves behind a
// Guard; the coordinator does not deduplicate.
func (c *Client) SaveMenuItem(ctx context.Context, draft ItemDraft, maxImageBytes int64) (*MenuItem, error) {
	if err := draft.validate(maxImageBytes); err != nil {
		c.say(err.Error(), false)
		return nil, err
	}

	fields := map[string]string{
		"name":         draft.Name,
		"description":  draft.Description,
		"price":        draft.Price.String(),
		"category":     strconv.FormatInt(draft.CategoryID, 10),
		"is_available": strconv.FormatBool(draft.IsAvailable),
	}
	body, contentType, err := multipartForm(fields, "image", draft.Image)
	if err != nil {
		return nil, err
	}

	endpoint := "/menu_items/"
	method := http.MethodPost
	if draft.ID != 0 {
		endpoint = fmt.Sprintf("/menu_items/%d/", draft.ID)
		method = http.MethodPut
	}

	var item MenuItem
	if _, err := c.do(ctx, method, endpoint, body, contentType, true, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMenuItem removes a menu item.
func (c *Client) DeleteMenuItem(ctx context.Context, id int64) error {
	status, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/menu_items/%d/", id), nil, "", true, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return &Error{Status: status, Message: "unexpected response deleting menu item"}
	}
	return nil
}

// SetItemAvailability toggles a single item's availability via a partial
// update of only the is_available field.
func (c *Client) SetItemAvailability(ctx context.Context, id int64, available bool) (*MenuItem, error) {
	payload := map[string]bool{"is_available": available}
	var item MenuItem
	if err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/menu_items/%d/", id), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Orders fetches all orders.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var l list[Order]
	if err := c.get(ctx, "/orders/", true, &l); err != nil {
		return nil, err
	}
	return l.Items, nil
}

// PlaceOrder submits a customer order. No credential required; the customer
// surface is anonymous.
func (c *Client) PlaceOrder(ctx context.Context, order OrderCreate) (*Order, error) {
	if len(order.Items) == 0 {
		return nil, &ValidationError{Reason: "order has no items"}
	}
	var placed Order
	if err := c.postJSON(ctx, "/orders/", order, false, &placed); err != nil {
		return nil, err
	}
	return &placed, nil
}

// SetOrderStatus requests a status transition via a partial update of only
// the status field; the full record is never overwritten. Callers re-fetch
// the order list after success rather than mutating local state.
func (c *Client) SetOrderStatus(ctx context.Context, id int64, status string) (*Order, error) {
	payload := map[string]string{"status": status}
	var o Order
	if err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/", id), payload, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Login exchanges manager credentials for a session token. Unauthenticated.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", &ValidationError{Reason: "please enter both username and password"}
	}
	payload := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.postJSON(ctx, "/manager/login/", payload, false, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/manager/logout/", nil, "", true, nil)
	return err
}

// QRCodes lists the generated per-table QR codes.
func (c *Client) QRCodes(ctx context.Context) ([]QRCode, error) {
	var l list[QRCode]
	if err := c.get(ctx, "/qr_codes/", true, &l); err != nil {
		return nil, err
	}
	return l.Items, nil
}

// GenerateQRCode requests a new QR code for a table, with an optional logo
// overlaid server-side. Multipart so the logo can be attached.
func (c *Client) GenerateQRCode(ctx context.Context, tableNumber, color string, logo *Upload, maxLogoBytes int64) (*QRCode, error) {
	if tableNumber == "" {
		err := &ValidationError{Reason: "please enter a table number/name"}
		c.say(err.Error(), false)
		return nil, err
	}
	if logo != nil {
		if err := logo.validate(logoTypes, maxLogoBytes); err != nil {
			c.say(err.Error(), false)
			return nil, err
		}
	}

	fields := map[string]string{
		"table_number": tableNumber,
		"qr_color":     color,
	}
	body, contentType, err := multipartForm(fields, "logo", logo)
	if err != nil {
		return nil, err
	}

	var qr QRCode
	if _, err := c.do(ctx, http.MethodPost, "/qr_codes/generate/", body, contentType, true, &qr); err != nil {
		return nil, err
	}
	return &qr, nil
}

// AnalyticsSummary fetches aggregated analytics over the last days days.
func (c *Client) AnalyticsSummary(ctx context.Context, days int) (*AnalyticsSummary, error) {
	var s AnalyticsSummary
	endpoint := "/analytics/summary/?days=" + strconv.Itoa(days)
	if err := c.get(ctx, endpoint, true, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ActivityLog fetches one page of the server-side activity log, optionally
// filtered by search text and activity type.
func (c *Client) ActivityLog(ctx context.Context, page, perPage int, search, activityType string) (*ActivityPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	if search != "" {
		q.Set("search", search)
	}
	if activityType != "" {
		q.Set("type", activityType)
	}
	var p ActivityPage
	if err := c.get(ctx, "/analytics/activities/?"+q.Encode(), true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
