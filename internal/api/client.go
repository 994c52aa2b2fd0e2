// Package api provides the HTTP client for the restaurant service REST API.
// This file implements the request coordinator: header composition, busy
// accounting, and uniform response interpretation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/tably-dev/tably/internal/log"
)

// basePath is the fixed prefix all API endpoints live under.
const basePath = "/api"

// csrfCookie is the cookie the server sets with the anti-forgery token.
const csrfCookie = "csrftoken"

// TokenSource supplies the session credential, if any. An empty string means
// unauthenticated.
type TokenSource interface {
	Token() string
}

// Notifier receives one user-visible message per notable outcome. Exactly one
// notification is emitted per failed call; callers must not add their own.
type Notifier func(message string, success bool)

// Client coordinates all network calls to the restaurant service.
type Client struct {
	baseURL    string
	httpClient *http.Client

	tokens         TokenSource
	notify         Notifier
	onUnauthorized func()
	events         *log.Logger

	busy Busy
}

// NewClient creates a Client for the service at baseURL. The client carries a
// cookie jar so the server-issued anti-forgery cookie can be echoed back as a
// header on mutating calls.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: base URL %q missing scheme or host", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: creating cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// SetTokenSource registers the source of the session credential.
func (c *Client) SetTokenSource(ts TokenSource) { c.tokens = ts }

// SetNotifier registers the user-visible notification sink.
func (c *Client) SetNotifier(fn Notifier) { c.notify = fn }

// OnUnauthorized registers the hook invoked whenever any authenticated call
// receives a 401. The session manager registers its teardown here; it is the
// single authoritative point of session teardown.
func (c *Client) OnUnauthorized(fn func()) { c.onUnauthorized = fn }

// SetEventLogger registers the structured event log for request failures.
func (c *Client) SetEventLogger(l *log.Logger) { c.events = l }

// Busy exposes the in-flight request counter for the busy indicator.
func (c *Client) Busy() *Busy { return &c.busy }

// mutating reports whether the verb changes server state and therefore needs
// the anti-forgery header.
func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// csrfToken reads the anti-forgery token from the cookie jar.
func (c *Client) csrfToken() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(u) {
		if cookie.Name == csrfCookie {
			return cookie.Value
		}
	}
	return ""
}

// say emits a user-visible notification if a sink is registered.
func (c *Client) say(message string, success bool) {
	if c.notify != nil {
		c.notify(message, success)
	}
}

// event appends a request_failed event to the event log, if one is set.
func (c *Client) event(method, endpoint string, status int, cause error) {
	if c.events == nil {
		return
	}
	e := log.LogEvent{
		Event:    log.EventRequestFailed,
		Method:   method,
		Endpoint: endpoint,
		Status:   status,
	}
	if cause != nil {
		e.Error = cause.Error()
	}
	_ = c.events.Append(e)
}

// do performs one API call. The busy counter is balanced on every exit path
// via the deferred Done. Response interpretation:
//
//   - 401: the unauthorized hook runs, one notification is emitted, and
//     ErrUnauthorized is returned so callers can treat it as "no data".
//   - 204: returned status with the result untouched.
//   - other non-2xx: *Error carrying the message from the body.
//   - transport or decode failure: *NetworkError; the cause goes to the
//     event log, the user sees a generic retry prompt.
//
// contentType is empty for bodyless calls, "application/json" for JSON, or a
// multipart content type carrying the boundary. requireAuth attaches the
// credential header when a token is present.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, requireAuth bool, result any) (int, error) {
	c.busy.Add()
	defer c.busy.Done()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+endpoint, body)
	if err != nil {
		return 0, fmt.Errorf("api: building request: %w", err)
	}

	if requireAuth && c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Token "+tok)
		}
	}
	if mutating(method) {
		if csrf := c.csrfToken(); csrf != "" {
			req.Header.Set("X-CSRFToken", csrf)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.event(method, endpoint, 0, err)
		c.say("Request failed. Please check your connection and try again.", false)
		return 0, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		if c.events != nil {
			_ = c.events.Append(log.LogEvent{Event: log.EventSessionExpired, Method: method, Endpoint: endpoint})
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		c.say("Session expired. Please log in again.", false)
		return resp.StatusCode, ErrUnauthorized
	}

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.event(method, endpoint, resp.StatusCode, err)
		c.say("Request failed. Please check your connection and try again.", false)
		return resp.StatusCode, &NetworkError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: extractMessage(data, resp.StatusCode)}
		c.event(method, endpoint, resp.StatusCode, apiErr)
		c.say(apiErr.Message, false)
		return resp.StatusCode, apiErr
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			c.event(method, endpoint, resp.StatusCode, err)
			c.say("Request failed. Please check your connection and try again.", false)
			return resp.StatusCode, &NetworkError{Err: fmt.Errorf("decoding response: %w", err)}
		}
	}

	return resp.StatusCode, nil
}

// get is a convenience wrapper for authenticated or anonymous GETs.
func (c *Client) get(ctx context.Context, endpoint string, requireAuth bool, result any) error {
	_, err := c.do(ctx, http.MethodGet, endpoint, nil, "", requireAuth, result)
	return err
}

// postJSON marshals payload and POSTs it.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any, requireAuth bool, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("api: marshalling payload: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(body), "application/json", requireAuth, result)
	return err
}

// sendJSON marshals payload and sends it with the given mutating verb.
func (c *Client) sendJSON(ctx context.Context, method, endpoint string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("api: marshalling payload: %w", err)
	}
	_, err = c.do(ctx, method, endpoint, bytes.NewReader(body), "application/json", true, result)
	return err
}

// extractMessage pulls the human-readable message out of an error body.
func extractMessage(data []byte, status int) string {
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fmt.Sprintf("API error: %d", status)
}

// list decodes either a bare JSON array or a paginated envelope with a
// results field, matching both server pagination modes.
type list[T any] struct {
	Items []T
}

func (l *list[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &l.Items)
	}
	var env struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	l.Items = env.Results
	return nil
}
