package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the server rejects the session credential.
// The client's unauthorized hook has already run by the time a caller sees it;
// callers treat it as "no data" rather than a failure to report.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a non-2xx response with a structured body. The message is
// extracted from the body's detail/error field and is safe to show the user.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// NetworkError wraps a transport failure or a non-JSON response. The
// underlying cause goes to the event log, not the user.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api: network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is raised before any request is dispatched, for input the
// client can reject on its own (missing fields, bad uploads).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
