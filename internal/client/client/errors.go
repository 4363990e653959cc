package client

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by Client, other than a cancelled
// context, matches exactly one of them with errors.Is.
var (
	// ErrValidation: the request was rejected as invalid (HTTP 4xx other than
	// 401/403/404), or failed a client-side check before being sent.
	ErrValidation = errors.New("validation error")
	// ErrAuth: credentials were rejected.
	ErrAuth = errors.New("authentication failed")
	// ErrNotFound: the identifier no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrServer: HTTP 5xx, or a response that could not be understood.
	ErrServer = errors.New("server error")
	// ErrNetwork: no response was received.
	ErrNetwork = errors.New("network error")
)

// APIError describes a failed call. Kind is one of the class sentinels above
// and is what errors.Is matches against.
type APIError struct {
	Op      string
	Status  int
	Message string
	Kind    error
	Err     error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %s", e.Op, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// FetchError wraps any failure of ListItems so callers can tell a failed
// load apart from other failures and decide on their fallback.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch items: " + e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }

// ServerMessage returns the human-readable message the service attached to
// a failed response, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Message
	}
	return ""
}

// StatusCode returns the HTTP status of a failed response, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
