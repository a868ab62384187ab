package api

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrSessionExpired is returned when the refresh protocol itself failed;
	// the session is terminally over and the credential store is cleared.
	ErrSessionExpired = errors.New("session expired")

	// ErrUnauthorized is returned when a request still gets 401 after a
	// successful refresh and one retry.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoRefreshToken is the refresh failure cause when no refresh token
	// is stored.
	ErrNoRefreshToken = errors.New("no refresh token available")
)

// APIError is returned for non-2xx responses that are not authorization or
// validation failures. Transport-level failures are not wrapped in APIError;
// they pass through from the underlying http.Client unchanged.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Detail is the server's human-readable message, if any.
	Detail string
	// RequestID is the X-Request-ID the failing request was sent with.
	RequestID string
}

// Error returns a human-readable description of the server error.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// ValidationError is returned when the server rejects submitted fields.
// It carries the overall message plus a field name -> messages map so forms
// can render inline errors. It is surfaced as a value, never thrown across
// the session boundary.
type ValidationError struct {
	// Message is the overall human-readable message.
	Message string
	// Fields maps a field name to its validation messages.
	Fields map[string][]string
}

// Error returns the overall message plus the offending field names.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	return fmt.Sprintf("%s (fields: %s)", e.Message, strings.Join(names, ", "))
}

// AuthFailedError is returned when login or registration is rejected for
// bad credentials. It is never retried and never triggers a refresh.
type AuthFailedError struct {
	// Message is the server's rejection message.
	Message string
}

// Error returns the rejection message.
func (e *AuthFailedError) Error() string {
	return e.Message
}

// UnauthorizedError is the final authorization failure for a request that
// was retried once after a refresh and still received 401.
type UnauthorizedError struct {
	// Detail is the server's message, if any.
	Detail string
	// RequestID is the X-Request-ID the failing request was sent with.
	RequestID string
}

// Error returns a human-readable description of the authorization failure.
func (e *UnauthorizedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("unauthorized: %s", e.Detail)
	}
	return "unauthorized"
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrUnauthorized).
func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// SessionExpiredError is returned to every caller that was waiting on a
// refresh that failed. The credential store is already cleared when a
// caller sees this error.
type SessionExpiredError struct {
	// Cause is the refresh failure.
	Cause error
}

// Error returns a human-readable description of the expiry.
func (e *SessionExpiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session expired: %v", e.Cause)
	}
	return "session expired"
}

// Unwrap returns the refresh failure cause.
func (e *SessionExpiredError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrSessionExpired).
func (e *SessionExpiredError) Is(target error) bool {
	return target == ErrSessionExpired
}
