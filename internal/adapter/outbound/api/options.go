package api

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithBaseURL sets the QuillPress server base URL.
// If not set, defaults to the QUILLCTL_SERVER_URL environment variable.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets the HTTP request timeout.
// If not set, defaults to 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRefreshTimeout sets the timeout for the detached refresh call.
// If not set, defaults to 10 seconds.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.refreshTimeout = d
	}
}

// WithHTTPClient sets a custom http.Client for making requests.
// This is useful for testing, proxying, or custom transport configurations.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics attaches a Metrics set to the client. Without it the client
// records nothing.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithCacheTTL enables the GET response cache with the given entry TTL.
// A zero or negative TTL leaves the cache disabled.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.cache = newResponseCache(ttl)
		}
	}
}
