// Package api is the HTTP gateway to the QuillPress server. Every outbound
// call goes through a single pipeline that attaches the bearer token,
// detects authorization failures, and drives the refresh protocol so that
// callers never see an expired access token unless the session itself is
// over.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quillpress/quillctl/internal/domain/credential"
)

// Endpoint paths. The auth endpoints are exempt from the refresh protocol:
// a 401 from them must fail visibly, never loop into a refresh.
const (
	pathLogin                = "/api/users/login/"
	pathRegister             = "/api/users/register/"
	pathRefresh              = "/api/users/refresh/"
	pathProfile              = "/api/users/profile/"
	pathChangePassword       = "/api/users/change-password/"
	pathRequestPasswordReset = "/api/users/request-password-reset/"
	pathResetPassword        = "/api/users/reset-password/"
)

// Client is the authenticated HTTP gateway.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	timeout        time.Duration
	refreshTimeout time.Duration
	creds          credential.Store
	logger         *slog.Logger
	metrics        *Metrics
	cache          *responseCache

	// onSessionExpired is invoked (at most once per failed refresh) after a
	// terminal refresh failure has cleared the credential store.
	expiredMu        sync.Mutex
	onSessionExpired func()

	// Single-flight refresh state. While refreshCall is non-nil a refresh
	// is in flight and every 401 joins it instead of starting another.
	refreshMu   sync.Mutex
	refreshCall *refreshCall
}

// NewClient creates a gateway client backed by the given credential store.
// It reads configuration from QUILLCTL_* environment variables by default;
// options override the defaults.
func NewClient(creds credential.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:        envOrDefault("QUILLCTL_SERVER_URL", "http://localhost:8000"),
		timeout:        parseDurationEnv("QUILLCTL_TIMEOUT", 10*time.Second),
		refreshTimeout: parseDurationEnv("QUILLCTL_REFRESH_TIMEOUT", 10*time.Second),
		creds:          creds,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// SetSessionExpiredHandler registers the callback fired after a terminal
// refresh failure. The session service uses it to transition to
// unauthenticated.
func (c *Client) SetSessionExpiredHandler(fn func()) {
	c.expiredMu.Lock()
	c.onSessionExpired = fn
	c.expiredMu.Unlock()
}

func (c *Client) notifySessionExpired() {
	c.expiredMu.Lock()
	fn := c.onSessionExpired
	c.expiredMu.Unlock()
	if fn != nil {
		fn()
	}
}

// InvalidateCache drops every cached GET response. Mutating calls do this
// automatically; the session service calls it on login and logout so a new
// session never sees the previous user's responses.
func (c *Client) InvalidateCache() {
	if c.cache != nil {
		c.cache.purge()
	}
}

// isAuthEndpoint reports whether the path is exempt from the refresh
// protocol.
func isAuthEndpoint(path string) bool {
	switch path {
	case pathLogin, pathRegister, pathRefresh, pathRequestPasswordReset, pathResetPassword:
		return true
	default:
		return false
	}
}

// do performs an API request through the full pipeline:
// cache lookup (GETs) -> bearer attach -> execute -> on 401 for a
// non-exempt request, single-flight refresh and one retry.
//
// Transport errors pass through unchanged; only a 401 status enters the
// refresh path.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	exempt := isAuthEndpoint(path)
	cacheable := c.cache != nil && method == http.MethodGet && !exempt

	if cacheable {
		if c.cache.get(method, path, query, result) {
			c.metrics.cacheHit()
			return nil
		}
		c.metrics.cacheMiss()
	}

	token := ""
	if !exempt {
		if pair, err := c.creds.Get(); err == nil {
			token = pair.Access
		}
	}

	requestID := uuid.New().String()
	raw, err := c.doOnce(ctx, method, path, query, body, token, requestID, exempt)

	if isUnauthorized(err) && !exempt {
		newToken, refreshErr := c.awaitRefresh(ctx)
		if refreshErr != nil {
			return refreshErr
		}
		// Retried once; a second 401 is final and must not refresh again.
		raw, err = c.doOnce(ctx, method, path, query, body, newToken, requestID, exempt)
		var unauth *unauthorizedStatus
		if errors.As(err, &unauth) {
			return &UnauthorizedError{Detail: unauth.detail, RequestID: requestID}
		}
	}
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	if cacheable {
		c.cache.put(method, path, query, raw)
	} else if c.cache != nil && method != http.MethodGet {
		// A mutation may invalidate anything previously read.
		c.cache.purge()
	}

	return nil
}

// unauthorizedStatus is the internal marker for a 401 response. It never
// escapes do(); callers see either silent recovery, SessionExpiredError,
// or UnauthorizedError.
type unauthorizedStatus struct {
	detail    string
	requestID string
}

func (e *unauthorizedStatus) Error() string {
	return fmt.Sprintf("unauthorized (request %s)", e.requestID)
}

func isUnauthorized(err error) bool {
	var unauth *unauthorizedStatus
	return errors.As(err, &unauth)
}

// doOnce performs a single HTTP exchange and maps the response status to
// the error taxonomy. It never triggers a refresh.
func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body any, token, requestID string, authEndpoint bool) ([]byte, error) {
	u := strings.TrimRight(c.baseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("X-Request-ID", requestID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Transport failure: pass through unchanged, it is not an
		// authorization failure.
		c.metrics.request(method, "transport_error", time.Since(start))
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.metrics.request(method, fmt.Sprintf("%d", httpResp.StatusCode), time.Since(start))

	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		return respBody, nil
	}

	c.logger.Debug("request failed",
		"method", method,
		"path", path,
		"status", httpResp.StatusCode,
		"request_id", requestID,
	)
	return nil, decodeError(httpResp.StatusCode, respBody, requestID, authEndpoint)
}

// errorBody is the server's error payload shape.
type errorBody struct {
	Detail         string              `json:"detail"`
	Errors         map[string][]string `json:"errors"`
	NonFieldErrors []string            `json:"non_field_errors"`
}

// decodeError maps a non-2xx response to the error taxonomy.
func decodeError(status int, body []byte, requestID string, authEndpoint bool) error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Detail
	if message == "" && len(parsed.NonFieldErrors) > 0 {
		message = parsed.NonFieldErrors[0]
	}

	switch {
	case status == http.StatusUnauthorized && !authEndpoint:
		return &unauthorizedStatus{detail: message, requestID: requestID}

	case authEndpoint && (status == http.StatusUnauthorized || status == http.StatusForbidden):
		if message == "" {
			message = "authentication failed"
		}
		return &AuthFailedError{Message: message}

	case status == http.StatusBadRequest:
		if message == "" {
			message = "invalid request"
		}
		if len(parsed.Errors) > 0 {
			return &ValidationError{Message: message, Fields: parsed.Errors}
		}
		if authEndpoint {
			return &AuthFailedError{Message: message}
		}
		return &ValidationError{Message: message}

	default:
		if message == "" {
			message = strings.TrimSpace(string(body))
			if len(message) > 200 {
				message = message[:200]
			}
		}
		return &APIError{StatusCode: status, Detail: message, RequestID: requestID}
	}
}

// Helper functions for env var parsing.

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func parseDurationEnv(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return defaultVal
}
