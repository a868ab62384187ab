package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/quillpress/quillctl/internal/domain/credential"
)

// refreshCall is one in-flight refresh operation. Everyone who hits a 401
// while it is pending waits on done and then reads token/err; both fields
// are written exactly once, before done is closed.
type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// awaitRefresh returns a fresh access token, coalescing concurrent callers
// into a single refresh request. If a refresh is already in flight the
// caller joins it; otherwise the caller starts one. N concurrent 401s
// therefore produce exactly one refresh call.
//
// The refresh itself runs detached from any caller's context so that an
// abandoned caller cannot abort a refresh other callers depend on; each
// waiter still honors its own context while waiting.
func (c *Client) awaitRefresh(ctx context.Context) (string, error) {
	c.refreshMu.Lock()
	call := c.refreshCall
	if call == nil {
		call = &refreshCall{done: make(chan struct{})}
		c.refreshCall = call
		go c.runRefresh(call)
	}
	c.refreshMu.Unlock()

	select {
	case <-call.done:
		return call.token, call.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// refreshRequest and refreshResponse are the refresh endpoint wire shapes.
type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// runRefresh performs the refresh protocol and settles the call.
//
// On success the new credential pair is stored before any waiter wakes, so
// every retried request reads the new token. On failure the store is
// cleared, every waiter gets a SessionExpiredError, and the session-expired
// callback fires.
func (c *Client) runRefresh(call *refreshCall) {
	call.token, call.err = c.refreshOnce()

	if call.err != nil {
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.logger.Warn("failed to clear credentials after refresh failure", "error", clearErr)
		}
		c.metrics.refresh("failure")
		c.logger.Info("token refresh failed, session expired", "error", call.err)
	} else {
		c.metrics.refresh("success")
		c.logger.Debug("access token refreshed")
	}

	c.refreshMu.Lock()
	c.refreshCall = nil
	c.refreshMu.Unlock()
	close(call.done)

	if call.err != nil {
		c.notifySessionExpired()
	}
}

// refreshOnce exchanges the stored refresh token for a new access token and
// stores the replacement pair. Any failure, including a transport failure
// during the refresh call, is terminal for the session.
func (c *Client) refreshOnce() (string, error) {
	pair, err := c.creds.Get()
	if err != nil || pair.Refresh == "" {
		if err == nil || errors.Is(err, credential.ErrNoCredentials) {
			err = ErrNoRefreshToken
		}
		return "", &SessionExpiredError{Cause: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.refreshTimeout)
	defer cancel()

	requestID := uuid.New().String()
	raw, err := c.doOnce(ctx, http.MethodPost, pathRefresh, nil,
		refreshRequest{Refresh: pair.Refresh}, "", requestID, true)
	if err != nil {
		return "", &SessionExpiredError{Cause: err}
	}

	var resp refreshResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Access == "" {
		if err == nil {
			err = errors.New("refresh response missing access token")
		}
		return "", &SessionExpiredError{Cause: err}
	}

	// Replace the pair atomically: new access token, same refresh token.
	if err := c.creds.Set(credential.Pair{Access: resp.Access, Refresh: pair.Refresh}); err != nil {
		return "", &SessionExpiredError{Cause: err}
	}

	return resp.Access, nil
}
