package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Subscriber is a newsletter subscription.
type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
	IsActive     bool      `json:"is_active"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe adds an email to the newsletter. Works without a session.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/subscribers/", nil, subscribeRequest{Email: email}, nil)
}

// Subscribers lists newsletter subscriptions (admin operation).
func (c *Client) Subscribers(ctx context.Context) ([]Subscriber, error) {
	var subscribers []Subscriber
	if err := c.do(ctx, http.MethodGet, "/api/subscribers/", nil, nil, &subscribers); err != nil {
		return nil, err
	}
	return subscribers, nil
}

type subscriberStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// SetSubscriberActive pauses or resumes a subscription (admin operation).
func (c *Client) SetSubscriberActive(ctx context.Context, id string, active bool) (*Subscriber, error) {
	var subscriber Subscriber
	path := fmt.Sprintf("/api/subscribers/%s/", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, nil, subscriberStatusRequest{IsActive: active}, &subscriber); err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// DeleteSubscriber removes a subscription (admin operation).
func (c *Client) DeleteSubscriber(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/subscribers/%s/", url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
