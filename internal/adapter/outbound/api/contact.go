package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ContactMessage is a message received through the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Replied   bool      `json:"replied"`
}

// ContactInput is the contact form payload. Newsletter opts the sender into
// the newsletter alongside the message.
type ContactInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Newsletter bool   `json:"newsletter,omitempty"`
}

// SubmitContact sends a contact form message. Works with or without a
// session.
func (c *Client) SubmitContact(ctx context.Context, input ContactInput) error {
	return c.do(ctx, http.MethodPost, "/api/contact/submit/", nil, input, nil)
}

// ContactMessages lists received contact messages (admin operation).
func (c *Client) ContactMessages(ctx context.Context) ([]ContactMessage, error) {
	var messages []ContactMessage
	if err := c.do(ctx, http.MethodGet, "/api/contact/", nil, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

type contactReplyRequest struct {
	Message string `json:"message"`
}

// ReplyContact mails a reply to a contact message and marks it replied
// (admin operation).
func (c *Client) ReplyContact(ctx context.Context, id, message string) error {
	path := fmt.Sprintf("/api/contact/%s/reply/", url.PathEscape(id))
	return c.do(ctx, http.MethodPost, path, nil, contactReplyRequest{Message: message}, nil)
}

// DeleteContact removes a contact message (admin operation).
func (c *Client) DeleteContact(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/contact/%s/", url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
