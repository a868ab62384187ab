package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/quillpress/quillctl/internal/domain/auth"
)

// userPage is the server's paginated user listing.
type userPage struct {
	Results []auth.UserProfile `json:"results"`
}

// Users lists all user accounts (admin operation).
func (c *Client) Users(ctx context.Context) ([]auth.UserProfile, error) {
	var page userPage
	if err := c.do(ctx, http.MethodGet, "/api/users/", nil, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// UserUpdate is a partial admin update of another user's account.
type UserUpdate struct {
	Role     *auth.Role `json:"role,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}

// UpdateUser patches another user's role or active flag (admin operation).
func (c *Client) UpdateUser(ctx context.Context, userID string, update UserUpdate) (*auth.UserProfile, error) {
	if update.Role != nil && !update.Role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", *update.Role)
	}
	var user auth.UserProfile
	path := fmt.Sprintf("/api/users/%s/", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodPatch, path, nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserInput is the payload for an admin-created account.
type CreateUserInput struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

// CreateUser creates an account with an explicit role (admin operation).
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (*auth.UserProfile, error) {
	if !input.Role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", input.Role)
	}
	var user auth.UserProfile
	if err := c.do(ctx, http.MethodPost, "/api/users/create/", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account (admin operation).
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	path := fmt.Sprintf("/api/users/%s/", url.PathEscape(userID))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
