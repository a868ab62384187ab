package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quillpress/quillctl/internal/domain/auth"
	"github.com/quillpress/quillctl/internal/domain/credential"
)

// AuthResponse is the login/register response: a fresh credential pair and
// the authenticated user.
type AuthResponse struct {
	Access  string           `json:"access"`
	Refresh string           `json:"refresh"`
	User    auth.UserProfile `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. On success the returned
// credential pair is stored before Login returns. The login endpoint is
// exempt from the refresh protocol: a rejection surfaces as
// *AuthFailedError or *ValidationError and is never retried.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, pathLogin, nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.storePair(resp); err != nil {
		return nil, err
	}
	c.InvalidateCache()
	return &resp, nil
}

// Register creates an account. Registration implies login: on success the
// credential pair is stored and the caller is authenticated. Same error
// contract as Login.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, pathRegister, nil, registerRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.storePair(resp); err != nil {
		return nil, err
	}
	c.InvalidateCache()
	return &resp, nil
}

func (c *Client) storePair(resp AuthResponse) error {
	if resp.Access == "" || resp.Refresh == "" {
		return fmt.Errorf("auth response missing tokens")
	}
	if err := c.creds.Set(credential.Pair{Access: resp.Access, Refresh: resp.Refresh}); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}

// Profile fetches the current user ("who am I").
func (c *Client) Profile(ctx context.Context) (*auth.UserProfile, error) {
	var user auth.UserProfile
	if err := c.do(ctx, http.MethodGet, pathProfile, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches the current user's profile server-side and returns
// the updated profile.
func (c *Client) UpdateProfile(ctx context.Context, update auth.ProfileUpdate) (*auth.UserProfile, error) {
	var user auth.UserProfile
	if err := c.do(ctx, http.MethodPatch, pathProfile, nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.do(ctx, http.MethodPost, pathChangePassword, nil,
		changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}, nil)
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset asks the server to mail a reset link. Exempt from
// the refresh protocol; works without a session.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, pathRequestPasswordReset, nil, passwordResetRequest{Email: email}, nil)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword completes a password reset with the mailed token. Exempt
// from the refresh protocol.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, http.MethodPost, pathResetPassword, nil,
		resetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
}
