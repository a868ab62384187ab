// Package auth contains the domain types for authentication and authorization.
package auth

import (
	"time"
)

// Role represents a user role for authorization purposes.
type Role string

const (
	// RoleAdmin has full access, including the admin dashboard and user management.
	RoleAdmin Role = "admin"
	// RoleAuthor can create and manage their own content.
	RoleAuthor Role = "author"
	// RoleReader has read access plus commenting.
	RoleReader Role = "reader"
)

// IsValid returns true if the role is a known valid role.
// Unknown role values must be treated as unauthorized for role-gated routes.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAuthor, RoleReader:
		return true
	default:
		return false
	}
}

// In reports whether the role is a member of the given set.
func (r Role) In(roles []Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// UserProfile is the authenticated user as reported by the server.
// It is owned by the session service once loaded; the gateway and the
// route guards only ever read it.
type UserProfile struct {
	// ID is the server-assigned user identifier.
	ID int64 `json:"id"`
	// Email is the login email address.
	Email string `json:"email"`
	// Name is the display name.
	Name string `json:"name"`
	// Role is the authorization tier.
	Role Role `json:"role"`
	// Avatar is a URL to the user's avatar image, may be empty.
	Avatar string `json:"avatar"`
	// Bio is the free-form profile text, may be empty.
	Bio string `json:"bio"`
	// JoinDate is when the account was created.
	JoinDate time.Time `json:"join_date"`
	// LastLogin is the most recent login time.
	LastLogin time.Time `json:"last_login"`
	// IsActive is false for deactivated accounts.
	IsActive bool `json:"is_active"`
}

// ProfileUpdate carries the fields of a partial profile update.
// Nil fields are left untouched by Merge.
type ProfileUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
	Bio    *string `json:"bio,omitempty"`
}

// Merge applies the non-nil fields of the update to a copy of the profile
// and returns the merged value. The receiver is not modified.
func (u *UserProfile) Merge(update ProfileUpdate) UserProfile {
	merged := *u
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Email != nil {
		merged.Email = *update.Email
	}
	if update.Avatar != nil {
		merged.Avatar = *update.Avatar
	}
	if update.Bio != nil {
		merged.Bio = *update.Bio
	}
	return merged
}
