// Package guard provides the route admission decisions. Both guards are
// pure functions over a session snapshot; the hosting layer (CLI, UI) is
// responsible only for acting on the returned decision.
package guard

import (
	"github.com/quillpress/quillctl/internal/domain/auth"
	"github.com/quillpress/quillctl/internal/domain/session"
)

// Route is an application route path, not an external URL.
type Route string

// Well-known routes used as redirect destinations.
const (
	RouteHome     Route = "/"
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteAdmin    Route = "/admin"
	RouteProfile  Route = "/profile"
)

// Action is the kind of decision a guard produces.
type Action string

const (
	// ActionAllow admits the navigation.
	ActionAllow Action = "allow"
	// ActionDefer means the session is still loading; render nothing and
	// decide again once it settles.
	ActionDefer Action = "defer"
	// ActionRedirect denies the navigation and names a destination.
	ActionRedirect Action = "redirect"
)

// Decision is the result of a guard evaluation.
type Decision struct {
	Action Action
	// Target is the redirect destination. Set only for ActionRedirect.
	Target Route
	// From is the originally attempted route, carried on authentication
	// redirects so the login flow can return to it afterwards.
	From Route
}

// Allowed is shorthand for Action == ActionAllow.
func (d Decision) Allowed() bool {
	return d.Action == ActionAllow
}

// RequireAuth admits only authenticated users. If roles are given, the
// user's role must be one of them; a role mismatch (or an unknown role)
// redirects home rather than to login, since it is an authorization
// failure, not an authentication failure.
func RequireAuth(snap session.Snapshot, attempted Route, roles ...auth.Role) Decision {
	switch snap.Phase {
	case session.PhaseIdle, session.PhaseLoading:
		return Decision{Action: ActionDefer}
	case session.PhaseAuthenticated:
		if len(roles) > 0 {
			if !snap.User.Role.IsValid() || !snap.User.Role.In(roles) {
				return Decision{Action: ActionRedirect, Target: RouteHome}
			}
		}
		return Decision{Action: ActionAllow}
	default:
		return Decision{Action: ActionRedirect, Target: RouteLogin, From: attempted}
	}
}

// RequirePublic admits only unauthenticated users. An authenticated user is
// sent back to the intended destination recorded by an earlier RequireAuth
// redirect, or to a role-appropriate default when none was recorded.
func RequirePublic(snap session.Snapshot, intended Route) Decision {
	switch snap.Phase {
	case session.PhaseIdle, session.PhaseLoading:
		return Decision{Action: ActionDefer}
	case session.PhaseAuthenticated:
		target := intended
		if target == "" {
			target = defaultRoute(snap.User.Role)
		}
		return Decision{Action: ActionRedirect, Target: target}
	default:
		return Decision{Action: ActionAllow}
	}
}

// defaultRoute is where an already-authenticated user lands when no
// intended destination was recorded.
func defaultRoute(role auth.Role) Route {
	if role == auth.RoleAdmin {
		return RouteAdmin
	}
	return RouteHome
}
