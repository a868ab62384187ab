package guard

import (
	"testing"

	"github.com/quillpress/quillctl/internal/domain/auth"
	"github.com/quillpress/quillctl/internal/domain/session"
)

func authedAs(role auth.Role) session.Snapshot {
	return session.Authenticated(auth.UserProfile{ID: 1, Email: "a@b.com", Name: "Ada", Role: role})
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		snap      session.Snapshot
		attempted Route
		roles     []auth.Role
		want      Decision
	}{
		{
			name:      "defers while idle",
			snap:      session.Idle(),
			attempted: RouteProfile,
			want:      Decision{Action: ActionDefer},
		},
		{
			name:      "defers while loading",
			snap:      session.Loading(),
			attempted: RouteProfile,
			want:      Decision{Action: ActionDefer},
		},
		{
			name:      "redirects unauthenticated to login carrying the attempted route",
			snap:      session.Unauthenticated(),
			attempted: RouteAdmin,
			want:      Decision{Action: ActionRedirect, Target: RouteLogin, From: RouteAdmin},
		},
		{
			name:      "allows authenticated with no role requirement",
			snap:      authedAs(auth.RoleReader),
			attempted: RouteProfile,
			want:      Decision{Action: ActionAllow},
		},
		{
			name:      "allows matching role",
			snap:      authedAs(auth.RoleAdmin),
			attempted: RouteAdmin,
			roles:     []auth.Role{auth.RoleAdmin},
			want:      Decision{Action: ActionAllow},
		},
		{
			name:      "allows any of several roles",
			snap:      authedAs(auth.RoleAuthor),
			attempted: RouteHome,
			roles:     []auth.Role{auth.RoleAdmin, auth.RoleAuthor},
			want:      Decision{Action: ActionAllow},
		},
		{
			name:      "role mismatch redirects home, not to login",
			snap:      authedAs(auth.RoleReader),
			attempted: RouteAdmin,
			roles:     []auth.Role{auth.RoleAdmin},
			want:      Decision{Action: ActionRedirect, Target: RouteHome},
		},
		{
			name:      "unknown role is denied when roles are required",
			snap:      authedAs(auth.Role("superuser")),
			attempted: RouteAdmin,
			roles:     []auth.Role{auth.RoleAdmin},
			want:      Decision{Action: ActionRedirect, Target: RouteHome},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := RequireAuth(tc.snap, tc.attempted, tc.roles...)
			if got != tc.want {
				t.Errorf("RequireAuth() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRequirePublic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		snap     session.Snapshot
		intended Route
		want     Decision
	}{
		{
			name: "defers while idle",
			snap: session.Idle(),
			want: Decision{Action: ActionDefer},
		},
		{
			name: "defers while loading",
			snap: session.Loading(),
			want: Decision{Action: ActionDefer},
		},
		{
			name: "allows unauthenticated",
			snap: session.Unauthenticated(),
			want: Decision{Action: ActionAllow},
		},
		{
			name:     "authenticated returns to the intended destination",
			snap:     authedAs(auth.RoleReader),
			intended: RouteProfile,
			want:     Decision{Action: ActionRedirect, Target: RouteProfile},
		},
		{
			name: "authenticated reader defaults home",
			snap: authedAs(auth.RoleReader),
			want: Decision{Action: ActionRedirect, Target: RouteHome},
		},
		{
			name: "authenticated admin defaults to admin",
			snap: authedAs(auth.RoleAdmin),
			want: Decision{Action: ActionRedirect, Target: RouteAdmin},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := RequirePublic(tc.snap, tc.intended)
			if got != tc.want {
				t.Errorf("RequirePublic() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDecisionAllowed(t *testing.T) {
	t.Parallel()

	if !(Decision{Action: ActionAllow}).Allowed() {
		t.Error("allow decision must report Allowed")
	}
	if (Decision{Action: ActionRedirect, Target: RouteLogin}).Allowed() {
		t.Error("redirect decision must not report Allowed")
	}
}
