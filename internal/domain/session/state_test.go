package session

import (
	"testing"

	"github.com/quillpress/quillctl/internal/domain/auth"
)

func testUser() *auth.UserProfile {
	return &auth.UserProfile{ID: 1, Email: "a@b.com", Name: "Ada", Role: auth.RoleReader}
}

func TestTransition_InitFlow(t *testing.T) {
	t.Parallel()

	snap := Idle()

	snap, err := Transition(snap, EventInitStart, nil)
	if err != nil {
		t.Fatalf("Transition(InitStart) error: %v", err)
	}
	if snap.Phase != PhaseLoading {
		t.Errorf("expected loading, got %s", snap.Phase)
	}

	snap, err = Transition(snap, EventProfileLoaded, testUser())
	if err != nil {
		t.Fatalf("Transition(ProfileLoaded) error: %v", err)
	}
	if snap.Phase != PhaseAuthenticated {
		t.Errorf("expected authenticated, got %s", snap.Phase)
	}
	if snap.User == nil || snap.User.Email != "a@b.com" {
		t.Errorf("expected user to be set, got %+v", snap.User)
	}
}

func TestTransition_InitSkip(t *testing.T) {
	t.Parallel()

	snap, err := Transition(Idle(), EventInitSkip, nil)
	if err != nil {
		t.Fatalf("Transition(InitSkip) error: %v", err)
	}
	if snap.Phase != PhaseUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", snap.Phase)
	}
}

func TestTransition_ProfileFailed(t *testing.T) {
	t.Parallel()

	snap, err := Transition(Loading(), EventProfileFailed, nil)
	if err != nil {
		t.Fatalf("Transition(ProfileFailed) error: %v", err)
	}
	if snap.Phase != PhaseUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", snap.Phase)
	}
	if snap.User != nil {
		t.Errorf("expected no user, got %+v", snap.User)
	}
}

func TestTransition_LoginFromAnyPhase(t *testing.T) {
	t.Parallel()

	for _, from := range []Snapshot{Idle(), Loading(), Unauthenticated(), Authenticated(*testUser())} {
		snap, err := Transition(from, EventLogin, testUser())
		if err != nil {
			t.Errorf("Transition(Login) from %s error: %v", from.Phase, err)
			continue
		}
		if snap.Phase != PhaseAuthenticated || snap.User == nil {
			t.Errorf("Login from %s: got %+v", from.Phase, snap)
		}
	}
}

func TestTransition_LoginRequiresUser(t *testing.T) {
	t.Parallel()

	snap, err := Transition(Unauthenticated(), EventLogin, nil)
	if err == nil {
		t.Fatal("expected error for Login without a user")
	}
	if snap.Phase != PhaseUnauthenticated {
		t.Errorf("snapshot must be unchanged on error, got %s", snap.Phase)
	}
}

func TestTransition_UserUpdated(t *testing.T) {
	t.Parallel()

	updated := testUser()
	updated.Name = "Ada Lovelace"

	snap, err := Transition(Authenticated(*testUser()), EventUserUpdated, updated)
	if err != nil {
		t.Fatalf("Transition(UserUpdated) error: %v", err)
	}
	if snap.User.Name != "Ada Lovelace" {
		t.Errorf("expected updated name, got %q", snap.User.Name)
	}

	// UserUpdated is only legal while authenticated.
	if _, err := Transition(Unauthenticated(), EventUserUpdated, updated); err == nil {
		t.Error("expected error for UserUpdated while unauthenticated")
	}
}

func TestTransition_LogoutAndExpiryFromAnyPhase(t *testing.T) {
	t.Parallel()

	for _, event := range []Event{EventLogout, EventSessionExpired} {
		for _, from := range []Snapshot{Idle(), Loading(), Unauthenticated(), Authenticated(*testUser())} {
			snap, err := Transition(from, event, nil)
			if err != nil {
				t.Errorf("Transition(%s) from %s error: %v", event, from.Phase, err)
				continue
			}
			if snap.Phase != PhaseUnauthenticated || snap.User != nil {
				t.Errorf("%s from %s: got %+v", event, from.Phase, snap)
			}
		}
	}
}

func TestTransition_Reload(t *testing.T) {
	t.Parallel()

	for _, from := range []Snapshot{Authenticated(*testUser()), Unauthenticated()} {
		snap, err := Transition(from, EventReload, nil)
		if err != nil {
			t.Errorf("Transition(Reload) from %s error: %v", from.Phase, err)
			continue
		}
		if snap.Phase != PhaseLoading {
			t.Errorf("Reload from %s: expected loading, got %s", from.Phase, snap.Phase)
		}
	}

	// Reload is not legal before initialization.
	if _, err := Transition(Idle(), EventReload, nil); err == nil {
		t.Error("expected error for Reload while idle")
	}
}

func TestTransition_IllegalEventsLeaveSnapshotUnchanged(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		from  Snapshot
		event Event
	}{
		{"init start while loading", Loading(), EventInitStart},
		{"init start while authenticated", Authenticated(*testUser()), EventInitStart},
		{"init skip while unauthenticated", Unauthenticated(), EventInitSkip},
		{"profile loaded while idle", Idle(), EventProfileLoaded},
		{"profile failed while authenticated", Authenticated(*testUser()), EventProfileFailed},
		{"unknown event", Idle(), Event("bogus")},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			snap, err := Transition(tc.from, tc.event, testUser())
			if err == nil {
				t.Fatal("expected error")
			}
			if snap.Phase != tc.from.Phase {
				t.Errorf("snapshot changed on illegal event: %s -> %s", tc.from.Phase, snap.Phase)
			}
		})
	}
}

func TestAuthenticated_CopiesUser(t *testing.T) {
	t.Parallel()

	user := testUser()
	snap := Authenticated(*user)
	user.Name = "mutated"

	if snap.User.Name != "Ada" {
		t.Errorf("snapshot user aliased the caller's value: %q", snap.User.Name)
	}
}
