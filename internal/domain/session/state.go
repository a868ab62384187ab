// Package session models the client's authentication phase as a small
// state machine. The session service drives it; route guards read it.
package session

import (
	"fmt"

	"github.com/quillpress/quillctl/internal/domain/auth"
)

// Phase is the client's current authentication phase.
// Exactly one phase is active at a time.
type Phase string

const (
	// PhaseIdle means the session has not been initialized yet.
	PhaseIdle Phase = "idle"
	// PhaseLoading means a profile fetch is in flight.
	PhaseLoading Phase = "loading"
	// PhaseAuthenticated means a user profile is loaded.
	PhaseAuthenticated Phase = "authenticated"
	// PhaseUnauthenticated means there is no active session.
	PhaseUnauthenticated Phase = "unauthenticated"
)

// Snapshot is an immutable view of the session state.
// User is non-nil iff Phase is PhaseAuthenticated.
type Snapshot struct {
	Phase Phase
	User  *auth.UserProfile
}

// Idle returns the initial snapshot.
func Idle() Snapshot {
	return Snapshot{Phase: PhaseIdle}
}

// Loading returns a snapshot for an in-flight profile fetch.
func Loading() Snapshot {
	return Snapshot{Phase: PhaseLoading}
}

// Authenticated returns a snapshot holding a copy of the given user.
func Authenticated(user auth.UserProfile) Snapshot {
	return Snapshot{Phase: PhaseAuthenticated, User: &user}
}

// Unauthenticated returns a snapshot with no active session.
func Unauthenticated() Snapshot {
	return Snapshot{Phase: PhaseUnauthenticated}
}

// IsAuthenticated reports whether a user is loaded.
func (s Snapshot) IsAuthenticated() bool {
	return s.Phase == PhaseAuthenticated
}

// Event is a state machine input.
type Event string

const (
	// EventInitStart begins session initialization (Idle -> Loading).
	EventInitStart Event = "init_start"
	// EventInitSkip resolves initialization without a stored token
	// (Idle -> Unauthenticated).
	EventInitSkip Event = "init_skip"
	// EventProfileLoaded resolves a profile fetch (Loading -> Authenticated).
	EventProfileLoaded Event = "profile_loaded"
	// EventProfileFailed resolves a failed profile fetch (Loading -> Unauthenticated).
	EventProfileFailed Event = "profile_failed"
	// EventLogin records a successful login or registration.
	EventLogin Event = "login"
	// EventUserUpdated replaces the user value while staying Authenticated.
	EventUserUpdated Event = "user_updated"
	// EventLogout terminates the session.
	EventLogout Event = "logout"
	// EventSessionExpired records a terminal refresh failure.
	EventSessionExpired Event = "session_expired"
	// EventReload re-enters Loading for an explicit session re-initialization.
	EventReload Event = "reload"
)

// Transition applies an event to the current snapshot and returns the next
// snapshot. The user argument is consulted only for EventProfileLoaded and
// EventLogin. An event that is not legal in the current phase returns an
// error and the snapshot unchanged; phases never change spontaneously.
func Transition(current Snapshot, event Event, user *auth.UserProfile) (Snapshot, error) {
	switch event {
	case EventInitStart:
		if current.Phase != PhaseIdle {
			return current, illegal(current.Phase, event)
		}
		return Loading(), nil

	case EventInitSkip:
		if current.Phase != PhaseIdle {
			return current, illegal(current.Phase, event)
		}
		return Unauthenticated(), nil

	case EventProfileLoaded:
		if current.Phase != PhaseLoading {
			return current, illegal(current.Phase, event)
		}
		if user == nil {
			return current, fmt.Errorf("session: %s requires a user", event)
		}
		return Authenticated(*user), nil

	case EventProfileFailed:
		if current.Phase != PhaseLoading {
			return current, illegal(current.Phase, event)
		}
		return Unauthenticated(), nil

	case EventLogin:
		if user == nil {
			return current, fmt.Errorf("session: %s requires a user", event)
		}
		return Authenticated(*user), nil

	case EventUserUpdated:
		if current.Phase != PhaseAuthenticated {
			return current, illegal(current.Phase, event)
		}
		if user == nil {
			return current, fmt.Errorf("session: %s requires a user", event)
		}
		return Authenticated(*user), nil

	case EventLogout, EventSessionExpired:
		return Unauthenticated(), nil

	case EventReload:
		if current.Phase != PhaseAuthenticated && current.Phase != PhaseUnauthenticated {
			return current, illegal(current.Phase, event)
		}
		return Loading(), nil

	default:
		return current, fmt.Errorf("session: unknown event %q", event)
	}
}

func illegal(phase Phase, event Event) error {
	return fmt.Errorf("session: event %q not legal in phase %q", event, phase)
}
