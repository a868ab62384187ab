// Package service contains the orchestration layer between the CLI, the
// API gateway, and the domain.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/quillpress/quillctl/internal/adapter/outbound/api"
	"github.com/quillpress/quillctl/internal/domain/auth"
	"github.com/quillpress/quillctl/internal/domain/credential"
	"github.com/quillpress/quillctl/internal/domain/session"
)

// AuthAPI is the slice of the gateway the session service depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*api.AuthResponse, error)
	Profile(ctx context.Context) (*auth.UserProfile, error)
	SetSessionExpiredHandler(func())
	InvalidateCache()
}

// AuthError is the failure half of an auth result: an overall message plus
// optional field-level validation messages for inline rendering.
type AuthError struct {
	Message string
	Fields  map[string][]string
}

// AuthResult is the discriminated result of Login and Register. Failures
// are values, never returned as Go errors, so calling forms can render
// them without recovering from anything.
type AuthResult struct {
	OK   bool
	User *auth.UserProfile
	Err  *AuthError
}

// SessionService is the session state machine exposed to the rest of the
// application: current user, authentication phase, and the login, register,
// logout, and update-user operations.
type SessionService struct {
	client   AuthAPI
	creds    credential.Store
	logger   *slog.Logger
	validate *validator.Validate

	mu        sync.Mutex
	snap      session.Snapshot
	listeners []func(session.Snapshot)
}

// NewSessionService creates a session service in the Idle phase. Call Init
// once at startup to resolve the stored session.
func NewSessionService(client AuthAPI, creds credential.Store, logger *slog.Logger) *SessionService {
	s := &SessionService{
		client:   client,
		creds:    creds,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		snap:     session.Idle(),
	}
	// A terminal refresh failure anywhere in the gateway ends the session.
	client.SetSessionExpiredHandler(func() {
		s.apply(session.EventSessionExpired, nil)
	})
	return s
}

// Snapshot returns the current session state.
func (s *SessionService) Snapshot() session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// OnChange registers a listener invoked after every state transition with
// the new snapshot. Listeners are called outside the service lock.
func (s *SessionService) OnChange(fn func(session.Snapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// apply runs a transition and notifies listeners. Illegal transitions are
// logged and ignored; the phase never changes on an illegal event.
func (s *SessionService) apply(event session.Event, user *auth.UserProfile) {
	s.mu.Lock()
	next, err := session.Transition(s.snap, event, user)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug("ignored session transition", "event", event, "error", err)
		return
	}
	s.snap = next
	listeners := make([]func(session.Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// Init resolves the stored session. With no stored access token it settles
// Unauthenticated without a network call. Otherwise it enters Loading and
// fetches the profile through the gateway; the gateway silently refreshes
// an expired access token along the way. Any failure clears the store and
// settles Unauthenticated.
//
// Init may be called again later to explicitly re-resolve the session; it
// must not be called concurrently with itself.
func (s *SessionService) Init(ctx context.Context) session.Snapshot {
	pair, err := s.creds.Get()
	if err != nil || pair.Access == "" {
		if s.Snapshot().Phase == session.PhaseIdle {
			s.apply(session.EventInitSkip, nil)
		} else {
			s.apply(session.EventSessionExpired, nil)
		}
		return s.Snapshot()
	}

	if s.Snapshot().Phase == session.PhaseIdle {
		s.apply(session.EventInitStart, nil)
	} else {
		s.apply(session.EventReload, nil)
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		s.logger.Info("failed to load session user", "error", err)
		if clearErr := s.creds.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear credentials", "error", clearErr)
		}
		s.apply(session.EventProfileFailed, nil)
		return s.Snapshot()
	}

	s.apply(session.EventProfileLoaded, user)
	return s.Snapshot()
}

// Login authenticates with email and password. On success the credential
// pair is stored and the session becomes Authenticated. On failure the
// session state and the credential store are left untouched.
func (s *SessionService) Login(ctx context.Context, email, password string) AuthResult {
	if authErr := s.validateLogin(email, password); authErr != nil {
		return AuthResult{Err: authErr}
	}

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return AuthResult{Err: toAuthError(err, "Login failed")}
	}

	s.apply(session.EventLogin, &resp.User)
	s.logger.Info("logged in", "user_id", resp.User.ID, "role", resp.User.Role)
	return AuthResult{OK: true, User: &resp.User}
}

// Register creates an account and authenticates immediately; same contract
// and error shape as Login.
func (s *SessionService) Register(ctx context.Context, name, email, password string) AuthResult {
	if authErr := s.validateRegister(name, email, password); authErr != nil {
		return AuthResult{Err: authErr}
	}

	resp, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return AuthResult{Err: toAuthError(err, "Registration failed")}
	}

	s.apply(session.EventLogin, &resp.User)
	s.logger.Info("registered", "user_id", resp.User.ID)
	return AuthResult{OK: true, User: &resp.User}
}

// Logout clears the credential store and settles Unauthenticated
// synchronously. No server round-trip is needed for the transition to be
// complete.
func (s *SessionService) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("failed to clear credentials on logout", "error", err)
	}
	s.client.InvalidateCache()
	s.apply(session.EventLogout, nil)
	s.logger.Info("logged out")
}

// UpdateUser merges the given partial fields into the current user and
// stays Authenticated with the merged value. It is a no-op when not
// authenticated, and performs no network call: the caller is expected to
// have persisted the change server-side already.
func (s *SessionService) UpdateUser(update auth.ProfileUpdate) {
	s.mu.Lock()
	if s.snap.Phase != session.PhaseAuthenticated {
		s.mu.Unlock()
		return
	}
	merged := s.snap.User.Merge(update)
	s.mu.Unlock()

	s.apply(session.EventUserUpdated, &merged)
}

// toAuthError folds any gateway error into the discriminated result shape.
// Server field errors keep their field map; everything else, including
// transport failures, becomes a plain message.
func toAuthError(err error, fallback string) *AuthError {
	var validationErr *api.ValidationError
	if errors.As(err, &validationErr) {
		msg := validationErr.Message
		if msg == "" {
			msg = fallback
		}
		return &AuthError{Message: msg, Fields: validationErr.Fields}
	}

	var authFailed *api.AuthFailedError
	if errors.As(err, &authFailed) {
		return &AuthError{Message: authFailed.Message}
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &AuthError{Message: apiErr.Error()}
	}

	return &AuthError{Message: "An unexpected error occurred"}
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerInput struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// validateLogin pre-flights login input client-side, producing the same
// field -> messages shape the server uses so forms render both the same way.
func (s *SessionService) validateLogin(email, password string) *AuthError {
	err := s.validate.Struct(loginInput{Email: email, Password: password})
	return fieldErrors(err)
}

func (s *SessionService) validateRegister(name, email, password string) *AuthError {
	err := s.validate.Struct(registerInput{Name: name, Email: email, Password: password})
	return fieldErrors(err)
}

func fieldErrors(err error) *AuthError {
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return &AuthError{Message: "Invalid input"}
	}

	fields := make(map[string][]string, len(invalid))
	for _, fe := range invalid {
		name := fieldName(fe.Field())
		fields[name] = append(fields[name], fieldMessage(fe))
	}
	return &AuthError{Message: "Please correct the highlighted fields", Fields: fields}
}

func fieldName(structField string) string {
	switch structField {
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "Name":
		return "name"
	default:
		return structField
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "This value is too short."
	default:
		return "This value is invalid."
	}
}
