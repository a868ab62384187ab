package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quillpress/quillctl/internal/adapter/outbound/api"
	"github.com/quillpress/quillctl/internal/adapter/outbound/credstore"
	"github.com/quillpress/quillctl/internal/config"
	"github.com/quillpress/quillctl/internal/domain/auth"
	"github.com/quillpress/quillctl/internal/domain/credential"
	"github.com/quillpress/quillctl/internal/domain/guard"
	"github.com/quillpress/quillctl/internal/service"
)

// app wires the configured credential store, gateway, and session service
// for one command invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	creds   credential.Store
	client  *api.Client
	session *service.SessionService

	closers []func() error
}

// newApp loads configuration and builds the component graph.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel)

	a := &app{cfg: cfg, logger: logger}

	switch cfg.Storage.Backend {
	case "sqlite":
		store, err := credstore.OpenSQLiteStore(cfg.Storage.Path, logger)
		if err != nil {
			return nil, err
		}
		a.creds = store
		a.closers = append(a.closers, store.Close)
	case "memory":
		a.creds = credstore.NewMemoryStore()
	default:
		a.creds = credstore.NewFileStore(cfg.Storage.Path, logger)
	}

	a.client = api.NewClient(a.creds,
		api.WithBaseURL(cfg.Server.URL),
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithRefreshTimeout(cfg.RefreshTimeout()),
		api.WithCacheTTL(cfg.CacheTTL()),
		api.WithLogger(logger),
		api.WithMetrics(api.NewMetrics(prometheus.NewRegistry())),
	)

	a.session = service.NewSessionService(a.client, a.creds, logger)

	return a, nil
}

// close releases any resources held by the store backends.
func (a *app) close() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// errNotLoggedIn and errForbidden translate guard redirects for a terminal.
var (
	errNotLoggedIn = errors.New("not logged in; run 'quillctl login' first")
	errForbidden   = errors.New("you do not have permission to do that")
)

// guardAuth initializes the session and applies the RequireAuth guard for
// the given route. It returns the authenticated user on Allow and a
// terminal-friendly error otherwise.
func (a *app) guardAuth(ctx context.Context, cmdRoute guard.Route, roles ...auth.Role) (*auth.UserProfile, error) {
	snap := a.session.Init(ctx)

	decision := guard.RequireAuth(snap, cmdRoute, roles...)
	switch decision.Action {
	case guard.ActionAllow:
		return snap.User, nil
	case guard.ActionRedirect:
		if decision.Target == guard.RouteLogin {
			return nil, errNotLoggedIn
		}
		return nil, errForbidden
	default:
		// Init has settled the session, so the guard cannot still be deferring.
		return nil, fmt.Errorf("session in unexpected phase %q", snap.Phase)
	}
}

// guardPublic initializes the session and applies the RequirePublic guard.
// It returns an error naming the signed-in user when a session is active.
func (a *app) guardPublic(ctx context.Context) error {
	snap := a.session.Init(ctx)

	decision := guard.RequirePublic(snap, "")
	if decision.Action == guard.ActionRedirect {
		return fmt.Errorf("already logged in as %s; run 'quillctl logout' first", snap.User.Email)
	}
	return nil
}
