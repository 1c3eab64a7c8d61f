package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sentinellock/sentinel-web/config"
	"github.com/sentinellock/sentinel-web/internal/adapters/notifier"
	"github.com/sentinellock/sentinel-web/internal/bootstrap"
)

var (
	errAuthUnavailable = errors.New("authentication is not configured: set BACKEND_URL and BACKEND_ANON_KEY or AUTH_MODE=dev")
	errNotSignedIn     = errors.New("not signed in: run sentinel-admin login")
	errNotAdmin        = errors.New("admin role required")
)

// cliRuntime is the per-invocation object graph: one local store, one session
// authority and the services built on them.
type cliRuntime struct {
	Services bootstrap.ServiceContainer

	closers []func() error
}

func (r *cliRuntime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openRuntime opens the local store and builds the CLI services. The session always
// lives in the SQLite file; the pending queue follows PENDING_STORE.
func openRuntime(cmdCtx *commandContext) (*cliRuntime, error) {
	ctx := cmdCtx.Ctx
	cfg := &cmdCtx.Config
	rt := &cliRuntime{}

	local, err := bootstrap.OpenSQLiteStore(ctx, cfg.LocalStore.Path)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, local.Close)

	pending := local.Store
	if cfg.LocalStore.PendingStore != config.PendingStoreSQLite {
		h, err := bootstrap.OpenLocalStore(ctx, cfg, cmdCtx.Logger)
		if err != nil {
			return nil, closeOnError(rt, err)
		}
		rt.closers = append(rt.closers, h.Close)
		pending = h.Store
	}

	db, err := maybeConnectDB(ctx, cmdCtx)
	if err != nil {
		return nil, closeOnError(rt, err)
	}
	if db != nil {
		rt.closers = append(rt.closers, db.Close)
	}

	adapters, err := bootstrap.BuildAdapters(bootstrap.AdapterConfig{
		Config:  cfg,
		Runtime: bootstrap.RuntimeCLI,
		DB:      db,
		Store:   local.Store,
		Logger:  cmdCtx.Logger,
	})
	if err != nil {
		return nil, closeOnError(rt, err)
	}

	svcs, err := bootstrap.BuildServices(bootstrap.ServicesConfig{
		Config:       cfg,
		Adapters:     adapters,
		PendingStore: pending,
		Notifier:     notifier.NewWriter(cmdCtx.Out, cmdCtx.ErrOut),
		Logger:       cmdCtx.Logger,
	})
	if err != nil {
		return nil, closeOnError(rt, err)
	}
	rt.Services = svcs
	if svcs.Session != nil {
		rt.closers = append(rt.closers, func() error { svcs.Session.Close(); return nil })
	}
	return rt, nil
}

func closeOnError(rt *cliRuntime, err error) error {
	if cerr := rt.Close(); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

func maybeConnectDB(ctx context.Context, cmdCtx *commandContext) (*sql.DB, error) {
	if !cmdCtx.Config.Postgres.Enabled {
		return nil, nil
	}
	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cmdCtx.Config.Postgres, Logger: cmdCtx.Logger})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return db, nil
}

// withRuntime opens a runtime for the duration of fn.
func withRuntime(cmdCtx *commandContext, fn func(rt *cliRuntime) error) error {
	rt, err := openRuntime(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil {
			cmdCtx.Logger.Warn("close runtime failed", "error", cerr)
		}
	}()
	return fn(rt)
}

// requireAdmin restores the persisted session and checks the admin role. This
// only gates the CLI; the backend still enforces access on every call.
func requireAdmin(ctx context.Context, rt *cliRuntime) error {
	session := rt.Services.Session
	if session == nil {
		return errAuthUnavailable
	}
	if err := session.RestoreSession(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	id := session.Identity()
	if id == nil {
		return errNotSignedIn
	}
	if !session.CheckAdminRole(ctx, id.ID) {
		return errNotAdmin
	}
	return nil
}
