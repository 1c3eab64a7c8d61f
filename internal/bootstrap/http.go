package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sentinellock/sentinel-web/config"
	httpx "github.com/sentinellock/sentinel-web/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router from the service container.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Submissions:      cfg.Services.Submissions,
		Sitemap:          cfg.Services.Sitemap,
		Roles:            cfg.Services.Roles,
		Verifier:         cfg.Services.Verifier,
		RoleCheckTimeout: appCfg.Auth.RoleCheckTimeout,
		MaxBodyBytes:     appCfg.HTTP.MaxBodyBytes,
		Logger:           logger,
	}
	// Avoid storing a typed nil in the interface.
	if cfg.Services.Contacts != nil {
		services.Contacts = cfg.Services.Contacts
	}
	if appCfg.RateLimit.Enabled {
		services.RateLimit = &httpx.RateLimitOptions{
			RPS:        appCfg.RateLimit.RPS,
			Burst:      appCfg.RateLimit.Burst,
			TrustProxy: appCfg.RateLimit.TrustProxy,
		}
	}
	if services.Verifier == nil {
		logger.Warn("admin API disabled: no token verification configured")
	}

	return httpx.NewRouter(services)
}

// RunHTTPServer serves until ctx is cancelled, then shuts down gracefully.
func RunHTTPServer(ctx context.Context, cfg *HTTPServerConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpCfg := cfg.Config.HTTP

	addr := httpCfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           BuildHTTPHandler(cfg),
		ReadHeaderTimeout: httpCfg.ReadHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), httpCfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})
	return g.Wait()
}
