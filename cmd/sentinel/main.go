package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sentinellock/sentinel-web/config"
	"github.com/sentinellock/sentinel-web/internal/adapters/notifier"
	"github.com/sentinellock/sentinel-web/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		stop()
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logStartupInfo(ctx, logger, &cfg)

	db, err := maybeConnectDB(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}()
	}

	pending, err := bootstrap.OpenLocalStore(ctx, &cfg, logger)
	if err != nil {
		return fmt.Errorf("open pending store: %w", err)
	}
	defer func() {
		if cerr := pending.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close pending store failed", "error", cerr)
		}
	}()

	metrics, err := bootstrap.InitMetrics(cfg.Observability.Metrics, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := metrics.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics failed", "error", cerr)
		}
	}()

	adapters, err := bootstrap.BuildAdapters(bootstrap.AdapterConfig{
		Config:  &cfg,
		Runtime: bootstrap.RuntimeServer,
		DB:      db,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	services, err := bootstrap.BuildServices(bootstrap.ServicesConfig{
		Config:       &cfg,
		Adapters:     adapters,
		PendingStore: pending.Store,
		Notifier:     notifier.NewLog(logger),
		Metrics:      metrics,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.RunHTTPServer(ctx, &bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

// maybeConnectDB connects to Postgres when DB_ENABLED is set and applies
// migrations when asked to.
func maybeConnectDB(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*sql.DB, error) {
	if !cfg.Postgres.Enabled {
		logger.InfoContext(ctx, "direct database access disabled; using backend REST API")
		return nil, nil
	}
	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if !cfg.Postgres.RunMigrationsOnStart {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		return db, nil
	}
	if _, err := bootstrap.RunMigrations(ctx, db, logger); err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database after migration failure", "error", cerr)
		}
		return nil, err
	}
	return db, nil
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting sentinel service",
		"addr", cfg.HTTP.Addr,
		"auth_mode", string(cfg.Auth.Mode),
		"backend_configured", cfg.Backend.Configured(),
		"db_enabled", cfg.Postgres.Enabled,
		"pending_store", string(cfg.LocalStore.PendingStore),
		"strategies", cfg.Submission.Strategies,
	)
}
