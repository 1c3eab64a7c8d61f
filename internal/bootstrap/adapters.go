package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"github.com/sentinellock/sentinel-web/config"
	"github.com/sentinellock/sentinel-web/internal/adapters/authroles"
	"github.com/sentinellock/sentinel-web/internal/adapters/backendapi"
	"github.com/sentinellock/sentinel-web/internal/adapters/devauth"
	"github.com/sentinellock/sentinel-web/internal/adapters/gotrue"
	"github.com/sentinellock/sentinel-web/internal/adapters/localstore"
	"github.com/sentinellock/sentinel-web/internal/adapters/oidc"
	"github.com/sentinellock/sentinel-web/internal/adapters/postgrest"
	redisadapter "github.com/sentinellock/sentinel-web/internal/adapters/redis"
	"github.com/sentinellock/sentinel-web/internal/data"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// Runtime selects how adapters authenticate against the backend.
type Runtime int

const (
	// RuntimeServer uses the project keys and verifies caller tokens.
	RuntimeServer Runtime = iota
	// RuntimeCLI signs a user in and sends their access token on data calls.
	RuntimeCLI
)

// Adapters are the port implementations chosen from configuration. Nil fields
// mean the concern is unavailable with the current configuration.
type Adapters struct {
	Auth       ports.AuthBackend
	Roles      ports.RoleLookup
	RoleAdmin  ports.RoleAdmin
	Contacts   ports.ContactAdmin
	Posts      ports.BlogPostSource
	PostAdmin  ports.PostAdmin
	Plans      ports.ContentTable[model.PricingPlan, model.PricingPlanInput]
	Offerings  ports.ContentTable[model.ServiceOffering, model.ServiceOfferingInput]
	Reviews    ports.ContentTable[model.Testimonial, model.TestimonialInput]
	Settings   ports.SiteSettings
	Profiles   ports.ProfileSource
	Strategies []ports.PersistenceStrategy
	Verifier   ports.TokenVerifier
}

// AdapterConfig contains what BuildAdapters needs.
type AdapterConfig struct {
	Config  *config.AppConfig
	Runtime Runtime
	DB      *sql.DB          // Optional: direct Postgres access
	Store   ports.LocalStore // Required for RuntimeCLI: session persistence
	Logger  *slog.Logger
}

// BuildAdapters wires backend, database and dev-mode adapters. Direct Postgres
// repositories win over the REST data API when both are available.
func BuildAdapters(cfg AdapterConfig) (*Adapters, error) {
	if cfg.Config == nil {
		return nil, errors.New("config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := cfg.Config
	out := &Adapters{}

	var rest *postgrest.Store
	if app.Backend.Configured() {
		var err error
		rest, err = buildRESTStore(cfg, out)
		if err != nil {
			return nil, err
		}
	}

	var contacts *data.ContactRepo
	if cfg.DB != nil {
		contacts = data.NewContactRepo(cfg.DB)
		roles := data.NewRoleRepo(cfg.DB)
		out.Contacts = contacts
		out.Roles = roles
		out.RoleAdmin = roles
		posts := data.NewBlogRepo(cfg.DB)
		out.Posts = posts
		out.PostAdmin = posts
		out.Plans = data.NewPlanRepo(cfg.DB)
		out.Offerings = data.NewOfferingRepo(cfg.DB)
		out.Reviews = data.NewTestimonialRepo(cfg.DB)
		out.Settings = data.NewSettingsRepo(cfg.DB)
		out.Profiles = data.NewProfileRepo(cfg.DB)
	} else if rest != nil {
		out.Contacts = rest
		out.Roles = rest
		out.RoleAdmin = rest
		out.Posts = rest
		out.PostAdmin = rest.Posts()
		out.Plans = rest.Plans()
		out.Offerings = rest.Offerings()
		out.Reviews = rest.Testimonials()
		out.Settings = rest
		out.Profiles = rest
	}

	if app.Auth.Mode == config.AuthModeDev {
		if err := applyDevAuth(cfg, out, logger); err != nil {
			return nil, err
		}
	}

	strategies, err := buildStrategies(app.Submission.Strategies, rest, contacts, logger)
	if err != nil {
		return nil, err
	}
	out.Strategies = strategies

	if cfg.Runtime == RuntimeServer && app.Backend.CanVerifyTokens() {
		v, err := oidc.NewVerifier(oidc.VerifierConfig{
			Issuer:       app.Backend.Issuer,
			JWKSURL:      app.Backend.JWKSURL,
			SharedSecret: app.Backend.JWTSecret,
			Audience:     app.Backend.JWTAudience,
		})
		if err != nil {
			return nil, fmt.Errorf("create token verifier: %w", err)
		}
		out.Verifier = v
	}

	return out, nil
}

// buildRESTStore creates the data API gateway. The server sends the data key; the
// CLI sends the signed-in user's token and falls back to the anon key.
func buildRESTStore(cfg AdapterConfig, out *Adapters) (*postgrest.Store, error) {
	app := cfg.Config
	if cfg.Runtime == RuntimeServer {
		client, err := backendapi.New(backendapi.Config{
			BaseURL: app.Backend.URL,
			APIKey:  app.Backend.DataKey(),
			Timeout: app.Backend.RequestTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create backend client: %w", err)
		}
		return postgrest.New(client)
	}

	client, err := backendapi.New(backendapi.Config{
		BaseURL: app.Backend.URL,
		APIKey:  app.Backend.AnonKey,
		Timeout: app.Backend.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}
	if cfg.Store == nil {
		return nil, errors.New("session store is required for the CLI runtime")
	}
	if app.Auth.Mode == config.AuthModeBackend {
		auth, err := gotrue.New(gotrue.Options{Client: client, Store: cfg.Store, Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("create auth backend: %w", err)
		}
		out.Auth = auth
		anon := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: client.APIKey(), TokenType: "Bearer"})
		client = client.WithTokenSource(auth.TokenSource(anon))
	}
	return postgrest.New(client)
}

func applyDevAuth(cfg AdapterConfig, out *Adapters, logger *slog.Logger) error {
	dev := cfg.Config.Auth.DevAuth
	if cfg.Runtime == RuntimeCLI {
		backend, err := devauth.New(devauth.Config{
			UserID:      dev.UserID,
			Email:       dev.Email,
			Password:    dev.Password,
			DisplayName: dev.DisplayName,
			Store:       cfg.Store,
		})
		if err != nil {
			return fmt.Errorf("create dev auth backend: %w", err)
		}
		out.Auth = backend
	}

	lookup := authroles.StaticRoleLookup{}
	if dev.Admin {
		lookup.Admins = []string{dev.UserID}
	}
	out.Roles = lookup
	logger.Warn("dev auth enabled; roles come from configuration", "admin", dev.Admin)
	return nil
}

// buildStrategies maps configured names onto available strategies, skipping
// ones whose transport is not configured.
func buildStrategies(
	names []string,
	rest *postgrest.Store,
	contacts *data.ContactRepo,
	logger *slog.Logger,
) ([]ports.PersistenceStrategy, error) {
	out := make([]ports.PersistenceStrategy, 0, len(names))
	for _, name := range names {
		switch {
		case name == config.StrategyRESTInsert && rest != nil:
			out = append(out, rest.InsertStrategy())
		case name == config.StrategyRESTInsertReturn && rest != nil:
			out = append(out, rest.InsertReturnStrategy())
		case name == config.StrategyPGInsert && contacts != nil:
			out = append(out, contacts.InsertStrategy())
		default:
			logger.Warn("submission strategy unavailable; skipping", "strategy", name)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no submission strategy available: configure BACKEND_URL/BACKEND_ANON_KEY or DB_ENABLED")
	}
	return out, nil
}

// LocalStoreHandle is an opened LocalStore plus its release func.
type LocalStoreHandle struct {
	Store ports.LocalStore
	Close func() error
}

// OpenLocalStore opens the pending-queue store selected by cfg.PendingStore.
func OpenLocalStore(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (LocalStoreHandle, error) {
	switch cfg.LocalStore.PendingStore {
	case config.PendingStoreMemory:
		return LocalStoreHandle{Store: localstore.NewMemory(), Close: func() error { return nil }}, nil
	case config.PendingStoreRedis:
		client, err := ConnectRedis(ctx, DatabaseConfig{RedisConfig: cfg.Redis, Logger: logger})
		if err != nil {
			return LocalStoreHandle{}, err
		}
		store := redisadapter.NewLocalStore(client, redisadapter.LocalStoreOptions{Prefix: cfg.LocalStore.RedisPrefix})
		return LocalStoreHandle{Store: store, Close: closeRedis(client)}, nil
	default:
		return OpenSQLiteStore(ctx, cfg.LocalStore.Path)
	}
}

// OpenSQLiteStore opens the SQLite file at path.
func OpenSQLiteStore(ctx context.Context, path string) (LocalStoreHandle, error) {
	store, err := localstore.OpenSQLite(ctx, path)
	if err != nil {
		return LocalStoreHandle{}, fmt.Errorf("open local store %s: %w", path, err)
	}
	return LocalStoreHandle{Store: store, Close: store.Close}, nil
}

func closeRedis(client redis.UniversalClient) func() error {
	return func() error { return client.Close() }
}
