package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sentinellock/sentinel-web/config"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	"github.com/sentinellock/sentinel-web/internal/observability/statsd"
	"github.com/sentinellock/sentinel-web/internal/ports"
	"github.com/sentinellock/sentinel-web/internal/service"
)

// ServiceContainer holds the constructed services. Optional services are nil
// when their adapters are unavailable.
type ServiceContainer struct {
	Session     *service.SessionAuthority
	Submissions *service.SubmissionQueue
	Sitemap     *service.SitemapService
	Contacts    *service.ContactAdminService
	RoleAdmin   *service.RoleAdminService
	Blog        *service.BlogAdminService
	Plans       *service.PlanService
	Offerings   *service.OfferingService
	Reviews     *service.TestimonialService
	Settings    *service.SettingsService
	Users       *service.UserDirectoryService

	Roles    ports.RoleLookup
	Verifier ports.TokenVerifier
}

// ServicesConfig contains what BuildServices needs.
type ServicesConfig struct {
	Config       *config.AppConfig
	Adapters     *Adapters
	PendingStore ports.LocalStore
	Notifier     ports.Notifier
	Metrics      statsd.Sink
	Logger       *slog.Logger
}

// BuildServices constructs every service the adapters allow.
func BuildServices(cfg ServicesConfig) (ServiceContainer, error) {
	if cfg.Config == nil || cfg.Adapters == nil {
		return ServiceContainer{}, errors.New("config and adapters are required")
	}
	if cfg.PendingStore == nil {
		return ServiceContainer{}, errors.New("pending store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := cfg.Config
	ad := cfg.Adapters

	c := ServiceContainer{Roles: ad.Roles, Verifier: ad.Verifier}

	c.Submissions = service.NewSubmissionQueue(service.SubmissionQueueOptions{
		Strategies: ad.Strategies,
		Store:      cfg.PendingStore,
		Config: service.SubmissionQueueConfig{
			AttemptTimeout: app.Submission.AttemptTimeout,
			Metrics:        cfg.Metrics,
			Logger:         logger,
		},
	})

	c.Sitemap = service.NewSitemapService(service.SitemapServiceOptions{
		Posts: ad.Posts,
		Config: service.SitemapServiceConfig{
			SiteURL: app.Site.URL,
			Logger:  logger,
		},
	})

	if ad.Contacts != nil {
		c.Contacts = service.NewContactAdminService(service.ContactAdminServiceOptions{
			Contacts: ad.Contacts,
			Timeout:  app.Backend.RequestTimeout,
			Logger:   logger,
		})
	}
	if ad.RoleAdmin != nil {
		c.RoleAdmin = service.NewRoleAdminService(service.RoleAdminServiceOptions{
			Roles:   ad.RoleAdmin,
			Timeout: app.Backend.RequestTimeout,
			Logger:  logger,
		})
	}

	buildContentServices(&c, ad, app, logger)

	if ad.Auth != nil && ad.Roles != nil {
		if app.Auth.DebugGrantAdminOnRoleTimeout {
			logger.Error("AUTH_DEBUG_GRANT_ADMIN_ON_ROLE_TIMEOUT is enabled: role-check timeouts grant admin. Never enable this outside local debugging")
		}
		c.Session = service.NewSessionAuthority(service.SessionAuthorityOptions{
			Backend: ad.Auth,
			Roles:   ad.Roles,
			Config: service.SessionAuthorityConfig{
				RedirectURL:             app.Site.RedirectURL(),
				RestoreTimeout:          app.Auth.SessionRestoreTimeout,
				RoleCheckTimeout:        app.Auth.RoleCheckTimeout,
				GrantAdminOnRoleTimeout: app.Auth.DebugGrantAdminOnRoleTimeout,
				Notifier:                cfg.Notifier,
				Metrics:                 cfg.Metrics,
				Logger:                  logger,
			},
		})
	}

	logger.Info("services ready",
		"strategies", c.Submissions.Strategies(),
		"session_authority", c.Session != nil,
		"contact_admin", c.Contacts != nil,
		"role_admin", c.RoleAdmin != nil,
		"content_admin", c.Blog != nil,
		"admin_api", c.Verifier != nil && c.Roles != nil,
	)
	return c, nil
}

// buildContentServices adds the site content services whose adapters exist.
func buildContentServices(c *ServiceContainer, ad *Adapters, app *config.AppConfig, logger *slog.Logger) {
	timeout := app.Backend.RequestTimeout
	if ad.PostAdmin != nil {
		c.Blog = service.NewBlogAdminService(service.BlogAdminServiceOptions{
			Posts: ad.PostAdmin, Timeout: timeout, Logger: logger,
		})
	}
	if ad.Plans != nil {
		c.Plans = service.NewContentService(service.ContentServiceOptions[model.PricingPlan, model.PricingPlanInput]{
			Table: ad.Plans, Noun: "pricing plan", Timeout: timeout, Logger: logger,
		})
	}
	if ad.Offerings != nil {
		c.Offerings = service.NewContentService(service.ContentServiceOptions[model.ServiceOffering, model.ServiceOfferingInput]{
			Table: ad.Offerings, Noun: "service", Timeout: timeout, Logger: logger,
		})
	}
	if ad.Reviews != nil {
		c.Reviews = service.NewContentService(service.ContentServiceOptions[model.Testimonial, model.TestimonialInput]{
			Table: ad.Reviews, Noun: "testimonial", Timeout: timeout, Logger: logger,
		})
	}
	if ad.Settings != nil {
		c.Settings = service.NewSettingsService(service.SettingsServiceOptions{
			Settings: ad.Settings, Timeout: timeout, Logger: logger,
		})
	}
	if ad.Profiles != nil && ad.RoleAdmin != nil {
		c.Users = service.NewUserDirectoryService(service.UserDirectoryServiceOptions{
			Profiles: ad.Profiles, Roles: ad.RoleAdmin, Timeout: timeout,
		})
	}
}

// InitMetrics creates the StatsD client. A disabled config yields a client that drops
// every metric.
func InitMetrics(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) (*statsd.Client, error) {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.IsEnabled(),
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}
	return client, nil
}
