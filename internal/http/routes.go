package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sentinellock/sentinel-web/internal/ports"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Submissions SubmissionService
	Contacts    ContactsService     // optional; admin contact routes are skipped when nil
	Sitemap     SitemapGenerator    // optional
	Verifier    ports.TokenVerifier // optional; admin routes are skipped when nil
	Roles       ports.RoleLookup

	RoleCheckTimeout time.Duration
	MaxBodyBytes     int64
	RateLimit        *RateLimitOptions // nil disables throttling
	Logger           *slog.Logger
}

// NewRouter builds the service mux wrapped in request id, logging and recovery.
func NewRouter(s RouterServices) http.Handler {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	registerContactRoutes(mux, s, logger)
	if s.Sitemap != nil {
		h := &SitemapHandler{Svc: s.Sitemap, Logger: logger}
		mux.Handle("GET /sitemap.xml", h)
		mux.Handle("HEAD /sitemap.xml", h)
	}
	if s.Verifier != nil && s.Roles != nil {
		registerAdminRoutes(mux, s, logger)
	}

	return Chain(mux, RequestID(), Recover(logger), Logging(logger))
}

func registerContactRoutes(mux *http.ServeMux, s RouterServices, logger *slog.Logger) {
	maxBody := s.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 64 << 10
	}
	mw := []Middleware{MaxBody(maxBody)}
	if s.RateLimit != nil {
		opts := *s.RateLimit
		if opts.Logger == nil {
			opts.Logger = logger
		}
		mw = append([]Middleware{RateLimit(opts)}, mw...)
	}
	h := &ContactHandlers{Svc: s.Submissions, Logger: logger}
	mux.Handle("POST /api/contact", Chain(http.HandlerFunc(h.Submit), mw...))
}

func registerAdminRoutes(mux *http.ServeMux, s RouterServices, logger *slog.Logger) {
	guard := RequireAdmin(AdminGuardOptions{
		Verifier:         s.Verifier,
		Roles:            s.Roles,
		RoleCheckTimeout: s.RoleCheckTimeout,
		Logger:           logger,
	})
	h := &AdminHandlers{Pending: s.Submissions, Contacts: s.Contacts, Logger: logger}
	admin := func(fn http.HandlerFunc) http.Handler { return guard(fn) }

	mux.Handle("GET /api/admin/pending", admin(h.ListPending))
	mux.Handle("POST /api/admin/pending/retry", admin(h.RetryPending))
	mux.Handle("DELETE /api/admin/pending", admin(h.ClearPending))
	if s.Contacts != nil {
		mux.Handle("GET /api/admin/contacts", admin(h.ListContacts))
		mux.Handle("PATCH /api/admin/contacts/{id}", Chain(admin(h.UpdateContact), MaxBody(16<<10)))
		mux.Handle("DELETE /api/admin/contacts/{id}", admin(h.DeleteContact))
	}
}
