package httpx

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/sentinellock/sentinel-web/internal/service"
)

// SitemapGenerator renders sitemap.xml.
type SitemapGenerator interface {
	Generate(ctx context.Context, w io.Writer) (service.SitemapResult, error)
}

// SitemapHandler serves GET /sitemap.xml.
type SitemapHandler struct {
	Svc    SitemapGenerator
	Logger *slog.Logger
}

func (h *SitemapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if _, err := h.Svc.Generate(r.Context(), &buf); err != nil {
		if h.Logger != nil {
			h.Logger.ErrorContext(r.Context(), "sitemap generation failed", "error", err)
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = buf.WriteTo(w)
}
