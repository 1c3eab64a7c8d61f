package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/sentinellock/sentinel-web/internal/bounded"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

const (
	sitemapNamespace      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapDateLayout     = "2006-01-02"
	defaultSitemapTimeout = 10 * time.Second
)

// SitemapServiceOptions groups dependencies for SitemapService.
type SitemapServiceOptions struct {
	Posts  ports.BlogPostSource // Optional: nil produces a sitemap of static pages only
	Config SitemapServiceConfig
}

// SitemapServiceConfig holds the site origin and optional observers.
type SitemapServiceConfig struct {
	SiteURL string
	Timeout time.Duration
	Logger  *slog.Logger
	Now     func() time.Time
}

// SitemapService renders the public sitemap.
type SitemapService struct {
	posts  ports.BlogPostSource
	cfg    SitemapServiceConfig
	logger *slog.Logger
}

// SitemapResult summarizes a generated sitemap.
type SitemapResult struct {
	URLs      int
	BlogPosts int
	// Warning is set when blog posts could not be included.
	Warning string
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

var staticPages = []struct {
	path       string
	changeFreq string
	priority   string
}{
	{"/", "weekly", "1.0"},
	{"/pricing", "monthly", "0.9"},
	{"/blog", "weekly", "0.8"},
	{"/#services", "monthly", "0.8"},
	{"/#about", "monthly", "0.7"},
	{"/#contact", "monthly", "0.7"},
}

// NewSitemapService constructs a SitemapService.
func NewSitemapService(opts SitemapServiceOptions) *SitemapService {
	cfg := opts.Config
	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSitemapTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SitemapService{
		posts:  opts.Posts,
		cfg:    cfg,
		logger: logger.With("component", "sitemap"),
	}
}

// Generate writes the sitemap XML to w. Failing to list blog posts is not an error:
// the sitemap is still written without them and the result carries a warning.
func (s *SitemapService) Generate(ctx context.Context, w io.Writer) (SitemapResult, error) {
	today := s.cfg.Now().UTC().Format(sitemapDateLayout)

	set := sitemapURLSet{XMLNS: sitemapNamespace}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.cfg.SiteURL + p.path,
			LastMod:    today,
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
		})
	}

	posts, warning := s.listPosts(ctx)
	fallback := s.cfg.Now()
	for _, post := range posts {
		slug := strings.Trim(strings.TrimSpace(post.Slug), "/")
		if slug == "" {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.cfg.SiteURL + "/blog/" + slug,
			LastMod:    post.LastModified(fallback).UTC().Format(sitemapDateLayout),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return SitemapResult{}, fmt.Errorf("write sitemap header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return SitemapResult{}, fmt.Errorf("encode sitemap: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return SitemapResult{}, fmt.Errorf("write sitemap: %w", err)
	}

	res := SitemapResult{
		URLs:      len(set.URLs),
		BlogPosts: len(set.URLs) - len(staticPages),
		Warning:   warning,
	}
	s.logger.InfoContext(ctx, "sitemap generated", "urls", res.URLs, "blog_posts", res.BlogPosts)
	return res, nil
}

func (s *SitemapService) listPosts(ctx context.Context) ([]model.BlogPost, string) {
	if s.posts == nil {
		const msg = "backend credentials not configured; sitemap generated without blog posts"
		s.logger.WarnContext(ctx, msg)
		return nil, msg
	}
	posts, err := bounded.Call(ctx, "list blog posts", s.cfg.Timeout, s.posts.ListPublished)
	if err != nil {
		s.logger.WarnContext(ctx, "could not fetch blog posts; sitemap generated without them", "error", err)
		return nil, "could not fetch blog posts: " + err.Error()
	}
	return posts, ""
}
