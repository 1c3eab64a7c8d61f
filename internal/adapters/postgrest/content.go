package postgrest

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/sentinellock/sentinel-web/internal/adapters/backendapi"
	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

const (
	plansPath        = "/rest/v1/pricing_plans"
	offeringsPath    = "/rest/v1/services"
	testimonialsPath = "/rest/v1/testimonials"
	settingsPath     = "/rest/v1/site_settings"
	profilesPath     = "/rest/v1/profiles"
)

// Table is a REST gateway for one content table. Writes send W as the row body
// and read the stored row back.
type Table[T any, W any] struct {
	client   *backendapi.Client
	path     string
	order    string
	notFound string
}

var (
	_ ports.ContentTable[model.PricingPlan, model.PricingPlanInput]         = (*Table[model.PricingPlan, model.PricingPlanInput])(nil)
	_ ports.ContentTable[model.ServiceOffering, model.ServiceOfferingInput] = (*Table[model.ServiceOffering, model.ServiceOfferingInput])(nil)
	_ ports.ContentTable[model.Testimonial, model.TestimonialInput]         = (*Table[model.Testimonial, model.TestimonialInput])(nil)
	_ ports.PostAdmin                                                       = (*PostTable)(nil)
	_ ports.SiteSettings                                                    = (*Store)(nil)
	_ ports.ProfileSource                                                   = (*Store)(nil)
)

// Plans returns the pricing_plans gateway.
func (s *Store) Plans() *Table[model.PricingPlan, model.PricingPlanInput] {
	return &Table[model.PricingPlan, model.PricingPlanInput]{
		client: s.client, path: plansPath, order: "display_order.asc", notFound: "pricing plan not found",
	}
}

// Offerings returns the services gateway.
func (s *Store) Offerings() *Table[model.ServiceOffering, model.ServiceOfferingInput] {
	return &Table[model.ServiceOffering, model.ServiceOfferingInput]{
		client: s.client, path: offeringsPath, order: "display_order.asc", notFound: "service not found",
	}
}

// Testimonials returns the testimonials gateway.
func (s *Store) Testimonials() *Table[model.Testimonial, model.TestimonialInput] {
	return &Table[model.Testimonial, model.TestimonialInput]{
		client: s.client, path: testimonialsPath, order: "display_order.asc", notFound: "testimonial not found",
	}
}

func (t *Table[T, W]) List(ctx context.Context) ([]T, error) {
	var rows []T
	err := t.client.Do(ctx, backendapi.Request{
		Path:  t.path,
		Query: url.Values{"select": {"*"}, "order": {t.order}},
	}, &rows)
	return rows, err
}

func (t *Table[T, W]) Create(ctx context.Context, in W) (T, error) {
	return t.one(ctx, backendapi.Request{
		Method: http.MethodPost,
		Path:   t.path,
		Query:  url.Values{"select": {"*"}},
		Header: http.Header{"Prefer": {"return=representation"}},
		Body:   in,
	})
}

func (t *Table[T, W]) Update(ctx context.Context, id string, in W) (T, error) {
	return t.patch(ctx, id, in)
}

func (t *Table[T, W]) Delete(ctx context.Context, id string) error {
	_, err := t.one(ctx, backendapi.Request{
		Method: http.MethodDelete,
		Path:   t.path,
		Query:  url.Values{"id": {"eq." + id}, "select": {"*"}},
		Header: http.Header{"Prefer": {"return=representation"}},
	})
	return err
}

func (t *Table[T, W]) patch(ctx context.Context, id string, body any) (T, error) {
	return t.one(ctx, backendapi.Request{
		Method: http.MethodPatch,
		Path:   t.path,
		Query:  url.Values{"id": {"eq." + id}, "select": {"*"}},
		Header: http.Header{"Prefer": {"return=representation"}},
		Body:   body,
	})
}

// one sends req and returns the first row of the representation. An empty
// representation means the filter matched nothing.
func (t *Table[T, W]) one(ctx context.Context, req backendapi.Request) (T, error) {
	var rows []T
	var zero T
	if err := t.client.Do(ctx, req, &rows); err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, apperrors.NotFound(t.notFound)
	}
	return rows[0], nil
}

// PostTable is the blog_posts gateway.
type PostTable struct {
	*Table[model.Post, model.PostWrite]
}

// Posts returns the blog_posts gateway.
func (s *Store) Posts() *PostTable {
	return &PostTable{Table: &Table[model.Post, model.PostWrite]{
		client: s.client, path: blogPath, order: "created_at.desc", notFound: "blog post not found",
	}}
}

func (p *PostTable) SetPublished(ctx context.Context, id string, published bool, at *time.Time) (model.Post, error) {
	return p.patch(ctx, id, struct {
		Published   bool       `json:"published"`
		PublishedAt *time.Time `json:"published_at"`
	}{published, at})
}

// ListSettings returns every site setting ordered by key.
func (s *Store) ListSettings(ctx context.Context) ([]model.SiteSetting, error) {
	var rows []model.SiteSetting
	err := s.client.Do(ctx, backendapi.Request{
		Path:  settingsPath,
		Query: url.Values{"select": {"*"}, "order": {"setting_key.asc"}},
	}, &rows)
	return rows, err
}

// UpdateSetting stores value under key. Hosted projects may lack the updated_at
// trigger, so the timestamp is sent explicitly.
func (s *Store) UpdateSetting(ctx context.Context, key, value string) error {
	var rows []model.SiteSetting
	err := s.client.Do(ctx, backendapi.Request{
		Method: http.MethodPatch,
		Path:   settingsPath,
		Query:  url.Values{"setting_key": {"eq." + key}, "select": {"setting_key"}},
		Header: http.Header{"Prefer": {"return=representation"}},
		Body: map[string]any{
			"setting_value": value,
			"updated_at":    time.Now().UTC(),
		},
	}, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperrors.NotFound("setting not found")
	}
	return nil
}

// ListProfiles returns user profiles, newest first.
func (s *Store) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	var rows []model.Profile
	err := s.client.Do(ctx, backendapi.Request{
		Path:  profilesPath,
		Query: url.Values{"select": {"*"}, "order": {"created_at.desc"}},
	}, &rows)
	return rows, err
}

// GrantRole inserts a role row, ignoring one that already exists.
func (s *Store) GrantRole(ctx context.Context, userID string, role domainauth.Role) error {
	return s.client.Do(ctx, backendapi.Request{
		Method: http.MethodPost,
		Path:   rolesPath,
		Query:  url.Values{"on_conflict": {"user_id,role"}},
		Header: http.Header{"Prefer": {"resolution=ignore-duplicates,return=minimal"}},
		Body:   map[string]string{"user_id": userID, "role": string(role)},
	}, nil)
}
