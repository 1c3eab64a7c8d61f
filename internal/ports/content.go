package ports

import (
	"context"
	"time"

	"github.com/sentinellock/sentinel-web/internal/domain/model"
)

// ContentTable manages one table of site content. T is the stored row and W the
// write payload. Update and Delete report NotFound when no row has id.
type ContentTable[T any, W any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in W) (T, error)
	Update(ctx context.Context, id string, in W) (T, error)
	Delete(ctx context.Context, id string) error
}

// PostAdmin manages blog posts.
type PostAdmin interface {
	ContentTable[model.Post, model.PostWrite]
	// SetPublished flips the published flag; at is nil when unpublishing.
	SetPublished(ctx context.Context, id string, published bool, at *time.Time) (model.Post, error)
}

// SiteSettings reads and writes site_settings rows.
type SiteSettings interface {
	ListSettings(ctx context.Context) ([]model.SiteSetting, error)
	// UpdateSetting stores value for key, reporting NotFound for unknown keys.
	UpdateSetting(ctx context.Context, key, value string) error
}

// ProfileSource lists user profiles.
type ProfileSource interface {
	ListProfiles(ctx context.Context) ([]model.Profile, error)
}
