//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// BlogPost is the subset of a published blog_posts row needed for sitemap generation.
type BlogPost struct {
	Slug        string     `json:"slug"         db:"slug"`
	UpdatedAt   *time.Time `json:"updated_at"   db:"updated_at"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
}

// LastModified returns updated_at, falling back to published_at, then fallback.
func (p BlogPost) LastModified(fallback time.Time) time.Time {
	switch {
	case p.UpdatedAt != nil && !p.UpdatedAt.IsZero():
		return *p.UpdatedAt
	case p.PublishedAt != nil && !p.PublishedAt.IsZero():
		return *p.PublishedAt
	default:
		return fallback
	}
}
