package ports

import (
	"context"

	"github.com/sentinellock/sentinel-web/internal/domain/model"
)

// PersistenceStrategy is one way of durably storing a contact submission remotely.
type PersistenceStrategy interface {
	Name() string
	Persist(ctx context.Context, sub model.ContactSubmission) error
}

// LocalStore is a small client-local key/value store (browser local storage analogue).
type LocalStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Notifier surfaces user-visible notices.
type Notifier interface {
	Notify(ctx context.Context, n model.Notice)
}

// ContactAdmin manages stored contact submissions.
type ContactAdmin interface {
	// List returns submissions newest first; an empty status lists all.
	List(ctx context.Context, status model.ContactStatus) ([]model.Contact, error)
	UpdateStatus(ctx context.Context, id string, status model.ContactStatus) error
	Delete(ctx context.Context, id string) error
}

// BlogPostSource lists published blog posts.
type BlogPostSource interface {
	ListPublished(ctx context.Context) ([]model.BlogPost, error)
}
