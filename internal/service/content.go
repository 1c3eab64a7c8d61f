package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sentinellock/sentinel-web/internal/bounded"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// ContentInput is an editable row payload that can clean and check itself.
type ContentInput[In any] interface {
	Normalize() In
	Validate() error
}

// ContentServiceOptions groups dependencies for ContentService.
type ContentServiceOptions[T any, In ContentInput[In]] struct {
	Table   ports.ContentTable[T, In] // Required
	Noun    string                    // Used in id errors and logs, e.g. "pricing plan"
	Timeout time.Duration
	Logger  *slog.Logger
}

// ContentService edits one display-ordered content table: pricing plans,
// service offerings or testimonials.
type ContentService[T any, In ContentInput[In]] struct {
	table   ports.ContentTable[T, In]
	noun    string
	timeout time.Duration
	logger  *slog.Logger
}

// NewContentService constructs a ContentService.
func NewContentService[T any, In ContentInput[In]](opts ContentServiceOptions[T, In]) *ContentService[T, In] {
	if opts.Table == nil {
		panic("ContentService requires a ContentTable")
	}
	noun := opts.Noun
	if noun == "" {
		noun = "item"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultAdminCallTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentService[T, In]{
		table:   opts.Table,
		noun:    noun,
		timeout: timeout,
		logger:  logger.With("component", "content_admin", "table", noun),
	}
}

// List returns every row in display order.
func (s *ContentService[T, In]) List(ctx context.Context) ([]T, error) {
	return bounded.Call(ctx, "list "+s.noun+"s", s.timeout, s.table.List)
}

// Create validates in and stores it as a new row.
func (s *ContentService[T, In]) Create(ctx context.Context, in In) (T, error) {
	var zero T
	in = in.Normalize()
	if err := validationError(in.Validate()); err != nil {
		return zero, err
	}
	row, err := bounded.Call(ctx, "create "+s.noun, s.timeout, func(c context.Context) (T, error) {
		return s.table.Create(c, in)
	})
	if err != nil {
		return zero, err
	}
	s.logger.InfoContext(ctx, s.noun+" created")
	return row, nil
}

// Update replaces the editable fields of row id.
func (s *ContentService[T, In]) Update(ctx context.Context, id string, in In) (T, error) {
	var zero T
	id, err := parseID(id, s.noun)
	if err != nil {
		return zero, err
	}
	in = in.Normalize()
	if err := validationError(in.Validate()); err != nil {
		return zero, err
	}
	row, err := bounded.Call(ctx, "update "+s.noun, s.timeout, func(c context.Context) (T, error) {
		return s.table.Update(c, id, in)
	})
	if err != nil {
		return zero, err
	}
	s.logger.InfoContext(ctx, s.noun+" updated", "id", id)
	return row, nil
}

// Delete removes row id.
func (s *ContentService[T, In]) Delete(ctx context.Context, id string) error {
	id, err := parseID(id, s.noun)
	if err != nil {
		return err
	}
	err = bounded.Do(ctx, "delete "+s.noun, s.timeout, func(c context.Context) error {
		return s.table.Delete(c, id)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, s.noun+" deleted", "id", id)
	return nil
}

// Content services for the site catalog tables.
type (
	PlanService        = ContentService[model.PricingPlan, model.PricingPlanInput]
	OfferingService    = ContentService[model.ServiceOffering, model.ServiceOfferingInput]
	TestimonialService = ContentService[model.Testimonial, model.TestimonialInput]
)

// BlogAdminServiceOptions groups dependencies for BlogAdminService.
type BlogAdminServiceOptions struct {
	Posts   ports.PostAdmin // Required
	Timeout time.Duration
	Logger  *slog.Logger
	Now     func() time.Time
}

// BlogAdminService writes, publishes and deletes blog posts.
type BlogAdminService struct {
	posts   ports.PostAdmin
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewBlogAdminService constructs a BlogAdminService.
func NewBlogAdminService(opts BlogAdminServiceOptions) *BlogAdminService {
	if opts.Posts == nil {
		panic("BlogAdminService requires a PostAdmin")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultAdminCallTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &BlogAdminService{
		posts:   opts.Posts,
		timeout: timeout,
		logger:  logger.With("component", "blog_admin"),
		now:     now,
	}
}

// List returns every post, drafts included, newest first.
func (s *BlogAdminService) List(ctx context.Context) ([]model.Post, error) {
	return bounded.Call(ctx, "list posts", s.timeout, s.posts.List)
}

// Create stores a new post written by authorID.
func (s *BlogAdminService) Create(ctx context.Context, authorID string, in model.PostInput) (model.Post, error) {
	w, err := s.prepare(authorID, in)
	if err != nil {
		return model.Post{}, err
	}
	post, err := bounded.Call(ctx, "create post", s.timeout, func(c context.Context) (model.Post, error) {
		return s.posts.Create(c, w)
	})
	if err != nil {
		return model.Post{}, err
	}
	s.logger.InfoContext(ctx, "post created", "id", post.ID, "slug", post.Slug, "published", post.Published)
	return post, nil
}

// Update replaces post id. Saving a published post stamps a new publication
// time and makes authorID its author.
func (s *BlogAdminService) Update(ctx context.Context, id, authorID string, in model.PostInput) (model.Post, error) {
	id, err := parseID(id, "post")
	if err != nil {
		return model.Post{}, err
	}
	w, err := s.prepare(authorID, in)
	if err != nil {
		return model.Post{}, err
	}
	post, err := bounded.Call(ctx, "update post", s.timeout, func(c context.Context) (model.Post, error) {
		return s.posts.Update(c, id, w)
	})
	if err != nil {
		return model.Post{}, err
	}
	s.logger.InfoContext(ctx, "post updated", "id", id, "slug", post.Slug, "published", post.Published)
	return post, nil
}

// SetPublished publishes post id now, or unpublishes it and clears the publication time.
func (s *BlogAdminService) SetPublished(ctx context.Context, id string, published bool) (model.Post, error) {
	id, err := parseID(id, "post")
	if err != nil {
		return model.Post{}, err
	}
	at := s.publishedAt(published)
	post, err := bounded.Call(ctx, "publish post", s.timeout, func(c context.Context) (model.Post, error) {
		return s.posts.SetPublished(c, id, published, at)
	})
	if err != nil {
		return model.Post{}, err
	}
	s.logger.InfoContext(ctx, "post publication changed", "id", id, "published", published)
	return post, nil
}

// Delete removes post id.
func (s *BlogAdminService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id, "post")
	if err != nil {
		return err
	}
	err = bounded.Do(ctx, "delete post", s.timeout, func(c context.Context) error {
		return s.posts.Delete(c, id)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "post deleted", "id", id)
	return nil
}

func (s *BlogAdminService) prepare(authorID string, in model.PostInput) (model.PostWrite, error) {
	in = in.Normalize()
	if err := validationError(in.Validate()); err != nil {
		return model.PostWrite{}, err
	}
	return model.PostWrite{
		PostInput:   in,
		AuthorID:    authorRef(authorID),
		PublishedAt: s.publishedAt(in.Published),
	}, nil
}

func (s *BlogAdminService) publishedAt(published bool) *time.Time {
	if !published {
		return nil
	}
	at := s.now().UTC()
	return &at
}

// authorRef returns the author column value. Identities that are not backend
// accounts, such as the dev-mode user, leave the post without an author.
func authorRef(userID string) *string {
	id, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil {
		return nil
	}
	v := id.String()
	return &v
}

func parseID(raw, noun string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", apperrors.ValidationField("id", noun+" id must be a UUID")
	}
	return id.String(), nil
}

// validationError converts a model validation failure into a Validation AppError.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var fe *model.FieldError
	if errors.As(err, &fe) {
		return apperrors.ValidationField(fe.Field, fe.Error())
	}
	return apperrors.Validation(err.Error())
}
