package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sentinellock/sentinel-web/internal/data/pgxutil"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

const postColumns = `id::text AS id, title, slug, excerpt, content, featured_image_url,
	author_id::text AS author_id, COALESCE(published, false) AS published, published_at,
	meta_title, meta_description, COALESCE(tags, '{}') AS tags, created_at, updated_at`

// BlogRepo provides database operations for blog_posts.
type BlogRepo struct {
	DB *sql.DB
}

var (
	_ ports.BlogPostSource = (*BlogRepo)(nil)
	_ ports.PostAdmin      = (*BlogRepo)(nil)
)

// NewBlogRepo creates a BlogRepo.
func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{DB: db}
}

// ListPublished returns published posts, newest first.
func (r *BlogRepo) ListPublished(ctx context.Context) ([]model.BlogPost, error) {
	var out []model.BlogPost
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT slug, updated_at, published_at
			FROM blog_posts
			WHERE published
			ORDER BY published_at DESC NULLS LAST`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// List returns every post, newest first.
func (r *BlogRepo) List(ctx context.Context) ([]model.Post, error) {
	return collectRows[model.Post](ctx, r.DB, `SELECT `+postColumns+` FROM blog_posts ORDER BY created_at DESC`)
}

// Create inserts a post. A taken slug is reported as a conflict on slug.
func (r *BlogRepo) Create(ctx context.Context, in model.PostWrite) (model.Post, error) {
	return collectOne[model.Post](ctx, r.DB, "blog post not found", `
		INSERT INTO blog_posts (title, slug, excerpt, content, featured_image_url, author_id,
		                        published, published_at, meta_title, meta_description, tags)
		VALUES ($1, $2, $3, $4, $5, $6::uuid, $7, $8, $9, $10, $11)
		RETURNING `+postColumns,
		in.Title, in.Slug, in.Excerpt, in.Content, in.FeaturedImageURL, in.AuthorID,
		in.Published, in.PublishedAt, in.MetaTitle, in.MetaDescription, in.Tags)
}

func (r *BlogRepo) Update(ctx context.Context, id string, in model.PostWrite) (model.Post, error) {
	return collectOne[model.Post](ctx, r.DB, "blog post not found", `
		UPDATE blog_posts
		SET title = $1, slug = $2, excerpt = $3, content = $4, featured_image_url = $5, author_id = $6::uuid,
		    published = $7, published_at = $8, meta_title = $9, meta_description = $10, tags = $11
		WHERE id = $12
		RETURNING `+postColumns,
		in.Title, in.Slug, in.Excerpt, in.Content, in.FeaturedImageURL, in.AuthorID,
		in.Published, in.PublishedAt, in.MetaTitle, in.MetaDescription, in.Tags, id)
}

func (r *BlogRepo) SetPublished(ctx context.Context, id string, published bool, at *time.Time) (model.Post, error) {
	return collectOne[model.Post](ctx, r.DB, "blog post not found", `
		UPDATE blog_posts SET published = $1, published_at = $2 WHERE id = $3
		RETURNING `+postColumns,
		published, at, id)
}

func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "blog_posts", id, "blog post not found")
}
