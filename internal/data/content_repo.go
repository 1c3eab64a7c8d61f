package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sentinellock/sentinel-web/internal/data/pgxutil"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// collectRows runs query and scans every row into T by column name.
func collectRows[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]T, error) {
	var out []T
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// collectOne runs a statement returning one row. No row maps to NotFound(notFound).
func collectOne[T any](ctx context.Context, db *sql.DB, notFound, query string, args ...any) (T, error) {
	var out T
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return out, apperrors.NotFound(notFound)
	}
	if err != nil {
		return out, apperrors.MapDBError(err)
	}
	return out, nil
}

func deleteByID(ctx context.Context, db *sql.DB, table, id, notFound string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	return expectOneRow(res, err, notFound)
}

const planColumns = `id::text AS id, name, price, period, description, features, is_popular, is_active, display_order, created_at, updated_at`

// PlanRepo provides database operations for pricing_plans.
type PlanRepo struct {
	DB *sql.DB
}

var _ ports.ContentTable[model.PricingPlan, model.PricingPlanInput] = (*PlanRepo)(nil)

// NewPlanRepo creates a PlanRepo.
func NewPlanRepo(db *sql.DB) *PlanRepo {
	return &PlanRepo{DB: db}
}

// List returns plans in display order.
func (r *PlanRepo) List(ctx context.Context) ([]model.PricingPlan, error) {
	return collectRows[model.PricingPlan](ctx, r.DB,
		`SELECT `+planColumns+` FROM pricing_plans ORDER BY display_order, created_at`)
}

func (r *PlanRepo) Create(ctx context.Context, in model.PricingPlanInput) (model.PricingPlan, error) {
	return collectOne[model.PricingPlan](ctx, r.DB, "pricing plan not found", `
		INSERT INTO pricing_plans (name, price, period, description, features, is_popular, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+planColumns,
		in.Name, in.Price, in.Period, in.Description, nonNilList(in.Features), in.IsPopular, in.IsActive, in.DisplayOrder)
}

func (r *PlanRepo) Update(ctx context.Context, id string, in model.PricingPlanInput) (model.PricingPlan, error) {
	return collectOne[model.PricingPlan](ctx, r.DB, "pricing plan not found", `
		UPDATE pricing_plans
		SET name = $1, price = $2, period = $3, description = $4, features = $5,
		    is_popular = $6, is_active = $7, display_order = $8
		WHERE id = $9
		RETURNING `+planColumns,
		in.Name, in.Price, in.Period, in.Description, nonNilList(in.Features), in.IsPopular, in.IsActive, in.DisplayOrder, id)
}

func (r *PlanRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "pricing_plans", id, "pricing plan not found")
}

const offeringColumns = `id::text AS id, name, description, short_description, icon, COALESCE(features, '{}') AS features, price_range, is_active, display_order, created_at, updated_at`

// OfferingRepo provides database operations for the services table.
type OfferingRepo struct {
	DB *sql.DB
}

var _ ports.ContentTable[model.ServiceOffering, model.ServiceOfferingInput] = (*OfferingRepo)(nil)

// NewOfferingRepo creates an OfferingRepo.
func NewOfferingRepo(db *sql.DB) *OfferingRepo {
	return &OfferingRepo{DB: db}
}

// List returns service offerings in display order.
func (r *OfferingRepo) List(ctx context.Context) ([]model.ServiceOffering, error) {
	return collectRows[model.ServiceOffering](ctx, r.DB,
		`SELECT `+offeringColumns+` FROM services ORDER BY display_order, created_at`)
}

func (r *OfferingRepo) Create(ctx context.Context, in model.ServiceOfferingInput) (model.ServiceOffering, error) {
	return collectOne[model.ServiceOffering](ctx, r.DB, "service not found", `
		INSERT INTO services (name, description, short_description, icon, features, price_range, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+offeringColumns,
		in.Name, in.Description, in.ShortDescription, in.Icon, nonNilList(in.Features), in.PriceRange, in.IsActive, in.DisplayOrder)
}

func (r *OfferingRepo) Update(ctx context.Context, id string, in model.ServiceOfferingInput) (model.ServiceOffering, error) {
	return collectOne[model.ServiceOffering](ctx, r.DB, "service not found", `
		UPDATE services
		SET name = $1, description = $2, short_description = $3, icon = $4, features = $5,
		    price_range = $6, is_active = $7, display_order = $8
		WHERE id = $9
		RETURNING `+offeringColumns,
		in.Name, in.Description, in.ShortDescription, in.Icon, nonNilList(in.Features), in.PriceRange, in.IsActive, in.DisplayOrder, id)
}

func (r *OfferingRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "services", id, "service not found")
}

const testimonialColumns = `id::text AS id, author_name, author_role, author_company, content, rating, is_featured, is_active, display_order, created_at, updated_at`

// TestimonialRepo provides database operations for testimonials.
type TestimonialRepo struct {
	DB *sql.DB
}

var _ ports.ContentTable[model.Testimonial, model.TestimonialInput] = (*TestimonialRepo)(nil)

// NewTestimonialRepo creates a TestimonialRepo.
func NewTestimonialRepo(db *sql.DB) *TestimonialRepo {
	return &TestimonialRepo{DB: db}
}

// List returns testimonials in display order.
func (r *TestimonialRepo) List(ctx context.Context) ([]model.Testimonial, error) {
	return collectRows[model.Testimonial](ctx, r.DB,
		`SELECT `+testimonialColumns+` FROM testimonials ORDER BY display_order, created_at`)
}

func (r *TestimonialRepo) Create(ctx context.Context, in model.TestimonialInput) (model.Testimonial, error) {
	return collectOne[model.Testimonial](ctx, r.DB, "testimonial not found", `
		INSERT INTO testimonials (author_name, author_role, author_company, content, rating, is_featured, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+testimonialColumns,
		in.AuthorName, in.AuthorRole, in.AuthorCompany, in.Content, in.Rating, in.IsFeatured, in.IsActive, in.DisplayOrder)
}

func (r *TestimonialRepo) Update(ctx context.Context, id string, in model.TestimonialInput) (model.Testimonial, error) {
	return collectOne[model.Testimonial](ctx, r.DB, "testimonial not found", `
		UPDATE testimonials
		SET author_name = $1, author_role = $2, author_company = $3, content = $4, rating = $5,
		    is_featured = $6, is_active = $7, display_order = $8
		WHERE id = $9
		RETURNING `+testimonialColumns,
		in.AuthorName, in.AuthorRole, in.AuthorCompany, in.Content, in.Rating, in.IsFeatured, in.IsActive, in.DisplayOrder, id)
}

func (r *TestimonialRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "testimonials", id, "testimonial not found")
}

// SettingsRepo provides database operations for site_settings.
type SettingsRepo struct {
	DB *sql.DB
}

var _ ports.SiteSettings = (*SettingsRepo)(nil)

// NewSettingsRepo creates a SettingsRepo.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{DB: db}
}

// ListSettings returns every setting ordered by key.
func (r *SettingsRepo) ListSettings(ctx context.Context) ([]model.SiteSetting, error) {
	return collectRows[model.SiteSetting](ctx, r.DB, `
		SELECT id::text AS id, setting_key, setting_value, setting_type, description, category, created_at, updated_at
		FROM site_settings ORDER BY setting_key`)
}

func (r *SettingsRepo) UpdateSetting(ctx context.Context, key, value string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE site_settings SET setting_value = $1 WHERE setting_key = $2`, value, key)
	return expectOneRow(res, err, "setting not found")
}

// ProfileRepo reads profiles.
type ProfileRepo struct {
	DB *sql.DB
}

var _ ports.ProfileSource = (*ProfileRepo)(nil)

// NewProfileRepo creates a ProfileRepo.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{DB: db}
}

// ListProfiles returns profiles, newest first.
func (r *ProfileRepo) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	return collectRows[model.Profile](ctx, r.DB, `
		SELECT id::text AS id, full_name, avatar_url, created_at, updated_at
		FROM profiles ORDER BY created_at DESC`)
}

// nonNilList keeps NOT NULL array columns from receiving NULL.
func nonNilList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
