package data

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sentinellock/sentinel-web/internal/data/pgxutil"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// StrategyPGInsert names the direct Postgres persistence strategy.
const StrategyPGInsert = "pg_insert"

const contactColumns = `id::text AS id, name, email, company, phone, service, message, status, created_at, updated_at`

// ContactRepo provides database operations for contact submissions.
type ContactRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var (
	_ ports.ContactAdmin        = (*ContactRepo)(nil)
	_ ports.PersistenceStrategy = (*PGInsertStrategy)(nil)
)

// NewContactRepo creates a ContactRepo with the real clock.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewContactRepoWithTimeProvider creates a ContactRepo with a custom clock (useful for tests).
func NewContactRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: tp}
}

// Create inserts a submission and returns the stored row.
func (r *ContactRepo) Create(ctx context.Context, sub model.ContactSubmission) (*model.Contact, error) {
	now := r.timeProvider.Now().UTC()
	var out model.Contact
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO contact_submissions (id, name, email, company, phone, service, message, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			RETURNING `+contactColumns,
			uuid.New(),
			sub.Name,
			sub.Email,
			sub.Company,
			sub.Phone,
			sub.Service,
			sub.Message,
			string(model.ContactStatusNew),
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Contact])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List returns contacts with status (all when empty), newest first.
func (r *ContactRepo) List(ctx context.Context, status model.ContactStatus) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_submissions`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	var out []model.Contact
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Contact])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// UpdateStatus sets the workflow status of contact id.
func (r *ContactRepo) UpdateStatus(ctx context.Context, id string, status model.ContactStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE contact_submissions SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), r.timeProvider.Now().UTC(), id)
	return expectOneRow(res, err, "contact submission not found")
}

// Delete removes contact id.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	return expectOneRow(res, err, "contact submission not found")
}

func expectOneRow(res sql.Result, err error, notFound string) error {
	if err != nil {
		return apperrors.MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if n == 0 {
		return apperrors.NotFound(notFound)
	}
	return nil
}

// PGInsertStrategy persists submissions straight into Postgres. It is the
// fallback of last resort when the REST API refuses anonymous inserts.
type PGInsertStrategy struct {
	repo *ContactRepo
}

// InsertStrategy returns the pg_insert persistence strategy.
func (r *ContactRepo) InsertStrategy() *PGInsertStrategy {
	return &PGInsertStrategy{repo: r}
}

func (*PGInsertStrategy) Name() string { return StrategyPGInsert }

func (s *PGInsertStrategy) Persist(ctx context.Context, sub model.ContactSubmission) error {
	_, err := s.repo.Create(ctx, sub)
	return err
}
