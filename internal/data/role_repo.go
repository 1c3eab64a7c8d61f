package data

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sentinellock/sentinel-web/internal/data/pgxutil"
	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// RoleRepo provides database operations for user_roles.
type RoleRepo struct {
	DB *sql.DB
}

var (
	_ ports.RoleLookup = (*RoleRepo)(nil)
	_ ports.RoleAdmin  = (*RoleRepo)(nil)
)

// NewRoleRepo creates a RoleRepo.
func NewRoleRepo(db *sql.DB) *RoleRepo {
	return &RoleRepo{DB: db}
}

// HasRole reports whether userID holds role. Ids that are not UUIDs cannot hold
// rows and report false.
func (r *RoleRepo) HasRole(ctx context.Context, userID string, role domainauth.Role) (bool, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return false, nil
	}
	var ok bool
	err := r.DB.QueryRowContext(ctx, `SELECT has_role($1::uuid, $2::app_role)`, userID, string(role)).Scan(&ok)
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return ok, nil
}

// GrantAdminByEmail gives the account with email the admin role. Granting twice is a no-op.
func (r *RoleRepo) GrantAdminByEmail(ctx context.Context, email string) error {
	var userID string
	if err := r.DB.QueryRowContext(ctx, `SELECT make_user_admin($1)`, email).Scan(&userID); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// GrantRole inserts a role row for userID. An existing row is left as is.
func (r *RoleRepo) GrantRole(ctx context.Context, userID string, role domainauth.Role) error {
	if _, err := uuid.Parse(userID); err != nil {
		return apperrors.ValidationField("user_id", "user id must be a UUID")
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1::uuid, $2::app_role)`, userID, string(role))
	if apperrors.IsUniqueViolation(err) {
		return nil
	}
	return apperrors.MapDBError(err)
}

// RevokeRole deletes the role row for userID.
func (r *RoleRepo) RevokeRole(ctx context.Context, userID string, role domainauth.Role) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM user_roles WHERE user_id = $1::uuid AND role = $2::app_role`, userID, string(role))
	return expectOneRow(res, err, "role assignment not found")
}

// ListRoles returns every role row, newest first.
func (r *RoleRepo) ListRoles(ctx context.Context) ([]domainauth.RoleAssignment, error) {
	var out []domainauth.RoleAssignment
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Opts: &sql.TxOptions{ReadOnly: true},
		Fn: func(tx pgx.Tx) error {
			rows, err := tx.Query(ctx, `
				SELECT id::text AS id, user_id::text AS user_id, role::text AS role, created_at
				FROM user_roles ORDER BY created_at DESC`)
			if err != nil {
				return err
			}
			defer rows.Close()
			out, err = pgx.CollectRows(rows, pgx.RowToStructByName[domainauth.RoleAssignment])
			return err
		},
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}
