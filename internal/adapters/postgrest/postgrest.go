// Package postgrest implements data ports against a PostgREST-compatible REST API:
// contact submission strategies, role lookups and admin, contacts admin and the
// site content tables edited from the admin CLI.
package postgrest

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/sentinellock/sentinel-web/internal/adapters/backendapi"
	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

const (
	contactsPath = "/rest/v1/contact_submissions"
	rolesPath    = "/rest/v1/user_roles"
	blogPath     = "/rest/v1/blog_posts"
	grantRPCPath = "/rest/v1/rpc/make_user_admin"
)

// Strategy names.
const (
	StrategyInsert       = "rest_insert"
	StrategyInsertReturn = "rest_insert_return"
)

// Store is the data API gateway. Requests carry whatever bearer token the
// underlying client is configured with.
type Store struct {
	client *backendapi.Client
}

var (
	_ ports.RoleLookup     = (*Store)(nil)
	_ ports.RoleAdmin      = (*Store)(nil)
	_ ports.ContactAdmin   = (*Store)(nil)
	_ ports.BlogPostSource = (*Store)(nil)
)

// New constructs a Store.
func New(client *backendapi.Client) (*Store, error) {
	if client == nil {
		return nil, errors.New("postgrest: client is required")
	}
	return &Store{client: client}, nil
}

// contactInsert is the insert payload; the row id and status default server side.
type contactInsert struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
	Service *string `json:"service"`
	Message string  `json:"message"`
}

func toInsert(sub model.ContactSubmission) contactInsert {
	return contactInsert{
		Name:    sub.Name,
		Email:   sub.Email,
		Company: sub.Company,
		Phone:   sub.Phone,
		Service: sub.Service,
		Message: sub.Message,
	}
}

// InsertStrategy inserts without reading the row back.
type InsertStrategy struct{ store *Store }

// InsertReturnStrategy inserts and asks for the stored row. Some policy setups
// accept this form when the minimal one is refused.
type InsertReturnStrategy struct{ store *Store }

// InsertStrategy returns the rest_insert strategy.
func (s *Store) InsertStrategy() *InsertStrategy { return &InsertStrategy{store: s} }

// InsertReturnStrategy returns the rest_insert_return strategy.
func (s *Store) InsertReturnStrategy() *InsertReturnStrategy { return &InsertReturnStrategy{store: s} }

func (*InsertStrategy) Name() string { return StrategyInsert }

func (st *InsertStrategy) Persist(ctx context.Context, sub model.ContactSubmission) error {
	return st.store.client.Do(ctx, backendapi.Request{
		Method: http.MethodPost,
		Path:   contactsPath,
		Header: http.Header{"Prefer": {"return=minimal"}},
		Body:   toInsert(sub),
	}, nil)
}

func (*InsertReturnStrategy) Name() string { return StrategyInsertReturn }

func (st *InsertReturnStrategy) Persist(ctx context.Context, sub model.ContactSubmission) error {
	var rows []model.Contact
	err := st.store.client.Do(ctx, backendapi.Request{
		Method: http.MethodPost,
		Path:   contactsPath,
		Query:  url.Values{"select": {"id"}},
		Header: http.Header{"Prefer": {"return=representation"}},
		Body:   toInsert(sub),
	}, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperrors.Internal("insert returned no row")
	}
	return nil
}

// HasRole reports whether userID holds role.
func (s *Store) HasRole(ctx context.Context, userID string, role domainauth.Role) (bool, error) {
	var rows []struct {
		Role string `json:"role"`
	}
	err := s.client.Do(ctx, backendapi.Request{
		Path: rolesPath,
		Query: url.Values{
			"select":  {"role"},
			"user_id": {"eq." + userID},
			"role":    {"eq." + string(role)},
			"limit":   {"1"},
		},
	}, &rows)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// GrantAdminByEmail calls the make_user_admin function.
func (s *Store) GrantAdminByEmail(ctx context.Context, email string) error {
	return s.client.Do(ctx, backendapi.Request{
		Method: http.MethodPost,
		Path:   grantRPCPath,
		Body:   map[string]string{"user_email": email},
	}, nil)
}

// RevokeRole deletes the role row for userID. Revoking a role the user lacks is
// reported as not found.
func (s *Store) RevokeRole(ctx context.Context, userID string, role domainauth.Role) error {
	var rows []domainauth.RoleAssignment
	err := s.client.Do(ctx, backendapi.Request{
		Method: http.MethodDelete,
		Path:   rolesPath,
		Query: url.Values{
			"user_id": {"eq." + userID},
			"role":    {"eq." + string(role)},
		},
		Header: http.Header{"Prefer": {"return=representation"}},
	}, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperrors.NotFound("role assignment not found")
	}
	return nil
}

// ListRoles returns every role row, newest first.
func (s *Store) ListRoles(ctx context.Context) ([]domainauth.RoleAssignment, error) {
	var rows []domainauth.RoleAssignment
	err := s.client.Do(ctx, backendapi.Request{
		Path:  rolesPath,
		Query: url.Values{"select": {"id,user_id,role,created_at"}, "order": {"created_at.desc"}},
	}, &rows)
	return rows, err
}

// ListPublished returns published blog posts, newest first.
func (s *Store) ListPublished(ctx context.Context) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	err := s.client.Do(ctx, backendapi.Request{
		Path: blogPath,
		Query: url.Values{
			"select":    {"slug,updated_at,published_at"},
			"published": {"eq.true"},
			"order":     {"published_at.desc"},
		},
	}, &posts)
	return posts, err
}

// List returns contacts with status (all when empty), newest first.
func (s *Store) List(ctx context.Context, status model.ContactStatus) ([]model.Contact, error) {
	query := url.Values{"select": {"*"}, "order": {"created_at.desc"}}
	if status != "" {
		query.Set("status", "eq."+string(status))
	}
	var rows []model.Contact
	err := s.client.Do(ctx, backendapi.Request{Path: contactsPath, Query: query}, &rows)
	return rows, err
}

// UpdateStatus sets the workflow status of contact id.
func (s *Store) UpdateStatus(ctx context.Context, id string, status model.ContactStatus) error {
	var rows []model.Contact
	err := s.client.Do(ctx, backendapi.Request{
		Method: http.MethodPatch,
		Path:   contactsPath,
		Query:  url.Values{"id": {"eq." + id}, "select": {"id"}},
		Header: http.Header{"Prefer": {"return=representation"}},
		Body:   map[string]string{"status": string(status)},
	}, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperrors.NotFound("contact submission not found")
	}
	return nil
}

// Delete removes contact id.
func (s *Store) Delete(ctx context.Context, id string) error {
	var rows []model.Contact
	err := s.client.Do(ctx, backendapi.Request{
		Method: http.MethodDelete,
		Path:   contactsPath,
		Query:  url.Values{"id": {"eq." + id}, "select": {"id"}},
		Header: http.Header{"Prefer": {"return=representation"}},
	}, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperrors.NotFound("contact submission not found")
	}
	return nil
}
