package postgrest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinellock/sentinel-web/internal/adapters/backendapi"
	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

func newTestStore(t *testing.T, h http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client, err := backendapi.New(backendapi.Config{BaseURL: srv.URL, APIKey: "anon"})
	require.NoError(t, err)
	s, err := New(client)
	require.NoError(t, err)
	return s
}

func ptr(s string) *string { return &s }

func TestStrategies_ImplementPort(t *testing.T) {
	var _ ports.PersistenceStrategy = (*InsertStrategy)(nil)
	var _ ports.PersistenceStrategy = (*InsertReturnStrategy)(nil)
}

func TestInsertStrategy_Persist(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/contact_submissions", r.URL.Path)
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ada", body["name"])
		assert.Equal(t, "Acme", body["company"])
		assert.Nil(t, body["phone"])
		w.WriteHeader(http.StatusCreated)
	})

	strategy := store.InsertStrategy()
	assert.Equal(t, StrategyInsert, strategy.Name())
	err := strategy.Persist(context.Background(), model.ContactSubmission{
		Name: "Ada", Email: "ada@example.com", Company: ptr("Acme"), Message: "hi",
	})
	require.NoError(t, err)
}

func TestInsertReturnStrategy_Persist(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "id", r.URL.Query().Get("select"))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `[{"id":"8b7c2a58-3a43-4b8d-9a3c-0f2d3f1b5f00"}]`)
	})

	strategy := store.InsertReturnStrategy()
	assert.Equal(t, StrategyInsertReturn, strategy.Name())
	require.NoError(t, strategy.Persist(context.Background(), model.ContactSubmission{Name: "Ada", Email: "a@b.c", Message: "m"}))
}

func TestInsertStrategy_RLSDenied(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"code":"42501","message":"new row violates row-level security policy for table \"contact_submissions\""}`)
	})

	err := store.InsertStrategy().Persist(context.Background(), model.ContactSubmission{Name: "A", Email: "a@b.c", Message: "m"})

	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.False(t, apperrors.IsRetryable(err))
}

func TestHasRole(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"row present", `[{"role":"admin"}]`, true},
		{"no row", `[]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				assert.Equal(t, "/rest/v1/user_roles", r.URL.Path)
				assert.Equal(t, "eq.user-1", q.Get("user_id"))
				assert.Equal(t, "eq.admin", q.Get("role"))
				assert.Equal(t, "1", q.Get("limit"))
				_, _ = io.WriteString(w, tt.body)
			})

			got, err := store.HasRole(context.Background(), "user-1", domainauth.RoleAdmin)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasRole_ServerErrorPropagates(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := store.HasRole(context.Background(), "user-1", domainauth.RoleAdmin)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestGrantAdminByEmail(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/make_user_admin", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ops@sentinellock.com", body["user_email"])
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, store.GrantAdminByEmail(context.Background(), "ops@sentinellock.com"))
}

func TestRevokeRole_NotFoundWhenNothingDeleted(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = io.WriteString(w, `[]`)
	})
	err := store.RevokeRole(context.Background(), "user-1", domainauth.RoleModerator)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListPublished(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "eq.true", q.Get("published"))
		assert.Equal(t, "published_at.desc", q.Get("order"))
		_, _ = io.WriteString(w, `[{"slug":"a","updated_at":"2025-01-02T00:00:00Z","published_at":null}]`)
	})

	posts, err := store.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "a", posts[0].Slug)
	assert.NotNil(t, posts[0].UpdatedAt)
	assert.Nil(t, posts[0].PublishedAt)
}

func TestContacts_ListUpdateDelete(t *testing.T) {
	const id = "8b7c2a58-3a43-4b8d-9a3c-0f2d3f1b5f00"
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "eq.new", q.Get("status"))
			assert.Equal(t, "created_at.desc", q.Get("order"))
			_, _ = io.WriteString(w, `[{"id":"`+id+`","name":"Ada","status":"new","created_at":"2025-01-01T00:00:00Z","updated_at":"2025-01-01T00:00:00Z"}]`)
		case http.MethodPatch:
			assert.Equal(t, "eq."+id, q.Get("id"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "archived", body["status"])
			_, _ = io.WriteString(w, `[{"id":"`+id+`"}]`)
		case http.MethodDelete:
			_, _ = io.WriteString(w, `[]`)
		}
	})
	ctx := context.Background()

	rows, err := store.List(ctx, model.ContactStatusNew)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.ContactStatusNew, rows[0].Status)

	require.NoError(t, store.UpdateStatus(ctx, id, model.ContactStatusArchived))
	assert.True(t, apperrors.IsNotFound(store.Delete(ctx, id)))
}
